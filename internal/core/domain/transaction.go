package domain

import "time"

// Transaction categories, means of payment and areas mirror the bookkeeping
// vocabulary of the ledger. New values require a migration, so they live here
// rather than in configuration.
type Category string

const (
	CategoryTaxes     Category = "IMPUESTOS"
	CategoryServices  Category = "SERVICIOS"
	CategorySupplies  Category = "INSUMOS"
	CategorySalaries  Category = "SUELDOS"
	CategoryTransport Category = "TRANSPORTE"
	CategoryMisc      Category = "VARIOS"
)

type MeansOfPayment string

const (
	PaymentCash     MeansOfPayment = "EFECTIVO"
	PaymentTransfer MeansOfPayment = "TRANSFERENCIA"
	PaymentCard     MeansOfPayment = "TARJETA"
	PaymentOther    MeansOfPayment = "OTROS"
)

type Area string

const (
	AreaProduction Area = "PRODUCCION"
	AreaCommercial Area = "COMERCIAL"
	AreaOther      Area = "OTROS"
)

// Transaction is a single ledger record owned by a user.
type Transaction struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	Description    string         `json:"description"`
	Date           time.Time      `json:"date"`
	Amount         float64        `json:"amount"`
	Category       Category       `json:"category"`
	MeansOfPayment MeansOfPayment `json:"means_of_payment"`
	Observation    string         `json:"observation,omitempty"`
	Area           Area           `json:"area,omitempty"`
	IsActive       bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
