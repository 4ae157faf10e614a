package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/recordops/ledger-api/internal/core/domain"
	"github.com/recordops/ledger-api/internal/core/ports"
)

type TransactionHandler struct {
	txService ports.TransactionService
}

func NewTransactionHandler(txService ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{txService: txService}
}

type createTransactionRequest struct {
	Description    string    `json:"description" validate:"required"`
	Date           time.Time `json:"date,omitempty"`
	Amount         float64   `json:"amount" validate:"required"`
	Category       string    `json:"category,omitempty"`
	MeansOfPayment string    `json:"means_of_payment,omitempty"`
	Observation    string    `json:"observation,omitempty"`
	Area           string    `json:"area,omitempty"`
}

// Create records a new ledger transaction owned by the caller.
//
// @Summary      Create a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body      createTransactionRequest  true  "New transaction"
// @Success      201   {object}  domain.Transaction
// @Router       /transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	acting, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.txService.Create(c.Request().Context(), acting, ports.CreateTransactionInput{
		Description:    req.Description,
		Date:           req.Date,
		Amount:         req.Amount,
		Category:       domain.Category(req.Category),
		MeansOfPayment: domain.MeansOfPayment(req.MeansOfPayment),
		Observation:    req.Observation,
		Area:           domain.Area(req.Area),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, tx)
}

// List returns transactions visible to the caller. Admins may scope to any
// user with ?user_id=; everyone else is pinned to their own records.
//
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Success      200  {array}  domain.Transaction
// @Router       /transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	acting, err := currentUser(c)
	if err != nil {
		return err
	}

	limit, offset := pagination(c)
	filter := ports.TransactionFilter{
		UserID:   c.QueryParam("user_id"),
		Category: domain.Category(c.QueryParam("category")),
		Limit:    limit,
		Offset:   offset,
	}
	if from := c.QueryParam("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = t
		}
	}
	if to := c.QueryParam("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = t
		}
	}

	txs, err := h.txService.Find(c.Request().Context(), acting, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, txs)
}

// Get returns a single transaction if the caller owns it or is an admin.
//
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Param        id   path      string  true  "Transaction id"
// @Success      200  {object}  domain.Transaction
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) Get(c echo.Context) error {
	acting, err := currentUser(c)
	if err != nil {
		return err
	}

	tx, err := h.txService.FindByID(c.Request().Context(), acting, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tx)
}

type updateTransactionRequest struct {
	Description    *string    `json:"description,omitempty"`
	Date           *time.Time `json:"date,omitempty"`
	Amount         *float64   `json:"amount,omitempty"`
	Category       *string    `json:"category,omitempty"`
	MeansOfPayment *string    `json:"means_of_payment,omitempty"`
	Observation    *string    `json:"observation,omitempty"`
	Area           *string    `json:"area,omitempty"`
}

// Update applies a partial mutation to a transaction the caller owns (or any
// transaction, for admins). Absent fields are left untouched.
//
// @Summary      Update a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Transaction id"
// @Param        body  body      updateTransactionRequest  true  "Fields to change"
// @Success      200   {object}  domain.Transaction
// @Router       /transactions/{id} [patch]
func (h *TransactionHandler) Update(c echo.Context) error {
	acting, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.UpdateTransactionInput{
		Description: req.Description,
		Date:        req.Date,
		Amount:      req.Amount,
		Observation: req.Observation,
	}
	if req.Category != nil {
		cat := domain.Category(*req.Category)
		in.Category = &cat
	}
	if req.MeansOfPayment != nil {
		mop := domain.MeansOfPayment(*req.MeansOfPayment)
		in.MeansOfPayment = &mop
	}
	if req.Area != nil {
		area := domain.Area(*req.Area)
		in.Area = &area
	}

	tx, err := h.txService.Update(c.Request().Context(), acting, c.Param("id"), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tx)
}

// Deactivate soft-deletes a transaction.
//
// @Summary      Deactivate a transaction
// @Tags         transactions
// @Param        id  path  string  true  "Transaction id"
// @Success      204
// @Router       /transactions/{id} [delete]
func (h *TransactionHandler) Deactivate(c echo.Context) error {
	acting, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.txService.Deactivate(c.Request().Context(), acting, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
