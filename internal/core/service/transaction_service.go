package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/recordops/ledger-api/internal/core/domain"
	"github.com/recordops/ledger-api/internal/core/ports"
)

// TransactionService implements ledger-record CRUD with ownership scoping:
// USER and OPERATOR act only on their own records, ADMIN and SUPERADMIN may
// act on anyone's.
type TransactionService struct {
	repo ports.TransactionRepository
	log  zerolog.Logger
}

func NewTransactionService(repo ports.TransactionRepository, log zerolog.Logger) *TransactionService {
	return &TransactionService{repo: repo, log: log}
}

func (s *TransactionService) Create(ctx context.Context, acting *domain.User, in ports.CreateTransactionInput) (*domain.Transaction, error) {
	if in.Description == "" || in.Amount == 0 {
		return nil, domain.ErrBadRequest
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	category := in.Category
	if category == "" {
		category = domain.CategoryMisc
	}
	payment := in.MeansOfPayment
	if payment == "" {
		payment = domain.PaymentOther
	}
	area := in.Area
	if area == "" {
		area = domain.AreaOther
	}

	created, err := s.repo.Create(ctx, &domain.Transaction{
		UserID:         acting.ID,
		Description:    in.Description,
		Date:           date,
		Amount:         in.Amount,
		Category:       category,
		MeansOfPayment: payment,
		Observation:    in.Observation,
		Area:           area,
		IsActive:       true,
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Ctx(ctx).
		Str("user_id", acting.ID).
		Str("transaction_id", created.ID).
		Msg("transaction created")

	return created, nil
}

func (s *TransactionService) Find(ctx context.Context, acting *domain.User, filter ports.TransactionFilter) ([]*domain.Transaction, error) {
	if !canReadAnyRecord(acting) {
		// Non-admin callers are pinned to their own records regardless of
		// what the filter asks for.
		filter.UserID = acting.ID
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	return s.repo.Find(ctx, filter)
}

func (s *TransactionService) FindByID(ctx context.Context, acting *domain.User, id string) (*domain.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.UserID != acting.ID && !canReadAnyRecord(acting) {
		return nil, domain.ErrForbiddenOperation
	}
	return tx, nil
}

func (s *TransactionService) Update(ctx context.Context, acting *domain.User, id string, in ports.UpdateTransactionInput) (*domain.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.UserID != acting.ID && !canReadAnyRecord(acting) {
		return nil, domain.ErrForbiddenOperation
	}
	if in.Amount != nil && *in.Amount == 0 {
		return nil, domain.ErrBadRequest
	}
	if in.Description != nil && *in.Description == "" {
		return nil, domain.ErrBadRequest
	}

	updated, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Ctx(ctx).
		Str("user_id", acting.ID).
		Str("transaction_id", id).
		Msg("transaction updated")

	return updated, nil
}

func (s *TransactionService) Deactivate(ctx context.Context, acting *domain.User, id string) error {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tx.UserID != acting.ID && !canReadAnyRecord(acting) {
		return domain.ErrForbiddenOperation
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.log.Debug().Ctx(ctx).
		Str("user_id", acting.ID).
		Str("transaction_id", id).
		Msg("transaction deactivated")

	return nil
}

func canReadAnyRecord(u *domain.User) bool {
	return u.HasRole(domain.RoleAdmin) || u.HasRole(domain.RoleSuperAdmin)
}
