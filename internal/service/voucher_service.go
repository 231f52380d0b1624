package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/herculesvale/vale-service/internal/folio"
	"github.com/herculesvale/vale-service/internal/models"
	"github.com/herculesvale/vale-service/internal/payment"
	"github.com/herculesvale/vale-service/internal/repository"
)

// VoucherService owns the voucher lifecycle: issuance, usage marking and
// the derived status views.
type VoucherService struct {
	vouchers repository.VoucherRepository
	folios   *folio.Generator
	log      *zap.Logger
	now      func() time.Time
}

// NewVoucherService wires the lifecycle engine.
func NewVoucherService(vouchers repository.VoucherRepository, folios *folio.Generator, log *zap.Logger) *VoucherService {
	return &VoucherService{
		vouchers: vouchers,
		folios:   folios,
		log:      log,
		now:      time.Now,
	}
}

// CreateVoucherInput is the validated-by-the-caller form input; the
// amount bounds are still enforced here.
type CreateVoucherInput struct {
	DistributorID string
	SubClientID   string
	SubClientName string
	Amount        decimal.Decimal
}

// Create validates the amount, computes the payment plan and expiry, and
// stores a fresh voucher. Nothing is stored when validation fails.
func (s *VoucherService) Create(ctx context.Context, in CreateVoucherInput) (*models.Voucher, error) {
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}

	now := s.now()
	plan := payment.Calculate(in.Amount, now)

	v := &models.Voucher{
		ID:               uuid.NewString(),
		Folio:            s.folios.Next(),
		DistributorID:    in.DistributorID,
		SubClientID:      in.SubClientID,
		SubClientName:    in.SubClientName,
		Amount:           in.Amount,
		IsUsed:           false,
		CreatedAt:        now,
		ExpiresAt:        now.Add(models.ValidityPeriod),
		PaymentType:      plan.Type,
		PaymentStartDate: plan.StartDate,
		Installments:     plan.Installments,
	}

	if err := s.vouchers.Add(ctx, v); err != nil {
		return nil, err
	}

	s.log.Info("voucher created",
		zap.String("folio", v.Folio),
		zap.String("distributor_id", v.DistributorID),
		zap.String("amount", v.Amount.String()),
		zap.String("payment_type", string(v.PaymentType)),
	)
	return v, nil
}

// Get returns one voucher scoped to the distributor.
func (s *VoucherService) Get(ctx context.Context, distributorID, id string) (*models.Voucher, error) {
	return s.vouchers.GetByID(ctx, distributorID, id)
}

// MarkUsed consumes a voucher. Marking twice fails with ErrVoucherUsed
// and leaves the original usedAt untouched.
func (s *VoucherService) MarkUsed(ctx context.Context, distributorID, id string) (*models.Voucher, error) {
	v, err := s.vouchers.MarkUsed(ctx, distributorID, id, s.now())
	if err != nil {
		return nil, err
	}

	s.log.Info("voucher used",
		zap.String("folio", v.Folio),
		zap.String("distributor_id", v.DistributorID),
	)
	return v, nil
}

// List returns the distributor's vouchers filtered by derived status.
// Status is evaluated against the current instant on every call, never
// read from a stored field.
func (s *VoucherService) List(ctx context.Context, distributorID string, status models.VoucherStatus) ([]*models.Voucher, error) {
	all, err := s.vouchers.ListByDistributor(ctx, distributorID)
	if err != nil {
		return nil, err
	}
	if status == "" || status == models.VoucherStatusAll {
		return all, nil
	}

	now := s.now()
	out := make([]*models.Voucher, 0, len(all))
	for _, v := range all {
		if v.Status(now) == status {
			out = append(out, v)
		}
	}
	return out, nil
}

// Now exposes the service clock so callers stamp derived fields with the
// same reference time.
func (s *VoucherService) Now() time.Time {
	return s.now()
}

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return models.NewValidationError("amount", "amount must be greater than zero")
	}
	if amount.GreaterThan(models.MaxVoucherAmount) {
		return models.NewValidationError("amount", "amount cannot exceed $5,000 pesos")
	}
	return nil
}
