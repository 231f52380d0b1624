// Package repository defines the persistence boundary for vouchers and
// sub-clients. Business logic holds an interface so the backing store can
// change without touching it.
package repository

import (
	"context"
	"time"

	"github.com/herculesvale/vale-service/internal/models"
)

// VoucherRepository is the write boundary for vouchers. Implementations
// must keep the isUsed transition monotonic under concurrent callers and
// scope every lookup to the owning distributor.
type VoucherRepository interface {
	Add(ctx context.Context, v *models.Voucher) error
	GetByID(ctx context.Context, distributorID, id string) (*models.Voucher, error)
	ListByDistributor(ctx context.Context, distributorID string) ([]*models.Voucher, error)
	// MarkUsed flips isUsed exactly once. It returns ErrVoucherNotFound
	// for an unknown or foreign id and ErrVoucherUsed when the voucher
	// was already consumed; usedAt is never overwritten.
	MarkUsed(ctx context.Context, distributorID, id string, usedAt time.Time) (*models.Voucher, error)
}

// SubClientRepository stores the per-distributor client roster.
type SubClientRepository interface {
	Add(ctx context.Context, sc *models.SubClient) error
	// ListByDistributor returns the roster most-recently-added first.
	ListByDistributor(ctx context.Context, distributorID string) ([]*models.SubClient, error)
}
