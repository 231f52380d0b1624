package repository

import (
	"context"
	"sync"
	"time"

	"github.com/herculesvale/vale-service/internal/models"
)

// voucherShard holds one distributor's vouchers. Writers for the same
// distributor serialize on the shard lock; different distributors do not
// contend.
type voucherShard struct {
	mu       sync.RWMutex
	vouchers []*models.Voucher
	byID     map[string]*models.Voucher
}

// MemoryVoucherRepository is the in-process store used when no database
// is configured and by the test suite.
type MemoryVoucherRepository struct {
	mu     sync.RWMutex
	shards map[string]*voucherShard
}

// NewMemoryVoucherRepository creates an empty in-memory voucher store.
func NewMemoryVoucherRepository() *MemoryVoucherRepository {
	return &MemoryVoucherRepository{shards: make(map[string]*voucherShard)}
}

func (r *MemoryVoucherRepository) shard(distributorID string) *voucherShard {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shards[distributorID]
	if !ok {
		s = &voucherShard{byID: make(map[string]*models.Voucher)}
		r.shards[distributorID] = s
	}
	return s
}

func (r *MemoryVoucherRepository) Add(_ context.Context, v *models.Voucher) error {
	s := r.shard(v.DistributorID)
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneVoucher(v)
	s.vouchers = append(s.vouchers, stored)
	s.byID[stored.ID] = stored
	return nil
}

func (r *MemoryVoucherRepository) GetByID(_ context.Context, distributorID, id string) (*models.Voucher, error) {
	s := r.shard(distributorID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byID[id]
	if !ok {
		return nil, models.ErrVoucherNotFound
	}
	return cloneVoucher(v), nil
}

func (r *MemoryVoucherRepository) ListByDistributor(_ context.Context, distributorID string) ([]*models.Voucher, error) {
	s := r.shard(distributorID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	// newest first
	out := make([]*models.Voucher, 0, len(s.vouchers))
	for i := len(s.vouchers) - 1; i >= 0; i-- {
		out = append(out, cloneVoucher(s.vouchers[i]))
	}
	return out, nil
}

func (r *MemoryVoucherRepository) MarkUsed(_ context.Context, distributorID, id string, usedAt time.Time) (*models.Voucher, error) {
	s := r.shard(distributorID)
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.byID[id]
	if !ok {
		return nil, models.ErrVoucherNotFound
	}
	if v.IsUsed {
		return nil, models.ErrVoucherUsed
	}

	v.IsUsed = true
	ts := usedAt
	v.UsedAt = &ts
	return cloneVoucher(v), nil
}

// cloneVoucher keeps stored records out of callers' hands; vouchers are
// immutable outside the MarkUsed transition.
func cloneVoucher(v *models.Voucher) *models.Voucher {
	c := *v
	if v.UsedAt != nil {
		ts := *v.UsedAt
		c.UsedAt = &ts
	}
	return &c
}

// MemorySubClientRepository is the in-process sub-client roster.
type MemorySubClientRepository struct {
	mu    sync.RWMutex
	byDst map[string][]*models.SubClient
}

// NewMemorySubClientRepository creates an empty in-memory roster.
func NewMemorySubClientRepository() *MemorySubClientRepository {
	return &MemorySubClientRepository{byDst: make(map[string][]*models.SubClient)}
}

func (r *MemorySubClientRepository) Add(_ context.Context, sc *models.SubClient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *sc
	r.byDst[sc.DistributorID] = append(r.byDst[sc.DistributorID], &stored)
	return nil
}

func (r *MemorySubClientRepository) ListByDistributor(_ context.Context, distributorID string) ([]*models.SubClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byDst[distributorID]
	out := make([]*models.SubClient, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		c := *stored[i]
		out = append(out, &c)
	}
	return out, nil
}
