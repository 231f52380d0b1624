package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType says which schedule a voucher's amount fell into.
type PaymentType string

const (
	// PaymentTypePromotion is the 12-installment plan for high amounts.
	PaymentTypePromotion PaymentType = "promotion"
	// PaymentTypeCutoff is the single-payment bi-monthly cutoff plan.
	PaymentTypeCutoff PaymentType = "cutoff"
)

// VoucherStatus is the presentation status derived from a voucher's flags
// and a reference time.
type VoucherStatus string

const (
	VoucherStatusAll     VoucherStatus = "all"
	VoucherStatusActive  VoucherStatus = "active"
	VoucherStatusExpired VoucherStatus = "expired"
	VoucherStatusUsed    VoucherStatus = "used"
)

// ParseVoucherStatus maps a query-string value onto a status filter.
func ParseVoucherStatus(s string) (VoucherStatus, bool) {
	switch VoucherStatus(s) {
	case VoucherStatusAll, VoucherStatusActive, VoucherStatusExpired, VoucherStatusUsed:
		return VoucherStatus(s), true
	}
	return "", false
}

// ValidityPeriod is how long a voucher can be redeemed after issuance.
// It is a fixed offset, not calendar-month arithmetic.
const ValidityPeriod = 10 * 24 * time.Hour

// MaxVoucherAmount is the issuance ceiling in pesos.
var MaxVoucherAmount = decimal.NewFromInt(5000)

// Voucher is a claim a distributor issues to a sub-client. Once stored it
// is immutable except for the isUsed transition, which is monotonic.
type Voucher struct {
	ID               string
	Folio            string
	DistributorID    string
	SubClientID      string
	SubClientName    string
	Amount           decimal.Decimal
	IsUsed           bool
	CreatedAt        time.Time
	UsedAt           *time.Time
	ExpiresAt        time.Time
	PaymentType      PaymentType
	PaymentStartDate time.Time
	Installments     int
}

// IsExpired reports whether the voucher has lapsed at the given instant.
// Expiry is never stored; it is always evaluated against a reference time
// supplied by the caller.
func (v *Voucher) IsExpired(now time.Time) bool {
	return !v.IsUsed && now.After(v.ExpiresAt)
}

// Status derives the display status. A used voucher reports "used" even
// when its expiry date has also passed.
func (v *Voucher) Status(now time.Time) VoucherStatus {
	switch {
	case v.IsUsed:
		return VoucherStatusUsed
	case now.After(v.ExpiresAt):
		return VoucherStatusExpired
	default:
		return VoucherStatusActive
	}
}
