// Package payment derives the payment schedule for a voucher amount.
package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/herculesvale/vale-service/internal/models"
)

// PromotionThreshold is the amount at which a voucher moves from the
// bi-monthly cutoff calendar to the deferred installment plan.
var PromotionThreshold = decimal.NewFromInt(3000)

const (
	promotionInstallments = 12
	promotionDeferMonths  = 4
	cutoffInstallments    = 1
)

// Plan is the computed payment schedule for one voucher.
type Plan struct {
	Type         models.PaymentType
	StartDate    time.Time
	Installments int
}

// Calculate derives the plan for an amount at the given instant. Amounts
// at or above the promotion threshold get 12 installments starting four
// calendar months out; everything below collects in a single payment on
// the next cutoff date.
func Calculate(amount decimal.Decimal, now time.Time) Plan {
	if amount.GreaterThanOrEqual(PromotionThreshold) {
		return Plan{
			Type:         models.PaymentTypePromotion,
			StartDate:    addMonthsClamped(now, promotionDeferMonths),
			Installments: promotionInstallments,
		}
	}
	return Plan{
		Type:         models.PaymentTypeCutoff,
		StartDate:    cutoffDate(now),
		Installments: cutoffInstallments,
	}
}

// cutoffDate maps an issuance instant onto the bi-monthly collection
// calendar: issues on day 21 or later collect on the 15th of the next
// month, issues on day 6 or earlier on the 15th of the current month, and
// everything in between on the 30th of the current month. A "30th" in a
// shorter month clamps to that month's last day. Time of day is preserved
// from the issuance instant.
func cutoffDate(now time.Time) time.Time {
	y, m, day := now.Date()
	hh, mm, ss := now.Clock()

	switch {
	case day >= 21:
		return time.Date(y, m+1, 15, hh, mm, ss, now.Nanosecond(), now.Location())
	case day <= 6:
		return time.Date(y, m, 15, hh, mm, ss, now.Nanosecond(), now.Location())
	default:
		target := 30
		if last := lastDayOfMonth(y, m, now.Location()); last < target {
			target = last
		}
		return time.Date(y, m, target, hh, mm, ss, now.Nanosecond(), now.Location())
	}
}

// addMonthsClamped advances by whole calendar months, preserving the day
// of month but clamping to the target month's length (Oct 31 + 4 months
// lands on the last day of February). time.AddDate normalizes overflow
// into the following month instead, so the clamp is explicit.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	m += time.Month(months)

	anchor := time.Date(y, m, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := lastDayOfMonth(anchor.Year(), anchor.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(anchor.Year(), anchor.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}
