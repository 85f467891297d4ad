// Package schedule projects a set of closed deals into a calendar-indexed
// revenue and commission breakdown. Everything in here is a pure function of
// its arguments; the breakdown is a view, recomputed from scratch on every
// read, never stored.
package schedule

import (
	"fmt"
	"time"

	"github.com/rejigai/commission-tracker/internal/deal"
)

// MonthKey formats t's year and month as "YYYY-MM".
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// AddMonths steps t forward by n calendar months. Days past the end of the
// target month roll over into the following one (Jan 31 + 1 month = Mar 3),
// the same normalization time.AddDate applies.
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// DefaultHorizon bounds open-ended billing schedules: Dec 31, two years past
// now's year. Deals without a churn date iterate to this cutoff, not forever.
func DefaultHorizon(now time.Time) time.Time {
	return time.Date(now.Year()+2, time.December, 31, 0, 0, 0, 0, now.Location())
}

// Build walks every deal's billing schedule from its close date to horizonEnd
// and buckets the charges per calendar month. The first charge includes the
// setup fee and is tagged "new"; later charges are the subscription alone,
// tagged "renewal". A charge date past the deal's churn date stops that deal.
// Deals contribute independently and simply sum.
func Build(deals []deal.Deal, policy Policy, horizonEnd time.Time) map[string]MonthBucket {
	breakdown := make(map[string]MonthBucket)

	for _, d := range deals {
		step := d.Cycle.Months()
		if step <= 0 {
			// Unknown cycles are rejected at creation and at sheet ingest;
			// a zero step would never advance the loop.
			continue
		}

		// A churn at or before the close date means nothing was ever billed.
		if d.ChurnDate != nil && !d.ChurnDate.After(d.CloseDate) {
			continue
		}

		first := true
		for charge := d.CloseDate; !charge.After(horizonEnd); charge = AddMonths(charge, step) {
			if d.ChurnDate != nil && charge.After(*d.ChurnDate) {
				break
			}

			amount := d.Subscription
			kind := KindRenewal
			if first {
				amount += d.Setup
				kind = KindNew
			}

			key := MonthKey(charge)
			b := breakdown[key]
			b.Revenue += amount
			b.LineItems = append(b.LineItems, LineItem{
				DealName: d.Name,
				Amount:   amount,
				Kind:     kind,
			})
			breakdown[key] = b

			first = false
		}
	}

	for key, b := range breakdown {
		b.OverThreshold = b.Revenue - policy.Threshold
		if b.OverThreshold > 0 {
			b.Commission = b.OverThreshold * policy.Rate
		}
		breakdown[key] = b
	}

	return breakdown
}

// YearlyRollup groups the monthly breakdown by the year prefix of its keys.
func YearlyRollup(breakdown map[string]MonthBucket) map[string]YearAggregate {
	years := make(map[string]YearAggregate)
	for key, b := range breakdown {
		year := key[:4]
		y := years[year]
		if y.Months == nil {
			y.Months = make(map[string]MonthBucket)
		}
		y.Revenue += b.Revenue
		y.Commission += b.Commission
		y.Months[key] = b
		years[year] = y
	}
	return years
}

// EarnedCommission sums commission over fully elapsed months only: every month
// whose key sorts strictly before now's month. The current month is excluded
// no matter how much revenue has already landed in it.
func EarnedCommission(breakdown map[string]MonthBucket, now time.Time) float64 {
	current := MonthKey(now)
	var total float64
	for key, b := range breakdown {
		if key < current {
			total += b.Commission
		}
	}
	return total
}
