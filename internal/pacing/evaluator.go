// Package pacing compares the current month's revenue against a linear
// day-by-day trajectory toward the quota threshold and the configured goal.
package pacing

import (
	"time"

	"github.com/rejigai/commission-tracker/internal/schedule"
)

// DefaultSellingDays is used when no selling-days preference is set for the
// month, or the stored value is non-positive.
const DefaultSellingDays = 20

// BusinessDaysElapsed counts Monday–Friday days from the 1st of now's month
// through now's day, inclusive. Fixed five-day week, no holiday calendar.
func BusinessDaysElapsed(now time.Time) int {
	year, month, today := now.Date()
	days := 0
	for day := 1; day <= today; day++ {
		switch time.Date(year, month, day, 0, 0, 0, 0, now.Location()).Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

// Evaluate derives the pacing snapshot for the month containing now. Pure
// function of the breakdown, the preferences, and now; inputs are never
// mutated. Attainment is pinned to 0 before the month's first business day,
// where progress against zero elapsed time is undefined.
func Evaluate(breakdown map[string]schedule.MonthBucket, prefs Preferences, now time.Time) Snapshot {
	key := schedule.MonthKey(now)
	bucket := breakdown[key]

	elapsed := BusinessDaysElapsed(now)
	sellingDays := prefs.SellingDays[key]
	if sellingDays <= 0 {
		sellingDays = DefaultSellingDays
	}
	threshold := schedule.DefaultPolicy.Threshold
	goal := prefs.Goals[key]
	if goal <= 0 {
		goal = threshold
	}

	daysProgress := float64(elapsed) / float64(sellingDays) * 100

	quotaProgress := bucket.Revenue / threshold * 100
	goalProgress := bucket.Revenue / goal * 100

	var quotaAttainment, goalAttainment float64
	if daysProgress > 0 {
		quotaAttainment = quotaProgress / daysProgress * 100
		goalAttainment = goalProgress / daysProgress * 100
	}

	expectedQuota := threshold / float64(sellingDays) * float64(elapsed)
	expectedGoal := goal / float64(sellingDays) * float64(elapsed)

	return Snapshot{
		MonthKey:   key,
		Revenue:    bucket.Revenue,
		Commission: bucket.Commission,

		BusinessDaysElapsed: elapsed,
		TotalSellingDays:    sellingDays,
		MonthlyGoal:         goal,
		DaysProgress:        daysProgress,

		QuotaProgress:        quotaProgress,
		QuotaAttainment:      quotaAttainment,
		ExpectedQuotaRevenue: expectedQuota,
		QuotaVariance:        bucket.Revenue - expectedQuota,

		GoalProgress:        goalProgress,
		GoalAttainment:      goalAttainment,
		ExpectedGoalRevenue: expectedGoal,
		GoalVariance:        bucket.Revenue - expectedGoal,

		LineItems: bucket.LineItems,
	}
}
