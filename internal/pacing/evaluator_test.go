package pacing

import (
	"testing"
	"time"

	"github.com/rejigai/commission-tracker/internal/schedule"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDaysElapsed(t *testing.T) {
	// January 2025 starts on a Wednesday; the 4th/5th and 11th/12th are
	// weekends, so the 1st through the 15th holds 11 working days.
	assert.Equal(t, 11, BusinessDaysElapsed(date(2025, time.January, 15)))
	assert.Equal(t, 1, BusinessDaysElapsed(date(2025, time.January, 1)))
	// A weekend day adds nothing over the preceding Friday.
	assert.Equal(t, 2, BusinessDaysElapsed(date(2025, time.January, 4)))
}

func TestEvaluateMetrics(t *testing.T) {
	now := date(2025, time.January, 15) // 11 business days in
	key := schedule.MonthKey(now)

	breakdown := map[string]schedule.MonthBucket{
		key: {Revenue: 4000, Commission: 0},
	}
	prefs := Preferences{
		SellingDays: map[string]int{key: 22},
		Goals:       map[string]float64{key: 10000},
	}

	snap := Evaluate(breakdown, prefs, now)

	assert.Equal(t, key, snap.MonthKey)
	assert.Equal(t, 4000.0, snap.Revenue)
	assert.Equal(t, 11, snap.BusinessDaysElapsed)
	assert.Equal(t, 22, snap.TotalSellingDays)
	assert.Equal(t, 10000.0, snap.MonthlyGoal)
	assert.InDelta(t, 50.0, snap.DaysProgress, 0.001)

	assert.InDelta(t, 60.0, snap.QuotaProgress, 0.001)
	assert.InDelta(t, 120.0, snap.QuotaAttainment, 0.001)
	assert.InDelta(t, 3333.335, snap.ExpectedQuotaRevenue, 0.001)
	assert.InDelta(t, 666.665, snap.QuotaVariance, 0.001)

	assert.InDelta(t, 40.0, snap.GoalProgress, 0.001)
	assert.InDelta(t, 80.0, snap.GoalAttainment, 0.001)
	assert.InDelta(t, 5000.0, snap.ExpectedGoalRevenue, 0.001)
	assert.InDelta(t, -1000.0, snap.GoalVariance, 0.001)
}

func TestEvaluateDefaults(t *testing.T) {
	now := date(2025, time.January, 15)

	snap := Evaluate(nil, Preferences{}, now)

	assert.Equal(t, DefaultSellingDays, snap.TotalSellingDays)
	assert.Equal(t, schedule.DefaultPolicy.Threshold, snap.MonthlyGoal)
	assert.Equal(t, 0.0, snap.Revenue)
	assert.Equal(t, 0.0, snap.QuotaProgress)
}

func TestEvaluateNonPositivePreferencesFallBack(t *testing.T) {
	now := date(2025, time.January, 15)
	key := schedule.MonthKey(now)

	prefs := Preferences{
		SellingDays: map[string]int{key: 0},
		Goals:       map[string]float64{key: -5},
	}

	snap := Evaluate(nil, prefs, now)

	assert.Equal(t, DefaultSellingDays, snap.TotalSellingDays)
	assert.Equal(t, schedule.DefaultPolicy.Threshold, snap.MonthlyGoal)
}

func TestEvaluateZeroElapsedDays(t *testing.T) {
	// June 1, 2025 is a Sunday: no business days have elapsed yet.
	now := date(2025, time.June, 1)
	key := schedule.MonthKey(now)

	breakdown := map[string]schedule.MonthBucket{
		key: {Revenue: 9000},
	}

	snap := Evaluate(breakdown, Preferences{}, now)

	assert.Equal(t, 0, snap.BusinessDaysElapsed)
	assert.Equal(t, 0.0, snap.DaysProgress)
	assert.Equal(t, 0.0, snap.QuotaAttainment)
	assert.Equal(t, 0.0, snap.GoalAttainment)
	assert.Equal(t, 0.0, snap.ExpectedQuotaRevenue)
	assert.InDelta(t, 9000.0, snap.QuotaVariance, 0.001)
}
