package pacing

import (
	"github.com/rejigai/commission-tracker/internal/schedule"
)

// Preferences are the per-month pacing inputs, keyed by "YYYY-MM". Missing or
// non-positive entries fall back to the defaults at evaluation time.
type Preferences struct {
	SellingDays map[string]int
	Goals       map[string]float64
}

// Snapshot is the "how am I doing this month" view. It is derived on every
// read and never stored.
type Snapshot struct {
	MonthKey   string  `json:"monthKey"`
	Revenue    float64 `json:"revenue"`
	Commission float64 `json:"commission"`

	BusinessDaysElapsed int     `json:"businessDaysElapsed"`
	TotalSellingDays    int     `json:"totalSellingDays"`
	MonthlyGoal         float64 `json:"monthlyGoal"`
	DaysProgress        float64 `json:"daysProgress"`

	// Against the fixed quota threshold.
	QuotaProgress        float64 `json:"quotaProgress"`
	QuotaAttainment      float64 `json:"quotaAttainment"`
	ExpectedQuotaRevenue float64 `json:"expectedQuotaRevenue"`
	QuotaVariance        float64 `json:"quotaVariance"`

	// Against the custom monthly goal.
	GoalProgress        float64 `json:"goalProgress"`
	GoalAttainment      float64 `json:"goalAttainment"`
	ExpectedGoalRevenue float64 `json:"expectedGoalRevenue"`
	GoalVariance        float64 `json:"goalVariance"`

	LineItems []schedule.LineItem `json:"deals"`
}
