package schedule

// Line item kinds: a deal's first charge is "new", every later one "renewal".
const (
	KindNew     = "new"
	KindRenewal = "renewal"
)

// LineItem is one billed charge attributable to one deal in one month.
type LineItem struct {
	DealName string  `json:"name"`
	Amount   float64 `json:"amount"`
	Kind     string  `json:"type"`
}

// MonthBucket aggregates every charge landing in one calendar month.
// OverThreshold is signed; negative means the month came in under quota.
type MonthBucket struct {
	Revenue       float64    `json:"revenue"`
	Commission    float64    `json:"commission"`
	OverThreshold float64    `json:"overThreshold"`
	LineItems     []LineItem `json:"deals"`
}

// YearAggregate sums a year's month buckets.
type YearAggregate struct {
	Revenue    float64                `json:"revenue"`
	Commission float64                `json:"commission"`
	Months     map[string]MonthBucket `json:"months"`
}

// Policy is the threshold-and-rate commission rule: nothing accrues until a
// month's revenue clears the threshold, then Rate applies to the excess.
type Policy struct {
	Threshold float64
	Rate      float64
}

// DefaultPolicy is the fixed plan: an $80,000 annual quota split across twelve
// months, 20% commission on revenue above it.
var DefaultPolicy = Policy{Threshold: 6666.67, Rate: 0.20}
