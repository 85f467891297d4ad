package deal

import (
	"time"

	"gorm.io/gorm"
)

// BillingCycle is the interval between subscription charges. The values match
// the spreadsheet's wire format.
type BillingCycle string

const (
	CycleMonthly    BillingCycle = "monthly"
	CycleQuarterly  BillingCycle = "three-month"
	CycleSemiannual BillingCycle = "six-month"
	CycleAnnual     BillingCycle = "yearly"
	CycleBiennial   BillingCycle = "two-year"
)

// Months returns the number of calendar months between successive charges,
// or 0 for an unknown cycle.
func (c BillingCycle) Months() int {
	switch c {
	case CycleMonthly:
		return 1
	case CycleQuarterly:
		return 3
	case CycleSemiannual:
		return 6
	case CycleAnnual:
		return 12
	case CycleBiennial:
		return 24
	}
	return 0
}

// Deal is one closed-won contract: the subscription recurs every cycle, the
// setup fee is charged once alongside the first payment.
type Deal struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Name         string       `gorm:"size:255;not null" json:"name"`
	CloseDate    time.Time    `gorm:"not null" json:"close"`
	Subscription float64      `gorm:"not null;default:0" json:"subscription"`
	Setup        float64      `gorm:"not null;default:0" json:"setup"`
	Cycle        BillingCycle `gorm:"size:20;not null" json:"cycle"`

	// ChurnDate nil means active indefinitely. A churn at or before the close
	// date yields zero billed periods.
	ChurnDate *time.Time `json:"churnDate"`
}

// Active reports whether the deal has not churned as of now.
func (d Deal) Active(now time.Time) bool {
	return d.ChurnDate == nil || d.ChurnDate.After(now)
}

// Migrate creates the deals table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Deal{})
}
