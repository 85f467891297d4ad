package preferences

import (
	"gorm.io/gorm"
)

// SellingDaysPref stores the configured selling days for one calendar month.
// A stored zero means "not set"; the pacing evaluator applies its default.
type SellingDaysPref struct {
	Month string `gorm:"primaryKey;size:7" json:"month"`
	Days  int    `gorm:"not null;default:0" json:"days"`
}

// MonthlyGoalPref stores the custom revenue goal for one calendar month.
type MonthlyGoalPref struct {
	Month string  `gorm:"primaryKey;size:7" json:"month"`
	Goal  float64 `gorm:"not null;default:0" json:"goal"`
}

// Migrate creates both preference tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&SellingDaysPref{}, &MonthlyGoalPref{})
}
