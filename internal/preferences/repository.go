package preferences

import (
	"github.com/rejigai/commission-tracker/internal/pacing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	SetSellingDays(db *gorm.DB, month string, days int) error
	SetGoal(db *gorm.DB, month string, goal float64) error
	Load(db *gorm.DB) (pacing.Preferences, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) SetSellingDays(db *gorm.DB, month string, days int) error {
	return db.Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&SellingDaysPref{Month: month, Days: days}).Error
}

func (r *repositoryImpl) SetGoal(db *gorm.DB, month string, goal float64) error {
	return db.Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&MonthlyGoalPref{Month: month, Goal: goal}).Error
}

// Load reads both preference maps in full; the pacing evaluator receives them
// as plain data.
func (r *repositoryImpl) Load(db *gorm.DB) (pacing.Preferences, error) {
	prefs := pacing.Preferences{
		SellingDays: make(map[string]int),
		Goals:       make(map[string]float64),
	}

	var days []SellingDaysPref
	if err := db.Find(&days).Error; err != nil {
		return prefs, err
	}
	for _, p := range days {
		prefs.SellingDays[p.Month] = p.Days
	}

	var goals []MonthlyGoalPref
	if err := db.Find(&goals).Error; err != nil {
		return prefs, err
	}
	for _, p := range goals {
		prefs.Goals[p.Month] = p.Goal
	}

	return prefs, nil
}
