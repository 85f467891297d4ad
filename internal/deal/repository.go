package deal

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Save(db *gorm.DB, d *Deal) error
	List(db *gorm.DB) ([]Deal, error)
	FindByID(db *gorm.DB, id uint) (*Deal, error)
	SetChurn(db *gorm.DB, id uint, churn *time.Time) error
	ReplaceAll(db *gorm.DB, deals []Deal) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Save assigns max existing id + 1 (1 if none exist) so that manually added
// deals never collide with ids carried over from the sheet.
func (r *repositoryImpl) Save(db *gorm.DB, d *Deal) error {
	if d.ID == 0 {
		var maxID uint
		if err := db.Model(&Deal{}).
			Select("COALESCE(MAX(id), 0)").
			Scan(&maxID).Error; err != nil {
			return err
		}
		d.ID = maxID + 1
	}
	return db.Create(d).Error
}

func (r *repositoryImpl) List(db *gorm.DB) ([]Deal, error) {
	var list []Deal
	err := db.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Deal, error) {
	var d Deal
	if err := db.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// SetChurn sets or clears (nil) the churn date.
func (r *repositoryImpl) SetChurn(db *gorm.DB, id uint, churn *time.Time) error {
	return db.Model(&Deal{}).Where("id = ?", id).Update("churn_date", churn).Error
}

// ReplaceAll swaps the cached deal list for a freshly synced one in a single
// transaction. The stored list doubles as the fallback when the sheet is
// unreachable.
func (r *repositoryImpl) ReplaceAll(db *gorm.DB, deals []Deal) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&Deal{}).Error; err != nil {
			return err
		}
		if len(deals) == 0 {
			return nil
		}
		return tx.Create(&deals).Error
	})
}
