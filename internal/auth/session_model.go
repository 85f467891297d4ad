// internal/auth/session_model.go
package auth

import (
	"time"

	"gorm.io/gorm"
)

// Session is one logged-in browser. Deleting the row logs that browser out
// even if its cookie is still within its signed lifetime.
type Session struct {
	ID        uint      `gorm:"primaryKey"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Session{})
}
