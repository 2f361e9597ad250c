package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// BaseModel contains common columns for all tables
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// InitDB opens the MySQL connection and runs migrations. The returned handle
// is passed explicitly into every handler constructor; there is no package
// level connection singleton.
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	// TranslateError turns driver duplicate-key errors into gorm.ErrDuplicatedKey,
	// which the booking conflict and username uniqueness checks rely on.
	db, err := gorm.Open(mysql.Open(config.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate auto-migrates the full schema. Split out of InitDB so tests can run
// the same migrations against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Department{},
		&Doctor{},
		&AvailabilitySlot{},
		&Patient{},
		&Appointment{},
		&Treatment{},
	)
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}
