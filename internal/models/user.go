package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// User represents a login account. A user with RoleDoctor or RolePatient has a
// matching Doctor or Patient profile row created in the same transaction.
type User struct {
	BaseModel
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Role     Role   `gorm:"size:20;not null" json:"role"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	// Relations (not always preloaded)
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

// RefreshToken represents a JWT refresh token in the database
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// UserSanitized represents the account data that is safe to send in API responses.
type UserSanitized struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding the credential.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
