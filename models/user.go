package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

type User struct {
	ID               uint       `json:"user_id" gorm:"primaryKey"`
	Username         string     `json:"username" gorm:"size:100;not null;unique"`
	PasswordHash     string     `json:"-" gorm:"size:255;not null"`
	FullName         string     `json:"full_name" gorm:"size:255;not null"`
	Role             string     `json:"role" gorm:"size:20;not null"`
	Email            *string    `json:"email" gorm:"size:255;unique"`
	LastLogin        *time.Time `json:"last_login"`
	ResetToken       *string    `json:"-" gorm:"size:255"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
}

// SetPassword hashes and stores the given plaintext password. Hashing is an
// explicit call at the service boundary, never a persistence hook.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares a login attempt against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
