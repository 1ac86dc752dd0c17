// Package models defines server-side records that never leave the server.
package models

import "time"

// User is an account that can log in. The password is stored as an
// argon2id hash with its salt.
type User struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash []byte    `gorm:"not null"`
	Salt         []byte    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
}
