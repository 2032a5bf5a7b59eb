package models

import "time"

// User is an API account allowed to upload session screenshots.
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Username       string `gorm:"size:255;not null;unique"`
	HashedPassword []byte `gorm:"not null"`
}
