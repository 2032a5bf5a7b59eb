package models

import "time"

// Player is one poker player observed on any session summary.
type Player struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"size:128;not null;uniqueIndex"`
}
