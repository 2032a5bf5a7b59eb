package models

import "time"

// Game is one poker session parsed from a summary screenshot.
type Game struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Name       string    `gorm:"size:128;not null;uniqueIndex:idx_game_name_start"`
	StartTime  time.Time `gorm:"not null;index;uniqueIndex:idx_game_name_start"`
	EndTime    time.Time `gorm:"not null"`
	SB         int       `gorm:"not null"`
	BB         int       `gorm:"not null"`
	HandsCount int       `gorm:"not null"`
	CreatorID  uint      `gorm:"index;not null"`
	Creator    Player    `gorm:"foreignKey:CreatorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}
