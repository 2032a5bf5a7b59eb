package models

import "time"

// GameRecord is one player's outcome in one game. Rows exist only for
// players who actually sat in; absent players are synthesized as zero rows
// by the ledger builder at read time.
type GameRecord struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	GameID     uint   `gorm:"index;not null;uniqueIndex:idx_game_player"`
	PlayerID   uint   `gorm:"index;not null;uniqueIndex:idx_game_player"`
	Game       Game   `gorm:"foreignKey:GameID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Player     Player `gorm:"foreignKey:PlayerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	HandsCount int64  `gorm:"not null"`
	BuyInCount int64  `gorm:"not null"`
	Score      int64  `gorm:"not null"`
	Profit     int64  `gorm:"not null"`
}
