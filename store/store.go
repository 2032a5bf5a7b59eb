// Package store maps parsed screenshots into player/game/record rows and
// serves the ledger read path. It is the only package that touches the
// database schema directly.
package store

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lh01/models"
	"lh01/pkg/ledger"
	"lh01/pkg/vision"
)

// Open connects to Postgres with the given DSN.
func Open(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return gdb, nil
}

// MustOpenFromEnv opens the DB_DSN database or exits. For CLI tools.
func MustOpenFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := Open(dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

// AutoMigrate migrates models individually so a failure on one doesn't
// block the others.
func AutoMigrate(gdb *gorm.DB) {
	if err := gdb.AutoMigrate(&models.Player{}); err != nil {
		log.Printf("migration warning (players): %v", err)
	}
	if err := gdb.AutoMigrate(&models.Game{}); err != nil {
		log.Printf("migration warning (games): %v", err)
	}
	if err := gdb.AutoMigrate(&models.GameRecord{}); err != nil {
		log.Printf("migration warning (game_records): %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}); err != nil {
		log.Printf("migration warning (users): %v", err)
	}
}

// SaveScreenshot persists one parsed summary screen: creator and row players
// are found or created by name, the game is upserted on (name, start_time)
// and every row whose score parsed becomes a GameRecord. Re-uploading the
// same summary updates the existing rows instead of duplicating them.
func SaveScreenshot(gdb *gorm.DB, shot *vision.Screenshot) (*models.Game, error) {
	var game models.Game
	err := gdb.Transaction(func(tx *gorm.DB) error {
		creator, err := findOrCreatePlayer(tx, shot.CreatorPlayerName.Text)
		if err != nil {
			return err
		}

		sb, bb := ParseChipLevel(shot.ChipLevel.Text)
		start := ParseSessionClock(shot.StartTime.Text, time.Now())
		end := ParseSessionClock(shot.EndTime.Text, time.Now())
		hands := vision.Normalize(shot.GameHandsCount.Text)

		game = models.Game{
			Name:      shot.GameName.Text,
			StartTime: start,
			EndTime:   end,
			SB:        sb,
			BB:        bb,
			CreatorID: creator.ID,
		}
		if hands.Parsed {
			game.HandsCount = int(hands.Int)
		}
		var existing models.Game
		if err := tx.Where("name = ? AND start_time = ?", game.Name, game.StartTime).First(&existing).Error; err == nil {
			game.ID = existing.ID
			game.CreatedAt = existing.CreatedAt
			if err := tx.Save(&game).Error; err != nil {
				return fmt.Errorf("update game: %w", err)
			}
		} else if err := tx.Create(&game).Error; err != nil {
			return fmt.Errorf("create game: %w", err)
		}

		for i, rec := range shot.RecordList {
			if rec.PlayerName == "" {
				continue // blank tail row below the list
			}
			if !rec.Score.Parsed {
				log.Printf("store: skipping row %d (%s): unparsed score %q", i, rec.PlayerName, rec.Score.Raw)
				continue
			}
			player, err := findOrCreatePlayer(tx, rec.PlayerName)
			if err != nil {
				return err
			}
			row := models.GameRecord{
				GameID:   game.ID,
				PlayerID: player.ID,
				Score:    rec.Score.Int,
				Profit:   rec.Score.Int,
			}
			if rec.HandsCount.Parsed {
				row.HandsCount = rec.HandsCount.Int
			}
			if rec.BuyInCount.Parsed {
				row.BuyInCount = rec.BuyInCount.Int
			}
			var prev models.GameRecord
			if err := tx.Where("game_id = ? AND player_id = ?", game.ID, player.ID).First(&prev).Error; err == nil {
				row.ID = prev.ID
				row.CreatedAt = prev.CreatedAt
			}
			if err := tx.Save(&row).Error; err != nil {
				return fmt.Errorf("save record for %s: %w", rec.PlayerName, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func findOrCreatePlayer(tx *gorm.DB, name string) (*models.Player, error) {
	if name == "" {
		name = "unknown"
	}
	var p models.Player
	if err := tx.Where("name = ?", name).FirstOrCreate(&p, models.Player{Name: name}).Error; err != nil {
		return nil, fmt.Errorf("find or create player %q: %w", name, err)
	}
	return &p, nil
}

// PlayerRecordRow is one dense ledger row enriched with the player name for
// presentation.
type PlayerRecordRow struct {
	PlayerID        uint      `json:"player_id"`
	PlayerName      string    `json:"player_name"`
	GameID          uint      `json:"game_id"`
	StartTime       time.Time `json:"start_time"`
	Score           int64     `json:"score"`
	Profit          int64     `json:"profit"`
	BuyIn           int64     `json:"buy_in"`
	Hands           int64     `json:"hands"`
	CumulativeScore int64     `json:"cumulative_score"`
}

// PlayerRecords loads one consistent snapshot of players, games and
// participation rows and returns the dense cumulative ledger. days > 0
// restricts the window to games started within the last `days` days; the
// snapshot is read inside one transaction so players, games and rows agree.
func PlayerRecords(gdb *gorm.DB, days int) ([]PlayerRecordRow, error) {
	var players []models.Player
	var games []models.Game
	var records []models.GameRecord

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&players).Error; err != nil {
			return fmt.Errorf("load players: %w", err)
		}
		gq := tx.Model(&models.Game{})
		if days > 0 {
			gq = gq.Where("start_time > ?", time.Now().AddDate(0, 0, -days))
		}
		if err := gq.Find(&games).Error; err != nil {
			return fmt.Errorf("load games: %w", err)
		}
		rq := tx.Model(&models.GameRecord{})
		if len(games) > 0 {
			ids := make([]uint, len(games))
			for i, g := range games {
				ids[i] = g.ID
			}
			rq = rq.Where("game_id IN ?", ids)
		} else {
			rq = rq.Where("1 = 0")
		}
		if err := rq.Find(&records).Error; err != nil {
			return fmt.Errorf("load game records: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	playerIDs := make([]uint, len(players))
	nameByID := make(map[uint]string, len(players))
	for i, p := range players {
		playerIDs[i] = p.ID
		nameByID[p.ID] = p.Name
	}
	ledgerGames := make([]ledger.Game, len(games))
	for i, g := range games {
		ledgerGames[i] = ledger.Game{ID: g.ID, StartTime: g.StartTime}
	}
	parts := make([]ledger.Participation, len(records))
	for i, r := range records {
		parts[i] = ledger.Participation{
			PlayerID: r.PlayerID,
			GameID:   r.GameID,
			Score:    r.Score,
			Profit:   r.Profit,
			BuyIn:    r.BuyInCount,
			Hands:    r.HandsCount,
		}
	}

	entries, err := ledger.Build(playerIDs, ledgerGames, parts)
	if err != nil {
		return nil, fmt.Errorf("build ledger: %w", err)
	}
	out := make([]PlayerRecordRow, len(entries))
	for i, e := range entries {
		out[i] = PlayerRecordRow{
			PlayerID:        e.PlayerID,
			PlayerName:      nameByID[e.PlayerID],
			GameID:          e.GameID,
			StartTime:       e.StartTime,
			Score:           e.Score,
			Profit:          e.Profit,
			BuyIn:           e.BuyIn,
			Hands:           e.Hands,
			CumulativeScore: e.CumulativeScore,
		}
	}
	return out, nil
}
