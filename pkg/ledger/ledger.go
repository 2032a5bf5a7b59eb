// Package ledger reconstructs the dense per-player score series from sparse
// game participation rows. Players absent from a session contribute a zero
// row so every player's cumulative curve is defined at every session.
package ledger

import (
	"fmt"
	"sort"
	"time"
)

// Participation is one persisted (player, game) outcome. Input rows are
// sparse: only players who actually sat in a game have one.
type Participation struct {
	PlayerID  uint      `json:"player_id"`
	GameID    uint      `json:"game_id"`
	StartTime time.Time `json:"start_time"`
	Score     int64     `json:"score"`
	Profit    int64     `json:"profit"`
	BuyIn     int64     `json:"buy_in"`
	Hands     int64     `json:"hands"`
}

// Game identifies one session for densification.
type Game struct {
	ID        uint
	StartTime time.Time
}

// Entry is one dense ledger row: the participation (real or synthesized)
// plus the player's running score up to and including this session.
type Entry struct {
	Participation
	CumulativeScore int64 `json:"cumulative_score"`
}

// Build completes the sparse participation set into exactly one row per
// known (player, game) pair and computes each player's cumulative score
// ordered by session start time, ties broken by ascending game id. Output is
// grouped by ascending player id. Build is a pure function of its inputs:
// the same snapshot always yields the identical row sequence.
//
// A participation row referencing a player or game absent from the snapshot
// is an input-contract violation and fails the whole build.
func Build(players []uint, games []Game, rows []Participation) ([]Entry, error) {
	orderedGames := dedupeGames(games)
	orderedPlayers := dedupePlayers(players)

	gameByID := make(map[uint]Game, len(orderedGames))
	for _, g := range orderedGames {
		gameByID[g.ID] = g
	}
	playerSet := make(map[uint]struct{}, len(orderedPlayers))
	for _, p := range orderedPlayers {
		playerSet[p] = struct{}{}
	}

	type pair struct{ player, game uint }
	byPair := make(map[pair]Participation, len(rows))
	for _, r := range rows {
		if _, ok := playerSet[r.PlayerID]; !ok {
			return nil, fmt.Errorf("participation references unknown player %d", r.PlayerID)
		}
		if _, ok := gameByID[r.GameID]; !ok {
			return nil, fmt.Errorf("participation references unknown game %d", r.GameID)
		}
		k := pair{r.PlayerID, r.GameID}
		if _, dup := byPair[k]; dup {
			return nil, fmt.Errorf("duplicate participation for player %d in game %d", r.PlayerID, r.GameID)
		}
		byPair[k] = r
	}

	out := make([]Entry, 0, len(orderedPlayers)*len(orderedGames))
	for _, pid := range orderedPlayers {
		var running int64
		for _, g := range orderedGames {
			row, ok := byPair[pair{pid, g.ID}]
			if !ok {
				row = Participation{PlayerID: pid, GameID: g.ID}
			}
			// The snapshot's game time is authoritative for ordering.
			row.StartTime = g.StartTime
			running += row.Score
			out = append(out, Entry{Participation: row, CumulativeScore: running})
		}
	}
	return out, nil
}

func dedupeGames(games []Game) []Game {
	seen := make(map[uint]struct{}, len(games))
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func dedupePlayers(players []uint) []uint {
	seen := make(map[uint]struct{}, len(players))
	out := make([]uint, 0, len(players))
	for _, p := range players {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
