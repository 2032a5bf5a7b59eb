package ledger

import (
	"reflect"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2025, 7, d, 20, 0, 0, 0, time.UTC)
}

func TestBuildDensity(t *testing.T) {
	players := []uint{3, 1, 2}
	games := []Game{{ID: 10, StartTime: day(1)}, {ID: 11, StartTime: day(2)}, {ID: 12, StartTime: day(3)}, {ID: 13, StartTime: day(4)}}
	rows := []Participation{
		{PlayerID: 1, GameID: 10, Score: 100},
		{PlayerID: 2, GameID: 11, Score: -30},
	}
	entries, err := Build(players, games, rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(entries) != 3*4 {
		t.Fatalf("dense ledger must have |players|x|games| rows, got %d", len(entries))
	}
	seen := map[[2]uint]bool{}
	for _, e := range entries {
		k := [2]uint{e.PlayerID, e.GameID}
		if seen[k] {
			t.Fatalf("duplicate pair %v", k)
		}
		seen[k] = true
	}
}

func TestBuildCumulative(t *testing.T) {
	// Player 1 scores 100, -50, 20 across three sessions and skips a fourth
	// in between; the skipped session carries the total forward unchanged.
	players := []uint{1}
	games := []Game{
		{ID: 1, StartTime: day(1)},
		{ID: 2, StartTime: day(2)},
		{ID: 3, StartTime: day(3)}, // not joined
		{ID: 4, StartTime: day(4)},
	}
	rows := []Participation{
		{PlayerID: 1, GameID: 2, Score: -50, Hands: 120},
		{PlayerID: 1, GameID: 1, Score: 100, Hands: 300},
		{PlayerID: 1, GameID: 4, Score: 20, Hands: 80},
	}
	entries, err := Build(players, games, rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var cum []int64
	for _, e := range entries {
		cum = append(cum, e.CumulativeScore)
	}
	if want := []int64{100, 50, 50, 70}; !reflect.DeepEqual(cum, want) {
		t.Fatalf("cumulative sequence: got %v want %v", cum, want)
	}
	if e := entries[2]; e.Score != 0 || e.Hands != 0 || e.BuyIn != 0 || e.Profit != 0 {
		t.Fatalf("synthesized row must be all zeros: %+v", e)
	}
	if !entries[2].StartTime.Equal(day(3)) {
		t.Fatalf("synthesized row carries the game's start time: %v", entries[2].StartTime)
	}
}

func TestBuildResetsPerPlayer(t *testing.T) {
	players := []uint{1, 2}
	games := []Game{{ID: 1, StartTime: day(1)}, {ID: 2, StartTime: day(2)}}
	rows := []Participation{
		{PlayerID: 1, GameID: 1, Score: 500},
		{PlayerID: 2, GameID: 1, Score: -500},
	}
	entries, err := Build(players, games, rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// Output is grouped by player id ascending, sessions by time.
	if entries[0].PlayerID != 1 || entries[2].PlayerID != 2 {
		t.Fatalf("grouping order wrong: %+v", entries)
	}
	if entries[2].CumulativeScore != -500 {
		t.Fatalf("cumulative must reset between players, got %d", entries[2].CumulativeScore)
	}
}

func TestBuildTieBreakByGameID(t *testing.T) {
	players := []uint{1}
	sameTime := day(5)
	games := []Game{{ID: 9, StartTime: sameTime}, {ID: 4, StartTime: sameTime}}
	entries, err := Build(players, games, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if entries[0].GameID != 4 || entries[1].GameID != 9 {
		t.Fatalf("equal start times must order by game id: %+v", entries)
	}
}

func TestBuildIdempotent(t *testing.T) {
	players := []uint{2, 1}
	games := []Game{{ID: 1, StartTime: day(2)}, {ID: 2, StartTime: day(1)}}
	rows := []Participation{
		{PlayerID: 1, GameID: 1, Score: 10, Profit: 5, BuyIn: 100, Hands: 40},
		{PlayerID: 2, GameID: 2, Score: -10},
	}
	a, err := Build(players, games, rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, err := Build(players, games, rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same snapshot must yield identical output")
	}
}

func TestBuildRejectsUnknownReferences(t *testing.T) {
	games := []Game{{ID: 1, StartTime: day(1)}}
	if _, err := Build([]uint{1}, games, []Participation{{PlayerID: 7, GameID: 1}}); err == nil {
		t.Fatalf("unknown player must fail the build")
	}
	if _, err := Build([]uint{1}, games, []Participation{{PlayerID: 1, GameID: 9}}); err == nil {
		t.Fatalf("unknown game must fail the build")
	}
	if _, err := Build([]uint{1}, games, []Participation{
		{PlayerID: 1, GameID: 1, Score: 1},
		{PlayerID: 1, GameID: 1, Score: 2},
	}); err == nil {
		t.Fatalf("duplicate pair must fail the build")
	}
}

func TestBuildEmptyInputs(t *testing.T) {
	entries, err := Build(nil, nil, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("empty snapshot yields empty ledger, got %d", len(entries))
	}
}
