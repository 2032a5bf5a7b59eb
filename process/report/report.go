package report

import (
	"fmt"
	"log"
	"time"

	"lh01/store"
)

// RunReport prints the cumulative score series, either for one player by
// name or for everyone. days > 0 restricts the session window.
func RunReport(playerName string, days int) {
	gdb := store.MustOpenFromEnv()

	rows, err := store.PlayerRecords(gdb, days)
	if err != nil {
		log.Fatalf("ledger build failed: %v", err)
	}

	printed := 0
	current := uint(0)
	for _, r := range rows {
		if playerName != "" && r.PlayerName != playerName {
			continue
		}
		if r.PlayerID != current {
			current = r.PlayerID
			fmt.Printf("== %s (id=%d)\n", r.PlayerName, r.PlayerID)
		}
		fmt.Printf("%s|game=%d|hands=%d|buy_in=%d|score=%d|cumulative=%d\n",
			r.StartTime.Format(time.RFC3339), r.GameID, r.Hands, r.BuyIn, r.Score, r.CumulativeScore)
		printed++
	}
	if printed == 0 {
		fmt.Println("no records")
	}
}
