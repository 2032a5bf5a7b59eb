package main

import (
	"flag"

	"lh01/process/report"
)

func main() {
	player := flag.String("player", "", "player name to report on (empty for all)")
	days := flag.Int("days", 0, "restrict to games within the last N days (0 for all)")
	flag.Parse()

	report.RunReport(*player, *days)
}
