package main

import (
	"flag"
	"log"

	"lh01/pkg/vision"
	"lh01/process/ingest"
)

func main() {
	dir := flag.String("dir", "uploads", "directory to scan for summary screenshots")
	pattern := flag.String("pattern", "anchor_img.jpg", "anchor pattern image path")
	minConf := flag.Float64("min-conf", vision.DefaultMinConfidence, "minimum anchor match confidence")
	watch := flag.Bool("watch", false, "watch directory for new files")
	workers := flag.Int("workers", 0, "worker pool size (default NumCPU)")
	dryRun := flag.Bool("dry-run", false, "parse and print JSON, no DB writes")
	verbose := flag.Bool("verbose", false, "verbose per-file logging")
	flag.Parse()

	err := ingest.Run(ingest.Options{
		Dir:         *dir,
		PatternPath: *pattern,
		MinConf:     *minConf,
		Watch:       *watch,
		Workers:     *workers,
		DryRun:      *dryRun,
		Verbose:     *verbose,
	})
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}
}
