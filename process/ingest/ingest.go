// Package ingest batch-processes summary screenshots from a directory,
// optionally watching it for new files. Each image runs through the
// extraction pipeline and is persisted like an API upload.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"
	"gorm.io/gorm"

	"lh01/pkg/vision"
	"lh01/store"
)

// Options controls one ingest run.
type Options struct {
	Dir         string
	PatternPath string
	MinConf     float64
	Watch       bool
	Workers     int
	DryRun      bool // parse and print, no DB writes
	Verbose     bool
}

type runner struct {
	opts   Options
	parser *vision.Parser
	db     *gorm.DB
}

// Run scans opts.Dir, parses every screenshot and persists the results.
// With Watch set it then blocks, processing files as they appear.
func Run(opts Options) error {
	pattern, err := imaging.Open(opts.PatternPath)
	if err != nil {
		return fmt.Errorf("open anchor pattern: %w", err)
	}
	r := &runner{opts: opts, parser: vision.NewParser(pattern, opts.MinConf)}
	if !opts.DryRun {
		r.db = store.MustOpenFromEnv()
	}

	files := listImageFiles(opts.Dir)
	workers := effectiveWorkers(opts.Workers)
	log.Printf("Scanning %d files in %s (workers=%d)", len(files), opts.Dir, workers)
	r.runWorkerPool(files, workers, nil)

	if opts.Watch {
		return r.watchDirectory(workers)
	}
	return nil
}

func effectiveWorkers(w int) int {
	if w <= 0 {
		return runtime.NumCPU()
	}
	return w
}

func (r *runner) logV(format string, args ...any) {
	if r.opts.Verbose {
		log.Printf(format, args...)
	}
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// runWorkerPool fans file names out to workers. When extraCh is non-nil the
// pool keeps running, relaying names from it (watch mode).
func (r *runner) runWorkerPool(initial []string, workers int, extraCh <-chan string) {
	fileCh := make(chan string, 1024)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				r.processFile(name)
			}
		}()
	}
	go func() {
		for _, f := range initial {
			fileCh <- f
		}
		if extraCh != nil {
			for n := range extraCh {
				fileCh <- n
			}
		}
		close(fileCh)
	}()
	if extraCh == nil {
		wg.Wait()
	}
}

func (r *runner) processFile(name string) {
	full := filepath.Join(r.opts.Dir, name)
	shot, err := r.parser.ParseFile(full)
	if err != nil {
		log.Printf("parse error %s: %v", name, err)
		return
	}
	r.logV("parsed %s: game=%q players=%d conf=%.2f", name, shot.GameName.Text, len(shot.RecordList), shot.AnchorConfidence)

	if r.opts.DryRun {
		out, _ := json.MarshalIndent(shot, "", "  ")
		fmt.Printf("DRY %s:\n%s\n", name, out)
		return
	}
	game, err := store.SaveScreenshot(r.db, shot)
	if err != nil {
		log.Printf("persist error %s: %v", name, err)
		return
	}
	fmt.Printf("ingested %s -> game id=%d players=%d\n", name, game.ID, len(shot.RecordList))

	if err := moveToProcessed(r.opts.Dir, full, name); err != nil {
		log.Printf("WARN failed to move processed file %s: %v", name, err)
	}
}

// moveToProcessed moves a handled file into <dir>/processed/<name> so a
// rescan doesn't re-ingest it. Rename first, copy+remove as fallback.
func moveToProcessed(dir, srcFullPath, name string) error {
	processedDir := filepath.Join(dir, "processed")
	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(processedDir, name)
	if err := os.Rename(srcFullPath, dst); err == nil {
		return nil
	}
	in, err := os.Open(srcFullPath)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return os.Remove(srcFullPath)
}

func (r *runner) watchDirectory(workers int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(r.opts.Dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", r.opts.Dir)

	fileCh := make(chan string, 256)
	go func() {
		// simple debounce map of pending files
		pending := map[string]time.Time{}
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(fileCh)
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create {
					name := filepath.Base(ev.Name)
					if !isSupportedExt(name) {
						continue
					}
					pending[name] = time.Now()
				}
			case <-ticker.C:
				now := time.Now()
				for name, t := range pending {
					if now.Sub(t) > 300*time.Millisecond { // stable
						fileCh <- name
						delete(pending, name)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					close(fileCh)
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()

	go r.runWorkerPool(nil, workers, fileCh)
	// block forever (Ctrl+C to exit)
	select {}
}
