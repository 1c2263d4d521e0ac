// Package watch keeps a generate run alive and re-renders documentation
// whenever the watched source trees change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Gijsreyn/bicep-local-docgen/internal/config"
	"github.com/Gijsreyn/bicep-local-docgen/internal/ignore"
	"github.com/Gijsreyn/bicep-local-docgen/internal/logger"
	"github.com/Gijsreyn/bicep-local-docgen/internal/pipeline"
)

var log = logger.ForComponent("watch")

// debounceWindow batches bursts of file events into one regeneration.
const debounceWindow = 300 * time.Millisecond

// Run performs an initial generate and then regenerates on every change
// under the source directories until the context is cancelled. Re-rendering
// the same documents requires overwriting, so watch mode implies Force.
func Run(ctx context.Context, opts config.Options) error {
	opts.Force = true

	matcher, err := ignore.NewMatcher(opts.SourceDirs[0], opts.IgnoreFile)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	for _, dir := range opts.SourceDirs {
		if err := addTree(w, matcher, dir); err != nil {
			return err
		}
	}

	generate(opts)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if matcher.IsIgnored(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(w, matcher, event.Name); err != nil {
						log.Warn("cannot watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			log.Debug("file event", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				fire = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case <-fire:
			timer, fire = nil, nil
			generate(opts)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		}
	}
}

func generate(opts config.Options) {
	sum, err := pipeline.Generate(opts)
	if err != nil {
		log.Error("generate failed", "error", err)
		return
	}
	log.Info("generated", "written", len(sum.Rendered), "skipped", len(sum.Skipped), "failed", len(sum.Failed))
}

func addTree(w *fsnotify.Watcher, matcher *ignore.Matcher, root string) error {
	return filepath.WalkDir(root, func(path string, de os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !de.IsDir() {
			return nil
		}
		if path != root && matcher.IsIgnored(path) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			log.Warn("cannot watch directory", "path", path, "error", err)
		}
		return nil
	})
}
