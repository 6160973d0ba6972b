package main

import (
	"log/slog"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceTriggers collapses a burst of file-system event timestamps into
// the set of recompiles a single-flight debounce window would actually
// fire: events less than window apart from the previous event in their run
// share one trigger, emitted at the last event in that run. Kept as a pure
// function of a timestamp slice (not a running watcher) so it's testable
// without touching a real filesystem, per SPEC_FULL.md §8's watch-mode
// single-flight property.
func debounceTriggers(events []time.Time, window time.Duration) []time.Time {
	if len(events) == 0 {
		return nil
	}
	sorted := append([]time.Time(nil), events...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	triggers := []time.Time{sorted[0]}
	last := sorted[0]
	for _, t := range sorted[1:] {
		if t.Sub(last) >= window {
			triggers = append(triggers, t)
		} else {
			triggers[len(triggers)-1] = t
		}
		last = t
	}
	return triggers
}

// watchAndCompile re-runs compile on every burst of filesystem changes
// under the areas file and snippets directory. Each event restarts a timer
// of length window, the same trailing-window rule debounceTriggers applies
// to a timestamp slice, so a save-everything editor action triggers one
// recompile, not one per touched file. Errors are logged, not fatal: watch
// mode keeps running until the process is killed.
func watchAndCompile(logger *slog.Logger, in pipelineInputs, outputDir string, window time.Duration, compile func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(in.AreasPath); err != nil {
		return err
	}
	if in.SnippetsDir != "" {
		if err := watcher.Add(in.SnippetsDir); err != nil {
			return err
		}
	}

	run := func() {
		if err := compile(); err != nil {
			logger.Error("watch: compile failed", slog.String("error", err.Error()))
			return
		}
		logger.Info("watch: recompiled", slog.String("output", outputDir))
	}
	run()

	var timer *time.Timer
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(window, run)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch: fsnotify error", slog.String("error", err.Error()))
		}
	}
}
