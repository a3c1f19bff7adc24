package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jamesainslie/strung/pkg/strung/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the inventory report on file changes",
	Long: `Watch the instruments and selections files and re-render the inventory
report whenever either changes. Useful in a side terminal while editing
the instruments file. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// runWatch renders the report, then re-renders on every change until
// interrupted. Directories are watched rather than the files themselves
// because editors and the store both replace files by rename.
func runWatch(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	logger := logging.Get("watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := map[string]struct{}{
		env.cfg.InstrumentsPath: {},
		env.cfg.SelectionsPath:  {},
	}
	dirs := map[string]struct{}{}
	for path := range watched {
		dirs[filepath.Dir(path)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		logger.Debug("watching directory", "dir", dir)
	}

	if err := renderInventory(env); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	// Editors fire several events per save; coalesce them with a short
	// settle timer before re-rendering.
	var settle <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, relevant := watched[event.Name]; !relevant {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			settle = time.After(200 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-settle:
			settle = nil
			if err := renderInventory(env); err != nil {
				logger.Error("render failed", "error", err)
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		case <-sig:
			return nil
		}
	}
}
