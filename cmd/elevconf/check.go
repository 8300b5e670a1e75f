package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"go.jacobcolvin.com/elevconf/settings"
)

// Editors often write a file in several steps; events closer together than
// this are handled as one change.
const watchDebounce = 100 * time.Millisecond

func (a *app) newCheckCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check [--watch] <file>",
		Short: "Report load warnings and invalid values",
		Long: `check loads a settings file and lists every value that would be replaced by
its default, followed by values that load but are out of range or refer to
missing settings or materials. It fails when anything is reported.

With --watch, the file is checked again each time it changes until
interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return a.watch(cmd.Context(), args[0])
			}

			return a.check(args[0])
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "check again whenever the file changes")

	return cmd
}

// check prints a report for path and returns [ErrCheckFailed] if it has any
// findings.
func (a *app) check(path string) error {
	f, err := a.load(path)
	if err != nil {
		return err
	}

	findings := len(f.Warnings)
	for _, w := range f.Warnings {
		fmt.Fprintf(a.stdout, "%s: warning: %s\n", path, w)
	}

	if f.Upgraded {
		fmt.Fprintf(a.stdout, "%s: note: written for %s; run migrate to upgrade to %s\n",
			path, f.Version, settings.CurrentVersion)
	}

	for _, e := range multierr.Errors(settings.Validate(f.Config)) {
		findings++

		fmt.Fprintf(a.stdout, "%s: invalid: %v\n", path, e)
	}

	if findings > 0 {
		return fmt.Errorf("%w: %s: %d problem(s)", ErrCheckFailed, path, findings)
	}

	fmt.Fprintf(a.stdout, "%s: ok\n", path)

	return nil
}

func (a *app) watch(ctx context.Context, path string) error {
	if path == "-" {
		return fmt.Errorf("%w: cannot watch stdin", ErrReadInput)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	defer func() {
		if err := w.Close(); err != nil {
			a.logger.Error("close watcher", slog.Any("error", err))
		}
	}()

	// Watch the directory so replacing the file with a rename is seen.
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	a.recheck(path)

	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}

			a.logger.Debug("file changed", slog.String("file", path), slog.String("op", ev.Op.String()))
			timer.Reset(watchDebounce)

		case <-timer.C:
			a.recheck(path)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			a.logger.Error("watch", slog.String("file", path), slog.Any("error", err))
		}
	}
}

// recheck runs check and logs failures other than findings, which check
// has already printed.
func (a *app) recheck(path string) {
	err := a.check(path)
	if err != nil && !errors.Is(err, ErrCheckFailed) {
		a.logger.Error("check", slog.Any("error", err))
	}
}
