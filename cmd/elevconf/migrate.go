package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"go.jacobcolvin.com/elevconf/settings"
)

func (a *app) newMigrateCommand() *cobra.Command {
	var noBackup bool

	cmd := &cobra.Command{
		Use:   "migrate [--no-backup] <file>...",
		Short: "Upgrade settings files to the current version",
		Long: `migrate rewrites settings files from older releases in the current layout.
Renamed settings keep their values and comments. The original file is kept
next to the new one with a .bak suffix unless --no-backup is set. Files that
are already current are left untouched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var errs error
			for _, path := range args {
				errs = multierr.Append(errs, a.migrate(path, !noBackup))
			}

			return errs
		},
	}

	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "do not keep a copy of the original file")

	return cmd
}

func (a *app) migrate(path string, backup bool) error {
	data, err := a.read(path)
	if err != nil {
		return err
	}

	f, err := a.parse(path, data)
	if err != nil {
		return err
	}

	if !f.Upgraded {
		fmt.Fprintf(a.stdout, "%s: already at %s\n", path, settings.CurrentVersion)

		return nil
	}

	out, err := f.Encode()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if path == "-" {
		return a.write("", out)
	}

	if backup {
		if err := writeFile(path+".bak", data); err != nil {
			return err
		}
	}

	if err := writeFile(path, out); err != nil {
		return err
	}

	a.logger.Info("migrated settings",
		slog.String("file", path),
		slog.String("from", f.Version),
		slog.Int("warnings", len(f.Warnings)),
	)
	fmt.Fprintf(a.stdout, "%s: upgraded %s -> %s\n", path, f.Version, settings.CurrentVersion)

	return nil
}
