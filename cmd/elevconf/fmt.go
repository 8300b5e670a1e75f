package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func (a *app) newFmtCommand() *cobra.Command {
	var (
		write bool
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [-w] [-l] <file>...",
		Short: "Rewrite settings files in canonical form",
		Long: `fmt loads each file and writes it back out with every setting present,
defaults filled in, and comments attached to the values they describe.
Invalid values are replaced by their defaults.

By default the result is printed. With -w, files that differ are rewritten
in place; with -l, their names are listed instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var errs error
			for _, path := range args {
				errs = multierr.Append(errs, a.format(path, write, list))
			}

			return errs
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list files whose formatting differs")

	return cmd
}

func (a *app) format(path string, write, list bool) error {
	data, err := a.read(path)
	if err != nil {
		return err
	}

	f, err := a.parse(path, data)
	if err != nil {
		return err
	}

	out, err := f.Encode()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	changed := !bytes.Equal(data, out)

	if list {
		if changed {
			fmt.Fprintln(a.stdout, path)
		}

		return nil
	}

	if !write || path == "-" {
		return a.write("", out)
	}

	if !changed {
		return nil
	}

	return writeFile(path, out)
}
