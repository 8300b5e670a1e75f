package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"go.jacobcolvin.com/elevconf/configtree"
	"go.jacobcolvin.com/elevconf/settings"
)

var (
	errNoComment = errors.New("nothing to do: give comment text or --clear")
	errRejected  = errors.New("value rejected")
)

func (a *app) newGetCommand() *cobra.Command {
	var (
		comments bool
		describe bool
	)

	cmd := &cobra.Command{
		Use:   "get [--comments] [--type] <file> [path]",
		Short: "Print the value at a path",
		Long: `get prints the value stored at a path as YAML, after defaults and upgrades
have been applied. Without a path the whole file is printed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				out, err := f.Encode()
				if err != nil {
					return err
				}

				return a.write("", out)
			}

			n := f.Root.Find(args[1])
			if n == nil {
				return fmt.Errorf("%w: %s", configtree.ErrPathNotFound, args[1])
			}

			var b strings.Builder

			if describe {
				fmt.Fprintf(&b, "# type: %s\n", n.Describe())
			}

			if comments {
				for _, line := range n.Comments() {
					fmt.Fprintf(&b, "# %s\n", line)
				}
			}

			raw, err := n.Encode()
			if err != nil {
				return fmt.Errorf("encode %s: %w", args[1], err)
			}

			out, err := yaml.Marshal(raw)
			if err != nil {
				return fmt.Errorf("encode %s: %w", args[1], err)
			}

			b.Write(out)

			return a.write("", []byte(b.String()))
		},
	}

	cmd.Flags().BoolVar(&comments, "comments", false, "print the comments attached to the path")
	cmd.Flags().BoolVar(&describe, "type", false, "print the type expected at the path")

	return cmd
}

func (a *app) newSetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "set [-o file] <file> <path> <value>",
		Short: "Change the value at a path",
		Long: `set parses value as YAML, converts it to the type expected at path, and
writes the file back. A value that does not convert is rejected and the file
is left unchanged. New entries can be added to keyed sections such as
"elevators" or "elevators.DEFAULT.recipes" by naming the new key.`,
		Args: cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}

			var raw any

			err = yaml.UnmarshalWithOptions([]byte(args[2]), &raw, yaml.UseOrderedMap())
			if err != nil {
				return fmt.Errorf("parse value: %w", err)
			}

			before := len(f.Root.Warnings())

			if err := set(f.Root, args[1], raw); err != nil {
				return fmt.Errorf("set %s: %w", args[1], err)
			}

			// Nested values that fail to convert are absorbed as warnings.
			if ws := f.Root.Warnings()[before:]; len(ws) > 0 {
				return fmt.Errorf("set %s: %w: %s", args[1], errRejected, ws[0])
			}

			a.report(f)

			return a.save(f, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of the source")

	return cmd
}

func (a *app) newCommentCommand() *cobra.Command {
	var (
		output     string
		clearFirst bool
	)

	cmd := &cobra.Command{
		Use:   "comment [--clear] [-o file] <file> <path> [text]...",
		Short: "Add or remove comments at a path",
		Long: `comment appends one comment line per text argument above the value at path.
With --clear, existing comments at path are removed first.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			path, lines := args[1], args[2:]
			if len(lines) == 0 && !clearFirst {
				return errNoComment
			}

			f, err := a.load(args[0])
			if err != nil {
				return err
			}

			n := f.Root.Find(path)
			if n == nil {
				return fmt.Errorf("%w: %s", configtree.ErrPathNotFound, path)
			}

			if clearFirst {
				n.ClearComments()
			}

			for _, line := range lines {
				configtree.AddCommentAtPath(f.Root, path, line)
			}

			return a.save(f, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of the source")
	cmd.Flags().BoolVar(&clearFirst, "clear", false, "remove existing comments first")

	return cmd
}

// set assigns raw at path. A missing path whose parent is a keyed section
// adds a new entry to that section.
func set(root *configtree.Root, path string, raw any) error {
	if n := root.Find(path); n != nil {
		return n.Set(raw)
	}

	i := strings.LastIndexByte(path, '.')
	if i < 0 || strings.Contains(path[i+1:], "[") {
		return configtree.ErrPathNotFound
	}

	parent := root.Find(path[:i])
	if parent == nil {
		return configtree.ErrPathNotFound
	}

	if _, ok := parent.Converter().(configtree.MapConverter); !ok {
		return configtree.ErrPathNotFound
	}

	return parent.Set(yaml.MapSlice{{Key: path[i+1:], Value: raw}})
}

// report logs validation problems without failing the edit.
func (a *app) report(f *settings.File) {
	for _, err := range multierr.Errors(settings.Validate(f.Config)) {
		a.logger.Warn("invalid value", slog.Any("error", err))
	}
}

// save encodes f and writes it to output, or back to src when output is
// empty.
func (a *app) save(f *settings.File, src, output string) error {
	out, err := f.Encode()
	if err != nil {
		return err
	}

	if output == "" {
		output = src
	}

	if f.Upgraded && output == src {
		a.logger.Info("file upgraded while saving",
			slog.String("file", src),
			slog.String("from", f.Version),
		)
	}

	return a.write(output, out)
}
