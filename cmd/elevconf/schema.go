package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/elevconf/configtree"
	"go.jacobcolvin.com/elevconf/settings"
)

func (a *app) newSchemaCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "schema [-o file]",
		Short: "Print the JSON Schema of the current settings file",
		Long: `schema prints a JSON Schema describing the current settings layout, with
setting descriptions and default values. Point an editor's YAML language
server at it for completion and validation.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := configtree.New(configtree.WithLogger(a.logger)).JSONSchema(settings.Defaults())
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(s, "", strings.Repeat(" ", a.indent))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}

			return a.write(output, append(out, '\n'))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
