package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"go.jacobcolvin.com/elevconf/log"
	"go.jacobcolvin.com/elevconf/profile"
	"go.jacobcolvin.com/elevconf/settings"
)

// Commands annotated with logToPublisher send their logs to the in-memory
// publisher instead of stderr.
const logToPublisher = "elevconf/log-publisher"

const historySize = 256

var (
	// ErrReadInput indicates a settings file could not be read.
	ErrReadInput = errors.New("read input")
	// ErrWriteOutput indicates output could not be written.
	ErrWriteOutput = errors.New("write output")
	// ErrCheckFailed indicates check found warnings or invalid values.
	ErrCheckFailed = errors.New("check failed")
)

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	logConfig     *log.Config
	profileConfig *profile.Config
	profiler      *profile.Profiler
	publisher     *log.Publisher
	logger        *slog.Logger

	indent int
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:         stdin,
		stdout:        stdout,
		stderr:        stderr,
		logConfig:     log.NewConfig(),
		profileConfig: profile.NewConfig(),
		publisher:     log.NewPublisher(log.WithHistory(historySize)),
		logger:        slog.New(slog.DiscardHandler),
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	a := newApp(stdin, stdout, stderr)

	defer func() {
		err = multierr.Combine(err, a.publisher.Close())

		if a.profiler != nil {
			err = multierr.Append(err, a.profiler.Stop())
		}
	}()

	cmd := a.newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd.ExecuteContext(ctx)
}

func (a *app) newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elevconf",
		Short: "Inspect, edit, and migrate elevator settings files",
		Long: `elevconf reads elevator settings files the way the plugin does. Invalid
values are replaced by their defaults and reported as warnings, files from
older releases are upgraded to the current layout, and comments are kept
through every edit.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.IntVar(&a.indent, "indent", 2, "indentation width for written YAML")
	a.logConfig.RegisterFlags(flags)
	a.profileConfig.RegisterFlags(flags)

	cmd.AddCommand(
		a.newCheckCommand(),
		a.newFmtCommand(),
		a.newGetCommand(),
		a.newSetCommand(),
		a.newCommentCommand(),
		a.newMigrateCommand(),
		a.newSchemaCommand(),
		a.newBrowseCommand(),
		newVersionCommand(),
	)

	err := multierr.Combine(
		a.logConfig.RegisterCompletions(cmd),
		a.profileConfig.RegisterCompletions(cmd),
	)
	if err != nil {
		fmt.Fprintf(a.stderr, "register completions: %v\n", err)
	}

	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.indent < 1 {
		return fmt.Errorf("%w: --indent must be at least 1, got %d", log.ErrInvalidArgument, a.indent)
	}

	var w io.Writer = a.stderr
	if cmd.Annotations[logToPublisher] != "" {
		w = a.publisher
	}

	logger, err := a.logConfig.NewLogger(w)
	if err != nil {
		return err
	}

	a.logger = logger

	if !a.profileConfig.Enabled() {
		return nil
	}

	p := a.profileConfig.NewProfiler()
	if err := p.Start(); err != nil {
		return err
	}

	a.profiler = p

	return nil
}

// load reads and loads the settings file at path.
func (a *app) load(path string) (*settings.File, error) {
	data, err := a.read(path)
	if err != nil {
		return nil, err
	}

	return a.parse(path, data)
}

// parse loads settings already read from path.
func (a *app) parse(path string, data []byte) (*settings.File, error) {
	f, err := settings.Load(data,
		settings.WithLogger(a.logger.With(slog.String("file", path))),
		settings.WithIndent(a.indent),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}
