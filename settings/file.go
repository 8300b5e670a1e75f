package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/elevconf/configtree"
	"go.jacobcolvin.com/elevconf/configtree/yamldoc"
)

// File is a settings file loaded into a config tree.
type File struct {
	// Config holds the loaded values. It is the target of Root.
	Config *Config
	// Root is the config tree over Config.
	Root *configtree.Root
	// Version is the version found in the input, or empty if it had none.
	Version string
	// Warnings lists every value that was replaced by its default.
	Warnings []string
	// Upgraded reports whether the input used an older schema version.
	Upgraded bool

	indent int
}

// Option configures [Load].
type Option func(*options)

type options struct {
	logger   *slog.Logger
	registry *configtree.Registry
	indent   int
}

// WithLogger sets the logger used for load warnings. The default is
// [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRegistry sets the converter registry. The default is
// [configtree.DefaultRegistry].
func WithRegistry(r *configtree.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithIndent sets the indentation used by [File.Encode].
func WithIndent(n int) Option {
	return func(o *options) {
		o.indent = n
	}
}

// Load reads a settings file. Files written by an older release are read
// with their own schema and upgraded; comments move with the values they
// describe.
//
// Load only fails when data is not valid YAML. Every other problem keeps
// the affected default and is reported in [File.Warnings].
func Load(data []byte, opts ...Option) (*File, error) {
	o := &options{
		logger:   slog.Default(),
		registry: configtree.DefaultRegistry(),
		indent:   2,
	}
	for _, opt := range opts {
		opt(o)
	}

	engine := configtree.New(
		configtree.WithRegistry(o.registry),
		configtree.WithLogger(o.logger),
	)

	var warnings []string

	doc, err := yamldoc.Decode(data)
	if errors.Is(err, yamldoc.ErrNotMapping) {
		w := configtree.Warning{Expected: "Mapping", Err: err}
		o.logger.Warn("substituting defaults", slog.Any("error", err))

		warnings = append(warnings, w.String())
		doc = &configtree.Document{}
	} else if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	f := &File{
		Version: versionOf(doc.Values),
		indent:  o.indent,
	}

	if isLegacy(f.Version) {
		err = f.loadLegacy(engine, doc)
	} else {
		err = f.load(engine, doc)
	}

	if err != nil {
		return nil, err
	}

	f.Warnings = append(warnings, f.Warnings...)

	if f.Upgraded {
		o.logger.Info("upgraded settings",
			slog.String("from", f.Version),
			slog.String("to", CurrentVersion),
		)
	}

	return f, nil
}

func (f *File) load(engine *configtree.Engine, doc *configtree.Document) error {
	cfg := Defaults()
	if definesTypes(doc.Values) {
		cfg.ElevatorTypes = ElevatorTypes{}
	}

	doc = &configtree.Document{Values: doc.Values, Comments: canonicalComments(doc.Comments)}

	root, warnings, err := engine.LoadDocument(doc, cfg)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	f.Config = cfg
	f.Root = root
	f.Warnings = warnings

	if major, ok := majorVersion(f.Version); f.Version != "" && (!ok || major != 5) {
		f.Warnings = append(f.Warnings, fmt.Sprintf(
			"unknown settings version %q; reading as %s", f.Version, CurrentVersion))
	}

	if cfg.Version != CurrentVersion {
		if n := root.Find("version"); n != nil {
			if err := n.SetValue(CurrentVersion); err != nil {
				return fmt.Errorf("set version: %w", err)
			}
		}

		f.Upgraded = f.Version != ""
	}

	return nil
}

func (f *File) loadLegacy(engine *configtree.Engine, doc *configtree.Document) error {
	old := DefaultsV4()
	if definesTypes(doc.Values) {
		old.ElevatorTypes = map[string]*ElevatorTypeV4{}
	}

	legacy, warnings, err := engine.LoadDocument(doc, old)
	if err != nil {
		return fmt.Errorf("load legacy settings: %w", err)
	}

	cfg := Upgrade(old)

	root, _, err := engine.Load(nil, cfg)
	if err != nil {
		return fmt.Errorf("load upgraded settings: %w", err)
	}

	carryComments(root, upgradeComments(legacy.CommentStore()))

	f.Config = cfg
	f.Root = root
	f.Warnings = warnings
	f.Upgraded = true

	return nil
}

// Encode writes the file's current values and comments as YAML.
func (f *File) Encode() ([]byte, error) {
	doc, err := f.Root.Save()
	if err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	b, err := yamldoc.Encode(doc, yamldoc.WithIndent(f.indent))
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}

	return b, nil
}

// carryComments replaces the comments of each path in comments that exists
// in the tree.
func carryComments(root *configtree.Root, comments configtree.Comments) {
	for _, p := range comments.Paths() {
		n := root.Find(p)
		if n == nil {
			continue
		}

		n.ClearComments()

		for _, line := range comments.Get(p) {
			n.AddComment(line)
		}
	}
}

// canonicalComments upper-cases the elevator type and recipe group names in
// comment paths to match the normalized keys.
func canonicalComments(comments configtree.Comments) configtree.Comments {
	out := configtree.Comments{}

	for _, p := range comments.Paths() {
		parts := strings.Split(p, ".")
		if len(parts) > 1 && parts[0] == "elevators" {
			parts[1] = strings.ToUpper(parts[1])

			if len(parts) > 3 && parts[2] == "recipes" {
				parts[3] = strings.ToUpper(parts[3])
			}
		}

		out.Add(strings.Join(parts, "."), comments.Get(p)...)
	}

	return out
}

func versionOf(values yaml.MapSlice) string {
	for _, item := range values {
		if fmt.Sprint(item.Key) == "version" && item.Value != nil {
			return fmt.Sprint(item.Value)
		}
	}

	return ""
}

// definesTypes reports whether values has an elevators mapping. Types in the
// file replace the default type rather than merging with it.
func definesTypes(values yaml.MapSlice) bool {
	for _, item := range values {
		if fmt.Sprint(item.Key) == "elevators" {
			_, ok := item.Value.(yaml.MapSlice)

			return ok
		}
	}

	return false
}

func isLegacy(version string) bool {
	major, ok := majorVersion(version)

	return ok && major < 5
}

func majorVersion(version string) (int, bool) {
	major, _, _ := strings.Cut(strings.TrimPrefix(version, "v"), ".")

	n, err := strconv.Atoi(major)
	if err != nil {
		return 0, false
	}

	return n, true
}
