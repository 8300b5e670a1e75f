package configtree

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
)

// Engine loads raw documents into schema instances and saves them back.
type Engine struct {
	registry *Registry
	logger   *slog.Logger
}

// Option configures an [Engine].
type Option func(*Engine)

// WithRegistry sets the converter registry. The default is
// [DefaultRegistry].
func WithRegistry(r *Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithLogger sets the logger warnings are reported to. The default is
// [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates a new [Engine].
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		e.registry = DefaultRegistry()
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Registry returns the engine's converter registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Load builds a config tree over target from doc. Target must be a non-nil
// pointer to a struct holding compiled-in defaults; doc is a decoded
// mapping or nil.
//
// Input anomalies never fail the load. Each field that cannot be converted
// keeps its default and produces one warning, and fields absent from doc
// are bound to their defaults. The only error is [ErrInvalidTarget].
func (e *Engine) Load(doc, target any) (*Root, []string, error) {
	root, err := e.load(doc, nil, target)
	if err != nil {
		return nil, nil, err
	}

	return root, root.warningStrings(), nil
}

// LoadDocument is like [Engine.Load] but also installs the document's
// comments into the tree.
func (e *Engine) LoadDocument(doc *Document, target any) (*Root, []string, error) {
	var (
		values   any
		comments Comments
	)

	if doc != nil {
		values = doc.Values
		comments = doc.Comments
	}

	root, err := e.load(values, comments, target)
	if err != nil {
		return nil, nil, err
	}

	return root, root.warningStrings(), nil
}

func (e *Engine) load(doc any, comments Comments, target any) (*Root, error) {
	root, err := newRoot(target, e.registry, e.logger)
	if err != nil {
		return nil, err
	}

	root.comments = comments.Clone()

	switch {
	case doc == nil:
		bindFields(root.Node)
	case isMapping(doc):
		decodeFields(root.Node, doc)
	default:
		root.Warn("", "Mapping", &ShapeError{Want: "mapping", Got: kindOf(doc)})
		bindFields(root.Node)
	}

	seedComments(root.Node)

	return root, nil
}

// Save builds a fresh tree over target without modifying it and serializes
// it with a copy of comments.
func (e *Engine) Save(target any, comments Comments) (*Document, error) {
	root, err := newRoot(target, e.registry, e.logger)
	if err != nil {
		return nil, err
	}

	root.comments = comments.Clone()
	bindFields(root.Node)
	seedComments(root.Node)

	return root.Save()
}

// Save serializes the tree's current values with a copy of its comments.
func (r *Root) Save() (*Document, error) {
	return &Document{
		Values:   encodeFields(r.Node),
		Comments: r.comments.Clone(),
	}, nil
}

// decodeFields converts each persistent field of n's struct value from the
// mapping raw and attaches the resulting children to n.
func decodeFields(n *Node, raw any) {
	fields := Fields(n.Value().Type())
	known := make(map[string]bool, len(fields))

	for _, f := range fields {
		known[f.Name] = true
		known[strings.SplitN(f.Name, ".", 2)[0]] = true

		v, ok := lookup(raw, f.Name)
		n.appendChild(decodeValue(n, f.Name, f, fieldSlot{index: f.Index}, v, ok))
	}

	for _, e := range entries(raw) {
		if !known[e.key] {
			n.root.logger.Debug("ignoring unknown key",
				slog.String("path", joinPath(n.Path(), e.key)),
			)
		}
	}
}

// decodeValue converts raw for field and attaches it through s. When raw is
// absent or cannot be converted, the node is bound to the existing value
// instead.
func decodeValue(parent *Node, key string, field *Field, s slot, raw any, present bool) *Node {
	if !present || raw == nil {
		return bind(parent, key, field, s)
	}

	n, err := convert(parent, key, field, raw)
	if err == nil {
		err = n.attach(s)
	}

	if err != nil {
		parent.root.Warn(joinPath(parent.Path(), key), describeField(parent.root.registry, field), err)

		return bind(parent, key, field, s)
	}

	return n
}

// convert runs the resolved converter, or assigns raw directly when no
// converter supports the field type.
func convert(parent *Node, key string, field *Field, raw any) (n *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			n = nil
			err = &ConversionError{Err: fmt.Errorf("%v", r)}
		}
	}()

	c := parent.root.registry.Resolve(field.Type)
	if c == nil {
		return opaque(parent, key, field, raw)
	}

	n, err = c.ToNode(parent, key, raw, field)
	if err != nil {
		return nil, err
	}

	if n == nil {
		return nil, &ConversionError{Err: fmt.Errorf("converter %T returned no node", c)}
	}

	// Converters may build nodes without NewNode; make sure they are detached
	// under the right parent.
	n.root = parent.root
	n.parent = parent
	n.key = key

	return n, nil
}

func opaque(parent *Node, key string, field *Field, raw any) (*Node, error) {
	rv := reflect.ValueOf(raw)
	if !rv.Type().AssignableTo(field.Type) {
		return nil, &ShapeError{Want: field.Type.String(), Got: kindOf(raw)}
	}

	return NewNode(parent, key, field, rv), nil
}

// bind creates an attached node for the existing value at s and binds its
// children.
func bind(parent *Node, key string, field *Field, s slot) *Node {
	n := boundNode(parent, key, field, s)
	bindChildren(n)

	return n
}

func bindChildren(n *Node) {
	n.children = nil

	if n.parent == nil {
		bindFields(n)

		return
	}

	if b, ok := n.Converter().(Binder); ok {
		b.Bind(n)
	}
}

func bindFields(n *Node) {
	for _, f := range Fields(n.Value().Type()) {
		n.appendChild(bind(n, f.Name, f, fieldSlot{index: f.Index}))
	}
}

// seedComments adds the default comments from field tags at paths that have
// none yet.
func seedComments(n *Node) {
	for _, c := range n.children {
		if c.field != nil && !c.field.IsElement() && len(c.field.Comments) > 0 {
			if p := c.Path(); len(n.root.comments.Get(p)) == 0 {
				n.root.comments.Add(p, c.field.Comments...)
			}
		}

		seedComments(c)
	}
}

// encodeFields serializes the field children of n into a mapping nested by
// decoded key segments.
func encodeFields(n *Node) yaml.MapSlice {
	out := yaml.MapSlice{}

	for _, c := range n.children {
		v, err := encodeNode(c)
		if err != nil {
			n.root.logger.Warn("omitting field from output",
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)

			continue
		}

		out = insert(out, strings.Split(c.key, "."), v)
	}

	return out
}

// encodeNode serializes n with the converter for its runtime type.
func encodeNode(n *Node) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = nil
			err = &ConversionError{Err: fmt.Errorf("%v", r)}
		}
	}()

	rv := n.Value()
	if !rv.IsValid() {
		return nil, nil
	}

	if rv.Kind() == reflect.Interface {
		return encodeValue(n.root.registry, rv)
	}

	c := n.root.registry.Resolve(rv.Type())
	if c == nil {
		return rv.Interface(), nil
	}

	return c.FromNode(n)
}

// encodeValue serializes v without a tree, using the converter for its
// runtime type.
func encodeValue(r *Registry, v reflect.Value) (any, error) {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, nil
		}

		v = v.Elem()
	}

	if !v.IsValid() {
		return nil, nil
	}

	c := r.Resolve(v.Type())
	if c == nil {
		return v.Interface(), nil
	}

	return c.FromValue(r, v)
}
