package configtree

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
)

// Node is one position in a config tree. An attached node has no value of
// its own: it resolves its value through its parent, so the schema instance
// stays the single source of truth.
type Node struct {
	slot     slot
	staged   reflect.Value
	root     *Root
	parent   *Node
	field    *Field
	key      string
	children []*Node
	detached bool
}

// NewNode returns a detached node holding a copy of v, for a converter to
// hand back from [Converter.ToNode]. The engine attaches it once conversion
// succeeds. NewNode panics if v cannot be stored in field.Type; the engine
// reports such panics as a [ConversionError].
func NewNode(parent *Node, key string, field *Field, v reflect.Value) *Node {
	staged := reflect.New(field.Type).Elem()
	if err := assign(staged, v); err != nil {
		panic(err)
	}

	return &Node{
		root:     parent.root,
		parent:   parent,
		field:    field,
		key:      key,
		staged:   staged,
		detached: true,
	}
}

func boundNode(parent *Node, key string, field *Field, s slot) *Node {
	return &Node{
		root:   parent.root,
		parent: parent,
		field:  field,
		key:    key,
		slot:   s,
	}
}

// Value returns the node's current value. It is the zero Value when the
// node points through a nil pointer or a removed map entry.
func (n *Node) Value() reflect.Value {
	switch {
	case n.detached:
		return n.staged
	case n.parent == nil:
		return n.root.value
	default:
		return n.slot.get(n.parent.Value())
	}
}

// Interface returns the node's current value as an interface, or nil.
func (n *Node) Interface() any {
	v := n.Value()
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}

	return v.Interface()
}

// Path returns the decoded path of n, such as "types.DEFAULT.sound.volume"
// or "recipes[2]". The root's path is "".
func (n *Node) Path() string {
	if n.parent == nil {
		return ""
	}

	return joinPath(n.parent.Path(), n.key)
}

func joinPath(parent, key string) string {
	switch {
	case parent == "":
		return key
	case strings.HasPrefix(key, "["):
		return parent + key
	default:
		return parent + "." + key
	}
}

func elementKey(i int) string {
	return fmt.Sprintf("[%d]", i)
}

// Key returns the node's local key.
func (n *Node) Key() string { return n.key }

// Field returns the node's field descriptor.
func (n *Node) Field() *Field { return n.field }

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Root returns the tree root.
func (n *Node) Root() *Root { return n.root }

// Detached reports whether n holds a staged value not yet written to its
// parent.
func (n *Node) Detached() bool { return n.detached }

// Children returns the node's children in order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)

	return out
}

// Converter returns the converter resolved for the node's declared type.
func (n *Node) Converter() Converter {
	return n.root.registry.Resolve(n.field.Type)
}

// Describe returns the human-readable type name of the node.
func (n *Node) Describe() string {
	return describeField(n.root.registry, n.field)
}

// AddComment appends a comment line at the node's path.
func (n *Node) AddComment(text string) {
	n.root.comments.Add(n.Path(), text)
}

// Comments returns the comment lines at the node's path.
func (n *Node) Comments() []string {
	return n.root.comments.Get(n.Path())
}

// ClearComments removes the comments at the node's path.
func (n *Node) ClearComments() {
	n.root.comments.Clear(n.Path())
}

// attach writes the staged value into the parent's value through s.
func (n *Node) attach(s slot) (err error) {
	n.slot = s
	if !n.detached {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = &ConversionError{Err: fmt.Errorf("%v", r)}
		}
	}()

	if err := s.set(n.parent.Value(), n.staged); err != nil {
		return err
	}

	n.staged = reflect.Value{}
	n.detached = false

	return nil
}

func (n *Node) appendChild(c *Node) {
	c.parent = n
	n.children = append(n.children, c)
}

// Root is the top of a config tree. It owns the comment store, the
// warnings raised while building the tree, and the registry and logger used
// to build it.
type Root struct {
	*Node

	target   any
	value    reflect.Value
	registry *Registry
	logger   *slog.Logger
	comments Comments
	warnings []Warning
}

func newRoot(target any, registry *Registry, logger *slog.Logger) (*Root, error) {
	rv := reflect.ValueOf(target)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: want non-nil pointer to struct, got %T", ErrInvalidTarget, target)
	}

	r := &Root{
		target:   target,
		value:    rv.Elem(),
		registry: registry,
		logger:   logger,
		comments: Comments{},
	}
	r.Node = &Node{root: r, field: &Field{Type: rv.Elem().Type()}}

	return r, nil
}

// Target returns the schema instance the tree is bound to.
func (r *Root) Target() any { return r.target }

// Registry returns the registry the tree was built with.
func (r *Root) Registry() *Registry { return r.registry }

// Logger returns the logger the tree reports to.
func (r *Root) Logger() *slog.Logger { return r.logger }

// CommentStore returns the live comment store.
func (r *Root) CommentStore() Comments { return r.comments }

// Warnings returns the anomalies recorded while building and editing the
// tree.
func (r *Root) Warnings() []Warning {
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)

	return out
}

// Warn records a conversion anomaly at path and logs it. Converters call it
// for failures they absorb themselves, such as dropped sequence elements.
func (r *Root) Warn(path, expected string, err error) {
	w := Warning{Path: path, Expected: expected, Err: err}
	r.warnings = append(r.warnings, w)

	r.logger.Warn("substituting default",
		slog.String("path", path),
		slog.String("expected", expected),
		slog.Any("error", err),
	)
}

func (r *Root) warningStrings() []string {
	out := make([]string, 0, len(r.warnings))
	for _, w := range r.warnings {
		out = append(out, w.String())
	}

	return out
}
