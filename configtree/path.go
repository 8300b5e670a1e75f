package configtree

import (
	"fmt"
	"reflect"
	"strings"
)

// Find returns the node at the decoded path below n, or nil. Paths are
// relative to the tree root, so Find on the root accepts any path produced
// by [Node.Path].
func (n *Node) Find(path string) *Node {
	if n.Path() == path {
		return n
	}

	for _, c := range n.children {
		p := c.Path()
		if p == path {
			return c
		}

		if strings.HasPrefix(path, p) && len(path) > len(p) && (path[len(p)] == '.' || path[len(p)] == '[') {
			if found := c.Find(path); found != nil {
				return found
			}
		}
	}

	return nil
}

// GetValueAtPath returns the current value at path, or false if no node
// exists there.
func GetValueAtPath(root *Root, path string) (any, bool) {
	n := root.Find(path)
	if n == nil {
		return nil, false
	}

	return n.Interface(), true
}

// AddCommentAtPath appends a comment line at path. It reports false if no
// node exists there.
func AddCommentAtPath(root *Root, path, text string) bool {
	n := root.Find(path)
	if n == nil {
		return false
	}

	n.AddComment(text)

	return true
}

// Set converts raw through the node's converter and replaces the node's
// value and subtree. On failure the value is left untouched and the typed
// conversion error is returned.
func (n *Node) Set(raw any) error {
	if n.parent == nil {
		return fmt.Errorf("%w: cannot replace the root", ErrInvalidTarget)
	}

	if n.detached {
		return ErrDetached
	}

	if raw == nil {
		return &ShapeError{Want: kindName(n.field.Type), Got: "null"}
	}

	staged, err := convert(n.parent, n.key, n.field, raw)
	if err != nil {
		return err
	}

	if err := staged.attach(n.slot); err != nil {
		return err
	}

	n.children = nil
	for _, c := range staged.children {
		n.appendChild(c)
	}

	return nil
}

// SetValue assigns a typed value to the node and rebuilds its subtree.
func (n *Node) SetValue(v any) (err error) {
	if n.parent == nil {
		return fmt.Errorf("%w: cannot replace the root", ErrInvalidTarget)
	}

	if n.detached {
		return ErrDetached
	}

	defer func() {
		if r := recover(); r != nil {
			err = &ConversionError{Err: fmt.Errorf("%v", r)}
		}
	}()

	if err := n.slot.set(n.parent.Value(), reflect.ValueOf(v)); err != nil {
		return err
	}

	bindChildren(n)

	return nil
}

// Encode returns the node's current value in document form, as [Root.Save]
// would write it.
func (n *Node) Encode() (any, error) {
	return encodeNode(n)
}
