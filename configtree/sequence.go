package configtree

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
)

// SequenceConverter converts slices and arrays element by element. An
// element that fails to convert is dropped with a warning naming its
// index; the remaining elements still load. Byte slices and text-encoded
// slice types are left to other converters.
type SequenceConverter struct{}

var (
	_ Converter = SequenceConverter{}
	_ Binder    = SequenceConverter{}
)

var mapSliceType = reflect.TypeFor[yaml.MapSlice]()

// Supports implements [Converter].
func (SequenceConverter) Supports(t reflect.Type) bool {
	if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
		return false
	}

	return t.Elem().Kind() != reflect.Uint8 && t != mapSliceType && !isText(t)
}

// ToNode implements [Converter].
func (SequenceConverter) ToNode(parent *Node, key string, raw any, field *Field) (*Node, error) {
	items, ok := sequenceItems(raw)
	if !ok {
		return nil, &ShapeError{Want: "sequence", Got: kindOf(raw)}
	}

	elem := field.Params[0]
	path := joinPath(parent.Path(), key)

	// Convert into a scratch slice first so element paths are reported
	// relative to the final tree.
	n := NewNode(parent, key, field, reflect.Zero(field.Type))
	scratch := reflect.MakeSlice(reflect.SliceOf(elem.Type), len(items), len(items))
	n.staged = scratch

	kept := make([]*Node, 0, len(items))

	for i, item := range items {
		ek := elementKey(i)

		if item == nil {
			parent.root.Warn(path+ek, describeField(parent.root.registry, elem),
				&ShapeError{Want: kindName(elem.Type), Got: "null"})

			continue
		}

		child, err := convert(n, ek, elem, item)
		if err == nil {
			err = child.attach(indexSlot{index: i})
		}

		if err != nil {
			parent.root.Warn(path+ek, describeField(parent.root.registry, elem), err)

			continue
		}

		kept = append(kept, child)
	}

	staged := reflect.New(field.Type).Elem()
	if field.Type.Kind() == reflect.Slice {
		staged.Set(reflect.MakeSlice(field.Type, len(kept), len(kept)))
	}

	if field.Type.Kind() == reflect.Array && len(kept) > field.Type.Len() {
		for i := field.Type.Len(); i < len(kept); i++ {
			parent.root.Warn(path+elementKey(i), describeField(parent.root.registry, elem),
				fmt.Errorf("exceeds array length %d", field.Type.Len()))
		}

		kept = kept[:field.Type.Len()]
	}

	// Element values resolve through their old index in the scratch slice,
	// so read them all before n.staged is replaced.
	for j, child := range kept {
		staged.Index(j).Set(child.Value())
	}

	n.staged = staged
	n.children = nil

	for j, child := range kept {
		child.key = elementKey(j)
		child.slot = indexSlot{index: j}
		n.appendChild(child)
	}

	return n, nil
}

// Bind implements [Binder].
func (SequenceConverter) Bind(n *Node) {
	v := indirect(n.Value())
	if !v.IsValid() {
		return
	}

	elem := n.field.Params[0]
	for i := range v.Len() {
		n.appendChild(bind(n, elementKey(i), elem, indexSlot{index: i}))
	}
}

// FromNode implements [Converter]. Elements beyond the bound children, for
// example ones appended through the schema instance, are serialized from
// their values.
func (SequenceConverter) FromNode(n *Node) (any, error) {
	v := indirect(n.Value())
	if !v.IsValid() {
		return []any{}, nil
	}

	out := make([]any, 0, v.Len())

	for i := range v.Len() {
		var (
			item any
			err  error
		)

		if i < len(n.children) {
			item, err = encodeNode(n.children[i])
		} else {
			item, err = encodeValue(n.root.registry, v.Index(i))
		}

		if err != nil {
			n.root.logger.Warn("omitting element from output",
				slog.String("path", joinPath(n.Path(), elementKey(i))),
				slog.Any("error", err),
			)

			continue
		}

		out = append(out, item)
	}

	return out, nil
}

// FromValue implements [Converter].
func (SequenceConverter) FromValue(reg *Registry, v reflect.Value) (any, error) {
	v = indirect(v)
	if !v.IsValid() {
		return []any{}, nil
	}

	out := make([]any, 0, v.Len())

	for i := range v.Len() {
		item, err := encodeValue(reg, v.Index(i))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		out = append(out, item)
	}

	return out, nil
}

// Describe implements [Converter].
func (SequenceConverter) Describe(reg *Registry, field *Field) string {
	return describeField(reg, field.Params[0]) + " Array"
}

// Schema implements [SchemaDescriber].
func (SequenceConverter) Schema(field *Field, reg *Registry) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:  typeArray,
		Items: schemaOf(reg, field.Params[0]),
	}
}

func sequenceItems(raw any) ([]any, bool) {
	switch s := raw.(type) {
	case yaml.MapSlice:
		return nil, false
	case []any:
		return s, true
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	items := make([]any, rv.Len())
	for i := range rv.Len() {
		items[i] = rv.Index(i).Interface()
	}

	return items, true
}
