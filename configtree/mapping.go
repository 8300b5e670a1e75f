package configtree

import (
	"cmp"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
)

// KeyNormalizer is implemented by map types whose keys are canonicalized on
// load, for example upper-cased type names.
type KeyNormalizer interface {
	NormalizeKey(key string) string
}

// MapConverter converts maps keyed by strings. Entries in the document are
// merged over the current entries, and entries that fail to convert keep
// their current value. Saved output lists loaded keys in document order
// followed by any other keys in sorted order.
type MapConverter struct{}

var (
	_ Converter = MapConverter{}
	_ Binder    = MapConverter{}
)

// Supports implements [Converter].
func (MapConverter) Supports(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

// ToNode implements [Converter].
func (MapConverter) ToNode(parent *Node, key string, raw any, field *Field) (*Node, error) {
	if !isMapping(raw) {
		return nil, &ShapeError{Want: "mapping", Got: kindOf(raw)}
	}

	t := field.Type
	staged := reflect.MakeMap(t)

	if cur := current(parent, key, field); cur.IsValid() && !cur.IsNil() {
		iter := cur.MapRange()
		for iter.Next() {
			staged.SetMapIndex(iter.Key(), iter.Value())
		}
	}

	n := NewNode(parent, key, field, staged)
	elem := field.Params[1]
	normalizer, _ := reflect.Zero(t).Interface().(KeyNormalizer) //nolint:errcheck // Optional.
	seen := make(map[string]bool)

	for _, e := range entries(raw) {
		k := e.key
		if normalizer != nil {
			k = normalizer.NormalizeKey(k)
		}

		if seen[k] {
			n.root.Warn(joinPath(n.Path(), k), describeField(n.root.registry, elem),
				fmt.Errorf("duplicate key %q", e.key))

			continue
		}

		mk := reflect.ValueOf(k).Convert(t.Key())

		child := decodeValue(n, k, elem, mapSlot{key: mk}, e.value, true)
		if !child.Value().IsValid() {
			// Null or failed entry with no current value to fall back to.
			continue
		}

		seen[k] = true

		n.appendChild(child)
	}

	for _, k := range sortedKeys(staged) {
		if !seen[k.String()] {
			n.appendChild(bind(n, k.String(), elem, mapSlot{key: k}))
		}
	}

	return n, nil
}

// Bind implements [Binder].
func (MapConverter) Bind(n *Node) {
	v := indirect(n.Value())
	if !v.IsValid() || v.IsNil() {
		return
	}

	elem := n.field.Params[1]
	for _, k := range sortedKeys(v) {
		n.appendChild(bind(n, k.String(), elem, mapSlot{key: k}))
	}
}

// FromNode implements [Converter].
func (MapConverter) FromNode(n *Node) (any, error) {
	v := indirect(n.Value())
	out := yaml.MapSlice{}

	if !v.IsValid() || v.IsNil() {
		return out, nil
	}

	seen := make(map[string]bool, len(n.children))

	for _, c := range n.children {
		s, ok := c.slot.(mapSlot)
		if !ok || !v.MapIndex(s.key).IsValid() {
			continue
		}

		seen[c.key] = true

		item, err := encodeNode(c)
		if err != nil {
			n.root.logger.Warn("omitting entry from output",
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)

			continue
		}

		out = append(out, yaml.MapItem{Key: c.key, Value: item})
	}

	for _, k := range sortedKeys(v) {
		if seen[k.String()] {
			continue
		}

		item, err := encodeValue(n.root.registry, v.MapIndex(k))
		if err != nil {
			n.root.logger.Warn("omitting entry from output",
				slog.String("path", joinPath(n.Path(), k.String())),
				slog.Any("error", err),
			)

			continue
		}

		out = append(out, yaml.MapItem{Key: k.String(), Value: item})
	}

	return out, nil
}

// FromValue implements [Converter].
func (MapConverter) FromValue(reg *Registry, v reflect.Value) (any, error) {
	v = indirect(v)
	out := yaml.MapSlice{}

	if !v.IsValid() || v.IsNil() {
		return out, nil
	}

	for _, k := range sortedKeys(v) {
		item, err := encodeValue(reg, v.MapIndex(k))
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", k.String(), err)
		}

		out = append(out, yaml.MapItem{Key: k.String(), Value: item})
	}

	return out, nil
}

// Describe implements [Converter].
func (MapConverter) Describe(reg *Registry, field *Field) string {
	return describeField(reg, field.Params[1]) + " Map"
}

// Schema implements [SchemaDescriber].
func (MapConverter) Schema(field *Field, reg *Registry) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 typeObject,
		AdditionalProperties: schemaOf(reg, field.Params[1]),
	}
}

func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return cmp.Compare(a.String(), b.String())
	})

	return keys
}
