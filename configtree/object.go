package configtree

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
)

// ObjectConverter converts structs and pointers to structs by walking their
// persistent fields. Conversion works on a copy of the current value, so
// nested keys absent from the document keep their defaults and a failed
// conversion leaves the live value untouched.
type ObjectConverter struct{}

var (
	_ Converter = ObjectConverter{}
	_ Binder    = ObjectConverter{}
)

// Supports implements [Converter].
func (ObjectConverter) Supports(t reflect.Type) bool {
	if isText(t) {
		return false
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct
}

// ToNode implements [Converter].
func (ObjectConverter) ToNode(parent *Node, key string, raw any, field *Field) (*Node, error) {
	if !isMapping(raw) {
		return nil, &ShapeError{Want: "mapping", Got: kindOf(raw)}
	}

	n := NewNode(parent, key, field, stage(current(parent, key, field), field.Type))
	decodeFields(n, raw)

	return n, nil
}

// Bind implements [Binder].
func (ObjectConverter) Bind(n *Node) {
	if v := indirect(n.Value()); !v.IsValid() {
		return
	}

	bindFields(n)
}

// FromNode implements [Converter].
func (ObjectConverter) FromNode(n *Node) (any, error) {
	if v := indirect(n.Value()); !v.IsValid() {
		return nil, nil
	}

	return encodeFields(n), nil
}

// FromValue implements [Converter].
func (ObjectConverter) FromValue(reg *Registry, v reflect.Value) (any, error) {
	v = indirect(v)
	if !v.IsValid() {
		return nil, nil
	}

	out := yaml.MapSlice{}

	for _, f := range Fields(v.Type()) {
		item, err := encodeValue(reg, v.FieldByIndex(f.Index))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}

		out = insert(out, strings.Split(f.Name, "."), item)
	}

	return out, nil
}

// Describe implements [Converter].
func (ObjectConverter) Describe(*Registry, *Field) string {
	return "Section"
}

// Schema implements [SchemaDescriber].
func (ObjectConverter) Schema(field *Field, reg *Registry) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: typeObject}
	for _, f := range Fields(field.Type) {
		insertSchema(s, strings.Split(f.Name, "."), schemaOf(reg, f))
	}

	return s
}

// current returns the value a new node for key would replace: the struct
// field or map entry under parent. Sequence elements have no current value.
func current(parent *Node, key string, field *Field) reflect.Value {
	pv := indirect(parent.Value())
	if !pv.IsValid() {
		return reflect.Value{}
	}

	switch {
	case pv.Kind() == reflect.Struct && !field.IsElement():
		return pv.FieldByIndex(field.Index)
	case pv.Kind() == reflect.Map && pv.Type().Key().Kind() == reflect.String && !pv.IsNil():
		return pv.MapIndex(reflect.ValueOf(key).Convert(pv.Type().Key()))
	default:
		return reflect.Value{}
	}
}

// stage returns a copy of cur to convert into, or a fresh default value of
// type t when there is nothing to copy.
func stage(cur reflect.Value, t reflect.Type) reflect.Value {
	if t.Kind() == reflect.Pointer {
		if !cur.IsValid() || cur.IsNil() {
			return freshValue(t)
		}

		p := reflect.New(t.Elem())
		p.Elem().Set(cur.Elem())

		return p
	}

	if !cur.IsValid() {
		return freshValue(t)
	}

	v := reflect.New(t).Elem()
	v.Set(cur)

	return v
}
