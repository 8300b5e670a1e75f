package configtree

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// TextConverter converts types that decode themselves from strings through
// [encoding.TextUnmarshaler], such as enums. Types implementing
// [Enumerator] are described by their valid names.
type TextConverter struct{}

var _ Converter = TextConverter{}

// Supports implements [Converter].
func (TextConverter) Supports(t reflect.Type) bool {
	return isText(t) && t.Kind() != reflect.Pointer
}

// ToNode implements [Converter].
func (TextConverter) ToNode(parent *Node, key string, raw any, field *Field) (*Node, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, &ShapeError{Want: "string", Got: kindOf(raw)}
	}

	p := reflect.New(field.Type)

	u, _ := p.Interface().(encoding.TextUnmarshaler) //nolint:errcheck // Guaranteed by Supports.
	if err := u.UnmarshalText([]byte(s)); err != nil {
		fe := &FormatError{Value: s, Reason: err.Error()}
		if vals := enumValues(field.Type); len(vals) > 0 {
			fe.Reason = "is not one of " + strings.Join(vals, ", ")
		}

		return nil, fe
	}

	return NewNode(parent, key, field, p.Elem()), nil
}

// FromNode implements [Converter].
func (c TextConverter) FromNode(n *Node) (any, error) {
	return c.FromValue(n.root.registry, n.Value())
}

// FromValue implements [Converter].
func (TextConverter) FromValue(_ *Registry, v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	// MarshalText may have a pointer receiver; copy v so it is addressable.
	p := reflect.New(v.Type())
	p.Elem().Set(v)

	switch m := p.Interface().(type) {
	case encoding.TextMarshaler:
		b, err := m.MarshalText()
		if err != nil {
			return nil, &ConversionError{Err: err}
		}

		return string(b), nil
	case fmt.Stringer:
		return m.String(), nil
	}

	if v.Kind() == reflect.String {
		return v.String(), nil
	}

	return nil, &ConversionError{Err: fmt.Errorf("%s has no text encoding", v.Type())}
}

// Describe implements [Converter].
func (TextConverter) Describe(_ *Registry, field *Field) string {
	if vals := enumValues(field.Type); len(vals) > 0 {
		return "One of: " + strings.Join(vals, ", ")
	}

	return "String"
}

// Schema implements [SchemaDescriber].
func (TextConverter) Schema(field *Field, _ *Registry) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: typeString}
	for _, v := range enumValues(field.Type) {
		s.Enum = append(s.Enum, v)
	}

	return s
}

func enumValues(t reflect.Type) []string {
	if e, ok := reflect.New(t).Interface().(Enumerator); ok {
		return e.EnumValues()
	}

	return nil
}
