package configtree

import (
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"
)

// Converter translates between raw document values and typed field values
// for the types it supports.
type Converter interface {
	// Supports reports whether the converter handles values of type t.
	Supports(t reflect.Type) bool
	// ToNode converts raw into a detached node for field under parent. It
	// returns a [*ShapeError], [*FormatError] or [*ConversionError] when raw
	// cannot be converted; the engine then keeps the field's default.
	ToNode(parent *Node, key string, raw any, field *Field) (*Node, error)
	// FromNode serializes the value of n, using n's children where the
	// converter builds them.
	FromNode(n *Node) (any, error)
	// FromValue serializes v without a tree.
	FromValue(reg *Registry, v reflect.Value) (any, error)
	// Describe names the type for operators, e.g. "Integer" or
	// "String Array".
	Describe(reg *Registry, field *Field) string
}

// SchemaDescriber is implemented by converters that can describe their
// values as JSON Schema.
type SchemaDescriber interface {
	Schema(field *Field, reg *Registry) *jsonschema.Schema
}

// Binder is implemented by container converters. Bind builds children for
// an attached node from its current value.
type Binder interface {
	Bind(n *Node)
}

// Enumerator is implemented by enum-like value types to list their valid
// names.
type Enumerator interface {
	EnumValues() []string
}

// Defaulter is implemented (on the pointer) by schema types that need
// non-zero defaults when a fresh value is created, such as a new map entry
// or sequence element.
type Defaulter interface {
	SetDefaults()
}

// freshValue returns a new addressable value of type t with defaults
// applied.
func freshValue(t reflect.Type) reflect.Value {
	if t.Kind() == reflect.Pointer {
		p := reflect.New(t.Elem())
		applyValueDefaults(p)

		return p
	}

	v := reflect.New(t).Elem()
	applyValueDefaults(v.Addr())

	return v
}

func applyValueDefaults(p reflect.Value) {
	if d, ok := p.Interface().(Defaulter); ok {
		d.SetDefaults()
	}
}
