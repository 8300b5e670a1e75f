package configtree

import "reflect"

// Registry is an ordered list of converters. Resolution is first match
// wins, so more specific converters must be registered before general
// ones.
//
// A Registry is not safe for concurrent Register and Resolve calls.
type Registry struct {
	converters []Converter
}

// NewRegistry returns a registry holding converters in the given order.
func NewRegistry(converters ...Converter) *Registry {
	r := &Registry{}
	for _, c := range converters {
		r.Register(c)
	}

	return r
}

// DefaultRegistry returns a registry with the built-in converters.
// Identifier precedes Object because identifiers are structs, and Text
// precedes Scalar and Sequence so text-encoded types win over their
// underlying kinds.
func DefaultRegistry() *Registry {
	return NewRegistry(
		IdentifierConverter{},
		DurationConverter{},
		TextConverter{},
		ScalarConverter{},
		SequenceConverter{},
		MapConverter{},
		ObjectConverter{},
	)
}

// Register appends c. Duplicates are not removed.
func (r *Registry) Register(c Converter) {
	r.converters = append(r.converters, c)
}

// Resolve returns the first converter supporting t, or nil.
func (r *Registry) Resolve(t reflect.Type) Converter {
	if t == nil {
		return nil
	}

	for _, c := range r.converters {
		if c.Supports(t) {
			return c
		}
	}

	return nil
}

// Converters returns the registered converters in order.
func (r *Registry) Converters() []Converter {
	out := make([]Converter, len(r.converters))
	copy(out, r.converters)

	return out
}

// describeField names field's type with the resolved converter, falling back
// to the Go type name for opaque values.
func describeField(r *Registry, field *Field) string {
	if c := r.Resolve(field.Type); c != nil {
		return c.Describe(r, field)
	}

	return field.Type.String()
}
