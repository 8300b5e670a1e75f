package configtree

import (
	"reflect"
	"regexp"

	"github.com/google/jsonschema-go/jsonschema"
)

// identifierPattern matches a namespaced key such as "minecraft:white_wool".
var identifierPattern = regexp.MustCompile(`^([a-z0-9._-]+):([a-z0-9._-]+)$`)

const identifierExample = "minecraft:white_wool"

// Identifier is a two-segment namespaced key.
type Identifier struct {
	Namespace string
	Key       string
}

// ParseIdentifier parses s in "namespace:key" form.
func ParseIdentifier(s string) (Identifier, error) {
	m := identifierPattern.FindStringSubmatch(s)
	if m == nil {
		return Identifier{}, &FormatError{
			Value:   s,
			Reason:  "is not a valid namespaced key",
			Example: identifierExample,
		}
	}

	return Identifier{Namespace: m[1], Key: m[2]}, nil
}

// MustIdentifier is like [ParseIdentifier] but panics on invalid input. Use
// it for compiled-in defaults.
func MustIdentifier(s string) Identifier {
	id, err := ParseIdentifier(s)
	if err != nil {
		panic(err)
	}

	return id
}

// String returns "namespace:key", or "" for the zero value.
func (id Identifier) String() string {
	if id.IsZero() {
		return ""
	}

	return id.Namespace + ":" + id.Key
}

// IsZero reports whether id is unset.
func (id Identifier) IsZero() bool {
	return id.Namespace == "" && id.Key == ""
}

var identifierType = reflect.TypeFor[Identifier]()

// IdentifierConverter converts [Identifier] fields. Malformed input never
// panics or aborts the load: the field keeps its default.
type IdentifierConverter struct{}

var _ Converter = IdentifierConverter{}

// Supports implements [Converter].
func (IdentifierConverter) Supports(t reflect.Type) bool {
	return t == identifierType
}

// ToNode implements [Converter].
func (IdentifierConverter) ToNode(parent *Node, key string, raw any, field *Field) (*Node, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, &ShapeError{Want: "string", Got: kindOf(raw)}
	}

	id, err := ParseIdentifier(s)
	if err != nil {
		return nil, err
	}

	return NewNode(parent, key, field, reflect.ValueOf(id)), nil
}

// FromNode implements [Converter].
func (c IdentifierConverter) FromNode(n *Node) (any, error) {
	return c.FromValue(n.root.registry, n.Value())
}

// FromValue implements [Converter].
func (IdentifierConverter) FromValue(_ *Registry, v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	id, ok := v.Interface().(Identifier)
	if !ok || id.IsZero() {
		return nil, nil
	}

	return id.String(), nil
}

// Describe implements [Converter].
func (IdentifierConverter) Describe(*Registry, *Field) string {
	return "Namespaced Key"
}

// Schema implements [SchemaDescriber].
func (IdentifierConverter) Schema(*Field, *Registry) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     typeString,
		Pattern:  identifierPattern.String(),
		Examples: []any{identifierExample},
	}
}
