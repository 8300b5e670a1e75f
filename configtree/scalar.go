package configtree

import (
	"encoding"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
)

const (
	typeString  = "string"
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeArray   = "array"
	typeObject  = "object"
)

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	durationType        = reflect.TypeFor[time.Duration]()
)

// isText reports whether values of t decode themselves from text.
func isText(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(textUnmarshalerType)
}

// ScalarConverter converts booleans, numbers and strings. Numbers are
// coerced between kinds when the value fits; strings and booleans must match
// exactly.
type ScalarConverter struct{}

var _ Converter = ScalarConverter{}

// Supports implements [Converter].
func (ScalarConverter) Supports(t reflect.Type) bool {
	if isText(t) {
		return false
	}

	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// ToNode implements [Converter].
func (ScalarConverter) ToNode(parent *Node, key string, raw any, field *Field) (*Node, error) {
	v, err := coerceScalar(raw, field.Type)
	if err != nil {
		return nil, err
	}

	return NewNode(parent, key, field, v), nil
}

// FromNode implements [Converter].
func (c ScalarConverter) FromNode(n *Node) (any, error) {
	return c.FromValue(n.root.registry, n.Value())
}

// FromValue implements [Converter]. Named types are reduced to their basic
// kind so encoders need no knowledge of them.
func (ScalarConverter) FromValue(_ *Registry, v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	case reflect.Float32:
		// Round-trip through the shortest float32 representation so 0.1f
		// is written as 0.1.
		f, err := strconv.ParseFloat(strconv.FormatFloat(v.Float(), 'g', -1, 32), 64)
		if err != nil {
			return nil, &ConversionError{Err: err}
		}

		return f, nil
	case reflect.Float64:
		return v.Float(), nil
	default:
		return nil, &ShapeError{Want: "scalar", Got: v.Type().String()}
	}
}

// Describe implements [Converter].
func (ScalarConverter) Describe(_ *Registry, field *Field) string {
	switch field.Type.Kind() {
	case reflect.Bool:
		return "Boolean"
	case reflect.String:
		return "String"
	case reflect.Float32, reflect.Float64:
		return "Decimal"
	default:
		return "Integer"
	}
}

// Schema implements [SchemaDescriber].
func (ScalarConverter) Schema(field *Field, _ *Registry) *jsonschema.Schema {
	switch field.Type.Kind() {
	case reflect.Bool:
		return &jsonschema.Schema{Type: typeBoolean}
	case reflect.String:
		return &jsonschema.Schema{Type: typeString}
	case reflect.Float32, reflect.Float64:
		return &jsonschema.Schema{Type: typeNumber}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &jsonschema.Schema{Type: typeInteger, Minimum: jsonschema.Ptr(0.0)}
	default:
		return &jsonschema.Schema{Type: typeInteger}
	}
}

// coerceScalar converts raw to a value of type t.
func coerceScalar(raw any, t reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(raw)
	out := reflect.New(t).Elem()

	shape := func() error {
		return &ShapeError{Want: kindName(t), Got: kindOf(raw)}
	}
	overflow := func() error {
		return &FormatError{Value: toString(rv), Reason: "is out of range for " + t.String()}
	}

	switch t.Kind() {
	case reflect.Bool:
		if rv.Kind() != reflect.Bool {
			return out, shape()
		}

		out.SetBool(rv.Bool())

	case reflect.String:
		if rv.Kind() != reflect.String {
			return out, shape()
		}

		out.SetString(rv.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64

		switch {
		case isInt(rv.Kind()):
			i = rv.Int()
		case isUint(rv.Kind()):
			if rv.Uint() > math.MaxInt64 {
				return out, overflow()
			}

			i = int64(rv.Uint())
		case isFloat(rv.Kind()):
			f := rv.Float()
			if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
				return out, overflow()
			}

			i = int64(f)
		default:
			return out, shape()
		}

		if out.OverflowInt(i) {
			return out, overflow()
		}

		out.SetInt(i)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var u uint64

		switch {
		case isInt(rv.Kind()):
			if rv.Int() < 0 {
				return out, overflow()
			}

			u = uint64(rv.Int())
		case isUint(rv.Kind()):
			u = rv.Uint()
		case isFloat(rv.Kind()):
			f := rv.Float()
			if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
				return out, overflow()
			}

			u = uint64(f)
		default:
			return out, shape()
		}

		if out.OverflowUint(u) {
			return out, overflow()
		}

		out.SetUint(u)

	case reflect.Float32, reflect.Float64:
		var f float64

		switch {
		case isInt(rv.Kind()):
			f = float64(rv.Int())
		case isUint(rv.Kind()):
			f = float64(rv.Uint())
		case isFloat(rv.Kind()):
			f = rv.Float()
		default:
			return out, shape()
		}

		if out.OverflowFloat(f) {
			return out, overflow()
		}

		out.SetFloat(f)

	default:
		return out, &ShapeError{Want: "scalar", Got: t.String()}
	}

	return out, nil
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func kindName(t reflect.Type) string {
	switch {
	case t.Kind() == reflect.Bool:
		return "boolean"
	case t.Kind() == reflect.String:
		return "string"
	case isFloat(t.Kind()):
		return "decimal"
	default:
		return "integer"
	}
}

func toString(v reflect.Value) string {
	switch {
	case isInt(v.Kind()):
		return strconv.FormatInt(v.Int(), 10)
	case isUint(v.Kind()):
		return strconv.FormatUint(v.Uint(), 10)
	case isFloat(v.Kind()):
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	default:
		return v.String()
	}
}

// DurationConverter converts [time.Duration] from strings such as "5s" or
// "1m30s".
type DurationConverter struct{}

var _ Converter = DurationConverter{}

// Supports implements [Converter].
func (DurationConverter) Supports(t reflect.Type) bool {
	return t == durationType
}

// ToNode implements [Converter].
func (DurationConverter) ToNode(parent *Node, key string, raw any, field *Field) (*Node, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, &ShapeError{Want: "string", Got: kindOf(raw)}
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, &FormatError{Value: s, Reason: "is not a valid duration", Example: "1m30s"}
	}

	return NewNode(parent, key, field, reflect.ValueOf(d)), nil
}

// FromNode implements [Converter].
func (c DurationConverter) FromNode(n *Node) (any, error) {
	return c.FromValue(n.root.registry, n.Value())
}

// FromValue implements [Converter].
func (DurationConverter) FromValue(_ *Registry, v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	return time.Duration(v.Int()).String(), nil
}

// Describe implements [Converter].
func (DurationConverter) Describe(*Registry, *Field) string {
	return "Duration"
}

// Schema implements [SchemaDescriber].
func (DurationConverter) Schema(*Field, *Registry) *jsonschema.Schema {
	return &jsonschema.Schema{Type: typeString, Examples: []any{"1m30s"}}
}
