package configtree

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors returned by the engine.
var (
	ErrInvalidTarget = errors.New("invalid target")
	ErrPathNotFound  = errors.New("path not found")
	ErrDetached      = errors.New("node is not attached")
)

// ShapeError reports a raw document value of the wrong kind, e.g. a scalar
// where a mapping was required.
type ShapeError struct {
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("want %s, got %s", e.Want, e.Got)
}

// FormatError reports a raw value of the right kind that fails a converter's
// validation.
type FormatError struct {
	Value   string
	Reason  string
	Example string
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%q %s", e.Value, e.Reason)
	if e.Example != "" {
		msg += fmt.Sprintf(" (example: %s)", e.Example)
	}

	return msg
}

// ConversionError wraps an unexpected failure inside a converter, including
// recovered panics and failed assignments.
type ConversionError struct {
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed: %v", e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Warning is a single load or save anomaly. The field it names keeps its
// compiled-in default.
type Warning struct {
	Err      error
	Path     string
	Expected string
}

// String renders the warning for operators.
func (w Warning) String() string {
	if w.Path == "" {
		return fmt.Sprintf("document root must be of type %q: %v; defaults have been substituted",
			w.Expected, w.Err)
	}

	return fmt.Sprintf("config input at path %q must be of type %q: %v; default value has been substituted",
		w.Path, w.Expected, w.Err)
}

// kindOf names the document kind of a raw value for error messages.
func kindOf(raw any) string {
	if raw == nil {
		return "null"
	}

	if isMapping(raw) {
		return "mapping"
	}

	rv := reflect.ValueOf(raw)

	switch rv.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "decimal"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "sequence"
	}

	return rv.Type().String()
}
