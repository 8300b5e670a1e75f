package configtree

import (
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

const (
	// TagKey is the struct tag naming a field's encoded key. A value of "-"
	// marks the field as non-persistent.
	TagKey = "config"
	// TagComment is the struct tag holding default comment lines, separated
	// by "|".
	TagComment = "comment"

	// KeySeparator stands in for "." in encoded keys, since Go identifiers
	// and most tag conventions cannot contain dots.
	KeySeparator = "_"
)

// Field describes one persistent field of a schema type, or the element or
// key/value type of a container field.
type Field struct {
	Type reflect.Type
	// Name is the decoded key, which may contain "." to address nested
	// document mappings.
	Name string
	// Key is the encoded key as written in the tag.
	Key      string
	GoName   string
	Index    []int
	Params   []*Field
	Comments []string
}

// IsElement reports whether f describes a container element rather than a
// struct field.
func (f *Field) IsElement() bool {
	return f.Index == nil
}

// DecodeKey turns an encoded key into its dotted document path.
func DecodeKey(key string) string {
	return strings.ReplaceAll(key, KeySeparator, ".")
}

// EncodeKey is the inverse of [DecodeKey].
func EncodeKey(name string) string {
	return strings.ReplaceAll(name, ".", KeySeparator)
}

var fieldCache sync.Map // map[reflect.Type][]*Field

// Fields returns the persistent field descriptors of struct type t (or a
// pointer to one) in declaration order. Results are cached per type.
func Fields(t reflect.Type) []*Field {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil
	}

	if cached, ok := fieldCache.Load(t); ok {
		fields, _ := cached.([]*Field) //nolint:errcheck // Only []*Field is stored.

		return fields
	}

	fields := deriveFields(t)
	actual, _ := fieldCache.LoadOrStore(t, fields)
	fields, _ = actual.([]*Field) //nolint:errcheck // Only []*Field is stored.

	return fields
}

func deriveFields(t reflect.Type) []*Field {
	fields := make([]*Field, 0, t.NumField())

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		key := sf.Tag.Get(TagKey)
		if key == "-" {
			continue
		}

		if key == "" {
			key = lowerCamel(sf.Name)
		}

		f := describe(sf.Type)
		f.Name = DecodeKey(key)
		f.Key = key
		f.GoName = sf.Name
		f.Index = sf.Index
		f.Comments = splitComment(sf.Tag.Get(TagComment))

		fields = append(fields, f)
	}

	return fields
}

// ElementField returns a descriptor for a value of type t that is not a
// struct field, such as a sequence element.
func ElementField(t reflect.Type) *Field {
	return describe(t)
}

func describe(t reflect.Type) *Field {
	f := &Field{Type: t}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		f.Params = []*Field{describe(t.Elem())}
	case reflect.Map:
		f.Params = []*Field{describe(t.Key()), describe(t.Elem())}
	default:
	}

	return f
}

func splitComment(tag string) []string {
	if tag == "" {
		return nil
	}

	return strings.Split(tag, "|")
}

func lowerCamel(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	// Keep leading acronyms readable: "ID" becomes "id", "URLPath" becomes
	// "urlPath".
	runes := []rune(s)
	n := 0

	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	switch {
	case n <= 1:
		return string(unicode.ToLower(r)) + s[size:]
	case n == len(runes):
		return strings.ToLower(s)
	default:
		return strings.ToLower(string(runes[:n-1])) + string(runes[n-1:])
	}
}
