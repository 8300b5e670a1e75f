// Package yamldoc reads and writes [configtree.Document]s as YAML, keeping
// key order and comments.
//
// Comments are carried as head comments keyed by config path. Line and
// foot comments in the input are folded into the head comments of the
// node they belong to.
package yamldoc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/elevconf/configtree"
)

var (
	// ErrInvalidYAML indicates the input could not be parsed.
	ErrInvalidYAML = errors.New("invalid YAML")
	// ErrNotMapping indicates the input parsed, but its root is not a
	// mapping.
	ErrNotMapping = errors.New("document root is not a mapping")
)

// Decode parses data into a document. An empty input yields an empty
// document.
func Decode(data []byte) (*configtree.Document, error) {
	cm := yaml.CommentMap{}

	var v any

	err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap(), yaml.CommentToMap(cm))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	doc := &configtree.Document{Values: yaml.MapSlice{}, Comments: configtree.Comments{}}

	switch root := v.(type) {
	case nil:
	case yaml.MapSlice:
		doc.Values = root
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, v)
	}

	for p, comments := range cm {
		path, ok := configPath(p)
		if !ok {
			continue
		}

		for _, c := range comments {
			for _, text := range c.Texts {
				doc.Comments.Add(path, strings.TrimPrefix(text, " "))
			}
		}
	}

	return doc, nil
}

// Option configures [Encode].
type Option func(*encoder)

type encoder struct {
	indent int
}

// WithIndent sets the number of spaces per indentation level. The default
// is 2.
func WithIndent(n int) Option {
	return func(e *encoder) {
		e.indent = n
	}
}

// Encode writes doc as YAML. Comments whose paths do not name a node in
// doc.Values are dropped.
func Encode(doc *configtree.Document, opts ...Option) ([]byte, error) {
	e := &encoder{indent: 2}
	for _, opt := range opts {
		opt(e)
	}

	values := doc.Values
	if values == nil {
		values = yaml.MapSlice{}
	}

	cm := yaml.CommentMap{}
	if len(doc.Comments) > 0 {
		for path, yamlPath := range paths(values) {
			lines := doc.Comments.Get(path)
			if len(lines) == 0 {
				continue
			}

			texts := make([]string, 0, len(lines))
			for _, line := range lines {
				if line != "" {
					line = " " + line
				}

				texts = append(texts, line)
			}

			cm[yamlPath] = []*yaml.Comment{yaml.HeadComment(texts...)}
		}
	}

	b, err := yaml.MarshalWithOptions(values,
		yaml.Indent(e.indent),
		yaml.IndentSequence(true),
		yaml.WithComment(cm),
	)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	return b, nil
}

// paths maps the config path of every node in values to its YAML path.
func paths(values yaml.MapSlice) map[string]string {
	out := map[string]string{}
	walk(values, "", "$", out)

	return out
}

func walk(v any, path, yamlPath string, out map[string]string) {
	switch t := v.(type) {
	case yaml.MapSlice:
		for _, item := range t {
			key := fmt.Sprint(item.Key)

			p := key
			if path != "" {
				p = path + "." + key
			}

			yp := yamlPath + "." + quoteSegment(key)
			out[p] = yp

			walk(item.Value, p, yp, out)
		}

	case []any:
		for i, item := range t {
			idx := "[" + strconv.Itoa(i) + "]"

			p := path + idx
			yp := yamlPath + idx
			out[p] = yp

			walk(item, p, yp, out)
		}
	}
}

func quoteSegment(key string) string {
	if strings.ContainsAny(key, "$*.[]") {
		return "'" + key + "'"
	}

	return key
}

// configPath converts a YAML path such as "$.types.'a.b'[0]" to the config
// path "types.a.b[0]".
func configPath(yamlPath string) (string, bool) {
	rest, ok := strings.CutPrefix(yamlPath, "$")
	if !ok {
		return "", false
	}

	var sb strings.Builder

	for len(rest) > 0 {
		switch rest[0] {
		case '.':
			rest = rest[1:]

			var seg string

			if strings.HasPrefix(rest, "'") {
				end := strings.Index(rest[1:], "'")
				if end < 0 {
					return "", false
				}

				seg = rest[1 : end+1]
				rest = rest[end+2:]
			} else {
				end := strings.IndexAny(rest, ".[")
				if end < 0 {
					end = len(rest)
				}

				seg = rest[:end]
				rest = rest[end:]
			}

			if sb.Len() > 0 {
				sb.WriteByte('.')
			}

			sb.WriteString(seg)

		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", false
			}

			sb.WriteString(rest[:end+1])
			rest = rest[end+1:]

		default:
			return "", false
		}
	}

	return sb.String(), sb.Len() > 0
}
