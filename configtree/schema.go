package configtree

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// SchemaDraft is the JSON Schema dialect produced by [Engine.JSONSchema].
const SchemaDraft = "https://json-schema.org/draft/2020-12/schema"

// JSONSchema describes the document shape accepted by [Engine.Load] for
// target's type. Defaults are taken from target's current values, and
// descriptions from the fields' default comments.
func (e *Engine) JSONSchema(target any) (*jsonschema.Schema, error) {
	root, err := newRoot(target, e.registry, e.logger)
	if err != nil {
		return nil, err
	}

	bindFields(root.Node)

	s := ObjectConverter{}.Schema(root.field, e.registry)
	s.Schema = SchemaDraft

	if err := applyDefaults(s, root.Node); err != nil {
		return nil, err
	}

	return s, nil
}

// schemaOf describes a single field, falling back to an unconstrained
// schema when its converter cannot describe itself.
func schemaOf(reg *Registry, f *Field) *jsonschema.Schema {
	s := &jsonschema.Schema{}
	if sd, ok := reg.Resolve(f.Type).(SchemaDescriber); ok {
		s = sd.Schema(f, reg)
	}

	if len(f.Comments) > 0 {
		s.Description = strings.Join(f.Comments, " ")
	}

	return s
}

// insertSchema places child at the nested property named by segs.
func insertSchema(s *jsonschema.Schema, segs []string, child *jsonschema.Schema) {
	if s.Properties == nil {
		s.Properties = map[string]*jsonschema.Schema{}
	}

	head := segs[0]

	if len(segs) == 1 {
		if _, ok := s.Properties[head]; !ok {
			s.PropertyOrder = append(s.PropertyOrder, head)
		}

		s.Properties[head] = child

		return
	}

	next, ok := s.Properties[head]
	if !ok {
		next = &jsonschema.Schema{Type: typeObject}
		s.Properties[head] = next
		s.PropertyOrder = append(s.PropertyOrder, head)
	}

	insertSchema(next, segs[1:], child)
}

// applyDefaults records the serialized value of each field of n as the
// default of its property schema. Sections are descended into; other
// values, including sequences and maps, are recorded whole.
func applyDefaults(s *jsonschema.Schema, n *Node) error {
	for _, c := range n.children {
		prop := s
		for seg := range strings.SplitSeq(c.key, ".") {
			prop = prop.Properties[seg]
			if prop == nil {
				break
			}
		}

		if prop == nil {
			continue
		}

		if _, ok := c.Converter().(ObjectConverter); ok && prop.Properties != nil {
			if err := applyDefaults(prop, c); err != nil {
				return err
			}

			continue
		}

		v, err := encodeNode(c)
		if err != nil || v == nil {
			continue
		}

		b, err := json.Marshal(jsonValue(v))
		if err != nil {
			return fmt.Errorf("default for %s: %w", c.Path(), err)
		}

		prop.Default = b
	}

	return nil
}

// jsonValue converts ordered YAML mappings into values encoding/json can
// marshal.
func jsonValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = jsonValue(item)
		}

		return out
	}

	if items := entries(v); isMapping(v) {
		out := make(map[string]any, len(items))
		for _, e := range items {
			out[e.key] = jsonValue(e.value)
		}

		return out
	}

	return v
}
