package configtree

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Document is the raw form of a config tree: an ordered mapping of values
// plus the comments keyed by decoded path.
type Document struct {
	Values   yaml.MapSlice
	Comments Comments
}

type entry struct {
	value any
	key   string
}

// isMapping reports whether raw is one of the mapping shapes produced by
// YAML decoders.
func isMapping(raw any) bool {
	switch raw.(type) {
	case yaml.MapSlice, map[string]any, map[any]any:
		return true
	}

	return false
}

// entries returns the key/value pairs of a mapping in document order. Go
// maps have no order, so their keys are sorted.
func entries(raw any) []entry {
	switch m := raw.(type) {
	case yaml.MapSlice:
		out := make([]entry, 0, len(m))
		for _, item := range m {
			out = append(out, entry{key: keyString(item.Key), value: item.Value})
		}

		return out

	case map[string]any:
		out := make([]entry, 0, len(m))
		for _, k := range slices.Sorted(maps.Keys(m)) {
			out = append(out, entry{key: k, value: m[k]})
		}

		return out

	case map[any]any:
		out := make([]entry, 0, len(m))
		for k, v := range m {
			out = append(out, entry{key: keyString(k), value: v})
		}

		slices.SortFunc(out, func(a, b entry) int { return strings.Compare(a.key, b.key) })

		return out
	}

	return nil
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}

	return fmt.Sprint(k)
}

// get returns the value under key in a single mapping level.
func get(raw any, key string) (any, bool) {
	switch m := raw.(type) {
	case yaml.MapSlice:
		for _, item := range m {
			if keyString(item.Key) == key {
				return item.Value, true
			}
		}

	case map[string]any:
		v, ok := m[key]

		return v, ok

	case map[any]any:
		if v, ok := m[key]; ok {
			return v, true
		}

		for k, v := range m {
			if keyString(k) == key {
				return v, true
			}
		}
	}

	return nil, false
}

// lookup resolves a decoded field name in raw, first as a literal flat key
// and then as a walk through nested mappings.
func lookup(raw any, name string) (any, bool) {
	if v, ok := get(raw, name); ok {
		return v, true
	}

	if !strings.Contains(name, ".") {
		return nil, false
	}

	cur := raw
	for seg := range strings.SplitSeq(name, ".") {
		v, ok := get(cur, seg)
		if !ok {
			return nil, false
		}

		cur = v
	}

	return cur, true
}

// insert sets value at the nested position named by segs, creating
// intermediate mappings as needed and keeping existing order.
func insert(ms yaml.MapSlice, segs []string, value any) yaml.MapSlice {
	head := segs[0]

	idx := slices.IndexFunc(ms, func(item yaml.MapItem) bool { return keyString(item.Key) == head })
	if len(segs) == 1 {
		if idx >= 0 {
			ms[idx].Value = value

			return ms
		}

		return append(ms, yaml.MapItem{Key: head, Value: value})
	}

	if idx < 0 {
		return append(ms, yaml.MapItem{Key: head, Value: insert(nil, segs[1:], value)})
	}

	child, _ := ms[idx].Value.(yaml.MapSlice) //nolint:errcheck // Non-mapping values are replaced.
	ms[idx].Value = insert(child, segs[1:], value)

	return ms
}
