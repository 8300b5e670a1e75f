package configtree_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/elevconf/configtree"
)

func TestFields(t *testing.T) {
	t.Parallel()

	fields := configtree.Fields(reflect.TypeFor[testSettings]())

	var names, keys []string
	for _, f := range fields {
		names = append(names, f.Name)
		keys = append(keys, f.Key)
	}

	assert.Equal(t, []string{
		"name", "sound.volume", "sound.pitch", "maxDistance", "enabled", "item",
		"lines", "counts", "nested", "groups", "delay", "color", "extra",
	}, names)
	assert.Equal(t, "sound_volume", keys[1])
	assert.Equal(t, "Volume", fields[1].GoName)
	assert.Equal(t, []string{"Display name."}, fields[0].Comments)
	assert.False(t, fields[0].IsElement())

	lines := fields[6]
	require.Len(t, lines.Params, 1)
	assert.Equal(t, reflect.TypeFor[string](), lines.Params[0].Type)
	assert.True(t, lines.Params[0].IsElement())

	groups := fields[9]
	require.Len(t, groups.Params, 2)
	assert.Equal(t, reflect.TypeFor[string](), groups.Params[0].Type)
	assert.Equal(t, reflect.TypeFor[*group](), groups.Params[1].Type)

	assert.Empty(t, fields[3].Params)
}

func TestFieldsCached(t *testing.T) {
	t.Parallel()

	a := configtree.Fields(reflect.TypeFor[testSettings]())
	b := configtree.Fields(reflect.TypeFor[*testSettings]())

	require.NotEmpty(t, a)
	assert.Same(t, a[0], b[0])
	assert.Nil(t, configtree.Fields(reflect.TypeFor[int]()))
}

func TestFieldKeys(t *testing.T) {
	t.Parallel()

	type keys struct {
		ID          string
		URLPath     string
		MaxDistance int
		X           int
		Tagged      int `config:"sound_volume"`
		Multi       int `comment:"first|second"`
	}

	fields := configtree.Fields(reflect.TypeFor[keys]())
	require.Len(t, fields, 6)

	got := map[string]string{}
	for _, f := range fields {
		got[f.GoName] = f.Name
	}

	assert.Equal(t, map[string]string{
		"ID":          "id",
		"URLPath":     "urlPath",
		"MaxDistance": "maxDistance",
		"X":           "x",
		"Tagged":      "sound.volume",
		"Multi":       "multi",
	}, got)
	assert.Equal(t, []string{"first", "second"}, fields[5].Comments)
}

func TestKeyEncoding(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		encoded string
		decoded string
	}{
		"single":    {encoded: "volume", decoded: "volume"},
		"one level": {encoded: "sound_volume", decoded: "sound.volume"},
		"deep":      {encoded: "a_b_c", decoded: "a.b.c"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.decoded, configtree.DecodeKey(tc.encoded))
			assert.Equal(t, tc.encoded, configtree.EncodeKey(tc.decoded))
		})
	}
}
