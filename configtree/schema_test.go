package configtree_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/elevconf/configtree"
)

func TestJSONSchema(t *testing.T) {
	t.Parallel()

	s, err := configtree.New().JSONSchema(newSettings())
	require.NoError(t, err)

	assert.Equal(t, configtree.SchemaDraft, s.Schema)
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{
		"name", "sound", "maxDistance", "enabled", "item", "lines", "counts",
		"nested", "groups", "delay", "color", "extra",
	}, s.PropertyOrder)

	name := s.Properties["name"]
	require.NotNil(t, name)
	assert.Equal(t, "string", name.Type)
	assert.Equal(t, "Display name.", name.Description)
	assert.JSONEq(t, `"Elevator"`, string(name.Default))

	sound := s.Properties["sound"]
	require.NotNil(t, sound)
	assert.Equal(t, "object", sound.Type)
	assert.Equal(t, "number", sound.Properties["volume"].Type)
	assert.JSONEq(t, `1`, string(sound.Properties["volume"].Default))

	item := s.Properties["item"]
	assert.Equal(t, `^([a-z0-9._-]+):([a-z0-9._-]+)$`, item.Pattern)

	color := s.Properties["color"]
	assert.Equal(t, []any{"RED", "BLUE", "GREEN"}, color.Enum)
	assert.JSONEq(t, `"RED"`, string(color.Default))

	counts := s.Properties["counts"]
	assert.Equal(t, "array", counts.Type)
	assert.Equal(t, "integer", counts.Items.Type)
	assert.JSONEq(t, `[1, 2]`, string(counts.Default))

	nested := s.Properties["nested"]
	assert.JSONEq(t, `3`, string(nested.Properties["depth"].Default))
	assert.Nil(t, nested.Default)

	groups := s.Properties["groups"]
	require.NotNil(t, groups.AdditionalProperties)
	assert.Equal(t, "integer", groups.AdditionalProperties.Properties["amount"].Type)
	assert.JSONEq(t, `{"default": {"permission": "group.default", "amount": 2}}`, string(groups.Default))

	assert.Nil(t, s.Properties["extra"].Default)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"$schema"`)
}

func TestJSONSchemaInvalidTarget(t *testing.T) {
	t.Parallel()

	_, err := configtree.New().JSONSchema(testSettings{})
	require.ErrorIs(t, err, configtree.ErrInvalidTarget)
}
