package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"go.jacobcolvin.com/elevconf/settings"
)

func TestValidateDefaults(t *testing.T) {
	t.Parallel()

	require.NoError(t, settings.Validate(settings.Defaults()))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := settings.Defaults()

	def := cfg.ElevatorTypes[settings.DefaultTypeKey]
	def.Settings.MaxStackSize = 0
	def.DisabledSettings = []string{"maxDistance", "flying"}

	group := def.Recipes[settings.DefaultTypeKey]
	group.Amount = 0
	group.Recipe = []settings.RecipeRow{"www", "wxw", "www", "www"}

	err := settings.Validate(cfg)
	require.Error(t, err)

	var paths []string

	for _, e := range multierr.Errors(err) {
		var ve *settings.ValidationError
		require.ErrorAs(t, e, &ve)

		paths = append(paths, ve.Path)
	}

	assert.Equal(t, []string{
		"elevators.DEFAULT.settings.maxStackSize",
		"elevators.DEFAULT.disabledSettings[1]",
		"elevators.DEFAULT.recipes.DEFAULT.amount",
		"elevators.DEFAULT.recipes.DEFAULT.recipe",
		"elevators.DEFAULT.recipes.DEFAULT.recipe[1]",
	}, paths)
}

func TestSettingNames(t *testing.T) {
	t.Parallel()

	names := settings.SettingNames()
	assert.Contains(t, names, "displayName")
	assert.Contains(t, names, "sound.volume")
	assert.NotContains(t, names, "sound_volume")
}
