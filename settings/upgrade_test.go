package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/elevconf/configtree"
	"go.jacobcolvin.com/elevconf/settings"
	"go.jacobcolvin.com/elevconf/stringtest"
)

func legacy() *settings.V4 {
	old := settings.DefaultsV4()
	old.ForceFacingUpDown = true

	t := old.ElevatorTypes[settings.DefaultTypeKey]
	t.DisplayName = "Lift"
	t.MaxDistance = 30
	t.Sound = "BLOCK_NOTE_BLOCK_PLING"
	t.ActionsUp = []string{"sound: up"}

	old.ElevatorTypes["fast"] = &settings.ElevatorTypeV4{
		DisplayName:  "Fast",
		MaxStackSize: 64,
		Sound:        "not a sound!",
		Recipes: map[string]*settings.RecipeGroupV4{
			"classic": {
				Amount:       4,
				DefaultColor: "plaid",
				Recipe:       []string{"aaa", "a#a"},
				Materials:    map[string]string{"a": "IRON_INGOT", "b": "minecraft:gold_ingot", "c": "Not Valid"},
			},
		},
	}

	return old
}

func TestUpgrade(t *testing.T) {
	t.Parallel()

	old := legacy()
	cfg := settings.Upgrade(old)

	assert.Equal(t, legacy(), old)

	assert.Equal(t, settings.CurrentVersion, cfg.Version)
	assert.True(t, cfg.UpdateCheckerEnabled)
	assert.True(t, cfg.ForceFacingUpDown)
	assert.Equal(t, []string{"DEFAULT", "FAST"}, cfg.ElevatorTypes.Keys())

	def := cfg.ElevatorTypes["DEFAULT"]
	assert.Equal(t, "Lift", def.Settings.DisplayName)
	assert.Equal(t, 30, def.Settings.MaxDistance)
	assert.Equal(t, -1, def.Settings.MaxSolidBlocks)
	assert.Equal(t, configtree.MustIdentifier("minecraft:block.note.block.pling"), def.Settings.SoundKey)
	assert.Equal(t, []string{"sound: up"}, def.Actions.Up)
	assert.Empty(t, def.Actions.Down)
	assert.Equal(t, settings.DefaultElevatorType().Recipes, def.Recipes)

	fast := cfg.ElevatorTypes["FAST"]
	assert.Equal(t, "Fast", fast.Settings.DisplayName)
	assert.Equal(t, 64, fast.Settings.MaxStackSize)
	assert.Equal(t, settings.DefaultSettings().SoundKey, fast.Settings.SoundKey)

	require.Contains(t, fast.Recipes, "CLASSIC")

	classic := fast.Recipes["CLASSIC"]
	assert.Equal(t, 4, classic.Amount)
	assert.Equal(t, settings.White, classic.DefaultOutputColor)
	assert.Equal(t, []settings.RecipeRow{"aaa"}, classic.Recipe)
	assert.Equal(t, map[string]configtree.Identifier{
		"a": configtree.MustIdentifier("minecraft:iron_ingot"),
		"b": configtree.MustIdentifier("minecraft:gold_ingot"),
	}, classic.Materials)
}

func TestUpgradePath(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want string
		ok   bool
	}{
		"version":                                   {want: "version", ok: true},
		"elevators":                                 {want: "elevators", ok: true},
		"elevators.default":                         {want: "elevators.DEFAULT", ok: true},
		"elevators.default.displayName":             {want: "elevators.DEFAULT.settings.displayName", ok: true},
		"elevators.fast.maxDistanceBetweenElevators": {want: "elevators.FAST.settings.maxDistance", ok: true},
		"elevators.fast.sound.name":                 {want: "elevators.FAST.settings.sound.key", ok: true},
		"elevators.fast.hologramLines[1]":           {want: "elevators.FAST.settings.hologramLines[1]", ok: true},
		"elevators.fast.actions.up":                 {want: "elevators.FAST.actions.up", ok: true},
		"elevators.fast.recipes":                    {want: "elevators.FAST.recipes", ok: true},
		"elevators.fast.recipes.classic":            {want: "elevators.FAST.recipes.CLASSIC", ok: true},
		"elevators.fast.recipes.classic.recipe[0]":  {want: "elevators.FAST.recipes.CLASSIC.recipe[0]", ok: true},
		"elevators.fast.sound":                      {ok: false},
		"elevators.fast.displayNameX":               {ok: false},
	}

	for path, tc := range tcs {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			got, ok := settings.UpgradePath(path)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoadLegacy(t *testing.T) {
	t.Parallel()

	f := load(t, stringtest.Input(`
		version: 4.1.0
		elevators:
		  default:
		    # Item name.
		    displayName: Lift
		    maxDistanceBetweenElevators: 30
		    sound:
		      name: BLOCK_NOTE_BLOCK_PLING
		    actions:
		      up:
		        - "sound: up"
		    recipes:
		      classic:
		        defaultOutputColor: red
		        recipe:
		          - "aaa"
		        materials:
		          a: IRON_INGOT
	`))

	assert.True(t, f.Upgraded)
	assert.Equal(t, "4.1.0", f.Version)
	assert.Empty(t, f.Warnings)
	assert.Equal(t, settings.CurrentVersion, f.Config.Version)
	assert.Equal(t, []string{"DEFAULT"}, f.Config.ElevatorTypes.Keys())

	def := f.Config.ElevatorTypes["DEFAULT"]
	assert.Equal(t, "Lift", def.Settings.DisplayName)
	assert.Equal(t, 30, def.Settings.MaxDistance)
	assert.Equal(t, configtree.MustIdentifier("minecraft:block.note.block.pling"), def.Settings.SoundKey)
	assert.Equal(t, []string{"sound: up"}, def.Actions.Up)

	require.Contains(t, def.Recipes, "CLASSIC")
	assert.Equal(t, settings.Red, def.Recipes["CLASSIC"].DefaultOutputColor)
	assert.Equal(t, map[string]configtree.Identifier{
		"a": configtree.MustIdentifier("minecraft:iron_ingot"),
	}, def.Recipes["CLASSIC"].Materials)

	comments := f.Root.CommentStore()
	assert.Equal(t, []string{"Item name."}, comments.Get("elevators.DEFAULT.settings.displayName"))
	assert.Equal(t, []string{"Maximum blocks searched for a destination elevator."},
		comments.Get("elevators.DEFAULT.settings.maxDistance"))

	out, err := f.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(out), stringtest.JoinLF(
		"      # Item name.",
		"      displayName: Lift",
	))
}

func TestLoadLegacyWarnings(t *testing.T) {
	t.Parallel()

	f := load(t, stringtest.Input(`
		version: 4.0.0
		elevators:
		  default:
		    maxStackSize: lots
	`))

	assert.True(t, f.Upgraded)
	require.Len(t, f.Warnings, 1)
	assert.Contains(t, f.Warnings[0], `"elevators.default.maxStackSize"`)
	assert.Equal(t, 16, f.Config.ElevatorTypes["DEFAULT"].Settings.MaxStackSize)
}
