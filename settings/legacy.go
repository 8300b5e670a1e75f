package settings

import (
	"maps"
	"slices"
)

// LegacyVersion is the schema version of [V4] files.
const LegacyVersion = "4.0.0"

// V4 is the settings schema used before 5.0.0. Elevator settings sit
// directly under each type, sounds and materials are named by their enum
// constants, and actions use flat keys.
type V4 struct {
	Version              string                     `config:"version"`
	UpdateCheckerEnabled bool                       `config:"updateCheckerEnabled"`
	ForceFacingUpDown    bool                       `config:"forceFacingUpDownRotation"`
	ElevatorTypes        map[string]*ElevatorTypeV4 `config:"elevators"`
}

// ElevatorTypeV4 is an elevator type in a [V4] file.
type ElevatorTypeV4 struct {
	DisplayName     string                    `config:"displayName"`
	UsePermission   string                    `config:"usePermission"`
	DyePermission   string                    `config:"dyePermission"`
	MaxDistance     int                       `config:"maxDistanceBetweenElevators"`
	MaxSolidBlocks  int                       `config:"maxSolidBlocksBetweenElevators"`
	MaxStackSize    int                       `config:"maxStackSize"`
	ClassCheck      bool                      `config:"classCheck"`
	StopObstruction bool                      `config:"stopObstruction"`
	SupportDying    bool                      `config:"supportDying"`
	CheckColor      bool                      `config:"checkColor"`
	CheckPerms      bool                      `config:"checkPerms"`
	CanExplode      bool                      `config:"canExplode"`
	HologramLines   []string                  `config:"hologramLines"`
	Sound           string                    `config:"sound_name"`
	SoundVolume     float64                   `config:"sound_volume"`
	SoundPitch      float64                   `config:"sound_pitch"`
	ActionsUp       []string                  `config:"actions_up"`
	ActionsDown     []string                  `config:"actions_down"`
	Recipes         map[string]*RecipeGroupV4 `config:"recipes"`
}

// SetDefaults fills t with the settings of a new legacy elevator type.
func (t *ElevatorTypeV4) SetDefaults() {
	*t = ElevatorTypeV4{
		DisplayName:     "Elevator",
		UsePermission:   "elevators.use.default",
		DyePermission:   "elevators.dye.default",
		MaxDistance:     20,
		MaxSolidBlocks:  -1,
		MaxStackSize:    16,
		StopObstruction: true,
		SupportDying:    true,
		HologramLines:   []string{},
		Sound:           "ENTITY_BLAZE_SHOOT",
		SoundVolume:     1,
		SoundPitch:      2,
		ActionsUp:       []string{},
		ActionsDown:     []string{},
		Recipes:         map[string]*RecipeGroupV4{},
	}
}

// RecipeGroupV4 is a recipe in a [V4] file. Colors and materials are free
// text and are validated when upgrading.
type RecipeGroupV4 struct {
	Amount          int               `config:"amount"`
	CraftPermission string            `config:"craftPermission"`
	DefaultColor    string            `config:"defaultOutputColor"`
	MultiColor      bool              `config:"supportMultiColorOutput"`
	Recipe          []string          `config:"recipe"`
	Materials       map[string]string `config:"materials"`
}

// SetDefaults fills g with a single-elevator legacy recipe.
func (g *RecipeGroupV4) SetDefaults() {
	*g = RecipeGroupV4{
		Amount:          1,
		CraftPermission: "elevators.craft",
		DefaultColor:    string(White),
		Recipe:          []string{},
		Materials:       map[string]string{},
	}
}

// DefaultsV4 returns the compiled-in legacy settings.
func DefaultsV4() *V4 {
	t := &ElevatorTypeV4{}
	t.SetDefaults()

	t.Recipes[DefaultTypeKey] = &RecipeGroupV4{
		Amount:          1,
		CraftPermission: "elevators.craft.default",
		DefaultColor:    string(White),
		MultiColor:      true,
		Recipe:          []string{"www", "wew", "www"},
		Materials: map[string]string{
			"w": "WHITE_WOOL",
			"e": "ENDER_PEARL",
		},
	}

	return &V4{
		Version:              LegacyVersion,
		UpdateCheckerEnabled: true,
		ElevatorTypes: map[string]*ElevatorTypeV4{
			DefaultTypeKey: t,
		},
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
