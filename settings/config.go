package settings

import (
	"strings"

	"go.jacobcolvin.com/elevconf/configtree"
)

// CurrentVersion is the schema version written by this release.
const CurrentVersion = "5.2.0"

// DefaultTypeKey names the elevator type provided when a file defines none.
const DefaultTypeKey = "DEFAULT"

// Config is the current settings schema.
type Config struct {
	Version              string        `comment:"Don't change this. It is used to upgrade the file between releases." config:"version"`
	UpdateCheckerEnabled bool          `comment:"Notify operators when a new release is available."                    config:"updateCheckerEnabled"`
	ForceFacingUpDown    bool          `comment:"Place elevators facing up or down regardless of where the player looks." config:"forceFacingUpDownRotation"`
	AllowDispense        bool          `comment:"Allow dispensers to place elevators."                                 config:"allowElevatorDispense"`
	ElevatorTypes        ElevatorTypes `comment:"Elevator types keyed by name. Names are upper-cased on load."         config:"elevators"`
}

// ElevatorTypes holds elevator types by upper-case name.
type ElevatorTypes map[string]*ElevatorType

// NormalizeKey upper-cases elevator type names.
func (ElevatorTypes) NormalizeKey(key string) string {
	return strings.ToUpper(key)
}

// Keys returns the elevator type names in sorted order.
func (t ElevatorTypes) Keys() []string {
	return sortedKeys(map[string]*ElevatorType(t))
}

// ElevatorType is the configuration of one kind of elevator.
type ElevatorType struct {
	Settings         Settings     `config:"settings"`
	Actions          Actions      `config:"actions"`
	DisabledSettings []string     `comment:"Settings that cannot be changed on individual elevators." config:"disabledSettings"`
	Recipes          RecipeGroups `config:"recipes"`
}

// SetDefaults fills t with the settings of a new elevator type. New types
// have no recipes.
func (t *ElevatorType) SetDefaults() {
	*t = ElevatorType{
		Settings:         DefaultSettings(),
		Actions:          DefaultActions(),
		DisabledSettings: []string{},
		Recipes:          RecipeGroups{},
	}
}

// Settings holds the behavior of an elevator type.
type Settings struct {
	DisplayName     string                `comment:"Name shown on the elevator item."                                      config:"displayName"`
	UsePermission   string                `comment:"Permission required to use the elevator when checkPerms is enabled."   config:"usePermission"`
	DyePermission   string                `comment:"Permission required to dye the elevator when checkPerms is enabled."   config:"dyePermission"`
	MaxDistance     int                   `comment:"Maximum blocks searched for a destination elevator."                   config:"maxDistance"`
	MaxSolidBlocks  int                   `comment:"Maximum solid blocks between elevators. Use -1 for no limit."          config:"maxSolidBlocks"`
	MaxStackSize    int                   `comment:"Maximum stack size of the elevator item."                              config:"maxStackSize"`
	ClassCheck      bool                  `comment:"Destination elevators must be of the same type."                       config:"classCheck"`
	StopObstruction bool                  `comment:"Skip destinations that would place the player inside a block."         config:"stopObstruction"`
	SupportDying    bool                  `comment:"Recipes may produce colored elevators."                                config:"supportDying"`
	CheckColor      bool                  `comment:"Destination elevators must be the same color as the origin."           config:"checkColor"`
	CheckPerms      bool                  `comment:"Check usePermission and dyePermission."                                config:"checkPerms"`
	CanExplode      bool                  `comment:"Elevators can be destroyed by explosions."                             config:"canExplode"`
	HologramLines   []string              `comment:"Lines shown above elevators of this type."                             config:"hologramLines"`
	LoreLines       []string              `comment:"Lore lines shown on the elevator item."                                config:"loreLines"`
	SoundKey        configtree.Identifier `comment:"Sound played on use, as a namespaced key."                             config:"sound_key"`
	SoundVolume     float64               `config:"sound_volume"`
	SoundPitch      float64               `config:"sound_pitch"`
}

// Actions holds the action strings run when an elevator is used. Each
// action is written as "<action-key>: <arguments>".
type Actions struct {
	Up   []string `config:"up"`
	Down []string `config:"down"`
}

// RecipeGroups holds crafting recipes by upper-case name.
type RecipeGroups map[string]*RecipeGroup

// NormalizeKey upper-cases recipe group names.
func (RecipeGroups) NormalizeKey(key string) string {
	return strings.ToUpper(key)
}

// RecipeGroup is a shaped crafting recipe producing elevators.
type RecipeGroup struct {
	Amount                     int                              `comment:"Number of elevators crafted."        config:"amount"`
	CraftPermission            string                           `config:"craftPermission"`
	DefaultOutputColor         DyeColor                         `config:"defaultOutputColor"`
	SupportMultiColorOutput    bool                             `comment:"Craft one recipe per dye color."     config:"supportMultiColorOutput"`
	SupportMultiColorMaterials bool                             `config:"supportMultiColorMaterials"`
	Recipe                     []RecipeRow                      `comment:"Rows of the crafting grid."          config:"recipe"`
	Materials                  map[string]configtree.Identifier `comment:"Item for each symbol in the recipe." config:"materials"`
}

// SetDefaults fills g with a single-elevator recipe without a shape.
func (g *RecipeGroup) SetDefaults() {
	*g = RecipeGroup{
		Amount:             1,
		CraftPermission:    "elevators.craft",
		DefaultOutputColor: White,
		Recipe:             []RecipeRow{},
		Materials:          map[string]configtree.Identifier{},
	}
}

// Defaults returns the compiled-in current settings.
func Defaults() *Config {
	return &Config{
		Version:              CurrentVersion,
		UpdateCheckerEnabled: true,
		ElevatorTypes: ElevatorTypes{
			DefaultTypeKey: DefaultElevatorType(),
		},
	}
}

// DefaultElevatorType returns the elevator type provided when a file
// defines none, including its recipe.
func DefaultElevatorType() *ElevatorType {
	t := &ElevatorType{}
	t.SetDefaults()

	t.Recipes[DefaultTypeKey] = &RecipeGroup{
		Amount:                  1,
		CraftPermission:         "elevators.craft.default",
		DefaultOutputColor:      White,
		SupportMultiColorOutput: true,
		Recipe:                  []RecipeRow{"www", "wew", "www"},
		Materials: map[string]configtree.Identifier{
			"w": configtree.MustIdentifier(White.Wool()),
			"e": configtree.MustIdentifier("minecraft:ender_pearl"),
		},
	}

	return t
}

// DefaultSettings returns the settings of a new elevator type.
func DefaultSettings() Settings {
	return Settings{
		DisplayName:     "Elevator",
		UsePermission:   "elevators.use.default",
		DyePermission:   "elevators.dye.default",
		MaxDistance:     20,
		MaxSolidBlocks:  -1,
		MaxStackSize:    16,
		StopObstruction: true,
		SupportDying:    true,
		HologramLines:   []string{},
		LoreLines:       []string{},
		SoundKey:        configtree.MustIdentifier("minecraft:entity.blaze.shoot"),
		SoundVolume:     1,
		SoundPitch:      2,
	}
}

// DefaultActions returns the actions of a new elevator type.
func DefaultActions() Actions {
	return Actions{
		Up:   []string{},
		Down: []string{},
	}
}
