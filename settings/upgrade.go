package settings

import (
	"slices"
	"strings"

	"go.jacobcolvin.com/elevconf/configtree"
)

// Upgrade converts legacy settings to the current schema. It does not modify
// old. Legacy values that cannot be represented in the current schema are
// replaced: unknown colors become [White], unknown sounds keep the default
// sound, and unknown materials or invalid recipe rows are dropped.
func Upgrade(old *V4) *Config {
	cfg := &Config{
		Version:              CurrentVersion,
		UpdateCheckerEnabled: old.UpdateCheckerEnabled,
		ForceFacingUpDown:    old.ForceFacingUpDown,
		ElevatorTypes:        make(ElevatorTypes, len(old.ElevatorTypes)),
	}

	for _, key := range sortedKeys(old.ElevatorTypes) {
		t := old.ElevatorTypes[key]
		if t == nil {
			continue
		}

		cfg.ElevatorTypes[strings.ToUpper(key)] = upgradeElevatorType(t)
	}

	return cfg
}

func upgradeElevatorType(old *ElevatorTypeV4) *ElevatorType {
	t := &ElevatorType{}
	t.SetDefaults()

	s := &t.Settings
	s.DisplayName = old.DisplayName
	s.UsePermission = old.UsePermission
	s.DyePermission = old.DyePermission
	s.MaxDistance = old.MaxDistance
	s.MaxSolidBlocks = old.MaxSolidBlocks
	s.MaxStackSize = old.MaxStackSize
	s.ClassCheck = old.ClassCheck
	s.StopObstruction = old.StopObstruction
	s.SupportDying = old.SupportDying
	s.CheckColor = old.CheckColor
	s.CheckPerms = old.CheckPerms
	s.CanExplode = old.CanExplode
	s.HologramLines = slices.Clone(old.HologramLines)
	s.SoundVolume = old.SoundVolume
	s.SoundPitch = old.SoundPitch

	if id, ok := legacyKey(old.Sound, "."); ok {
		s.SoundKey = id
	}

	t.Actions.Up = slices.Clone(old.ActionsUp)
	t.Actions.Down = slices.Clone(old.ActionsDown)

	for _, key := range sortedKeys(old.Recipes) {
		g := old.Recipes[key]
		if g == nil {
			continue
		}

		t.Recipes[strings.ToUpper(key)] = upgradeRecipeGroup(g)
	}

	return t
}

func upgradeRecipeGroup(old *RecipeGroupV4) *RecipeGroup {
	g := &RecipeGroup{}
	g.SetDefaults()

	g.Amount = old.Amount
	g.CraftPermission = old.CraftPermission
	g.SupportMultiColorOutput = old.MultiColor

	if c, err := ParseDyeColor(old.DefaultColor); err == nil {
		g.DefaultOutputColor = c
	}

	for _, row := range old.Recipe {
		if r, err := ParseRecipeRow(row); err == nil {
			g.Recipe = append(g.Recipe, r)
		}
	}

	for symbol, material := range old.Materials {
		if id, ok := legacyKey(material, "_"); ok {
			g.Materials[symbol] = id
		}
	}

	return g
}

// legacyKey converts an enum constant such as "WHITE_WOOL" to a minecraft
// namespaced key, replacing underscores with sep. Values that are already
// namespaced keys are parsed as they are.
func legacyKey(name, sep string) (configtree.Identifier, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return configtree.Identifier{}, false
	}

	if !strings.Contains(name, ":") {
		name = "minecraft:" + strings.ReplaceAll(strings.ToLower(name), "_", sep)
	}

	id, err := configtree.ParseIdentifier(name)
	if err != nil {
		return configtree.Identifier{}, false
	}

	return id, true
}

// legacyPaths maps paths below a legacy elevator type to their current
// location.
var legacyPaths = []struct{ old, cur string }{
	{"displayName", "settings.displayName"},
	{"usePermission", "settings.usePermission"},
	{"dyePermission", "settings.dyePermission"},
	{"maxDistanceBetweenElevators", "settings.maxDistance"},
	{"maxSolidBlocksBetweenElevators", "settings.maxSolidBlocks"},
	{"maxStackSize", "settings.maxStackSize"},
	{"classCheck", "settings.classCheck"},
	{"stopObstruction", "settings.stopObstruction"},
	{"supportDying", "settings.supportDying"},
	{"checkColor", "settings.checkColor"},
	{"checkPerms", "settings.checkPerms"},
	{"canExplode", "settings.canExplode"},
	{"hologramLines", "settings.hologramLines"},
	{"sound.name", "settings.sound.key"},
	{"sound.volume", "settings.sound.volume"},
	{"sound.pitch", "settings.sound.pitch"},
	{"actions.up", "actions.up"},
	{"actions.down", "actions.down"},
}

// UpgradePath returns the current path of a legacy settings path, or false
// if the path has no counterpart.
func UpgradePath(path string) (string, bool) {
	parts := strings.SplitN(path, ".", 3)
	if parts[0] != "elevators" {
		return path, true
	}

	switch len(parts) {
	case 1:
		return path, true
	case 2:
		return "elevators." + strings.ToUpper(parts[1]), true
	}

	prefix := "elevators." + strings.ToUpper(parts[1]) + "."
	rest := parts[2]

	if rest == "recipes" {
		return prefix + rest, true
	}

	if group, ok := strings.CutPrefix(rest, "recipes."); ok {
		name, tail, _ := strings.Cut(group, ".")

		upgraded := prefix + "recipes." + strings.ToUpper(name)
		if tail != "" {
			upgraded += "." + tail
		}

		return upgraded, true
	}

	for _, p := range legacyPaths {
		if rest == p.old {
			return prefix + p.cur, true
		}

		if tail, ok := strings.CutPrefix(rest, p.old); ok && (tail[0] == '.' || tail[0] == '[') {
			return prefix + p.cur + tail, true
		}
	}

	return "", false
}

// upgradeComments moves legacy comments to their current paths.
func upgradeComments(old configtree.Comments) configtree.Comments {
	out := configtree.Comments{}

	for _, p := range old.Paths() {
		if cur, ok := UpgradePath(p); ok {
			out.Add(cur, old.Get(p)...)
		}
	}

	return out
}
