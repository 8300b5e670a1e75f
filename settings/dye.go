package settings

import (
	"fmt"
	"slices"
	"strings"
)

// DyeColor is one of the sixteen dye colors an elevator can take.
type DyeColor string

// Dye colors.
const (
	White     DyeColor = "WHITE"
	Orange    DyeColor = "ORANGE"
	Magenta   DyeColor = "MAGENTA"
	LightBlue DyeColor = "LIGHT_BLUE"
	Yellow    DyeColor = "YELLOW"
	Lime      DyeColor = "LIME"
	Pink      DyeColor = "PINK"
	Gray      DyeColor = "GRAY"
	LightGray DyeColor = "LIGHT_GRAY"
	Cyan      DyeColor = "CYAN"
	Purple    DyeColor = "PURPLE"
	Blue      DyeColor = "BLUE"
	Brown     DyeColor = "BROWN"
	Green     DyeColor = "GREEN"
	Red       DyeColor = "RED"
	Black     DyeColor = "BLACK"
)

var dyeColors = []DyeColor{
	White, Orange, Magenta, LightBlue, Yellow, Lime, Pink, Gray,
	LightGray, Cyan, Purple, Blue, Brown, Green, Red, Black,
}

// ParseDyeColor parses a dye color name. Matching ignores case, and spaces
// or dashes may stand in for underscores.
func ParseDyeColor(s string) (DyeColor, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.NewReplacer(" ", "_", "-", "_").Replace(name)

	c := DyeColor(name)
	if !slices.Contains(dyeColors, c) {
		return "", fmt.Errorf("unknown dye color %q", s)
	}

	return c, nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *DyeColor) UnmarshalText(b []byte) error {
	v, err := ParseDyeColor(string(b))
	if err != nil {
		return err
	}

	*c = v

	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (c DyeColor) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// EnumValues lists every dye color name.
func (DyeColor) EnumValues() []string {
	out := make([]string, len(dyeColors))
	for i, c := range dyeColors {
		out[i] = string(c)
	}

	return out
}

// Wool returns the item identifier of the wool block in this color.
func (c DyeColor) Wool() string {
	return "minecraft:" + strings.ToLower(string(c)) + "_wool"
}
