package configtree_test

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"go.jacobcolvin.com/elevconf/configtree"
)

type color string

const (
	colorRed   color = "RED"
	colorBlue  color = "BLUE"
	colorGreen color = "GREEN"
)

func (c *color) UnmarshalText(b []byte) error {
	v := color(strings.ToUpper(string(b)))
	if !slices.Contains(v.EnumValues(), string(v)) {
		return fmt.Errorf("unknown color %q", b)
	}

	*c = v

	return nil
}

func (c color) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

func (color) EnumValues() []string {
	return []string{string(colorRed), string(colorBlue), string(colorGreen)}
}

type nested struct {
	Label string `config:"label"`
	Depth int    `config:"depth"`
}

type group struct {
	Permission string `config:"permission"`
	Amount     int    `config:"amount"`
}

func (g *group) SetDefaults() {
	g.Amount = 1
	g.Permission = "group.use"
}

type testSettings struct {
	Name        string  `comment:"Display name." config:"name"`
	Volume      float64 `config:"sound_volume"`
	Pitch       float64 `config:"sound_pitch"`
	MaxDistance int
	Enabled     bool
	Item        configtree.Identifier `config:"item"`
	Lines       []string              `config:"lines"`
	Counts      []int                 `config:"counts"`
	Nested      nested                `config:"nested"`
	Groups      map[string]*group     `config:"groups"`
	Delay       time.Duration         `config:"delay"`
	Color       color                 `config:"color"`
	Extra       any                   `config:"extra"`
	Internal    string                `config:"-"`
	hidden      int                   //nolint:unused // Exercises unexported field skipping.
}

func newSettings() *testSettings {
	return &testSettings{
		Name:        "Elevator",
		Volume:      1,
		Pitch:       1,
		MaxDistance: 20,
		Enabled:     true,
		Item:        configtree.MustIdentifier("minecraft:white_wool"),
		Lines:       []string{"up", "down"},
		Counts:      []int{1, 2},
		Nested:      nested{Label: "inner", Depth: 3},
		Groups: map[string]*group{
			"default": {Amount: 2, Permission: "group.default"},
		},
		Delay: 2 * time.Second,
		Color: colorRed,
	}
}
