package settings

import (
	"fmt"
	"reflect"
	"slices"

	"go.uber.org/multierr"

	"go.jacobcolvin.com/elevconf/configtree"
)

// MaxRecipeRows is the tallest a crafting grid can be.
const MaxRecipeRows = 3

// ValidationError describes a value that loads but cannot be used.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Validate checks relationships between values that the schema alone cannot
// express. All problems are returned, combined with [multierr]; use
// [multierr.Errors] to list them.
func Validate(cfg *Config) error {
	var err error

	names := SettingNames()

	for _, key := range cfg.ElevatorTypes.Keys() {
		t := cfg.ElevatorTypes[key]
		if t == nil {
			continue
		}

		base := "elevators." + key

		if n := t.Settings.MaxStackSize; n < 1 || n > 64 {
			err = multierr.Append(err, &ValidationError{
				Path:   base + ".settings.maxStackSize",
				Reason: fmt.Sprintf("must be between 1 and 64, got %d", n),
			})
		}

		for i, s := range t.DisabledSettings {
			if !slices.Contains(names, s) {
				err = multierr.Append(err, &ValidationError{
					Path:   fmt.Sprintf("%s.disabledSettings[%d]", base, i),
					Reason: fmt.Sprintf("unknown setting %q", s),
				})
			}
		}

		for _, name := range sortedKeys(map[string]*RecipeGroup(t.Recipes)) {
			if g := t.Recipes[name]; g != nil {
				err = multierr.Append(err, validateRecipe(base+".recipes."+name, g))
			}
		}
	}

	return err
}

func validateRecipe(path string, g *RecipeGroup) error {
	var err error

	if g.Amount < 1 {
		err = multierr.Append(err, &ValidationError{
			Path:   path + ".amount",
			Reason: fmt.Sprintf("must be at least 1, got %d", g.Amount),
		})
	}

	if len(g.Recipe) > MaxRecipeRows {
		err = multierr.Append(err, &ValidationError{
			Path:   path + ".recipe",
			Reason: fmt.Sprintf("must have at most %d rows, got %d", MaxRecipeRows, len(g.Recipe)),
		})
	}

	for i, row := range g.Recipe {
		for _, symbol := range row.Symbols() {
			if _, ok := g.Materials[symbol]; !ok {
				err = multierr.Append(err, &ValidationError{
					Path:   fmt.Sprintf("%s.recipe[%d]", path, i),
					Reason: fmt.Sprintf("symbol %q has no material", symbol),
				})
			}
		}
	}

	return err
}

// SettingNames lists the decoded names of the per-type settings, which are
// the values accepted in disabledSettings.
func SettingNames() []string {
	fields := configtree.Fields(reflect.TypeFor[Settings]())

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	return names
}
