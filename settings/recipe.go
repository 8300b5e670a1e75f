package settings

import (
	"errors"
	"fmt"
	"slices"
	"unicode"
)

// MaxRecipeRowWidth is the widest a crafting grid row can be.
const MaxRecipeRowWidth = 3

var (
	errEmptyRow    = errors.New("recipe row must not be empty")
	errRowTooWide  = fmt.Errorf("recipe row must be at most %d cells wide", MaxRecipeRowWidth)
	errInvalidCell = errors.New("recipe cells must be letters, digits or spaces")
)

// RecipeRow is one row of a shaped crafting recipe, written as a short
// string where each character is a cell. A space is an empty cell; any other
// character refers to an entry in the recipe group's materials.
type RecipeRow string

// ParseRecipeRow validates s as a recipe row.
func ParseRecipeRow(s string) (RecipeRow, error) {
	cells := []rune(s)

	switch {
	case len(cells) == 0:
		return "", errEmptyRow
	case len(cells) > MaxRecipeRowWidth:
		return "", fmt.Errorf("%w: %q", errRowTooWide, s)
	}

	for _, r := range cells {
		if r != ' ' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", fmt.Errorf("%w: %q", errInvalidCell, string(r))
		}
	}

	return RecipeRow(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (r *RecipeRow) UnmarshalText(b []byte) error {
	v, err := ParseRecipeRow(string(b))
	if err != nil {
		return err
	}

	*r = v

	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (r RecipeRow) MarshalText() ([]byte, error) {
	return []byte(r), nil
}

// Symbols returns the distinct material symbols used in the row, in order.
func (r RecipeRow) Symbols() []string {
	var out []string

	for _, c := range string(r) {
		s := string(c)
		if c == ' ' || slices.Contains(out, s) {
			continue
		}

		out = append(out, s)
	}

	return out
}
