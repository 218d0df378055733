package pokedex

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const DefaultMoveLimit = 15

// Record is the display-ready subset of a catalog entry. Weight and Height are
// kept in the catalog's raw units (hectograms and decimetres).
type Record struct {
	Name      string
	ImageURL  string
	Weight    int
	Height    int
	Moves     []string
	Abilities []string
	Types     []string
}

// LookupName returns the lowercase catalog key for the record.
func (r Record) LookupName() string {
	return strings.ToLower(r.Name)
}

func (r Record) WeightKg() float64 {
	return float64(r.Weight) / 10
}

func (r Record) HeightM() float64 {
	return float64(r.Height) / 10
}

// DisplayName uppercases the first rune and lowercases the rest.
func DisplayName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(first)) + name[size:]
}
