package pokedex

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

const (
	artworkPath = "sprites.other.official-artwork.front_default"
	spritePath  = "sprites.front_default"
)

// Extract builds a Record from a raw catalog document. Moves beyond moveLimit are
// dropped; a non-positive limit keeps them all.
func Extract(doc []byte, moveLimit int) (Record, error) {
	if !gjson.ValidBytes(doc) {
		return Record{}, &ExtractionError{Field: "$"}
	}
	root := gjson.ParseBytes(doc)

	name := root.Get("name")
	if name.Type != gjson.String || name.String() == "" {
		return Record{}, &ExtractionError{Field: "name"}
	}

	imageURL, err := imageURL(root)
	if err != nil {
		return Record{}, err
	}
	weight, err := integer(root, "weight")
	if err != nil {
		return Record{}, err
	}
	height, err := integer(root, "height")
	if err != nil {
		return Record{}, err
	}
	moves, err := names(root, "moves", "move.name", moveLimit)
	if err != nil {
		return Record{}, err
	}
	abilities, err := names(root, "abilities", "ability.name", 0)
	if err != nil {
		return Record{}, err
	}
	types, err := names(root, "types", "type.name", 0)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Name:      DisplayName(name.String()),
		ImageURL:  imageURL,
		Weight:    weight,
		Height:    height,
		Moves:     moves,
		Abilities: abilities,
		Types:     types,
	}, nil
}

func imageURL(root gjson.Result) (string, error) {
	for _, path := range []string{artworkPath, spritePath} {
		if v := root.Get(path); v.Type == gjson.String && v.String() != "" {
			return v.String(), nil
		}
	}
	return "", &ExtractionError{Field: spritePath}
}

func integer(root gjson.Result, path string) (int, error) {
	v := root.Get(path)
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
		return 0, &ExtractionError{Field: path}
	}
	return int(v.Int()), nil
}

func names(root gjson.Result, path, namePath string, limit int) ([]string, error) {
	list := root.Get(path)
	if !list.IsArray() {
		return nil, &ExtractionError{Field: path}
	}
	entries := list.Array()
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	result := make([]string, 0, len(entries))
	for i, entry := range entries {
		name := entry.Get(namePath)
		if name.Type != gjson.String {
			return nil, &ExtractionError{Field: fmt.Sprintf("%s.%d.%s", path, i, namePath)}
		}
		result = append(result, name.String())
	}
	return result, nil
}
