package pokedex

import (
	"encoding/json"
	"fmt"
)

type fixture struct {
	artwork   any
	sprite    any
	moveCount int
	dropField string
}

func pikachuDoc(f fixture) []byte {
	moves := make([]map[string]any, 0, f.moveCount)
	for i := 0; i < f.moveCount; i++ {
		moves = append(moves, map[string]any{
			"move": map[string]any{"name": fmt.Sprintf("move-%02d", i), "url": "https://pokeapi.co/api/v2/move/1/"},
		})
	}
	doc := map[string]any{
		"name":   "pikachu",
		"weight": 60,
		"height": 4,
		"sprites": map[string]any{
			"front_default": f.sprite,
			"other": map[string]any{
				"official-artwork": map[string]any{"front_default": f.artwork},
			},
		},
		"moves": moves,
		"abilities": []map[string]any{
			{"ability": map[string]any{"name": "static"}, "is_hidden": false},
			{"ability": map[string]any{"name": "lightning-rod"}, "is_hidden": true},
		},
		"types": []map[string]any{
			{"slot": 1, "type": map[string]any{"name": "electric"}},
		},
	}
	if f.dropField != "" {
		delete(doc, f.dropField)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return data
}
