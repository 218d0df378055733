package parquet

import "github.com/BielosX/wombat/pokedex/src/pokedex"

type Pokemon struct {
	Name      string   `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	ImageUrl  string   `parquet:"name=image_url, type=BYTE_ARRAY, convertedtype=UTF8"`
	Weight    int32    `parquet:"name=weight, type=INT32"`
	Height    int32    `parquet:"name=height, type=INT32"`
	Moves     []string `parquet:"name=moves, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=REPEATED"`
	Abilities []string `parquet:"name=abilities, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=REPEATED"`
	Types     []string `parquet:"name=types, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=REPEATED"`
}

func ToPokemon(record pokedex.Record) Pokemon {
	return Pokemon{
		Name:      record.Name,
		ImageUrl:  record.ImageURL,
		Weight:    int32(record.Weight),
		Height:    int32(record.Height),
		Moves:     record.Moves,
		Abilities: record.Abilities,
		Types:     record.Types,
	}
}
