package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BielosX/wombat/pokedex/src/parquet"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/BielosX/wombat/pokedex/src/utils"
	"github.com/xitongsys/parquet-go-source/buffer"
	"go.uber.org/zap"
)

const (
	InitialCapacity = 16 * 1024
	FileName        = "pokemon.csv"
	ListSeparator   = "|"
)

type PokemonWriter struct {
	buffer *buffer.BufferFile
	writer *csv.Writer
	fields []reflect.StructField
}

func NewPokemonWriter() PokemonWriter {
	bufferFile := buffer.NewBufferFileCapacity(InitialCapacity)
	writer := csv.NewWriter(bufferFile)
	pokemon := parquet.Pokemon{}
	fields := utils.GetFields(pokemon)
	return PokemonWriter{
		buffer: bufferFile,
		writer: writer,
		fields: fields,
	}
}

// WriteHeader uses the parquet column names so both exports share a schema.
func (w *PokemonWriter) WriteHeader() error {
	var parquetNames []string
	for _, field := range w.fields {
		tag := field.Tag.Get("parquet")
		properties := utils.ParquetTagToKeyValue(tag)
		parquetNames = append(parquetNames, properties["name"])
	}
	return w.writer.Write(parquetNames)
}

func (w *PokemonWriter) Write(pokemon parquet.Pokemon) error {
	value := reflect.ValueOf(pokemon)
	var converted []string
	for _, field := range w.fields {
		fieldValue := value.FieldByName(field.Name).Interface()
		if list, ok := fieldValue.([]string); ok {
			converted = append(converted, strings.Join(list, ListSeparator))
			continue
		}
		converted = append(converted, fmt.Sprint(fieldValue))
	}
	return w.writer.Write(converted)
}

func (w *PokemonWriter) Finish() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return err
	}
	_, err := w.buffer.Seek(0, io.SeekStart)
	return err
}

func (w *PokemonWriter) Size() int {
	return len(w.buffer.Bytes())
}

func (w *PokemonWriter) Bytes() []byte {
	return w.buffer.Bytes()
}

type Exporter struct {
	path  string
	sugar *zap.SugaredLogger
}

func NewExporter(sugar *zap.SugaredLogger, dir string) *Exporter {
	return &Exporter{
		path:  filepath.Join(dir, FileName),
		sugar: sugar,
	}
}

func (e *Exporter) Path() string {
	return e.path
}

func (e *Exporter) Save(record pokedex.Record) error {
	w := NewPokemonWriter()
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.Write(parquet.ToPokemon(record)); err != nil {
		return fmt.Errorf("writing %s to CSV: %w", record.Name, err)
	}
	if err := w.Finish(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
		return err
	}
	e.sugar.Infof("Writing CSV file of size %d to %s", w.Size(), e.path)
	return os.WriteFile(e.path, w.Bytes(), 0o644)
}
