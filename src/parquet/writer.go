package parquet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"go.uber.org/zap"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/writer"
)

type PokemonWriter struct {
	buffer *buffer.BufferFile
	writer *writer.ParquetWriter
}

const (
	InitialCapacity = 64 * 1024
	FileName        = "pokemon.parquet"
)

func NewPokemonWriter() (*PokemonWriter, error) {
	bufferFile := buffer.NewBufferFileCapacity(InitialCapacity)
	w, err := writer.NewParquetWriter(bufferFile, new(Pokemon), 1)
	if err != nil {
		return nil, err
	}
	return &PokemonWriter{
		buffer: bufferFile,
		writer: w,
	}, nil
}

func (w *PokemonWriter) WritePokemon(pokemon *Pokemon) error {
	return w.writer.Write(pokemon)
}

func (w *PokemonWriter) Finish() error {
	err := w.writer.WriteStop()
	if err != nil {
		return err
	}
	_, err = w.buffer.Seek(0, io.SeekStart)
	return err
}

func (w *PokemonWriter) Size() int {
	return len(w.buffer.Bytes())
}

func (w *PokemonWriter) Bytes() []byte {
	return w.buffer.Bytes()
}

// Exporter writes the latest record as a one-row Parquet file, overwriting it on each save.
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
	w, err := NewPokemonWriter()
	if err != nil {
		return fmt.Errorf("creating parquet writer: %w", err)
	}
	pokemon := ToPokemon(record)
	if err := w.WritePokemon(&pokemon); err != nil {
		return fmt.Errorf("writing %s to parquet: %w", record.Name, err)
	}
	if err := w.Finish(); err != nil {
		return fmt.Errorf("finishing parquet file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
		return err
	}
	e.sugar.Infof("Writing parquet file of size %d to %s", w.Size(), e.path)
	return os.WriteFile(e.path, w.Bytes(), 0o644)
}
