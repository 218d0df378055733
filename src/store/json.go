package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"go.uber.org/zap"
)

const (
	DefaultDir  = "pokedex"
	DefaultFile = "pokemon.json"
)

// entry is the on-disk shape of a record. Key names are read by external tools.
type entry struct {
	Name      string   `json:"Name"`
	ImageURL  string   `json:"ImageURL"`
	Weight    int      `json:"Weight"`
	Size      int      `json:"Size"`
	Moves     []string `json:"Moves"`
	Abilities []string `json:"Abilities"`
	Types     []string `json:"Types"`
}

func toEntry(record pokedex.Record) entry {
	return entry{
		Name:      record.Name,
		ImageURL:  record.ImageURL,
		Weight:    record.Weight,
		Size:      record.Height,
		Moves:     nonNil(record.Moves),
		Abilities: nonNil(record.Abilities),
		Types:     nonNil(record.Types),
	}
}

func (e entry) toRecord() pokedex.Record {
	return pokedex.Record{
		Name:      e.Name,
		ImageURL:  e.ImageURL,
		Weight:    e.Weight,
		Height:    e.Size,
		Moves:     e.Moves,
		Abilities: e.Abilities,
		Types:     e.Types,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// IOError reports a failure to persist or read the record file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func AsIOError(err error) (*IOError, bool) {
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ioErr, true
	}
	return nil, false
}

// Encode renders the single-record document written by JSONStore.
func Encode(record pokedex.Record) ([]byte, error) {
	return json.Marshal([]entry{toEntry(record)})
}

// JSONStore keeps the most recent lookup in one file, overwriting it each time.
type JSONStore struct {
	path  string
	sugar *zap.SugaredLogger
}

func NewJSONStore(sugar *zap.SugaredLogger, dir, file string) *JSONStore {
	if dir == "" {
		dir = DefaultDir
	}
	if file == "" {
		file = DefaultFile
	}
	return &JSONStore{
		path:  filepath.Join(dir, file),
		sugar: sugar,
	}
}

func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) Save(record pokedex.Record) error {
	data, err := Encode(record)
	if err != nil {
		return &IOError{Path: s.path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &IOError{Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.sugar.Errorf("Failed to write record file: %s", err)
		return &IOError{Path: s.path, Err: err}
	}
	s.sugar.Infof("Saved %s to %s", record.Name, s.path)
	return nil
}

// Load reads back a file written by JSONStore.
func Load(path string) ([]pokedex.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	records := make([]pokedex.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.toRecord())
	}
	return records, nil
}
