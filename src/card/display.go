package card

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/skratchdot/open-golang/open"
	"go.uber.org/zap"
)

// ViewerNone only writes the card file.
const ViewerNone = "none"

// Display writes the card as a PNG and opens it. With no viewer configured the
// platform default application is used; a named viewer is run and waited on.
type Display struct {
	dir    string
	viewer string
	open   func(ctx context.Context, path string) error
	sugar  *zap.SugaredLogger
}

func NewDisplay(sugar *zap.SugaredLogger, dir, viewer string) *Display {
	d := &Display{
		dir:    dir,
		viewer: viewer,
		sugar:  sugar,
	}
	switch viewer {
	case ViewerNone:
	case "":
		d.open = openDefault
	default:
		d.open = d.runViewer
	}
	return d
}

func openDefault(_ context.Context, path string) error {
	if err := open.Run(path); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	return nil
}

func (d *Display) runViewer(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, d.viewer, path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running viewer %s: %w", d.viewer, err)
	}
	return nil
}

func (d *Display) CardPath(record pokedex.Record) string {
	return filepath.Join(d.dir, record.LookupName()+".png")
}

func (d *Display) Show(ctx context.Context, record pokedex.Record, card image.Image) error {
	data, err := EncodePNG(card)
	if err != nil {
		return err
	}
	path := d.CardPath(record)
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("creating card directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing card: %w", err)
	}
	d.sugar.Infof("Card for %s written to %s", record.Name, path)
	if d.open == nil {
		return nil
	}
	return d.open(ctx, path)
}

func EncodePNG(card image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, card); err != nil {
		return nil, fmt.Errorf("encoding card: %w", err)
	}
	return buf.Bytes(), nil
}
