package card

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pikachu = pokedex.Record{
	Name:      "Pikachu",
	ImageURL:  "https://example.com/25.png",
	Weight:    60,
	Height:    4,
	Moves:     []string{"mega-punch", "pay-day", "thunder-punch"},
	Abilities: []string{"static", "lightning-rod"},
	Types:     []string{"electric"},
}

func solidSprite(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, color.RGBA{R: 250, G: 210, B: 0, A: 255})
		}
	}
	return img
}

func TestSummaryLines(t *testing.T) {
	assert.Equal(t, []string{
		"Name: Pikachu",
		"Weight: 6.0 kg",
		"Height: 0.4 m",
		"Moves: mega-punch",
		" pay-day",
		" thunder-punch",
		"Abilities: static, lightning-rod",
		"Types: electric",
	}, SummaryLines(pikachu))

	lines := SummaryLines(pokedex.Record{Name: "Ditto", Weight: 40, Height: 3})
	assert.Equal(t, "Moves: ", lines[3])
	assert.Len(t, lines, 6)
}

func TestRender(t *testing.T) {
	renderer, err := NewRenderer(zap.NewNop().Sugar(), DefaultLayout())
	require.NoError(t, err)

	card, err := renderer.Render(pikachu, solidSprite(475))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, CanvasWidth, CanvasHeight), card.Bounds())

	// 475px artwork at 0.3 zoom is ~142px, centred on the image anchor.
	cx, cy := DefaultLayout().toPixel(ImageAnchor)
	assertNear(t, color.RGBA{R: 250, G: 210, B: 0, A: 255}, card.RGBAAt(cx, cy))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, card.RGBAAt(cx+80, cy))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, card.RGBAAt(0, CanvasHeight-1))

	assert.True(t, hasInk(card, image.Rect(0, 0, CanvasWidth, DefaultLayout().plotTopPixel())), "title missing")
	tx, ty := DefaultLayout().toPixel(TextAnchor)
	assert.True(t, hasInk(card, image.Rect(tx, 0, CanvasWidth, ty+5)), "summary missing")
}

func TestRenderNilBitmap(t *testing.T) {
	renderer, err := NewRenderer(zap.NewNop().Sugar(), DefaultLayout())
	require.NoError(t, err)
	_, err = renderer.Render(pikachu, nil)
	assert.Error(t, err)
}

func assertNear(t *testing.T, expected, actual color.RGBA) {
	t.Helper()
	diff := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	assert.LessOrEqual(t, diff(expected.R, actual.R)+diff(expected.G, actual.G)+diff(expected.B, actual.B), 6,
		"expected %v, got %v", expected, actual)
}

func hasInk(img *image.RGBA, r image.Rectangle) bool {
	for x := r.Min.X; x < r.Max.X; x++ {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			c := img.RGBAAt(x, y)
			if c.R < 128 && c.G < 128 && c.B < 128 {
				return true
			}
		}
	}
	return false
}

func TestDisplayWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cards")
	display := NewDisplay(zap.NewNop().Sugar(), dir, ViewerNone)

	require.NoError(t, display.Show(context.Background(), pikachu, solidSprite(20)))

	f, err := os.Open(filepath.Join(dir, "pikachu.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 20), img.Bounds())
}

func TestDisplayOpensCardByDefault(t *testing.T) {
	dir := t.TempDir()
	display := NewDisplay(zap.NewNop().Sugar(), dir, "")
	require.NotNil(t, display.open)
	var opened []string
	display.open = func(_ context.Context, path string) error {
		opened = append(opened, path)
		return nil
	}

	require.NoError(t, display.Show(context.Background(), pikachu, solidSprite(4)))
	assert.Equal(t, []string{filepath.Join(dir, "pikachu.png")}, opened)
	assert.FileExists(t, opened[0])
}

func TestDisplayOpenFailure(t *testing.T) {
	display := NewDisplay(zap.NewNop().Sugar(), t.TempDir(), "")
	display.open = func(_ context.Context, path string) error {
		return errors.New("no desktop session")
	}
	err := display.Show(context.Background(), pikachu, solidSprite(4))
	assert.ErrorContains(t, err, "no desktop session")
}

func TestDisplayNoneSkipsOpening(t *testing.T) {
	display := NewDisplay(zap.NewNop().Sugar(), t.TempDir(), ViewerNone)
	assert.Nil(t, display.open)
}

func TestDisplayViewerFailure(t *testing.T) {
	display := NewDisplay(zap.NewNop().Sugar(), t.TempDir(), "/nonexistent/viewer")
	err := display.Show(context.Background(), pikachu, solidSprite(4))
	assert.Error(t, err)
}
