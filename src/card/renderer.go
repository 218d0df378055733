package card

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Renderer composes a card: the sprite on the left and the stat summary on the right.
type Renderer struct {
	layout    Layout
	titleFace font.Face
	textFace  font.Face
	sugar     *zap.SugaredLogger
}

func NewRenderer(sugar *zap.SugaredLogger, layout Layout) (*Renderer, error) {
	titleFace, err := newFace(gobold.TTF, TitleSize)
	if err != nil {
		return nil, fmt.Errorf("loading title font: %w", err)
	}
	textFace, err := newFace(goregular.TTF, TextSize)
	if err != nil {
		return nil, fmt.Errorf("loading text font: %w", err)
	}
	return &Renderer{
		layout:    layout,
		titleFace: titleFace,
		textFace:  textFace,
		sugar:     sugar,
	}, nil
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
}

func (r *Renderer) Render(record pokedex.Record, bitmap image.Image) (*image.RGBA, error) {
	if bitmap == nil {
		return nil, fmt.Errorf("no image for %s", record.Name)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, r.layout.Width, r.layout.Height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	r.drawTitle(canvas, "Information on "+record.Name)
	r.drawBitmap(canvas, bitmap)
	r.drawText(canvas, SummaryLines(record))
	r.sugar.Debugf("Rendered card for %s", record.Name)
	return canvas, nil
}

// SummaryLines is the text block shown next to the sprite.
func SummaryLines(record pokedex.Record) []string {
	lines := []string{
		"Name: " + record.Name,
		fmt.Sprintf("Weight: %.1f kg", record.WeightKg()),
		fmt.Sprintf("Height: %.1f m", record.HeightM()),
	}
	moves := "Moves: "
	if len(record.Moves) > 0 {
		moves += record.Moves[0]
	}
	lines = append(lines, moves)
	for _, move := range record.Moves[min(1, len(record.Moves)):] {
		lines = append(lines, " "+move)
	}
	return append(lines,
		"Abilities: "+strings.Join(record.Abilities, ", "),
		"Types: "+strings.Join(record.Types, ", "),
	)
}

func (r *Renderer) drawTitle(canvas *image.RGBA, title string) {
	width := font.MeasureString(r.titleFace, title).Ceil()
	x := (r.layout.Width - width) / 2
	y := r.layout.plotTopPixel() - r.titleFace.Metrics().Descent.Ceil() - 6
	r.drawString(canvas, r.titleFace, title, max(x, 0), max(y, r.titleFace.Metrics().Ascent.Ceil()))
}

func (r *Renderer) drawBitmap(canvas *image.RGBA, bitmap image.Image) {
	src := bitmap.Bounds()
	w := max(int(float64(src.Dx())*r.layout.ImageZoom), 1)
	h := max(int(float64(src.Dy())*r.layout.ImageZoom), 1)
	cx, cy := r.layout.toPixel(r.layout.ImageAnchor)
	dst := image.Rect(cx-w/2, cy-h/2, cx-w/2+w, cy-h/2+h)
	draw.CatmullRom.Scale(canvas, dst, bitmap, src, draw.Over, nil)
}

// drawText places the block with its last baseline on the anchor, pushing it down
// if it would run off the top of the canvas.
func (r *Renderer) drawText(canvas *image.RGBA, lines []string) {
	metrics := r.textFace.Metrics()
	lineHeight := int(float64(metrics.Height.Ceil()) * lineFactor)
	x, y := r.layout.toPixel(r.layout.TextAnchor)
	top := y - (len(lines)-1)*lineHeight
	if minTop := metrics.Ascent.Ceil(); top < minTop {
		top = minTop
	}
	for i, line := range lines {
		r.drawString(canvas, r.textFace, line, x, top+i*lineHeight)
	}
}

func (r *Renderer) drawString(canvas *image.RGBA, face font.Face, s string, x, y int) {
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
