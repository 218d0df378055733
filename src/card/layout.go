package card

// Canvas geometry. Positions are normalized to the plot area with the origin at
// the bottom-left corner.
const (
	CanvasWidth  = 700
	CanvasHeight = 500

	plotLeft   = 0.125
	plotRight  = 0.9
	plotBottom = 0.11
	plotTop    = 0.88

	ImageZoom  = 0.3
	TitleSize  = 20.0
	TextSize   = 10.0
	fontDPI    = 100.0
	lineFactor = 1.2
)

type Point struct {
	X float64
	Y float64
}

var (
	ImageAnchor = Point{X: 0.2, Y: 0.5}
	TextAnchor  = Point{X: 0.6, Y: 0.1}
)

type Layout struct {
	Width       int
	Height      int
	ImageAnchor Point
	ImageZoom   float64
	TextAnchor  Point
}

func DefaultLayout() Layout {
	return Layout{
		Width:       CanvasWidth,
		Height:      CanvasHeight,
		ImageAnchor: ImageAnchor,
		ImageZoom:   ImageZoom,
		TextAnchor:  TextAnchor,
	}
}

// toPixel maps a normalized plot position to canvas pixels (top-left origin).
func (l Layout) toPixel(p Point) (int, int) {
	left := plotLeft * float64(l.Width)
	width := (plotRight - plotLeft) * float64(l.Width)
	bottom := (1 - plotBottom) * float64(l.Height)
	height := (plotTop - plotBottom) * float64(l.Height)
	return int(left + p.X*width), int(bottom - p.Y*height)
}

func (l Layout) plotTopPixel() int {
	return int((1 - plotTop) * float64(l.Height))
}
