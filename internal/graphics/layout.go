package graphics

import (
	"image"
	"image/color"
)

// Progress indicator geometry.
const (
	DotRadius  = 16
	DotSpacing = 8
	DotsPerRow = 3
	MaxDots    = 10
)

var (
	// SelectedOverlay darkens selected grid cells.
	SelectedOverlay = color.RGBA{0, 0, 0, 0xAA}

	// Placeholder fills cells and pages whose image could not be decoded.
	Placeholder = color.RGBA{0x40, 0x40, 0x40, 0xFF}

	// Background is the window clear colour.
	Background = color.RGBA{0, 0, 0, 0xFF}

	// DotColor is the colour of the progress dots.
	DotColor = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

// ScaleToFit returns the largest rectangle with the aspect ratio of a w×h image
// that fits in maxW×maxH, centred. Sizes are truncated, so odd margins put the
// extra pixel on the far side.
func ScaleToFit(w, h, maxW, maxH int) image.Rectangle {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return image.Rectangle{}
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	sw := int(float64(w) * scale)
	sh := int(float64(h) * scale)

	x := (maxW - sw) / 2
	y := (maxH - sh) / 2
	return image.Rect(x, y, x+sw, y+sh)
}

// ProgressDots returns how many dots represent entry index of length entries,
// from 0 to MaxDots.
func ProgressDots(index, length int) int {
	if length <= 0 {
		return 0
	}
	return index * MaxDots / length
}

// ProgressDotCenters returns the centres of n progress dots laid out
// DotsPerRow to a row from the top left corner.
func ProgressDotCenters(n int) []image.Point {
	step := 2*DotRadius + DotSpacing
	points := make([]image.Point, 0, max(n, 0))
	for i := range max(n, 0) {
		points = append(points, image.Pt(step*(1+i%DotsPerRow), step*(1+i/DotsPerRow)))
	}
	return points
}

// CellRect returns the screen rectangle of grid cell i in a cols×rows grid
// covering a w×h viewport.
func CellRect(i, cols, rows, w, h int) image.Rectangle {
	if cols <= 0 || rows <= 0 {
		return image.Rectangle{}
	}
	cellW := w / cols
	cellH := h / rows
	x := (i % cols) * cellW
	y := (i / cols) * cellH
	return image.Rect(x, y, x+cellW, y+cellH)
}
