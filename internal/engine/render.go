package engine

import (
	"image"

	"github.com/rsookram/gallery-desktop/internal/codec"
	"github.com/rsookram/gallery-desktop/internal/graphics"
)

// Render draws the current mode onto s.
func (g *Game) Render(s graphics.Surface) {
	s.Fill(graphics.Background)

	switch m := g.mode.(type) {
	case *Selector:
		g.renderSelector(s, m)
	case *Viewer:
		g.renderViewer(s, m)
	}
}

// renderSelector decodes the covers of the current page and lays them out
// in the grid. Decoding blocks until every cell is done.
func (g *Game) renderSelector(s graphics.Surface, m *Selector) {
	page := m.Grid.CurrentPage()
	covers, err := g.covers.DecodePage(m.Grid.CurrentPagePaths())
	if err != nil {
		g.log().Error("Failed to decode page", "page", m.Grid.PageIndex(), "error", err)
	}

	cols, rows := m.Grid.Columns(), m.Grid.Rows()
	for i, entry := range page {
		cell := graphics.CellRect(i, cols, rows, g.screenWidth, g.screenHeight)

		if err != nil || covers[i].Err != nil {
			s.DrawFilledRect(cell, graphics.Placeholder)
		} else {
			img := covers[i].Image
			dst := graphics.ScaleToFit(img.Width, img.Height, cell.Dx(), cell.Dy())
			s.DrawScaledImage(img.Pixels, dst.Add(cell.Min))
		}

		if entry.Selected {
			s.DrawFilledRect(cell, graphics.SelectedOverlay)
		}
	}
}

func (g *Game) renderViewer(s graphics.Surface, m *Viewer) {
	viewport := image.Rect(0, 0, g.screenWidth, g.screenHeight)

	img, err := g.decodeCurrent(m)
	if err != nil {
		g.log().Error("Failed to decode image", "path", m.Nav.CurrentPath(), "entry", m.Nav.Position().Entry, "error", err)
		s.DrawFilledRect(viewport, graphics.Placeholder)
	} else {
		dst := graphics.ScaleToFit(img.Width, img.Height, viewport.Dx(), viewport.Dy())
		s.DrawScaledImage(img.Pixels, dst)
	}

	if m.ShowProgress {
		dots := graphics.ProgressDots(m.Nav.Position().Entry, m.Nav.EntryCount())
		for _, p := range graphics.ProgressDotCenters(dots) {
			s.DrawCircle(float32(p.X), float32(p.Y), graphics.DotRadius, graphics.DotColor)
		}
	}
}

func (g *Game) decodeCurrent(m *Viewer) (*codec.Image, error) {
	data, err := m.Nav.CurrentEntryBytes()
	if err != nil {
		return nil, err
	}
	return g.codec.Decode(data)
}
