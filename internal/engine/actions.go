package engine

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/rsookram/gallery-desktop/internal/audio"
	"github.com/rsookram/gallery-desktop/internal/input"
	"github.com/rsookram/gallery-desktop/internal/navigation"
)

// HandleEvent applies one input event to the current mode. It returns
// ebiten.Termination on quit; every other failure is logged and leaves the
// previous state on screen.
func (g *Game) HandleEvent(e input.Event) error {
	if e.Action == input.ActionQuit {
		g.log().Info("Quit requested")
		return ebiten.Termination
	}

	switch m := g.mode.(type) {
	case *Selector:
		g.handleSelector(m, e)
	case *Viewer:
		g.handleViewer(m, e)
	}
	return nil
}

func (g *Game) handleSelector(m *Selector, e input.Event) {
	switch e.Action {
	case input.ActionNextImage, input.ActionNextPage:
		g.turnPage(m.Grid.NextPage())
	case input.ActionPreviousImage, input.ActionPreviousPage:
		g.turnPage(m.Grid.PreviousPage())
	case input.ActionClick:
		if m.Grid.ToggleAt(float64(e.X), float64(e.Y), g.screenWidth, g.screenHeight) {
			g.sounds.Play(audio.SndSelect)
			g.redraw = true
		}
	case input.ActionConfirm:
		g.enterViewer(m)
	}
}

func (g *Game) turnPage(changed bool) {
	if !changed {
		g.sounds.Play(audio.SndEdge)
		return
	}
	g.sounds.Play(audio.SndPage)
	g.redraw = true
}

// enterViewer replaces the selector with a viewer over the selected
// containers. An empty selection or a failing first container keeps the
// selector.
func (g *Game) enterViewer(m *Selector) {
	paths := m.Grid.SelectedPaths()
	if len(paths) == 0 {
		g.log().Warn("Nothing selected, staying in selector")
		g.sounds.Play(audio.SndEdge)
		return
	}

	nav, err := navigation.Open(paths, g.navOpts...)
	if err != nil {
		g.log().Error("Failed to open selection", "error", err)
		g.sounds.Play(audio.SndEdge)
		return
	}

	g.mode = &Viewer{Nav: nav, ShowProgress: g.config.ShowProgress}
	g.sounds.Play(audio.SndOpen)
	g.redraw = true
	g.log().Info("Entered viewer", "containers", len(paths))
}

func (g *Game) handleViewer(m *Viewer, e input.Event) {
	var move func() error
	switch e.Action {
	case input.ActionNextImage:
		move = m.Nav.NextImage
	case input.ActionPreviousImage:
		move = m.Nav.PreviousImage
	case input.ActionNextContainer:
		move = m.Nav.NextContainer
	case input.ActionPreviousContainer:
		move = m.Nav.PreviousContainer
	case input.ActionToggleProgress:
		m.ShowProgress = !m.ShowProgress
		g.redraw = true
		return
	default:
		return
	}

	before := m.Nav.Position()
	if err := move(); err != nil {
		g.log().Error("Failed to move", "action", e.Action, "error", err)
		g.sounds.Play(audio.SndEdge)
		return
	}
	if m.Nav.Position() == before {
		g.sounds.Play(audio.SndEdge)
		return
	}
	g.redraw = true
}
