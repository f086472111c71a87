package engine

import (
	"github.com/rsookram/gallery-desktop/internal/grid"
	"github.com/rsookram/gallery-desktop/internal/navigation"
)

// Mode is the top-level screen. It is either *Selector or *Viewer.
type Mode interface {
	mode()
}

// Selector shows a page of container covers for picking what to read.
type Selector struct {
	Grid *grid.Model
}

// Viewer shows one entry at a time across the chosen containers.
type Viewer struct {
	Nav          *navigation.State
	ShowProgress bool
}

func (*Selector) mode() {}
func (*Viewer) mode()   {}
