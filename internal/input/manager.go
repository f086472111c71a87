package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a user command independent of the key that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionNextImage
	ActionPreviousImage
	ActionNextContainer
	ActionPreviousContainer
	ActionToggleProgress
	ActionNextPage
	ActionPreviousPage
	ActionConfirm
	ActionQuit
	ActionClick
)

var actionNames = map[Action]string{
	ActionNone:              "none",
	ActionNextImage:         "next-image",
	ActionPreviousImage:     "previous-image",
	ActionNextContainer:     "next-container",
	ActionPreviousContainer: "previous-container",
	ActionToggleProgress:    "toggle-progress",
	ActionNextPage:          "next-page",
	ActionPreviousPage:      "previous-page",
	ActionConfirm:           "confirm",
	ActionQuit:              "quit",
	ActionClick:             "click",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Bindings maps keys to actions.
var Bindings = map[ebiten.Key]Action{
	ebiten.KeyJ:           ActionNextImage,
	ebiten.KeyArrowDown:   ActionNextImage,
	ebiten.KeyArrowRight:  ActionNextImage,
	ebiten.KeySpace:       ActionNextImage,
	ebiten.KeyK:           ActionPreviousImage,
	ebiten.KeyArrowUp:     ActionPreviousImage,
	ebiten.KeyArrowLeft:   ActionPreviousImage,
	ebiten.KeyH:           ActionPreviousContainer,
	ebiten.KeyL:           ActionNextContainer,
	ebiten.KeyP:           ActionToggleProgress,
	ebiten.KeyN:           ActionNextPage,
	ebiten.KeyPageDown:    ActionNextPage,
	ebiten.KeyB:           ActionPreviousPage,
	ebiten.KeyPageUp:      ActionPreviousPage,
	ebiten.KeyEnter:       ActionConfirm,
	ebiten.KeyNumpadEnter: ActionConfirm,
	ebiten.KeyQ:           ActionQuit,
	ebiten.KeyEscape:      ActionQuit,
}

// Event is one action for the current tick. X and Y are set for clicks.
type Event struct {
	Action Action
	X, Y   int
}

// Translate converts keys pressed this tick into events, in key order.
// Unbound keys are dropped.
func Translate(keys []ebiten.Key) []Event {
	var events []Event
	for _, k := range keys {
		if a, ok := Bindings[k]; ok {
			events = append(events, Event{Action: a})
		}
	}
	return events
}

// Manager handles all input from keyboard and mouse
type Manager struct {
	keys   []ebiten.Key
	events []Event
}

// NewManager creates a new input manager
func NewManager() *Manager {
	return &Manager{}
}

// Update snapshots the keys and clicks of the current tick.
func (m *Manager) Update() {
	m.keys = inpututil.AppendJustPressedKeys(m.keys[:0])
	m.events = append(m.events[:0], Translate(m.keys)...)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		m.events = append(m.events, Event{Action: ActionClick, X: x, Y: y})
	}
}

// Events returns the events of the last Update. The slice is reused by the
// next Update.
func (m *Manager) Events() []Event {
	return m.events
}
