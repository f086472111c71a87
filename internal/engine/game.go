package engine

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/rsookram/gallery-desktop/internal/audio"
	"github.com/rsookram/gallery-desktop/internal/codec"
	"github.com/rsookram/gallery-desktop/internal/container"
	"github.com/rsookram/gallery-desktop/internal/cover"
	"github.com/rsookram/gallery-desktop/internal/graphics"
	"github.com/rsookram/gallery-desktop/internal/grid"
	"github.com/rsookram/gallery-desktop/internal/input"
	"github.com/rsookram/gallery-desktop/internal/navigation"
	"github.com/rsookram/gallery-desktop/internal/settings"
)

// SoundPlayer plays feedback sounds. *audio.Manager implements it.
type SoundPlayer interface {
	Play(id audio.Sound)
}

type silence struct{}

func (silence) Play(audio.Sound) {}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for the game and the components it creates.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// WithSounds sets the feedback sound player.
func WithSounds(sounds SoundPlayer) Option {
	return func(g *Game) {
		g.sounds = sounds
	}
}

// WithCodec replaces the image decoder.
func WithCodec(c codec.Decoder) Option {
	return func(g *Game) {
		g.codec = c
	}
}

// WithSelector starts the game in the cover selector instead of the viewer.
func WithSelector() Option {
	return func(g *Game) {
		g.startInSelector = true
	}
}

// Game represents the viewer application
type Game struct {
	config *settings.Config
	mode   Mode

	input   *input.Manager
	sounds  SoundPlayer
	codec   codec.Decoder
	covers  *cover.Decoder
	navOpts []navigation.Option

	screenWidth  int
	screenHeight int

	// redraw is set whenever the visible state changes. The screen is not
	// cleared between frames, so Draw does nothing while it is false.
	redraw bool
	canvas *graphics.Canvas

	startInSelector bool
	logger          *slog.Logger
}

func (g *Game) log() *slog.Logger {
	if g.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return g.logger
}

// NewGame creates a game over the container paths.
func NewGame(config *settings.Config, paths []string, opts ...Option) (*Game, error) {
	g := &Game{
		config:       config,
		input:        input.NewManager(),
		sounds:       silence{},
		codec:        codec.Standard{},
		screenWidth:  config.ScreenWidth,
		screenHeight: config.ScreenHeight,
		redraw:       true,
	}
	for _, opt := range opts {
		opt(g)
	}

	containerOpts := []container.Option{container.WithLogger(g.logger)}
	if config.StrictContainers {
		containerOpts = append(containerOpts, container.WithStrictValidation())
	}

	g.navOpts = []navigation.Option{
		navigation.WithContainerOptions(containerOpts...),
		navigation.WithLogger(g.logger),
	}

	coverOpts := []cover.Option{
		cover.WithLimit(config.Columns * config.Rows),
		cover.WithContainerOptions(containerOpts...),
		cover.WithLogger(g.logger),
	}
	if config.AbortOnCoverError {
		coverOpts = append(coverOpts, cover.WithAbortOnError())
	}
	g.covers = cover.NewDecoder(g.codec, coverOpts...)

	if g.startInSelector {
		g.mode = &Selector{Grid: grid.NewModel(paths, config.Columns, config.Rows)}
		g.log().Info("Starting in selector", "containers", len(paths))
		return g, nil
	}

	nav, err := navigation.Open(paths, g.navOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open viewer: %w", err)
	}
	g.mode = &Viewer{Nav: nav, ShowProgress: config.ShowProgress}
	g.log().Info("Starting in viewer", "containers", len(paths))
	return g, nil
}

// Mode returns the current screen.
func (g *Game) Mode() Mode {
	return g.mode
}

// Update handles the input of one tick.
func (g *Game) Update() error {
	g.input.Update()
	for _, e := range g.input.Events() {
		if err := g.HandleEvent(e); err != nil {
			return err
		}
	}
	return nil
}

// Draw re-renders the screen when something changed since the last frame.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.redraw {
		return
	}
	g.redraw = false

	// Textures of the previous render are no longer referenced.
	if g.canvas != nil {
		g.canvas.Release()
	}
	g.canvas = graphics.NewCanvas(screen)
	g.Render(g.canvas)

	if g.config.DebugMode {
		ebitenutil.DebugPrint(screen, g.debugText())
	}
}

func (g *Game) debugText() string {
	switch m := g.mode.(type) {
	case *Selector:
		return fmt.Sprintf("page %d/%d selected %d", m.Grid.PageIndex()+1, m.Grid.PageCount(), m.Grid.SelectedCount())
	case *Viewer:
		pos := m.Nav.Position()
		text := fmt.Sprintf("container %d/%d entry %d/%d", pos.Container+1, len(m.Nav.Paths()), pos.Entry+1, m.Nav.EntryCount())
		if size, err := m.Nav.CurrentEntrySize(); err == nil {
			text += fmt.Sprintf(" (%d bytes)", size)
		}
		return text
	}
	return ""
}

// Layout tracks the window size so the viewport follows resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if outsideWidth != g.screenWidth || outsideHeight != g.screenHeight {
		g.screenWidth = outsideWidth
		g.screenHeight = outsideHeight
		g.redraw = true
	}
	return g.screenWidth, g.screenHeight
}

// Run opens the window and blocks until the viewer quits.
func (g *Game) Run() error {
	defer g.Close()

	ebiten.SetWindowSize(g.config.ScreenWidth, g.config.ScreenHeight)
	ebiten.SetWindowTitle("gallery-desktop")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(g.config.Fullscreen)
	ebiten.SetVsyncEnabled(g.config.VSync)
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return nil
}

// Close releases the open container, if any.
func (g *Game) Close() error {
	if v, ok := g.mode.(*Viewer); ok {
		return v.Nav.Close()
	}
	return nil
}
