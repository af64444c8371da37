// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenhost

import (
	"errors"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	sldview "github.com/gogpu/sldview"
	"github.com/gogpu/sldview/internal/app"
	"github.com/gogpu/sldview/internal/interaction"
)

// Errors returned by the host.
var (
	// ErrClosed is returned by Update after Close.
	ErrClosed = errors.New("ebitenhost: game is closed")

	// ErrUnknownKey is returned when a shortcut names a key the host
	// cannot bind.
	ErrUnknownKey = errors.New("ebitenhost: unknown key")

	// ErrNilApp is returned by NewGame without an application.
	ErrNilApp = errors.New("ebitenhost: nil app")
)

var (
	_ interaction.Target    = (*app.App)(nil)
	_ interaction.Commander = (*app.App)(nil)
	_ app.Notifier          = (*Alerts)(nil)
)

// Debug font cell size of ebitenutil.DebugPrintAt.
const (
	lineHeight = 16
	charWidth  = 6
	margin     = 8
)

var (
	panelColor = color.NRGBA{0, 0, 0, 0xa0}
	alertColor = color.NRGBA{0x20, 0x20, 0x20, 0xe0}
	dimColor   = color.NRGBA{0, 0, 0, 0x60}
)

// Game is an ebiten.Game hosting an App.
type Game struct {
	app    *app.App
	canvas *interaction.Canvas
	alerts *Alerts
	keys   []binding
	help   []string

	frame *ebiten.Image
	dirty bool // composite changed since the last upload

	inside       bool
	lastX, lastY int
	pressed      bool
	pressX       float64
	pressY       float64
	showHelp     bool
	closed       bool
}

// NewGame binds a to a window. Alerts raised by a should go to alerts.
func NewGame(a *app.App, alerts *Alerts) (*Game, error) {
	if a == nil {
		return nil, ErrNilApp
	}
	if alerts == nil {
		alerts = &Alerts{}
	}
	keys, err := bindings(interaction.Shortcuts())
	if err != nil {
		return nil, err
	}
	return &Game{
		app:    a,
		canvas: interaction.New(a),
		alerts: alerts,
		keys:   keys,
		help:   helpLines(keys),
		dirty:  true,
	}, nil
}

// Run opens a resizable window and blocks until it is closed.
func Run(g *Game, title string, width, height int) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// Close releases the window texture. The App is owned by the caller.
func (g *Game) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	if g.frame != nil {
		g.frame.Deallocate()
		g.frame = nil
	}
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.closed {
		return ErrClosed
	}
	if g.alerts.Current() != "" {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || len(inpututil.AppendJustPressedKeys(nil)) > 0 {
			g.alerts.Dismiss()
		}
	} else if err := g.input(); err != nil {
		return err
	}

	g.app.Pump()
	if g.app.Frame() {
		g.dirty = true
	}
	return nil
}

func (g *Game) input() error {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if fsys := ebiten.DroppedFiles(); fsys != nil {
		files, err := interaction.ReadDropped(fsys)
		if err != nil {
			sldview.Logger().Warn("reading dropped files", "err", err)
		} else if err := g.canvas.Drop(files); err != nil {
			sldview.Logger().Debug("drop rejected", "err", err)
		}
	}

	g.pointer()

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	for _, b := range g.keys {
		if !inpututil.IsKeyJustPressed(b.key) {
			continue
		}
		if err := b.Run(g.app); err != nil {
			sldview.Logger().Debug("shortcut ignored", "key", b.Key, "err", err)
		}
	}
	return nil
}

func (g *Game) pointer() {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	w, h := g.app.Size()
	in := cx >= 0 && cy >= 0 && cx < w && cy < h

	switch {
	case in && (!g.inside || cx != g.lastX || cy != g.lastY):
		g.canvas.PointerMove(x, y)
	case !in && g.inside:
		g.canvas.PointerLeave()
		g.pressed = false
	}
	g.inside, g.lastX, g.lastY = in, cx, cy
	if !in {
		return
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.canvas.Wheel(x, y, -wy)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.canvas.PointerDown(x, y)
		g.pressed, g.pressX, g.pressY = true, x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.pressed {
		g.canvas.PointerUp()
		g.pressed = false
		if interaction.Dragged(g.pressX, g.pressY, x, y) {
			return
		}
		if err := g.canvas.Click(); err != nil {
			sldview.Logger().Debug("click ignored", "err", err)
		}
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.closed {
		return
	}
	g.flush()
	screen.DrawImage(g.frame, nil)

	status := g.app.Status()
	if g.app.Controls().Overlay() {
		sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
		vector.DrawFilledRect(screen, 0, 0, float32(sw), float32(sh), dimColor, false)
		textBox(screen, status, (sw-textWidth(status))/2, sh/2, panelColor)
	} else {
		textBox(screen, status, margin, margin, panelColor)
	}
	if g.showHelp {
		textBox(screen, g.help, margin, margin+(len(status)+2)*lineHeight, panelColor)
	}
	if msg := g.alerts.Current(); msg != "" {
		lines := append(strings.Split(msg, "\n"), "", "Click or press any key")
		sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
		textBox(screen, lines, (sw-textWidth(lines))/2, (sh-len(lines)*lineHeight)/2, alertColor)
	}
}

// flush uploads the composite to the window texture when it changed.
func (g *Game) flush() {
	w, h := g.app.Size()
	if g.frame == nil || g.frame.Bounds().Dx() != w || g.frame.Bounds().Dy() != h {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(w, h)
		g.dirty = true
	}
	if g.dirty {
		g.frame.WritePixels(g.app.Composite().Pix)
		g.dirty = false
	}
}

// Layout implements ebiten.Game. The canvas follows the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.app.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func textBox(dst *ebiten.Image, lines []string, x, y int, bg color.Color) {
	if len(lines) == 0 {
		return
	}
	w := textWidth(lines) + 2*margin
	h := len(lines)*lineHeight + margin
	vector.DrawFilledRect(dst, float32(x-margin), float32(y-margin/2), float32(w), float32(h), bg, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(dst, line, x, y+i*lineHeight)
	}
}

func textWidth(lines []string) int {
	n := 0
	for _, l := range lines {
		n = max(n, len([]rune(l)))
	}
	return n * charWidth
}
