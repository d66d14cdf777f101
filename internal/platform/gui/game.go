package gui

import (
	"context"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-pilas/internal/console"
	"github.com/vovakirdan/tui-pilas/internal/core"
	"github.com/vovakirdan/tui-pilas/internal/shell"
	"github.com/vovakirdan/tui-pilas/internal/world"
)

// palette maps core colours to RGBA.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:   {0x20, 0x20, 0x28, 0xff},
	core.ColorBlack:     {0x00, 0x00, 0x00, 0xff},
	core.ColorRed:       {0xd0, 0x30, 0x30, 0xff},
	core.ColorGreen:     {0x40, 0xa0, 0x40, 0xff},
	core.ColorYellow:    {0xe0, 0xc0, 0x30, 0xff},
	core.ColorBlue:      {0x30, 0x50, 0xc0, 0xff},
	core.ColorMagenta:   {0xb0, 0x40, 0xb0, 0xff},
	core.ColorCyan:      {0x30, 0xb0, 0xc0, 0xff},
	core.ColorWhite:     {0xf0, 0xf0, 0xf0, 0xff},
	core.ColorOrange:    {0xff, 0x87, 0x00, 0xff},
	core.ColorGray:      {0x8a, 0x8a, 0x8a, 0xff},
	core.ColorLightGray: {0xd0, 0xd0, 0xd0, 0xff},
}

// keys maps the Ebitengine keys pilas understands.
var keys = map[ebiten.Key]core.KeyCode{
	ebiten.KeyArrowLeft:  core.KeyLeft,
	ebiten.KeyArrowRight: core.KeyRight,
	ebiten.KeyArrowUp:    core.KeyUp,
	ebiten.KeyArrowDown:  core.KeyDown,
	ebiten.KeySpace:      core.KeySpace,
	ebiten.KeyEnter:      core.KeyEnter,
	ebiten.KeyTab:        core.KeyTab,
	ebiten.KeyBackspace:  core.KeyBackspace,
	ebiten.KeyDelete:     core.KeyDelete,
	ebiten.KeyHome:       core.KeyHome,
	ebiten.KeyEnd:        core.KeyEnd,
	ebiten.KeyPageUp:     core.KeyPageUp,
	ebiten.KeyPageDown:   core.KeyPageDown,
}

// repeatDelay and repeatInterval are in ticks.
const (
	repeatDelay    = 20
	repeatInterval = 3
)

type game struct {
	ctx           context.Context
	world         *world.World
	shell         *shell.Shell
	screen        *core.Screen
	consoleHeight int
	showConsole   bool
	chars         []rune
}

func newGame(ctx context.Context, w *world.World, sh *shell.Shell, consoleHeight int) *game {
	if consoleHeight <= 0 {
		consoleHeight = 10
	}
	return &game{
		ctx:           ctx,
		world:         w,
		shell:         sh,
		screen:        core.NewScreen(w.Width(), w.Height()),
		consoleHeight: consoleHeight,
		showConsole:   sh != nil,
	}
}

// Update advances the world one tick and routes keyboard input.
func (g *game) Update() error {
	if g.ctx.Err() != nil || g.world.Quitting() {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.world.Quit()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) && g.shell != nil {
		g.showConsole = !g.showConsole
	}

	if g.showConsole {
		g.updateConsole()
	} else {
		g.updateControl()
	}

	g.world.Step()
	return nil
}

func (g *game) updateControl() {
	for k, code := range keys {
		ev := core.KeyEvent{Code: code}
		if code == core.KeySpace {
			ev.Rune = ' '
		}
		if inpututil.IsKeyJustPressed(k) {
			g.world.PressKey(ev)
		}
		if inpututil.IsKeyJustReleased(k) {
			g.world.ReleaseKey(ev)
		}
	}
}

func (g *game) updateConsole() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.shell.Cancel()
		return
	}

	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		g.shell.HandleKey(core.RuneKey(r))
	}

	for k, code := range keys {
		if code == core.KeySpace {
			// arrives as an input char
			continue
		}
		if repeating(k) {
			g.shell.HandleKey(core.KeyEvent{Code: code, Shift: shift, Ctrl: ctrl})
		}
	}
}

// repeating reports a key press, repeating while the key is held.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}

// Draw paints the world grid and the console panel.
func (g *game) Draw(dst *ebiten.Image) {
	g.world.Render(g.screen)
	dst.Fill(palette[g.screen.Background()])

	for y := range g.screen.Height() {
		for x := range g.screen.Width() {
			cell := g.screen.GetCell(x, y)
			if cell.Rune == ' ' || cell.Rune == 0 {
				continue
			}
			if cell.Color != core.ColorDefault {
				fillCell(dst, x, y, 1, palette[cell.Color])
			}
			ebitenutil.DebugPrintAt(dst, string(cell.Rune), x*cellW+1, y*cellH)
		}
	}

	if g.showConsole {
		g.drawConsole(dst)
	}
}

func (g *game) drawConsole(dst *ebiten.Image) {
	rows := min(g.consoleHeight, g.screen.Height())
	top := g.screen.Height() - rows
	vector.DrawFilledRect(dst, 0, float32(top*cellH), float32(g.screen.Width()*cellW), float32(rows*cellH),
		color.RGBA{0x10, 0x10, 0x18, 0xe0}, false)

	lines := g.shell.Lines()
	first := max(0, len(lines)-rows)
	curLine, curCol := g.shell.CursorLine()
	scheme := g.shell.Scheme()

	for n := first; n < len(lines); n++ {
		y := top + n - first
		if n == curLine {
			fillCell(dst, 0, y, g.screen.Width(), schemeColor(scheme, console.ColorCurrentLine))
			if m := g.shell.Editor().Match(); m.Active {
				lineStart := len(g.shell.Surface().Runes()) - len([]rune(lines[n]))
				brace := schemeColor(scheme, console.ColorBraceBackground)
				if !m.Matched() {
					brace = schemeColor(scheme, console.ColorBraceUnmatched)
				}
				fillCell(dst, m.Pos-lineStart, y, 1, brace)
				if m.Matched() {
					fillCell(dst, m.Partner-lineStart, y, 1, brace)
				}
			}
			fillCell(dst, curCol, y, 1, schemeColor(scheme, console.ColorSelection))
		}
		ebitenutil.DebugPrintAt(dst, strings.ReplaceAll(lines[n], "\t", "    "), 1, y*cellH)
	}
}

func fillCell(dst *ebiten.Image, x, y, w int, c color.Color) {
	vector.DrawFilledRect(dst, float32(x*cellW), float32(y*cellH), float32(w*cellW), cellH, c, false)
}

// schemeColor resolves a scheme entry (ANSI code or #rrggbb) to RGBA.
func schemeColor(s console.Scheme, name string) color.Color {
	return lipgloss.Color(s.Get(name))
}

// Layout keeps one cell per glyph; resizing the window resizes the world.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cols, rows := max(1, outsideWidth/cellW), max(1, outsideHeight/cellH)
	if cols != g.world.Width() || rows != g.world.Height() {
		g.world.Resize(cols, rows)
		g.screen.Resize(cols, rows)
	}
	return cols * cellW, rows * cellH
}
