package flappy

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/physics"
)

// Visual characters for rendering
const (
	FlyerChar      = '●'
	PipeChar       = '█'
	GroundTopChar  = '▓'
	GroundAltChar  = '▒'
	GroundFillChar = '░'
)

// viewport maps world units onto screen cells.
type viewport struct {
	sx, sy float64
}

func (v viewport) cols(left, right float64) (int, int) {
	return int(math.Floor(left * v.sx)), int(math.Ceil(right * v.sx))
}

func (v viewport) rows(top, bottom float64) (int, int) {
	return int(math.Floor(top * v.sy)), int(math.Ceil(bottom * v.sy))
}

func (v viewport) fill(dst *core.Screen, b *physics.Body, r rune, c core.Color) {
	x0, x1 := v.cols(b.Left(), b.Right())
	y0, y1 := v.rows(b.Top(), b.Bottom())
	dst.DrawRectColored(core.NewRect(x0, y0, x1-x0, y1-y0), r, c)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	s := g.session
	cfg := s.Config()
	v := viewport{
		sx: float64(dst.Width()) / cfg.World.Width,
		sy: float64(dst.Height()) / cfg.World.Height,
	}

	for _, gate := range s.Pool().Gates() {
		if gate.Exists() {
			g.drawGate(dst, v, gate)
		}
	}
	g.drawGround(dst, v, s.Ground())
	g.drawFlyer(dst, v, s.Flyer())

	// HUD
	score := fmt.Sprintf(" %d ", s.Score())
	dst.DrawTextColored((dst.Width()-len(score))/2, 1, score, core.ColorWhite)

	switch {
	case g.paused:
		drawPanel(dst, core.ColorWhite, "PAUSED", "Press P to resume")
	case s.State() == StateReady:
		drawPanel(dst, core.ColorBrightYellow, "GET READY", "Space or click to flap")
	case s.State() == StateDead:
		g.drawBoard(dst, s.Score())
	}
}

func (g *Game) drawGate(dst *core.Screen, v viewport, gate *Gate) {
	v.fill(dst, gate.Top(), PipeChar, core.ColorGreen)
	v.fill(dst, gate.Bottom(), PipeChar, core.ColorGreen)

	// Caps on the gap edges
	x0, x1 := v.cols(gate.Top().Left(), gate.Top().Right())
	_, topEdge := v.rows(gate.Top().Top(), gate.Top().Bottom())
	bottomEdge, _ := v.rows(gate.Bottom().Top(), gate.Bottom().Bottom())
	dst.DrawHLine(x0, topEdge-1, x1-x0, PipeChar, core.ColorBrightGreen)
	dst.DrawHLine(x0, bottomEdge, x1-x0, PipeChar, core.ColorBrightGreen)
}

func (g *Game) drawGround(dst *core.Screen, v viewport, ground *Ground) {
	b := ground.Body()
	y0, _ := v.rows(b.Top(), b.Bottom())
	for y := y0; y < dst.Height(); y++ {
		if y > y0 {
			dst.DrawHLine(0, y, dst.Width(), GroundFillChar, core.ColorOrange)
			continue
		}
		// Stripes shift left as the texture scrolls
		for x := 0; x < dst.Width(); x++ {
			wx := float64(x)/v.sx + ground.Offset()
			r := GroundTopChar
			if int(wx/12)%2 == 1 {
				r = GroundAltChar
			}
			dst.SetColored(x, y, r, core.ColorYellow)
		}
	}
}

func (g *Game) drawFlyer(dst *core.Screen, v viewport, f *Flyer) {
	b := f.Body()
	v.fill(dst, b, FlyerChar, core.ColorBrightYellow)

	x0, x1 := v.cols(b.Left(), b.Right())
	y0, y1 := v.rows(b.Top(), b.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return
	}
	dst.SetColored(x1-1, y0, noseGlyph(f.Rotation()), core.ColorOrange)
}

// noseGlyph picks the beak character for a pitch in degrees.
func noseGlyph(pitch float64) rune {
	switch {
	case pitch <= -15:
		return '◥'
	case pitch >= 45:
		return '◢'
	default:
		return '▶'
	}
}

func (g *Game) drawBoard(dst *core.Screen, score int) {
	medal := Medal(score)
	if medal == "" {
		medal = "none"
	}
	drawPanel(dst, core.ColorRed,
		"GAME OVER",
		fmt.Sprintf("Score: %d  Best: %d", score, g.best),
		"Medal: "+strings.ToUpper(medal[:1])+medal[1:],
		"Press R to restart")
}

// drawPanel draws a box in the center of the screen with one line per entry.
// The first line is the title.
func drawPanel(dst *core.Screen, titleColor core.Color, lines ...string) {
	boxW := 0
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines)*2 + 1
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, l := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = titleColor
		}
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(x, boxY+1+i*2, l, c)
	}
}
