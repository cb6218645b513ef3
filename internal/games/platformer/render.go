package platformer

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/physics"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	GroundChar   = '▓'
	PlatformChar = '▀'
	CoinChar     = 'o'
	EnemyChar    = '▄'
	MushroomChar = '♣'
	StarChar     = '★'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	for i, s := range g.lv.surfaces {
		ch, color := PlatformChar, core.ColorGreen
		if i == 0 {
			ch, color = GroundChar, core.ColorYellow
		}
		fillBox(dst, s, ch, color)
	}

	for _, c := range g.lv.coins {
		if !c.collected {
			fillBox(dst, c.box, CoinChar, core.ColorCoins)
		}
	}
	for _, p := range g.lv.powerUps {
		if p.collected {
			continue
		}
		if p.kind == powerMushroom {
			fillBox(dst, p.box, MushroomChar, core.ColorRed)
		} else {
			fillBox(dst, p.box, StarChar, core.ColorBrightYellow)
		}
	}
	for _, e := range g.lv.enemies {
		if e.alive {
			fillBox(dst, e.box, EnemyChar, core.ColorMagenta)
		}
	}

	g.drawPlayer(dst)
	g.drawHUD(dst)

	if g.paused {
		dst.DrawTextCentered(dst.Height()/2, " PAUSED - press P to resume ")
	}
	if g.gameOver {
		g.drawGameOver(dst)
	}
}

func (g *Game) drawPlayer(dst *core.Screen) {
	// Blink while invulnerable after a hit.
	if g.hurtLeft > 0 && (g.ticks/6)%2 == 1 {
		return
	}
	color := core.ColorCyan
	switch {
	case g.starLeft > 0:
		if (g.ticks/4)%2 == 0 {
			color = core.ColorBrightYellow
		} else {
			color = core.ColorWhite
		}
	case g.super:
		color = core.ColorBrightRed
	}
	fillBox(dst, g.player.Box, PlayerChar, color)
}

func (g *Game) drawHUD(dst *core.Screen) {
	hearts := strings.Repeat("♥", g.lives)
	status := ""
	switch {
	case g.starLeft > 0:
		status = fmt.Sprintf("  STAR %.0fs", math.Ceil(g.starLeft))
	case g.super:
		status = "  SUPER"
	}
	hud := fmt.Sprintf(" Score: %d  Stage: %d  Lives: %s%s ", g.score, g.stage, hearts, status)
	dst.DrawTextColored(0, 0, hud, core.ColorWhite)
}

func (g *Game) drawGameOver(dst *core.Screen) {
	cy := dst.Height() / 2
	box := core.NewRect(dst.Width()/2-15, cy-2, 30, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorRed)
	dst.DrawTextCenteredColored(cy-1, "GAME OVER", core.ColorBrightRed)
	dst.DrawTextCentered(cy, fmt.Sprintf("Score: %d", g.score))
	dst.DrawTextCentered(cy+1, "R restart  B menu")
}

// fillBox draws every cell a box covers.
func fillBox(dst *core.Screen, b physics.Box, ch rune, color core.Color) {
	x0, y0 := int(math.Floor(b.X)), int(math.Floor(b.Y))
	x1, y1 := int(math.Ceil(b.Right())), int(math.Ceil(b.Bottom()))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetColored(x, y, ch, color)
		}
	}
}
