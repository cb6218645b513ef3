package platformer

import (
	"math/rand"

	"github.com/vovakirdan/tui-clicker/internal/physics"
)

// hudRows is the number of screen rows reserved above the playfield.
const hudRows = 1

type pickup struct {
	box       physics.Box
	collected bool
}

type powerKind int

const (
	powerMushroom powerKind = iota
	powerStar
)

type powerUp struct {
	pickup
	kind powerKind
}

type enemy struct {
	box        physics.Box
	dir        float64 // -1 or +1
	minX, maxX float64
	alive      bool
}

// level is one generated screen of platforms, coins, power-ups and enemies.
type level struct {
	width, height float64
	groundY       float64
	surfaces      []physics.Box // ground first, then platforms
	coins         []pickup
	powerUps      []powerUp
	enemies       []enemy
}

// generateLevel lays out a level from rng. Platforms are stacked in tiers
// four rows apart so each tier is reachable with one jump from the one below.
func generateLevel(rng *rand.Rand, width, height, enemyCount int) level {
	lv := level{
		width:   float64(width),
		height:  float64(height),
		groundY: float64(height - 1),
	}
	lv.surfaces = append(lv.surfaces, physics.Box{X: 0, Y: lv.groundY, W: lv.width, H: 1})

	for y := lv.groundY - 4; y >= hudRows+3; y -= 4 {
		perTier := 1 + rng.Intn(2)
		span := width / perTier
		for i := 0; i < perTier; i++ {
			w := 6 + rng.Intn(7)
			if w >= span-1 {
				w = max(span-2, 3)
			}
			x := i*span + rng.Intn(max(span-w, 1))
			lv.surfaces = append(lv.surfaces, physics.Box{X: float64(x), Y: y, W: float64(w), H: 1})
		}
	}

	platforms := lv.surfaces[1:]

	for _, p := range platforms {
		lv.coins = append(lv.coins, pickup{box: physics.Box{X: float64(int(p.CenterX())), Y: p.Y - 1, W: 1, H: 1}})
	}
	for x := width / 4; x < width-2; x += width / 4 {
		lv.coins = append(lv.coins, pickup{box: physics.Box{X: float64(x), Y: lv.groundY - 1, W: 1, H: 1}})
	}

	if len(platforms) > 0 {
		order := rng.Perm(len(platforms))
		kinds := []powerKind{powerMushroom, powerStar}
		for i, kind := range kinds {
			if i >= len(order) {
				break
			}
			p := platforms[order[i]]
			lv.powerUps = append(lv.powerUps, powerUp{
				pickup: pickup{box: physics.Box{X: p.X + 1, Y: p.Y - 1, W: 1, H: 1}},
				kind:   kind,
			})
		}
	}

	for i := 0; i < enemyCount; i++ {
		var s physics.Box
		minX := 0.0
		if i%2 == 0 || len(platforms) == 0 {
			// Keep the spawn area clear.
			s = lv.surfaces[0]
			minX = lv.width / 3
		} else {
			s = platforms[rng.Intn(len(platforms))]
			minX = s.X
		}
		maxX := s.Right() - 2
		if maxX <= minX {
			continue
		}
		x := minX + rng.Float64()*(maxX-minX)
		dir := 1.0
		if rng.Intn(2) == 0 {
			dir = -1
		}
		lv.enemies = append(lv.enemies, enemy{
			box:   physics.Box{X: x, Y: s.Y - 1, W: 2, H: 1},
			dir:   dir,
			minX:  minX,
			maxX:  maxX,
			alive: true,
		})
	}

	return lv
}

// coinsLeft counts uncollected coins.
func (lv *level) coinsLeft() int {
	n := 0
	for _, c := range lv.coins {
		if !c.collected {
			n++
		}
	}
	return n
}
