package platformer

import "math"

// Snapshot is a flattened copy of the game state for determinism checks.
// Positions are stored in thousandths of a cell.
type Snapshot struct {
	Tick      int
	Score     int
	Lives     int
	Stage     int
	PlayerX   int
	PlayerY   int
	Super     bool
	StarLeft  int // milliseconds
	CoinsLeft int
	GameOver  bool

	// Each enemy is 3 ints: X, Y, Alive.
	EnemyData []int
}

func milli(v float64) int {
	return int(math.Round(v * 1000))
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	enemyData := make([]int, 0, len(g.lv.enemies)*3)
	for _, e := range g.lv.enemies {
		alive := 0
		if e.alive {
			alive = 1
		}
		enemyData = append(enemyData, milli(e.box.X), milli(e.box.Y), alive)
	}

	return Snapshot{
		Tick:      g.ticks,
		Score:     g.score,
		Lives:     g.lives,
		Stage:     g.stage,
		PlayerX:   milli(g.player.X),
		PlayerY:   milli(g.player.Y),
		Super:     g.super,
		StarLeft:  milli(g.starLeft),
		CoinsLeft: g.lv.coinsLeft(),
		GameOver:  g.gameOver,
		EnemyData: enemyData,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Stage)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerX)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerY)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.StarLeft)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.CoinsLeft) //#nosec G115 -- hash computation
	if snap.Super {
		h = h*31 + 1
	}
	if snap.GameOver {
		h = h*31 + 2
	}
	for _, v := range snap.EnemyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
