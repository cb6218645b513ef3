// Package platformer implements a single-screen platformer: collect every
// coin to clear the level while avoiding or stomping patrolling enemies.
package platformer

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-clicker/internal/config"
	"github.com/vovakirdan/tui-clicker/internal/core"
	"github.com/vovakirdan/tui-clicker/internal/physics"
	"github.com/vovakirdan/tui-clicker/internal/registry"
)

// Minimum playfield size; smaller screens are padded.
const (
	minWidth  = 24
	minHeight = 12
)

// groundFriction is the share of horizontal speed kept per second without input.
const groundFriction = 0.0005

func init() {
	registry.Register("platformer", "Platformer", func(env registry.Env) (registry.Game, error) {
		cfg, err := config.LoadPlatformer(env.ConfigPath)
		if err != nil {
			env.Log().Warn("using default platformer config", "error", err)
			cfg = config.DefaultPlatformerConfig()
		}
		config.ApplyPlatformerPreset(&cfg, env.Difficulty)
		return New(cfg), nil
	})
}

// Game implements the platformer logic.
type Game struct {
	cfg        config.PlatformerConfig
	runtime    core.RuntimeConfig
	rng        *rand.Rand
	stepper    physics.Stepper
	difficulty *config.DifficultyManager

	lv     level
	player physics.Body
	lives  int
	score  int
	stage  int
	ticks  int // fixed steps since reset

	super    bool    // mushroom eaten: the next hit is absorbed
	starLeft float64 // seconds of star invincibility left
	hurtLeft float64 // seconds of damage invulnerability left

	gameOver bool
	paused   bool
	notice   string
}

// New creates a platformer with the given configuration.
func New(cfg config.PlatformerConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "platformer"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Platformer"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.stepper = physics.Stepper{Step: g.cfg.Physics.Step}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.lives = g.cfg.Player.Lives
	g.score = 0
	g.stage = 1
	g.ticks = 0
	g.super = false
	g.starLeft = 0
	g.hurtLeft = 0
	g.gameOver = false
	g.paused = false
	g.notice = ""

	g.buildStage()
}

// buildStage generates the layout for the current stage and places the player.
func (g *Game) buildStage() {
	w := max(g.runtime.ScreenW, minWidth)
	h := max(g.runtime.ScreenH, minHeight)
	enemies := g.cfg.Enemies.Count + g.stage - 1

	g.lv = generateLevel(g.rng, w, h, min(enemies, w/4))
	pw, ph := float64(g.cfg.Player.Width), float64(g.cfg.Player.Height)
	g.player = physics.Body{
		Box:      physics.Box{X: 1, Y: g.lv.groundY - ph, W: pw, H: ph},
		Grounded: true,
	}
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.notice = ""

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.applyInput(in)
	moved := in.Has(core.ActionLeft) || in.Has(core.ActionRight)
	g.stepper.Advance(g.runtime.FrameDuration(), func(dt float64) {
		g.update(dt, moved)
	})

	return core.StepResult{State: g.State(), Notice: g.notice}
}

func (g *Game) applyInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft):
		g.player.VX = -g.cfg.Physics.MoveSpeed
	case in.Has(core.ActionRight):
		g.player.VX = g.cfg.Physics.MoveSpeed
	}

	jump := in.Has(core.ActionUp) || in.Has(core.ActionPrimary)
	if jump && g.player.Grounded {
		g.player.VY = g.cfg.Physics.JumpImpulse
		g.player.Grounded = false
	}
}

// update runs one fixed step.
func (g *Game) update(dt float64, moved bool) {
	if g.gameOver {
		return
	}
	g.ticks++

	g.starLeft = max(g.starLeft-dt, 0)
	g.hurtLeft = max(g.hurtLeft-dt, 0)

	if !moved && g.player.Grounded {
		g.player.VX *= math.Pow(groundFriction, dt)
	}

	params := physics.Params{Gravity: g.cfg.Physics.Gravity, MaxFallSpeed: g.cfg.Physics.MaxFallSpeed}
	g.player.Integrate(dt, params, g.lv.surfaces)
	g.player.X = core.ClampF(g.player.X, 0, g.lv.width-g.player.W)

	g.moveEnemies(dt)
	g.collectPickups()
	g.checkEnemies()

	if g.lv.coinsLeft() == 0 && !g.gameOver {
		g.score += g.cfg.Scoring.Clear
		g.stage++
		g.notice = "Stage clear!"
		g.buildStage()
	}
}

func (g *Game) moveEnemies(dt float64) {
	speed := g.difficulty.Speed(g.cfg.Enemies.Speed, g.score, g.ticks)
	for i := range g.lv.enemies {
		e := &g.lv.enemies[i]
		if !e.alive {
			continue
		}
		e.box.X += e.dir * speed * dt
		if e.box.X <= e.minX {
			e.box.X = e.minX
			e.dir = 1
		} else if e.box.X >= e.maxX {
			e.box.X = e.maxX
			e.dir = -1
		}
	}
}

func (g *Game) collectPickups() {
	for i := range g.lv.coins {
		c := &g.lv.coins[i]
		if !c.collected && physics.Overlap(g.player.Box, c.box, 0) {
			c.collected = true
			g.score += g.cfg.Scoring.Coin
		}
	}

	for i := range g.lv.powerUps {
		p := &g.lv.powerUps[i]
		if p.collected || !physics.Overlap(g.player.Box, p.box, 0) {
			continue
		}
		p.collected = true
		switch p.kind {
		case powerMushroom:
			g.super = true
			g.notice = "Super!"
		case powerStar:
			g.starLeft = g.cfg.Player.StarDuration.Seconds()
			g.notice = "Star power!"
		}
	}
}

func (g *Game) checkEnemies() {
	margin := g.cfg.Collision.Margin
	for i := range g.lv.enemies {
		e := &g.lv.enemies[i]
		if !e.alive || !physics.Overlap(g.player.Box, e.box, margin) {
			continue
		}

		switch {
		case g.starLeft > 0:
			e.alive = false
			g.score += g.cfg.Scoring.Stomp
		case g.player.VY > 0 && g.player.Bottom() <= e.box.Y+e.box.H/2:
			// Landed on top.
			e.alive = false
			g.score += g.cfg.Scoring.Stomp
			g.player.VY = g.cfg.Physics.JumpImpulse / 2
		case g.hurtLeft > 0:
		case g.super:
			g.super = false
			e.alive = false
			g.score += g.cfg.Scoring.Stomp
		default:
			g.hit(e)
		}
	}
}

// hit costs a life and knocks the player away from the enemy.
func (g *Game) hit(e *enemy) {
	g.lives--
	g.hurtLeft = g.cfg.Player.DamageInvulnerable.Seconds()
	if e.box.CenterX() < g.player.CenterX() {
		g.player.VX = g.cfg.Physics.Knockback
	} else {
		g.player.VX = -g.cfg.Physics.Knockback
	}
	g.player.VY = g.cfg.Physics.JumpImpulse / 3
	g.player.Grounded = false

	if g.lives <= 0 {
		g.lives = 0
		g.gameOver = true
		g.notice = "Game over"
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}
