package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// PlatformerConfig contains all configuration for the platformer.
type PlatformerConfig struct {
	Physics    PlatformerPhysics `yaml:"physics"`
	Player     PlatformerPlayer  `yaml:"player"`
	Enemies    PlatformerEnemies `yaml:"enemies"`
	Scoring    PlatformerScoring `yaml:"scoring"`
	Collision  CollisionConfig   `yaml:"collision"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// PlatformerPhysics defines physics parameters in cells and seconds.
type PlatformerPhysics struct {
	Step         time.Duration `yaml:"step"`
	Gravity      float64       `yaml:"gravity"`
	JumpImpulse  float64       `yaml:"jump_impulse"`
	MoveSpeed    float64       `yaml:"move_speed"`
	MaxFallSpeed float64       `yaml:"max_fall_speed"`
	Knockback    float64       `yaml:"knockback"`
}

// PlatformerPlayer defines player parameters.
type PlatformerPlayer struct {
	Width              int           `yaml:"width"`
	Height             int           `yaml:"height"`
	Lives              int           `yaml:"lives"`
	DamageInvulnerable time.Duration `yaml:"damage_invulnerable"`
	StarDuration       time.Duration `yaml:"star_duration"`
}

// PlatformerEnemies defines enemy parameters.
type PlatformerEnemies struct {
	Count int     `yaml:"count"`
	Speed float64 `yaml:"speed"`
}

// PlatformerScoring defines point values.
type PlatformerScoring struct {
	Coin  int `yaml:"coin"`
	Stomp int `yaml:"stomp"`
	Clear int `yaml:"clear"`
}

// CollisionConfig tunes overlap tests. Margin shrinks both boxes on every
// side; 0 is a strict test.
type CollisionConfig struct {
	Margin float64 `yaml:"margin"`
}

// DefaultPlatformerConfig returns the hard-coded fallback configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PlatformerPhysics{
			Step:         time.Second / 60,
			Gravity:      60,
			JumpImpulse:  -24,
			MoveSpeed:    14,
			MaxFallSpeed: 30,
			Knockback:    12,
		},
		Player: PlatformerPlayer{
			Width:              2,
			Height:             2,
			Lives:              3,
			DamageInvulnerable: 2 * time.Second,
			StarDuration:       10 * time.Second,
		},
		Enemies: PlatformerEnemies{
			Count: 4,
			Speed: 4,
		},
		Scoring: PlatformerScoring{
			Coin:  100,
			Stomp: 200,
			Clear: 1000,
		},
		Collision: CollisionConfig{Margin: 0.2},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{SpeedMultiplier: 1.0},
		},
	}
}

// LoadPlatformer loads platformer configuration.
// Search order: customPath -> ~/.clicker/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	return load(customPath, "platformer.yaml", defaultPlatformerYAML, DefaultPlatformerConfig)
}

// ApplyPlatformerPreset modifies the config based on a difficulty preset.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	ApplyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Collision.Margin = 0.4
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Collision.Margin = 0
		cfg.Enemies.Count += 2
	}
}
