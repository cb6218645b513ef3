package config

import (
	"math"
	"testing"
)

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	}
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{500, 1.0},
	}
	for _, tt := range tests {
		if got := dm.Level(tt.score, 0); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Level(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}

	if got := dm.Speed(4, 100, 0); got != 8 {
		t.Errorf("Speed at max = %v, want 8", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 2},
	})

	if dm.IsEnabled() {
		t.Error("IsEnabled() = true for disabled config")
	}
	if got := dm.Level(0, 1000); got != 0.5 {
		t.Errorf("Level() = %v, want initial 0.5", got)
	}
	if got := dm.Speed(1, 0, 1000); got != 2 {
		t.Errorf("Speed() = %v, want 2", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 10},
	})
	if got := dm.Level(0, 5); got != 0.5 {
		t.Errorf("Level(ticks=5) = %v, want 0.5", got)
	}
}
