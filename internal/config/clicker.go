package config

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-clicker/internal/clicker"
)

//go:embed defaults/clicker.yaml
var defaultClickerYAML []byte

// ClickerConfig is the catalog and tuning of the clicker game.
type ClickerConfig struct {
	Version      string           `yaml:"version"`
	Timing       ClickerTiming    `yaml:"timing"`
	Rules        ClickerRules     `yaml:"rules"`
	Prestige     ClickerPrestige  `yaml:"prestige"`
	Resources    []ResourceDef    `yaml:"resources"`
	Upgrades     []UpgradeDef     `yaml:"upgrades"`
	Achievements []AchievementDef `yaml:"achievements"`
}

// ClickerTiming holds the session timer periods.
type ClickerTiming struct {
	TickInterval     time.Duration `yaml:"tick_interval"`
	AutoSaveInterval time.Duration `yaml:"autosave_interval"`
}

// ClickerRules holds the growth constants.
type ClickerRules struct {
	UpgradeCostGrowth  float64 `yaml:"upgrade_cost_growth"`
	MultiplierGrowth   float64 `yaml:"multiplier_growth"`
	PrestigeCostGrowth float64 `yaml:"prestige_cost_growth"`
	KeepFraction       float64 `yaml:"keep_fraction"`
}

// ClickerPrestige holds the starting prestige values.
type ClickerPrestige struct {
	InitialCost       float64 `yaml:"initial_cost"`
	InitialMultiplier float64 `yaml:"initial_multiplier"`
}

// ResourceDef describes one resource.
type ResourceDef struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	BaseValue float64 `yaml:"base_value"`
	Unlocked  bool    `yaml:"unlocked"`
	UnlockAt  float64 `yaml:"unlock_at"`
}

// UpgradeDef describes one upgrade.
type UpgradeDef struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Cost        float64 `yaml:"cost"`
	Effect      float64 `yaml:"effect"`
	Kind        string  `yaml:"type"`
	Target      string  `yaml:"target"`
	MaxLevel    int     `yaml:"max_level"`
}

// AchievementDef describes one achievement.
type AchievementDef struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Requirement float64 `yaml:"requirement"`
	Reward      float64 `yaml:"reward"`
	Kind        string  `yaml:"type"`
	Target      string  `yaml:"target"`
}

// DefaultClickerConfig returns the hard-coded fallback catalog.
func DefaultClickerConfig() ClickerConfig {
	return ClickerConfig{
		Version: "1.0.0",
		Timing: ClickerTiming{
			TickInterval:     time.Second,
			AutoSaveInterval: time.Minute,
		},
		Rules: ClickerRules{
			UpgradeCostGrowth:  1.5,
			MultiplierGrowth:   1.5,
			PrestigeCostGrowth: 2,
			KeepFraction:       0.1,
		},
		Prestige: ClickerPrestige{InitialCost: 1000, InitialMultiplier: 1},
		Resources: []ResourceDef{
			{ID: clicker.CoinID, Name: "Coins", BaseValue: 1, Unlocked: true},
		},
		Upgrades: []UpgradeDef{
			{ID: "cursor", Name: "Cursor", Description: "+1 coin per click", Cost: 10, Effect: 1, Kind: "click", Target: clicker.CoinID, MaxLevel: 50},
			{ID: "auto_clicker", Name: "Auto Clicker", Description: "+1 coin per second", Cost: 50, Effect: 1, Kind: "auto", Target: clicker.CoinID, MaxLevel: 50},
		},
		Achievements: []AchievementDef{
			{ID: "first_click", Name: "First Click", Description: "Click for the first time", Requirement: 1, Reward: 10, Kind: "click"},
			{ID: "first_upgrade", Name: "First Upgrade", Description: "Buy your first upgrade", Requirement: 1, Reward: 50, Kind: "upgrade"},
			{ID: "first_prestige", Name: "Reborn", Description: "Prestige once", Requirement: 1, Reward: 1000, Kind: "prestige"},
		},
	}
}

// LoadClicker loads the clicker catalog.
// Search order: customPath -> ~/.clicker/configs/clicker.yaml -> ./configs/clicker.yaml -> embedded default
func LoadClicker(customPath string) (ClickerConfig, error) {
	cfg, err := load(customPath, "clicker.yaml", defaultClickerYAML, DefaultClickerConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: clicker: %w", err)
	}
	return cfg, nil
}

// Validate checks the catalog for dangling references and impossible values.
func (c ClickerConfig) Validate() error {
	var errs []error

	resources := make(map[string]bool, len(c.Resources))
	for _, r := range c.Resources {
		if r.ID == "" {
			errs = append(errs, errors.New("resource without id"))
			continue
		}
		if resources[r.ID] {
			errs = append(errs, fmt.Errorf("duplicate resource %q", r.ID))
		}
		resources[r.ID] = true
	}
	if !resources[clicker.CoinID] {
		errs = append(errs, fmt.Errorf("missing %q resource", clicker.CoinID))
	}

	upgrades := make(map[string]bool, len(c.Upgrades))
	for _, u := range c.Upgrades {
		if upgrades[u.ID] {
			errs = append(errs, fmt.Errorf("duplicate upgrade %q", u.ID))
		}
		upgrades[u.ID] = true
		if !resources[u.Target] {
			errs = append(errs, fmt.Errorf("upgrade %q targets unknown resource %q", u.ID, u.Target))
		}
		switch clicker.UpgradeKind(u.Kind) {
		case clicker.KindClick, clicker.KindAuto, clicker.KindMultiplier:
		default:
			errs = append(errs, fmt.Errorf("upgrade %q has unknown type %q", u.ID, u.Kind))
		}
		if u.Cost <= 0 || u.MaxLevel <= 0 {
			errs = append(errs, fmt.Errorf("upgrade %q needs positive cost and max_level", u.ID))
		}
	}

	achievements := make(map[string]bool, len(c.Achievements))
	for _, a := range c.Achievements {
		if achievements[a.ID] {
			errs = append(errs, fmt.Errorf("duplicate achievement %q", a.ID))
		}
		achievements[a.ID] = true
		switch clicker.Category(a.Kind) {
		case clicker.CategoryClick, clicker.CategoryUpgrade, clicker.CategoryPrestige:
		case clicker.CategoryResource:
			if a.Target != "" && !resources[a.Target] {
				errs = append(errs, fmt.Errorf("achievement %q targets unknown resource %q", a.ID, a.Target))
			}
		default:
			errs = append(errs, fmt.Errorf("achievement %q has unknown type %q", a.ID, a.Kind))
		}
	}

	if c.Prestige.InitialCost <= 0 {
		errs = append(errs, errors.New("prestige initial_cost must be positive"))
	}

	return errors.Join(errs...)
}

// EngineRules converts the growth constants for the engine.
func (c ClickerConfig) EngineRules() clicker.Rules {
	return clicker.Rules{
		CostGrowth:         c.Rules.UpgradeCostGrowth,
		MultiplierGrowth:   c.Rules.MultiplierGrowth,
		PrestigeCostGrowth: c.Rules.PrestigeCostGrowth,
		KeepFraction:       c.Rules.KeepFraction,
	}
}

// Catalog converts the definitions into the engine's catalog.
func (c ClickerConfig) Catalog() clicker.Catalog {
	cat := clicker.Catalog{
		Prestige: clicker.Prestige{
			Cost:       c.Prestige.InitialCost,
			Multiplier: c.Prestige.InitialMultiplier,
		},
		Rules:   c.EngineRules(),
		Version: c.Version,
	}
	for _, r := range c.Resources {
		cat.Resources = append(cat.Resources, clicker.Resource{
			ID:        r.ID,
			Name:      r.Name,
			BaseValue: r.BaseValue,
			Unlocked:  r.Unlocked,
			UnlockAt:  r.UnlockAt,
		})
	}
	for _, u := range c.Upgrades {
		cat.Upgrades = append(cat.Upgrades, clicker.Upgrade{
			ID:          u.ID,
			Name:        u.Name,
			Description: u.Description,
			Cost:        u.Cost,
			Effect:      u.Effect,
			Kind:        clicker.UpgradeKind(u.Kind),
			Target:      u.Target,
			MaxLevel:    u.MaxLevel,
		})
	}
	for _, a := range c.Achievements {
		cat.Achievements = append(cat.Achievements, clicker.Achievement{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Requirement: a.Requirement,
			Reward:      a.Reward,
			Category:    clicker.Category(a.Kind),
			Target:      a.Target,
		})
	}
	return cat
}
