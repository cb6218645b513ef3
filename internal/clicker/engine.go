package clicker

import (
	"errors"
	"fmt"
	"math"
)

// No-op outcomes. The returned State is the input unchanged.
var (
	ErrUnknownUpgrade    = errors.New("clicker: unknown upgrade")
	ErrUpgradeLocked     = errors.New("clicker: upgrade locked")
	ErrResourceLocked    = errors.New("clicker: target resource locked")
	ErrInsufficientFunds = errors.New("clicker: insufficient funds")
	ErrPrestigeLocked    = errors.New("clicker: prestige locked")
)

// Rules are the growth constants of the progression.
type Rules struct {
	CostGrowth         float64 // upgrade cost factor per purchase
	MultiplierGrowth   float64 // prestige multiplier factor per prestige
	PrestigeCostGrowth float64 // prestige cost factor per prestige
	KeepFraction       float64 // share of each resource kept through prestige
}

// DefaultRules returns the standard growth constants.
func DefaultRules() Rules {
	return Rules{
		CostGrowth:         1.5,
		MultiplierGrowth:   1.5,
		PrestigeCostGrowth: 2,
		KeepFraction:       0.1,
	}
}

// Engine applies the progression rules. The zero value uses DefaultRules.
type Engine struct {
	rules Rules
}

// NewEngine creates an engine. Non-positive fields fall back to defaults.
func NewEngine(r Rules) Engine {
	d := DefaultRules()
	if r.CostGrowth <= 0 {
		r.CostGrowth = d.CostGrowth
	}
	if r.MultiplierGrowth <= 0 {
		r.MultiplierGrowth = d.MultiplierGrowth
	}
	if r.PrestigeCostGrowth <= 0 {
		r.PrestigeCostGrowth = d.PrestigeCostGrowth
	}
	if r.KeepFraction <= 0 || r.KeepFraction > 1 {
		r.KeepFraction = d.KeepFraction
	}
	return Engine{rules: r}
}

// Rules returns the constants in effect.
func (e Engine) Rules() Rules {
	if e.rules == (Rules{}) {
		return DefaultRules()
	}
	return e.rules
}

// Click credits one click to every unlocked resource.
func (e Engine) Click(s State) (State, []Event) {
	next := s.Clone()
	mult := next.multiplier()

	for i := range next.Resources {
		r := &next.Resources[i]
		if !r.Unlocked || r.PerClick <= 0 {
			continue
		}
		gain := r.PerClick * mult
		r.Amount += gain
		next.Statistics.TotalResources[r.ID] += gain
	}
	next.Statistics.TotalClicks++

	return next, settle(&next)
}

// Tick advances passive production by one second.
func (e Engine) Tick(s State) (State, []Event) {
	next := s.Clone()
	mult := next.multiplier()

	for i := range next.Resources {
		r := &next.Resources[i]
		if !r.Unlocked || r.PerSecond <= 0 {
			continue
		}
		gain := r.PerSecond * mult
		r.Amount += gain
		next.Statistics.TotalResources[r.ID] += gain
	}
	next.Statistics.TimePlayed++

	var events []Event
	if !next.Prestige.Unlocked && next.Coins() >= next.Prestige.Cost {
		next.Prestige.Unlocked = true
		events = append(events, Event{Kind: EventPrestigeUnlocked, Amount: next.Prestige.Cost})
	}

	return next, append(events, settle(&next)...)
}

// Purchase buys one level of the upgrade, paid from its target resource.
func (e Engine) Purchase(s State, upgradeID string) (State, []Event, error) {
	ui := s.upgradeIndex(upgradeID)
	if ui < 0 {
		return s, nil, fmt.Errorf("%w: %q", ErrUnknownUpgrade, upgradeID)
	}
	u := s.Upgrades[ui]
	if !u.Unlocked || u.Maxed() {
		return s, nil, fmt.Errorf("%w: %q", ErrUpgradeLocked, upgradeID)
	}
	ri := s.resourceIndex(u.Target)
	if ri < 0 || !s.Resources[ri].Unlocked {
		return s, nil, fmt.Errorf("%w: %q", ErrResourceLocked, u.Target)
	}
	if s.Resources[ri].Amount < u.Cost {
		return s, nil, ErrInsufficientFunds
	}

	next := s.Clone()
	r := &next.Resources[ri]
	r.Amount -= u.Cost
	switch u.Kind {
	case KindClick:
		r.PerClick += u.Effect
	case KindAuto:
		r.PerSecond += u.Effect
	case KindMultiplier:
		r.PerClick *= u.Effect
		r.PerSecond *= u.Effect
	}

	bought := &next.Upgrades[ui]
	bought.Level++
	bought.Cost = u.Cost * e.Rules().CostGrowth
	if bought.Maxed() {
		bought.Unlocked = false
	}
	next.Statistics.UpgradesPurchased++

	events := []Event{{Kind: EventUpgradePurchased, ID: u.ID, Name: u.Name, Amount: u.Cost}}
	return next, append(events, settle(&next)...), nil
}

// Prestige trades current progress for a permanent multiplier.
func (e Engine) Prestige(s State) (State, []Event, error) {
	if !s.Prestige.Unlocked {
		return s, nil, ErrPrestigeLocked
	}
	rules := e.Rules()
	next := s.Clone()

	for i := range next.Resources {
		r := &next.Resources[i]
		r.Amount = math.Floor(r.Amount * rules.KeepFraction)
		r.PerSecond = 0
		r.PerClick = r.BaseValue
	}
	for i := range next.Upgrades {
		u := &next.Upgrades[i]
		if u.Level > 0 {
			u.Cost /= math.Pow(rules.CostGrowth, float64(u.Level))
		}
		u.Level = 0
		u.Unlocked = u.MaxLevel > 0
	}

	p := &next.Prestige
	p.Level++
	p.Multiplier = next.multiplier() * rules.MultiplierGrowth
	p.Cost *= rules.PrestigeCostGrowth
	p.Unlocked = false
	next.Statistics.PrestigeCount++

	events := []Event{{Kind: EventPrestiged, Amount: p.Multiplier}}
	return next, append(events, settle(&next)...), nil
}

// UpdateSettings replaces the settings, clamping volumes to [0, 1].
func UpdateSettings(s State, settings Settings) State {
	next := s.Clone()
	settings.SoundVolume = clamp01(settings.SoundVolume)
	settings.MusicVolume = clamp01(settings.MusicVolume)
	next.Settings = settings
	return next
}

// Progress returns the value an achievement's requirement is compared with.
func Progress(s State, a Achievement) float64 {
	switch a.Category {
	case CategoryClick:
		return float64(s.Statistics.TotalClicks)
	case CategoryResource:
		target := a.Target
		if target == "" {
			target = CoinID
		}
		return s.Statistics.TotalResources[target]
	case CategoryUpgrade:
		return float64(s.Statistics.UpgradesPurchased)
	case CategoryPrestige:
		return float64(s.Statistics.PrestigeCount)
	default:
		return 0
	}
}

// Normalize repairs a restored snapshot: nil maps, high-water marks and
// threshold unlocks. Achievements are not re-evaluated.
func Normalize(s State) State {
	next := s.Clone()
	if next.Prestige.Multiplier <= 0 {
		next.Prestige.Multiplier = 1
	}
	trackHighs(&next)
	unlockResources(&next)
	return next
}

// settle runs the post-operation checks on a state the caller already owns.
func settle(s *State) []Event {
	trackHighs(s)

	var events []Event
	for i := range s.Achievements {
		a := &s.Achievements[i]
		if a.Unlocked || Progress(*s, *a) < a.Requirement {
			continue
		}
		a.Unlocked = true
		s.Statistics.AchievementsUnlocked++
		if ci := s.resourceIndex(CoinID); ci >= 0 {
			s.Resources[ci].Amount += a.Reward
		}
		events = append(events, Event{Kind: EventAchievement, ID: a.ID, Name: a.Name, Amount: a.Reward})
	}

	trackHighs(s)
	return append(events, unlockResources(s)...)
}

func trackHighs(s *State) {
	if s.Statistics.HighestResource == nil {
		s.Statistics.HighestResource = make(map[string]float64)
	}
	if s.Statistics.TotalResources == nil {
		s.Statistics.TotalResources = make(map[string]float64)
	}
	for _, r := range s.Resources {
		if r.Amount > s.Statistics.HighestResource[r.ID] {
			s.Statistics.HighestResource[r.ID] = r.Amount
		}
	}
}

func unlockResources(s *State) []Event {
	var events []Event
	highestCoins := s.Statistics.HighestResource[CoinID]
	for i := range s.Resources {
		r := &s.Resources[i]
		if r.Unlocked || r.UnlockAt <= 0 || highestCoins < r.UnlockAt {
			continue
		}
		r.Unlocked = true
		events = append(events, Event{Kind: EventResourceUnlocked, ID: r.ID, Name: r.Name})
	}
	return events
}

func (s State) multiplier() float64 {
	if s.Prestige.Multiplier <= 0 {
		return 1
	}
	return s.Prestige.Multiplier
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// ResetSettings restores the default settings.
func ResetSettings(s State) State {
	return UpdateSettings(s, DefaultSettings())
}
