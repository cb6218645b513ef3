package clicker

// Catalog is the static definition a fresh game starts from.
type Catalog struct {
	Resources    []Resource
	Upgrades     []Upgrade
	Achievements []Achievement
	Prestige     Prestige
	Rules        Rules
	Version      string
}

// NewState builds the initial state for a catalog.
func NewState(c Catalog) State {
	s := State{
		Resources:    append([]Resource(nil), c.Resources...),
		Upgrades:     append([]Upgrade(nil), c.Upgrades...),
		Achievements: append([]Achievement(nil), c.Achievements...),
		Prestige:     c.Prestige,
		Statistics: Statistics{
			HighestResource: make(map[string]float64, len(c.Resources)),
			TotalResources:  make(map[string]float64, len(c.Resources)),
		},
		Settings:    DefaultSettings(),
		GameVersion: c.Version,
	}
	for i := range s.Resources {
		r := &s.Resources[i]
		r.Amount = 0
		r.PerSecond = 0
		r.PerClick = r.BaseValue
		s.Statistics.HighestResource[r.ID] = 0
		s.Statistics.TotalResources[r.ID] = 0
	}
	for i := range s.Upgrades {
		s.Upgrades[i].Level = 0
		s.Upgrades[i].Unlocked = s.Upgrades[i].MaxLevel > 0
	}
	for i := range s.Achievements {
		s.Achievements[i].Unlocked = false
	}
	s.Prestige.Level = 0
	s.Prestige.Unlocked = false
	if s.Prestige.Multiplier <= 0 {
		s.Prestige.Multiplier = 1
	}
	return s
}
