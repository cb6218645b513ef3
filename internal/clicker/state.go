// Package clicker implements the incremental progression rules: resources,
// upgrades, achievements and prestige.
//
// Every operation takes a State by value and returns a new State. Slices and
// maps are deep-copied before any change, so a snapshot handed to a reader is
// never modified afterwards.
package clicker

// CoinID is the resource that receives achievement rewards and gates prestige.
const CoinID = "coins"

// UpgradeKind selects how an upgrade changes its target resource.
type UpgradeKind string

const (
	KindClick      UpgradeKind = "click"      // adds effect to perClick
	KindAuto       UpgradeKind = "auto"       // adds effect to perSecond
	KindMultiplier UpgradeKind = "multiplier" // multiplies perClick and perSecond by effect
)

// Category selects which statistic an achievement is measured against.
type Category string

const (
	CategoryClick    Category = "click"
	CategoryResource Category = "resource"
	CategoryUpgrade  Category = "upgrade"
	CategoryPrestige Category = "prestige"
)

// Resource is a countable currency.
type Resource struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	PerSecond float64 `json:"perSecond"`
	PerClick  float64 `json:"perClick"`
	BaseValue float64 `json:"baseValue"`
	Unlocked  bool    `json:"unlocked"`
	// UnlockAt is the highest coin total that unlocks this resource; 0 never.
	UnlockAt float64 `json:"unlockAt,omitempty"`
}

// Upgrade is a purchasable modifier of one resource.
type Upgrade struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Cost        float64     `json:"cost"`
	Effect      float64     `json:"effect"`
	Kind        UpgradeKind `json:"type"`
	Target      string      `json:"targetResource"`
	Level       int         `json:"level"`
	MaxLevel    int         `json:"maxLevel"`
	Unlocked    bool        `json:"unlocked"`
}

// Maxed reports whether the upgrade has reached its level cap.
func (u Upgrade) Maxed() bool {
	return u.Level >= u.MaxLevel
}

// Achievement is a one-way milestone with a one-time coin reward.
type Achievement struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Requirement float64  `json:"requirement"`
	Reward      float64  `json:"reward"`
	Category    Category `json:"type"`
	Target      string   `json:"targetResource,omitempty"`
	Unlocked    bool     `json:"unlocked"`
}

// Prestige tracks the reset mechanic.
type Prestige struct {
	Level      int     `json:"level"`
	Multiplier float64 `json:"multiplier"`
	Cost       float64 `json:"cost"`
	Unlocked   bool    `json:"unlocked"`
}

// Statistics are monotonic counters and high-water marks.
type Statistics struct {
	HighestResource      map[string]float64 `json:"highestResource"`
	TotalResources       map[string]float64 `json:"totalResources"`
	TotalClicks          int64              `json:"totalClicks"`
	TimePlayed           int64              `json:"timePlayed"`
	UpgradesPurchased    int64              `json:"upgradesPurchased"`
	PrestigeCount        int64              `json:"prestigeCount"`
	AchievementsUnlocked int64              `json:"achievementsUnlocked"`
}

// Settings are user preferences carried in the snapshot.
type Settings struct {
	SoundEnabled         bool    `json:"soundEnabled"`
	MusicEnabled         bool    `json:"musicEnabled"`
	NotificationsEnabled bool    `json:"notificationsEnabled"`
	AutoSaveEnabled      bool    `json:"autoSaveEnabled"`
	SoundVolume          float64 `json:"soundVolume"`
	MusicVolume          float64 `json:"musicVolume"`
}

// DefaultSettings returns the settings of a fresh game.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:         true,
		MusicEnabled:         true,
		NotificationsEnabled: true,
		AutoSaveEnabled:      true,
		SoundVolume:          0.5,
		MusicVolume:          0.3,
	}
}

// State is the aggregate root persisted as one snapshot.
type State struct {
	Resources    []Resource    `json:"resources"`
	Upgrades     []Upgrade     `json:"upgrades"`
	Achievements []Achievement `json:"achievements"`
	Prestige     Prestige      `json:"prestige"`
	Statistics   Statistics    `json:"statistics"`
	Settings     Settings      `json:"settings"`
	GameVersion  string        `json:"gameVersion"`
	// LastSave is the unix millisecond timestamp of the last save, 0 if never saved.
	LastSave int64 `json:"lastSave,omitempty"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Resources = append([]Resource(nil), s.Resources...)
	out.Upgrades = append([]Upgrade(nil), s.Upgrades...)
	out.Achievements = append([]Achievement(nil), s.Achievements...)
	out.Statistics.HighestResource = cloneMap(s.Statistics.HighestResource)
	out.Statistics.TotalResources = cloneMap(s.Statistics.TotalResources)
	return out
}

func cloneMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Resource returns the resource with the given id.
func (s State) Resource(id string) (Resource, bool) {
	if i := s.resourceIndex(id); i >= 0 {
		return s.Resources[i], true
	}
	return Resource{}, false
}

// Upgrade returns the upgrade with the given id.
func (s State) Upgrade(id string) (Upgrade, bool) {
	if i := s.upgradeIndex(id); i >= 0 {
		return s.Upgrades[i], true
	}
	return Upgrade{}, false
}

// Coins returns the current coin amount.
func (s State) Coins() float64 {
	r, _ := s.Resource(CoinID)
	return r.Amount
}

// UnlockedAchievements counts achievements already earned.
func (s State) UnlockedAchievements() int {
	n := 0
	for _, a := range s.Achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}

func (s State) resourceIndex(id string) int {
	for i := range s.Resources {
		if s.Resources[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) upgradeIndex(id string) int {
	for i := range s.Upgrades {
		if s.Upgrades[i].ID == id {
			return i
		}
	}
	return -1
}
