package clicker

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return Catalog{
		Resources: []Resource{
			{ID: CoinID, Name: "Coins", BaseValue: 1, Unlocked: true},
			{ID: "gems", Name: "Gems", BaseValue: 0, UnlockAt: 5000},
		},
		Upgrades: []Upgrade{
			{ID: "cursor", Name: "Cursor", Cost: 10, Effect: 1, Kind: KindClick, Target: CoinID, MaxLevel: 3},
			{ID: "auto", Name: "Auto", Cost: 50, Effect: 2, Kind: KindAuto, Target: CoinID, MaxLevel: 10},
			{ID: "golden", Name: "Golden", Cost: 100, Effect: 2, Kind: KindMultiplier, Target: CoinID, MaxLevel: 5},
			{ID: "gem_mine", Name: "Gem Mine", Cost: 5, Effect: 1, Kind: KindAuto, Target: "gems", MaxLevel: 5},
		},
		Achievements: []Achievement{
			{ID: "first_click", Name: "First Click", Requirement: 1, Reward: 10, Category: CategoryClick},
			{ID: "first_upgrade", Name: "First Upgrade", Requirement: 1, Reward: 50, Category: CategoryUpgrade},
			{ID: "first_prestige", Name: "Reborn", Requirement: 1, Reward: 1000, Category: CategoryPrestige},
		},
		Prestige: Prestige{Cost: 1000, Multiplier: 1},
		Version:  "1.0.0",
	}
}

func bareCatalog() Catalog {
	c := testCatalog()
	c.Achievements = nil
	return c
}

func withCoins(s State, amount float64) State {
	s = s.Clone()
	s.Resources[s.resourceIndex(CoinID)].Amount = amount
	return s
}

func TestFirstClick(t *testing.T) {
	var e Engine
	s := NewState(testCatalog())

	next, events := e.Click(s)

	assert.Equal(t, 11.0, next.Coins())
	assert.Equal(t, int64(1), next.Statistics.TotalClicks)
	assert.Equal(t, int64(1), next.Statistics.AchievementsUnlocked)
	require.Len(t, events, 1)
	assert.Equal(t, EventAchievement, events[0].Kind)
	assert.Equal(t, "first_click", events[0].ID)

	again, events := e.Click(next)
	assert.Equal(t, 12.0, again.Coins())
	assert.Empty(t, events)
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	var e Engine
	s := withCoins(NewState(testCatalog()), 500)
	before := s.Clone()

	e.Click(s)
	e.Tick(s)
	_, _, err := e.Purchase(s, "cursor")
	require.NoError(t, err)

	if diff := cmp.Diff(before, s); diff != "" {
		t.Errorf("input state changed (-before +after):\n%s", diff)
	}
}

func TestTickProducesPassiveIncome(t *testing.T) {
	var e Engine
	s := withCoins(NewState(bareCatalog()), 50)

	s, _, err := e.Purchase(s, "auto")
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Coins())

	s, _ = e.Tick(s)
	s, _ = e.Tick(s)

	assert.Equal(t, 4.0, s.Coins())
	assert.Equal(t, int64(2), s.Statistics.TimePlayed)
	assert.Equal(t, 4.0, s.Statistics.TotalResources[CoinID])
	assert.Equal(t, 4.0, s.Statistics.HighestResource[CoinID])
}

func TestPurchase(t *testing.T) {
	var e Engine

	t.Run("applies effect and grows cost", func(t *testing.T) {
		s := withCoins(NewState(testCatalog()), 10)
		next, events, err := e.Purchase(s, "cursor")
		require.NoError(t, err)

		u, _ := next.Upgrade("cursor")
		coins, _ := next.Resource(CoinID)
		assert.Equal(t, 1, u.Level)
		assert.Equal(t, 15.0, u.Cost)
		assert.Equal(t, 2.0, coins.PerClick)
		assert.Equal(t, int64(1), next.Statistics.UpgradesPurchased)
		// purchase, then first_upgrade credits 50
		assert.Equal(t, 50.0, next.Coins())
		require.Len(t, events, 2)
		assert.Equal(t, EventUpgradePurchased, events[0].Kind)
		assert.Equal(t, "first_upgrade", events[1].ID)
	})

	t.Run("multiplier scales both rates", func(t *testing.T) {
		s := withCoins(NewState(bareCatalog()), 150)
		s, _, err := e.Purchase(s, "auto")
		require.NoError(t, err)
		s, _, err = e.Purchase(s, "golden")
		require.NoError(t, err)

		coins, _ := s.Resource(CoinID)
		assert.Equal(t, 2.0, coins.PerClick)
		assert.Equal(t, 4.0, coins.PerSecond)
	})

	tests := []struct {
		name    string
		state   State
		upgrade string
		wantErr error
	}{
		{"unknown", withCoins(NewState(testCatalog()), 100), "nope", ErrUnknownUpgrade},
		{"insufficient", withCoins(NewState(testCatalog()), 9), "cursor", ErrInsufficientFunds},
		{"locked target", withCoins(NewState(testCatalog()), 100), "gem_mine", ErrResourceLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, events, err := e.Purchase(tt.state, tt.upgrade)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, events)
			assert.Empty(t, cmp.Diff(tt.state, next))
		})
	}
}

func TestUpgradeLevelCapped(t *testing.T) {
	var e Engine
	s := withCoins(NewState(bareCatalog()), 1e9)

	for i := 0; i < 3; i++ {
		var err error
		s, _, err = e.Purchase(s, "cursor")
		require.NoError(t, err)
	}

	u, _ := s.Upgrade("cursor")
	assert.Equal(t, 3, u.Level)
	assert.False(t, u.Unlocked)

	next, _, err := e.Purchase(s, "cursor")
	require.ErrorIs(t, err, ErrUpgradeLocked)
	u, _ = next.Upgrade("cursor")
	assert.Equal(t, 3, u.Level)
}

func TestPrestigeLockedIsNoop(t *testing.T) {
	var e Engine
	s := withCoins(NewState(testCatalog()), 5000)

	next, events, err := e.Prestige(s)

	require.ErrorIs(t, err, ErrPrestigeLocked)
	assert.Nil(t, events)
	assert.Empty(t, cmp.Diff(s, next))
}

func TestPrestigeScenario(t *testing.T) {
	var e Engine
	s := withCoins(NewState(bareCatalog()), 1000)

	s, events := e.Tick(s)
	require.True(t, s.Prestige.Unlocked)
	require.NotEmpty(t, events)
	assert.Equal(t, EventPrestigeUnlocked, events[0].Kind)

	s, _, err := e.Prestige(s)
	require.NoError(t, err)

	assert.Equal(t, 100.0, s.Coins())
	assert.Equal(t, 1, s.Prestige.Level)
	assert.Equal(t, 1.5, s.Prestige.Multiplier)
	assert.Equal(t, 2000.0, s.Prestige.Cost)
	assert.False(t, s.Prestige.Unlocked)
	assert.Equal(t, int64(1), s.Statistics.PrestigeCount)

	s, _ = e.Click(s)
	assert.Equal(t, 101.5, s.Coins())
}

func TestPrestigeResetsUpgradesAndCreditsReward(t *testing.T) {
	var e Engine
	s := withCoins(NewState(testCatalog()), 10000)

	var err error
	for i := 0; i < 3; i++ {
		s, _, err = e.Purchase(s, "cursor")
		require.NoError(t, err)
	}
	s, _, err = e.Purchase(s, "auto")
	require.NoError(t, err)
	s, _ = e.Tick(s)
	require.True(t, s.Prestige.Unlocked)

	kept := math.Floor(s.Coins() * 0.1)
	s, events, err := e.Prestige(s)
	require.NoError(t, err)

	coins, _ := s.Resource(CoinID)
	assert.Equal(t, kept+1000, coins.Amount)
	assert.Equal(t, 1.0, coins.PerClick)
	assert.Equal(t, 0.0, coins.PerSecond)
	for _, u := range s.Upgrades {
		assert.Zero(t, u.Level, u.ID)
		assert.True(t, u.Unlocked, u.ID)
	}
	cursor, _ := s.Upgrade("cursor")
	assert.InDelta(t, 10.0, cursor.Cost, 1e-9)
	auto, _ := s.Upgrade("auto")
	assert.InDelta(t, 50.0, auto.Cost, 1e-9)

	require.Len(t, events, 2)
	assert.Equal(t, EventPrestiged, events[0].Kind)
	assert.Equal(t, "first_prestige", events[1].ID)
}

func TestRepeatedPrestige(t *testing.T) {
	var e Engine
	s := NewState(bareCatalog())

	for n := 1; n <= 5; n++ {
		s = withCoins(s, s.Prestige.Cost)
		s, _ = e.Tick(s)
		var err error
		s, _, err = e.Prestige(s)
		require.NoError(t, err)

		assert.InDelta(t, math.Pow(1.5, float64(n)), s.Prestige.Multiplier, 1e-9)
		assert.Equal(t, 1000*math.Pow(2, float64(n)), s.Prestige.Cost)
		assert.Equal(t, n, s.Prestige.Level)
	}
}

func TestResourceUnlocksAtThreshold(t *testing.T) {
	var e Engine
	s := withCoins(NewState(bareCatalog()), 4999)

	s, events := e.Click(s)
	gems, _ := s.Resource("gems")
	assert.True(t, gems.Unlocked)
	require.Len(t, events, 1)
	assert.Equal(t, EventResourceUnlocked, events[0].Kind)

	_, _, err := e.Purchase(s, "gem_mine")
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestAmountsNeverNegative(t *testing.T) {
	var e Engine
	rng := rand.New(rand.NewSource(42))
	s := NewState(testCatalog())
	ids := []string{"cursor", "auto", "golden", "gem_mine"}

	for i := 0; i < 2000; i++ {
		switch rng.Intn(4) {
		case 0:
			s, _ = e.Click(s)
		case 1:
			s, _ = e.Tick(s)
		case 2:
			s, _, _ = e.Purchase(s, ids[rng.Intn(len(ids))])
		case 3:
			s, _, _ = e.Prestige(s)
		}
		for _, r := range s.Resources {
			require.GreaterOrEqual(t, r.Amount, 0.0, "step %d resource %s", i, r.ID)
		}
		for _, u := range s.Upgrades {
			require.LessOrEqual(t, u.Level, u.MaxLevel, "step %d upgrade %s", i, u.ID)
		}
	}
}

func TestUpdateSettingsClampsVolume(t *testing.T) {
	s := NewState(testCatalog())

	next := UpdateSettings(s, Settings{SoundVolume: 1.7, MusicVolume: -0.2})
	assert.Equal(t, 1.0, next.Settings.SoundVolume)
	assert.Equal(t, 0.0, next.Settings.MusicVolume)
	assert.False(t, next.Settings.AutoSaveEnabled)

	assert.Equal(t, DefaultSettings(), ResetSettings(next).Settings)
	assert.Equal(t, DefaultSettings(), s.Settings)
}

func TestProgress(t *testing.T) {
	s := NewState(testCatalog())
	s.Statistics.TotalClicks = 7
	s.Statistics.UpgradesPurchased = 3
	s.Statistics.TotalResources[CoinID] = 250

	assert.Equal(t, 7.0, Progress(s, Achievement{Category: CategoryClick}))
	assert.Equal(t, 3.0, Progress(s, Achievement{Category: CategoryUpgrade}))
	assert.Equal(t, 250.0, Progress(s, Achievement{Category: CategoryResource}))
	assert.Equal(t, 0.0, Progress(s, Achievement{Category: CategoryResource, Target: "gems"}))
}

func TestNormalizeRepairsRestoredState(t *testing.T) {
	s := withCoins(NewState(testCatalog()), 6000)
	s.Statistics.HighestResource = nil
	s.Statistics.TotalResources = nil
	s.Prestige.Multiplier = 0

	n := Normalize(s)

	assert.NotNil(t, n.Statistics.TotalResources)
	assert.Equal(t, 6000.0, n.Statistics.HighestResource[CoinID])
	assert.Equal(t, 1.0, n.Prestige.Multiplier)
	gems, _ := n.Resource("gems")
	assert.True(t, gems.Unlocked)
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(Rules{CostGrowth: 2})
	r := e.Rules()
	assert.Equal(t, 2.0, r.CostGrowth)
	assert.Equal(t, 1.5, r.MultiplierGrowth)
	assert.Equal(t, 0.1, r.KeepFraction)

	var zero Engine
	assert.Equal(t, DefaultRules(), zero.Rules())
}
