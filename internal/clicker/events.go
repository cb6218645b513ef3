package clicker

import "fmt"

// EventKind classifies an Event.
type EventKind int

const (
	EventAchievement EventKind = iota
	EventResourceUnlocked
	EventPrestigeUnlocked
	EventUpgradePurchased
	EventPrestiged
)

// Event reports a notable change produced by an operation.
type Event struct {
	Kind   EventKind
	ID     string
	Name   string
	Amount float64
}

// String returns the notification text for the event.
func (e Event) String() string {
	switch e.Kind {
	case EventAchievement:
		return fmt.Sprintf("Achievement unlocked: %s (+%.0f coins)", e.Name, e.Amount)
	case EventResourceUnlocked:
		return fmt.Sprintf("New resource: %s", e.Name)
	case EventPrestigeUnlocked:
		return "Prestige available!"
	case EventUpgradePurchased:
		return fmt.Sprintf("Bought %s", e.Name)
	case EventPrestiged:
		return fmt.Sprintf("Prestiged! Multiplier x%.2f", e.Amount)
	default:
		return ""
	}
}
