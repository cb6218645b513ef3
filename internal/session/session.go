// Package session owns a running clicker game: the current snapshot, the
// one-second production timer, autosave and teardown.
//
// A Session has a single mutator. Timers are elapsed-time accumulators driven
// by Advance, so nothing runs in the background and nothing fires after Close.
package session

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-clicker/internal/clicker"
	"github.com/vovakirdan/tui-clicker/internal/physics"
	"github.com/vovakirdan/tui-clicker/internal/save"
)

// ErrClosed is returned by operations attempted after Close.
var ErrClosed = errors.New("session: closed")

// Options tune a Session. Zero values use the defaults.
type Options struct {
	Engine           clicker.Engine
	TickInterval     time.Duration // default 1s
	AutoSaveInterval time.Duration // default 60s
	Logger           *log.Logger
}

// Session holds the live state of one player's game.
type Session struct {
	engine  clicker.Engine
	store   *save.Store
	catalog clicker.Catalog
	logger  *log.Logger

	state    clicker.State
	ticks    physics.Stepper
	autosave physics.Stepper
	closed   bool
}

// Open restores the stored snapshot or starts from the catalog defaults.
// A missing or unreadable snapshot is logged, never fatal.
func Open(ctx context.Context, store *save.Store, catalog clicker.Catalog, opts Options) *Session {
	s := &Session{
		engine:   opts.Engine,
		store:    store,
		catalog:  catalog,
		logger:   opts.Logger,
		ticks:    physics.Stepper{Step: opts.TickInterval},
		autosave: physics.Stepper{Step: opts.AutoSaveInterval},
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.ticks.Step <= 0 {
		s.ticks.Step = time.Second
	}
	if s.autosave.Step <= 0 {
		s.autosave.Step = time.Minute
	}

	s.state = clicker.NewState(catalog)
	if _, err := s.Load(ctx); err != nil {
		s.logger.Warn("starting a new game", "key", store.Key(), "error", err)
	}
	return s
}

// State returns the current snapshot. Callers may keep it; it is never
// modified afterwards.
func (s *Session) State() clicker.State {
	return s.state
}

// Closed reports whether Close has run.
func (s *Session) Closed() bool {
	return s.closed
}

// Advance moves the timers forward by dt, running one Tick per elapsed tick
// interval and one autosave per elapsed autosave interval.
func (s *Session) Advance(ctx context.Context, dt time.Duration) []clicker.Event {
	if s.closed || dt <= 0 {
		return nil
	}

	var events []clicker.Event
	s.ticks.Advance(dt, func(float64) {
		var evs []clicker.Event
		s.state, evs = s.engine.Tick(s.state)
		events = append(events, evs...)
	})

	// Intervals missed within one long frame collapse into a single save.
	if s.autosave.Advance(dt, func(float64) {}) > 0 && s.state.Settings.AutoSaveEnabled {
		s.autosaveNow(ctx)
	}

	s.logEvents(events)
	return events
}

// Click applies one click.
func (s *Session) Click() []clicker.Event {
	if s.closed {
		return nil
	}
	var events []clicker.Event
	s.state, events = s.engine.Click(s.state)
	s.logEvents(events)
	return events
}

// Purchase buys one level of an upgrade. A refused purchase leaves the
// state unchanged and returns the engine's reason.
func (s *Session) Purchase(upgradeID string) ([]clicker.Event, error) {
	if s.closed {
		return nil, ErrClosed
	}
	next, events, err := s.engine.Purchase(s.state, upgradeID)
	if err != nil {
		s.logger.Debug("purchase refused", "upgrade", upgradeID, "error", err)
		return nil, err
	}
	s.state = next
	s.logEvents(events)
	return events, nil
}

// Prestige resets progress for a higher multiplier.
func (s *Session) Prestige() ([]clicker.Event, error) {
	if s.closed {
		return nil, ErrClosed
	}
	next, events, err := s.engine.Prestige(s.state)
	if err != nil {
		s.logger.Debug("prestige refused", "error", err)
		return nil, err
	}
	s.state = next
	s.logEvents(events)
	return events, nil
}

// UpdateSettings replaces the settings.
func (s *Session) UpdateSettings(settings clicker.Settings) {
	if s.closed {
		return
	}
	s.state = clicker.UpdateSettings(s.state, settings)
}

// ResetSettings restores the default settings.
func (s *Session) ResetSettings() {
	if s.closed {
		return
	}
	s.state = clicker.ResetSettings(s.state)
}

// Save writes the current snapshot.
func (s *Session) Save(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}
	return s.save(ctx)
}

// Load replaces the current state with the stored snapshot. It reports
// false and keeps the current state when nothing usable is stored.
func (s *Session) Load(ctx context.Context) (bool, error) {
	if s.closed {
		return false, ErrClosed
	}
	st, ok, err := s.store.Load(ctx)
	if err != nil || !ok {
		return false, err
	}
	s.state = clicker.Normalize(st)
	s.logger.Info("game loaded", "key", s.store.Key(), "version", st.GameVersion)
	return true, nil
}

// Reset clears the stored snapshot and starts over from the catalog.
func (s *Session) Reset(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error("clear save failed", "key", s.store.Key(), "error", err)
		return err
	}
	s.state = clicker.NewState(s.catalog)
	s.ticks.Reset()
	s.autosave.Reset()
	s.logger.Info("game reset", "key", s.store.Key())
	return nil
}

// Export returns the stored snapshot in the base64 export format. The
// current state is saved first so the export reflects it.
func (s *Session) Export(ctx context.Context) (string, error) {
	if s.closed {
		return "", ErrClosed
	}
	if err := s.save(ctx); err != nil {
		return "", err
	}
	return s.store.Export(ctx)
}

// Import replaces the stored snapshot with an export. The running game keeps
// its state until Load; on failure the store is unchanged.
func (s *Session) Import(ctx context.Context, encoded string) error {
	if s.closed {
		return ErrClosed
	}
	st, err := s.store.Import(ctx, encoded)
	if err != nil {
		s.logger.Warn("import rejected", "error", err)
		return err
	}
	s.logger.Info("save imported", "key", s.store.Key(), "version", st.GameVersion)
	return nil
}

// Close performs the final autosave and stops the session. Later calls to
// any method are no-ops.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	var err error
	if s.state.Settings.AutoSaveEnabled {
		err = s.save(ctx)
	}
	s.closed = true
	return err
}

func (s *Session) autosaveNow(ctx context.Context) {
	if err := s.save(ctx); err != nil {
		return
	}
	s.logger.Debug("autosaved", "key", s.store.Key())
}

func (s *Session) save(ctx context.Context) error {
	stamped, err := s.store.Save(ctx, s.state)
	if err != nil {
		s.logger.Error("save failed", "key", s.store.Key(), "error", err)
		return err
	}
	s.state = stamped
	return nil
}

func (s *Session) logEvents(events []clicker.Event) {
	for _, e := range events {
		switch e.Kind {
		case clicker.EventAchievement, clicker.EventPrestiged, clicker.EventResourceUnlocked:
			s.logger.Info(e.String(), "id", e.ID)
		default:
			s.logger.Debug(e.String(), "id", e.ID)
		}
	}
}
