package tray

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/codetray-io/codetray/internal/daemon/menu"
)

// State is the lifecycle state of a Session.
type State int

// Session states.
const (
	StateUninitialized State = iota
	StateShown
	StateHidden
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateShown:
		return "shown"
	case StateHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Config holds the collaborators of a Session. Render builds the menu from
// the current project list.
type Config struct {
	Host     Host
	Strategy Strategy
	Render   func() menu.Menu
	Notifier Notifier
	Image    []byte
	Tooltip  string
	Logger   *zap.SugaredLogger
}

// Session owns the single tray icon. It is not retried in the background:
// after a failure it stays Hidden until the next Update succeeds.
type Session struct {
	host     Host
	strategy Strategy
	render   func() menu.Menu
	notifier Notifier
	image    []byte
	tooltip  string
	logger   *zap.SugaredLogger

	mu    sync.Mutex
	state State
	icon  *Icon
	err   error
}

// NewSession creates an uninitialized session.
func NewSession(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Session{
		host:     cfg.Host,
		strategy: cfg.Strategy,
		render:   cfg.Render,
		notifier: cfg.Notifier,
		image:    cfg.Image,
		tooltip:  cfg.Tooltip,
		logger:   logger.Named("tray"),
	}
}

// Init registers the icon. On failure the user is notified, the session
// moves to Hidden and the cause is returned; the session stays usable.
func (s *Session) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUninitialized {
		return nil
	}
	s.logger.Infow("Starting tray", "strategy", s.strategy.Name())
	return s.register()
}

// Update applies the current project list to the icon.
func (s *Session) Update() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateUninitialized {
		return ErrNotInitialized
	}
	return s.strategy.update(s)
}

// Close unregisters the icon and returns the session to Uninitialized.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.icon != nil {
		err = s.host.Remove(s.icon)
		s.icon = nil
	}
	s.state = StateUninitialized
	s.err = nil
	return err
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the cause of the Hidden state, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// StrategyName returns the name of the resolved strategy.
func (s *Session) StrategyName() string {
	return s.strategy.Name()
}

// register builds a new icon and adds it to the host. Callers hold s.mu and
// have made sure no icon is registered.
func (s *Session) register() error {
	if err := s.host.Available(); err != nil {
		return s.fail(fmt.Errorf("%w: %w", ErrUnsupported, err))
	}

	m := s.render()
	icon := &Icon{
		Image:   s.image,
		Tooltip: s.tooltipFor(m),
		Menu:    m,
	}
	if err := s.host.Add(icon); err != nil {
		return s.fail(fmt.Errorf("failed to register tray icon: %w", err))
	}

	if s.state == StateHidden {
		s.logger.Infow("Tray icon restored")
	}
	s.icon = icon
	s.state = StateShown
	s.err = nil
	return nil
}

// fail parks the session in Hidden and tells the user once per transition.
func (s *Session) fail(err error) error {
	s.icon = nil
	s.err = err
	if s.state == StateHidden {
		s.logger.Warnw("Tray icon still unavailable", "error", err)
		return err
	}

	s.state = StateHidden
	s.logger.Errorw("Tray icon unavailable", "error", err)
	if s.notifier != nil {
		msg := "The tray icon could not be shown. Projects are still saved."
		if errors.Is(err, ErrUnsupported) {
			msg = "This system has no tray area available. Projects are still saved."
		}
		if nerr := s.notifier.Notify(s.tooltip, msg); nerr != nil {
			s.logger.Warnw("Failed to show notice", "error", nerr)
		}
	}
	return err
}

func (s *Session) tooltipFor(m menu.Menu) string {
	n := len(m.Submenus())
	if n == 1 {
		return fmt.Sprintf("%s (1 project)", s.tooltip)
	}
	return fmt.Sprintf("%s (%d projects)", s.tooltip, n)
}
