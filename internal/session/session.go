// Package session tracks the bot's connection to the chat platform and the
// identity it authenticated as.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot/models"
)

// ErrAlreadyConnected is returned when Connect is called on a connected session.
var ErrAlreadyConnected = errors.New("session already connected")

// ErrNotConnected is returned when an operation needs an open session.
var ErrNotConnected = errors.New("session not connected")

// State is the connection state. The only transition is
// Disconnected -> Connected.
type State int

const (
	StateDisconnected State = iota
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Identity is the bot account the session authenticated as.
type Identity struct {
	ID        int64
	Username  string
	FirstName string
}

func (i Identity) String() string {
	if i.Username != "" {
		return fmt.Sprintf("@%s (%d)", i.Username, i.ID)
	}
	return fmt.Sprintf("%s (%d)", i.FirstName, i.ID)
}

// IdentityFetcher authenticates against the chat platform.
// *bot.Bot from github.com/go-telegram/bot satisfies it.
type IdentityFetcher interface {
	GetMe(ctx context.Context) (*models.User, error)
}

// Session holds the connection state shared by the handlers and tasks.
type Session struct {
	logger *slog.Logger

	mu          sync.RWMutex
	state       State
	self        Identity
	lastChecked time.Time
	onConnect   []func(Identity)
}

// New creates a disconnected session.
func New(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		logger: logger.With("component", "session"),
		state:  StateDisconnected,
	}
}

// OnConnect registers fn to run once the session connects. Callbacks run in
// registration order on the goroutine that called Connect.
func (s *Session) OnConnect(fn func(Identity)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onConnect = append(s.onConnect, fn)
}

// Connect authenticates with the platform and moves the session to
// StateConnected. A failure leaves the session disconnected; there is no retry.
func (s *Session) Connect(ctx context.Context, fetcher IdentityFetcher) error {
	s.mu.Lock()
	if s.state == StateConnected {
		s.mu.Unlock()
		return ErrAlreadyConnected
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Connecting to chat platform...")
	user, err := fetcher.GetMe(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Authentication failed", "error", err)
		return fmt.Errorf("failed to authenticate: %w", err)
	}
	if user == nil {
		err = errors.New("empty identity returned")
		s.logger.ErrorContext(ctx, "Authentication failed", "error", err)
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	s.mu.Lock()
	if s.state == StateConnected {
		s.mu.Unlock()
		return ErrAlreadyConnected
	}
	s.self = Identity{ID: user.ID, Username: user.Username, FirstName: user.FirstName}
	s.state = StateConnected
	s.lastChecked = time.Now()
	callbacks := append([]func(Identity){}, s.onConnect...)
	self := s.self
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Session connected", "bot_id", self.ID, "bot_username", self.Username)
	for _, fn := range callbacks {
		fn(self)
	}
	return nil
}

// Verify re-checks the credentials of a connected session. It never
// reconnects; a failure is returned for the caller to report.
func (s *Session) Verify(ctx context.Context, fetcher IdentityFetcher) error {
	self, ok := s.Self()
	if !ok {
		return ErrNotConnected
	}

	user, err := fetcher.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("session check failed: %w", err)
	}
	if user == nil || user.ID != self.ID {
		return fmt.Errorf("session check failed: identity changed from %d", self.ID)
	}

	s.mu.Lock()
	s.lastChecked = time.Now()
	s.mu.Unlock()
	return nil
}

// State returns the current connection state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Self returns the connected identity and whether the session is connected.
func (s *Session) Self() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.self, s.state == StateConnected
}

// IsSelf reports whether userID is the bot's own account.
func (s *Session) IsSelf(userID int64) bool {
	self, ok := s.Self()
	return ok && self.ID == userID
}

// LastChecked returns when the credentials were last confirmed.
func (s *Session) LastChecked() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastChecked
}
