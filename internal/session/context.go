package session

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"ustat/internal/domain"
)

// EventKind names a session transition.
type EventKind int

const (
	LoginStarted EventKind = iota
	LoginSucceeded
	LoginFailed
	LoggedOut
	UserUpdated
	ErrorCleared
	Rehydrated
)

func (k EventKind) String() string {
	switch k {
	case LoginStarted:
		return "login_start"
	case LoginSucceeded:
		return "login_success"
	case LoginFailed:
		return "login_failure"
	case LoggedOut:
		return "logout"
	case UserUpdated:
		return "user_updated"
	case ErrorCleared:
		return "error_cleared"
	case Rehydrated:
		return "rehydrated"
	}
	return "unknown"
}

// Event is delivered to subscribers after a transition. State is a copy.
type Event struct {
	Kind  EventKind
	State domain.SessionState
}

// Context is the in-memory session, kept in sync with a TokenStore.
type Context struct {
	tokens domain.TokenStore
	log    logrus.FieldLogger

	mu     sync.RWMutex
	state  domain.SessionState
	subs   map[uint64]func(Event)
	nextID uint64
}

// New returns a signed-out Context over tokens.
func New(tokens domain.TokenStore, log logrus.FieldLogger) *Context {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Context{
		tokens: tokens,
		log:    log,
		subs:   make(map[uint64]func(Event)),
	}
}

// Snapshot returns a copy of the current state.
func (c *Context) Snapshot() domain.SessionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyState(c.state)
}

// Subscribe registers fn for every subsequent transition. fn runs on the
// goroutine that caused the transition, after the state lock is released.
func (c *Context) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Rehydrate restores the session from the store at startup. Both an access
// token and cached user data are needed to count as signed in. When the
// store cannot be read the Context stays signed out and the error is
// returned for reporting.
func (c *Context) Rehydrate(ctx context.Context) error {
	sess, ok, err := c.tokens.LoadSession(ctx)
	if err != nil {
		c.log.WithError(err).Warn("could not read stored session")
		c.transition(LoggedOut, func(s *domain.SessionState) { *s = domain.SessionState{} })
		return err
	}
	_, hasUser, err := c.tokens.User(ctx)
	if err != nil {
		c.log.WithError(err).Warn("could not read stored user")
		c.transition(LoggedOut, func(s *domain.SessionState) { *s = domain.SessionState{} })
		return err
	}
	if !ok || !hasUser {
		c.transition(Rehydrated, func(s *domain.SessionState) { *s = domain.SessionState{} })
		return nil
	}
	c.transition(Rehydrated, func(s *domain.SessionState) {
		u := sess.User
		*s = domain.SessionState{IsAuthenticated: true, User: &u}
	})
	return nil
}

// LoginStart marks a login or registration as in progress.
func (c *Context) LoginStart() {
	c.transition(LoginStarted, func(s *domain.SessionState) {
		s.Loading = true
		s.Error = nil
	})
}

// LoginSuccess persists sess and marks the user signed in. If the store
// rejects the write the login is reported as failed.
func (c *Context) LoginSuccess(ctx context.Context, sess domain.Session) error {
	if sess.AccessToken == "" {
		err := domain.Invalid("token", "login response carried no access token")
		c.LoginFailure(err)
		return err
	}
	if err := c.tokens.SaveSession(ctx, sess); err != nil {
		c.LoginFailure(err)
		return err
	}
	c.transition(LoginSucceeded, func(s *domain.SessionState) {
		u := sess.User
		*s = domain.SessionState{IsAuthenticated: true, User: &u}
	})
	c.log.WithField("user", sess.User.ID).Info("signed in")
	return nil
}

// LoginFailure records err and clears the loading flag.
func (c *Context) LoginFailure(err error) {
	c.transition(LoginFailed, func(s *domain.SessionState) {
		s.Loading = false
		s.Error = err
	})
}

// Logout clears tokens and user data from the store and resets the state.
// The in-memory state is reset even if the store fails; calling Logout
// again is harmless.
func (c *Context) Logout(ctx context.Context) error {
	err := c.tokens.Clear(ctx)
	if err != nil {
		c.log.WithError(err).Warn("could not clear stored session")
	}
	c.transition(LoggedOut, func(s *domain.SessionState) { *s = domain.SessionState{} })
	return err
}

// UpdateUser merges patch into the cached user and persists it.
func (c *Context) UpdateUser(ctx context.Context, patch domain.User) error {
	c.mu.RLock()
	var merged domain.User
	if c.state.User != nil {
		merged = *c.state.User
	}
	c.mu.RUnlock()

	merged = merged.Merge(patch)
	if err := c.tokens.SetUser(ctx, merged); err != nil {
		return err
	}
	c.transition(UserUpdated, func(s *domain.SessionState) {
		u := merged
		s.User = &u
	})
	return nil
}

// ClearError drops the last recorded error.
func (c *Context) ClearError() {
	c.transition(ErrorCleared, func(s *domain.SessionState) { s.Error = nil })
}

// OnAuthFailure signs the user out after an unrecoverable refresh failure.
func (c *Context) OnAuthFailure(ctx context.Context, err error) {
	c.log.WithError(err).Info("session ended by server")
	_ = c.Logout(ctx)
}

func (c *Context) transition(kind EventKind, mutate func(*domain.SessionState)) {
	c.mu.Lock()
	mutate(&c.state)
	ev := Event{Kind: kind, State: copyState(c.state)}
	subs := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

func copyState(s domain.SessionState) domain.SessionState {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Compile-time assertions.
var (
	_ domain.SessionManager  = (*Context)(nil)
	_ domain.AuthFailureHook = (*Context)(nil)
)
