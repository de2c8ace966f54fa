package session

import (
	"context"
	"sync"

	"github.com/aranaskd/blogctl/internal/tracing"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Subscriber is notified synchronously after every applied session mutation.
type Subscriber func(Session)

// Manager owns the live Session value. It is constructed once at process
// start and handed to every consumer explicitly; there is no package-level
// instance.
//
// SetSession, ClearSession, and Reconcile go through a single writer. Each
// applied mutation bumps a generation counter, so a Reconcile whose identity
// request was still in flight when a logout (or login) landed discards its
// result instead of resurrecting a stale session.
type Manager struct {
	store    *Store
	verifier Verifier
	logger   zerolog.Logger

	mu      sync.Mutex
	current Session
	status  Status
	gen     uint64

	subsMu  sync.Mutex
	subs    map[int]Subscriber
	nextSub int
}

// NewManager creates a Manager over the given store and verifier. The
// session starts anonymous until Reconcile runs.
func NewManager(store *Store, verifier Verifier, logger zerolog.Logger) *Manager {
	return &Manager{
		store:    store,
		verifier: verifier,
		logger:   logger,
		subs:     make(map[int]Subscriber),
	}
}

// Current returns the live session value. No side effects.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Status returns where the session is in its lifecycle.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Token returns the bearer credential of the live session, or "" when
// anonymous. It exists for the API client; command-level consumers gate on
// Current().Authenticated() only.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Token
}

// SetSession replaces the live session wholesale and writes it through to
// the persisted store. Used after a successful login.
func (m *Manager) SetSession(ctx context.Context, s Session) {
	_, span := tracing.StartSpan(ctx, "blogctl.session", "session.set",
		attribute.String("user_id", s.UserID))
	defer span.End()

	m.apply(func(err error) { span.RecordError(err) }, s, nil)

	m.logger.Info().
		Str("user_id", s.UserID).
		Str("username", s.Username).
		Bool("is_admin", s.IsAdmin).
		Msg("Session set")
}

// ClearSession resets the session to anonymous and erases the persisted
// record. This is the only path by which the persisted token is removed.
// Idempotent; also invalidates any in-flight reconciliation.
func (m *Manager) ClearSession(ctx context.Context) {
	_, span := tracing.StartSpan(ctx, "blogctl.session", "session.clear")
	defer span.End()

	m.apply(func(err error) { span.RecordError(err) }, Anonymous(), nil)
	m.logger.Debug().Msg("Session cleared")
}

// Reconcile loads the persisted record and validates its token against the
// remote identity endpoint. It runs once at startup, never returns an error,
// and lands on a valid session either way: a verified identity on success,
// anonymous on any failure. An invalid or expired token must not leave stale
// privilege flags active, so rejection clears the persisted record too.
func (m *Manager) Reconcile(ctx context.Context) {
	ctx, span := tracing.StartSpan(ctx, "blogctl.session", "session.reconcile")
	defer span.End()
	logger := tracing.LoggerFromContext(ctx, m.logger)

	rec := m.store.Load()
	if rec == nil || rec.Token == "" {
		logger.Debug().Msg("No persisted session, staying anonymous")
		m.apply(func(err error) { span.RecordError(err) }, Anonymous(), nil)
		return
	}

	m.mu.Lock()
	m.status = StatusReconciling
	gen := m.gen
	m.mu.Unlock()

	id, err := m.verifier.Details(ctx, rec.Token)
	if err != nil || id == nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Warn().Err(err).Msg("Persisted token rejected, clearing session")
		} else {
			logger.Warn().Msg("Identity response carried no user, clearing session")
		}
		if !m.apply(func(err error) { span.RecordError(err) }, Anonymous(), &gen) {
			logger.Debug().Msg("Reconciliation superseded, discarding result")
		}
		return
	}

	applied := m.apply(func(err error) { span.RecordError(err) }, Session{
		UserID:   id.UserID,
		Username: id.Username,
		IsAdmin:  id.IsAdmin,
		Token:    rec.Token,
	}, &gen)
	if !applied {
		// A login or logout landed while the identity request was in
		// flight; its state wins.
		logger.Debug().Msg("Reconciliation superseded, discarding result")
		return
	}
	logger.Debug().Str("user_id", id.UserID).Str("username", id.Username).Msg("Session reconciled")
}

// Subscribe registers a callback for session changes and returns its
// unsubscribe function. Callbacks run synchronously after the mutation is
// fully applied, so they observe consistent state via Current().
func (m *Manager) Subscribe(fn Subscriber) func() {
	m.subsMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subsMu.Unlock()

	return func() {
		m.subsMu.Lock()
		delete(m.subs, id)
		m.subsMu.Unlock()
	}
}

// apply is the single writer. It replaces the live session, writes the
// store through (or clears it for the anonymous session), bumps the
// generation, and notifies subscribers. When expectGen is non-nil the
// mutation only lands if no other writer has won since; it reports whether
// the session was applied.
func (m *Manager) apply(recordErr func(error), s Session, expectGen *uint64) bool {
	m.mu.Lock()
	if expectGen != nil && m.gen != *expectGen {
		m.mu.Unlock()
		return false
	}

	m.gen++
	m.current = s
	if s.Authenticated() {
		m.status = StatusAuthenticated
	} else {
		m.status = StatusAnonymous
	}

	var err error
	if s.Authenticated() {
		err = m.store.Save(Record{
			Token:    s.Token,
			UserID:   s.UserID,
			Username: s.Username,
			IsAdmin:  s.IsAdmin,
		})
	} else {
		err = m.store.Clear()
	}
	if err != nil {
		// In-memory state stays authoritative; the next start just
		// reconciles from scratch.
		recordErr(err)
		m.logger.Warn().Err(err).Msg("Failed to update persisted session")
	}
	m.mu.Unlock()

	m.notify(s)
	return true
}

func (m *Manager) notify(s Session) {
	m.subsMu.Lock()
	subs := make([]Subscriber, 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.subsMu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}
