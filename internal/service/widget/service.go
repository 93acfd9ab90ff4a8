package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/faqdesk/backend/internal/model/chat"
	"github.com/zhouzirui/faqdesk/backend/internal/model/faq"
	"github.com/zhouzirui/faqdesk/backend/internal/scheduler"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session closed")
)

// DefaultReplyDelay is how long a simulated reply takes.
const DefaultReplyDelay = time.Second

// Catalog is everything the dispatcher needs from the topic catalog.
type Catalog interface {
	faq.Store
	chat.Catalog
	Placeholder() string
}

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	ReplyDelay time.Duration
	Clock      scheduler.Clock
	Logger     *zerolog.Logger
}

// Snapshot is the state of one panel after a transition. Version grows
// by one for every accepted transition.
type Snapshot struct {
	SessionID string     `json:"sessionId"`
	Version   uint64     `json:"version"`
	State     chat.State `json:"state"`
	View      *chat.View `json:"view"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type session struct {
	id        string
	createdAt time.Time
	touchedAt time.Time
	version   uint64
	state     chat.State
	replies   *scheduler.Scheduler
	subs      map[uint64]chan Snapshot
	nextSub   uint64
}

// Service hosts conversation panels. Every transition of every panel,
// timer completions included, runs under one lock, so each panel behaves
// as a serialized reducer.
type Service struct {
	catalog Catalog
	delay   time.Duration
	clock   scheduler.Clock
	log     zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService builds a Service over catalog.
func NewService(catalog Catalog, opts Options) *Service {
	delay := opts.ReplyDelay
	if delay <= 0 {
		delay = DefaultReplyDelay
	}
	clock := opts.Clock
	if clock == nil {
		clock = scheduler.SystemClock{}
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "widget").Logger()
	}

	return &Service{
		catalog:  catalog,
		delay:    delay,
		clock:    clock,
		log:      log,
		sessions: make(map[string]*session),
	}
}

// Catalog returns the catalog the service resolves replies against.
func (s *Service) Catalog() Catalog {
	return s.catalog
}

// CreateSession opens a new expanded panel with an empty transcript.
func (s *Service) CreateSession(_ context.Context) (Snapshot, error) {
	now := s.clock.Now()
	sess := &session{
		id:        uuid.NewString(),
		createdAt: now,
		touchedAt: now,
		state:     chat.NewState(),
		replies:   scheduler.New(s.clock),
		subs:      make(map[uint64]chan Snapshot),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	snap := s.snapshotLocked(sess)
	s.mu.Unlock()

	s.log.Info().Str("session", sess.id).Msg("session created")
	return snap, nil
}

// Snapshot returns the current state of a panel.
func (s *Service) Snapshot(_ context.Context, sessionID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	return s.snapshotLocked(sess), nil
}

// SelectTopic appends title as a user message and schedules the
// catalog's answer for it.
func (s *Service) SelectTopic(_ context.Context, sessionID, title string) (Snapshot, error) {
	return s.dispatch(sessionID, func(sess *session) chat.State {
		next := sess.state.SelectTopic(title)
		sess.replies.Schedule(s.delay, func() {
			s.completeReply(sessionID, s.catalog.Resolve(title), false)
		})
		s.log.Debug().Str("session", sessionID).Str("title", title).Msg("topic selected")
		return next
	})
}

// SubmitFreeText appends text as a user message and schedules the
// placeholder reply. Blank text, or text sent while a reply is pending,
// leaves the panel unchanged.
func (s *Service) SubmitFreeText(_ context.Context, sessionID, text string) (Snapshot, error) {
	return s.dispatch(sessionID, func(sess *session) chat.State {
		return s.submitLocked(sess, text)
	})
}

// SubmitDraft submits the panel's current draft as free text. The draft is
// read in the same transition that clears it.
func (s *Service) SubmitDraft(_ context.Context, sessionID string) (Snapshot, error) {
	return s.dispatch(sessionID, func(sess *session) chat.State {
		return s.submitLocked(sess, sess.state.Draft)
	})
}

func (s *Service) submitLocked(sess *session, text string) chat.State {
	next, ok := sess.state.SubmitFreeText(text)
	if !ok {
		s.log.Debug().Str("session", sess.id).Bool("loading", sess.state.IsLoading).Msg("free text ignored")
		return sess.state
	}
	id := sess.id
	sess.replies.Schedule(s.delay, func() {
		s.completeReply(id, s.catalog.Placeholder(), true)
	})
	return next
}

// SetDraft replaces the panel's input buffer.
func (s *Service) SetDraft(_ context.Context, sessionID, text string) (Snapshot, error) {
	return s.dispatch(sessionID, func(sess *session) chat.State {
		return sess.state.SetDraft(text)
	})
}

// ToggleMinimize flips the panel between expanded and minimized.
func (s *Service) ToggleMinimize(_ context.Context, sessionID string) (Snapshot, error) {
	return s.dispatch(sessionID, func(sess *session) chat.State {
		return sess.state.ToggleMinimize()
	})
}

// Close moves the panel to its terminal state and drops pending replies.
// Closing an already closed panel returns its snapshot unchanged.
func (s *Service) Close(_ context.Context, sessionID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	if sess.state.IsClosed {
		return s.snapshotLocked(sess), nil
	}

	dropped := sess.replies.CancelAll()
	sess.state = sess.state.Close()
	snap := s.commitLocked(sess)

	s.log.Info().Str("session", sessionID).Int("dropped_replies", dropped).Msg("session closed")
	return snap, nil
}

// Teardown cancels pending replies, ends subscriptions and discards the panel.
func (s *Service) Teardown(_ context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		s.removeLocked(sess)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.log.Info().Str("session", sessionID).Msg("session torn down")
	return nil
}

// Subscribe streams snapshots of a panel, starting with the current one.
// Slow readers only see the latest snapshot. The channel is closed on
// teardown or when cancel is called.
func (s *Service) Subscribe(_ context.Context, sessionID string) (<-chan Snapshot, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}

	ch := make(chan Snapshot, 1)
	id := sess.nextSub
	sess.nextSub++
	sess.subs[id] = ch
	ch <- s.snapshotLocked(sess)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := sess.subs[id]; ok {
				delete(sess.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel, nil
}

// Sweep tears down panels that saw no transition for longer than idle.
func (s *Service) Sweep(idle time.Duration) int {
	cutoff := s.clock.Now().Add(-idle)

	s.mu.Lock()
	var expired []string
	for id, sess := range s.sessions {
		if sess.touchedAt.Before(cutoff) {
			s.removeLocked(sess)
			expired = append(expired, id)
		}
	}
	s.mu.Unlock()

	if len(expired) > 0 {
		s.log.Info().Int("sessions", len(expired)).Dur("idle", idle).Msg("idle sessions swept")
	}
	return len(expired)
}

// Len returns the number of live panels.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// PendingReplies returns the number of replies of a panel that have not
// landed yet, including one that is being applied right now.
func (s *Service) PendingReplies(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		return sess.replies.Pending()
	}
	return 0
}

func (s *Service) dispatch(sessionID string, fn func(*session) chat.State) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	if sess.state.IsClosed {
		return s.snapshotLocked(sess), ErrSessionClosed
	}

	prev := sess.state
	sess.state = fn(sess)
	if stateUnchanged(prev, sess.state) {
		return s.snapshotLocked(sess), nil
	}
	return s.commitLocked(sess), nil
}

func (s *Service) completeReply(sessionID, content string, clearsLoading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || sess.state.IsClosed {
		s.log.Debug().Str("session", sessionID).Msg("reply dropped for closed session")
		return
	}

	sess.state = sess.state.CompleteReply(content, clearsLoading)
	s.commitLocked(sess)
}

// commitLocked bumps the version and publishes the new snapshot.
func (s *Service) commitLocked(sess *session) Snapshot {
	sess.version++
	sess.touchedAt = s.clock.Now()
	snap := s.snapshotLocked(sess)
	for _, ch := range sess.subs {
		deliverLatest(ch, snap)
	}
	return snap
}

func (s *Service) snapshotLocked(sess *session) Snapshot {
	return Snapshot{
		SessionID: sess.id,
		Version:   sess.version,
		State:     sess.state,
		View:      chat.Render(sess.state, s.catalog),
		UpdatedAt: sess.touchedAt,
	}
}

func (s *Service) removeLocked(sess *session) {
	sess.replies.CancelAll()
	for id, ch := range sess.subs {
		delete(sess.subs, id)
		close(ch)
	}
	delete(s.sessions, sess.id)
}

func deliverLatest(ch chan Snapshot, snap Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func stateUnchanged(a, b chat.State) bool {
	return len(a.Transcript) == len(b.Transcript) &&
		a.Draft == b.Draft &&
		a.IsLoading == b.IsLoading &&
		a.IsMinimized == b.IsMinimized &&
		a.IsClosed == b.IsClosed
}
