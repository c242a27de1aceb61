package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"horsesharing/internal/models"
	"horsesharing/internal/profile"
)

// ErrPublished is returned when a draft mutation reaches a published
// profile; published profiles are read-only through this surface.
var ErrPublished = errors.New("profile is published and read-only")

// Store loads and saves rider profiles. Implemented by the database package.
type Store interface {
	LoadRiderProfile(ctx context.Context, userID primitive.ObjectID) (models.RiderProfile, bool, error)
	SaveRiderProfile(ctx context.Context, p *models.RiderProfile) error
}

// Session owns one user's in-memory draft. The draft has a single owner
// (the active editing session), so a plain mutex suffices; the scheduler's
// persist callback reads a snapshot and never touches live state.
type Session struct {
	userID primitive.ObjectID
	store  Store
	sched  *Scheduler

	mu      sync.Mutex
	prof    models.RiderProfile
	percent atomic.Int32
}

// ApplySection replaces one section of the draft and notifies the scheduler.
func (s *Session) ApplySection(id string, payload []byte) error {
	s.mu.Lock()
	if s.prof.IsPublished {
		s.mu.Unlock()
		return ErrPublished
	}
	if err := s.prof.ApplySection(id, payload); err != nil {
		s.mu.Unlock()
		return err
	}
	s.refreshSnapshotLocked()
	s.mu.Unlock()

	s.sched.NoteEdit()
	return nil
}

// refreshSnapshotLocked recomputes the denormalized evaluator fields and the
// lock-free percent mirror the scheduler reads.
func (s *Session) refreshSnapshotLocked() {
	prog := profile.Evaluate(&s.prof)
	s.prof.CompletionPercent = prog.Percent
	s.prof.IsPublishable = prog.Publishable
	s.prof.UpdatedAt = time.Now()
	s.percent.Store(int32(prog.Percent))
}

// Snapshot returns a copy of the draft. Normalize never mutates maps or
// slices in place, so the copy stays valid while editing continues.
func (s *Session) Snapshot() models.RiderProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prof
}

// Replace swaps the whole draft, used when an explicit save rewrote the
// document outside the session.
func (s *Session) Replace(p models.RiderProfile) {
	s.mu.Lock()
	s.prof = p
	s.refreshSnapshotLocked()
	s.mu.Unlock()
}

// Progress evaluates the current draft.
func (s *Session) Progress() profile.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return profile.Evaluate(&s.prof)
}

// SetHidden reports a visibility change of the editing tab.
func (s *Session) SetHidden(hidden bool) {
	s.sched.SetPaused(hidden)
}

// Flush persists immediately through the explicit-save path.
func (s *Session) Flush(ctx context.Context) error {
	return s.sched.Flush(ctx)
}

func (s *Session) persistSnapshot(ctx context.Context) error {
	snap := s.Snapshot()
	return s.store.SaveRiderProfile(ctx, &snap)
}

// Manager hands out at most one session per user, guarding the single-owner
// invariant of the draft document.
type Manager struct {
	store Store
	opts  Options

	mu       sync.Mutex
	sessions map[primitive.ObjectID]*Session
}

func NewManager(store Store, opts Options) *Manager {
	return &Manager{
		store:    store,
		opts:     opts,
		sessions: make(map[primitive.ObjectID]*Session),
	}
}

// Session returns the user's editing session, opening one from the stored
// profile (or an empty draft) on first use.
func (m *Manager) Session(ctx context.Context, userID primitive.ObjectID) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	// Load outside the manager lock; a losing racer closes its scheduler.
	prof, found, err := m.store.LoadRiderProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load rider profile: %w", err)
	}
	if !found {
		prof = models.NewRiderProfile(userID)
	}
	prof.Normalize()

	s := &Session{userID: userID, store: m.store, prof: prof}
	s.refreshSnapshotLocked()
	s.sched = NewScheduler(s.persistSnapshot, func() int { return int(s.percent.Load()) }, m.opts)

	m.mu.Lock()
	if existing, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		s.sched.Close()
		return existing, nil
	}
	m.sessions[userID] = s
	m.mu.Unlock()
	return s, nil
}

// Peek returns the live session without opening one.
func (m *Manager) Peek(userID primitive.ObjectID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Close tears the session down: a final flush when edits are pending, then
// both timers cancelled so nothing touches the closed session afterwards.
func (m *Manager) Close(ctx context.Context, userID primitive.ObjectID) error {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()
	if !ok {
		return nil
	}

	var err error
	if s.sched.Dirty() {
		err = s.sched.Flush(ctx)
	}
	s.sched.Close()
	return err
}

// Shutdown closes every live session, flushing pending edits.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[primitive.ObjectID]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		if s.sched.Dirty() {
			_ = s.sched.Flush(ctx)
		}
		s.sched.Close()
	}
}
