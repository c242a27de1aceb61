// Package draft keeps the in-progress rider profile of an active editing
// session in memory and decides when it is flushed to storage. The policy
// absorbs rapid typing with a debounce, bounds network chatter from idle
// tabs with a capped periodic save, pauses while the tab is hidden and
// skips near-empty drafts entirely.
package draft

import (
	"context"
	"log"
	"sync"
	"time"
)

// PersistFunc flushes the current draft. Errors are the caller's business on
// explicit saves; the scheduler itself only logs them and retries on the
// next attempt.
type PersistFunc func(ctx context.Context) error

// Options tune the autosave policy. Zero values fall back to the defaults
// the product ships with.
type Options struct {
	Debounce      time.Duration // wait after the last edit before saving
	Interval      time.Duration // periodic tick
	IdleSaveLimit int           // consecutive ticking saves without new edits
	MinPercent    int           // completeness floor below which nothing saves
	SaveTimeout   time.Duration // per-attempt persist deadline
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = 1500 * time.Millisecond
	}
	if o.Interval <= 0 {
		o.Interval = 30 * time.Second
	}
	if o.IdleSaveLimit <= 0 {
		o.IdleSaveLimit = 4
	}
	if o.MinPercent <= 0 {
		o.MinPercent = 10
	}
	if o.SaveTimeout <= 0 {
		o.SaveTimeout = 10 * time.Second
	}
	return o
}

// Scheduler runs the autosave policy for one draft. Persist attempts run
// outside the lock, so a slow save never blocks edits and two attempts may
// overlap; the backend's last-received write wins.
type Scheduler struct {
	opts    Options
	persist PersistFunc
	percent func() int

	mu         sync.Mutex
	dirty      bool
	paused     bool
	idleSaves  int
	lastEditAt time.Time
	debounce   *time.Timer

	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler starts the periodic loop. percent reports the draft's current
// completeness and must be safe to call from any goroutine.
func NewScheduler(persist PersistFunc, percent func() int, opts Options) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		opts:    opts.withDefaults(),
		persist: persist,
		percent: percent,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// NoteEdit records a mutation: the draft is dirty, the idle counter resets
// and the debounce window restarts.
func (s *Scheduler) NoteEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
	s.lastEditAt = time.Now()
	s.idleSaves = 0
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(s.opts.Debounce, s.debounceFire)
}

func (s *Scheduler) debounceFire() {
	s.mu.Lock()
	if !s.dirty || s.paused || s.belowFloor() {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	s.mu.Unlock()
	s.save("debounce")
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	if s.paused || s.belowFloor() {
		s.mu.Unlock()
		return
	}
	if s.dirty {
		s.dirty = false
		s.idleSaves = 0
	} else {
		if s.idleSaves >= s.opts.IdleSaveLimit {
			s.mu.Unlock()
			return
		}
		s.idleSaves++
	}
	s.mu.Unlock()
	s.save("tick")
}

// belowFloor is called with s.mu held; the percent callback must not take
// locks of its own.
func (s *Scheduler) belowFloor() bool {
	return s.percent() <= s.opts.MinPercent
}

func (s *Scheduler) save(reason string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.SaveTimeout)
	defer cancel()
	if err := s.persist(ctx); err != nil {
		// Autosave never interrupts the user. Leave the draft dirty so the
		// next tick retries.
		log.Printf("[AUTOSAVE] [WARN] %s save failed: %v", reason, err)
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
	}
}

// SetPaused follows visibility: hidden pauses all autosave activity, showing
// again resumes it and re-arms the idle budget.
func (s *Scheduler) SetPaused(hidden bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = hidden
	if !hidden {
		s.idleSaves = 0
	}
}

// Flush is the explicit save path: it bypasses timers and the completeness
// floor, persists immediately and resets the dirty/idle state so the two
// mechanisms stay consistent. Unlike autosave attempts the error surfaces,
// and the draft stays dirty for a later retry.
func (s *Scheduler) Flush(ctx context.Context) error {
	s.mu.Lock()
	wasDirty := s.dirty
	s.dirty = false
	s.idleSaves = 0
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		s.mu.Lock()
		s.dirty = s.dirty || wasDirty
		s.mu.Unlock()
		return err
	}
	return nil
}

// Dirty reports whether edits are waiting to be persisted.
func (s *Scheduler) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Close cancels the periodic loop and the pending debounce. It does not
// flush; callers that care run Flush first.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	s.mu.Unlock()
	s.cancel()
	<-s.done
}
