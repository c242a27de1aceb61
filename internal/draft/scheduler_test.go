package draft

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// testPersist counts attempts and fails while failing is set.
type testPersist struct {
	calls   atomic.Int32
	failing atomic.Bool
}

func (t *testPersist) persist(ctx context.Context) error {
	t.calls.Add(1)
	if t.failing.Load() {
		return errors.New("backend unavailable")
	}
	return nil
}

func percentAbove() int { return 50 }

func TestDebounceCoalescesRapidEdits(t *testing.T) {
	p := &testPersist{}
	s := NewScheduler(p.persist, percentAbove, Options{
		Debounce: 30 * time.Millisecond,
		Interval: 10 * time.Second,
	})
	defer s.Close()

	for i := 0; i < 10; i++ {
		s.NoteEdit()
		time.Sleep(time.Millisecond)
	}
	time.Sleep(200 * time.Millisecond)

	if got := p.calls.Load(); got != 1 {
		t.Fatalf("10 rapid edits produced %d persists, want 1", got)
	}
	if s.Dirty() {
		t.Fatal("draft should be clean after the debounce save")
	}
}

func TestSingleEditPersistsOnce(t *testing.T) {
	p := &testPersist{}
	s := NewScheduler(p.persist, percentAbove, Options{
		Debounce: 20 * time.Millisecond,
		Interval: 10 * time.Second,
	})
	defer s.Close()

	s.NoteEdit()
	time.Sleep(150 * time.Millisecond)

	if got := p.calls.Load(); got != 1 {
		t.Fatalf("one edit produced %d persists, want 1", got)
	}
}

func TestIdleSavesAreCapped(t *testing.T) {
	p := &testPersist{}
	s := NewScheduler(p.persist, percentAbove, Options{
		Debounce:      10 * time.Millisecond,
		Interval:      40 * time.Millisecond,
		IdleSaveLimit: 2,
	})
	defer s.Close()

	s.NoteEdit()
	// Debounce save plus at most 2 idle ticking saves, then silence even
	// though the ticker keeps running.
	time.Sleep(400 * time.Millisecond)
	if got := p.calls.Load(); got != 3 {
		t.Fatalf("persists after idle period = %d, want 3 (1 debounce + 2 idle)", got)
	}

	// A new edit re-arms the idle budget.
	s.NoteEdit()
	time.Sleep(400 * time.Millisecond)
	if got := p.calls.Load(); got != 6 {
		t.Fatalf("persists after second edit = %d, want 6", got)
	}
}

func TestVisibilityResetsIdleBudget(t *testing.T) {
	p := &testPersist{}
	s := NewScheduler(p.persist, percentAbove, Options{
		Debounce:      10 * time.Millisecond,
		Interval:      40 * time.Millisecond,
		IdleSaveLimit: 1,
	})
	defer s.Close()

	s.NoteEdit()
	time.Sleep(200 * time.Millisecond)
	if got := p.calls.Load(); got != 2 {
		t.Fatalf("persists before visibility change = %d, want 2", got)
	}

	// Hide and show again: the idle counter resets and ticking saves resume.
	s.SetPaused(true)
	s.SetPaused(false)
	time.Sleep(200 * time.Millisecond)
	if got := p.calls.Load(); got != 3 {
		t.Fatalf("persists after visibility reset = %d, want 3", got)
	}
}

func TestHiddenTabSavesNothing(t *testing.T) {
	p := &testPersist{}
	s := NewScheduler(p.persist, percentAbove, Options{
		Debounce: 15 * time.Millisecond,
		Interval: 40 * time.Millisecond,
	})
	defer s.Close()

	s.SetPaused(true)
	s.NoteEdit()
	s.NoteEdit()
	time.Sleep(250 * time.Millisecond)
	if got := p.calls.Load(); got != 0 {
		t.Fatalf("hidden tab produced %d persists, want 0", got)
	}
	if !s.Dirty() {
		t.Fatal("edits made while hidden must stay dirty")
	}

	// Becoming visible again lets the next tick catch up.
	s.SetPaused(false)
	time.Sleep(150 * time.Millisecond)
	if got := p.calls.Load(); got == 0 {
		t.Fatal("expected a catch-up persist after the tab became visible")
	}
	if s.Dirty() {
		t.Fatal("draft should be clean after the catch-up save")
	}
}

func TestLowCompletenessSuppressesAutosave(t *testing.T) {
	var percent atomic.Int32
	percent.Store(10) // at the floor, still suppressed

	p := &testPersist{}
	s := NewScheduler(p.persist, func() int { return int(percent.Load()) }, Options{
		Debounce: 15 * time.Millisecond,
		Interval: 40 * time.Millisecond,
	})
	defer s.Close()

	s.NoteEdit()
	time.Sleep(200 * time.Millisecond)
	if got := p.calls.Load(); got != 0 {
		t.Fatalf("near-empty draft produced %d persists, want 0", got)
	}

	percent.Store(20)
	s.NoteEdit()
	time.Sleep(150 * time.Millisecond)
	if got := p.calls.Load(); got == 0 {
		t.Fatal("expected persists once completeness cleared the floor")
	}
}

func TestFailedSaveStaysDirtyAndRetries(t *testing.T) {
	p := &testPersist{}
	p.failing.Store(true)
	s := NewScheduler(p.persist, percentAbove, Options{
		Debounce: 15 * time.Millisecond,
		Interval: 50 * time.Millisecond,
	})
	defer s.Close()

	s.NoteEdit()
	time.Sleep(100 * time.Millisecond)
	if p.calls.Load() == 0 {
		t.Fatal("expected at least one failed attempt")
	}
	if !s.Dirty() {
		t.Fatal("failed save must leave the draft dirty")
	}

	p.failing.Store(false)
	time.Sleep(150 * time.Millisecond)
	if s.Dirty() {
		t.Fatal("next tick should have retried and cleaned the draft")
	}
}

func TestFlushBypassesTimersAndFloor(t *testing.T) {
	p := &testPersist{}
	s := NewScheduler(p.persist, func() int { return 0 }, Options{
		Debounce: 40 * time.Millisecond,
		Interval: 10 * time.Second,
	})
	defer s.Close()

	s.NoteEdit()
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if got := p.calls.Load(); got != 1 {
		t.Fatalf("flush produced %d persists, want 1", got)
	}
	if s.Dirty() {
		t.Fatal("flush must clear the dirty flag")
	}

	// The pending debounce was cancelled; no second save follows.
	time.Sleep(150 * time.Millisecond)
	if got := p.calls.Load(); got != 1 {
		t.Fatalf("debounce fired after flush: %d persists, want 1", got)
	}
}

func TestFlushFailureSurfacesAndStaysDirty(t *testing.T) {
	p := &testPersist{}
	p.failing.Store(true)
	s := NewScheduler(p.persist, percentAbove, Options{
		Debounce: 10 * time.Second,
		Interval: 10 * time.Second,
	})
	defer s.Close()

	s.NoteEdit()
	if err := s.Flush(context.Background()); err == nil {
		t.Fatal("expected flush error")
	}
	if !s.Dirty() {
		t.Fatal("failed flush must leave the draft dirty for retry")
	}
}

func TestCloseCancelsPendingWork(t *testing.T) {
	p := &testPersist{}
	s := NewScheduler(p.persist, percentAbove, Options{
		Debounce: 50 * time.Millisecond,
		Interval: 60 * time.Millisecond,
	})

	s.NoteEdit()
	s.Close()
	time.Sleep(250 * time.Millisecond)
	if got := p.calls.Load(); got != 0 {
		t.Fatalf("closed scheduler still persisted %d times", got)
	}
}
