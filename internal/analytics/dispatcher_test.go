package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"teachsim/internal/store"
)

// memorySink collects events and can be told to block.
type memorySink struct {
	mu      sync.Mutex
	events  []store.AnalyticsEventData
	err     error
	release chan struct{} // when set, writes wait on it
}

func (m *memorySink) AppendAnalytics(_ context.Context, data store.AnalyticsEventData) error {
	if m.release != nil {
		<-m.release
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, data)
	return nil
}

func (m *memorySink) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, nil, 16)

	for i := range 5 {
		ok := d.Track(store.AnalyticsEventData{
			UserID: "u1",
			Name:   "session_started",
			Props:  map[string]any{"n": i},
		})
		if !ok {
			t.Fatalf("Track(%d) = false, want true", i)
		}
	}
	d.Close()

	if sink.count() != 5 {
		t.Fatalf("delivered = %d, want 5", sink.count())
	}
	for i, e := range sink.events {
		if e.Props["n"] != i {
			t.Errorf("events[%d].Props[n] = %v, want %d", i, e.Props["n"], i)
		}
	}
	if d.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0", d.Dropped())
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	sink := &memorySink{release: release}
	d := NewDispatcher(sink, nil, 1)

	// First event is taken by the worker and blocks in the sink; the
	// second fills the buffer; the rest must drop without blocking.
	d.Track(store.AnalyticsEventData{Name: "e0"})

	deadline := time.After(time.Second)
	for d.Track(store.AnalyticsEventData{Name: "filler"}) {
		select {
		case <-deadline:
			t.Fatal("buffer never filled")
		default:
		}
	}

	if d.Dropped() < 1 {
		t.Errorf("Dropped() = %d, want >= 1", d.Dropped())
	}

	close(release)
	d.Close()
}

func TestDispatcher_LogsSinkErrors(t *testing.T) {
	sink := &memorySink{err: errors.New("db closed")}
	log := &recordingLogger{}
	d := NewDispatcher(sink, log, 4)

	d.Track(store.AnalyticsEventData{Name: "boom"})
	d.Close()

	if log.warns != 1 {
		t.Errorf("warns = %d, want 1", log.warns)
	}
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&memorySink{}, nil, 4)
	d.Close()
	d.Close()
}

type recordingLogger struct {
	mu    sync.Mutex
	warns int
}

func (r *recordingLogger) Warnw(string, ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warns++
}
