package analytics

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"teachsim/internal/store"
)

// Sink persists analytics events. store.EventRepo satisfies it.
type Sink interface {
	AppendAnalytics(ctx context.Context, data store.AnalyticsEventData) error
}

// Logger receives write failures. The zap SugaredLogger satisfies it.
type Logger interface {
	Warnw(msg string, keysAndValues ...any)
}

// Dispatcher accepts product events off the request path and writes them
// to the sink from a single background worker. Track never blocks: when
// the buffer is full the event is dropped and counted. Analytics are
// best-effort and must never slow down or fail a user request.
type Dispatcher struct {
	sink   Sink
	log    Logger
	events chan store.AnalyticsEventData

	dropped atomic.Int64

	closeOnce sync.Once
	done      chan struct{}

	// writeTimeout bounds each sink write so a stuck database cannot
	// wedge the worker.
	writeTimeout time.Duration
}

const defaultBufferSize = 256

// NewDispatcher starts a dispatcher with the given buffer size. A size
// of 0 or less uses the default.
func NewDispatcher(sink Sink, log Logger, bufferSize int) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	d := &Dispatcher{
		sink:         sink,
		log:          log,
		events:       make(chan store.AnalyticsEventData, bufferSize),
		done:         make(chan struct{}),
		writeTimeout: 5 * time.Second,
	}
	go d.run()
	return d
}

// Track enqueues an event. It returns false if the buffer was full and
// the event was dropped.
func (d *Dispatcher) Track(event store.AnalyticsEventData) bool {
	select {
	case d.events <- event:
		return true
	default:
		d.dropped.Add(1)
		return false
	}
}

// Dropped returns the number of events discarded because the buffer was
// full.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Close stops accepting events, flushes the buffer, and waits for the
// worker to finish. Safe to call more than once.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.events)
		<-d.done
	})
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for event := range d.events {
		ctx, cancel := context.WithTimeout(context.Background(), d.writeTimeout)
		if err := d.sink.AppendAnalytics(ctx, event); err != nil && d.log != nil {
			d.log.Warnw("analytics write failed", "event", event.Name, "error", err)
		}
		cancel()
	}
}
