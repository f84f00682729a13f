// Package job drives the backend's submit-then-poll lifecycle: one watch per
// accepted operation, polling /status at a fixed interval until a terminal
// marker, the deadline, or cancellation.
package job

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnthonyBarbaro/stashhub/internal/api"
)

// ErrTimeout ends a watch whose backend never reached a terminal status
// within the configured deadline.
var ErrTimeout = errors.New("job: polling timed out")

// Event is one observation from a poll loop. Consecutive identical status
// texts are suppressed, so every event with a nil Err is a visible change.
// Exactly one terminal event ends each watch; cancellation ends it with no
// event at all (the channel just closes).
type Event struct {
	Text     string
	Kind     api.Kind
	Terminal bool
	Err      error
}

// Watcher runs at most one poll loop at a time. Start hands back the loop's
// event stream and refuses to overlap an active watch.
type Watcher struct {
	client   *api.Client
	interval time.Duration
	timeout  time.Duration
	log      zerolog.Logger

	mu     sync.Mutex
	active bool
	cancel context.CancelFunc
}

func NewWatcher(client *api.Client, interval, timeout time.Duration, log zerolog.Logger) *Watcher {
	return &Watcher{
		client:   client,
		interval: interval,
		timeout:  timeout,
		log:      log,
	}
}

// Start launches a poll loop and returns its event stream, or nil if a loop
// is already active. The first poll fires one interval after Start. The
// channel closes when the watch ends for any reason.
func (w *Watcher) Start(parent context.Context) <-chan Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active {
		return nil
	}

	ctx, cancel := context.WithTimeout(parent, w.timeout)
	w.active = true
	w.cancel = cancel

	ch := make(chan Event, 1)
	go w.watch(parent, ctx, cancel, ch)
	return ch
}

// Stop cancels the active watch, if any. The loop closes its channel on the
// way out.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
	}
}

// Active reports whether a poll loop is currently running.
func (w *Watcher) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

func (w *Watcher) watch(parent, ctx context.Context, cancel context.CancelFunc, ch chan Event) {
	defer func() {
		w.mu.Lock()
		w.active = false
		w.cancel = nil
		w.mu.Unlock()
		close(ch)
	}()
	defer cancel()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var last string
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				w.log.Warn().Dur("timeout", w.timeout).Msg("watch deadline exceeded")
				w.send(parent, ch, Event{Terminal: true, Err: ErrTimeout})
			}
			return
		case <-ticker.C:
		}

		text, err := w.client.Status(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue // deadline or cancel surfaced through the request; let select decide
			}
			w.log.Warn().Err(err).Msg("status poll failed")
			w.send(parent, ch, Event{Terminal: true, Err: fmt.Errorf("job: poll failed: %w", err)})
			return
		}

		if text == last {
			continue
		}
		last = text

		kind := api.Classify(text)
		w.log.Debug().Str("status", text).Stringer("kind", kind).Msg("status changed")
		if !w.send(parent, ch, Event{Text: text, Kind: kind, Terminal: kind.Terminal()}) {
			return
		}
		if kind.Terminal() {
			return
		}
	}
}

// send delivers an event unless the parent context dies first, so an
// abandoned watch can never wedge its goroutine on an unread channel.
func (w *Watcher) send(parent context.Context, ch chan Event, ev Event) bool {
	select {
	case ch <- ev:
		return true
	case <-parent.Done():
		return false
	}
}
