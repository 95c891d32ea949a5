package render

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the frame interval of a Loop created with zero
// interval, roughly 60 frames per second.
const DefaultInterval = 16 * time.Millisecond

// Loop calls a frame function on a fixed interval until stopped.
//
// Each Loop is an independent handle, so several views can animate side by
// side. Start and Stop are both idempotent, and Stop blocks until the frame
// in flight (if any) has returned: no frame runs after Stop returns. The
// frame function must not call Stop itself.
type Loop struct {
	frame    func()
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewLoop creates a stopped loop calling frame every interval.
func NewLoop(frame func(), interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{frame: frame, interval: interval}
}

// Start begins calling the frame function. It reports false if the loop
// was already running. The loop also stops when ctx is cancelled.
func (l *Loop) Start(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running() {
		return false
	}

	loopCtx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	l.cancel, l.stopped = cancel, stopped

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				// A tick and a cancel can be ready together.
				if loopCtx.Err() != nil {
					return
				}
				l.frame()
			}
		}
	}()
	return true
}

// Stop halts the loop and waits for the goroutine to exit.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, stopped := l.cancel, l.stopped
	l.cancel, l.stopped = nil, nil
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}

// Done returns a channel closed when the current run exits, or nil if the
// loop was never started.
func (l *Loop) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}

// Running reports whether the loop is calling its frame function.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running()
}

func (l *Loop) running() bool {
	if l.stopped == nil {
		return false
	}
	select {
	case <-l.stopped:
		return false
	default:
		return true
	}
}
