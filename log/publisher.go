package log

import (
	"sync"
	"sync/atomic"
)

const defaultBufferSize = 64

// Publisher is an [io.Writer] that fans out log entries to subscribers.
//
// Every Write is copied once and queued on each active [Subscription]. A full
// subscription drops its oldest entry, so Write never blocks. When
// [WithHistory] is set, the most recent entries are also retained and replayed
// to subscriptions created later, which lets a viewer started after a settings
// file was loaded still show the warnings logged while loading it.
//
// Safe for concurrent use. Create instances with [NewPublisher].
type Publisher struct {
	subscribers []*Subscription
	history     [][]byte
	bufSize     int
	historySize int
	mu          sync.Mutex
	closed      bool
}

// PublisherOption configures a [Publisher].
type PublisherOption func(*Publisher)

// NewPublisher creates a [Publisher]. Subscriptions buffer 64 entries unless
// [WithBufferSize] says otherwise, and no history is kept by default.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{bufSize: defaultBufferSize}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithBufferSize sets the channel buffer size for new subscriptions.
// Values less than 1 are clamped to 1.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		p.bufSize = max(n, 1)
	}
}

// WithHistory retains the last n entries and replays them to each new
// subscription. Values less than 1 disable history.
func WithHistory(n int) PublisherOption {
	return func(p *Publisher) {
		p.historySize = max(n, 0)
	}
}

// Write copies b and delivers the copy to every active subscription. Closed
// subscriptions are dropped from the list as a side effect. Write always
// returns len(b), nil.
func (p *Publisher) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return len(b), nil
	}

	entry := append([]byte(nil), b...)
	p.remember(entry)

	alive := p.subscribers[:0]
	for _, sub := range p.subscribers {
		if sub.closed.Load() {
			close(sub.ch)
			continue
		}

		sub.push(entry)
		alive = append(alive, sub)
	}

	clear(p.subscribers[len(alive):])
	p.subscribers = alive

	return len(b), nil
}

// History returns the retained entries, oldest first.
func (p *Publisher) History() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([][]byte(nil), p.history...)
}

// Subscribe registers a new [Subscription] and queues any retained history
// on it. Subscribing to a closed Publisher returns a subscription whose
// channel is already closed.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := &Subscription{ch: make(chan []byte, p.bufSize)}
	if p.closed {
		close(sub.ch)
		return sub
	}

	for _, entry := range p.history {
		sub.push(entry)
	}

	p.subscribers = append(p.subscribers, sub)

	return sub
}

// Close closes every subscription channel and stops accepting entries.
// Idempotent.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	for _, sub := range p.subscribers {
		close(sub.ch)
	}

	p.subscribers = nil
	p.history = nil

	return nil
}

func (p *Publisher) remember(entry []byte) {
	if p.historySize == 0 {
		return
	}

	if len(p.history) == p.historySize {
		p.history[0] = nil
		p.history = p.history[1:]
	}

	p.history = append(p.history, entry)
}

// Subscription receives log entries from a [Publisher].
type Subscription struct {
	ch     chan []byte
	closed atomic.Bool
}

// C returns the channel that delivers log entries.
// Callers must not modify the returned byte slices.
func (s *Subscription) C() <-chan []byte {
	return s.ch
}

// Close marks the subscription as closed. The Publisher closes the channel
// on its next Write or Close. Idempotent.
func (s *Subscription) Close() {
	s.closed.Store(true)
}

// push enqueues entry, evicting the oldest entry when the buffer is full.
// Callers hold the publisher lock, so nothing else sends on ch concurrently.
func (s *Subscription) push(entry []byte) {
	select {
	case s.ch <- entry:
	default:
		<-s.ch

		s.ch <- entry
	}
}
