package bridge

import (
	"errors"
	"sync"
)

// ErrAlreadySent is returned by a second Send, or a Send after Abandon.
var ErrAlreadySent = errors.New("bridge: one-shot value already delivered")

// State is what a Consumer observed.
type State uint8

const (
	Pending State = iota
	Ready
	Abandoned
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Abandoned:
		return "abandoned"
	}
	return "unknown"
}

// NewOneShot creates a single-use handoff. The producer side delivers at most
// one value; dropping it through Abandon tells the consumer no value will
// ever arrive.
func NewOneShot[T any]() (*Producer[T], *Consumer[T]) {
	ch := make(chan T, 1)
	return &Producer[T]{ch: ch}, &Consumer[T]{ch: ch}
}

// Producer is the sending half of a one-shot.
type Producer[T any] struct {
	ch   chan T
	mu   sync.Mutex
	done bool
}

// Send delivers v. It may be called once.
func (p *Producer[T]) Send(v T) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return ErrAlreadySent
	}
	p.done = true
	p.ch <- v
	close(p.ch)
	return nil
}

// Abandon closes the producer without a value. It is a no-op after Send.
func (p *Producer[T]) Abandon() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return
	}
	p.done = true
	close(p.ch)
}

// Consumer is the receiving half of a one-shot.
type Consumer[T any] struct {
	ch    chan T
	value T
	state State
}

// TryRecv reports the value without blocking. Once Ready or Abandoned, the
// result never changes.
func (c *Consumer[T]) TryRecv() (T, State) {
	if c.state != Pending {
		return c.value, c.state
	}
	select {
	case v, ok := <-c.ch:
		if ok {
			c.value, c.state = v, Ready
		} else {
			c.state = Abandoned
		}
	default:
	}
	return c.value, c.state
}
