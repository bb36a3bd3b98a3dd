package bridge

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/webview2/errors"
	"github.com/wippyai/webview2/host"
)

// Pump drives one thread's message queue. It must only be used from the
// thread that owns the queue.
type Pump struct {
	queue      host.Queue
	dispatcher *Dispatcher
	active     atomic.Bool
	terminated atomic.Bool
	failed     atomic.Bool
}

// NewPump creates a pump over queue.
func NewPump(queue host.Queue) *Pump {
	return &Pump{
		queue:      queue,
		dispatcher: NewDispatcher(queue),
	}
}

// Queue returns the pumped queue.
func (p *Pump) Queue() host.Queue { return p.queue }

// Dispatcher returns the cross-thread task dispatcher of this pump.
func (p *Pump) Dispatcher() *Dispatcher { return p.dispatcher }

// Terminated reports whether the pump has seen WM_QUIT.
func (p *Pump) Terminated() bool { return p.terminated.Load() }

// step retrieves and handles one message. An error means the loop cannot
// continue.
func (p *Pump) step(what string) error {
	if p.terminated.Load() {
		return errors.PumpTerminated(what)
	}
	if p.failed.Load() {
		return errors.PumpFailed(nil)
	}

	var msg host.Msg
	switch r := p.queue.GetMessage(&msg); r {
	case 0:
		p.terminated.Store(true)
		Logger().Debug("message loop terminated", zap.String("awaiting", what), zap.Uint64("code", uint64(msg.WParam)))
		return errors.PumpTerminated(what)
	case -1:
		p.failed.Store(true)
		Logger().Debug("message retrieval failed", zap.String("awaiting", what))
		return errors.PumpFailed(nil)
	}

	if p.dispatcher.isWake(&msg) {
		p.dispatcher.Drain()
		return nil
	}
	p.queue.TranslateMessage(&msg)
	p.queue.DispatchMessage(&msg)
	return nil
}

// Run is the main message loop. It returns nil after WM_QUIT.
func (p *Pump) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { p.dispatcher.wake() })
	defer stop()

	for {
		if p.dispatcher.TryRunOne() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return errors.Canceled(err)
		}
		if err := p.step("message loop"); err != nil {
			if p.terminated.Load() {
				return nil
			}
			return err
		}
	}
}

// Await pumps messages until c resolves. Every retrieved message is fully
// dispatched before c is checked again. what names the awaited operation in
// errors. Only one Await may be active per pump; a nested call fails with a
// reentrant error instead of blocking.
func Await[T any](ctx context.Context, p *Pump, c *Consumer[T], what string) (T, error) {
	var zero T

	if !p.active.CompareAndSwap(false, true) {
		return zero, errors.New(errors.PhasePump, errors.KindReentrant).
			Detail("%s awaited while another wait is active", what).Build()
	}
	defer p.active.Store(false)

	stop := context.AfterFunc(ctx, func() { p.dispatcher.wake() })
	defer stop()

	for {
		switch v, state := c.TryRecv(); state {
		case Ready:
			return v, nil
		case Abandoned:
			return zero, errors.Abandoned(what)
		}
		if p.dispatcher.TryRunOne() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return zero, errors.Canceled(err)
		}
		if err := p.step(what); err != nil {
			return zero, err
		}
	}
}
