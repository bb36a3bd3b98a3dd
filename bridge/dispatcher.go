package bridge

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/webview2/host"
)

// WakeMessage is the thread message that tells the owning thread to run
// queued tasks.
const WakeMessage = host.WM_APP + 0x3ff

// Dispatcher moves work onto the thread that owns a queue. Any goroutine may
// call Dispatch; tasks run on the owning thread when its pump sees the
// wake-up message or polls TryRunOne.
type Dispatcher struct {
	queue host.Queue
	tasks []func()
	mu    sync.Mutex
	woken bool
}

// NewDispatcher creates a dispatcher for queue.
func NewDispatcher(queue host.Queue) *Dispatcher {
	return &Dispatcher{queue: queue}
}

// Dispatch queues fn and wakes the owning thread.
func (d *Dispatcher) Dispatch(fn func()) error {
	d.mu.Lock()
	d.tasks = append(d.tasks, fn)
	d.mu.Unlock()
	return d.wake()
}

// wake posts one wake-up message unless one is already in flight.
func (d *Dispatcher) wake() error {
	d.mu.Lock()
	if d.woken {
		d.mu.Unlock()
		return nil
	}
	d.woken = true
	d.mu.Unlock()

	err := d.queue.PostThreadMessage(d.queue.ThreadID(), WakeMessage, 0, 0)
	if err != nil {
		d.mu.Lock()
		d.woken = false
		d.mu.Unlock()
		Logger().Warn("wake-up post failed", zap.Error(err))
	}
	return err
}

// TryRunOne runs the oldest queued task, if any.
func (d *Dispatcher) TryRunOne() bool {
	d.mu.Lock()
	if len(d.tasks) == 0 {
		d.mu.Unlock()
		return false
	}
	fn := d.tasks[0]
	d.tasks[0] = nil
	d.tasks = d.tasks[1:]
	d.mu.Unlock()

	fn()
	return true
}

// Drain runs queued tasks, including ones queued while draining, and
// returns how many ran.
func (d *Dispatcher) Drain() int {
	n := 0
	for d.TryRunOne() {
		n++
	}
	return n
}

// Pending returns the number of queued tasks.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tasks)
}

func (d *Dispatcher) isWake(msg *host.Msg) bool {
	if msg.Hwnd != 0 || msg.Message != WakeMessage {
		return false
	}
	d.mu.Lock()
	d.woken = false
	d.mu.Unlock()
	return true
}
