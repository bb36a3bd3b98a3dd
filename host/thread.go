package host

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wippyai/webview2/resource"
)

var (
	ErrInvalidThread = errors.New("host: no queue for thread id")
	ErrInvalidWindow = errors.New("host: invalid window handle")
	ErrQueueClosed   = errors.New("host: queue closed")
)

var (
	lastThreadID atomic.Uint32
	threads      sync.Map // uint32 -> *Thread
)

// Thread is an in-process message queue with the same retrieval semantics
// as a native thread queue. It is safe to post from any goroutine; messages
// are retrieved by the goroutine that owns the thread.
type Thread struct {
	windows *resource.Typed[WndProc]
	msgs    []Msg
	start   time.Time
	cond    *sync.Cond
	mu      sync.Mutex
	id      uint32
	quit    bool
	code    int32
	closed  bool
}

// NewThread creates a queue with a fresh thread id. Ids increase
// monotonically across the process.
func NewThread() *Thread {
	t := &Thread{
		id:      lastThreadID.Add(1),
		windows: resource.NewTyped[WndProc](resource.NewTable(), "window"),
		start:   time.Now(),
	}
	t.cond = sync.NewCond(&t.mu)
	threads.Store(t.id, t)
	return t
}

// ThreadID returns the id used with PostThreadMessage.
func (t *Thread) ThreadID() uint32 { return t.id }

// GetMessage blocks until a message is available. Posted messages are
// returned before a pending quit.
func (t *Thread) GetMessage(msg *Msg) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	for {
		if t.closed {
			return -1
		}
		if len(t.msgs) > 0 {
			*msg = t.msgs[0]
			t.msgs = t.msgs[1:]
			return 1
		}
		if t.quit {
			t.quit = false
			*msg = Msg{Message: WM_QUIT, WParam: uintptr(t.code), Time: t.tick()}
			return 0
		}
		t.cond.Wait()
	}
}

// TranslateMessage is a no-op; there is no keyboard input.
func (t *Thread) TranslateMessage(*Msg) {}

// DispatchMessage calls the window procedure of msg.Hwnd. Thread messages
// and messages for destroyed windows are discarded.
func (t *Thread) DispatchMessage(msg *Msg) uintptr {
	if msg.Hwnd == 0 {
		return 0
	}
	proc, ok := t.windows.Get(resource.Handle(msg.Hwnd))
	if !ok {
		return 0
	}
	return proc(msg.Hwnd, msg.Message, msg.WParam, msg.LParam)
}

// PostThreadMessage appends a thread message to the queue of threadID.
func (t *Thread) PostThreadMessage(threadID uint32, msg uint32, wParam, lParam uintptr) error {
	v, ok := threads.Load(threadID)
	if !ok {
		return ErrInvalidThread
	}
	return v.(*Thread).post(Msg{Message: msg, WParam: wParam, LParam: lParam})
}

// PostMessage appends a message for hwnd.
func (t *Thread) PostMessage(hwnd HWND, msg uint32, wParam, lParam uintptr) error {
	if _, ok := t.windows.Get(resource.Handle(hwnd)); !ok {
		return ErrInvalidWindow
	}
	return t.post(Msg{Hwnd: hwnd, Message: msg, WParam: wParam, LParam: lParam})
}

// PostQuitMessage makes GetMessage return 0 once the queue drains.
func (t *Thread) PostQuitMessage(code int32) {
	t.mu.Lock()
	t.quit = true
	t.code = code
	t.mu.Unlock()
	t.cond.Broadcast()
}

// CreateWindow registers proc in the window side-table.
func (t *Thread) CreateWindow(proc WndProc) (HWND, error) {
	if proc == nil {
		return 0, ErrInvalidWindow
	}
	h := t.windows.Insert(proc)
	if h == 0 {
		return 0, ErrQueueClosed
	}
	return HWND(h), nil
}

// DestroyWindow sends WM_DESTROY and removes the window.
func (t *Thread) DestroyWindow(hwnd HWND) error {
	proc, ok := t.windows.Remove(resource.Handle(hwnd))
	if !ok {
		return ErrInvalidWindow
	}
	proc(hwnd, WM_DESTROY, 0, 0)
	return nil
}

// Pending returns the number of queued messages.
func (t *Thread) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.msgs)
}

// Close unregisters the thread. Blocked and later GetMessage calls return -1.
func (t *Thread) Close() {
	threads.Delete(t.id)
	t.mu.Lock()
	t.closed = true
	t.msgs = nil
	t.mu.Unlock()
	t.cond.Broadcast()
}

func (t *Thread) post(m Msg) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrQueueClosed
	}
	m.Time = t.tick()
	t.msgs = append(t.msgs, m)
	t.mu.Unlock()
	t.cond.Signal()
	return nil
}

func (t *Thread) tick() uint32 {
	return uint32(time.Since(t.start).Milliseconds())
}

var _ Host = (*Thread)(nil)
