package bridge

import (
	"testing"

	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/host"
)

var (
	testCompletedKind = com.NewHandlerKind("ITestCompletedHandler",
		com.MustGUID("3a0f55a4-5d2b-4e61-9a43-6f2e0c1d7a01"), com.StatusArg, com.StringArg)
	testEventKind = com.NewHandlerKind("ITestEventHandler",
		com.MustGUID("3a0f55a4-5d2b-4e61-9a43-6f2e0c1d7a02"), com.StatusArg, com.StringArg)

	iidSource   = com.MustGUID("3a0f55a4-5d2b-4e61-9a43-6f2e0c1d7a03")
	sourceClass = com.NewClass("TestSource", []com.GUID{iidSource},
		func(o *com.Object, a com.Args) com.HRESULT {
			return o.Impl().(*fakeSource).add(a[0], a[1])
		},
		func(o *com.Object, a com.Args) com.HRESULT {
			return o.Impl().(*fakeSource).remove(com.EventToken(a[0]))
		},
	)
)

const (
	slotAdd    = 3
	slotRemove = 4

	msgComplete = host.WM_USER + 1
	msgDrop     = host.WM_USER + 2
	msgFire     = host.WM_USER + 3
)

// fakeSource is an event source implemented on the foreign side of the
// vtable contract.
type fakeSource struct {
	handlers map[com.EventToken]*com.Unknown
	order    []com.EventToken
	next     com.EventToken
}

func (s *fakeSource) add(handler, tokenOut uintptr) com.HRESULT {
	if handler == 0 || tokenOut == 0 {
		return com.E_POINTER
	}
	s.next++
	s.handlers[s.next] = com.Acquire(handler)
	s.order = append(s.order, s.next)
	abi.WriteInt64(tokenOut, int64(s.next))
	return com.S_OK
}

func (s *fakeSource) remove(token com.EventToken) com.HRESULT {
	h, ok := s.handlers[token]
	if !ok {
		return com.E_INVALIDARG
	}
	delete(s.handlers, token)
	h.Close()
	return com.S_OK
}

func (s *fakeSource) fire(text string) {
	str := com.AllocString(text)
	defer abi.Free(str)
	for _, tok := range s.order {
		if h, ok := s.handlers[tok]; ok {
			h.Call(com.SlotInvoke, 0, str)
		}
	}
}

func (s *fakeSource) Drop() {
	for tok, h := range s.handlers {
		h.Close()
		delete(s.handlers, tok)
	}
}

// fakeRuntime completes or drops handlers from window messages, the way a
// real runtime delivers completions.
type fakeRuntime struct {
	thread  *host.Thread
	hwnd    host.HWND
	pending []*com.Unknown
	source  *fakeSource
	result  string
	status  com.HRESULT
	onFire  func()
}

func newFakeRuntime(t *testing.T) *fakeRuntime {
	t.Helper()
	r := &fakeRuntime{thread: host.NewThread(), result: "done"}
	hwnd, err := r.thread.CreateWindow(r.wndProc)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	r.hwnd = hwnd
	t.Cleanup(r.thread.Close)
	return r
}

func (r *fakeRuntime) start(msg uint32) func(uintptr) com.HRESULT {
	return func(handler uintptr) com.HRESULT {
		r.pending = append(r.pending, com.Acquire(handler))
		if err := r.thread.PostMessage(r.hwnd, msg, 0, 0); err != nil {
			return com.E_FAIL
		}
		return com.S_OK
	}
}

func (r *fakeRuntime) wndProc(hwnd host.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case msgComplete, msgDrop:
		h := r.pending[0]
		r.pending = r.pending[1:]
		if msg == msgComplete {
			str := com.AllocString(r.result)
			h.Call(com.SlotInvoke, uintptr(uint32(r.status)), str)
			abi.Free(str)
		}
		h.Close()
	case msgFire:
		r.source.fire(r.result)
		if r.onFire != nil {
			r.onFire()
		}
	}
	return 0
}
