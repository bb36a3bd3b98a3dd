package webview2_test

import (
	"context"
	"testing"
	"time"

	"github.com/wippyai/webview2/bridge"
	"github.com/wippyai/webview2/headless"
	"github.com/wippyai/webview2/host"
	"github.com/wippyai/webview2/webview2"
)

type fixture struct {
	thread *host.Thread
	rt     *headless.Runtime
	pump   *bridge.Pump
	hwnd   host.HWND
	env    *webview2.Environment
	ctrl   *webview2.Controller
	view   *webview2.WebView
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// newRuntime creates a runtime with a parent window on a fresh thread.
func newRuntime(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{thread: host.NewThread()}
	t.Cleanup(f.thread.Close)

	rt, err := headless.New(f.thread)
	if err != nil {
		t.Fatalf("headless.New: %v", err)
	}
	f.rt = rt
	t.Cleanup(func() { rt.Close() })

	f.pump = bridge.NewPump(f.thread)
	f.hwnd, err = f.thread.CreateWindow(func(host.HWND, uint32, uintptr, uintptr) uintptr { return 0 })
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	return f
}

// newFixture creates an environment, a controller and its webview.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := newRuntime(t)
	ctx := testContext(t)

	env, err := webview2.NewEnvironment(ctx, f.rt, f.pump)
	if err != nil {
		t.Fatalf("NewEnvironment: %v", err)
	}
	f.env = env
	t.Cleanup(func() { env.Close() })

	f.open(t, ctx)
	return f
}

func (f *fixture) open(t *testing.T, ctx context.Context) {
	t.Helper()
	ctrl, err := f.env.CreateController(ctx, f.hwnd)
	if err != nil {
		t.Fatalf("CreateController: %v", err)
	}
	f.ctrl = ctrl
	t.Cleanup(func() { ctrl.Close() })

	view, err := ctrl.WebView()
	if err != nil {
		t.Fatalf("WebView: %v", err)
	}
	f.view = view
	t.Cleanup(func() { view.Close() })
}

// awaitMessage runs trigger and waits for the next web message.
func (f *fixture) awaitMessage(t *testing.T, trigger func() error) webview2.WebMessage {
	t.Helper()
	producer, consumer := bridge.NewOneShot[webview2.WebMessage]()
	sub, err := f.view.AddWebMessageReceived(func(m webview2.WebMessage) {
		producer.Send(m)
	})
	if err != nil {
		t.Fatalf("AddWebMessageReceived: %v", err)
	}
	defer sub.Unregister()

	if err := trigger(); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	msg, err := bridge.Await(testContext(t), f.pump, consumer, "web message")
	if err != nil {
		t.Fatalf("awaiting web message: %v", err)
	}
	return msg
}
