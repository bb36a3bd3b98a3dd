package headless

import (
	"context"
	"testing"

	"golang.org/x/text/language"

	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/bridge"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/errors"
	"github.com/wippyai/webview2/host"
	"github.com/wippyai/webview2/webview2"
)

var (
	environmentKind = com.NewHandlerKind("ITestEnvironmentHandler",
		webview2.IID_CreateEnvironmentCompletedHandler, com.StatusArg, com.InterfaceArg(webview2.IID_ICoreWebView2Environment))
	testEventKind = com.NewHandlerKind("ITestEvent",
		com.MustGUID("5b1f0e62-8a8c-4f7e-9d0a-2c4e3a1b6d01"), com.StatusArg, com.StatusArg)
)

func newTestRuntime(t *testing.T, opts ...Option) (*Runtime, *host.Thread) {
	t.Helper()
	thread := host.NewThread()
	t.Cleanup(thread.Close)
	rt, err := New(thread, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { rt.Close() })
	return rt, thread
}

func TestRuntime_BrowserVersion(t *testing.T) {
	rt, _ := newTestRuntime(t, WithVersion("120.0.2210.91"))

	got, err := webview2.GetAvailableBrowserVersionString(rt, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "120.0.2210.91" {
		t.Fatalf("version = %q", got)
	}
	if hr := rt.GetAvailableCoreWebView2BrowserVersionString(0, 0); hr != com.E_POINTER {
		t.Fatalf("null out = %v, want E_POINTER", hr)
	}
}

func TestRuntime_CompareBrowserVersions(t *testing.T) {
	rt, _ := newTestRuntime(t)

	got, err := webview2.CompareBrowserVersions(rt, "1.0.0.0", "1.0.0.1")
	if err != nil || got != -1 {
		t.Fatalf("compare = %d, %v", got, err)
	}

	_, err = webview2.CompareBrowserVersions(rt, "1.0.x", "1.0")
	var e *errors.Error
	if !errors.As(err, &e) || e.Code != com.E_INVALIDARG.Code() {
		t.Fatalf("malformed version err = %v, want E_INVALIDARG", err)
	}
}

func TestRuntime_CompletionIsQueued(t *testing.T) {
	rt, thread := newTestRuntime(t)

	var got com.HRESULT
	invoked := false
	shim := com.NewCompleted(environmentKind, func(hr com.HRESULT, env *com.Unknown) {
		invoked = true
		got = hr
		env.Close()
	}, nil)

	if hr := rt.CreateCoreWebView2EnvironmentWithOptions(0, 0, 0, shim.Raw()); hr.Failed() {
		t.Fatalf("create = %v", hr)
	}
	shim.Release()
	if invoked {
		t.Fatal("handler invoked during the call")
	}
	if thread.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", thread.Pending())
	}

	var msg host.Msg
	thread.GetMessage(&msg)
	thread.DispatchMessage(&msg)
	if !invoked || got != com.S_OK {
		t.Fatalf("invoked = %v, hr = %v", invoked, got)
	}
}

func TestRuntime_CloseAbandonsPending(t *testing.T) {
	rt, thread := newTestRuntime(t)
	pump := bridge.NewPump(thread)
	live := com.Live()

	producer, consumer := bridge.NewOneShot[bool]()
	shim := com.NewCompleted(environmentKind, func(com.HRESULT, *com.Unknown) {
		producer.Send(true)
	}, producer.Abandon)

	if hr := rt.CreateCoreWebView2EnvironmentWithOptions(0, 0, 0, shim.Raw()); hr.Failed() {
		t.Fatalf("create = %v", hr)
	}
	shim.Release()

	if err := rt.Close(); err != nil {
		t.Fatal(err)
	}
	_, err := bridge.Await(context.Background(), pump, consumer, "environment")
	if !errors.Is(err, errors.ErrAbandoned) {
		t.Fatalf("err = %v, want abandoned", err)
	}
	if com.Live() != live {
		t.Fatalf("live objects = %d, want %d", com.Live(), live)
	}
	if hr := rt.CreateCoreWebView2EnvironmentWithOptions(0, 0, 0, 0); hr != com.E_POINTER {
		t.Fatalf("null handler = %v", hr)
	}
}

func TestRuntime_EnvironmentOptions(t *testing.T) {
	rt, _ := newTestRuntime(t, WithVersion("100.0.0.0"))

	tests := []struct {
		name string
		opts webview2.EnvironmentOptions
		want com.HRESULT
	}{
		{"valid", webview2.EnvironmentOptions{Language: "fr-CA", TargetCompatibleBrowserVersion: "99.0"}, com.S_OK},
		{"bad language", webview2.EnvironmentOptions{Language: "not a tag!"}, com.E_INVALIDARG},
		{"bad version", webview2.EnvironmentOptions{TargetCompatibleBrowserVersion: "x"}, com.E_INVALIDARG},
		{"too new", webview2.EnvironmentOptions{TargetCompatibleBrowserVersion: "101.0"}, com.HRESULTFromWin32(com.ErrorFileNotFound)},
	}
	for _, tt := range tests {
		cfg := envConfig{language: language.English}
		if got := cfg.apply(tt.opts, rt.Version()); got != tt.want {
			t.Errorf("%s: apply = %v, want %v", tt.name, got, tt.want)
		}
	}

	cfg := envConfig{language: language.English}
	cfg.apply(webview2.EnvironmentOptions{Language: "fr-CA", AdditionalBrowserArguments: "--foo", AllowSingleSignOnUsingOSPrimaryAccount: true}, rt.Version())
	if cfg.language.String() != "fr-CA" || cfg.arguments != "--foo" || !cfg.sso {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestEventList(t *testing.T) {
	var l eventList
	var calls []string

	register := func(name string) com.EventToken {
		ev := com.NewEvent(testEventKind, func(com.HRESULT, com.HRESULT) { calls = append(calls, name) })
		defer ev.Release()
		tok := abi.NewOut(8)
		defer tok.Free()
		if hr := l.add(ev.Raw(), tok.Addr()); hr.Failed() {
			t.Fatalf("add = %v", hr)
		}
		return com.EventToken(tok.Int64())
	}

	live := com.Live()
	a := register("a")
	register("b")
	if n := l.fire(0, 0); n != 2 {
		t.Fatalf("fired %d handlers", n)
	}
	if hr := l.remove(a); hr != com.S_OK {
		t.Fatalf("remove = %v", hr)
	}
	if hr := l.remove(a); hr != com.E_INVALIDARG {
		t.Fatalf("second remove = %v, want E_INVALIDARG", hr)
	}
	l.fire(0, 0)
	if len(calls) != 3 || calls[0] != "a" || calls[1] != "b" || calls[2] != "b" {
		t.Fatalf("calls = %v", calls)
	}
	l.clear()
	if com.Live() != live {
		t.Fatalf("handlers not released: live %d", com.Live())
	}
	if hr := l.add(0, 0); hr != com.E_POINTER {
		t.Fatalf("null add = %v", hr)
	}
}
