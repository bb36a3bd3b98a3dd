package headless

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/host"
	"github.com/wippyai/webview2/resource"
	"github.com/wippyai/webview2/webview2"
)

// DefaultVersion is the browser version a runtime reports unless configured
// otherwise.
const DefaultVersion = "131.0.2903.70"

// msgTask carries a queued task handle in wParam.
const msgTask = host.WM_APP + 0x100

// task runs on the owning thread. canceled is set when the runtime shuts
// down before the task was delivered; the task must then release what it
// holds without calling back.
type task func(canceled bool)

// Runtime is an in-process browser runtime. It implements webview2.Loader
// and delivers every completion and event as a message to a hidden window
// on its host, so callers observe them only while pumping.
type Runtime struct {
	host     host.Host
	hwnd     host.HWND
	tasks    *resource.Typed[task]
	version  string
	language language.Tag
	closed   bool
	mu       sync.Mutex
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithVersion sets the reported browser version.
func WithVersion(v string) Option {
	return func(r *Runtime) { r.version = v }
}

// WithLanguage sets the default navigator.language.
func WithLanguage(tag language.Tag) Option {
	return func(r *Runtime) { r.language = tag }
}

// New creates a runtime whose messages are delivered through h.
func New(h host.Host, opts ...Option) (*Runtime, error) {
	r := &Runtime{
		host:     h,
		tasks:    resource.NewTyped[task](resource.NewTable(), "task"),
		version:  DefaultVersion,
		language: language.AmericanEnglish,
	}
	for _, opt := range opts {
		opt(r)
	}
	hwnd, err := h.CreateWindow(r.wndProc)
	if err != nil {
		return nil, err
	}
	r.hwnd = hwnd
	return r, nil
}

// Version returns the reported browser version.
func (r *Runtime) Version() string { return r.version }

// Window returns the hidden message window.
func (r *Runtime) Window() host.HWND { return r.hwnd }

// post queues t for the owning thread.
func (r *Runtime) post(t task) error {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return host.ErrQueueClosed
	}

	h := r.tasks.Insert(t)
	if err := r.host.PostMessage(r.hwnd, msgTask, uintptr(h), 0); err != nil {
		r.tasks.Remove(h)
		return err
	}
	return nil
}

func (r *Runtime) wndProc(hwnd host.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	if msg != msgTask {
		return 0
	}
	t, ok := r.tasks.Remove(resource.Handle(wParam))
	if !ok {
		return 0
	}
	t(false)
	return 0
}

// Close destroys the message window. Undelivered completions are released
// without being invoked, which their callers observe as abandonment.
func (r *Runtime) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	var pending []resource.Handle
	r.tasks.Each(func(h resource.Handle, _ task) bool {
		pending = append(pending, h)
		return true
	})
	for _, h := range pending {
		if t, ok := r.tasks.Remove(h); ok {
			t(true)
		}
	}
	Logger().Debug("runtime closed", zap.Int("dropped", len(pending)))
	return r.host.DestroyWindow(r.hwnd)
}

// CreateCoreWebView2EnvironmentWithOptions starts environment creation. The
// handler is invoked from a later message.
func (r *Runtime) CreateCoreWebView2EnvironmentWithOptions(browserFolder, userDataFolder, options, handler uintptr) com.HRESULT {
	if handler == 0 {
		return com.E_POINTER
	}

	cfg := envConfig{
		browserFolder:  com.StringArg(browserFolder),
		userDataFolder: com.StringArg(userDataFolder),
		language:       r.language,
	}
	if options != 0 {
		u := com.Acquire(options)
		opts, err := webview2.ReadEnvironmentOptions(u)
		u.Close()
		if err != nil {
			Logger().Debug("environment options unreadable", zap.Error(err))
			return com.E_INVALIDARG
		}
		if hr := cfg.apply(opts, r.version); hr.Failed() {
			return hr
		}
	}

	h := com.Acquire(handler)
	err := r.post(func(canceled bool) {
		defer h.Close()
		if canceled {
			return
		}
		env := newEnvironment(r, cfg)
		defer env.Release()
		h.Call(com.SlotInvoke, com.S_OK.Word(), env.Raw())
	})
	if err != nil {
		h.Close()
		return com.E_UNEXPECTED
	}
	Logger().Debug("environment creation queued", zap.String("user_data", cfg.userDataFolder))
	return com.S_OK
}

// GetAvailableCoreWebView2BrowserVersionString writes the runtime version
// to versionOut in memory the caller frees.
func (r *Runtime) GetAvailableCoreWebView2BrowserVersionString(browserFolder, versionOut uintptr) com.HRESULT {
	if versionOut == 0 {
		return com.E_POINTER
	}
	abi.WriteUintptr(versionOut, com.AllocString(r.version))
	return com.S_OK
}

// CompareBrowserVersions writes -1, 0 or 1 to resultOut.
func (r *Runtime) CompareBrowserVersions(v1, v2, resultOut uintptr) com.HRESULT {
	if resultOut == 0 {
		return com.E_POINTER
	}
	c, err := compareVersions(com.StringArg(v1), com.StringArg(v2))
	if err != nil {
		return com.E_INVALIDARG
	}
	abi.WriteInt32(resultOut, int32(c))
	return com.S_OK
}

var _ webview2.Loader = (*Runtime)(nil)
