package webview2

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/bridge"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/errors"
	"github.com/wippyai/webview2/host"
)

const ifaceEnvironment = "ICoreWebView2Environment"

// Environment is an owned browser environment. Controllers created from it
// share its pump.
type Environment struct {
	u    *com.Unknown
	pump *bridge.Pump
}

// NewEnvironment creates an environment with default options and waits for
// it on pump.
func NewEnvironment(ctx context.Context, loader Loader, pump *bridge.Pump) (*Environment, error) {
	return NewEnvironmentWithOptions(ctx, loader, pump, "", "", nil)
}

// NewEnvironmentWithOptions creates an environment for the given browser
// and user data folders, either of which may be empty, and waits for it on
// pump. opts may be nil.
func NewEnvironmentWithOptions(ctx context.Context, loader Loader, pump *bridge.Pump, browserFolder, userDataFolder string, opts *EnvironmentOptions) (*Environment, error) {
	folder := optionalString(browserFolder)
	defer abi.Free(folder)
	data := optionalString(userDataFolder)
	defer abi.Free(data)

	var options *com.Object
	if opts != nil {
		options = opts.object()
		defer options.Release()
	}

	u, err := bridge.Complete(ctx, pump, createEnvironmentKind, "CreateCoreWebView2EnvironmentWithOptions",
		func(handler uintptr) com.HRESULT {
			var raw uintptr
			if options != nil {
				raw = options.Raw()
			}
			return loader.CreateCoreWebView2EnvironmentWithOptions(folder, data, raw, handler)
		},
		func(hr com.HRESULT, env *com.Unknown) (*com.Unknown, error) {
			return required(hr, env, "CreateCoreWebView2EnvironmentWithOptions")
		})
	if err != nil {
		return nil, err
	}

	Logger().Debug("environment created")
	return &Environment{u: u, pump: pump}, nil
}

// required checks a completion that delivers an object.
func required(hr com.HRESULT, u *com.Unknown, method string) (*com.Unknown, error) {
	if err := bridge.Status(hr, "", method); err != nil {
		u.Close()
		return nil, err
	}
	if u == nil {
		return nil, errors.New(errors.PhaseComplete, errors.KindFailed).
			Method(method).
			Detail("completed without an object").
			Build()
	}
	return u, nil
}

// Pump returns the pump completions are awaited on.
func (e *Environment) Pump() *bridge.Pump { return e.pump }

// Unknown returns the underlying reference.
func (e *Environment) Unknown() *com.Unknown { return e.u }

// CreateController creates a controller hosted in parent and waits for it.
// A zero parent is rejected by the runtime before anything is queued.
func (e *Environment) CreateController(ctx context.Context, parent host.HWND) (*Controller, error) {
	if e.u.Closed() {
		return nil, errors.AlreadyClosed("environment")
	}
	u, err := bridge.Complete(ctx, e.pump, createControllerKind, "CreateCoreWebView2Controller",
		func(handler uintptr) com.HRESULT {
			return e.u.Call(EnvironmentCreateController, uintptr(parent), handler)
		},
		func(hr com.HRESULT, c *com.Unknown) (*com.Unknown, error) {
			return required(hr, c, "CreateCoreWebView2Controller")
		})
	if err != nil {
		return nil, err
	}

	Logger().Debug("controller created", zap.Uintptr("parent", uintptr(parent)))
	return &Controller{u: u, pump: e.pump}, nil
}

// BrowserVersion returns the version of the browser backing the environment.
func (e *Environment) BrowserVersion() (string, error) {
	return getStringProperty(e.u, ifaceEnvironment, EnvironmentGetBrowserVersionString)
}

// Close releases the environment. A second call returns an already_closed
// error.
func (e *Environment) Close() error {
	if e.u.Closed() {
		return errors.AlreadyClosed("environment")
	}
	e.u.Close()
	return nil
}
