package webview2

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/bridge"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/errors"
)

const ifaceWebView = "ICoreWebView2"

// WebView is an owned webview.
type WebView struct {
	u    *com.Unknown
	pump *bridge.Pump
}

// Unknown returns the underlying reference.
func (w *WebView) Unknown() *com.Unknown { return w.u }

// Settings reads the feature switches.
func (w *WebView) Settings() (Settings, error) {
	var s Settings
	u, err := w.settings()
	if err != nil {
		return s, err
	}
	defer u.Close()

	for _, f := range s.settingSlots() {
		v, err := getBoolProperty(u, "ICoreWebView2Settings", f.slot)
		if err != nil {
			return s, err
		}
		*f.value = v
	}
	return s, nil
}

// SetSettings writes every feature switch.
func (w *WebView) SetSettings(s Settings) error {
	u, err := w.settings()
	if err != nil {
		return err
	}
	defer u.Close()

	for _, f := range s.settingSlots() {
		if err := putBoolProperty(u, "ICoreWebView2Settings", f.slot+1, *f.value); err != nil {
			return err
		}
	}
	return nil
}

func (w *WebView) settings() (*com.Unknown, error) {
	out := abi.NewWord()
	defer out.Free()
	if err := call(w.u, ifaceWebView, "get_Settings", WebViewGetSettings, out.Addr()); err != nil {
		return nil, err
	}
	u := com.Attach(out.Uintptr())
	if u == nil {
		return nil, errors.NotFound(errors.PhaseCall, "interface", "ICoreWebView2Settings")
	}
	return u, nil
}

// Navigate loads uri and waits for the resulting NavigationCompleted event.
// A failed navigation is reported through the result, not as an error.
func (w *WebView) Navigate(ctx context.Context, uri string) (NavigationResult, error) {
	return w.navigate(ctx, "Navigate", WebViewNavigate, uri)
}

// NavigateToString loads html as the document and waits for
// NavigationCompleted.
func (w *WebView) NavigateToString(ctx context.Context, html string) (NavigationResult, error) {
	return w.navigate(ctx, "NavigateToString", WebViewNavigateToString, html)
}

// navigate subscribes to NavigationCompleted for the duration of one
// navigation and resolves on its first event.
func (w *WebView) navigate(ctx context.Context, method string, slot int, arg string) (NavigationResult, error) {
	producer, consumer := bridge.NewOneShot[NavigationResult]()
	sub, err := w.AddNavigationCompleted(func(r NavigationResult) {
		if err := producer.Send(r); err != nil {
			Logger().Debug("later navigation completion ignored",
				zap.String("method", method), zap.Uint64("navigation", r.NavigationID))
		}
	})
	if err != nil {
		return NavigationResult{}, err
	}
	defer sub.Unregister()

	if err := putStringArg(w.u, ifaceWebView, method, slot, arg); err != nil {
		return NavigationResult{}, err
	}
	return bridge.Await(ctx, w.pump, consumer, method)
}

// ExecuteScript runs javascript in the current document and returns the
// JSON encoding of its result.
func (w *WebView) ExecuteScript(ctx context.Context, javascript string) (string, error) {
	if w.u.Closed() {
		return "", errors.AlreadyClosed("webview")
	}
	script := com.AllocString(javascript)
	defer abi.Free(script)

	return bridge.Complete(ctx, w.pump, executeScriptKind, "ExecuteScript",
		func(handler uintptr) com.HRESULT {
			return w.u.Call(WebViewExecuteScript, script, handler)
		},
		func(hr com.HRESULT, json string) (string, error) {
			return json, bridge.Status(hr, ifaceWebView, "ExecuteScript")
		})
}

// AddScriptToExecuteOnDocumentCreated registers javascript to run before
// any page script of every new document and returns its identifier.
func (w *WebView) AddScriptToExecuteOnDocumentCreated(ctx context.Context, javascript string) (string, error) {
	if w.u.Closed() {
		return "", errors.AlreadyClosed("webview")
	}
	script := com.AllocString(javascript)
	defer abi.Free(script)

	return bridge.Complete(ctx, w.pump, addScriptKind, "AddScriptToExecuteOnDocumentCreated",
		func(handler uintptr) com.HRESULT {
			return w.u.Call(WebViewAddScriptOnDocumentCreated, script, handler)
		},
		func(hr com.HRESULT, id string) (string, error) {
			return id, bridge.Status(hr, ifaceWebView, "AddScriptToExecuteOnDocumentCreated")
		})
}

// RemoveScriptToExecuteOnDocumentCreated unregisters a script added with
// AddScriptToExecuteOnDocumentCreated.
func (w *WebView) RemoveScriptToExecuteOnDocumentCreated(id string) error {
	return putStringArg(w.u, ifaceWebView, "RemoveScriptToExecuteOnDocumentCreated", WebViewRemoveScriptOnDocumentCreated, id)
}

// Reload reloads the current document.
func (w *WebView) Reload() error {
	return call(w.u, ifaceWebView, "Reload", WebViewReload)
}

// Stop cancels pending navigations.
func (w *WebView) Stop() error {
	return call(w.u, ifaceWebView, "Stop", WebViewStop)
}

// OpenDevToolsWindow opens the developer tools.
func (w *WebView) OpenDevToolsWindow() error {
	return call(w.u, ifaceWebView, "OpenDevToolsWindow", WebViewOpenDevToolsWindow)
}

// PostWebMessageAsJSON delivers a JSON value to the page's message listeners.
func (w *WebView) PostWebMessageAsJSON(json string) error {
	return putStringArg(w.u, ifaceWebView, "PostWebMessageAsJson", WebViewPostWebMessageAsJSON, json)
}

// PostWebMessageAsString delivers a string to the page's message listeners.
func (w *WebView) PostWebMessageAsString(s string) error {
	return putStringArg(w.u, ifaceWebView, "PostWebMessageAsString", WebViewPostWebMessageAsString, s)
}

// DocumentTitle returns the title of the current document.
func (w *WebView) DocumentTitle() (string, error) {
	return getStringProperty(w.u, ifaceWebView, WebViewGetDocumentTitle)
}

// Source returns the URI of the current document.
func (w *WebView) Source() (string, error) {
	return getStringProperty(w.u, ifaceWebView, WebViewGetSource)
}

// AddNavigationCompleted calls fn after every navigation until the
// subscription is removed.
func (w *WebView) AddNavigationCompleted(fn func(NavigationResult)) (*bridge.Subscription, error) {
	if w.u.Closed() {
		return nil, errors.AlreadyClosed("webview")
	}
	return bridge.Register(w.u, WebViewAddNavigationCompleted, WebViewRemoveNavigationCompleted, navigationCompletedKind,
		func(sender, args *com.Unknown) {
			defer sender.Close()
			defer args.Close()
			if args == nil {
				return
			}
			r, err := readNavigationResult(args)
			if err != nil {
				Logger().Debug("navigation result unreadable", zap.Error(err))
			}
			fn(r)
		})
}

func readNavigationResult(args *com.Unknown) (NavigationResult, error) {
	var r NavigationResult
	var err error
	if r.IsSuccess, err = getBoolProperty(args, "ICoreWebView2NavigationCompletedEventArgs", NavigationArgsIsSuccess); err != nil {
		return r, err
	}

	out := abi.NewOut(8)
	defer out.Free()
	if err := call(args, "ICoreWebView2NavigationCompletedEventArgs", "get_WebErrorStatus", NavigationArgsWebErrorStatus, out.Addr()); err != nil {
		return r, err
	}
	r.WebErrorStatus = out.Int32()
	if err := call(args, "ICoreWebView2NavigationCompletedEventArgs", "get_NavigationId", NavigationArgsNavigationID, out.Addr()); err != nil {
		return r, err
	}
	r.NavigationID = uint64(out.Int64())
	return r, nil
}

// AddWebMessageReceived calls fn for every message page script posts with
// window.chrome.webview.postMessage, until the subscription is removed.
func (w *WebView) AddWebMessageReceived(fn func(WebMessage)) (*bridge.Subscription, error) {
	if w.u.Closed() {
		return nil, errors.AlreadyClosed("webview")
	}
	return bridge.Register(w.u, WebViewAddWebMessageReceived, WebViewRemoveWebMessageReceived, webMessageReceivedKind,
		func(sender, args *com.Unknown) {
			defer sender.Close()
			defer args.Close()
			if args == nil {
				return
			}
			// Conversion failures leave the fields empty.
			source, _ := getStringProperty(args, "ICoreWebView2WebMessageReceivedEventArgs", MessageArgsSource)
			json, _ := getStringProperty(args, "ICoreWebView2WebMessageReceivedEventArgs", MessageArgsWebMessageAsJSON)
			fn(WebMessage{Source: source, JSON: json})
		})
}

// Close releases the webview. A second call returns an already_closed error.
func (w *WebView) Close() error {
	if w.u.Closed() {
		return errors.AlreadyClosed("webview")
	}
	w.u.Close()
	return nil
}
