package headless

import (
	"os"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/webview2"
)

const blankSource = "about:blank"

type docScript struct {
	id     string
	source string
}

type webView struct {
	rt       *Runtime
	cfg      envConfig
	obj      *com.Object
	settings *com.Object
	page     *page
	markup   string
	scripts  []docScript

	navigationCompleted eventList
	webMessageReceived  eventList

	// navID numbers navigations; generation invalidates queued ones.
	navID      uint64
	generation uint64
	closed     bool
}

func newWebView(rt *Runtime, cfg envConfig) *com.Object {
	w := &webView{rt: rt, cfg: cfg, settings: newSettings()}
	w.page = w.newPage(blankSource, blankSource)
	w.obj = webviewClass.New(w)
	return w.obj
}

func (w *webView) setting(slot int) bool {
	return w.settings.Impl().(*settings).get(slot)
}

func (w *webView) newPage(source, title string) *page {
	return newPage(source, title, w.cfg.language, func(json string) {
		w.postToHost(source, json)
	})
}

// postToHost queues a WebMessageReceived event for a message page script
// posted.
func (w *webView) postToHost(source, json string) {
	if !w.setting(webview2.SettingsIsWebMessageEnabled) {
		return
	}
	err := w.rt.post(func(canceled bool) {
		if canceled || w.closed {
			return
		}
		args := messageArgsClass.New(&messageArgs{source: source, json: json})
		defer args.Release()
		n := w.webMessageReceived.fire(w.obj.Raw(), args.Raw())
		Logger().Debug("web message delivered", zap.String("source", source), zap.Int("handlers", n))
	})
	if err != nil {
		Logger().Debug("web message dropped", zap.Error(err))
	}
}

// navigate queues loading of uri, or of markup directly when uri is empty.
func (w *webView) navigate(uri, markup string, direct bool) com.HRESULT {
	w.navID++
	w.generation++
	id, gen := w.navID, w.generation

	err := w.rt.post(func(canceled bool) {
		if canceled || w.closed {
			return
		}
		if gen != w.generation {
			w.completeNavigation(id, webview2.WebErrorStatusOperationCanceled)
			return
		}

		source := blankSource
		if !direct {
			source = uri
			var status int32
			var err error
			markup, status, err = fetch(uri)
			if err != nil {
				Logger().Debug("navigation failed", zap.String("uri", uri), zap.Error(err))
				w.completeNavigation(id, status)
				return
			}
		}
		w.load(source, markup)
		w.completeNavigation(id, 0)
	})
	if err != nil {
		return com.E_UNEXPECTED
	}
	return com.S_OK
}

// load replaces the page: document-created scripts run in registration
// order, then the document's inline scripts.
func (w *webView) load(source, markup string) {
	doc, err := parseDocument(markup)
	if err != nil {
		Logger().Debug("document not parsed", zap.Error(err))
		doc = &document{}
	}
	title := doc.title
	if title == "" {
		title = source
	}

	w.markup = markup
	w.page = w.newPage(source, title)
	for _, s := range w.scripts {
		if _, err := w.page.run(s.id, s.source); err != nil {
			Logger().Debug("document-created script failed", zap.String("id", s.id), zap.Error(err))
		}
	}
	if !w.setting(webview2.SettingsIsScriptEnabled) {
		return
	}
	for i, s := range doc.scripts {
		if _, err := w.page.run(source, s); err != nil {
			Logger().Debug("inline script failed", zap.Int("index", i), zap.Error(err))
		}
	}
}

func (w *webView) completeNavigation(id uint64, status int32) {
	args := navigationArgsClass.New(&navigationArgs{webview2.NavigationResult{
		NavigationID:   id,
		WebErrorStatus: status,
		IsSuccess:      status == 0,
	}})
	defer args.Release()
	w.navigationCompleted.fire(w.obj.Raw(), args.Raw())
}

func (w *webView) executeScript(script string, handler uintptr) com.HRESULT {
	if handler == 0 {
		return com.E_POINTER
	}
	h := com.Acquire(handler)
	err := w.rt.post(func(canceled bool) {
		defer h.Close()
		if canceled {
			return
		}
		hr := com.S_OK
		json := "null"
		if w.closed {
			hr = errInvalidState
		} else if out, err := w.page.eval(script); err != nil {
			Logger().Debug("script failed", zap.Error(err))
			hr = com.E_FAIL
		} else {
			json = out
		}
		result := com.AllocString(json)
		defer abi.Free(result)
		h.Call(com.SlotInvoke, hr.Word(), result)
	})
	if err != nil {
		h.Close()
		return com.E_UNEXPECTED
	}
	return com.S_OK
}

func (w *webView) addScript(script string, handler uintptr) com.HRESULT {
	if handler == 0 {
		return com.E_POINTER
	}
	id := uuid.NewString()
	w.scripts = append(w.scripts, docScript{id: id, source: script})

	h := com.Acquire(handler)
	err := w.rt.post(func(canceled bool) {
		defer h.Close()
		if canceled {
			return
		}
		s := com.AllocString(id)
		defer abi.Free(s)
		h.Call(com.SlotInvoke, com.S_OK.Word(), s)
	})
	if err != nil {
		h.Close()
		return com.E_UNEXPECTED
	}
	return com.S_OK
}

func (w *webView) removeScript(id string) com.HRESULT {
	for i, s := range w.scripts {
		if s.id == id {
			w.scripts = append(w.scripts[:i], w.scripts[i+1:]...)
			break
		}
	}
	return com.S_OK
}

// postWebMessage queues delivery of a message to the page listeners.
func (w *webView) postWebMessage(deliver func(p *page)) com.HRESULT {
	if !w.setting(webview2.SettingsIsWebMessageEnabled) {
		return errInvalidState
	}
	err := w.rt.post(func(canceled bool) {
		if canceled || w.closed {
			return
		}
		deliver(w.page)
	})
	if err != nil {
		return com.E_UNEXPECTED
	}
	return com.S_OK
}

func (w *webView) close() {
	if w.closed {
		return
	}
	w.closed = true
	w.generation++
	w.navigationCompleted.clear()
	w.webMessageReceived.clear()
}

func (w *webView) Drop() {
	w.close()
	w.settings.Release()
}

// webviewMethod guards m against use after the controller closed.
func webviewMethod(m func(w *webView, a com.Args) com.HRESULT) com.Method {
	return func(o *com.Object, a com.Args) com.HRESULT {
		w := o.Impl().(*webView)
		if w.closed {
			return errInvalidState
		}
		return m(w, a)
	}
}

var webviewClass = com.NewClass("headless.WebView",
	[]com.GUID{webview2.IID_ICoreWebView2},
	slots(52, map[int]com.Method{
		webview2.WebViewGetSettings: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			if a[0] == 0 {
				return com.E_POINTER
			}
			w.settings.AddRef()
			abi.WriteUintptr(a[0], w.settings.Raw())
			return com.S_OK
		}),
		webview2.WebViewGetSource: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			return writeString(a[0], w.page.source)
		}),
		webview2.WebViewNavigate: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			uri := com.StringArg(a[0])
			if uri == "" {
				return com.E_INVALIDARG
			}
			return w.navigate(uri, "", false)
		}),
		webview2.WebViewNavigateToString: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			return w.navigate("", com.StringArg(a[0]), true)
		}),
		webview2.WebViewAddNavigationCompleted: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			return w.navigationCompleted.add(a[0], a[1])
		}),
		webview2.WebViewRemoveNavigationCompleted: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			return w.navigationCompleted.remove(com.EventToken(a[0]))
		}),
		webview2.WebViewAddScriptOnDocumentCreated: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			return w.addScript(com.StringArg(a[0]), a[1])
		}),
		webview2.WebViewRemoveScriptOnDocumentCreated: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			return w.removeScript(com.StringArg(a[0]))
		}),
		webview2.WebViewExecuteScript: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			return w.executeScript(com.StringArg(a[0]), a[1])
		}),
		webview2.WebViewReload: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			if w.page.source == blankSource {
				return w.navigate("", w.markup, true)
			}
			return w.navigate(w.page.source, "", false)
		}),
		webview2.WebViewPostWebMessageAsJSON: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			json := com.StringArg(a[0])
			if !gjson.Valid(json) {
				return com.E_INVALIDARG
			}
			return w.postWebMessage(func(p *page) { p.deliverJSON(json) })
		}),
		webview2.WebViewPostWebMessageAsString: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			s := com.StringArg(a[0])
			return w.postWebMessage(func(p *page) { p.deliverString(s) })
		}),
		webview2.WebViewAddWebMessageReceived: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			return w.webMessageReceived.add(a[0], a[1])
		}),
		webview2.WebViewRemoveWebMessageReceived: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			return w.webMessageReceived.remove(com.EventToken(a[0]))
		}),
		webview2.WebViewGetBrowserProcessID: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			if a[0] == 0 {
				return com.E_POINTER
			}
			abi.WriteUint32(a[0], uint32(os.Getpid()))
			return com.S_OK
		}),
		webview2.WebViewGetCanGoBack: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			return writeBool(a[0], false)
		}),
		webview2.WebViewGetCanGoForward: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			return writeBool(a[0], false)
		}),
		webview2.WebViewStop: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			w.generation++
			return com.S_OK
		}),
		webview2.WebViewGetDocumentTitle: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			return writeString(a[0], w.page.title())
		}),
		webview2.WebViewOpenDevToolsWindow: webviewMethod(func(w *webView, a com.Args) com.HRESULT {
			Logger().Info("developer tools requested", zap.String("source", w.page.source))
			return com.S_OK
		}),
	})...)
