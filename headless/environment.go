package headless

import (
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/host"
	"github.com/wippyai/webview2/webview2"
)

// envConfig is the environment state fixed at creation.
type envConfig struct {
	browserFolder  string
	userDataFolder string
	arguments      string
	language       language.Tag
	sso            bool
}

// apply validates opts against the runtime version and merges them.
func (c *envConfig) apply(opts webview2.EnvironmentOptions, version string) com.HRESULT {
	if opts.Language != "" {
		tag, err := language.Parse(opts.Language)
		if err != nil {
			Logger().Debug("invalid language option", zap.String("language", opts.Language), zap.Error(err))
			return com.E_INVALIDARG
		}
		c.language = tag
	}
	if target := opts.TargetCompatibleBrowserVersion; target != "" {
		cmp, err := compareVersions(version, target)
		if err != nil {
			return com.E_INVALIDARG
		}
		if cmp < 0 {
			return com.HRESULTFromWin32(com.ErrorFileNotFound)
		}
	}
	c.arguments = opts.AdditionalBrowserArguments
	c.sso = opts.AllowSingleSignOnUsingOSPrimaryAccount
	return com.S_OK
}

type environment struct {
	rt             *Runtime
	cfg            envConfig
	versionChanged eventList
}

func newEnvironment(rt *Runtime, cfg envConfig) *com.Object {
	return environmentClass.New(&environment{rt: rt, cfg: cfg})
}

func (e *environment) createController(parent host.HWND, handler uintptr) com.HRESULT {
	if parent == 0 {
		return com.HRESULTFromWin32(com.ErrorInvalidWindowHandle)
	}
	if handler == 0 {
		return com.E_POINTER
	}

	h := com.Acquire(handler)
	err := e.rt.post(func(canceled bool) {
		defer h.Close()
		if canceled {
			return
		}
		ctrl := newController(e.rt, parent, e.cfg)
		defer ctrl.Release()
		h.Call(com.SlotInvoke, com.S_OK.Word(), ctrl.Raw())
	})
	if err != nil {
		h.Close()
		return com.E_UNEXPECTED
	}
	return com.S_OK
}

func (e *environment) Drop() {
	e.versionChanged.clear()
}

var environmentClass = com.NewClass("headless.Environment",
	[]com.GUID{webview2.IID_ICoreWebView2Environment},
	slots(8, map[int]com.Method{
		webview2.EnvironmentCreateController: func(o *com.Object, a com.Args) com.HRESULT {
			return o.Impl().(*environment).createController(host.HWND(a[0]), a[1])
		},
		webview2.EnvironmentGetBrowserVersionString: func(o *com.Object, a com.Args) com.HRESULT {
			return writeString(a[0], o.Impl().(*environment).rt.version)
		},
		webview2.EnvironmentAddNewBrowserVersion: func(o *com.Object, a com.Args) com.HRESULT {
			return o.Impl().(*environment).versionChanged.add(a[0], a[1])
		},
		webview2.EnvironmentRemoveNewBrowserVersion: func(o *com.Object, a com.Args) com.HRESULT {
			return o.Impl().(*environment).versionChanged.remove(com.EventToken(a[0]))
		},
	})...)
