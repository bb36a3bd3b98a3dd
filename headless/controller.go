package headless

import (
	"go.uber.org/zap"

	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/host"
	"github.com/wippyai/webview2/webview2"
)

type controller struct {
	parent  host.HWND
	bounds  [4]int32
	webview *com.Object
	visible bool
	closed  bool
}

func newController(rt *Runtime, parent host.HWND, cfg envConfig) *com.Object {
	return controllerClass.New(&controller{
		parent:  parent,
		visible: true,
		webview: newWebView(rt, cfg),
	})
}

func (c *controller) close() com.HRESULT {
	if c.closed {
		return errInvalidState
	}
	c.closed = true
	c.webview.Impl().(*webView).close()
	Logger().Debug("controller closed", zap.Uintptr("parent", uintptr(c.parent)))
	return com.S_OK
}

func (c *controller) Drop() {
	c.webview.Release()
}

// controllerMethod guards m against use after Close.
func controllerMethod(m func(c *controller, a com.Args) com.HRESULT) com.Method {
	return func(o *com.Object, a com.Args) com.HRESULT {
		c := o.Impl().(*controller)
		if c.closed {
			return errInvalidState
		}
		return m(c, a)
	}
}

var controllerClass = com.NewClass("headless.Controller",
	[]com.GUID{webview2.IID_ICoreWebView2Controller},
	slots(26, map[int]com.Method{
		webview2.ControllerGetIsVisible: controllerMethod(func(c *controller, a com.Args) com.HRESULT {
			return writeBool(a[0], c.visible)
		}),
		webview2.ControllerPutIsVisible: controllerMethod(func(c *controller, a com.Args) com.HRESULT {
			c.visible = int32(a[0]) != 0
			return com.S_OK
		}),
		webview2.ControllerGetBounds: controllerMethod(func(c *controller, a com.Args) com.HRESULT {
			if a[0] == 0 {
				return com.E_POINTER
			}
			for i, v := range c.bounds {
				abi.WriteInt32(a[0]+uintptr(i)*4, v)
			}
			return com.S_OK
		}),
		webview2.ControllerPutBounds: controllerMethod(func(c *controller, a com.Args) com.HRESULT {
			if a[0] == 0 {
				return com.E_POINTER
			}
			for i := range c.bounds {
				c.bounds[i] = abi.ReadInt32(a[0] + uintptr(i)*4)
			}
			return com.S_OK
		}),
		webview2.ControllerGetParent: controllerMethod(func(c *controller, a com.Args) com.HRESULT {
			if a[0] == 0 {
				return com.E_POINTER
			}
			abi.WriteUintptr(a[0], uintptr(c.parent))
			return com.S_OK
		}),
		webview2.ControllerPutParent: controllerMethod(func(c *controller, a com.Args) com.HRESULT {
			if a[0] == 0 {
				return com.HRESULTFromWin32(com.ErrorInvalidWindowHandle)
			}
			c.parent = host.HWND(a[0])
			return com.S_OK
		}),
		webview2.ControllerNotifyMoved: controllerMethod(func(c *controller, a com.Args) com.HRESULT {
			return com.S_OK
		}),
		webview2.ControllerClose: func(o *com.Object, a com.Args) com.HRESULT {
			return o.Impl().(*controller).close()
		},
		webview2.ControllerGetCoreWebView: controllerMethod(func(c *controller, a com.Args) com.HRESULT {
			if a[0] == 0 {
				return com.E_POINTER
			}
			c.webview.AddRef()
			abi.WriteUintptr(a[0], c.webview.Raw())
			return com.S_OK
		}),
	})...)
