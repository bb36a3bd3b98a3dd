package webview2

import (
	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/bridge"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/errors"
	"github.com/wippyai/webview2/host"
)

const ifaceController = "ICoreWebView2Controller"

// Controller is an owned controller: the host-window side of a webview.
type Controller struct {
	u       *com.Unknown
	pump    *bridge.Pump
	webview *WebView
}

// Unknown returns the underlying reference.
func (c *Controller) Unknown() *com.Unknown { return c.u }

// IsVisible reports whether the webview is shown.
func (c *Controller) IsVisible() (bool, error) {
	return getBoolProperty(c.u, ifaceController, ControllerGetIsVisible)
}

// SetVisible shows or hides the webview.
func (c *Controller) SetVisible(visible bool) error {
	return putBoolProperty(c.u, ifaceController, ControllerPutIsVisible, visible)
}

// Bounds returns the webview rectangle within the parent window.
func (c *Controller) Bounds() (Bounds, error) {
	out := abi.NewOut(16)
	defer out.Free()
	if err := call(c.u, ifaceController, "get_Bounds", ControllerGetBounds, out.Addr()); err != nil {
		return Bounds{}, err
	}
	return Bounds{
		Left:   out.Int32At(0),
		Top:    out.Int32At(1),
		Right:  out.Int32At(2),
		Bottom: out.Int32At(3),
	}, nil
}

// SetBounds moves the webview within the parent window.
func (c *Controller) SetBounds(b Bounds) error {
	rect := abi.NewOut(16)
	defer rect.Free()
	for i, v := range []int32{b.Left, b.Top, b.Right, b.Bottom} {
		abi.WriteInt32(rect.Addr()+uintptr(i)*4, v)
	}
	// RECT is larger than a register, so it travels by reference.
	return call(c.u, ifaceController, "put_Bounds", ControllerPutBounds, rect.Addr())
}

// ParentWindow returns the hosting window.
func (c *Controller) ParentWindow() (host.HWND, error) {
	out := abi.NewWord()
	defer out.Free()
	if err := call(c.u, ifaceController, "get_ParentWindow", ControllerGetParent, out.Addr()); err != nil {
		return 0, err
	}
	return host.HWND(out.Uintptr()), nil
}

// SetParentWindow moves the webview to another window.
func (c *Controller) SetParentWindow(parent host.HWND) error {
	return call(c.u, ifaceController, "put_ParentWindow", ControllerPutParent, uintptr(parent))
}

// NotifyParentWindowPositionChanged tells the runtime the parent moved.
func (c *Controller) NotifyParentWindowPositionChanged() error {
	return call(c.u, ifaceController, "NotifyParentWindowPositionChanged", ControllerNotifyMoved)
}

// WebView returns the webview hosted by the controller. The result is
// cached until the caller closes it; it stays usable after the controller is
// closed until it is closed itself.
func (c *Controller) WebView() (*WebView, error) {
	if c.webview != nil && !c.webview.u.Closed() {
		return c.webview, nil
	}
	c.webview = nil
	out := abi.NewWord()
	defer out.Free()
	if err := call(c.u, ifaceController, "get_CoreWebView2", ControllerGetCoreWebView, out.Addr()); err != nil {
		return nil, err
	}
	u := com.Attach(out.Uintptr())
	if u == nil {
		return nil, errors.New(errors.PhaseCall, errors.KindNotFound).
			Interface(ifaceController).
			Method("get_CoreWebView2").
			Detail("controller has no webview").
			Build()
	}
	c.webview = &WebView{u: u, pump: c.pump}
	return c.webview, nil
}

// Close closes the controller in the runtime and releases it. The first
// call succeeds; later calls return an already_closed error.
func (c *Controller) Close() error {
	if c.u.Closed() {
		return errors.AlreadyClosed("controller")
	}
	hr := c.u.Call(ControllerClose)
	c.u.Close()
	if hr.Failed() {
		return errors.New(errors.PhaseClose, errors.KindRejected).
			Interface(ifaceController).
			Method("Close").
			Code(hr.Code()).
			Build()
	}
	return nil
}
