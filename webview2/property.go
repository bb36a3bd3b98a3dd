package webview2

import (
	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/errors"
)

func call(u *com.Unknown, iface, method string, slot int, args ...uintptr) error {
	if u.Closed() {
		return errors.AlreadyClosed(iface)
	}
	if hr := u.Call(slot, args...); hr.Failed() {
		return errors.Rejected(iface, method, hr.Code())
	}
	return nil
}

func getStringProperty(u *com.Unknown, iface string, slot int) (string, error) {
	out := abi.NewWord()
	defer out.Free()
	if err := call(u, iface, "get", slot, out.Addr()); err != nil {
		return "", err
	}
	return com.FreeStringArg(out.Uintptr()), nil
}

func getBoolProperty(u *com.Unknown, iface string, slot int) (bool, error) {
	out := abi.NewWord()
	defer out.Free()
	if err := call(u, iface, "get", slot, out.Addr()); err != nil {
		return false, err
	}
	return out.Bool(), nil
}

func putBoolProperty(u *com.Unknown, iface string, slot int, v bool) error {
	return call(u, iface, "put", slot, abi.Bool(v))
}

func putStringArg(u *com.Unknown, iface, method string, slot int, s string) error {
	p := com.AllocString(s)
	defer abi.Free(p)
	return call(u, iface, method, slot, p)
}
