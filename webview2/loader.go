package webview2

import (
	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/errors"
)

// Loader is the flat entry-point surface of a runtime. Arguments are raw
// words: zero-terminated UTF-16 strings, object pointers and out-parameter
// addresses, exactly as the exported functions take them.
type Loader interface {
	CreateCoreWebView2EnvironmentWithOptions(browserFolder, userDataFolder, options, handler uintptr) com.HRESULT
	GetAvailableCoreWebView2BrowserVersionString(browserFolder, versionOut uintptr) com.HRESULT
	CompareBrowserVersions(v1, v2, resultOut uintptr) com.HRESULT
}

// optionalString encodes s for a nullable string parameter.
func optionalString(s string) uintptr {
	if s == "" {
		return 0
	}
	return com.AllocString(s)
}

// GetAvailableBrowserVersionString returns the version of the runtime that
// would be used for browserFolder, or the installed one when empty.
func GetAvailableBrowserVersionString(loader Loader, browserFolder string) (string, error) {
	folder := optionalString(browserFolder)
	defer abi.Free(folder)
	out := abi.NewWord()
	defer out.Free()

	if hr := loader.GetAvailableCoreWebView2BrowserVersionString(folder, out.Addr()); hr.Failed() {
		return "", errors.Rejected("", "GetAvailableCoreWebView2BrowserVersionString", hr.Code())
	}
	return com.FreeStringArg(out.Uintptr()), nil
}

// CompareBrowserVersions returns -1, 0 or 1 as a is older than, equal to or
// newer than b.
func CompareBrowserVersions(loader Loader, a, b string) (int, error) {
	pa := com.AllocString(a)
	defer abi.Free(pa)
	pb := com.AllocString(b)
	defer abi.Free(pb)
	out := abi.NewWord()
	defer out.Free()

	if hr := loader.CompareBrowserVersions(pa, pb, out.Addr()); hr.Failed() {
		return 0, errors.New(errors.PhaseCall, errors.KindRejected).
			Method("CompareBrowserVersions").
			Code(hr.Code()).
			Detail("compare %q with %q", a, b).
			Build()
	}
	switch r := out.Int32(); {
	case r < 0:
		return -1, nil
	case r > 0:
		return 1, nil
	}
	return 0, nil
}
