//go:build windows

package native

import (
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/errors"
	"github.com/wippyai/webview2/webview2"
)

// DefaultDLL is the loader searched for when no path is given.
const DefaultDLL = "WebView2Loader.dll"

// Loader calls the flat exports of a loaded WebView2Loader.dll.
type Loader struct {
	dll     *windows.LazyDLL
	create  *windows.LazyProc
	version *windows.LazyProc
	compare *windows.LazyProc
}

// Load loads the loader DLL at path, or DefaultDLL from the search path
// when path is empty, and resolves its exports.
func Load(path string) (*Loader, error) {
	if path == "" {
		path = DefaultDLL
	}
	dll := windows.NewLazyDLL(path)
	if err := dll.Load(); err != nil {
		return nil, errors.Load("load "+path, err)
	}

	l := &Loader{
		dll:     dll,
		create:  dll.NewProc("CreateCoreWebView2EnvironmentWithOptions"),
		version: dll.NewProc("GetAvailableCoreWebView2BrowserVersionString"),
		compare: dll.NewProc("CompareBrowserVersions"),
	}
	for _, p := range []*windows.LazyProc{l.create, l.version, l.compare} {
		if err := p.Find(); err != nil {
			return nil, errors.Load("resolve "+p.Name, err)
		}
	}
	webview2.Logger().Debug("runtime loader loaded", zap.String("path", path))
	return l, nil
}

// InitializeThread locks the calling goroutine to its OS thread and enters
// a single-threaded apartment, as the runtime requires of the thread that
// creates environments and pumps their messages.
func InitializeThread() error {
	runtime.LockOSThread()
	err := windows.CoInitializeEx(0, windows.COINIT_APARTMENTTHREADED)
	if err != nil && err != windows.Errno(com.S_FALSE) {
		return errors.Load("enter apartment", err)
	}
	return nil
}

func (l *Loader) CreateCoreWebView2EnvironmentWithOptions(browserFolder, userDataFolder, options, handler uintptr) com.HRESULT {
	return call(l.create, browserFolder, userDataFolder, options, handler)
}

func (l *Loader) GetAvailableCoreWebView2BrowserVersionString(browserFolder, versionOut uintptr) com.HRESULT {
	return call(l.version, browserFolder, versionOut)
}

func (l *Loader) CompareBrowserVersions(v1, v2, resultOut uintptr) com.HRESULT {
	return call(l.compare, v1, v2, resultOut)
}

func call(p *windows.LazyProc, args ...uintptr) com.HRESULT {
	return com.HRESULT(int32(uint32(abi.Call(p.Addr(), args...))))
}

var _ webview2.Loader = (*Loader)(nil)
