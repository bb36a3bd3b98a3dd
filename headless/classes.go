package headless

import (
	"github.com/tidwall/gjson"

	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/webview2"
)

// errInvalidState answers calls on closed objects.
var errInvalidState = com.HRESULTFromWin32(com.ErrorInvalidState)

// slots lays methods out by vtable index for an interface with count slots.
func slots(count int, m map[int]com.Method) []com.Method {
	out := make([]com.Method, count-3)
	for slot, fn := range m {
		out[slot-3] = fn
	}
	return out
}

func writeString(out uintptr, s string) com.HRESULT {
	if out == 0 {
		return com.E_POINTER
	}
	abi.WriteUintptr(out, com.AllocString(s))
	return com.S_OK
}

func writeBool(out uintptr, b bool) com.HRESULT {
	if out == 0 {
		return com.E_POINTER
	}
	abi.WriteInt32(out, int32(abi.Bool(b)))
	return com.S_OK
}

// settings holds the feature switches of one webview, in getter order.
type settings struct {
	values [9]bool
}

func newSettings() *com.Object {
	s := &settings{}
	for i := range s.values {
		s.values[i] = true
	}
	return settingsClass.New(s)
}

func (s *settings) get(slot int) bool { return s.values[(slot-3)/2] }

func settingsMethods() map[int]com.Method {
	m := make(map[int]com.Method)
	for i := 0; i < 9; i++ {
		idx := i
		m[3+2*i] = func(o *com.Object, a com.Args) com.HRESULT {
			return writeBool(a[0], o.Impl().(*settings).values[idx])
		}
		m[4+2*i] = func(o *com.Object, a com.Args) com.HRESULT {
			o.Impl().(*settings).values[idx] = int32(a[0]) != 0
			return com.S_OK
		}
	}
	return m
}

var settingsClass = com.NewClass("headless.Settings",
	[]com.GUID{webview2.IID_ICoreWebView2Settings},
	slots(21, settingsMethods())...)

// navigationArgs carries the outcome of one navigation.
type navigationArgs struct {
	webview2.NavigationResult
}

var navigationArgsClass = com.NewClass("headless.NavigationCompletedEventArgs",
	[]com.GUID{webview2.IID_ICoreWebView2NavigationCompletedEventArgs},
	slots(6, map[int]com.Method{
		webview2.NavigationArgsIsSuccess: func(o *com.Object, a com.Args) com.HRESULT {
			return writeBool(a[0], o.Impl().(*navigationArgs).IsSuccess)
		},
		webview2.NavigationArgsWebErrorStatus: func(o *com.Object, a com.Args) com.HRESULT {
			if a[0] == 0 {
				return com.E_POINTER
			}
			abi.WriteInt32(a[0], o.Impl().(*navigationArgs).WebErrorStatus)
			return com.S_OK
		},
		webview2.NavigationArgsNavigationID: func(o *com.Object, a com.Args) com.HRESULT {
			if a[0] == 0 {
				return com.E_POINTER
			}
			abi.WriteInt64(a[0], int64(o.Impl().(*navigationArgs).NavigationID))
			return com.S_OK
		},
	})...)

// messageArgs carries one message posted by page script.
type messageArgs struct {
	source string
	json   string
}

var messageArgsClass = com.NewClass("headless.WebMessageReceivedEventArgs",
	[]com.GUID{webview2.IID_ICoreWebView2WebMessageReceivedEventArgs},
	slots(6, map[int]com.Method{
		webview2.MessageArgsSource: func(o *com.Object, a com.Args) com.HRESULT {
			return writeString(a[0], o.Impl().(*messageArgs).source)
		},
		webview2.MessageArgsWebMessageAsJSON: func(o *com.Object, a com.Args) com.HRESULT {
			return writeString(a[0], o.Impl().(*messageArgs).json)
		},
		webview2.MessageArgsTryGetMessageString: func(o *com.Object, a com.Args) com.HRESULT {
			r := gjson.Parse(o.Impl().(*messageArgs).json)
			if r.Type != gjson.String {
				return com.E_INVALIDARG
			}
			return writeString(a[0], r.String())
		},
	})...)
