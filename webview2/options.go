package webview2

import (
	"sync"

	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/com"
)

// EnvironmentOptions configures environment creation. The runtime reads it
// through the ICoreWebView2EnvironmentOptions interface.
type EnvironmentOptions struct {
	AdditionalBrowserArguments             string
	Language                               string
	TargetCompatibleBrowserVersion         string
	AllowSingleSignOnUsingOSPrimaryAccount bool
}

type optionsObject struct {
	opts EnvironmentOptions
	mu   sync.Mutex
}

func getString(field func(*EnvironmentOptions) *string) com.Method {
	return func(o *com.Object, a com.Args) com.HRESULT {
		if a[0] == 0 {
			return com.E_POINTER
		}
		s := o.Impl().(*optionsObject)
		s.mu.Lock()
		defer s.mu.Unlock()
		abi.WriteUintptr(a[0], com.AllocString(*field(&s.opts)))
		return com.S_OK
	}
}

func putString(field func(*EnvironmentOptions) *string) com.Method {
	return func(o *com.Object, a com.Args) com.HRESULT {
		s := o.Impl().(*optionsObject)
		s.mu.Lock()
		defer s.mu.Unlock()
		*field(&s.opts) = com.StringArg(a[0])
		return com.S_OK
	}
}

var optionsClass = com.NewClass("ICoreWebView2EnvironmentOptions",
	[]com.GUID{IID_ICoreWebView2EnvironmentOptions},
	getString(func(o *EnvironmentOptions) *string { return &o.AdditionalBrowserArguments }),
	putString(func(o *EnvironmentOptions) *string { return &o.AdditionalBrowserArguments }),
	getString(func(o *EnvironmentOptions) *string { return &o.Language }),
	putString(func(o *EnvironmentOptions) *string { return &o.Language }),
	getString(func(o *EnvironmentOptions) *string { return &o.TargetCompatibleBrowserVersion }),
	putString(func(o *EnvironmentOptions) *string { return &o.TargetCompatibleBrowserVersion }),
	func(o *com.Object, a com.Args) com.HRESULT {
		if a[0] == 0 {
			return com.E_POINTER
		}
		s := o.Impl().(*optionsObject)
		s.mu.Lock()
		defer s.mu.Unlock()
		abi.WriteInt32(a[0], int32(abi.Bool(s.opts.AllowSingleSignOnUsingOSPrimaryAccount)))
		return com.S_OK
	},
	func(o *com.Object, a com.Args) com.HRESULT {
		s := o.Impl().(*optionsObject)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.opts.AllowSingleSignOnUsingOSPrimaryAccount = int32(a[0]) != 0
		return com.S_OK
	},
)

// object exports a snapshot of the options with reference count 1.
func (o *EnvironmentOptions) object() *com.Object {
	return optionsClass.New(&optionsObject{opts: *o})
}

// ReadEnvironmentOptions reads every property of a foreign options object.
func ReadEnvironmentOptions(u *com.Unknown) (EnvironmentOptions, error) {
	var opts EnvironmentOptions
	strs := []struct {
		slot  int
		value *string
	}{
		{OptionsGetAdditionalBrowserArguments, &opts.AdditionalBrowserArguments},
		{OptionsGetLanguage, &opts.Language},
		{OptionsGetTargetCompatibleVersion, &opts.TargetCompatibleBrowserVersion},
	}
	for _, f := range strs {
		s, err := getStringProperty(u, "ICoreWebView2EnvironmentOptions", f.slot)
		if err != nil {
			return opts, err
		}
		*f.value = s
	}
	sso, err := getBoolProperty(u, "ICoreWebView2EnvironmentOptions", OptionsGetAllowSSO)
	if err != nil {
		return opts, err
	}
	opts.AllowSingleSignOnUsingOSPrimaryAccount = sso
	return opts, nil
}
