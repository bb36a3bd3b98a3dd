//go:build !windows

package main

import (
	"github.com/wippyai/webview2/config"
	"github.com/wippyai/webview2/errors"
	"github.com/wippyai/webview2/host"
	"github.com/wippyai/webview2/webview2"
)

func openNative(*config.Config) (host.Host, webview2.Loader, func(), error) {
	return nil, nil, nil, errors.Load("the native runtime requires Windows", nil)
}
