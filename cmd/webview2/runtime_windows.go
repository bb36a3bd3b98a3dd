//go:build windows

package main

import (
	"github.com/wippyai/webview2/config"
	"github.com/wippyai/webview2/host"
	"github.com/wippyai/webview2/native"
	"github.com/wippyai/webview2/webview2"
)

func openNative(cfg *config.Config) (host.Host, webview2.Loader, func(), error) {
	if err := native.InitializeThread(); err != nil {
		return nil, nil, nil, err
	}
	loader, err := native.Load(cfg.LoaderPath)
	if err != nil {
		return nil, nil, nil, err
	}
	return host.NewWin32(), loader, func() {}, nil
}
