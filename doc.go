// Package webview2 is a Go bridge to the WebView2 browser runtime's COM
// object model.
//
// Go code drives the runtime's callback-based API as ordinary blocking calls:
// each call issues the foreign request and pumps the calling thread's
// message queue until the runtime reports back.
//
// # Architecture Overview
//
//	webview2/           Root package (documentation only)
//	├── abi/            Native calls, callbacks, native memory and UTF-16 buffers
//	├── errors/         Structured error types
//	├── resource/       Handle tables with lifecycle observers
//	├── com/            HRESULT, GUID, foreign references and Go-implemented objects
//	├── host/           Thread message queues and message-only windows
//	├── bridge/         One-shot channels, message pump, completions and events
//	├── webview2/       Environment, controller and webview facades
//	├── headless/       In-process runtime used off Windows and in tests
//	├── native/         WebView2Loader.dll on Windows
//	├── config/         YAML and environment configuration
//	└── cmd/webview2/   Command line tool
//
// # Quick Start
//
// Evaluate a script in a headless webview:
//
//	thread := host.NewThread()
//	rt, _ := headless.New(thread)
//	pump := bridge.NewPump(thread)
//
//	env, err := webview2.NewEnvironment(ctx, rt, pump)
//	if err != nil {
//		return err
//	}
//	defer env.Close()
//
//	parent, _ := thread.CreateWindow(proc)
//	ctrl, err := env.CreateController(ctx, parent)
//	if err != nil {
//		return err
//	}
//	defer ctrl.Close()
//
//	view, _ := ctrl.WebView()
//	json, err := view.ExecuteScript(ctx, `"foo" + "bar"`)
//
// # Threading
//
// The runtime is single-threaded. Every object belongs to the thread that
// created its environment, and every blocking call pumps that thread's queue.
// Other goroutines hand work to the owning thread through the pump's
// Dispatcher.
//
// # Ownership
//
// Foreign references are owned by exactly one Go value and released once by
// Close. Objects Go hands to the runtime are reference counted in native
// memory and hold no Go pointers; their Go state lives in a handle table
// until the last reference is released.
package webview2
