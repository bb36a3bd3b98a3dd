// Package webview2 exposes the browser runtime's object model as owned Go
// values.
//
// Every operation that completes through a callback is synchronous here: the
// method issues the foreign call and pumps the calling thread's messages
// until the runtime invokes the completion handler. All methods must be
// called on the thread that owns the pump passed to NewEnvironment.
//
//	pump := bridge.NewPump(queue)
//	env, err := webview2.NewEnvironment(ctx, loader, pump)
//	if err != nil {
//		return err
//	}
//	defer env.Close()
//
//	ctrl, err := env.CreateController(ctx, hwnd)
//	...
//	view, err := ctrl.WebView()
//	json, err := view.ExecuteScript(ctx, `"foo" + "bar"`)
//
// Loaders provide the flat entry points: the native package loads the
// installed runtime on Windows, and the headless package implements the
// runtime in process.
package webview2
