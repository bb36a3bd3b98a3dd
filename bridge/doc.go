// Package bridge turns callback-style foreign operations into ordinary
// blocking calls and revocable subscriptions.
//
// A foreign asynchronous call takes a handler object and reports its result
// by invoking it later, as a message on the calling thread's queue. Complete
// pairs a one-shot handler shim with a one-shot channel, issues the call, and
// runs the Pump until the channel resolves:
//
//	script, err := bridge.Complete(ctx, pump, executeScriptKind, "ExecuteScript",
//		func(handler uintptr) com.HRESULT {
//			return webview.Call(slotExecuteScript, js, handler)
//		},
//		func(hr com.HRESULT, json string) (string, error) {
//			return json, bridge.Status(hr, "ICoreWebView2", "ExecuteScript")
//		})
//
// Waiting never blocks the thread without dispatching: Await retrieves and
// dispatches messages, one at a time, and checks the channel between them.
// A quit message ends the wait with a pump_terminated error, a retrieval
// failure with pump_failed.
//
// Register is the recurring counterpart. It installs a handler that stays
// registered until Subscription.Unregister.
//
// Work from other goroutines reaches the owning thread through the pump's
// Dispatcher, which queues the task and posts a wake-up thread message.
package bridge
