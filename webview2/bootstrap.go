package webview2

import "context"

// BootstrapScript routes window.external.invoke to the host message channel.
const BootstrapScript = `window.external={invoke:s=>window.chrome.webview.postMessage(s)}`

// Bootstrap installs BootstrapScript on every new document of w and returns
// the script identifier.
func Bootstrap(ctx context.Context, w *WebView) (string, error) {
	return w.AddScriptToExecuteOnDocumentCreated(ctx, BootstrapScript)
}
