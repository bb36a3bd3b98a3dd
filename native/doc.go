// Package native loads the installed browser runtime through
// WebView2Loader.dll. It is only functional on Windows.
package native
