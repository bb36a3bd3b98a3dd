package webview2

import "github.com/wippyai/webview2/com"

// Handler interfaces the runtime calls back into.
var (
	createEnvironmentKind = com.NewHandlerKind("ICoreWebView2CreateCoreWebView2EnvironmentCompletedHandler",
		IID_CreateEnvironmentCompletedHandler, com.StatusArg, com.InterfaceArg(IID_ICoreWebView2Environment))

	createControllerKind = com.NewHandlerKind("ICoreWebView2CreateCoreWebView2ControllerCompletedHandler",
		IID_CreateControllerCompletedHandler, com.StatusArg, com.InterfaceArg(IID_ICoreWebView2Controller))

	addScriptKind = com.NewHandlerKind("ICoreWebView2AddScriptToExecuteOnDocumentCreatedCompletedHandler",
		IID_AddScriptToExecuteOnDocumentCreatedHandler, com.StatusArg, com.StringArg)

	executeScriptKind = com.NewHandlerKind("ICoreWebView2ExecuteScriptCompletedHandler",
		IID_ExecuteScriptCompletedHandler, com.StatusArg, com.StringArg)

	navigationCompletedKind = com.NewHandlerKind("ICoreWebView2NavigationCompletedEventHandler",
		IID_NavigationCompletedEventHandler, com.InterfaceArg(IID_ICoreWebView2), com.InterfaceArg(IID_ICoreWebView2NavigationCompletedEventArgs))

	webMessageReceivedKind = com.NewHandlerKind("ICoreWebView2WebMessageReceivedEventHandler",
		IID_WebMessageReceivedEventHandler, com.InterfaceArg(IID_ICoreWebView2), com.InterfaceArg(IID_ICoreWebView2WebMessageReceivedEventArgs))
)
