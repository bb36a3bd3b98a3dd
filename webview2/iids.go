package webview2

import "github.com/wippyai/webview2/com"

// Interface identifiers of the runtime's object model.
var (
	IID_ICoreWebView2                              = com.MustGUID("76eceacb-0462-4d94-ac83-423a6793775e")
	IID_ICoreWebView2Controller                    = com.MustGUID("4d00c0d1-9434-4eb6-8078-8697a560334f")
	IID_ICoreWebView2Environment                   = com.MustGUID("b96d755e-0319-4e92-a296-23436f46a1fc")
	IID_ICoreWebView2EnvironmentOptions            = com.MustGUID("2fde08a8-1e9a-4766-8c05-95a9ceb9d1c5")
	IID_ICoreWebView2Settings                      = com.MustGUID("e562e4f0-d7fa-43ac-8d71-c05150499f00")
	IID_ICoreWebView2NavigationCompletedEventArgs  = com.MustGUID("30d68b7d-20d9-4752-a9ca-ec8448fbb5c1")
	IID_ICoreWebView2WebMessageReceivedEventArgs   = com.MustGUID("0f99a40c-e962-4207-9e92-e3d542eff849")
	IID_CreateEnvironmentCompletedHandler          = com.MustGUID("4e8a3389-c9d8-4bd2-b6b5-124fee6cc14d")
	IID_CreateControllerCompletedHandler           = com.MustGUID("6c4819f3-c9b7-4260-8127-c9f5bde7f68c")
	IID_ExecuteScriptCompletedHandler              = com.MustGUID("49511172-cc67-4bca-9923-137112f4c4cc")
	IID_AddScriptToExecuteOnDocumentCreatedHandler = com.MustGUID("b99369f3-9b11-47b5-bc6f-8e7895fcea17")
	IID_NavigationCompletedEventHandler            = com.MustGUID("d33a35bf-1c49-4f98-93ab-006e0533fe1c")
	IID_WebMessageReceivedEventHandler             = com.MustGUID("57213f19-00e6-49fa-8e07-898ea01ecbd2")
)

// ICoreWebView2Environment slots.
const (
	EnvironmentCreateController          = 3
	EnvironmentCreateWebResourceResponse = 4
	EnvironmentGetBrowserVersionString   = 5
	EnvironmentAddNewBrowserVersion      = 6
	EnvironmentRemoveNewBrowserVersion   = 7
)

// ICoreWebView2Controller slots.
const (
	ControllerGetIsVisible   = 3
	ControllerPutIsVisible   = 4
	ControllerGetBounds      = 5
	ControllerPutBounds      = 6
	ControllerGetZoomFactor  = 7
	ControllerPutZoomFactor  = 8
	ControllerMoveFocus      = 12
	ControllerGetParent      = 21
	ControllerPutParent      = 22
	ControllerNotifyMoved    = 23
	ControllerClose          = 24
	ControllerGetCoreWebView = 25
)

// ICoreWebView2 slots.
const (
	WebViewGetSettings                   = 3
	WebViewGetSource                     = 4
	WebViewNavigate                      = 5
	WebViewNavigateToString              = 6
	WebViewAddNavigationCompleted        = 15
	WebViewRemoveNavigationCompleted     = 16
	WebViewAddScriptOnDocumentCreated    = 27
	WebViewRemoveScriptOnDocumentCreated = 28
	WebViewExecuteScript                 = 29
	WebViewCapturePreview                = 30
	WebViewReload                        = 31
	WebViewPostWebMessageAsJSON          = 32
	WebViewPostWebMessageAsString        = 33
	WebViewAddWebMessageReceived         = 34
	WebViewRemoveWebMessageReceived      = 35
	WebViewCallDevToolsProtocolMethod    = 36
	WebViewGetBrowserProcessID           = 37
	WebViewGetCanGoBack                  = 38
	WebViewGetCanGoForward               = 39
	WebViewGoBack                        = 40
	WebViewGoForward                     = 41
	WebViewStop                          = 43
	WebViewGetDocumentTitle              = 48
	WebViewOpenDevToolsWindow            = 51
)

// ICoreWebView2Settings slots. Each property has a getter followed by a
// setter.
const (
	SettingsIsScriptEnabled                = 3
	SettingsIsWebMessageEnabled            = 5
	SettingsAreDefaultScriptDialogsEnabled = 7
	SettingsIsStatusBarEnabled             = 9
	SettingsAreDevToolsEnabled             = 11
	SettingsAreDefaultContextMenusEnabled  = 13
	SettingsAreHostObjectsAllowed          = 15
	SettingsIsZoomControlEnabled           = 17
	SettingsIsBuiltInErrorPageEnabled      = 19
)

// ICoreWebView2NavigationCompletedEventArgs slots.
const (
	NavigationArgsIsSuccess      = 3
	NavigationArgsWebErrorStatus = 4
	NavigationArgsNavigationID   = 5
)

// ICoreWebView2WebMessageReceivedEventArgs slots.
const (
	MessageArgsSource              = 3
	MessageArgsWebMessageAsJSON    = 4
	MessageArgsTryGetMessageString = 5
)

// ICoreWebView2EnvironmentOptions slots.
const (
	OptionsGetAdditionalBrowserArguments = 3
	OptionsPutAdditionalBrowserArguments = 4
	OptionsGetLanguage                   = 5
	OptionsPutLanguage                   = 6
	OptionsGetTargetCompatibleVersion    = 7
	OptionsPutTargetCompatibleVersion    = 8
	OptionsGetAllowSSO                   = 9
	OptionsPutAllowSSO                   = 10
)
