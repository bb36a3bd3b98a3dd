package host

// HWND identifies a window.
type HWND uintptr

// POINT is a screen position.
type POINT struct {
	X, Y int32
}

// Msg mirrors the native MSG record.
type Msg struct {
	Hwnd     HWND
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       POINT
	LPrivate uint32
}

// Message identifiers.
const (
	WM_DESTROY = 0x0002
	WM_CLOSE   = 0x0010
	WM_QUIT    = 0x0012
	WM_USER    = 0x0400
	WM_APP     = 0x8000
)

// WndProc handles messages dispatched to one window.
type WndProc func(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr

// Queue is the per-thread message queue. GetMessage blocks and returns a
// positive value for an ordinary message, 0 once WM_QUIT is retrieved and -1
// on failure.
type Queue interface {
	GetMessage(msg *Msg) int32
	TranslateMessage(msg *Msg)
	DispatchMessage(msg *Msg) uintptr
	PostThreadMessage(threadID uint32, msg uint32, wParam, lParam uintptr) error
	ThreadID() uint32
}

// Host is a Queue that can also own windows. Window procedures are kept in a
// side-table keyed by HWND and consulted when a message is dispatched.
type Host interface {
	Queue
	CreateWindow(proc WndProc) (HWND, error)
	DestroyWindow(hwnd HWND) error
	PostMessage(hwnd HWND, msg uint32, wParam, lParam uintptr) error
	PostQuitMessage(code int32)
}
