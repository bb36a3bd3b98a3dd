//go:build windows

package host

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procGetMessageW        = user32.NewProc("GetMessageW")
	procTranslateMessage   = user32.NewProc("TranslateMessage")
	procDispatchMessageW   = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW = user32.NewProc("PostThreadMessageW")
	procPostMessageW       = user32.NewProc("PostMessageW")
	procPostQuitMessage    = user32.NewProc("PostQuitMessage")
	procRegisterClassExW   = user32.NewProc("RegisterClassExW")
	procCreateWindowExW    = user32.NewProc("CreateWindowExW")
	procDestroyWindow      = user32.NewProc("DestroyWindow")
	procDefWindowProcW     = user32.NewProc("DefWindowProcW")
)

const hwndMessage = ^uintptr(2) // HWND_MESSAGE (-3)

type wndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

var (
	classOnce sync.Once
	classErr  error
	className = windows.StringToUTF16Ptr("WebView2BridgeMessageWindow")

	procs   = map[HWND]WndProc{}
	procsMu sync.RWMutex
)

func registerClass() error {
	classOnce.Do(func() {
		wc := wndClassEx{
			WndProc:   windows.NewCallback(wndProc),
			ClassName: className,
		}
		wc.Size = uint32(unsafe.Sizeof(wc))
		if r, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); r == 0 {
			classErr = fmt.Errorf("host: RegisterClassExW: %w", err)
		}
	})
	return classErr
}

func wndProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	procsMu.RLock()
	proc := procs[HWND(hwnd)]
	procsMu.RUnlock()
	if proc != nil {
		return proc(HWND(hwnd), uint32(msg), wParam, lParam)
	}
	r, _, _ := procDefWindowProcW.Call(hwnd, msg, wParam, lParam)
	return r
}

// Win32 is the native queue of one OS thread.
type Win32 struct {
	tid uint32
}

// NewWin32 binds the calling thread's queue. Call runtime.LockOSThread first.
func NewWin32() *Win32 {
	return &Win32{tid: windows.GetCurrentThreadId()}
}

func (q *Win32) ThreadID() uint32 { return q.tid }

func (q *Win32) GetMessage(msg *Msg) int32 {
	r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(msg)), 0, 0, 0)
	return int32(r)
}

func (q *Win32) TranslateMessage(msg *Msg) {
	procTranslateMessage.Call(uintptr(unsafe.Pointer(msg)))
}

func (q *Win32) DispatchMessage(msg *Msg) uintptr {
	r, _, _ := procDispatchMessageW.Call(uintptr(unsafe.Pointer(msg)))
	return r
}

func (q *Win32) PostThreadMessage(threadID uint32, msg uint32, wParam, lParam uintptr) error {
	r, _, err := procPostThreadMessageW.Call(uintptr(threadID), uintptr(msg), wParam, lParam)
	if r == 0 {
		return fmt.Errorf("host: PostThreadMessageW: %w", err)
	}
	return nil
}

func (q *Win32) PostMessage(hwnd HWND, msg uint32, wParam, lParam uintptr) error {
	r, _, err := procPostMessageW.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	if r == 0 {
		return fmt.Errorf("host: PostMessageW: %w", err)
	}
	return nil
}

func (q *Win32) PostQuitMessage(code int32) {
	procPostQuitMessage.Call(uintptr(code))
}

// CreateWindow creates a message-only window whose messages go to proc.
func (q *Win32) CreateWindow(proc WndProc) (HWND, error) {
	if err := registerClass(); err != nil {
		return 0, err
	}
	r, _, err := procCreateWindowExW.Call(0,
		uintptr(unsafe.Pointer(className)), 0, 0,
		0, 0, 0, 0,
		hwndMessage, 0, 0, 0)
	if r == 0 {
		return 0, fmt.Errorf("host: CreateWindowExW: %w", err)
	}
	procsMu.Lock()
	procs[HWND(r)] = proc
	procsMu.Unlock()
	return HWND(r), nil
}

func (q *Win32) DestroyWindow(hwnd HWND) error {
	r, _, err := procDestroyWindow.Call(uintptr(hwnd))
	procsMu.Lock()
	delete(procs, hwnd)
	procsMu.Unlock()
	if r == 0 {
		return fmt.Errorf("host: DestroyWindow: %w", err)
	}
	return nil
}

var _ Host = (*Win32)(nil)
