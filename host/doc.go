// Package host provides the window and message-queue collaborator the
// bridge pumps while it waits for completions.
//
// Queue is the minimal surface: retrieve, translate, dispatch and post a
// thread message. Host adds windows, whose procedures live in an explicit
// side-table keyed by HWND instead of per-window platform storage.
//
// Thread is a portable in-process queue. On Windows, NewWin32 binds the
// calling OS thread's native queue; the caller must keep the goroutine
// locked to that thread.
package host
