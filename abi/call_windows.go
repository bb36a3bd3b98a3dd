//go:build windows

package abi

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// Call invokes the native code pointer fn.
func Call(fn uintptr, args ...uintptr) uintptr {
	r, _, _ := syscall.SyscallN(fn, args...)
	return r
}

// NewCallback returns a native code pointer that calls fn. fn must take only
// uintptr-sized arguments and return a single uintptr. Callbacks are never
// released; create them once per vtable slot.
func NewCallback(fn any) uintptr {
	return windows.NewCallback(fn)
}
