//go:build windows

package abi

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	ole32              = windows.NewLazySystemDLL("ole32.dll")
	procCoTaskMemAlloc = ole32.NewProc("CoTaskMemAlloc")

	allocs atomic.Uint64
	frees  atomic.Uint64
)

// Alloc returns size bytes of zeroed task memory.
func Alloc(size uintptr) uintptr {
	if size == 0 {
		size = 1
	}
	p, _, _ := procCoTaskMemAlloc.Call(size)
	if p == 0 {
		panic("abi: CoTaskMemAlloc failed")
	}
	zero(p, size)
	allocs.Add(1)
	return p
}

// Free releases task memory, including buffers allocated by the runtime on
// the caller's behalf. Free(0) is a no-op.
func Free(p uintptr) {
	if p == 0 {
		return
	}
	windows.CoTaskMemFree(unsafe.Pointer(p))
	frees.Add(1)
}

// ReadStats returns a snapshot of allocator counters. Buffers allocated by the
// runtime and freed here count as frees without a matching alloc.
func ReadStats() Stats {
	a, f := allocs.Load(), frees.Load()
	return Stats{Allocs: a, Frees: f, Live: int64(a) - int64(f)}
}
