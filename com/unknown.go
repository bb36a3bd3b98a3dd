package com

import (
	"sync/atomic"

	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/errors"
)

// IUnknown vtable slots.
const (
	SlotQueryInterface = 0
	SlotAddRef         = 1
	SlotRelease        = 2
)

// Unknown is an owned reference to a foreign object. It holds exactly one
// reference, given up by Close.
type Unknown struct {
	ptr    uintptr
	closed atomic.Bool
}

// Attach takes over a reference the caller already owns, such as a pointer
// received from an out parameter or a completion. A zero pointer yields nil.
func Attach(ptr uintptr) *Unknown {
	if ptr == 0 {
		return nil
	}
	return &Unknown{ptr: ptr}
}

// Acquire adds a reference to ptr and wraps it. Use it for pointers the
// caller only borrows, such as callback arguments.
func Acquire(ptr uintptr) *Unknown {
	if ptr == 0 {
		return nil
	}
	abi.Call(abi.Slot(ptr, SlotAddRef), ptr)
	return &Unknown{ptr: ptr}
}

// Raw returns the foreign pointer without affecting the count. The pointer
// stays valid only while u is open.
func (u *Unknown) Raw() uintptr {
	if u == nil || u.closed.Load() {
		return 0
	}
	return u.ptr
}

// Call invokes vtable slot with this prepended to args.
func (u *Unknown) Call(slot int, args ...uintptr) HRESULT {
	p := u.Raw()
	if p == 0 {
		return E_CLOSED
	}
	full := make([]uintptr, 0, len(args)+1)
	full = append(full, p)
	full = append(full, args...)
	return HRESULT(int32(uint32(abi.Call(abi.Slot(p, slot), full...))))
}

// QueryInterface asks the object for iid and returns a new owned reference.
func (u *Unknown) QueryInterface(iid GUID) (*Unknown, error) {
	if u.Raw() == 0 {
		return nil, errors.AlreadyClosed("interface")
	}
	riid := AllocGUID(iid)
	defer abi.Free(riid)
	out := abi.NewWord()
	defer out.Free()

	hr := u.Call(SlotQueryInterface, riid, out.Addr())
	if hr.Failed() {
		return nil, errors.NoInterface(iid.String(), hr.Code())
	}
	return Attach(out.Uintptr()), nil
}

// AddRef adds a reference and returns the count reported by the object.
func (u *Unknown) AddRef() uint32 {
	p := u.Raw()
	if p == 0 {
		return 0
	}
	return uint32(abi.Call(abi.Slot(p, SlotAddRef), p))
}

// Borrow adds a reference for a pointer handed to the foreign side, which
// will release it on its own schedule.
func (u *Unknown) Borrow() uintptr {
	p := u.Raw()
	if p != 0 {
		abi.Call(abi.Slot(p, SlotAddRef), p)
	}
	return p
}

// Close releases the owned reference once. Later calls return 0 and do
// nothing.
func (u *Unknown) Close() uint32 {
	if u == nil || !u.closed.CompareAndSwap(false, true) {
		return 0
	}
	return uint32(abi.Call(abi.Slot(u.ptr, SlotRelease), u.ptr))
}

// Closed reports whether Close has run.
func (u *Unknown) Closed() bool {
	return u == nil || u.closed.Load()
}

// EventToken identifies one event registration.
type EventToken int64
