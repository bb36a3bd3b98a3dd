package com

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/resource"
)

// Native object record:
//
//	+0           vtable pointer
//	+PtrSize     reference count (uint32)
//	+PtrSize+8   handle into the live-object table
const (
	refOffset    = abi.PtrSize
	handleOffset = abi.PtrSize + 8
	recordSize   = abi.PtrSize + 8 + abi.PtrSize
)

// Args holds the raw arguments of a method call after this.
type Args [5]uintptr

// Method implements one vtable slot of a Go-backed class.
type Method func(o *Object, a Args) HRESULT

// Class describes a Go-implemented interface: its identities and a static
// vtable in native memory. Slots 0-2 are the shared IUnknown entry points.
type Class struct {
	name string
	iids []GUID
	vtbl uintptr
}

var (
	objects = resource.NewTable()

	unknownSlots [3]uintptr
	notImpl      uintptr
)

func init() {
	unknownSlots[0] = abi.NewCallback(queryInterface)
	unknownSlots[1] = abi.NewCallback(addRef)
	unknownSlots[2] = abi.NewCallback(release)
	notImpl = abi.NewCallback(func(this, a, b, c, d, e uintptr) uintptr {
		return E_NOTIMPL.Word()
	})

	objects.Subscribe(resource.ObserverFunc(func(e resource.Event) {
		Logger().Debug("object "+e.Type.String(),
			zap.String("class", e.Kind),
			zap.Uint32("handle", uint32(e.Handle)))
	}))
}

// NewClass builds the vtable for a class. methods fill the slots after
// IUnknown in order; a nil entry answers E_NOTIMPL. Classes are meant to be
// created once, at package initialization.
func NewClass(name string, iids []GUID, methods ...Method) *Class {
	c := &Class{name: name, iids: iids}
	c.vtbl = abi.Alloc(uintptr(3+len(methods)) * abi.PtrSize)
	for i, fn := range unknownSlots {
		abi.WriteUintptr(c.vtbl+uintptr(i)*abi.PtrSize, fn)
	}
	for i, m := range methods {
		code := notImpl
		if m != nil {
			code = abi.NewCallback(dispatcher(m))
		}
		abi.WriteUintptr(c.vtbl+uintptr(3+i)*abi.PtrSize, code)
	}
	return c
}

func dispatcher(m Method) func(this, a, b, c, d, e uintptr) uintptr {
	return func(this, a, b, c, d, e uintptr) uintptr {
		o := lookup(this)
		if o == nil {
			return E_POINTER.Word()
		}
		return m(o, Args{a, b, c, d, e}).Word()
	}
}

// Name returns the class name used in logs.
func (c *Class) Name() string { return c.name }

// Implements reports whether an object of this class answers to iid.
func (c *Class) Implements(iid GUID) bool {
	if iid == IID_IUnknown {
		return true
	}
	for _, id := range c.iids {
		if id == iid {
			return true
		}
	}
	return false
}

// Object is a live Go-backed object. Its record sits in native memory and
// holds only a handle; the Object itself lives in a table until the
// reference count drops to zero.
type Object struct {
	class  *Class
	impl   any
	rec    uintptr
	handle resource.Handle
}

// New allocates an object with reference count 1. impl is the Go state
// reachable from method implementations; if it implements resource.Dropper
// its Drop runs once when the last reference is released.
func (c *Class) New(impl any) *Object {
	o := &Object{class: c, impl: impl}
	o.rec = abi.Alloc(recordSize)
	abi.WriteUintptr(o.rec, c.vtbl)
	abi.WriteUint32(o.rec+refOffset, 1)
	o.handle = objects.Insert(c.name, o)
	abi.WriteUintptr(o.rec+handleOffset, uintptr(o.handle))
	return o
}

// Raw returns the foreign-visible pointer.
func (o *Object) Raw() uintptr { return o.rec }

// Impl returns the Go state given to New.
func (o *Object) Impl() any { return o.impl }

// Class returns the object's class.
func (o *Object) Class() *Class { return o.class }

// AddRef increments the reference count and returns the new value.
func (o *Object) AddRef() uint32 {
	return atomic.AddUint32(abi.Uint32At(o.rec+refOffset), 1)
}

// Release decrements the reference count and returns the new value. The
// object is destroyed on the transition to zero and must not be used by the
// caller afterwards.
func (o *Object) Release() uint32 {
	n := atomic.AddUint32(abi.Uint32At(o.rec+refOffset), ^uint32(0))
	if n == 0 {
		o.destroy()
	}
	return n
}

// RefCount reads the current count. It is only meaningful while the caller
// holds a reference.
func (o *Object) RefCount() uint32 {
	return atomic.LoadUint32(abi.Uint32At(o.rec + refOffset))
}

// Drop runs the implementation's cleanup when the table entry is removed.
func (o *Object) Drop() {
	if d, ok := o.impl.(resource.Dropper); ok {
		d.Drop()
	}
}

func (o *Object) destroy() {
	rec := o.rec
	objects.Remove(o.handle)
	o.rec = 0
	abi.Free(rec)
}

// Live returns the number of Go-backed objects that have not been released
// to zero.
func Live() int { return objects.Len() }

func lookup(this uintptr) *Object {
	if this == 0 {
		return nil
	}
	v, ok := objects.Get(resource.Handle(abi.ReadUintptr(this + handleOffset)))
	if !ok {
		return nil
	}
	o := v.(*Object)
	if o.rec != this {
		return nil
	}
	return o
}

func queryInterface(this, riid, ppv uintptr) uintptr {
	if ppv == 0 {
		return E_POINTER.Word()
	}
	o := lookup(this)
	if o == nil || riid == 0 {
		abi.WriteUintptr(ppv, 0)
		return E_POINTER.Word()
	}
	if !o.class.Implements(ReadGUID(riid)) {
		abi.WriteUintptr(ppv, 0)
		return E_NOINTERFACE.Word()
	}
	o.AddRef()
	abi.WriteUintptr(ppv, this)
	return S_OK.Word()
}

func addRef(this uintptr) uintptr {
	o := lookup(this)
	if o == nil {
		return 0
	}
	return uintptr(o.AddRef())
}

func release(this uintptr) uintptr {
	o := lookup(this)
	if o == nil {
		panic(fmt.Sprintf("com: release of unknown object %#x", this))
	}
	return uintptr(o.Release())
}
