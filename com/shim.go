package com

import (
	"sync"

	"go.uber.org/zap"
)

// Handler vtable slot after IUnknown.
const SlotInvoke = 3

// invoker is the Go side of a handler shim.
type invoker interface {
	invoke(raw1, raw2 uintptr) HRESULT
}

// HandlerKind is one foreign handler interface: its identity plus the
// converters for the two arguments of Invoke.
type HandlerKind[A1, A2 any] struct {
	class *Class
	arg1  ClosureArg[A1]
	arg2  ClosureArg[A2]
}

// NewHandlerKind declares a handler interface. Like classes, kinds are
// created once at package initialization.
func NewHandlerKind[A1, A2 any](name string, iid GUID, arg1 ClosureArg[A1], arg2 ClosureArg[A2]) *HandlerKind[A1, A2] {
	invoke := func(o *Object, a Args) HRESULT {
		return o.Impl().(invoker).invoke(a[0], a[1])
	}
	return &HandlerKind[A1, A2]{
		class: NewClass(name, []GUID{iid}, invoke),
		arg1:  arg1,
		arg2:  arg2,
	}
}

// Name returns the interface name.
func (k *HandlerKind[A1, A2]) Name() string { return k.class.name }

// Class returns the shim class.
func (k *HandlerKind[A1, A2]) Class() *Class { return k.class }

// Completed is a one-shot handler shim. Its closure runs at most once; later
// invocations return S_OK without doing anything.
type Completed[A1, A2 any] struct {
	obj    *Object
	kind   *HandlerKind[A1, A2]
	fn     func(A1, A2)
	onDrop func()
	mu     sync.Mutex
}

// NewCompleted creates a one-shot shim with reference count 1. onDrop, if
// not nil, runs when the last reference goes away before fn was taken.
func NewCompleted[A1, A2 any](kind *HandlerKind[A1, A2], fn func(A1, A2), onDrop func()) *Completed[A1, A2] {
	c := &Completed[A1, A2]{kind: kind, fn: fn, onDrop: onDrop}
	c.obj = kind.class.New(c)
	return c
}

func (c *Completed[A1, A2]) invoke(raw1, raw2 uintptr) HRESULT {
	c.mu.Lock()
	fn := c.fn
	c.fn = nil
	c.mu.Unlock()

	if fn == nil {
		Logger().Debug("repeated completion ignored", zap.String("kind", c.kind.Name()))
		return S_OK
	}
	fn(c.kind.arg1(raw1), c.kind.arg2(raw2))
	return S_OK
}

// Drop runs with the final release.
func (c *Completed[A1, A2]) Drop() {
	c.mu.Lock()
	pending := c.fn != nil
	c.fn = nil
	c.mu.Unlock()

	if pending && c.onDrop != nil {
		Logger().Debug("completion dropped without invoke", zap.String("kind", c.kind.Name()))
		c.onDrop()
	}
}

// Raw returns the foreign-visible pointer.
func (c *Completed[A1, A2]) Raw() uintptr { return c.obj.Raw() }

// Object returns the underlying object.
func (c *Completed[A1, A2]) Object() *Object { return c.obj }

// Release drops the caller's reference.
func (c *Completed[A1, A2]) Release() uint32 { return c.obj.Release() }

// Event is a recurring handler shim. Its closure runs on every invocation,
// one at a time. An invocation that arrives while the closure is running,
// for example from a pump the closure drives, is queued and runs after the
// current call returns.
type Event[A1, A2 any] struct {
	obj     *Object
	kind    *HandlerKind[A1, A2]
	fn      func(A1, A2)
	mu      sync.Mutex
	running bool
	pending []func()
}

// NewEvent creates a recurring shim with reference count 1.
func NewEvent[A1, A2 any](kind *HandlerKind[A1, A2], fn func(A1, A2)) *Event[A1, A2] {
	e := &Event[A1, A2]{kind: kind, fn: fn}
	e.obj = kind.class.New(e)
	return e
}

func (e *Event[A1, A2]) invoke(raw1, raw2 uintptr) HRESULT {
	a1, a2 := e.kind.arg1(raw1), e.kind.arg2(raw2)

	e.mu.Lock()
	if e.running {
		e.pending = append(e.pending, func() { e.fn(a1, a2) })
		e.mu.Unlock()
		Logger().Debug("event invocation deferred", zap.String("kind", e.kind.Name()))
		return S_OK
	}
	e.running = true
	e.mu.Unlock()

	e.fn(a1, a2)
	for {
		e.mu.Lock()
		if len(e.pending) == 0 {
			e.running = false
			e.mu.Unlock()
			return S_OK
		}
		next := e.pending[0]
		e.pending = e.pending[1:]
		e.mu.Unlock()
		next()
	}
}

// Raw returns the foreign-visible pointer.
func (e *Event[A1, A2]) Raw() uintptr { return e.obj.Raw() }

// Object returns the underlying object.
func (e *Event[A1, A2]) Object() *Object { return e.obj }

// Release drops the caller's reference.
func (e *Event[A1, A2]) Release() uint32 { return e.obj.Release() }
