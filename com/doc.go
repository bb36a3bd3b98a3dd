// Package com implements the vtable object contract of the browser-engine
// runtime: interface identity, reference counting and handler shims.
//
// Two directions are covered. Unknown wraps a pointer received from the
// runtime and owns one reference to it. Class and Object build objects the
// runtime can call into: a native record whose first word is a static
// vtable, followed by an atomic reference count and a handle that leads back
// to Go state.
//
//	this ──► ┌──────────┐      ┌────────────────┐
//	         │ vtbl     │ ───► │ QueryInterface │
//	         │ refcount │      │ AddRef         │
//	         │ handle   │      │ Release        │
//	         └──────────┘      │ Invoke ...     │
//	                           └────────────────┘
//
// Handler shims are objects with a single Invoke slot. Completed runs its
// closure once and turns later invocations into no-ops; Event runs its
// closure every time. Raw arguments pass through ClosureArg converters
// (StatusArg, InterfaceArg, StringArg) before reaching the closure, so
// closures only see owned Go values.
package com
