// Package abi provides the raw calling-convention primitives used to talk to a
// foreign, vtable-based object runtime.
//
// Everything that crosses the boundary is a machine word: code pointers,
// object pointers, out-parameter addresses and string buffers. The package
// offers three groups of operations:
//
//	Call/NewCallback   invoke a native code pointer, or expose a Go func as one
//	Alloc/Free         native (task) memory, shared with the foreign runtime
//	Read*/Write*/Out   word access to native memory and out-parameter cells
//
// # Memory Model
//
// Pointers handed to the foreign side always refer to native memory obtained
// from Alloc, never to the Go heap. The garbage collector neither moves nor
// scans native memory, so records stored there must not contain Go pointers;
// Go-side state is reached through handle tables instead.
//
// On Windows, Call and NewCallback map to syscall.SyscallN and
// windows.NewCallback, and Alloc/Free map to CoTaskMemAlloc/CoTaskMemFree.
// Elsewhere, code pointers are entries of an in-process trampoline table and
// native memory comes from an mmap-backed heap, which lets the same object
// layouts be exercised by an in-process runtime.
package abi
