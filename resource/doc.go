// Package resource provides handle tables that connect foreign-visible
// identifiers to Go values.
//
// Records shared with a foreign runtime live outside the Go heap and cannot
// hold Go pointers. Instead they carry a small integer handle, and the Go
// state behind it lives in a Table:
//
//	table := resource.NewTable()
//
//	// Insert a value, get a handle
//	handle := table.Insert("shim", state)
//
//	// Retrieve value by handle
//	value, ok := table.Get(handle)
//
//	// Remove and get value
//	value, ok := table.Remove(handle)
//
// # Kinds
//
// Each entry is tagged with a kind string, and GetKind only returns entries
// of the expected kind. Typed wraps a table for a single kind:
//
//	windows := resource.NewTyped[WndProc](table, "window")
//	hwnd := windows.Insert(proc)
//
// # Observers
//
// Observers see every insert and removal:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("%s %d %s", e.Kind, e.Handle, e.Type)
//	}))
//
// # Handle Reuse
//
// Handles of removed entries are recycled. A handle must not be used after
// its entry has been removed.
package resource
