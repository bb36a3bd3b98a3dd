// Package headless is an in-process browser runtime behind the same object
// model and flat entry points as the native one.
//
// Objects are exported through real vtables in native memory, so callers
// reach them exactly as they reach native objects. Pages are parsed with
// golang.org/x/net/html and scripted with goja. Nothing is rendered.
//
// Completions and events are never delivered during the call that causes
// them: they are posted to a hidden window on the runtime's host and run
// when the owning thread pumps messages.
package headless
