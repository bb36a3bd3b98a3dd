//go:build !windows

package abi

import (
	"testing"
)

func TestCallback_RoundTrip(t *testing.T) {
	fn := NewCallback(func(a, b uintptr) uintptr { return a*10 + b })

	if got := Call(fn, 4, 2); got != 42 {
		t.Fatalf("Call = %d, want 42", got)
	}
	if got := Call(fn, 4); got != 40 {
		t.Fatalf("missing args should be zero: %d", got)
	}
	if got := Call(fn, 1, 2, 3, 4); got != 12 {
		t.Fatalf("extra args should be dropped: %d", got)
	}
}

func TestCallback_Distinct(t *testing.T) {
	a := NewCallback(func() uintptr { return 1 })
	b := NewCallback(func() uintptr { return 2 })
	if a == b {
		t.Fatal("callbacks share a code pointer")
	}
	if Call(a) != 1 || Call(b) != 2 {
		t.Fatal("callbacks dispatch to the wrong function")
	}
}

func TestCallback_InvalidSignature(t *testing.T) {
	tests := []struct {
		name string
		fn   any
	}{
		{"not a func", 42},
		{"no result", func(uintptr) {}},
		{"int arg", func(int) uintptr { return 0 }},
		{"two results", func() (uintptr, uintptr) { return 0, 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			NewCallback(tt.fn)
		})
	}
}

func TestCall_UnknownPointer(t *testing.T) {
	for _, fn := range []uintptr{0, 0x1000, trampolineBase + 3, trampolineBase + trampolineStride*(trampolineMax-1)} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Call(%#x) should panic", fn)
				}
			}()
			Call(fn)
		}()
	}
}
