//go:build !windows

package abi

import (
	"fmt"
	"reflect"
	"sync"
)

// Code pointers handed out by NewCallback live at the top of the address
// space, where no user mapping can exist.
const (
	trampolineBase   = ^uintptr(0) &^ 0xffffff
	trampolineStride = 16
	trampolineMax    = 0xffffff / trampolineStride
)

var trampolines struct {
	fns []reflect.Value
	mu  sync.RWMutex
}

var uintptrType = reflect.TypeOf(uintptr(0))

// NewCallback returns a code pointer that calls fn. fn must take only
// uintptr arguments and return a single uintptr.
func NewCallback(fn any) uintptr {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		panic("abi: NewCallback requires a function")
	}
	if t.NumOut() != 1 || t.Out(0) != uintptrType {
		panic(fmt.Sprintf("abi: callback %s must return a single uintptr", t))
	}
	for i := 0; i < t.NumIn(); i++ {
		if t.In(i) != uintptrType {
			panic(fmt.Sprintf("abi: callback %s argument %d is not uintptr", t, i))
		}
	}

	trampolines.mu.Lock()
	defer trampolines.mu.Unlock()

	if len(trampolines.fns) >= trampolineMax {
		panic("abi: too many callbacks")
	}
	trampolines.fns = append(trampolines.fns, v)
	return trampolineBase + uintptr(len(trampolines.fns)-1)*trampolineStride
}

// Call invokes the code pointer fn. Missing arguments are passed as zero and
// extra arguments are dropped, mirroring a register-based convention.
func Call(fn uintptr, args ...uintptr) uintptr {
	if fn < trampolineBase || (fn-trampolineBase)%trampolineStride != 0 {
		panic(fmt.Sprintf("abi: call to unknown code pointer %#x", fn))
	}
	idx := int((fn - trampolineBase) / trampolineStride)

	trampolines.mu.RLock()
	if idx >= len(trampolines.fns) {
		trampolines.mu.RUnlock()
		panic(fmt.Sprintf("abi: call to unknown code pointer %#x", fn))
	}
	f := trampolines.fns[idx]
	trampolines.mu.RUnlock()

	n := f.Type().NumIn()
	in := make([]reflect.Value, n)
	for i := 0; i < n; i++ {
		var a uintptr
		if i < len(args) {
			a = args[i]
		}
		in[i] = reflect.ValueOf(a)
	}
	return uintptr(f.Call(in)[0].Uint())
}
