package com

import (
	"testing"

	"github.com/wippyai/webview2/abi"
)

var (
	iidWidget = MustGUID("8f0c1c5e-4b1e-4f4a-9d1c-2f6d7b0e1a01")
	iidOther  = MustGUID("8f0c1c5e-4b1e-4f4a-9d1c-2f6d7b0e1a02")

	widgetClass = NewClass("Widget", []GUID{iidWidget},
		func(o *Object, a Args) HRESULT {
			w := o.Impl().(*widget)
			w.value = int32(a[0])
			return S_OK
		},
		nil,
		func(o *Object, a Args) HRESULT {
			abi.WriteInt32(a[0], o.Impl().(*widget).value)
			return S_OK
		},
	)
)

type widget struct {
	value   int32
	dropped int
}

func (w *widget) Drop() { w.dropped++ }

func rawQI(p uintptr, iid GUID, out uintptr) HRESULT {
	riid := AllocGUID(iid)
	defer abi.Free(riid)
	return HRESULT(int32(uint32(abi.Call(abi.Slot(p, SlotQueryInterface), p, riid, out))))
}

func TestObject_Methods(t *testing.T) {
	w := &widget{}
	o := widgetClass.New(w)
	defer o.Release()

	u := Acquire(o.Raw())
	defer u.Close()

	if hr := u.Call(3, 42); hr != S_OK {
		t.Fatalf("set = %v", hr)
	}
	out := abi.NewWord()
	defer out.Free()
	if hr := u.Call(5, out.Addr()); hr != S_OK {
		t.Fatalf("get = %v", hr)
	}
	if out.Int32() != 42 {
		t.Fatalf("value = %d, want 42", out.Int32())
	}

	if hr := u.Call(4); hr != E_NOTIMPL {
		t.Fatalf("nil slot = %v, want E_NOTIMPL", hr)
	}
}

func TestObject_QueryInterface(t *testing.T) {
	o := widgetClass.New(&widget{})
	defer o.Release()

	out := abi.NewWord()
	defer out.Free()

	tests := []struct {
		name string
		iid  GUID
		hr   HRESULT
		refs uint32
	}{
		{"unknown", IID_IUnknown, S_OK, 2},
		{"declared", iidWidget, S_OK, 2},
		{"other", iidOther, E_NOINTERFACE, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abi.WriteUintptr(out.Addr(), 0xbad)
			hr := rawQI(o.Raw(), tt.iid, out.Addr())
			if hr != tt.hr {
				t.Fatalf("hr = %v, want %v", hr, tt.hr)
			}
			if got := o.RefCount(); got != tt.refs {
				t.Fatalf("refcount = %d, want %d", got, tt.refs)
			}
			if hr.Succeeded() {
				if out.Uintptr() != o.Raw() {
					t.Fatalf("out = %#x, want %#x", out.Uintptr(), o.Raw())
				}
				o.Release()
			} else if out.Uintptr() != 0 {
				t.Fatalf("out = %#x, want 0", out.Uintptr())
			}
		})
	}
}

func TestObject_QueryInterfaceNullOut(t *testing.T) {
	o := widgetClass.New(&widget{})
	defer o.Release()

	for _, iid := range []GUID{IID_IUnknown, iidWidget, iidOther} {
		if hr := rawQI(o.Raw(), iid, 0); hr != E_POINTER {
			t.Fatalf("QI(%v, nil) = %v, want E_POINTER", iid, hr)
		}
		if o.RefCount() != 1 {
			t.Fatalf("refcount changed to %d", o.RefCount())
		}
	}
}

func TestObject_RefCountReachesZeroOnce(t *testing.T) {
	before := abi.ReadStats()
	live := Live()

	w := &widget{}
	o := widgetClass.New(w)
	u := Acquire(o.Raw())

	if n := u.AddRef(); n != 3 {
		t.Fatalf("AddRef = %d, want 3", n)
	}
	if n := o.Release(); n != 2 {
		t.Fatalf("Release = %d, want 2", n)
	}
	if n := u.Close(); n != 1 {
		t.Fatalf("Close = %d, want 1", n)
	}
	if n := u.Close(); n != 0 {
		t.Fatalf("second Close = %d, want 0", n)
	}
	if w.dropped != 0 {
		t.Fatal("dropped before the last release")
	}
	if Live() != live+1 {
		t.Fatalf("Live = %d, want %d", Live(), live+1)
	}

	if n := o.Release(); n != 0 {
		t.Fatalf("final Release = %d, want 0", n)
	}
	if w.dropped != 1 {
		t.Fatalf("dropped %d times, want 1", w.dropped)
	}
	if Live() != live {
		t.Fatalf("Live = %d, want %d", Live(), live)
	}

	after := abi.ReadStats()
	if after.Allocs-before.Allocs != after.Frees-before.Frees {
		t.Fatalf("allocs %d != frees %d", after.Allocs-before.Allocs, after.Frees-before.Frees)
	}
	if after.Live != before.Live {
		t.Fatalf("live allocations %d, want %d", after.Live, before.Live)
	}
}

func TestUnknown_Nil(t *testing.T) {
	if Attach(0) != nil || Acquire(0) != nil {
		t.Fatal("zero pointer should wrap to nil")
	}
	var u *Unknown
	if u.Raw() != 0 || u.Close() != 0 || !u.Closed() {
		t.Fatal("nil Unknown should behave as closed")
	}
}

func TestUnknown_CallAfterClose(t *testing.T) {
	o := widgetClass.New(&widget{})
	defer o.Release()

	u := Acquire(o.Raw())
	u.Close()

	if hr := u.Call(3, 1); hr != E_CLOSED {
		t.Fatalf("Call after Close = %v, want E_CLOSED", hr)
	}
	if _, err := u.QueryInterface(iidWidget); err == nil {
		t.Fatal("QueryInterface after Close should fail")
	}
	if o.RefCount() != 1 {
		t.Fatalf("refcount = %d, want 1", o.RefCount())
	}
}

func TestUnknown_QueryInterface(t *testing.T) {
	o := widgetClass.New(&widget{})
	defer o.Release()
	u := Acquire(o.Raw())
	defer u.Close()

	w, err := u.QueryInterface(iidWidget)
	if err != nil {
		t.Fatalf("QueryInterface: %v", err)
	}
	if w.Raw() != o.Raw() || o.RefCount() != 3 {
		t.Fatalf("raw=%#x refs=%d", w.Raw(), o.RefCount())
	}
	w.Close()

	if _, err := u.QueryInterface(iidOther); err == nil {
		t.Fatal("expected E_NOINTERFACE")
	}
	if o.RefCount() != 2 {
		t.Fatalf("refs = %d, want 2", o.RefCount())
	}
}

func TestUnknown_Borrow(t *testing.T) {
	o := widgetClass.New(&widget{})
	u := Attach(o.Raw())

	p := u.Borrow()
	if p != o.Raw() || o.RefCount() != 2 {
		t.Fatalf("Borrow: p=%#x refs=%d", p, o.RefCount())
	}
	u.Close()
	if o.RefCount() != 1 {
		t.Fatalf("refs = %d, want 1", o.RefCount())
	}
	o.Release()
}
