package abi

import (
	"testing"
	"unicode/utf16"
)

func TestReadWrite(t *testing.T) {
	p := Alloc(32)
	defer Free(p)

	WriteUintptr(p, 0xdeadbeef)
	WriteUint32(p+8, 7)
	WriteInt32(p+12, -3)

	if ReadUintptr(p) != 0xdeadbeef {
		t.Errorf("ReadUintptr = %#x", ReadUintptr(p))
	}
	if ReadUint32(p+8) != 7 {
		t.Errorf("ReadUint32 = %d", ReadUint32(p+8))
	}
	if ReadInt32(p+12) != -3 {
		t.Errorf("ReadInt32 = %d", ReadInt32(p+12))
	}
	if *Uint32At(p + 8) != 7 {
		t.Errorf("Uint32At = %d", *Uint32At(p + 8))
	}
}

func TestSlot(t *testing.T) {
	vtbl := Alloc(3 * PtrSize)
	defer Free(vtbl)
	obj := Alloc(PtrSize)
	defer Free(obj)

	for i := uintptr(0); i < 3; i++ {
		WriteUintptr(vtbl+i*PtrSize, 100+i)
	}
	WriteUintptr(obj, vtbl)

	for i := 0; i < 3; i++ {
		if got := Slot(obj, i); got != uintptr(100+i) {
			t.Errorf("Slot(%d) = %d", i, got)
		}
	}
}

func TestUTF16(t *testing.T) {
	tests := []string{"", "hello", "héllo 世界", "emoji 🌍 pair"}
	for _, s := range tests {
		p := AllocUTF16(s)
		units := ReadUTF16(p)
		if got := string(utf16.Decode(units)); got != s {
			t.Errorf("round trip %q = %q", s, got)
		}
		if UTF16Len(p) != len(utf16.Encode([]rune(s))) {
			t.Errorf("UTF16Len(%q) = %d", s, UTF16Len(p))
		}
		Free(p)
	}

	if ReadUTF16(0) != nil || UTF16Len(0) != 0 {
		t.Error("zero pointer should read as empty")
	}
}

func TestOut(t *testing.T) {
	o := NewOut(16)
	defer o.Free()

	if o.Uintptr() != 0 || o.Bool() {
		t.Fatal("cell should start zeroed")
	}

	WriteInt32(o.Addr(), 1)
	WriteInt32(o.Addr()+4, 2)
	WriteInt32(o.Addr()+8, 3)
	WriteInt32(o.Addr()+12, 4)

	if !o.Bool() || o.Int32() != 1 {
		t.Fatalf("Bool/Int32 = %v/%d", o.Bool(), o.Int32())
	}
	for i := 0; i < 4; i++ {
		if o.Int32At(i) != int32(i+1) {
			t.Errorf("Int32At(%d) = %d", i, o.Int32At(i))
		}
	}

	w := NewWord()
	defer w.Free()
	WriteUintptr(w.Addr(), 0x1234)
	if w.Uintptr() != 0x1234 || w.Uint32() != 0x1234 {
		t.Fatalf("word = %#x", w.Uintptr())
	}
}

func TestBool(t *testing.T) {
	if Bool(true) != 1 || Bool(false) != 0 {
		t.Fatal("Bool mapping")
	}
}
