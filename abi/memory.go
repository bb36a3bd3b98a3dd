package abi

import (
	"unicode/utf16"
	"unsafe"
)

// PtrSize is the size of a machine word in bytes.
const PtrSize = unsafe.Sizeof(uintptr(0))

// Stats reports native allocator activity.
type Stats struct {
	Allocs uint64
	Frees  uint64
	Live   int64
}

// ReadUintptr loads a word from native memory.
func ReadUintptr(p uintptr) uintptr {
	return *(*uintptr)(unsafe.Pointer(p))
}

// WriteUintptr stores a word into native memory.
func WriteUintptr(p, v uintptr) {
	*(*uintptr)(unsafe.Pointer(p)) = v
}

func ReadUint32(p uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(p))
}

func WriteUint32(p uintptr, v uint32) {
	*(*uint32)(unsafe.Pointer(p)) = v
}

func ReadInt32(p uintptr) int32 {
	return *(*int32)(unsafe.Pointer(p))
}

func WriteInt32(p uintptr, v int32) {
	*(*int32)(unsafe.Pointer(p)) = v
}

func ReadInt64(p uintptr) int64 {
	return *(*int64)(unsafe.Pointer(p))
}

func WriteInt64(p uintptr, v int64) {
	*(*int64)(unsafe.Pointer(p)) = v
}

// Uint32At returns a pointer suitable for sync/atomic operations on a
// 32-bit field of a native record.
func Uint32At(p uintptr) *uint32 {
	return (*uint32)(unsafe.Pointer(p))
}

// Slot reads entry index of the vtable referenced by the object at this.
func Slot(this uintptr, index int) uintptr {
	vtbl := ReadUintptr(this)
	return ReadUintptr(vtbl + uintptr(index)*PtrSize)
}

// Bool converts a Go bool to a BOOL argument.
func Bool(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}

func zero(p, size uintptr) {
	clear(unsafe.Slice((*byte)(unsafe.Pointer(p)), size))
}

func fill(p, size uintptr, b byte) {
	buf := unsafe.Slice((*byte)(unsafe.Pointer(p)), size)
	for i := range buf {
		buf[i] = b
	}
}

// UTF16Len counts code units up to, not including, the terminating zero.
func UTF16Len(p uintptr) int {
	if p == 0 {
		return 0
	}
	n := 0
	for *(*uint16)(unsafe.Pointer(p + uintptr(n)*2)) != 0 {
		n++
	}
	return n
}

// ReadUTF16 copies a zero-terminated UTF-16 string out of native memory.
// A zero pointer yields nil.
func ReadUTF16(p uintptr) []uint16 {
	n := UTF16Len(p)
	if n == 0 {
		return nil
	}
	out := make([]uint16, n)
	copy(out, unsafe.Slice((*uint16)(unsafe.Pointer(p)), n))
	return out
}

// AllocUTF16 encodes s as a zero-terminated UTF-16 buffer in native memory.
// The caller owns the buffer and must Free it.
func AllocUTF16(s string) uintptr {
	return AllocUTF16Units(utf16.Encode([]rune(s)))
}

// AllocUTF16Units copies units into a zero-terminated native buffer.
func AllocUTF16Units(units []uint16) uintptr {
	p := Alloc(uintptr(len(units)+1) * 2)
	if len(units) > 0 {
		copy(unsafe.Slice((*uint16)(unsafe.Pointer(p)), len(units)), units)
	}
	return p
}

// Out is a native out-parameter cell. Its address is passed to the foreign
// side, which writes the result into it.
type Out struct {
	p uintptr
}

// NewOut allocates a zeroed cell of size bytes (at least one word).
func NewOut(size uintptr) Out {
	if size < PtrSize {
		size = PtrSize
	}
	return Out{p: Alloc(size)}
}

// NewWord allocates a single-word cell.
func NewWord() Out { return NewOut(PtrSize) }

func (o Out) Addr() uintptr    { return o.p }
func (o Out) Uintptr() uintptr { return ReadUintptr(o.p) }
func (o Out) Uint32() uint32   { return ReadUint32(o.p) }
func (o Out) Int32() int32     { return ReadInt32(o.p) }
func (o Out) Int64() int64     { return ReadInt64(o.p) }
func (o Out) Bool() bool       { return ReadInt32(o.p) != 0 }

func (o Out) Int32At(i int) int32 { return ReadInt32(o.p + uintptr(i)*4) }

// Free releases the cell.
func (o Out) Free() { Free(o.p) }
