package com

import (
	"unicode/utf16"

	"go.uber.org/zap"

	"github.com/wippyai/webview2/abi"
)

// ClosureArg converts one raw argument delivered by the foreign runtime into
// an owned Go value. Conversions never fail: unusable input becomes the
// zero value.
type ClosureArg[T any] func(raw uintptr) T

// StatusArg passes a status code through unchanged.
func StatusArg(raw uintptr) HRESULT {
	return HRESULT(int32(uint32(raw)))
}

// InterfaceArg converts a borrowed interface pointer into an owned
// reference obtained through QueryInterface for iid. A zero pointer or a
// failed query yields nil.
func InterfaceArg(iid GUID) ClosureArg[*Unknown] {
	return func(raw uintptr) *Unknown {
		if raw == 0 {
			return nil
		}
		borrowed := &Unknown{ptr: raw}
		u, err := borrowed.QueryInterface(iid)
		if err != nil {
			Logger().Debug("interface argument dropped", zap.Stringer("iid", iid), zap.Error(err))
			return nil
		}
		return u
	}
}

// StringArg decodes a zero-terminated UTF-16 string the callee does not own.
func StringArg(raw uintptr) string {
	return DecodeUTF16(abi.ReadUTF16(raw))
}

// FreeStringArg decodes a string the caller owns and frees its buffer.
func FreeStringArg(raw uintptr) string {
	if raw == 0 {
		return ""
	}
	s := StringArg(raw)
	abi.Free(raw)
	return s
}

// DecodeUTF16 decodes units, returning "" if they contain an unpaired
// surrogate.
func DecodeUTF16(units []uint16) string {
	for i := 0; i < len(units); i++ {
		r := rune(units[i])
		if !utf16.IsSurrogate(r) {
			continue
		}
		if r >= 0xdc00 || i+1 == len(units) {
			return ""
		}
		if utf16.DecodeRune(r, rune(units[i+1])) == 0xfffd {
			return ""
		}
		i++
	}
	return string(utf16.Decode(units))
}

// AllocString encodes s into native memory for an input parameter. The
// caller frees it.
func AllocString(s string) uintptr {
	return abi.AllocUTF16(s)
}
