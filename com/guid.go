package com

import (
	"encoding/binary"
	"unsafe"

	"github.com/google/uuid"

	"github.com/wippyai/webview2/abi"
)

// GUID is an interface identifier in its native memory layout.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// IID_IUnknown is the universal base identity every object answers to.
var IID_IUnknown = MustGUID("00000000-0000-0000-c000-000000000046")

// ParseGUID parses the canonical textual form, with or without braces.
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, err
	}
	return fromUUID(u), nil
}

// MustGUID is ParseGUID for package-level identifiers.
func MustGUID(s string) GUID {
	return fromUUID(uuid.MustParse(s))
}

func fromUUID(u uuid.UUID) GUID {
	g := GUID{
		Data1: binary.BigEndian.Uint32(u[0:4]),
		Data2: binary.BigEndian.Uint16(u[4:6]),
		Data3: binary.BigEndian.Uint16(u[6:8]),
	}
	copy(g.Data4[:], u[8:16])
	return g
}

func (g GUID) String() string {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], g.Data1)
	binary.BigEndian.PutUint16(u[4:6], g.Data2)
	binary.BigEndian.PutUint16(u[6:8], g.Data3)
	copy(u[8:16], g.Data4[:])
	return "{" + u.String() + "}"
}

// ReadGUID copies a GUID out of native memory.
func ReadGUID(p uintptr) GUID {
	return *(*GUID)(unsafe.Pointer(p))
}

// AllocGUID places g in native memory. The caller frees it.
func AllocGUID(g GUID) uintptr {
	p := abi.Alloc(unsafe.Sizeof(g))
	*(*GUID)(unsafe.Pointer(p)) = g
	return p
}
