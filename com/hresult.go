package com

import "fmt"

// HRESULT is the status code returned by every foreign method.
// Negative values are failures.
type HRESULT int32

const (
	S_OK    HRESULT = 0
	S_FALSE HRESULT = 1

	E_NOTIMPL     HRESULT = -0x7fffbfff // 0x80004001
	E_NOINTERFACE HRESULT = -0x7fffbffe // 0x80004002
	E_POINTER     HRESULT = -0x7fffbffd // 0x80004003
	E_ABORT       HRESULT = -0x7fffbffc // 0x80004004
	E_FAIL        HRESULT = -0x7fffbffb // 0x80004005
	E_UNEXPECTED  HRESULT = -0x7fff0001 // 0x8000FFFF
	E_CLOSED      HRESULT = -0x7fffffed // 0x80000013
	E_INVALIDARG  HRESULT = -0x7ff8ffa9 // 0x80070057
	E_OUTOFMEMORY HRESULT = -0x7ff8fff2 // 0x8007000E
)

// Win32 error codes surfaced through HRESULTFromWin32.
const (
	ErrorInvalidWindowHandle = 1400
	ErrorInvalidState        = 5023
	ErrorFileNotFound        = 2
)

// HRESULTFromWin32 maps a Win32 error code into the FACILITY_WIN32 space.
func HRESULTFromWin32(code uint32) HRESULT {
	if code == 0 {
		return S_OK
	}
	return HRESULT(int32(code&0xffff | 7<<16 | 0x80000000))
}

// Succeeded reports whether hr is a success code. It is the one success
// predicate used across the bridge.
func (hr HRESULT) Succeeded() bool { return hr >= 0 }

// Failed reports whether hr is a failure code.
func (hr HRESULT) Failed() bool { return hr < 0 }

// Code returns the unsigned representation.
func (hr HRESULT) Code() uint32 { return uint32(hr) }

// Word returns hr as a register-sized return value, zero-extended from 32
// bits the way the foreign calling convention expects.
func (hr HRESULT) Word() uintptr { return uintptr(hr.Code()) }

func (hr HRESULT) String() string {
	switch hr {
	case S_OK:
		return "S_OK"
	case S_FALSE:
		return "S_FALSE"
	case E_NOTIMPL:
		return "E_NOTIMPL"
	case E_NOINTERFACE:
		return "E_NOINTERFACE"
	case E_POINTER:
		return "E_POINTER"
	case E_ABORT:
		return "E_ABORT"
	case E_FAIL:
		return "E_FAIL"
	case E_UNEXPECTED:
		return "E_UNEXPECTED"
	case E_CLOSED:
		return "E_CLOSED"
	case E_INVALIDARG:
		return "E_INVALIDARG"
	case E_OUTOFMEMORY:
		return "E_OUTOFMEMORY"
	}
	return fmt.Sprintf("0x%08X", uint32(hr))
}
