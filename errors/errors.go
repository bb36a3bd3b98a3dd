package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCall     Phase = "call"     // initiating a foreign call
	PhaseComplete Phase = "complete" // completion delivered by the runtime
	PhasePump     Phase = "pump"     // message pump
	PhaseConvert  Phase = "convert"  // argument conversion
	PhaseRegister Phase = "register" // event registration
	PhaseClose    Phase = "close"    // handle teardown
	PhaseConfig   Phase = "config"   // configuration loading
	PhaseLoad     Phase = "load"     // runtime loading
)

// Kind categorizes the error
type Kind string

const (
	KindRejected       Kind = "foreign_call_rejected"
	KindFailed         Kind = "completion_failed"
	KindPumpTerminated Kind = "pump_terminated"
	KindPumpFailed     Kind = "pump_failed"
	KindAlreadyClosed  Kind = "already_closed"
	KindCanceled       Kind = "canceled"
	KindReentrant      Kind = "reentrant"
	KindInvalidInput   Kind = "invalid_input"
	KindNotFound       Kind = "not_found"
	KindNoInterface    Kind = "no_interface"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	Interface string
	Method    string
	Detail    string
	Code      uint32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Interface != "" || e.Method != "" {
		b.WriteString(" in ")
		b.WriteString(e.Interface)
		if e.Interface != "" && e.Method != "" {
			b.WriteByte('.')
		}
		b.WriteString(e.Method)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Code != 0 {
		fmt.Fprintf(&b, " (hresult 0x%08X)", e.Code)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Interface sets the foreign interface name
func (b *Builder) Interface(name string) *Builder {
	b.err.Interface = name
	return b
}

// Method sets the foreign method name
func (b *Builder) Method(name string) *Builder {
	b.err.Method = name
	return b
}

// Code sets the status code reported by the runtime
func (b *Builder) Code(hr uint32) *Builder {
	b.err.Code = hr
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Targets for errors.Is. Only Phase and Kind take part in matching.
var (
	ErrPumpTerminated = &Error{Phase: PhasePump, Kind: KindPumpTerminated}
	ErrPumpFailed     = &Error{Phase: PhasePump, Kind: KindPumpFailed}
	ErrReentrant      = &Error{Phase: PhasePump, Kind: KindReentrant}
	ErrCanceled       = &Error{Phase: PhasePump, Kind: KindCanceled}
	ErrAlreadyClosed  = &Error{Phase: PhaseClose, Kind: KindAlreadyClosed}
	ErrRejected       = &Error{Phase: PhaseCall, Kind: KindRejected}
	ErrFailed         = &Error{Phase: PhaseComplete, Kind: KindFailed}
	ErrAbandoned      = &Error{Phase: PhaseComplete, Kind: KindCanceled}
)

// Convenience constructors for common error patterns

// Rejected creates an error for a foreign call that failed before any
// completion was delivered
func Rejected(iface, method string, hr uint32) *Error {
	return &Error{
		Phase:     PhaseCall,
		Kind:      KindRejected,
		Interface: iface,
		Method:    method,
		Code:      hr,
	}
}

// Failed creates an error for a completion that reported a failure status
func Failed(iface, method string, hr uint32) *Error {
	return &Error{
		Phase:     PhaseComplete,
		Kind:      KindFailed,
		Interface: iface,
		Method:    method,
		Code:      hr,
	}
}

// PumpTerminated creates an error for a message loop that quit before the
// awaited value arrived
func PumpTerminated(what string) *Error {
	return &Error{
		Phase:  PhasePump,
		Kind:   KindPumpTerminated,
		Detail: fmt.Sprintf("message loop ended before %s completed", what),
	}
}

// PumpFailed creates an error for a message retrieval failure
func PumpFailed(cause error) *Error {
	return &Error{
		Phase:  PhasePump,
		Kind:   KindPumpFailed,
		Detail: "message retrieval failed",
		Cause:  cause,
	}
}

// Canceled wraps a context error observed while pumping
func Canceled(cause error) *Error {
	return &Error{
		Phase: PhasePump,
		Kind:  KindCanceled,
		Cause: cause,
	}
}

// Abandoned creates an error for a completion whose handler was released
// without ever being invoked
func Abandoned(what string) *Error {
	return &Error{
		Phase:  PhaseComplete,
		Kind:   KindCanceled,
		Detail: fmt.Sprintf("%s abandoned without a result", what),
	}
}

// AlreadyClosed creates an error for a repeated close or a call on a closed handle
func AlreadyClosed(what string) *Error {
	return &Error{
		Phase:  PhaseClose,
		Kind:   KindAlreadyClosed,
		Detail: fmt.Sprintf("%s already closed", what),
	}
}

// NoInterface creates an error for a failed interface query
func NoInterface(iface string, hr uint32) *Error {
	return &Error{
		Phase:     PhaseConvert,
		Kind:      KindNoInterface,
		Interface: iface,
		Code:      hr,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a runtime loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindNotFound,
		Detail: detail,
		Cause:  cause,
	}
}
