// Package errors provides structured error types for the webview2 bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the foreign interface and method involved, the status
// code reported by the runtime, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCall, errors.KindRejected).
//		Interface("ICoreWebView2Environment").
//		Method("CreateCoreWebView2Controller").
//		Code(uint32(hr)).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Rejected("ICoreWebView2", "ExecuteScript", uint32(hr))
//	err := errors.PumpTerminated("ExecuteScript")
//
// Matching with errors.Is compares Phase and Kind only, so the exported
// targets work against any error of the same category:
//
//	if errors.Is(err, errors.ErrPumpTerminated) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
