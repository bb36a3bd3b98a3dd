package bridge

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/errors"
)

type outcome[T any] struct {
	value T
	err   error
}

// Complete runs one callback-style foreign operation to completion.
//
// start receives the raw handler pointer and issues the foreign call. A
// failure status from start means the handler will never be invoked: the
// shim is released, and a foreign_call_rejected error is returned without
// pumping. Otherwise the pump runs until the handler fires, and convert
// turns the handler arguments into the result.
//
// The caller's reference to the shim is dropped as soon as start returns, so
// the foreign side owns the only remaining references. If it releases the
// handler without invoking it, the wait ends with an abandoned error.
func Complete[A1, A2, T any](
	ctx context.Context,
	p *Pump,
	kind *com.HandlerKind[A1, A2],
	method string,
	start func(handler uintptr) com.HRESULT,
	convert func(A1, A2) (T, error),
) (T, error) {
	var zero T

	producer, consumer := NewOneShot[outcome[T]]()
	shim := com.NewCompleted(kind, func(a1 A1, a2 A2) {
		v, err := convert(a1, a2)
		if err := producer.Send(outcome[T]{value: v, err: err}); err != nil {
			Logger().Warn("completion delivered twice", zap.String("method", method))
		}
	}, producer.Abandon)

	hr := start(shim.Raw())
	shim.Release()
	if hr.Failed() {
		Logger().Debug("foreign call rejected", zap.String("method", method), zap.Stringer("hr", hr))
		return zero, errors.Rejected(kind.Name(), method, hr.Code())
	}

	out, err := Await(ctx, p, consumer, method)
	if err != nil {
		return zero, err
	}
	return out.value, out.err
}

// Status turns a completion status into an error. It is meant for convert
// functions.
func Status(hr com.HRESULT, iface, method string) error {
	if hr.Succeeded() {
		return nil
	}
	return errors.Failed(iface, method, hr.Code())
}
