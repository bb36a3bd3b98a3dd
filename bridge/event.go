package bridge

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/errors"
)

// Subscription is one event registration on a foreign source. It is revoked
// exactly once through Unregister.
type Subscription struct {
	source *com.Unknown
	kind   string
	token  com.EventToken
	remove int
	closed atomic.Bool
}

// Register wraps fn in a recurring shim and calls the add_ slot of source.
// The source keeps the shim alive until the registration is removed; fn may
// run any number of times in between.
func Register[A1, A2 any](source *com.Unknown, addSlot, removeSlot int, kind *com.HandlerKind[A1, A2], fn func(A1, A2)) (*Subscription, error) {
	shim := com.NewEvent(kind, fn)
	defer shim.Release()

	token := abi.NewOut(8)
	defer token.Free()

	hr := source.Call(addSlot, shim.Raw(), token.Addr())
	if hr.Failed() {
		return nil, errors.New(errors.PhaseRegister, errors.KindRejected).
			Interface(kind.Name()).
			Code(hr.Code()).
			Detail("add handler").
			Build()
	}

	s := &Subscription{
		source: source,
		kind:   kind.Name(),
		token:  com.EventToken(token.Int64()),
		remove: removeSlot,
	}
	Logger().Debug("event registered", zap.String("kind", s.kind), zap.Int64("token", int64(s.token)))
	return s, nil
}

// Token returns the registration token.
func (s *Subscription) Token() com.EventToken { return s.token }

// Unregister removes the handler from its source. A second call returns an
// already_closed error without contacting the source.
func (s *Subscription) Unregister() error {
	if !s.closed.CompareAndSwap(false, true) {
		return errors.AlreadyClosed(s.kind + " subscription")
	}
	hr := s.source.Call(s.remove, uintptr(s.token))
	Logger().Debug("event unregistered", zap.String("kind", s.kind), zap.Int64("token", int64(s.token)), zap.Stringer("hr", hr))
	if hr.Failed() {
		return errors.New(errors.PhaseRegister, errors.KindRejected).
			Interface(s.kind).
			Code(hr.Code()).
			Detail("remove handler").
			Build()
	}
	return nil
}
