package headless

import (
	"github.com/wippyai/webview2/abi"
	"github.com/wippyai/webview2/com"
)

// eventList holds the handlers registered for one event of an object.
type eventList struct {
	handlers map[com.EventToken]*com.Unknown
	order    []com.EventToken
	next     com.EventToken
}

func (l *eventList) add(handler, tokenOut uintptr) com.HRESULT {
	if handler == 0 || tokenOut == 0 {
		return com.E_POINTER
	}
	if l.handlers == nil {
		l.handlers = make(map[com.EventToken]*com.Unknown)
	}
	l.next++
	l.handlers[l.next] = com.Acquire(handler)
	l.order = append(l.order, l.next)
	abi.WriteInt64(tokenOut, int64(l.next))
	return com.S_OK
}

func (l *eventList) remove(token com.EventToken) com.HRESULT {
	h, ok := l.handlers[token]
	if !ok {
		return com.E_INVALIDARG
	}
	delete(l.handlers, token)
	for i, t := range l.order {
		if t == token {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	h.Close()
	return com.S_OK
}

// fire invokes every handler registered when fire starts, in registration
// order. A handler removed by an earlier one is skipped.
func (l *eventList) fire(sender, args uintptr) int {
	tokens := append([]com.EventToken(nil), l.order...)
	n := 0
	for _, tok := range tokens {
		h, ok := l.handlers[tok]
		if !ok {
			continue
		}
		// The handler may unregister itself while running.
		held := com.Acquire(h.Raw())
		held.Call(com.SlotInvoke, sender, args)
		held.Close()
		n++
	}
	return n
}

func (l *eventList) clear() {
	for tok, h := range l.handlers {
		delete(l.handlers, tok)
		h.Close()
	}
	l.order = nil
}
