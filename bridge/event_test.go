package bridge

import (
	"context"
	"testing"

	"github.com/wippyai/webview2/com"
	"github.com/wippyai/webview2/errors"
)

func newSource(t *testing.T) (*fakeSource, *com.Unknown) {
	t.Helper()
	src := &fakeSource{handlers: map[com.EventToken]*com.Unknown{}}
	obj := sourceClass.New(src)
	u := com.Attach(obj.Raw())
	t.Cleanup(func() { u.Close() })
	return src, u
}

func TestRegister_FiresPerPost(t *testing.T) {
	rt := newFakeRuntime(t)
	pump := NewPump(rt.thread)
	src, u := newSource(t)
	rt.source = src

	var got []string
	sub, err := Register(u, slotAdd, slotRemove, testEventKind, func(hr com.HRESULT, s string) {
		got = append(got, s)
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if sub.Token() == 0 {
		t.Fatal("expected a token")
	}

	for _, msg := range []string{"a", "b", "c"} {
		producer, consumer := NewOneShot[struct{}]()
		rt.result = msg
		rt.onFire = func() { producer.Send(struct{}{}) }
		rt.thread.PostMessage(rt.hwnd, msgFire, 0, 0)
		if _, err := Await(context.Background(), pump, consumer, "fire"); err != nil {
			t.Fatalf("Await: %v", err)
		}
	}

	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("handler saw %v", got)
	}

	if err := sub.Unregister(); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	src.fire("after")
	if len(got) != 3 {
		t.Fatalf("handler ran after Unregister: %v", got)
	}
}

func TestRegister_ShimReleasedOnUnregister(t *testing.T) {
	_, u := newSource(t)
	live := com.Live()

	sub, err := Register(u, slotAdd, slotRemove, testEventKind, func(com.HRESULT, string) {})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if com.Live() != live+1 {
		t.Fatalf("live = %d, want %d", com.Live(), live+1)
	}
	sub.Unregister()
	if com.Live() != live {
		t.Fatalf("live = %d, want %d", com.Live(), live)
	}
}

func TestSubscription_UnregisterTwice(t *testing.T) {
	_, u := newSource(t)

	sub, err := Register(u, slotAdd, slotRemove, testEventKind, func(com.HRESULT, string) {})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := sub.Unregister(); err != nil {
		t.Fatalf("first Unregister: %v", err)
	}
	if err := sub.Unregister(); !errors.Is(err, errors.ErrAlreadyClosed) {
		t.Fatalf("second Unregister = %v, want already_closed", err)
	}
}

func TestRegister_Rejected(t *testing.T) {
	_, u := newSource(t)
	live := com.Live()

	// slot 4 treats the handler pointer as a token and rejects it
	_, err := Register(u, slotRemove, slotRemove, testEventKind, func(com.HRESULT, string) {})
	if err == nil {
		t.Fatal("expected registration failure")
	}
	var e *errors.Error
	if !errors.As(err, &e) || e.Phase != errors.PhaseRegister || e.Code != com.E_INVALIDARG.Code() {
		t.Fatalf("err = %v", err)
	}
	if com.Live() != live {
		t.Fatalf("shim leaked: live %d, want %d", com.Live(), live)
	}
}

func TestSubscription_TokenFromOtherSource(t *testing.T) {
	_, a := newSource(t)
	_, b := newSource(t)

	sub, err := Register(a, slotAdd, slotRemove, testEventKind, func(com.HRESULT, string) {})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	defer sub.Unregister()

	if hr := b.Call(slotRemove, uintptr(sub.Token())); hr != com.E_INVALIDARG {
		t.Fatalf("foreign removal = %v, want E_INVALIDARG", hr)
	}
}
