package resource

import (
	"errors"
	"sync"
	"testing"
)

func TestLocalBackend_Basic(t *testing.T) {
	b := NewLocalBackend()

	handle, err := b.Create("shim", "test value")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if handle == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := b.Get(handle)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test value" {
		t.Fatalf("Expected 'test value', got %v", val)
	}

	kind, ok := b.Kind(handle)
	if !ok || kind != "shim" {
		t.Fatalf("Kind = %q, %v", kind, ok)
	}

	val, ok = b.Drop(handle)
	if !ok {
		t.Fatal("Drop failed")
	}
	if val != "test value" {
		t.Fatalf("Expected 'test value', got %v", val)
	}

	if _, ok = b.Get(handle); ok {
		t.Fatal("Expected Get to fail after Drop")
	}
}

func TestLocalBackend_InvalidHandles(t *testing.T) {
	b := NewLocalBackend()

	for _, h := range []Handle{0, 1, 100} {
		if _, ok := b.Get(h); ok {
			t.Errorf("Get(%d) succeeded on empty backend", h)
		}
		if _, ok := b.Drop(h); ok {
			t.Errorf("Drop(%d) succeeded on empty backend", h)
		}
	}
}

func TestLocalBackend_HandleReuse(t *testing.T) {
	b := NewLocalBackend()

	h1, _ := b.Create("shim", "a")
	b.Drop(h1)
	h2, _ := b.Create("shim", "b")

	if h1 != h2 {
		t.Fatalf("Expected handle reuse: h1=%d, h2=%d", h1, h2)
	}

	val, _ := b.Get(h2)
	if val != "b" {
		t.Fatalf("Expected 'b', got %v", val)
	}
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
}

func TestLocalBackend_Close(t *testing.T) {
	b := NewLocalBackend()
	d := &dropCounter{}

	b.Create("shim", d)
	b.Create("shim", "plain")

	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if d.count != 1 {
		t.Fatalf("Drop called %d times, want 1", d.count)
	}

	if _, err := b.Create("shim", "late"); !errors.Is(err, ErrClosed) {
		t.Fatalf("Create after Close: %v", err)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if d.count != 1 {
		t.Fatal("second Close ran droppers again")
	}
}

func TestLocalBackend_Each(t *testing.T) {
	b := NewLocalBackend()
	b.Create("a", 1)
	h, _ := b.Create("b", 2)
	b.Create("c", 3)
	b.Drop(h)

	var kinds []string
	b.Each(func(_ Handle, kind string, _ any) bool {
		kinds = append(kinds, kind)
		return true
	})
	if len(kinds) != 2 || kinds[0] != "a" || kinds[1] != "c" {
		t.Fatalf("Each saw %v", kinds)
	}

	n := 0
	b.Each(func(Handle, string, any) bool {
		n++
		return false
	})
	if n != 1 {
		t.Fatalf("Each did not stop early: %d", n)
	}
}

func TestLocalBackend_Concurrent(t *testing.T) {
	b := NewLocalBackend()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			h, err := b.Create("shim", n)
			if err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			if v, ok := b.Get(h); !ok || v != n {
				t.Errorf("Get(%d) = %v, %v", h, v, ok)
			}
			b.Drop(h)
		}(i)
	}

	wg.Wait()

	if b.Len() != 0 {
		t.Fatalf("Len = %d after concurrent create/drop", b.Len())
	}
}
