package host

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestThread_IDsIncrease(t *testing.T) {
	a := NewThread()
	defer a.Close()
	b := NewThread()
	defer b.Close()

	if a.ThreadID() == 0 || b.ThreadID() <= a.ThreadID() {
		t.Fatalf("ids %d, %d not increasing", a.ThreadID(), b.ThreadID())
	}
}

func TestThread_PostAndGet(t *testing.T) {
	th := NewThread()
	defer th.Close()

	for i := uintptr(1); i <= 3; i++ {
		if err := th.PostThreadMessage(th.ThreadID(), WM_APP, i, i*10); err != nil {
			t.Fatalf("PostThreadMessage: %v", err)
		}
	}

	var msg Msg
	for i := uintptr(1); i <= 3; i++ {
		if r := th.GetMessage(&msg); r <= 0 {
			t.Fatalf("GetMessage = %d", r)
		}
		if msg.Message != WM_APP || msg.WParam != i || msg.LParam != i*10 {
			t.Fatalf("message %d = %+v", i, msg)
		}
	}
}

func TestThread_QuitAfterPending(t *testing.T) {
	th := NewThread()
	defer th.Close()

	th.PostThreadMessage(th.ThreadID(), WM_USER, 0, 0)
	th.PostQuitMessage(7)

	var msg Msg
	if r := th.GetMessage(&msg); r != 1 || msg.Message != WM_USER {
		t.Fatalf("first = %d %+v", r, msg)
	}
	if r := th.GetMessage(&msg); r != 0 || msg.Message != WM_QUIT || msg.WParam != 7 {
		t.Fatalf("quit = %d %+v", r, msg)
	}
}

func TestThread_CloseUnblocks(t *testing.T) {
	th := NewThread()

	done := make(chan int32)
	go func() {
		var msg Msg
		done <- th.GetMessage(&msg)
	}()

	time.Sleep(10 * time.Millisecond)
	th.Close()

	select {
	case r := <-done:
		if r != -1 {
			t.Fatalf("GetMessage = %d, want -1", r)
		}
	case <-time.After(time.Second):
		t.Fatal("GetMessage did not return after Close")
	}

	if err := th.PostThreadMessage(th.ThreadID(), WM_APP, 0, 0); !errors.Is(err, ErrInvalidThread) {
		t.Fatalf("post to closed thread: %v", err)
	}
}

func TestThread_PostFromOtherGoroutines(t *testing.T) {
	th := NewThread()
	defer th.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			th.PostThreadMessage(th.ThreadID(), WM_APP, 1, 0)
		}()
	}
	wg.Wait()

	var msg Msg
	sum := uintptr(0)
	for i := 0; i < 20; i++ {
		th.GetMessage(&msg)
		sum += msg.WParam
	}
	if sum != 20 || th.Pending() != 0 {
		t.Fatalf("sum=%d pending=%d", sum, th.Pending())
	}
}

func TestThread_Windows(t *testing.T) {
	th := NewThread()
	defer th.Close()

	var got []uint32
	hwnd, err := th.CreateWindow(func(h HWND, msg uint32, w, l uintptr) uintptr {
		got = append(got, msg)
		return w + l
	})
	if err != nil || hwnd == 0 {
		t.Fatalf("CreateWindow = %d, %v", hwnd, err)
	}

	if err := th.PostMessage(hwnd, WM_USER+1, 2, 3); err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	th.PostThreadMessage(th.ThreadID(), WM_USER+2, 0, 0)

	var msg Msg
	th.GetMessage(&msg)
	if msg.Hwnd != hwnd {
		t.Fatalf("hwnd = %d, want %d", msg.Hwnd, hwnd)
	}
	th.TranslateMessage(&msg)
	if r := th.DispatchMessage(&msg); r != 5 {
		t.Fatalf("DispatchMessage = %d, want 5", r)
	}

	th.GetMessage(&msg)
	if r := th.DispatchMessage(&msg); r != 0 {
		t.Fatalf("thread message dispatched: %d", r)
	}

	if err := th.DestroyWindow(hwnd); err != nil {
		t.Fatalf("DestroyWindow: %v", err)
	}
	if len(got) != 2 || got[0] != WM_USER+1 || got[1] != WM_DESTROY {
		t.Fatalf("window saw %v", got)
	}

	if err := th.PostMessage(hwnd, WM_USER, 0, 0); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("post to destroyed window: %v", err)
	}
	if err := th.DestroyWindow(hwnd); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("second DestroyWindow: %v", err)
	}
}

func TestThread_CrossThreadPost(t *testing.T) {
	a := NewThread()
	defer a.Close()
	b := NewThread()
	defer b.Close()

	if err := a.PostThreadMessage(b.ThreadID(), WM_APP+5, 1, 2); err != nil {
		t.Fatalf("PostThreadMessage: %v", err)
	}
	if a.Pending() != 0 || b.Pending() != 1 {
		t.Fatalf("pending a=%d b=%d", a.Pending(), b.Pending())
	}
	if err := a.PostThreadMessage(0, WM_APP, 0, 0); !errors.Is(err, ErrInvalidThread) {
		t.Fatalf("post to thread 0: %v", err)
	}
}
