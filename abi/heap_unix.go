//go:build unix

package abi

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	heapAlign     = 16
	heapChunkSize = 1 << 16
	heapLargeSize = heapChunkSize / 4
	heapPoison    = 0xdd
)

// heap is a size-class allocator over anonymous mappings. Memory is never
// returned to the OS; freed blocks go to a per-class free list.
type heap struct {
	free    map[uintptr][]uintptr
	sizes   map[uintptr]uintptr
	mapping [][]byte
	cur     uintptr
	end     uintptr
	stats   Stats
	mu      sync.Mutex
}

var native = &heap{
	free:  make(map[uintptr][]uintptr),
	sizes: make(map[uintptr]uintptr),
}

// Alloc returns size bytes of zeroed native memory.
func Alloc(size uintptr) uintptr {
	return native.alloc(size)
}

// Free releases memory obtained from Alloc. Free(0) is a no-op.
func Free(p uintptr) {
	native.release(p)
}

// ReadStats returns a snapshot of allocator counters.
func ReadStats() Stats {
	native.mu.Lock()
	defer native.mu.Unlock()
	return native.stats
}

func (h *heap) alloc(size uintptr) uintptr {
	if size == 0 {
		size = 1
	}
	class := (size + heapAlign - 1) &^ (heapAlign - 1)

	h.mu.Lock()
	defer h.mu.Unlock()

	var p uintptr
	if list := h.free[class]; len(list) > 0 {
		p = list[len(list)-1]
		h.free[class] = list[:len(list)-1]
	} else if class > heapLargeSize {
		p = h.mapChunk(class)
	} else {
		if h.cur+class > h.end {
			h.cur = h.mapChunk(heapChunkSize)
			h.end = h.cur + heapChunkSize
		}
		p = h.cur
		h.cur += class
	}

	zero(p, class)
	h.sizes[p] = class
	h.stats.Allocs++
	h.stats.Live++
	return p
}

func (h *heap) release(p uintptr) {
	if p == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	class, ok := h.sizes[p]
	if !ok {
		panic(fmt.Sprintf("abi: free of unknown pointer %#x", p))
	}
	delete(h.sizes, p)
	fill(p, class, heapPoison)
	h.free[class] = append(h.free[class], p)
	h.stats.Frees++
	h.stats.Live--
}

func (h *heap) mapChunk(size uintptr) uintptr {
	b, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		panic(fmt.Sprintf("abi: map %d bytes: %v", size, err))
	}
	h.mapping = append(h.mapping, b)
	return uintptr(unsafe.Pointer(&b[0]))
}
