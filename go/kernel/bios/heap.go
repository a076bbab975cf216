package bios

import (
	"github.com/psxcorn/psxcorn/go/models/psx"
)

const (
	heapFree     = 1
	heapSizeMask = 0xfffffffc
	ramPhysMask  = psx.RamSize - 1
)

// heap bounds are guest addresses; a zero base means InitHeap hasn't run
type heap struct {
	base, end uint32
}

func (b *Bios) header(chunk uint32) (size uint32, free bool) {
	h := b.mem32(chunk)
	return h & heapSizeMask, h&heapFree != 0
}

// coalesce merges each run of adjacent free blocks into its first header.
func (b *Bios) coalesce() {
	mem := b.M.Mem()
	var start, total uint32
	collecting := false
	for chunk := b.heap.base; chunk < b.heap.end; {
		size, free := b.header(chunk)
		if free {
			if !collecting {
				start, total, collecting = chunk, size, true
			} else {
				total += size + 4
			}
		} else if collecting {
			collecting = false
			mem.Write32(start, total|heapFree)
		}
		if chunk+size+4 <= chunk {
			break
		}
		chunk += size + 4
	}
	if collecting {
		mem.Write32(start, total|heapFree)
	}
}

// Malloc is first-fit over the block chain after a coalescing pass.
func (b *Bios) Malloc(n uint32) uint32 {
	if b.heap.base == 0 {
		b.verbose("malloc %#x: uninitialized heap\n", n)
		return 0
	}
	b.coalesce()
	mem := b.M.Mem()
	want := (n + 3) &^ 3
	chunk := b.heap.base
	for chunk < b.heap.end {
		size, free := b.header(chunk)
		if free && size >= want {
			if size == want {
				mem.Write32(chunk, size)
			} else {
				mem.Write32(chunk, want)
				mem.Write32(chunk+want+4, ((size-want-4)&heapSizeMask)|heapFree)
			}
			return ((chunk & ramPhysMask) + 4) | 0x80000000
		}
		// a corrupt header can't walk the chain backwards
		if chunk+size+4 <= chunk {
			break
		}
		chunk += size + 4
	}
	b.verbose("malloc %#x: out of memory\n", n)
	return 0
}

func (b *Bios) Free(ptr uint32) {
	if ptr == 0 {
		return
	}
	mem := b.M.Mem()
	mem.Write32(ptr-4, mem.Read32(ptr-4)|heapFree)
}

func (b *Bios) Calloc(n, size uint32) uint32 {
	total := n * size
	ptr := b.Malloc(total)
	if ptr != 0 {
		p := b.M.Mem().Slice(ptr, int(total))
		for i := range p {
			p[i] = 0
		}
	}
	return ptr
}

// Realloc frees then allocates without copying the old contents, as the
// firmware does. Programs that rely on this behavior exist.
func (b *Bios) Realloc(ptr, size uint32) uint32 {
	b.Free(ptr)
	return b.Malloc(size)
}

// InitHeap lays a single free block over the arena, clamped to the end of RAM.
func (b *Bios) InitHeap(base, size uint32) {
	if uint64(base&ramPhysMask)+uint64(size) >= psx.RamSize {
		size = 0x1ffffc - (base & ramPhysMask)
	}
	size &^= 3
	b.heap = heap{base: base, end: base + size}
	if size >= 4 {
		b.M.Mem().Write32(base, (size-4)|heapFree)
	}
	b.verbose("InitHeap %#x,%#x\n", base, size)
}
