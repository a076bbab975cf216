package cpu

import (
	"bytes"
	"sync"

	"github.com/psxcorn/psxcorn/go/models"
)

type discacheEntry struct {
	addr uint64
	mem  []byte
	dis  []models.Ins
}

// discache memoizes disassembly by address, invalidated when the bytes change.
type discache struct {
	sync.RWMutex
	cache map[uint64]*discacheEntry
}

func (d *discache) Get(addr uint64, mem []byte) *discacheEntry {
	d.RLock()
	defer d.RUnlock()

	if ent, ok := d.cache[addr]; ok {
		if bytes.Equal(mem, ent.mem) {
			return ent
		}
	}
	return nil
}

func (d *discache) Put(addr uint64, mem []byte, dis []models.Ins) {
	d.Lock()
	defer d.Unlock()

	if d.cache == nil {
		d.cache = make(map[uint64]*discacheEntry)
	}
	// mem usually aliases guest RAM, which the program may rewrite
	d.cache[addr] = &discacheEntry{
		addr: addr,
		mem:  append([]byte(nil), mem...),
		dis:  dis,
	}
}
