package bios

import (
	"github.com/psxcorn/psxcorn/go/models/psx"
)

func rcntIrq(n uint32) uint32 {
	if n == 3 {
		return psx.IrqVBlank
	}
	return 1 << (n + 4)
}

// SetRCnt translates firmware counter flags into the hardware mode word.
func (b *Bios) SetRCnt(counter, target, flags uint32) {
	n := counter & 3
	if n == 3 {
		return
	}
	mode := uint32(0)
	if flags&0x1000 != 0 {
		mode |= 0x50
	}
	if flags&0x100 != 0 {
		mode |= 0x8
	}
	if flags&0x10 != 0 {
		mode |= 0x1
	}
	if flags&0x1 != 0 {
		if n == 2 {
			mode |= 0x200
		} else {
			mode |= 0x100
		}
	}
	hw := b.M.Hw()
	hw.SetRCntMode(int(n), mode)
	hw.SetRCntCount(int(n), target)
}

func (b *Bios) GetRCnt(counter uint32) uint32 {
	n := counter & 3
	if n == 3 {
		return 0
	}
	return b.M.Hw().RCntCount(int(n))
}

func (b *Bios) StartRCnt(counter uint32) uint32 {
	hw := b.M.Hw()
	hw.SetIMask(hw.IMask() | rcntIrq(counter&3))
	return 1
}

func (b *Bios) StopRCnt(counter uint32) {
	hw := b.M.Hw()
	hw.SetIMask(hw.IMask() &^ rcntIrq(counter&3))
}

func (b *Bios) ResetRCnt(counter uint32) {
	n := counter & 3
	if n == 3 {
		return
	}
	hw := b.M.Hw()
	hw.SetRCntMode(int(n), 0)
	hw.SetRCntCount(int(n), 0)
	hw.SetRCntTarget(int(n), 0)
}

// ChangeClearRCnt swaps a per-counter kernel word and returns the old value.
func (b *Bios) ChangeClearRCnt(counter, val uint32) uint32 {
	mem := b.M.Mem()
	addr := counter<<2 + clearRCnt
	old := mem.Read32(addr)
	mem.Write32(addr, val)
	return old
}
