package bios

import (
	"github.com/psxcorn/psxcorn/go/arch/mips"
	"github.com/psxcorn/psxcorn/go/models/psx"
)

// idle digital pad: status ok, id 0x41, no buttons held (active low)
var idlePad = []byte{0x00, 0x41, 0xff, 0xff}

func (b *Bios) enablePadIrq() {
	hw := b.M.Hw()
	hw.SetIMask(hw.IMask() | psx.IrqVBlank)
	b.SetReg(mips.SR, b.Reg(mips.SR)|0x401)
}

func (b *Bios) InitPAD(buf1, len1, buf2, len2 uint32) uint32 {
	b.padBuf1, b.padBuf1Len = buf1, len1
	b.padBuf2, b.padBuf2Len = buf2, len2
	return 1
}

func (b *Bios) StartPAD() {
	b.enablePadIrq()
}

func (b *Bios) StopPAD() {
	b.padBuf1, b.padBuf2 = 0, 0
}

func (b *Bios) PadInit(kind, buf uint32) {
	b.enablePadIrq()
	b.padBuf = buf
	if buf != 0 {
		b.M.Mem().Write32(buf, 0xffffffff)
	}
}

func (b *Bios) PadDr() int32 {
	return -1
}

func (b *Bios) ChangeClearPad(val uint32) {}

// pollPads fills the registered pad buffers with an idle controller. Reading
// real input is left to the host.
func (b *Bios) pollPads() {
	mem := b.M.Mem()
	fill := func(addr, n uint32) {
		if addr == 0 {
			return
		}
		if n == 0 || n > uint32(len(idlePad)) {
			n = uint32(len(idlePad))
		}
		copy(mem.Slice(addr, int(n)), idlePad)
	}
	fill(b.padBuf1, b.padBuf1Len)
	fill(b.padBuf2, b.padBuf2Len)
	if b.padBuf != 0 {
		mem.Write32(b.padBuf, 0xffffffff)
	}
}
