package psx

import (
	"encoding/binary"
)

const (
	IOBase = 0x1f801000
	IOSize = 0x2000

	regIStat = 0x070
	regIMask = 0x074
	regRCnt  = 0x100
)

// interrupt lines
const (
	IrqVBlank = 1 << 0
	IrqGPU    = 1 << 1
	IrqCDROM  = 1 << 2
	IrqDMA    = 1 << 3
	IrqRCnt0  = 1 << 4
	IrqRCnt1  = 1 << 5
	IrqRCnt2  = 1 << 6
	IrqPad    = 1 << 7
)

// Hw is the register window for the timer and interrupt controller.
// Its IO slice is what the cpu backend maps at IOBase.
type Hw struct {
	IO []byte
}

func NewHw() *Hw {
	return &Hw{IO: make([]byte, IOSize)}
}

func (h *Hw) read(off int) uint32 {
	return binary.LittleEndian.Uint32(h.IO[off:])
}

func (h *Hw) write(off int, v uint32) {
	binary.LittleEndian.PutUint32(h.IO[off:], v)
}

func (h *Hw) IStat() uint32 { return h.read(regIStat) }
func (h *Hw) IMask() uint32 { return h.read(regIMask) }

func (h *Hw) SetIMask(v uint32) { h.write(regIMask, v) }

// WriteIStat has the hardware's acknowledge semantics: zero bits clear pending lines.
func (h *Hw) WriteIStat(v uint32) {
	h.write(regIStat, h.IStat()&v)
}

// Raise marks interrupt lines pending.
func (h *Hw) Raise(lines uint32) {
	h.write(regIStat, h.IStat()|lines)
}

// Pending reports unmasked pending lines.
func (h *Hw) Pending() uint32 {
	return h.IStat() & h.IMask()
}

func rcnt(n int) int { return regRCnt + n*0x10 }

func (h *Hw) RCntCount(n int) uint32  { return h.read(rcnt(n)) & 0xffff }
func (h *Hw) RCntMode(n int) uint32   { return h.read(rcnt(n) + 4) }
func (h *Hw) RCntTarget(n int) uint32 { return h.read(rcnt(n)+8) & 0xffff }

func (h *Hw) SetRCntCount(n int, v uint32)  { h.write(rcnt(n), v&0xffff) }
func (h *Hw) SetRCntMode(n int, v uint32)   { h.write(rcnt(n)+4, v) }
func (h *Hw) SetRCntTarget(n int, v uint32) { h.write(rcnt(n)+8, v&0xffff) }
