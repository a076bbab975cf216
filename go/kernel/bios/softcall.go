package bios

import (
	"github.com/psxcorn/psxcorn/go/arch/mips"
)

// Softcalls run guest code on behalf of a native handler. The guest returns
// to a sentinel address encoding which continuation resumes the handler, so
// the interpreter loop is never entered recursively.
const (
	SoftCallBase = 0x81000000
	SoftCallSize = numResume * softCallStride

	softCallStride = 16
	shadowSpace    = 16
)

// resume ids
const (
	resumeDeliver = iota
	resumeQsort
	resumeBsearch
	resumeInterrupt
	numResume
)

// softCall saves ra below a 16-byte shadow area and transfers control to target.
// The continuation registered for id runs when target returns.
func (b *Bios) softCall(id int, target uint32) {
	sp := b.Reg(mips.SP) - shadowSpace
	b.SetReg(mips.SP, sp)
	b.M.Mem().Write32(sp, b.Reg(mips.RA))
	b.SetReg(mips.RA, SoftCallBase+uint32(id)*softCallStride)
	b.SetReg(mips.PC, target)
}

// IsSoftCallReturn reports whether addr is a softcall sentinel.
func IsSoftCallReturn(addr uint32) bool {
	return addr >= SoftCallBase && addr < SoftCallBase+SoftCallSize
}

// Resume is called by the run loop when the guest jumps to a sentinel address.
// It restores the caller's ra and stack, then continues the suspended handler.
func (b *Bios) Resume(addr uint32) bool {
	if !IsSoftCallReturn(addr) || (addr-SoftCallBase)%softCallStride != 0 {
		return false
	}
	id := (addr - SoftCallBase) / softCallStride
	sp := b.Reg(mips.SP)
	b.SetReg(mips.RA, b.M.Mem().Read32(sp))
	b.SetReg(mips.SP, sp+shadowSpace)
	b.resume[id]()
	return true
}
