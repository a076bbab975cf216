package bios

import (
	"github.com/psxcorn/psxcorn/go/arch/mips"
	"github.com/psxcorn/psxcorn/go/models/psx"
)

// interrupt chain steps
const (
	stepVsync = 0
	stepRCnt  = 1
	stepQueue = 4
	stepDone  = stepQueue + 8
)

type savedRegs struct {
	gpr        [32]uint32
	lo, hi, pc uint32
}

// intrState is the interrupt chain's control block. It survives the softcalls
// made to each interrupt source.
type intrState struct {
	active bool
	step   int
	saved  savedRegs
}

func (b *Bios) saveRegs() {
	s := &b.intr.saved
	for i := range s.gpr {
		s.gpr[i] = b.Reg(i)
	}
	s.lo, s.hi, s.pc = b.Reg(mips.LO), b.Reg(mips.HI), b.Reg(mips.PC)
}

func (b *Bios) loadRegs() {
	s := &b.intr.saved
	for i := 1; i < len(s.gpr); i++ {
		b.SetReg(i, s.gpr[i])
	}
	b.SetReg(mips.LO, s.lo)
	b.SetReg(mips.HI, s.hi)
}

// returnFromException resumes at EPC and pops the SR stack.
func (b *Bios) returnFromException() {
	pc := b.Reg(mips.EPC)
	if b.Reg(mips.CAUSE)&mips.CauseBD != 0 {
		pc += 4
	}
	b.SetReg(mips.PC, pc)
	b.SetReg(mips.SR, mips.PopSR(b.Reg(mips.SR)))
}

// InInterrupt reports whether the interrupt chain is running.
func (b *Bios) InInterrupt() bool {
	return b.intr.active
}

// Exception is the kernel's exception vector. CAUSE, EPC and SR must already
// reflect exception entry.
func (b *Bios) Exception() {
	cause := b.Reg(mips.CAUSE)
	switch cause & 0x3c {
	case 0x00:
		b.saveRegs()
		b.SetReg(mips.SP, b.mem32(intrStackPtr))
		b.intr.active = true
		b.intr.step = stepVsync
		b.pollPads()
		b.interruptStep()
	case 0x20:
		switch b.Reg(mips.A0) {
		case 1: // EnterCriticalSection
			b.SetReg(mips.SR, b.Reg(mips.SR)&^0x404)
			b.SetReg(mips.V0, 1)
		case 2: // ExitCriticalSection
			b.SetReg(mips.SR, b.Reg(mips.SR)|0x404)
		}
		b.SetReg(mips.PC, b.Reg(mips.EPC)+4)
		b.SetReg(mips.SR, mips.PopSR(b.Reg(mips.SR)))
	default:
		b.verbose("unknown exception, cause=%#x epc=%#x\n", cause, b.Reg(mips.EPC))
		b.returnFromException()
	}
}

func (b *Bios) rcntHandler(n int) (uint32, bool) {
	e := &b.events[evRc+n][1]
	return e.handler, e.status == EvStActive
}

// interruptStep advances the interrupt chain, suspending on each handler it calls.
func (b *Bios) interruptStep() {
	hw := b.M.Hw()
	for b.intr.step < stepDone {
		step := b.intr.step
		b.intr.step++
		switch {
		case step == stepVsync:
			if hw.IStat()&psx.IrqVBlank != 0 {
				if fn, ok := b.rcntHandler(3); ok {
					b.softCall(resumeInterrupt, fn)
					return
				}
			}
		case step < stepQueue:
			n := step - stepRCnt
			bit := uint32(psx.IrqRCnt0) << uint(n)
			if hw.IStat()&bit != 0 {
				hw.WriteIStat(^bit)
				if fn, ok := b.rcntHandler(n); ok {
					b.softCall(resumeInterrupt, fn)
					return
				}
			}
		default:
			if q := b.sysIntRP[step-stepQueue]; q != 0 {
				b.SetReg(mips.S0, b.mem32(q+8))
				b.softCall(resumeInterrupt, b.mem32(q+4))
				return
			}
		}
	}
	b.intr.active = false
	if b.jmpInt != 0 {
		hw.WriteIStat(0xffffffff)
		mem := b.M.Mem()
		jmp := b.jmpInt
		b.SetReg(mips.RA, mem.Read32(jmp))
		b.SetReg(mips.SP, mem.Read32(jmp+4))
		b.SetReg(mips.FP, mem.Read32(jmp+8))
		for i := 0; i < 8; i++ {
			b.SetReg(mips.S0+i, mem.Read32(jmp+12+uint32(i)*4))
		}
		b.SetReg(mips.GP, mem.Read32(jmp+44))
		b.SetReg(mips.V0, 1)
		b.jumpRA()
		return
	}
	hw.WriteIStat(0)
	b.loadRegs()
	b.returnFromException()
}

// ReturnFromException restores the registers saved at interrupt entry.
func (b *Bios) ReturnFromException() {
	b.loadRegs()
	b.returnFromException()
}

func (b *Bios) ResetEntryInt() {
	b.jmpInt = 0
}

func (b *Bios) HookEntryInt(jmp uint32) {
	b.jmpInt = jmp
}

func (b *Bios) SysEnqIntRP(prio, queue uint32) uint32 {
	b.sysIntRP[prio&7] = queue
	return 0
}

func (b *Bios) SysDeqIntRP(prio, queue uint32) uint32 {
	b.sysIntRP[prio&7] = 0
	return 0
}
