package bios

import (
	"github.com/psxcorn/psxcorn/go/arch/mips"
)

const numThreads = 8

// thread control block status
const (
	thFree = iota
	thReady
	thRunning
)

type thread struct {
	status int
	// resume address
	fn  uint32
	reg [32]uint32
}

// OpenTh claims the first free slot after the boot context.
func (b *Bios) OpenTh(fn, sp, gp uint32) uint32 {
	for i := 1; i < numThreads; i++ {
		th := &b.threads[i]
		if th.status == thFree {
			*th = thread{status: thReady, fn: fn}
			th.reg[mips.SP] = sp
			th.reg[mips.GP] = gp
			b.verbose("OpenTh %d: fn=%#x sp=%#x gp=%#x\n", i, fn, sp, gp)
			return uint32(i)
		}
	}
	return 0xffffffff
}

func (b *Bios) CloseTh(id uint32) uint32 {
	i := int(id & 0xff)
	if i >= numThreads || b.threads[i].status == thFree {
		return 0
	}
	b.threads[i].status = thFree
	return 1
}

// ChangeTh switches the live register file to another thread. The outgoing
// thread resumes at its ra with v0 = 1.
func (b *Bios) ChangeTh(id uint32) {
	i := int(id & 0xff)
	if i >= numThreads || b.threads[i].status == thFree || i == b.current {
		b.SetReg(mips.V0, 0)
		return
	}
	b.SetReg(mips.V0, 1)
	cur := &b.threads[b.current]
	if cur.status == thRunning {
		cur.status = thReady
		cur.fn = b.Reg(mips.RA)
		for r := range cur.reg {
			cur.reg[r] = b.Reg(r)
		}
	}
	next := &b.threads[i]
	for r := 1; r < len(next.reg); r++ {
		b.SetReg(r, next.reg[r])
	}
	b.SetReg(mips.PC, next.fn)
	next.status = thRunning
	b.current = i
}

// CurrentThread returns the index of the running context.
func (b *Bios) CurrentThread() int {
	return b.current
}
