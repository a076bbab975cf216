// Package r3000 is a pure-Go interpreter for the R3000A integer core with
// its system control coprocessor. It has no geometry coprocessor.
package r3000

import (
	"github.com/pkg/errors"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	"github.com/psxcorn/psxcorn/go/models/cpu"
)

type Builder struct{}

func (b *Builder) New() (cpu.Cpu, error) {
	c := &Cpu{Regs: cpu.NewRegs(32, mips.Enums())}
	c.Hooks = cpu.NewHooks(c)
	c.cop0[c0PRId] = prid
	return c, nil
}

type Cpu struct {
	*cpu.Hooks
	*cpu.Regs

	regions []region
	cop0    [16]uint32

	// address of the executing instruction, and the two that follow it
	cur, pc, npc uint32
	// the previous instruction was a branch, so cur sits in its delay slot
	branch, delay bool
	// next sequential address; anything else starts a new block
	expect     uint32
	redirected bool

	exitRequest bool
	err         error
}

func (c *Cpu) gpr(r int) uint32 {
	v, _ := c.RegRead(r)
	return uint32(v)
}

func (c *Cpu) setGPR(r int, v uint32) {
	if r != mips.ZERO {
		c.RegWrite(r, uint64(v))
	}
}

func (c *Cpu) sr() uint32 {
	return c.gpr(mips.SR)
}

// jump restarts the pipeline at addr.
func (c *Cpu) jump(addr uint32) {
	c.pc, c.npc = addr, addr+4
	c.branch, c.delay = false, false
	c.expect = addr + 1
}

// exception performs exception entry for the executing instruction. Hooks on
// HOOK_INTR run afterwards and may move pc off the general vector.
func (c *Cpu) exception(code uint32) {
	epc := c.cur
	if c.delay {
		epc -= 4
	}
	mips.EnterException(c, code, epc, c.delay)
	c.RegWrite(mips.PC, excVector)
	c.OnIntr(code)
	c.jump(c.gpr(mips.PC))
	c.redirected = true
}

func (c *Cpu) addressError(code, addr uint32) {
	c.cop0[c0BadVaddr] = addr
	c.exception(code)
}

func (c *Cpu) Start(begin, until uint64) error {
	c.exitRequest = false
	c.err = nil
	c.jump(uint32(begin))
	for !c.exitRequest && c.err == nil && uint64(c.pc) != until {
		if c.pc != c.expect {
			c.RegWrite(mips.PC, uint64(c.pc))
			c.OnBlock(uint64(c.pc), 0)
			if c.exitRequest {
				break
			}
			// a block hook may redirect execution, such as a BIOS vector returning to ra
			if pc := c.gpr(mips.PC); pc != c.pc {
				c.jump(pc)
				continue
			}
		}
		c.cur = c.pc
		c.RegWrite(mips.PC, uint64(c.cur))
		if c.cur&3 != 0 {
			c.delay = c.branch
			c.addressError(cpu.EXC_ADEL, c.cur)
			continue
		}
		code := c.translate(c.cur, 4, cpu.PROT_EXEC)
		if code == nil {
			if !c.fault(cpu.MEM_FETCH_UNMAPPED, c.cur, 4, 0) || c.gpr(mips.PC) == c.cur {
				if c.err == nil {
					c.err = errors.Errorf("fetch fault handled without moving pc from %#08x", c.cur)
				}
				break
			}
			c.jump(c.gpr(mips.PC))
			continue
		}
		ins := uint32(code[0]) | uint32(code[1])<<8 | uint32(code[2])<<16 | uint32(code[3])<<24

		c.OnCode(uint64(c.cur), 4)
		if c.exitRequest {
			break
		}
		if pc := c.gpr(mips.PC); pc != c.cur {
			c.jump(pc)
			continue
		}

		c.delay, c.branch = c.branch, false
		c.pc, c.npc = c.npc, c.npc+4
		c.expect = c.cur + 4
		c.redirected = false
		c.exec(ins)
		if c.err != nil {
			c.RegWrite(mips.PC, uint64(c.cur))
		} else if !c.redirected {
			c.RegWrite(mips.PC, uint64(c.pc))
		}
	}
	return c.err
}

func (c *Cpu) Stop() error {
	c.exitRequest = true
	return nil
}

func (c *Cpu) Close() error {
	return nil
}

func (c *Cpu) Backend() interface{} {
	return c
}

// branchTo schedules target after the delay slot. Untaken branches still
// make the next instruction a delay slot.
func (c *Cpu) branchTo(taken bool, target uint32) {
	c.branch = true
	if taken {
		c.npc = target
	}
}

func addOverflows(a, b, r uint32) bool {
	return (a^r)&(b^r)&0x80000000 != 0
}

func subOverflows(a, b, r uint32) bool {
	return (a^b)&(a^r)&0x80000000 != 0
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (c *Cpu) exec(ins uint32) {
	op := ins >> 26
	rs, rt := int(ins>>21&31), int(ins>>16&31)
	simm := uint32(int32(int16(ins)))
	uimm := ins & 0xffff
	s, t := c.gpr(rs), c.gpr(rt)
	btarget := c.cur + 4 + simm<<2

	switch op {
	case opSpecial:
		c.special(ins, s, t)
	case opRegimm:
		cond := int32(s) < 0
		if rt&1 != 0 {
			cond = !cond
		}
		if rt&0x1e == 0x10 {
			c.setGPR(mips.RA, c.cur+8)
		}
		c.branchTo(cond, btarget)
	case opJ, opJal:
		if op == opJal {
			c.setGPR(mips.RA, c.cur+8)
		}
		c.branchTo(true, (c.cur+4)&0xf0000000|(ins&0x3ffffff)<<2)
	case opBeq:
		c.branchTo(s == t, btarget)
	case opBne:
		c.branchTo(s != t, btarget)
	case opBlez:
		c.branchTo(int32(s) <= 0, btarget)
	case opBgtz:
		c.branchTo(int32(s) > 0, btarget)
	case opAddi:
		r := s + simm
		if addOverflows(s, simm, r) {
			c.exception(cpu.EXC_OVF)
			return
		}
		c.setGPR(rt, r)
	case opAddiu:
		c.setGPR(rt, s+simm)
	case opSlti:
		c.setGPR(rt, b2u(int32(s) < int32(simm)))
	case opSltiu:
		c.setGPR(rt, b2u(s < simm))
	case opAndi:
		c.setGPR(rt, s&uimm)
	case opOri:
		c.setGPR(rt, s|uimm)
	case opXori:
		c.setGPR(rt, s^uimm)
	case opLui:
		c.setGPR(rt, uimm<<16)
	case opCop0:
		c.cop(ins, rt, t)
	case opLb, opLbu, opLh, opLhu, opLw, opLwl, opLwr:
		c.loadOp(op, rt, s+simm, t)
	case opSb, opSh, opSw, opSwl, opSwr:
		c.storeOp(op, s+simm, t)
	default:
		c.exception(cpu.EXC_RI)
	}
}

func (c *Cpu) special(ins, s, t uint32) {
	rd := int(ins >> 11 & 31)
	sa := ins >> 6 & 31
	switch ins & 63 {
	case fnSll:
		c.setGPR(rd, t<<sa)
	case fnSrl:
		c.setGPR(rd, t>>sa)
	case fnSra:
		c.setGPR(rd, uint32(int32(t)>>sa))
	case fnSllv:
		c.setGPR(rd, t<<(s&31))
	case fnSrlv:
		c.setGPR(rd, t>>(s&31))
	case fnSrav:
		c.setGPR(rd, uint32(int32(t)>>(s&31)))
	case fnJr:
		c.branchTo(true, s)
	case fnJalr:
		c.setGPR(rd, c.cur+8)
		c.branchTo(true, s)
	case fnSyscall:
		c.exception(cpu.EXC_SYSCALL)
	case fnBreak:
		c.exception(cpu.EXC_BREAK)
	case fnMfhi:
		c.setGPR(rd, c.gpr(mips.HI))
	case fnMthi:
		c.RegWrite(mips.HI, uint64(s))
	case fnMflo:
		c.setGPR(rd, c.gpr(mips.LO))
	case fnMtlo:
		c.RegWrite(mips.LO, uint64(s))
	case fnMult:
		p := uint64(int64(int32(s)) * int64(int32(t)))
		c.setHiLo(uint32(p>>32), uint32(p))
	case fnMultu:
		p := uint64(s) * uint64(t)
		c.setHiLo(uint32(p>>32), uint32(p))
	case fnDiv:
		switch {
		case t == 0:
			lo := uint32(0xffffffff)
			if int32(s) < 0 {
				lo = 1
			}
			c.setHiLo(s, lo)
		case s == 0x80000000 && t == 0xffffffff:
			c.setHiLo(0, 0x80000000)
		default:
			c.setHiLo(uint32(int32(s)%int32(t)), uint32(int32(s)/int32(t)))
		}
	case fnDivu:
		if t == 0 {
			c.setHiLo(s, 0xffffffff)
		} else {
			c.setHiLo(s%t, s/t)
		}
	case fnAdd:
		r := s + t
		if addOverflows(s, t, r) {
			c.exception(cpu.EXC_OVF)
			return
		}
		c.setGPR(rd, r)
	case fnAddu:
		c.setGPR(rd, s+t)
	case fnSub:
		r := s - t
		if subOverflows(s, t, r) {
			c.exception(cpu.EXC_OVF)
			return
		}
		c.setGPR(rd, r)
	case fnSubu:
		c.setGPR(rd, s-t)
	case fnAnd:
		c.setGPR(rd, s&t)
	case fnOr:
		c.setGPR(rd, s|t)
	case fnXor:
		c.setGPR(rd, s^t)
	case fnNor:
		c.setGPR(rd, ^(s | t))
	case fnSlt:
		c.setGPR(rd, b2u(int32(s) < int32(t)))
	case fnSltu:
		c.setGPR(rd, b2u(s < t))
	default:
		c.exception(cpu.EXC_RI)
	}
}

func (c *Cpu) setHiLo(hi, lo uint32) {
	c.RegWrite(mips.HI, uint64(hi))
	c.RegWrite(mips.LO, uint64(lo))
}

// cop0 registers 12-14 live in the shared register file so kernels see them
func (c *Cpu) cop0Read(r int) uint32 {
	switch r {
	case c0SR:
		return c.gpr(mips.SR)
	case c0Cause:
		return c.gpr(mips.CAUSE)
	case c0EPC:
		return c.gpr(mips.EPC)
	}
	return c.cop0[r&15]
}

func (c *Cpu) cop0Write(r int, v uint32) {
	switch r {
	case c0SR:
		c.RegWrite(mips.SR, uint64(v))
	case c0Cause:
		// only the software interrupt bits are writable
		cause := c.gpr(mips.CAUSE)&^0x300 | v&0x300
		c.RegWrite(mips.CAUSE, uint64(cause))
	case c0EPC, c0PRId:
	default:
		c.cop0[r&15] = v
	}
}

func (c *Cpu) cop(ins uint32, rt int, t uint32) {
	rd := int(ins >> 11 & 31)
	switch ins >> 21 & 31 {
	case copMf:
		c.setGPR(rt, c.cop0Read(rd))
	case copMt:
		c.cop0Write(rd, t)
	case copCo:
		if ins&63 == fnRfe {
			c.RegWrite(mips.SR, uint64(mips.PopSR(c.sr())))
			return
		}
		fallthrough
	default:
		c.exception(cpu.EXC_RI)
	}
}

func (c *Cpu) loadOp(op uint32, rt int, addr, t uint32) {
	size := 4
	switch op {
	case opLb, opLbu:
		size = 1
	case opLh, opLhu:
		size = 2
	}
	if op != opLwl && op != opLwr && addr&uint32(size-1) != 0 {
		c.addressError(cpu.EXC_ADEL, addr)
		return
	}
	shift := addr & 3 * 8
	if op == opLwl || op == opLwr {
		addr &^= 3
	}
	v, ok := c.load(addr, size)
	if !ok {
		return
	}
	switch op {
	case opLb:
		v = uint32(int32(int8(v)))
	case opLh:
		v = uint32(int32(int16(v)))
	case opLwl:
		v = t&(0x00ffffff>>shift) | v<<(24-shift)
	case opLwr:
		v = t&(0xffffff00<<(24-shift)) | v>>shift
	}
	c.setGPR(rt, v)
}

func (c *Cpu) storeOp(op uint32, addr, t uint32) {
	size := 4
	switch op {
	case opSb:
		size = 1
	case opSh:
		size = 2
	}
	if op != opSwl && op != opSwr && addr&uint32(size-1) != 0 {
		c.addressError(cpu.EXC_ADES, addr)
		return
	}
	if op == opSwl || op == opSwr {
		shift := addr & 3 * 8
		addr &^= 3
		old, ok := c.load(addr, 4)
		if !ok {
			return
		}
		if op == opSwl {
			t = old&(0xffffff00<<shift) | t>>(24-shift)
		} else {
			t = old&(0x00ffffff>>(24-shift)) | t<<shift
		}
	}
	c.store(addr, size, t)
}
