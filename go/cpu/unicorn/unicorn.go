// Package unicorn runs the guest on the Unicorn engine's MIPS32 core. The
// engine has no usable system coprocessor through its bindings, so SR, CAUSE
// and EPC are shadowed here and exception entry is performed by the wrapper.
package unicorn

import (
	"unsafe"

	"github.com/pkg/errors"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	"github.com/psxcorn/psxcorn/go/models/cpu"
)

const pageSize = 0x1000

// each physical region is visible through kuseg, kseg0 and kseg1
var segments = []uint64{0, 0x80000000, 0xa0000000}

// engine exception numbers passed to interrupt hooks
var excCodes = map[uint32]uint32{
	12: cpu.EXC_ADEL,
	13: cpu.EXC_ADES,
	17: cpu.EXC_SYSCALL,
	18: cpu.EXC_BREAK,
	20: cpu.EXC_RI,
	21: cpu.EXC_OVF,
}

type Builder struct{}

func (b *Builder) New() (cpu.Cpu, error) {
	u, err := uc.NewUnicorn(uc.ARCH_MIPS, uc.MODE_MIPS32+uc.MODE_LITTLE_ENDIAN)
	if err != nil {
		return nil, errors.Wrap(err, "NewUnicorn() failed")
	}
	return &UnicornCpu{Unicorn: u}, nil
}

type UnicornCpu struct {
	uc.Unicorn

	sr, cause, epc uint32
}

func (u *UnicornCpu) Backend() interface{} {
	return u.Unicorn
}

func ucReg(enum int) (int, bool) {
	switch {
	case enum >= mips.ZERO && enum <= mips.RA:
		return uc.MIPS_REG_0 + enum, true
	case enum == mips.PC:
		return uc.MIPS_REG_PC, true
	case enum == mips.HI:
		return uc.MIPS_REG_HI, true
	case enum == mips.LO:
		return uc.MIPS_REG_LO, true
	}
	return 0, false
}

func (u *UnicornCpu) shadow(enum int) *uint32 {
	switch enum {
	case mips.SR:
		return &u.sr
	case mips.CAUSE:
		return &u.cause
	case mips.EPC:
		return &u.epc
	}
	return nil
}

func (u *UnicornCpu) RegRead(enum int) (uint64, error) {
	if p := u.shadow(enum); p != nil {
		return uint64(*p), nil
	}
	reg, ok := ucReg(enum)
	if !ok {
		return 0, errors.Errorf("invalid register: %d", enum)
	}
	return u.Unicorn.RegRead(reg)
}

func (u *UnicornCpu) RegWrite(enum int, val uint64) error {
	if p := u.shadow(enum); p != nil {
		*p = uint32(val)
		return nil
	}
	reg, ok := ucReg(enum)
	if !ok {
		return errors.Errorf("invalid register: %d", enum)
	}
	return u.Unicorn.RegWrite(reg, val&0xffffffff)
}

type context struct {
	uc             uc.Context
	sr, cause, epc uint32
}

func (u *UnicornCpu) ContextSave(reuse interface{}) (interface{}, error) {
	var prev uc.Context
	if c, ok := reuse.(*context); ok {
		prev = c.uc
	}
	ctx, err := u.Unicorn.ContextSave(prev)
	if err != nil {
		return nil, errors.Wrap(err, "ContextSave() failed")
	}
	return &context{ctx, u.sr, u.cause, u.epc}, nil
}

func (u *UnicornCpu) ContextRestore(ctx interface{}) error {
	c, ok := ctx.(*context)
	if !ok {
		return errors.New("incorrect context type")
	}
	u.sr, u.cause, u.epc = c.sr, c.cause, c.epc
	return u.Unicorn.ContextRestore(c.uc)
}

// MemMapSlice maps mem at a physical address in every unmapped segment.
// Regions shorter than a page are extended into the slice's capacity.
func (u *UnicornCpu) MemMapSlice(addr uint64, mem []byte, prot int) error {
	size := uint64(len(mem)+pageSize-1) &^ (pageSize - 1)
	if uint64(cap(mem)) < size || size == 0 {
		return errors.Errorf("mapping at %#x: %#x bytes is not page sized", addr, len(mem))
	}
	mem = mem[:size]
	phys := addr & 0x1fffffff
	for _, seg := range segments {
		if err := u.Unicorn.MemMapPtr(seg|phys, size, prot, unsafe.Pointer(&mem[0])); err != nil {
			return errors.Wrapf(err, "MemMapPtr(%#x) failed", seg|phys)
		}
	}
	return nil
}

// enterException mirrors the interpreter: CP0 entry, then the general vector.
func (u *UnicornCpu) enterException(intno uint32) (uint32, bool) {
	code, ok := excCodes[intno]
	if !ok {
		return 0, false
	}
	pc, _ := u.RegRead(mips.PC)
	epc := uint32(pc)
	// the engine reports syscall and break with pc past the instruction
	if code == cpu.EXC_SYSCALL || code == cpu.EXC_BREAK {
		epc -= 4
	}
	mips.EnterException(u, code, epc, false)
	u.RegWrite(mips.PC, 0x80000080)
	return code, true
}

func (u *UnicornCpu) HookAdd(htype int, cb interface{}, start uint64, end uint64, extra ...int) (cpu.Hook, error) {
	// have to wrap all hooks to conform to Cpu interface :(
	var wrap interface{}
	switch htype {
	case cpu.HOOK_BLOCK, cpu.HOOK_CODE:
		cbc := cb.(func(cpu.Cpu, uint64, uint32))
		wrap = func(_ uc.Unicorn, addr uint64, size uint32) { cbc(u, addr, size) }

	case cpu.HOOK_INTR:
		cbc := cb.(func(cpu.Cpu, uint32))
		wrap = func(_ uc.Unicorn, intno uint32) {
			code, ok := u.enterException(intno)
			if !ok {
				u.Stop()
				return
			}
			cbc(u, code)
		}

	case cpu.HOOK_MEM_ERR:
		cbc := cb.(func(cpu.Cpu, int, uint64, int, int64) bool)
		wrap = func(_ uc.Unicorn, access int, addr uint64, size int, val int64) bool {
			return cbc(u, access, addr, size, val)
		}

	default:
		return nil, errors.Errorf("unsupported hook type: %d", htype)
	}
	return u.Unicorn.HookAdd(htype, wrap, start, end, extra...)
}

func (u *UnicornCpu) HookDel(hh cpu.Hook) error {
	h, ok := hh.(uc.Hook)
	if !ok {
		return errors.Errorf("not a hook: %T", hh)
	}
	return u.Unicorn.HookDel(h)
}
