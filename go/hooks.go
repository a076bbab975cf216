package psxcorn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	co "github.com/psxcorn/psxcorn/go/kernel/common"
	"github.com/psxcorn/psxcorn/go/kernel/bios"
	"github.com/psxcorn/psxcorn/go/models/cpu"
	"github.com/psxcorn/psxcorn/go/models/psx"
)

var excNames = map[uint32]string{
	cpu.EXC_INT:     "interrupt",
	cpu.EXC_ADEL:    "address error (load)",
	cpu.EXC_ADES:    "address error (store)",
	cpu.EXC_SYSCALL: "syscall",
	cpu.EXC_BREAK:   "break",
	cpu.EXC_RI:      "reserved instruction",
	cpu.EXC_OVF:     "overflow",
}

func (e *Emulator) addHooks() error {
	// start past end hooks everything
	if _, err := e.HookAdd(cpu.HOOK_BLOCK, e.blockHook, 1, 0); err != nil {
		return errors.Wrap(err, "adding block hook")
	}
	if _, err := e.HookAdd(cpu.HOOK_INTR, e.intrHook, 1, 0); err != nil {
		return errors.Wrap(err, "adding interrupt hook")
	}
	if _, err := e.HookAdd(cpu.HOOK_MEM_ERR, e.faultHook, 1, 0); err != nil {
		return errors.Wrap(err, "adding fault hook")
	}
	if e.config.Etrace {
		if _, err := e.HookAdd(cpu.HOOK_CODE, e.codeHook, 1, 0); err != nil {
			return errors.Wrap(err, "adding code hook")
		}
	}
	return nil
}

// tableAt maps a fetch address to the call table whose vector it is.
func tableAt(addr uint32) (int, bool) {
	phys := addr & psx.SegmentMask
	for i, vec := range co.TableVector {
		if phys == vec {
			return i, true
		}
	}
	return 0, false
}

func (e *Emulator) blockHook(_ cpu.Cpu, addr uint64, size uint32) {
	pc := uint32(addr)
	if table, ok := tableAt(pc); ok {
		e.vector(table)
		return
	}
	if bios.IsSoftCallReturn(pc) {
		if !e.Bios.Resume(pc) {
			e.fail(errors.Errorf("return into the middle of a softcall sentinel: %#08x", pc))
		}
		return
	}
	if e.config.VsyncBlocks > 0 {
		e.blocks++
		if e.blocks >= e.config.VsyncBlocks {
			e.blocks = 0
			e.hw.Raise(psx.IrqVBlank)
		}
	}
	e.checkInterrupt(pc)
}

// vector dispatches a jump to 0xA0, 0xB0 or 0xC0.
func (e *Emulator) vector(table int) {
	pc := e.reg(mips.PC)
	if e.invokers()[table]() {
		return
	}
	e.traceUnhandled(table, pc)
	if !e.firmware {
		e.setReg(mips.PC, e.reg(mips.RA))
	}
}

// checkInterrupt takes a pending hardware interrupt at a block boundary.
func (e *Emulator) checkInterrupt(pc uint32) {
	if e.Bios.InInterrupt() || e.hw.Pending() == 0 || !mips.InterruptsEnabled(e.reg(mips.SR)) {
		return
	}
	mips.EnterException(e, cpu.EXC_INT, pc, false)
	e.setReg(mips.PC, excVector)
	e.enterKernel()
}

// enterKernel runs the exception vector at high level unless firmware owns it.
func (e *Emulator) enterKernel() {
	if e.firmware && !e.Bios.Features().EntryInt {
		return
	}
	e.Bios.Exception()
}

// intrHook runs after the cpu has performed exception entry.
func (e *Emulator) intrHook(_ cpu.Cpu, code uint32) {
	switch code {
	case cpu.EXC_INT, cpu.EXC_SYSCALL:
		e.enterKernel()
	default:
		if e.firmware {
			return
		}
		name, ok := excNames[code]
		if !ok {
			name = fmt.Sprintf("exception %d", code)
		}
		e.fail(errors.Errorf("unhandled %s at %#08x", name, e.reg(mips.EPC)))
	}
}

func (e *Emulator) faultHook(_ cpu.Cpu, access int, addr uint64, size int, val int64) bool {
	if ignoredFault(addr) {
		if e.config.Verbose {
			fmt.Fprintf(e.config.Output, "ignored access (%d) at %#08x+%d\n", access, addr, size)
		}
		return true
	}
	return false
}

func (e *Emulator) codeHook(_ cpu.Cpu, addr uint64, size uint32) {
	changes := e.status.Diff(true)
	for i := 0; i < len(changes); i++ {
		if changes[i].Enum == e.arch.PC {
			changes = append(changes[:i], changes[i+1:]...)
			break
		}
	}
	if len(changes) > 0 {
		fmt.Fprintln(e.config.Output, "    "+e.status.Inline(changes, e.config.Color))
	}
	dis, err := e.Dis(addr, uint64(size), true)
	if err != nil {
		fmt.Fprintf(e.config.Output, "%#08x: %v\n", addr, err)
		return
	}
	fmt.Fprintln(e.config.Output, dis)
}
