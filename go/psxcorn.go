// Package psxcorn runs PlayStation programs on a cpu backend with the
// firmware's call tables emulated at high level.
package psxcorn

import (
	"github.com/pkg/errors"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	co "github.com/psxcorn/psxcorn/go/kernel/common"
	"github.com/psxcorn/psxcorn/go/kernel/bios"
	"github.com/psxcorn/psxcorn/go/loader"
	"github.com/psxcorn/psxcorn/go/models"
	"github.com/psxcorn/psxcorn/go/models/cpu"
	"github.com/psxcorn/psxcorn/go/models/psx"
	"github.com/psxcorn/psxcorn/go/models/trace"
)

// initial SR: interrupts enabled, external line unmasked
const resetSR = mips.SrIEc | mips.SrIm2

// Emulator owns the cpu, the console's memory and hardware, the memory
// cards and the high-level kernel. It implements models.Machine.
type Emulator struct {
	*Task
	Bios *bios.Bios

	config *models.Config
	mem    *psx.Memory
	hw     *psx.Hw
	cards  [2]psx.Storage
	tramp  []byte

	entry, gp, sp uint32
	firmware      bool

	// blocks since the last vblank
	blocks int
	traceW *trace.TraceWriter
	status *models.StatusDiff
	err    error
	closed bool
}

func New(config *models.Config, builder cpu.Builder) (*Emulator, error) {
	config = config.Init()
	c, err := builder.New()
	if err != nil {
		return nil, errors.Wrap(err, "creating cpu")
	}
	e := &Emulator{
		Task:   NewTask(c),
		config: config,
		mem:    psx.NewMemory(),
		hw:     psx.NewHw(),
		tramp:  make([]byte, pageSize),
		sp:     loader.DefaultStack,
	}
	e.status = &models.StatusDiff{Arch: e.arch, Regs: e.Cpu}
	if err := e.mapMemory(); err != nil {
		c.Close()
		return nil, err
	}
	e.Bios = bios.New(e)
	e.Bios.Populate(config.Features)
	if config.Strace {
		e.Bios.Strace = config.Output
	}
	if err := e.addHooks(); err != nil {
		c.Close()
		return nil, err
	}
	return e, nil
}

func (e *Emulator) Mem() *psx.Memory       { return e.mem }
func (e *Emulator) Hw() *psx.Hw            { return e.hw }
func (e *Emulator) Config() *models.Config { return e.config }

func (e *Emulator) Card(port int) psx.Storage {
	if port < 0 || port >= len(e.cards) {
		return nil
	}
	return e.cards[port]
}

// SetCard inserts storage into a memory card port. A nil card empties the port.
func (e *Emulator) SetCard(port int, card *psx.Card) {
	if card == nil {
		e.cards[port] = nil
	} else {
		e.cards[port] = card
	}
}

// Entry returns where Run starts.
func (e *Emulator) Entry() uint32 {
	return e.entry
}

// SetEntry sets where Run starts and the stack it starts with.
func (e *Emulator) SetEntry(pc, sp uint32) {
	e.entry, e.sp = pc, sp
}

// fail stops the cpu, making Run return err.
func (e *Emulator) fail(err error) {
	if e.err == nil {
		e.err = err
	}
	e.Stop()
}

// Run executes from the entry point until the guest returns from it, a hook
// fails or the cpu faults. A nonzero return value becomes models.ExitStatus.
func (e *Emulator) Run() error {
	for i := 1; i < 32; i++ {
		e.setReg(i, 0)
	}
	e.setReg(mips.GP, e.gp)
	e.setReg(mips.SP, e.sp)
	e.setReg(mips.FP, e.sp)
	e.setReg(mips.RA, exitAddr)
	e.setReg(mips.SR, resetSR)
	e.setReg(mips.PC, e.entry)
	e.err = nil
	e.blocks = 0
	e.status.Diff(true)
	if e.config.Tracefile != "" && e.traceW == nil {
		if err := e.openTrace(e.config.Tracefile); err != nil {
			return err
		}
	}

	err := e.Start(uint64(e.entry), exitAddr)
	if e.err != nil {
		return e.err
	}
	if err != nil {
		return errors.Wrapf(err, "execution stopped at %#08x", e.reg(mips.PC))
	}
	if e.reg(mips.PC) == exitAddr {
		if status := int32(e.reg(mips.V0)); status != 0 {
			return models.ExitStatus(status)
		}
	}
	return nil
}

func (e *Emulator) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	var err error
	if e.traceW != nil {
		err = e.traceW.Close()
		e.traceW = nil
	}
	if cerr := e.Cpu.Close(); err == nil {
		err = cerr
	}
	return err
}

// invokers call into each table, indexed like co.TableVector.
func (e *Emulator) invokers() [co.NumTables]func() bool {
	return [co.NumTables]func() bool{e.Bios.InvokeA0, e.Bios.InvokeB0, e.Bios.InvokeC0}
}
