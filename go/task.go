package psxcorn

import (
	"github.com/pkg/errors"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	"github.com/psxcorn/psxcorn/go/models"
	"github.com/psxcorn/psxcorn/go/models/cpu"
)

// Task wraps a cpu backend with error context and the MIPS register model.
type Task struct {
	cpu.Cpu

	arch *models.Arch
}

func NewTask(c cpu.Cpu) *Task {
	return &Task{Cpu: c, arch: mips.Arch}
}

func (t *Task) Arch() *models.Arch {
	return t.arch
}

func (t *Task) Asm(asm string, addr uint64) ([]byte, error) {
	if t.arch.Asm == nil {
		return nil, errors.New("no assembler for this arch")
	}
	return t.arch.Asm.Asm(asm, addr)
}

func (t *Task) Dis(addr, size uint64, showBytes bool) (string, error) {
	mem, err := t.MemRead(addr, size)
	if err != nil {
		return "", err
	}
	return models.Disas(mem, addr, t.arch, showBytes)
}

func (t *Task) RegDump() ([]models.RegVal, error) {
	return t.arch.RegDump(t.Cpu)
}

func (t *Task) RegRead(enum int) (uint64, error) {
	val, err := t.Cpu.RegRead(enum)
	return val, errors.Wrap(err, "t.RegRead() failed")
}

func (t *Task) RegWrite(enum int, val uint64) error {
	err := t.Cpu.RegWrite(enum, val)
	return errors.Wrap(err, "t.RegWrite() failed")
}

func (t *Task) MemRead(addr, size uint64) ([]byte, error) {
	data, err := t.Cpu.MemRead(addr, size)
	return data, errors.Wrap(err, "t.MemRead() failed")
}

func (t *Task) MemWrite(addr uint64, p []byte) error {
	err := t.Cpu.MemWrite(addr, p)
	return errors.Wrap(err, "t.MemWrite() failed")
}

// reg and setReg are the unchecked forms used by hooks.
func (t *Task) reg(enum int) uint32 {
	v, _ := t.Cpu.RegRead(enum)
	return uint32(v)
}

func (t *Task) setReg(enum int, v uint32) {
	t.Cpu.RegWrite(enum, uint64(v))
}
