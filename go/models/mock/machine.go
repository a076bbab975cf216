package mock

import (
	"bytes"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	"github.com/psxcorn/psxcorn/go/models"
	"github.com/psxcorn/psxcorn/go/models/cpu"
	"github.com/psxcorn/psxcorn/go/models/psx"
)

// Machine is an in-memory models.Machine with no cpu attached.
// Tests drive the kernel by setting registers and calling into it directly.
type Machine struct {
	*cpu.Regs
	M      *psx.Memory
	H      *psx.Hw
	Cards  [2]*psx.Card
	Conf   *models.Config
	Stdout bytes.Buffer
	Log    bytes.Buffer
}

func NewMachine() *Machine {
	m := &Machine{
		Regs: cpu.NewRegs(32, mips.Enums()),
		M:    psx.NewMemory(),
		H:    psx.NewHw(),
	}
	m.Cards[0] = psx.NewCard()
	m.Cards[1] = psx.NewCard()
	m.Conf = (&models.Config{
		Features: models.AllFeatures(),
		Output:   &m.Log,
		Stdout:   &m.Stdout,
		Stdin:    &bytes.Buffer{},
	}).Init()
	return m
}

func (m *Machine) Mem() *psx.Memory       { return m.M }
func (m *Machine) Hw() *psx.Hw            { return m.H }
func (m *Machine) Config() *models.Config { return m.Conf }

func (m *Machine) Card(port int) psx.Storage {
	if port < 0 || port > 1 || m.Cards[port] == nil {
		return nil
	}
	return m.Cards[port]
}

// Reg reads a register, ignoring errors.
func (m *Machine) Reg(enum int) uint32 {
	v, _ := m.RegRead(enum)
	return uint32(v)
}

func (m *Machine) SetReg(enum int, v uint32) {
	m.RegWrite(enum, uint64(v))
}
