package common

import (
	"github.com/psxcorn/psxcorn/go/arch/mips"
	"github.com/psxcorn/psxcorn/go/models"
)

var argRegs = []int{mips.A0, mips.A1, mips.A2, mips.A3}

// RegArgs reads the four argument registers.
func RegArgs(m models.Machine) []uint64 {
	ret := make([]uint64, len(argRegs))
	for i, enum := range argRegs {
		ret[i], _ = m.RegRead(enum)
	}
	return ret
}

// StackArgs reads n argument words past the register home area at sp+16.
func StackArgs(m models.Machine, n int) []uint64 {
	sp, _ := m.RegRead(mips.SP)
	mem := m.Mem()
	ret := make([]uint64, n)
	for i := range ret {
		addr := uint32(sp) + 16 + uint32(i)*4
		if !mem.Valid(addr) {
			break
		}
		ret[i] = uint64(mem.Read32(addr))
	}
	return ret
}

// Args returns the register arguments followed by n stack words.
func Args(m models.Machine, n int) []uint64 {
	return append(RegArgs(m), StackArgs(m, n)...)
}
