package mips

import (
	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	cs "github.com/lunixbochs/capstr"

	"github.com/psxcorn/psxcorn/go/cpu"
	"github.com/psxcorn/psxcorn/go/models"
)

// Register enums for the R3000A core. The general registers use their
// architectural numbers so a slice of 32 words can be indexed directly.
const (
	ZERO = iota
	AT
	V0
	V1
	A0
	A1
	A2
	A3
	T0
	T1
	T2
	T3
	T4
	T5
	T6
	T7
	S0
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	T8
	T9
	K0
	K1
	GP
	SP
	FP
	RA

	PC
	HI
	LO

	// coprocessor 0
	SR
	CAUSE
	EPC

	NumRegs
)

var gprNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// Enums lists every register enum, for building a register file.
func Enums() []int {
	enums := make([]int, NumRegs)
	for i := range enums {
		enums[i] = i
	}
	return enums
}

// RegName returns the ABI name of a register enum.
func RegName(enum int) string {
	switch {
	case enum >= 0 && enum < len(gprNames):
		return gprNames[enum]
	case enum == PC:
		return "pc"
	case enum == HI:
		return "hi"
	case enum == LO:
		return "lo"
	case enum == SR:
		return "sr"
	case enum == CAUSE:
		return "cause"
	case enum == EPC:
		return "epc"
	}
	return "?"
}

var Arch = &models.Arch{
	Bits: 32,
	PC:   PC,
	SP:   SP,
	Regs: regMap(),
	Asm:  &cpu.Keystone{Arch: ks.ARCH_MIPS, Mode: ks.MODE_MIPS32 + ks.MODE_LITTLE_ENDIAN},
	Dis:  &cpu.Capstr{Arch: cs.ARCH_MIPS, Mode: cs.MODE_MIPS32},
}

func regMap() map[string]int {
	m := make(map[string]int, NumRegs)
	for i := 0; i < NumRegs; i++ {
		if i == ZERO {
			continue
		}
		m[RegName(i)] = i
	}
	return m
}
