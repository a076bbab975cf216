package cpu

// base hook enums on Unicorn's so the unicorn backend can pass them through
// https://github.com/unicorn-engine/unicorn/blob/master/bindings/go/unicorn/unicorn_const.go
const (
	// hook CPU interrupts
	HOOK_INTR = 1

	// hook each executed instruction
	HOOK_CODE = 4

	// hook each executed basic block
	HOOK_BLOCK = 8

	// hook all memory errors
	HOOK_MEM_ERR = 1008
)

// these errors are used for HOOK_MEM_ERR
const (
	MEM_READ_UNMAPPED  = 19
	MEM_WRITE_UNMAPPED = 20
	MEM_FETCH_UNMAPPED = 21
)

// these constants are used for memory protections
const (
	PROT_NONE  = 0
	PROT_READ  = 1
	PROT_WRITE = 2
	PROT_EXEC  = 4
	PROT_ALL   = 7
)

// MIPS exception codes as reported to HOOK_INTR, stored in CAUSE bits 2-6
const (
	EXC_INT     = 0
	EXC_ADEL    = 4
	EXC_ADES    = 5
	EXC_SYSCALL = 8
	EXC_BREAK   = 9
	EXC_RI      = 10
	EXC_OVF     = 12
)
