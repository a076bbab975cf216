package r3000

// primary opcodes
const (
	opSpecial = 0x00
	opRegimm  = 0x01
	opJ       = 0x02
	opJal     = 0x03
	opBeq     = 0x04
	opBne     = 0x05
	opBlez    = 0x06
	opBgtz    = 0x07
	opAddi    = 0x08
	opAddiu   = 0x09
	opSlti    = 0x0a
	opSltiu   = 0x0b
	opAndi    = 0x0c
	opOri     = 0x0d
	opXori    = 0x0e
	opLui     = 0x0f
	opCop0    = 0x10
	opLb      = 0x20
	opLh      = 0x21
	opLwl     = 0x22
	opLw      = 0x23
	opLbu     = 0x24
	opLhu     = 0x25
	opLwr     = 0x26
	opSb      = 0x28
	opSh      = 0x29
	opSwl     = 0x2a
	opSw      = 0x2b
	opSwr     = 0x2e
)

// SPECIAL function codes
const (
	fnSll     = 0x00
	fnSrl     = 0x02
	fnSra     = 0x03
	fnSllv    = 0x04
	fnSrlv    = 0x06
	fnSrav    = 0x07
	fnJr      = 0x08
	fnJalr    = 0x09
	fnSyscall = 0x0c
	fnBreak   = 0x0d
	fnMfhi    = 0x10
	fnMthi    = 0x11
	fnMflo    = 0x12
	fnMtlo    = 0x13
	fnMult    = 0x18
	fnMultu   = 0x19
	fnDiv     = 0x1a
	fnDivu    = 0x1b
	fnAdd     = 0x20
	fnAddu    = 0x21
	fnSub     = 0x22
	fnSubu    = 0x23
	fnAnd     = 0x24
	fnOr      = 0x25
	fnXor     = 0x26
	fnNor     = 0x27
	fnSlt     = 0x2a
	fnSltu    = 0x2b
)

// coprocessor 0 transfer ops (rs field) and registers
const (
	copMf = 0x00
	copMt = 0x04
	copCo = 0x10
	fnRfe = 0x10

	c0BadVaddr = 8
	c0SR       = 12
	c0Cause    = 13
	c0EPC      = 14
	c0PRId     = 15
)

const (
	// general exception vector in kseg0
	excVector = 0x80000080
	// SR isolate-cache bit: stores go to the d-cache instead of memory
	srIsC = 1 << 16
	prid  = 0x00000002
)
