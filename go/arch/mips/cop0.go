package mips

// CAUSE and SR bits used by exception entry and return.
const (
	CauseBD       = 1 << 31
	CauseExcShift = 2
	CauseExcMask  = 0x1f << CauseExcShift

	SrIEc = 1 << 0
	// interrupt mask bit for the external interrupt line
	SrIm2 = 1 << 10
)

type regRW interface {
	RegRead(reg int) (uint64, error)
	RegWrite(reg int, val uint64) error
}

// PushSR enters kernel mode with interrupts disabled, saving the previous
// mode/enable pairs in the three-deep SR stack.
func PushSR(sr uint32) uint32 {
	return sr&^0x3f | (sr&0xf)<<2
}

// PopSR is the rfe instruction's SR transform.
func PopSR(sr uint32) uint32 {
	return sr&^0xf | (sr&0x3c)>>2
}

// EnterException performs the cpu's side of taking an exception: CAUSE gets
// the code and branch-delay flag, EPC the restart address, SR is pushed.
// The caller then jumps to the handler.
func EnterException(r regRW, code, epc uint32, bd bool) {
	cause, _ := r.RegRead(CAUSE)
	c := uint32(cause)&^(CauseExcMask|CauseBD) | code<<CauseExcShift&CauseExcMask
	if bd {
		c |= CauseBD
	}
	r.RegWrite(CAUSE, uint64(c))
	r.RegWrite(EPC, uint64(epc))
	sr, _ := r.RegRead(SR)
	r.RegWrite(SR, uint64(PushSR(uint32(sr))))
}

// InterruptsEnabled reports whether a pending external interrupt would be taken.
func InterruptsEnabled(sr uint32) bool {
	return sr&(SrIEc|SrIm2) == SrIEc|SrIm2
}
