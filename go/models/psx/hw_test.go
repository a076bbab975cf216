package psx

import (
	"testing"
)

func TestIStatAck(t *testing.T) {
	h := NewHw()
	h.Raise(IrqVBlank | IrqRCnt1)
	h.SetIMask(IrqRCnt1)
	if h.Pending() != IrqRCnt1 {
		t.Fatalf("Pending() = %#x", h.Pending())
	}
	h.WriteIStat(^uint32(IrqRCnt1))
	if h.IStat() != IrqVBlank {
		t.Fatalf("ack cleared the wrong lines: %#x", h.IStat())
	}
	h.WriteIStat(0xffffffff)
	if h.IStat() != IrqVBlank {
		t.Fatal("writing all ones must not clear anything")
	}
}

func TestRCntRegs(t *testing.T) {
	h := NewHw()
	h.SetRCntCount(2, 0x12345)
	h.SetRCntMode(2, 0x258)
	h.SetRCntTarget(1, 0xffff)
	if h.RCntCount(2) != 0x2345 || h.RCntMode(2) != 0x258 || h.RCntTarget(1) != 0xffff {
		t.Fatal("root counter registers did not round trip")
	}
	if h.RCntCount(0) != 0 {
		t.Fatal("counters overlap")
	}
}
