package bios

import (
	"testing"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	co "github.com/psxcorn/psxcorn/go/kernel/common"
)

func gprs(m interface{ Reg(int) uint32 }) [32]uint32 {
	var r [32]uint32
	for i := range r {
		r[i] = m.Reg(i)
	}
	return r
}

func TestOpenTh(t *testing.T) {
	b, m := newBios()
	for i := 1; i < numThreads; i++ {
		if id := call(t, b, m, co.TableB0, 0x0e, 0x80020000, 0x801f0000, 0x80030000); id != uint32(i) {
			t.Fatalf("OpenTh %d returned %d", i, id)
		}
	}
	if id := call(t, b, m, co.TableB0, 0x0e, 0x80020000, 0, 0); id != 0xffffffff {
		t.Fatalf("OpenTh with a full table returned %#x", id)
	}
	if call(t, b, m, co.TableB0, 0x0f, 3) != 1 {
		t.Fatal("CloseTh failed")
	}
	if id := call(t, b, m, co.TableB0, 0x0e, 0x80020000, 0, 0); id != 3 {
		t.Fatalf("OpenTh after CloseTh returned %d", id)
	}
}

func TestChangeThSelf(t *testing.T) {
	b, m := newBios()
	for i := 1; i < 32; i++ {
		m.SetReg(i, uint32(i*0x100))
	}
	m.SetReg(mips.T1, 0x10)
	m.SetReg(mips.A0, 0)
	m.SetReg(mips.RA, testRA)
	before := gprs(m)
	b.InvokeB0()
	after := gprs(m)
	for i := range before {
		if i != mips.V0 && before[i] != after[i] {
			t.Fatalf("ChangeTh(current) changed %s", mips.RegName(i))
		}
	}
	if m.Reg(mips.V0) != 0 || m.Reg(mips.PC) != testRA {
		t.Fatalf("v0=%#x pc=%#x", m.Reg(mips.V0), m.Reg(mips.PC))
	}
	if b.CurrentThread() != 0 {
		t.Fatal("current thread changed")
	}
}

func TestChangeThRoundTrip(t *testing.T) {
	b, m := newBios()
	const entry = 0x80020000
	id := call(t, b, m, co.TableB0, 0x0e, entry, 0x801e0000, 0x80030000)
	for i := 8; i < 26; i++ {
		m.SetReg(i, uint32(0xa000+i))
	}
	m.SetReg(mips.T1, 0x10)
	m.SetReg(mips.A0, id)
	m.SetReg(mips.RA, testRA)
	b.InvokeB0()
	if m.Reg(mips.PC) != entry || m.Reg(mips.SP) != 0x801e0000 || m.Reg(mips.GP) != 0x80030000 {
		t.Fatalf("thread %d started with pc=%#x sp=%#x", id, m.Reg(mips.PC), m.Reg(mips.SP))
	}
	if b.CurrentThread() != int(id) || b.threads[0].status != thReady {
		t.Fatal("scheduler state not updated")
	}
	saved := b.threads[0].reg
	if saved[mips.V0] != 1 {
		t.Fatal("outgoing thread should resume with v0 = 1")
	}

	// the new thread switches straight back
	m.SetReg(mips.S0, 0xdead)
	m.SetReg(mips.T1, 0x10)
	m.SetReg(mips.A0, 0)
	m.SetReg(mips.RA, entry+0x40)
	b.InvokeB0()
	if m.Reg(mips.PC) != testRA {
		t.Fatalf("thread 0 resumed at %#x", m.Reg(mips.PC))
	}
	got := gprs(m)
	for i := 1; i < len(got); i++ {
		if got[i] != saved[i] {
			t.Fatalf("thread 0 %s = %#x after the round trip, saved %#x", mips.RegName(i), got[i], saved[i])
		}
	}
	if b.threads[id].fn != entry+0x40 || b.threads[id].reg[mips.S0] != 0xdead {
		t.Fatal("thread snapshot not taken")
	}
}

func TestChangeThFree(t *testing.T) {
	b, m := newBios()
	m.SetReg(mips.T1, 0x10)
	m.SetReg(mips.A0, 5)
	m.SetReg(mips.RA, testRA)
	b.InvokeB0()
	if m.Reg(mips.V0) != 0 || b.CurrentThread() != 0 {
		t.Fatal("switched to a free thread")
	}
}
