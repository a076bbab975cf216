package bios

import (
	"testing"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	co "github.com/psxcorn/psxcorn/go/kernel/common"
)

const (
	hwCard    = 0xf0000011
	swCard    = 0xf4000001
	specIOE   = 0x0004
	cardEvent = 0x11 | 2<<8
)

func TestEventTransitions(t *testing.T) {
	b, m := newBios()
	h := call(t, b, m, co.TableB0, 0x08, hwCard, specIOE, EvMdNoIntr, 0)
	if h != cardEvent {
		t.Fatalf("OpenEvent handle %#x", h)
	}
	if b.EventStatus(h) != EvStWait {
		t.Fatalf("new event status %#x", b.EventStatus(h))
	}
	// delivery to a waiting event is dropped
	call(t, b, m, co.TableB0, 0x07, hwCard, specIOE)
	if b.EventStatus(h) != EvStWait {
		t.Fatal("event delivered while waiting")
	}
	call(t, b, m, co.TableB0, 0x0c, h)
	if b.EventStatus(h) != EvStActive {
		t.Fatal("EnableEvent did not activate")
	}
	if call(t, b, m, co.TableB0, 0x0b, h) != 0 {
		t.Fatal("TestEvent reported an undelivered event")
	}
	call(t, b, m, co.TableB0, 0x07, hwCard, specIOE)
	if b.EventStatus(h) != EvStAlready {
		t.Fatalf("status after delivery %#x", b.EventStatus(h))
	}
	if call(t, b, m, co.TableB0, 0x0b, h) != 1 || b.EventStatus(h) != EvStActive {
		t.Fatal("TestEvent did not consume the delivery")
	}
	if call(t, b, m, co.TableB0, 0x0b, h) != 0 {
		t.Fatal("TestEvent reported the same delivery twice")
	}
	call(t, b, m, co.TableB0, 0x07, hwCard, specIOE)
	call(t, b, m, co.TableB0, 0x20, hwCard, specIOE)
	if b.EventStatus(h) != EvStActive {
		t.Fatal("UnDeliverEvent did not rearm")
	}
	call(t, b, m, co.TableB0, 0x0d, h)
	if b.EventStatus(h) != EvStWait {
		t.Fatal("DisableEvent")
	}
	call(t, b, m, co.TableB0, 0x09, h)
	if b.EventStatus(h) != EvStUnused {
		t.Fatal("CloseEvent")
	}
	if b.CloseEvent(0xffff) != 0 {
		t.Fatal("CloseEvent on a bad handle")
	}
}

func TestEventCallback(t *testing.T) {
	b, m := newBios()
	const h1, h2 = 0x80040000, 0x80040100
	var order []uint32
	guest := map[uint32]func(){
		h1: func() { order = append(order, h1); m.SetReg(mips.V0, 0x55) },
		h2: func() { order = append(order, h2); m.SetReg(mips.V0, 0x66) },
	}
	b.EnableEvent(b.OpenEvent(hwCard, specIOE, EvMdIntr, h1))
	b.EnableEvent(b.OpenEvent(swCard, specIOE, EvMdIntr, h2))

	fd := call(t, b, m, co.TableB0, 0x32, guestStr(m, 0x80050000, "bu00:EVTEST"), fCreat)
	if int32(fd) < firstFd {
		t.Fatalf("open returned %d", int32(fd))
	}
	call(t, b, m, co.TableB0, 0x35, fd, 0x80050100, 16)
	if m.Reg(mips.PC) != h1 || !IsSoftCallReturn(m.Reg(mips.RA)) {
		t.Fatalf("write did not call the first handler: pc=%#x ra=%#x", m.Reg(mips.PC), m.Reg(mips.RA))
	}
	if m.Reg(mips.SP) != testStack-shadowSpace {
		t.Fatalf("softcall sp %#x", m.Reg(mips.SP))
	}
	runGuest(t, b, m, guest)
	if len(order) != 2 || order[0] != h1 || order[1] != h2 {
		t.Fatalf("handlers ran in order %x", order)
	}
	if m.Reg(mips.V0) != 16 || m.Reg(mips.PC) != testRA || m.Reg(mips.RA) != testRA || m.Reg(mips.SP) != testStack {
		t.Fatalf("bad state after delivery: v0=%#x pc=%#x ra=%#x sp=%#x",
			m.Reg(mips.V0), m.Reg(mips.PC), m.Reg(mips.RA), m.Reg(mips.SP))
	}
	if b.EventStatus(cardEvent) != EvStActive {
		t.Fatal("callback events stay active")
	}
}

func TestBuInit(t *testing.T) {
	b, m := newBios()
	h := b.OpenEvent(swCard, specIOE, EvMdNoIntr, 0)
	b.EnableEvent(h)
	call(t, b, m, co.TableA0, 0x70)
	if b.TestEvent(h) != 1 {
		t.Fatal("_bu_init did not deliver the card event")
	}
}

func TestEventIndex(t *testing.T) {
	tests := []struct {
		class uint32
		ev    int
	}{
		{0xf0000011, 0x11},
		{0xf4000001, 0x81},
		{0xf2000003, 0x43},
		{0xff000010, 5*32 + 0x10},
	}
	for _, test := range tests {
		if ev := eventIndex(test.class); ev != test.ev {
			t.Errorf("eventIndex(%#x) = %#x, want %#x", test.class, ev, test.ev)
		}
	}
	for spec, want := range map[uint32]int{0x0004: 2, 0x0001: 0, 0x8000: 15, 0x0301: 16, 0x0302: 17} {
		if got := specIndex(spec); got != want {
			t.Errorf("specIndex(%#x) = %d, want %d", spec, got, want)
		}
	}
}

func TestSoftCall(t *testing.T) {
	b, m := newBios()
	ran := false
	b.resume[resumeDeliver] = func() { ran = true }
	m.SetReg(mips.RA, testRA)
	b.softCall(resumeDeliver, 0x80060000)
	if m.Reg(mips.PC) != 0x80060000 || m.Reg(mips.RA) != SoftCallBase {
		t.Fatalf("softcall entry pc=%#x ra=%#x", m.Reg(mips.PC), m.Reg(mips.RA))
	}
	if b.Resume(SoftCallBase + 4) {
		t.Fatal("resumed at an unaligned sentinel")
	}
	if b.Resume(0x80010000) {
		t.Fatal("resumed at an ordinary address")
	}
	if !b.Resume(SoftCallBase) || !ran {
		t.Fatal("continuation did not run")
	}
	if m.Reg(mips.RA) != testRA || m.Reg(mips.SP) != testStack {
		t.Fatalf("softcall exit ra=%#x sp=%#x", m.Reg(mips.RA), m.Reg(mips.SP))
	}
}

func TestOpenEventBadClass(t *testing.T) {
	b, m := newBios()
	if h := call(t, b, m, co.TableB0, 0x08, 0x06000001, 0x2, EvMdNoIntr, 0); h != 0xffffffff {
		t.Fatalf("OpenEvent with an unknown class returned %#x", h)
	}
	if b.EventStatus(0x06000001) != EvStUnused {
		t.Fatal("bad handle reports a live event")
	}
}
