package bios

import (
	"github.com/psxcorn/psxcorn/go/arch/mips"
)

const (
	numClasses = 6
	numSpecs   = 32
	numEvents  = numClasses * 32
)

// event status
const (
	EvStUnused  = 0x0000
	EvStWait    = 0x1000
	EvStActive  = 0x2000
	EvStAlready = 0x4000
)

// event mode
const (
	EvMdIntr   = 0x1000
	EvMdNoIntr = 0x2000
)

// first event of each class
const (
	evHw = 0 * 32
	evEv = 1 * 32
	evRc = 2 * 32
	evUe = 3 * 32
	evSw = 4 * 32
	evTh = 5 * 32
)

type event struct {
	status  uint32
	mode    uint32
	handler uint32
}

type evRef struct{ ev, spec int }

// deliverFrame holds events raised by one call until they have all been
// delivered, along with the call's result.
type deliverFrame struct {
	queue []evRef
	v0    uint32
}

// eventIndex decodes a class descriptor such as 0xf2000001.
func eventIndex(class uint32) int {
	ev := int(class>>24) & 0xf
	if ev == 0xf {
		ev = 5
	}
	return ev*32 + int(class&0x1f)
}

// specIndex maps a specifier mask to a slot.
func specIndex(spec uint32) int {
	switch spec {
	case 0x0301:
		return 16
	case 0x0302:
		return 17
	}
	for i := 0; i < 16; i++ {
		if spec&(1<<uint(i)) != 0 {
			return i
		}
	}
	return 0
}

// handle decodes an OpenEvent result.
func (b *Bios) handle(h uint32) *event {
	ev, spec := int(h&0xff), int(h>>8)&0xff
	if ev >= numEvents || spec >= numSpecs {
		return nil
	}
	return &b.events[ev][spec]
}

func (b *Bios) lookupEvent(ev, spec int) *event {
	if ev < 0 || ev >= numEvents || spec < 0 || spec >= numSpecs {
		return nil
	}
	return &b.events[ev][spec]
}

// EventStatus reports the status of the event behind an OpenEvent handle.
func (b *Bios) EventStatus(h uint32) uint32 {
	if e := b.handle(h); e != nil {
		return e.status
	}
	return EvStUnused
}

// deliverEvent queues an event. Queued events are delivered once the current
// call has written its result.
func (b *Bios) deliverEvent(ev, spec int) {
	if e := b.lookupEvent(ev, spec); e == nil || e.status != EvStActive {
		return
	}
	b.pending = append(b.pending, evRef{ev, spec})
}

func (b *Bios) flushEvents() {
	if len(b.pending) == 0 {
		return
	}
	b.delivery = append(b.delivery, &deliverFrame{queue: b.pending, v0: b.Reg(mips.V0)})
	b.pending = nil
	b.drainEvents()
}

// drainEvents delivers the top frame's queue, suspending on each callback.
func (b *Bios) drainEvents() {
	if len(b.delivery) == 0 {
		return
	}
	top := b.delivery[len(b.delivery)-1]
	for len(top.queue) > 0 {
		ref := top.queue[0]
		top.queue = top.queue[1:]
		e := &b.events[ref.ev][ref.spec]
		if e.status != EvStActive {
			continue
		}
		if e.mode == EvMdIntr {
			b.softCall(resumeDeliver, e.handler)
			return
		}
		e.status = EvStAlready
	}
	b.delivery = b.delivery[:len(b.delivery)-1]
	b.SetReg(mips.V0, top.v0)
	b.jumpRA()
}

func (b *Bios) DeliverEvent(class, spec uint32) {
	ev, sp := eventIndex(class), specIndex(spec)
	b.verbose("DeliverEvent %#x,%#x\n", ev, sp)
	b.deliverEvent(ev, sp)
}

func (b *Bios) OpenEvent(class, spec, mode, handler uint32) uint32 {
	ev, sp := eventIndex(class), specIndex(spec)
	e := b.lookupEvent(ev, sp)
	if e == nil {
		b.verbose("OpenEvent: bad class %#x\n", class)
		return 0xffffffff
	}
	*e = event{status: EvStWait, mode: mode, handler: handler}
	b.verbose("OpenEvent %#x,%#x (class:%#x, spec:%#x, mode:%#x, func:%#x)\n", ev, sp, class, spec, mode, handler)
	return uint32(ev | sp<<8)
}

func (b *Bios) setStatus(h, status uint32) uint32 {
	e := b.handle(h)
	if e == nil {
		return 0
	}
	e.status = status
	return 1
}

func (b *Bios) CloseEvent(h uint32) uint32   { return b.setStatus(h, EvStUnused) }
func (b *Bios) WaitEvent(h uint32) uint32    { return b.setStatus(h, EvStActive) }
func (b *Bios) EnableEvent(h uint32) uint32  { return b.setStatus(h, EvStActive) }
func (b *Bios) DisableEvent(h uint32) uint32 { return b.setStatus(h, EvStWait) }

// TestEvent reports a delivered event and rearms it.
func (b *Bios) TestEvent(h uint32) uint32 {
	e := b.handle(h)
	if e == nil || e.status != EvStAlready {
		return 0
	}
	e.status = EvStActive
	return 1
}

func (b *Bios) UnDeliverEvent(class, spec uint32) {
	e := b.lookupEvent(eventIndex(class), specIndex(spec))
	if e != nil && e.status == EvStAlready && e.mode == EvMdNoIntr {
		e.status = EvStActive
	}
}

// BuInit delivers the card completion events, as the firmware's _bu_init does.
func (b *Bios) BuInit() {
	b.deliverEvent(0x11, 2)
	b.deliverEvent(0x81, 2)
}
