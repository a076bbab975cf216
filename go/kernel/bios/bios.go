package bios

import (
	"github.com/psxcorn/psxcorn/go/arch/mips"
	co "github.com/psxcorn/psxcorn/go/kernel/common"
	"github.com/psxcorn/psxcorn/go/models"
)

// RAM words the kernel keeps state in.
const (
	intrStackPtr = 0x6c80
	randSeed     = 0x9010
	clearRCnt    = 0x8600

	c0TableAddr = 0x674
	b0TableAddr = 0x874
)

// Bios is the high-level kernel context. All tables and control blocks are
// owned here and reinitialized by Reset.
type Bios struct {
	*co.KernelBase

	features models.Features

	heap    heap
	threads [numThreads]thread
	current int
	events  [numEvents][numSpecs]event
	fds     [numFds]fileDesc
	find    findState

	// softcall continuations, indexed by resume id
	resume   [numResume]func()
	delivery []*deliverFrame
	pending  []evRef
	sort     sortState
	search   searchState
	intr     intrState

	jmpInt   uint32
	sysIntRP [8]uint32

	cardState  int
	cardChan   uint32
	padBuf     uint32
	padBuf1    uint32
	padBuf2    uint32
	padBuf1Len uint32
	padBuf2Len uint32
}

// New creates a reset kernel bound to m. Its tables stay empty until Populate.
func New(m models.Machine) *Bios {
	b := &Bios{KernelBase: co.NewKernelBase(m)}
	b.Names = Names
	b.After = b.flushEvents
	b.resume = [numResume]func(){
		resumeDeliver:   b.drainEvents,
		resumeQsort:     b.qsortStep,
		resumeBsearch:   b.bsearchStep,
		resumeInterrupt: b.interruptStep,
	}
	b.Reset()
	return b
}

// Reset reinitializes every control block and seeds the kernel's RAM words.
func (b *Bios) Reset() {
	b.heap = heap{}
	b.threads = [numThreads]thread{}
	b.threads[0].status = thRunning
	b.current = 0
	b.events = [numEvents][numSpecs]event{}
	b.fds = [numFds]fileDesc{}
	b.find = findState{}
	b.delivery = nil
	b.pending = nil
	b.sort = sortState{}
	b.search = searchState{}
	b.intr = intrState{}
	b.jmpInt = 0
	b.sysIntRP = [8]uint32{}
	b.cardState = -1
	b.cardChan = 0
	b.padBuf, b.padBuf1, b.padBuf2 = 0, 0, 0
	b.padBuf1Len, b.padBuf2Len = 0, 0

	mem := b.M.Mem()
	mem.Write32(intrStackPtr, 0x85c8)
	mem.Write32(randSeed, 0xac20cc00)
}

// Features returns the groups populated by the last Populate call.
func (b *Bios) Features() models.Features {
	return b.features
}

// InvokeA0, InvokeB0 and InvokeC0 are the three trap entry points. They report
// whether the call number in t1 has a handler.
func (b *Bios) InvokeA0() bool { return b.invoke(co.TableA0) }
func (b *Bios) InvokeB0() bool { return b.invoke(co.TableB0) }
func (b *Bios) InvokeC0() bool { return b.invoke(co.TableC0) }

func (b *Bios) invoke(table int) bool {
	if b.Invoke(table) {
		return true
	}
	if b.M.Config().Verbose {
		num := int(b.Reg(mips.T1) & 0xff)
		b.Printf("unhandled %s:%#02x %s\n", co.TableName(table), num, b.Name(table, num))
	}
	return false
}

func (b *Bios) verbose(format string, a ...interface{}) {
	if b.M.Config().Verbose {
		b.Printf(format, a...)
	}
}

func (b *Bios) mem32(addr uint32) uint32 {
	return b.M.Mem().Read32(addr)
}

func (b *Bios) jumpRA() {
	b.SetReg(mips.PC, b.Reg(mips.RA))
}
