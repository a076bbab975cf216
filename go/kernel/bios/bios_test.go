package bios

import (
	"testing"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	co "github.com/psxcorn/psxcorn/go/kernel/common"
	"github.com/psxcorn/psxcorn/go/models"
	"github.com/psxcorn/psxcorn/go/models/mock"
)

const (
	testRA    = 0x80010100
	testStack = 0x801ff000
)

func newBios() (*Bios, *mock.Machine) {
	m := mock.NewMachine()
	b := New(m)
	b.Populate(models.AllFeatures())
	m.SetReg(mips.SP, testStack)
	return b, m
}

// call performs a trap into table with the given call number and arguments,
// returning v0. Arguments past the fourth go to the stack at sp+16.
func call(t *testing.T, b *Bios, m *mock.Machine, table, num int, args ...uint32) uint32 {
	m.SetReg(mips.T1, uint32(num))
	for i, a := range args {
		if i < 4 {
			m.SetReg(mips.A0+i, a)
		} else {
			m.M.Write32(m.Reg(mips.SP)+16+uint32(i-4)*4, a)
		}
	}
	m.SetReg(mips.RA, testRA)
	m.SetReg(mips.PC, co.TableVector[table])
	if !b.Invoke(table) {
		t.Fatalf("%s:%02x not handled", co.TableName(table), num)
	}
	return m.Reg(mips.V0)
}

// runGuest stands in for guest code while the kernel is suspended in a
// softcall: whenever pc reaches a function in fns, it runs it natively,
// returns through ra, and resumes the kernel.
func runGuest(t *testing.T, b *Bios, m *mock.Machine, fns map[uint32]func()) {
	for i := 0; i < 10000; i++ {
		pc := m.Reg(mips.PC)
		fn, ok := fns[pc]
		if !ok {
			return
		}
		fn()
		ra := m.Reg(mips.RA)
		if !IsSoftCallReturn(ra) {
			t.Fatalf("guest function at %#x returning to %#x, not a softcall sentinel", pc, ra)
		}
		m.SetReg(mips.PC, ra)
		if !b.Resume(ra) {
			t.Fatalf("Resume(%#x) failed", ra)
		}
	}
	t.Fatal("guest loop did not terminate")
}

func TestUnhandledCall(t *testing.T) {
	b, m := newBios()
	m.SetReg(mips.A0, 0x1234)
	m.SetReg(mips.V0, 0x5678)
	m.SetReg(mips.RA, testRA)
	before, _ := m.ContextSave(nil)
	mem := append([]byte(nil), m.M.RAM...)
	for table := 0; table < co.NumTables; table++ {
		for num := 0; num < 256; num++ {
			if b.Lookup(table, num) != nil {
				continue
			}
			m.SetReg(mips.T1, uint32(num))
			if b.Invoke(table) {
				t.Fatalf("empty slot %s:%02x reported handled", co.TableName(table), num)
			}
		}
	}
	m.SetReg(mips.T1, 0)
	after, _ := m.ContextSave(nil)
	b1, b2 := before.([]uint64), after.([]uint64)
	for i := range b1 {
		if i != mips.T1 && b1[i] != b2[i] {
			t.Fatalf("register %s changed by unhandled calls", mips.RegName(i))
		}
	}
	if string(mem) != string(m.M.RAM) {
		t.Fatal("memory changed by unhandled calls")
	}
}

func TestPopulateGroups(t *testing.T) {
	m := mock.NewMachine()
	b := New(m)
	b.Populate(models.Features{})
	if b.Lookup(co.TableA0, 0x33) != nil || b.Lookup(co.TableB0, 0x08) != nil {
		t.Fatal("heap and event calls installed with every group disabled")
	}
	if b.Lookup(co.TableA0, 0x3f) == nil || b.Lookup(co.TableB0, 0x51) == nil {
		t.Fatal("always-present calls missing")
	}
	b.Populate(models.Features{MCD: true})
	if b.Lookup(co.TableA0, 0xab) != nil {
		t.Fatal("_card_info installed without events")
	}
	if b.Lookup(co.TableB0, 0x4e) == nil {
		t.Fatal("_card_write missing with MCD enabled")
	}
	b.Populate(models.AllFeatures())
	if b.Lookup(co.TableA0, 0xab) == nil || b.Lookup(co.TableC0, 0x0a) == nil {
		t.Fatal("missing calls with every group enabled")
	}
	if b.Lookup(co.TableA0, 0x33).Name != "malloc" {
		t.Fatalf("bad name: %s", b.Lookup(co.TableA0, 0x33).Name)
	}
}

func TestVerboseUnhandled(t *testing.T) {
	b, m := newBios()
	m.Conf.Verbose = true
	m.SetReg(mips.T1, 0x1b)
	if b.InvokeA0() {
		t.Fatal("strlen should be unhandled")
	}
	if got := m.Log.String(); got != "unhandled A0:0x1b strlen\n" {
		t.Fatalf("log: %q", got)
	}
}

// guestStr stores s at addr and returns addr, for passing strings as arguments.
func guestStr(m *mock.Machine, addr uint32, s string) uint32 {
	m.M.WriteStr(addr, s)
	return addr
}
