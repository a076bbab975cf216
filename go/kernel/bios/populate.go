package bios

import (
	co "github.com/psxcorn/psxcorn/go/kernel/common"
	"github.com/psxcorn/psxcorn/go/models"
)

// Populate clears the call tables and installs the handlers for each enabled
// feature group. Calls outside every group are always installed.
func (b *Bios) Populate(f models.Features) {
	b.Clear()
	b.features = f
	a0 := func(num int, fn interface{}) { b.Register(co.TableA0, num, fn) }
	b0 := func(num int, fn interface{}) { b.Register(co.TableB0, num, fn) }
	c0 := func(num int, fn interface{}) { b.Register(co.TableC0, num, fn) }

	a0(0x2f, b.Rand)
	a0(0x30, b.Srand)
	a0(0x31, b.Qsort)
	a0(0x36, b.Bsearch)
	a0(0x3c, b.Putchar)
	a0(0x3e, b.Puts)
	a0(0x3f, b.GuestPrintf)
	a0(0x44, b.FlushCache)
	a0(0x71, b.Init96)
	a0(0x72, b.Remove96)
	b0(0x3d, b.Putchar)
	b0(0x3f, b.Puts)
	b0(0x51, b.Krom2RawAdd)
	b0(0x56, b.GetC0Table)
	b0(0x57, b.GetB0Table)

	if f.Heap {
		a0(0x33, b.Malloc)
		a0(0x34, b.Free)
		a0(0x37, b.Calloc)
		a0(0x38, b.Realloc)
		a0(0x39, b.InitHeap)
	}
	if f.Event {
		a0(0x70, b.BuInit)
		b0(0x07, b.DeliverEvent)
		b0(0x08, b.OpenEvent)
		b0(0x09, b.CloseEvent)
		b0(0x0a, b.WaitEvent)
		b0(0x0b, b.TestEvent)
		b0(0x0c, b.EnableEvent)
		b0(0x0d, b.DisableEvent)
		b0(0x20, b.UnDeliverEvent)
	}
	if f.MCD {
		if f.Event {
			a0(0xab, b.CardInfo)
			a0(0xac, b.CardLoad)
		}
		b0(0x4a, b.InitCARD)
		b0(0x4b, b.StartCARD)
		b0(0x4c, b.StopCARD)
		b0(0x4e, b.CardWrite)
		b0(0x4f, b.CardRead)
		b0(0x50, b.NewCard)
		b0(0x58, b.CardChan)
		b0(0x5c, b.CardStatus)
	}
	if f.RCnt {
		b0(0x02, b.SetRCnt)
		b0(0x03, b.GetRCnt)
		b0(0x04, b.StartRCnt)
		b0(0x05, b.StopRCnt)
		b0(0x06, b.ResetRCnt)
		c0(0x0a, b.ChangeClearRCnt)
	}
	if f.Thread {
		b0(0x0e, b.OpenTh)
		b0(0x0f, b.CloseTh)
		b0(0x10, b.ChangeTh)
	}
	if f.Pad {
		b0(0x12, b.InitPAD)
		b0(0x13, b.StartPAD)
		b0(0x14, b.StopPAD)
		b0(0x15, b.PadInit)
		b0(0x16, b.PadDr)
		b0(0x5b, b.ChangeClearPad)
	}
	if f.EntryInt {
		b0(0x17, b.ReturnFromException)
		b0(0x18, b.ResetEntryInt)
		b0(0x19, b.HookEntryInt)
		c0(0x02, b.SysEnqIntRP)
		c0(0x03, b.SysDeqIntRP)
	}
	if f.FileIO {
		for _, base := range []struct {
			table int
			num   int
		}{{co.TableA0, 0x00}, {co.TableB0, 0x32}} {
			b.Register(base.table, base.num+0, b.Open)
			b.Register(base.table, base.num+1, b.Lseek)
			b.Register(base.table, base.num+2, b.Read)
			b.Register(base.table, base.num+3, b.Write)
			b.Register(base.table, base.num+4, b.Close)
		}
		a0(0x3b, b.Getchar)
		b0(0x3c, b.Getchar)
		b0(0x42, b.Firstfile)
		b0(0x43, b.Nextfile)
		b0(0x44, b.Rename)
		b0(0x45, b.Delete)
	}
	if f.GPU {
		b.verbose("HLE: GPU calls are left to the firmware\n")
	}
	if f.LoadExec {
		b.verbose("HLE: LoadExec calls are left to the firmware\n")
	}
}
