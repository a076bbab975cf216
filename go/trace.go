package psxcorn

import (
	"os"

	"github.com/pkg/errors"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	co "github.com/psxcorn/psxcorn/go/kernel/common"
	"github.com/psxcorn/psxcorn/go/models/trace"
)

// openTrace starts a binary call trace. Every dispatched call is recorded,
// handled or not.
func (e *Emulator) openTrace(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating trace file")
	}
	var flags uint32
	if !e.firmware {
		flags |= trace.FLAG_HLE_ONLY
	}
	tw, err := trace.NewWriter(f, flags)
	if err != nil {
		f.Close()
		return err
	}
	e.traceW = tw
	e.Bios.OnCall = func(sys *co.Syscall, pc uint32, args []uint64, ret uint64) {
		c := &trace.Call{
			Table:   uint8(co.TableVector[sys.Table] >> 4),
			Num:     uint8(sys.Num),
			Pc:      pc,
			Ret:     uint32(ret),
			Handled: true,
		}
		for i := 0; i < len(c.Args) && i < len(args); i++ {
			c.Args[i] = uint32(args[i])
		}
		e.packCall(c)
	}
	return nil
}

func (e *Emulator) traceUnhandled(table int, pc uint32) {
	if e.traceW == nil {
		return
	}
	c := &trace.Call{
		Table: uint8(co.TableVector[table] >> 4),
		Num:   uint8(e.reg(mips.T1)),
		Pc:    pc,
		Ret:   e.reg(mips.V0),
	}
	for i := range c.Args {
		c.Args[i] = e.reg(mips.A0 + i)
	}
	e.packCall(c)
}

func (e *Emulator) packCall(c *trace.Call) {
	if err := e.traceW.Pack(c); err != nil {
		e.fail(errors.Wrap(err, "writing trace"))
	}
}
