package cpu

import (
	"github.com/pkg/errors"
)

// implements register and context methods conforming to cpu.Cpu
// register enums are dense small ints, so values live in a slice indexed by enum
// with a parallel validity mask
type Regs struct {
	mask  uint64
	vals  []uint64
	valid []bool
}

func NewRegs(bits uint, enums []int) *Regs {
	max := 0
	for _, e := range enums {
		if e > max {
			max = e
		}
	}
	r := &Regs{
		mask:  ^uint64(0) >> (64 - bits),
		vals:  make([]uint64, max+1),
		valid: make([]bool, max+1),
	}
	for _, e := range enums {
		r.valid[e] = true
	}
	return r
}

func (r *Regs) ok(enum int) bool {
	return enum >= 0 && enum < len(r.valid) && r.valid[enum]
}

func (r *Regs) RegRead(enum int) (uint64, error) {
	if !r.ok(enum) {
		return 0, errors.Errorf("invalid register: %d", enum)
	}
	return r.vals[enum], nil
}

func (r *Regs) RegWrite(enum int, val uint64) error {
	if !r.ok(enum) {
		return errors.Errorf("invalid register: %d", enum)
	}
	r.vals[enum] = val & r.mask
	return nil
}

// handling ContextSave in the register file either requires you to store important cpu state (like flags) in registers
// or wrap ContextSave/ContextRestore with your own functions
func (r *Regs) ContextSave(reuse interface{}) (interface{}, error) {
	var ctx []uint64
	if reuse != nil {
		var ok bool
		if ctx, ok = reuse.([]uint64); !ok || len(ctx) != len(r.vals) {
			return nil, errors.New("incorrect context type")
		}
	} else {
		ctx = make([]uint64, len(r.vals))
	}
	copy(ctx, r.vals)
	return ctx, nil
}

func (r *Regs) ContextRestore(ctx interface{}) error {
	vals, ok := ctx.([]uint64)
	if !ok || len(vals) != len(r.vals) {
		return errors.New("incorrect context type")
	}
	copy(r.vals, vals)
	return nil
}
