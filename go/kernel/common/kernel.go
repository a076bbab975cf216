package common

import (
	"fmt"
	"io"
	"io/ioutil"
	"reflect"

	"github.com/lunixbochs/argjoy"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	"github.com/psxcorn/psxcorn/go/models"
)

// call table vectors
const (
	TableA0 = iota
	TableB0
	TableC0
	NumTables
)

// TableVector maps a table index to the address guest code jumps to.
var TableVector = [NumTables]uint32{0xa0, 0xb0, 0xc0}

// TableName is the short form used in traces ("A0").
func TableName(table int) string {
	return fmt.Sprintf("%X", TableVector[table])
}

// CallHook observes dispatched calls, after v0 has been written.
type CallHook func(sys *Syscall, pc uint32, args []uint64, ret uint64)

type KernelBase struct {
	M      models.Machine
	Argjoy argjoy.Argjoy

	tables [NumTables][256]*Syscall
	// Names are used for strace and logging. Missing names render as sys_a0_NN.
	Names [NumTables]map[int]string

	// Strace receives one line per dispatched call when set.
	Strace io.Writer
	// After runs after every dispatched call has written its result.
	After  func()
	OnCall CallHook
}

func NewKernelBase(m models.Machine) *KernelBase {
	k := &KernelBase{M: m}
	k.Argjoy.Register(k.commonArgCodec)
	k.Argjoy.Register(argjoy.IntToInt)
	return k
}

func (k *KernelBase) name(table, num int) string {
	if name, ok := k.Names[table][num]; ok {
		return name
	}
	return fmt.Sprintf("sys_%x_%02x", TableVector[table], num)
}

// Name returns the display name of a table slot.
func (k *KernelBase) Name(table, num int) string {
	return k.name(table, num&0xff)
}

// Register installs fn as the handler for table slot num.
// fn's parameters are decoded from a0..a3 then the stack.
func (k *KernelBase) Register(table, num int, fn interface{}) *Syscall {
	val := reflect.ValueOf(fn)
	if val.Kind() != reflect.Func {
		panic(fmt.Sprintf("handler for %s must be a func, got %T", k.name(table, num), fn))
	}
	typ := val.Type()
	in := make([]reflect.Type, typ.NumIn())
	for i := range in {
		in[i] = typ.In(i)
	}
	out := make([]reflect.Type, typ.NumOut())
	for i := range out {
		out[i] = typ.Out(i)
	}
	sys := &Syscall{
		Name:   k.name(table, num),
		Table:  table,
		Num:    num & 0xff,
		Kernel: k,
		Fn:     val,
		In:     in,
		Out:    out,
	}
	k.tables[table][num&0xff] = sys
	return sys
}

// Unregister empties a table slot.
func (k *KernelBase) Unregister(table, num int) {
	k.tables[table][num&0xff] = nil
}

// Clear empties every table.
func (k *KernelBase) Clear() {
	k.tables = [NumTables][256]*Syscall{}
}

func (k *KernelBase) Lookup(table, num int) *Syscall {
	if table < 0 || table >= NumTables {
		return nil
	}
	return k.tables[table][num&0xff]
}

// Count returns the number of populated slots in a table.
func (k *KernelBase) Count(table int) int {
	n := 0
	for _, sys := range k.tables[table] {
		if sys != nil {
			n++
		}
	}
	return n
}

// Invoke handles a jump to a table vector. The call number is taken from t1.
// It reports false when the slot is empty, leaving all state untouched.
// Handlers see pc already set to ra and may redirect it.
func (k *KernelBase) Invoke(table int) bool {
	num := int(k.Reg(mips.T1) & 0xff)
	sys := k.Lookup(table, num)
	if sys == nil {
		return false
	}
	pc := k.Reg(mips.PC)
	k.SetReg(mips.PC, k.Reg(mips.RA))

	nstack := len(sys.In) - len(argRegs)
	if nstack < 0 {
		nstack = 0
	}
	args := Args(k.M, nstack)
	if k.Strace != nil {
		fmt.Fprintf(k.Strace, "%s", sys.Trace(args))
	}
	ret := sys.Call(args)
	if sys.HasRet() {
		k.SetReg(mips.V0, uint32(ret))
	}
	if k.Strace != nil {
		fmt.Fprintf(k.Strace, "%s", sys.TraceRet(args, ret))
	}
	if k.OnCall != nil {
		k.OnCall(sys, pc, args, ret)
	}
	if k.After != nil {
		k.After()
	}
	return true
}

// Reg reads a register, truncated to the guest word size.
func (k *KernelBase) Reg(enum int) uint32 {
	v, _ := k.M.RegRead(enum)
	return uint32(v)
}

func (k *KernelBase) SetReg(enum int, v uint32) {
	k.M.RegWrite(enum, uint64(v))
}

// Printf writes to the machine's log output.
func (k *KernelBase) Printf(format string, a ...interface{}) {
	w := k.M.Config().Output
	if w == nil {
		w = ioutil.Discard
	}
	fmt.Fprintf(w, format, a...)
}
