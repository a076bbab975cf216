package common

import (
	"fmt"
	"reflect"
)

// Syscall is one entry in a BIOS call table.
type Syscall struct {
	Name   string
	Table  int
	Num    int
	Kernel *KernelBase
	Fn     reflect.Value
	In     []reflect.Type
	Out    []reflect.Type
}

var (
	uint64Type = reflect.TypeOf(uint64(0))
	obufType   = reflect.TypeOf(Obuf{})
)

// Call a handler with raw register arguments. Will panic() if anything goes terribly wrong.
func (sys *Syscall) Call(args []uint64) uint64 {
	if len(args) < len(sys.In) {
		panic(fmt.Errorf("not enough arguments to %s: wanted %d, got %d", sys.Name, len(sys.In), len(args)))
	}
	in, err := sys.Kernel.Argjoy.Convert(sys.In, false, args[:len(sys.In)])
	if err != nil {
		panic(fmt.Sprintf("calling %s(): %s", sys.Name, err))
	}
	out := sys.Fn.Call(in)
	// return output if first return of function is representable as an int type
	if len(out) > 0 && out[0].Type().ConvertibleTo(uint64Type) {
		return out[0].Convert(uint64Type).Uint()
	}
	return 0
}

// HasRet reports whether the handler produces a value for v0.
func (sys *Syscall) HasRet() bool {
	return len(sys.Out) > 0 && sys.Out[0].ConvertibleTo(uint64Type)
}
