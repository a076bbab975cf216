package common

import (
	"fmt"
	"strings"

	"github.com/mgutz/ansi"

	"github.com/psxcorn/psxcorn/go/models"
)

var (
	colorName = ansi.ColorCode("cyan")
	colorRet  = ansi.ColorCode("green")
)

func (s *Syscall) strsize() int {
	return s.Kernel.M.Config().Strsize
}

// peek returns up to n bytes at addr for display, clipped to the region and strsize.
func (s *Syscall) peek(addr uint32, n int) []byte {
	mem := s.Kernel.M.Mem()
	if !mem.Valid(addr) {
		return nil
	}
	p := mem.Translate(addr)
	if max := s.strsize() + 1; n > max {
		n = max
	}
	if n > len(p) {
		n = len(p)
	}
	return p[:n]
}

func (s *Syscall) traceArg(args ...interface{}) string {
	hex := func(a interface{}) string {
		tmp := fmt.Sprintf("0x%x", a)
		if strings.HasPrefix(tmp, "0x-") {
			tmp = "-0x" + tmp[3:]
		}
		return tmp
	}

	switch arg := args[0].(type) {
	case Obuf:
		return hex(arg.Addr)
	case Buf:
		if len(args) > 1 {
			if length, ok := args[1].(Len); ok && arg.Addr != 0 {
				if mem := s.peek(arg.Addr, int(length)); mem != nil {
					return models.Repr(mem, s.strsize())
				}
			}
		}
		return hex(arg.Addr)
	case Off:
		return hex(arg)
	case Ptr:
		return hex(arg)
	case Fd:
		return fmt.Sprintf("%d", int32(arg))
	case string:
		return models.Repr([]byte(arg), s.strsize())
	case uint32:
		return hex(arg)
	case uint64:
		return hex(arg)
	case int32:
		return fmt.Sprintf("%d", arg)
	default:
		return fmt.Sprintf("%v", arg)
	}
}

func (s *Syscall) traceArgs(regs []uint64) string {
	inRef, err := s.Kernel.Argjoy.Convert(s.In, false, regs[:len(s.In)])
	if err != nil {
		return err.Error()
	}
	in := make([]interface{}, len(inRef))
	for i, val := range inRef {
		in[i] = val.Interface()
	}
	ret := make([]string, len(in))
	for i := range in {
		ret[i] = s.traceArg(in[i:]...)
	}
	return strings.Join(ret, ", ")
}

func (s *Syscall) color() bool {
	return s.Kernel.M.Config().Color
}

func (s *Syscall) Trace(regs []uint64) string {
	name := fmt.Sprintf("%s:%02x", TableName(s.Table), s.Num)
	if s.color() {
		return fmt.Sprintf("%s %s%s%s(%s)", name, colorName, s.Name, ansi.Reset, s.traceArgs(regs))
	}
	return fmt.Sprintf("%s %s(%s)", name, s.Name, s.traceArgs(regs))
}

func (s *Syscall) TraceRet(args []uint64, ret uint64) string {
	var out []string
	for i, typ := range s.In {
		if typ == obufType && len(args) > i+1 {
			length := int(uint32(ret))
			if uint64(length) <= args[i+1] && length >= 0 {
				if mem := s.peek(uint32(args[i]), length); mem != nil {
					out = append(out, models.Repr(mem, s.strsize()))
				}
			}
		}
	}
	if s.HasRet() {
		out = append(out, s.traceArg(uint32(ret)))
	}
	if len(out) > 0 {
		res := strings.Join(out, ", ")
		if s.color() {
			res = colorRet + res + ansi.Reset
		}
		return fmt.Sprintf(" = %s\n", res)
	}
	return "\n"
}
