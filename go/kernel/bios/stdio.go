package bios

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/psxcorn/psxcorn/go/arch/mips"
)

func (b *Bios) stdout() io.Writer {
	return b.M.Config().Stdout
}

func (b *Bios) Putchar(c uint32) uint32 {
	b.stdout().Write([]byte{byte(c)})
	return c & 0xff
}

func (b *Bios) Puts(s string) {
	io.WriteString(b.stdout(), s)
}

// Getchar reads one byte from the configured stdin, -1 at end of input.
func (b *Bios) Getchar() int32 {
	var buf [1]byte
	in := b.M.Config().Stdin
	if in == nil {
		return -1
	}
	if _, err := io.ReadFull(in, buf[:]); err != nil {
		return -1
	}
	return int32(buf[0])
}

// printfArg returns variadic argument n (1-based): a1..a3, then words from sp+16.
func (b *Bios) printfArg(n int) uint32 {
	if n < 4 {
		return b.Reg(mips.A0 + n)
	}
	return b.mem32(b.Reg(mips.SP) + uint32(n)*4)
}

// GuestPrintf formats like the firmware printf: integer and string
// conversions with '-', '0' flags, width and precision. Floating point
// conversions print their argument word in hex.
func (b *Bios) GuestPrintf(format string) {
	var out bytes.Buffer
	n := 1
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			out.WriteByte(c)
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			out.WriteByte('%')
			i++
			continue
		}
		// collect flags, width, precision and length
		spec := []byte{'%'}
		j := i + 1
		for ; j < len(format); j++ {
			f := format[j]
			if f == '-' || f == '0' || f == '+' || f == ' ' || f == '#' || f == '.' || (f >= '1' && f <= '9') {
				spec = append(spec, f)
			} else if f == 'l' || f == 'h' {
				// lengths don't change a 32-bit argument
			} else {
				break
			}
		}
		if j >= len(format) {
			out.WriteString(format[i:])
			break
		}
		verb := format[j]
		i = j
		switch verb {
		case 'd', 'i', 'D':
			fmt.Fprintf(&out, string(spec)+"d", int32(b.printfArg(n)))
		case 'u':
			fmt.Fprintf(&out, string(spec)+"d", b.printfArg(n))
		case 'x', 'X', 'o':
			fmt.Fprintf(&out, string(spec)+string(verb), b.printfArg(n))
		case 'O':
			fmt.Fprintf(&out, string(spec)+"o", b.printfArg(n))
		case 'p':
			fmt.Fprintf(&out, "%#x", b.printfArg(n))
		case 'c':
			out.WriteByte(byte(b.printfArg(n)))
		case 's':
			s := "(null)"
			if addr := b.printfArg(n); addr != 0 {
				s = b.M.Mem().ReadStr(addr)
			}
			fmt.Fprintf(&out, string(spec)+"s", s)
		case 'f', 'F', 'e', 'E', 'g', 'G', 'a', 'A':
			out.WriteString("0x" + strconv.FormatUint(uint64(b.printfArg(n)), 16))
		default:
			out.WriteString(string(spec) + string(verb))
			continue
		}
		n++
	}
	b.stdout().Write(out.Bytes())
}
