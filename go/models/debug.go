package models

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Disas renders mem as one line per instruction, optionally with instruction bytes.
func Disas(mem []byte, addr uint64, arch *Arch, showBytes bool) (string, error) {
	if len(mem) == 0 || arch.Dis == nil {
		return "", nil
	}
	dis, err := arch.Dis.Dis(mem, addr)
	if err != nil {
		return "", err
	}
	var out []string
	for _, ins := range dis {
		if showBytes {
			out = append(out, fmt.Sprintf("%#x: %s %s %s", ins.Addr(), hex.EncodeToString(ins.Bytes()), ins.Mnemonic(), ins.OpStr()))
		} else {
			out = append(out, fmt.Sprintf("%#x: %s %s", ins.Addr(), ins.Mnemonic(), ins.OpStr()))
		}
	}
	return strings.Join(out, "\n"), nil
}

// Repr quotes p for trace output, escaping unprintable bytes and truncating to strsize.
func Repr(p []byte, strsize int) string {
	tmp := make([]string, len(p))
	for i, b := range p {
		if b >= 0x20 && b <= 0x7e {
			tmp[i] = string(b)
		} else {
			tmp[i] = fmt.Sprintf("\\x%02x", b)
		}
	}
	out := strings.Join(tmp, "")
	if strsize > 0 && len(out) > strsize {
		for i := len(tmp) - 1; len(out) > strsize-3; i-- {
			out = strings.Join(tmp[:i], "")
		}
		return "\"" + out + "\"..."
	}
	return "\"" + out + "\""
}

// HexDump formats mem as 16-byte rows with an ascii column.
func HexDump(base uint64, mem []byte) []string {
	var out []string
	for off := 0; off < len(mem); off += 16 {
		end := off + 16
		if end > len(mem) {
			end = len(mem)
		}
		row := mem[off:end]
		ascii := make([]byte, len(row))
		for i, c := range row {
			if c >= 0x20 && c <= 0x7e {
				ascii[i] = c
			} else {
				ascii[i] = '.'
			}
		}
		out = append(out, fmt.Sprintf("%#08x: %-47s  %s", base+uint64(off), spaced(row), ascii))
	}
	return out
}

func spaced(p []byte) string {
	parts := make([]string, len(p))
	for i, b := range p {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}
