package models

import (
	"fmt"
	"strings"

	"github.com/mgutz/ansi"
)

var (
	chSame = ansi.ColorCode("default:default")
	chNew  = ansi.ColorCode("default+bu:default")
)

// RegChange is one register's value against the previous snapshot.
type RegChange struct {
	Name     string
	Enum     int
	Old, New uint64
	Fresh    bool
}

func (r RegChange) Changed() bool { return r.Fresh || r.Old != r.New }

// hex renders the value with the changed nibbles highlighted.
func (r RegChange) hex(width int, color bool) string {
	cur := fmt.Sprintf("%0*x", width, r.New)
	if !color || !r.Changed() {
		return cur
	}
	prev := fmt.Sprintf("%0*x", width, r.Old)
	var out strings.Builder
	hot := false
	for i := range cur {
		diff := r.Fresh || cur[i] != prev[i]
		if i == 0 || diff != hot {
			hot = diff
			if hot {
				out.WriteString(chNew)
			} else {
				out.WriteString(chSame)
			}
		}
		out.WriteByte(cur[i])
	}
	out.WriteString(ansi.Reset)
	return out.String()
}

// StatusDiff snapshots the register file and reports what moved since the
// last snapshot. The first snapshot reports every register as changed.
type StatusDiff struct {
	Arch *Arch
	Regs RegReader
	last map[int]uint64
}

// Diff takes a new snapshot. With onlyChanged, unchanged registers are left out.
func (s *StatusDiff) Diff(onlyChanged bool) []RegChange {
	regs, _ := s.Arch.RegDump(s.Regs)
	out := make([]RegChange, 0, len(regs))
	next := make(map[int]uint64, len(regs))
	for _, reg := range regs {
		old, seen := s.last[reg.Enum]
		c := RegChange{Name: reg.Name, Enum: reg.Enum, Old: old, New: reg.Val, Fresh: !seen}
		if !onlyChanged || c.Changed() {
			out = append(out, c)
		}
		next[reg.Enum] = reg.Val
	}
	s.last = next
	return out
}

func (s *StatusDiff) width() int { return s.Arch.Bits / 4 }

// Grid lays registers out in four columns, filled column-major.
func (s *StatusDiff) Grid(changes []RegChange, color bool) string {
	const cols = 4
	width := s.width()
	rows := (len(changes) + cols - 1) / cols
	var out strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			i := col*rows + row
			if i >= len(changes) {
				break
			}
			c := changes[i]
			name := fmt.Sprintf("%4s", c.Name)
			if c.Changed() {
				name = Colorize(name, "default+b", color)
			}
			fmt.Fprintf(&out, " %s 0x%s", name, c.hex(width, color))
		}
		out.WriteByte('\n')
	}
	return out.String()
}

// Inline renders changes as a single "name=value" line.
func (s *StatusDiff) Inline(changes []RegChange, color bool) string {
	parts := make([]string, len(changes))
	for i, c := range changes {
		parts[i] = fmt.Sprintf("%s=0x%s", c.Name, c.hex(s.width(), color))
	}
	return strings.Join(parts, " ")
}

// Colorize wraps s in an ansi color when enabled.
func Colorize(s, color string, enabled bool) string {
	if !enabled {
		return s
	}
	return ansi.ColorCode(color) + s + ansi.Reset
}
