package bios

import (
	"github.com/psxcorn/psxcorn/go/arch/mips"
)

// sortState is qsort's control block. Comparisons are softcalls, so the
// insertion sort's cursor lives here between them.
type sortState struct {
	base, n, width, cmp uint32
	i, j                uint32
}

func (s *sortState) elem(k uint32) uint32 {
	return s.base + k*s.width
}

func (b *Bios) Qsort(base, n, width, cmp uint32) {
	b.sort = sortState{base: base, n: n, width: width, cmp: cmp, i: 1, j: 1}
	b.qsortNext()
}

func (b *Bios) qsortNext() {
	s := &b.sort
	for s.i < s.n {
		if s.j == 0 {
			s.i++
			s.j = s.i
			continue
		}
		b.SetReg(mips.A0, s.elem(s.j-1))
		b.SetReg(mips.A1, s.elem(s.j))
		b.softCall(resumeQsort, s.cmp)
		return
	}
	b.jumpRA()
}

// qsortStep consumes one comparison result.
func (b *Bios) qsortStep() {
	s := &b.sort
	if int32(b.Reg(mips.V0)) > 0 {
		mem := b.M.Mem()
		x := mem.Slice(s.elem(s.j-1), int(s.width))
		y := mem.Slice(s.elem(s.j), int(s.width))
		for k := range x {
			x[k], y[k] = y[k], x[k]
		}
		s.j--
	} else {
		s.i++
		s.j = s.i
	}
	b.qsortNext()
}

type searchState struct {
	key, base, width, cmp uint32
	lo, hi, mid           uint32
}

// Bsearch takes its comparator from the first stack argument.
func (b *Bios) Bsearch(key, base, n, width, cmp uint32) {
	b.search = searchState{key: key, base: base, width: width, cmp: cmp, hi: n}
	b.bsearchNext()
}

func (b *Bios) bsearchNext() {
	s := &b.search
	if s.lo >= s.hi {
		b.SetReg(mips.V0, 0)
		b.jumpRA()
		return
	}
	s.mid = s.lo + (s.hi-s.lo)/2
	b.SetReg(mips.A0, s.key)
	b.SetReg(mips.A1, s.base+s.mid*s.width)
	b.softCall(resumeBsearch, s.cmp)
}

func (b *Bios) bsearchStep() {
	s := &b.search
	r := int32(b.Reg(mips.V0))
	switch {
	case r == 0:
		b.SetReg(mips.V0, s.base+s.mid*s.width)
		b.jumpRA()
		return
	case r < 0:
		s.hi = s.mid
	default:
		s.lo = s.mid + 1
	}
	b.bsearchNext()
}
