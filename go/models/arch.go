package models

import (
	"sort"

	"github.com/lunixbochs/fvbommel-util/sortorder"
)

type Reg struct {
	Enum int
	Name string
}

type RegVal struct {
	Reg
	Val uint64
}

type regList []Reg

func (r regList) Len() int           { return len(r) }
func (r regList) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }
func (r regList) Less(i, j int) bool { return sortorder.NaturalLess(r[i].Name, r[j].Name) }

type Assembler interface {
	Asm(asm string, addr uint64) ([]byte, error)
}

type Disassembler interface {
	Dis(mem []byte, addr uint64) ([]Ins, error)
}

type RegReader interface {
	RegRead(reg int) (uint64, error)
}

type Arch struct {
	Bits int
	PC   int
	SP   int
	Regs map[string]int

	Asm Assembler
	Dis Disassembler

	// sorted for RegDump
	regList regList
}

// RegList returns the named registers in natural sort order.
func (a *Arch) RegList() []Reg {
	if a.regList == nil {
		rl := make(regList, 0, len(a.Regs))
		for name, enum := range a.Regs {
			rl = append(rl, Reg{enum, name})
		}
		sort.Sort(rl)
		a.regList = rl
	}
	return a.regList
}

func (a *Arch) RegDump(u RegReader) ([]RegVal, error) {
	list := a.RegList()
	ret := make([]RegVal, len(list))
	for i, r := range list {
		val, err := u.RegRead(r.Enum)
		if err != nil {
			return nil, err
		}
		ret[i] = RegVal{r, val}
	}
	return ret, nil
}
