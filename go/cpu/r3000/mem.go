package r3000

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/psxcorn/psxcorn/go/models/cpu"
)

// physical address space as seen through kuseg, kseg0 and kseg1
const physMask = 0x1fffffff

type region struct {
	addr uint32
	mem  []byte
	prot int
}

func (r *region) contains(addr uint32) bool {
	return addr >= r.addr && addr-r.addr < uint32(len(r.mem))
}

// MemMapSlice maps mem at a physical address. The cpu reads and writes mem
// directly, so the caller's view stays current.
func (c *Cpu) MemMapSlice(addr uint64, mem []byte, prot int) error {
	phys := uint32(addr) & physMask
	nr := region{phys, mem, prot}
	for _, r := range c.regions {
		if r.contains(phys) || nr.contains(r.addr) {
			return errors.Errorf("mapping %#x+%#x overlaps %#x+%#x", phys, len(mem), r.addr, len(r.mem))
		}
	}
	c.regions = append(c.regions, nr)
	return nil
}

func (c *Cpu) translate(addr uint32, size int, prot int) []byte {
	phys := addr & physMask
	for i := range c.regions {
		r := &c.regions[i]
		if r.contains(phys) && r.prot&prot == prot {
			p := r.mem[phys-r.addr:]
			if len(p) >= size {
				return p[:size]
			}
			return nil
		}
	}
	return nil
}

func (c *Cpu) MemRead(addr, size uint64) ([]byte, error) {
	p := c.translate(uint32(addr), int(size), cpu.PROT_NONE)
	if p == nil {
		return nil, errors.Errorf("read from unmapped memory: %#x+%#x", addr, size)
	}
	return append([]byte(nil), p...), nil
}

func (c *Cpu) MemWrite(addr uint64, p []byte) error {
	dst := c.translate(uint32(addr), len(p), cpu.PROT_NONE)
	if dst == nil {
		return errors.Errorf("write to unmapped memory: %#x+%#x", addr, len(p))
	}
	copy(dst, p)
	return nil
}

// load reads a naturally aligned little-endian value. ok is false when the
// access faulted and execution must not continue with this instruction.
func (c *Cpu) load(addr uint32, size int) (uint32, bool) {
	p := c.translate(addr, size, cpu.PROT_READ)
	if p == nil {
		return 0, c.fault(cpu.MEM_READ_UNMAPPED, addr, size, 0)
	}
	switch size {
	case 1:
		return uint32(p[0]), true
	case 2:
		return uint32(binary.LittleEndian.Uint16(p)), true
	}
	return binary.LittleEndian.Uint32(p), true
}

func (c *Cpu) store(addr uint32, size int, val uint32) bool {
	if c.sr()&srIsC != 0 {
		return true
	}
	p := c.translate(addr, size, cpu.PROT_WRITE)
	if p == nil {
		return c.fault(cpu.MEM_WRITE_UNMAPPED, addr, size, val)
	}
	switch size {
	case 1:
		p[0] = byte(val)
	case 2:
		binary.LittleEndian.PutUint16(p, uint16(val))
	default:
		binary.LittleEndian.PutUint32(p, val)
	}
	return true
}

// fault gives the memory error hooks a chance to absorb a bad access.
// Unhandled faults stop the cpu.
func (c *Cpu) fault(access int, addr uint32, size int, val uint32) bool {
	if c.OnFault(access, uint64(addr), size, int64(val)) {
		return true
	}
	c.err = errors.Errorf("unmapped access (%d) at %#08x+%d, pc=%#08x", access, addr, size, c.cur)
	return false
}
