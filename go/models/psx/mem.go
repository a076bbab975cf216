package psx

import (
	"encoding/binary"
	"fmt"

	"github.com/psxcorn/psxcorn/go/models/cpu"
)

const (
	SegmentMask = 0x1fffffff

	RamSize   = 0x200000
	RamWindow = 0x800000

	ScratchBase = 0x1f800000
	ScratchSize = 0x400

	RomBase = 0x1fc00000
	RomSize = 0x80000
)

// AddrError is raised (as a panic) when a guest address falls outside RAM, scratchpad and ROM.
type AddrError struct {
	Addr uint32
}

func (e *AddrError) Error() string {
	return fmt.Sprintf("invalid guest address: %#08x", e.Addr)
}

// Memory is the guest-visible byte space shared by the cpu backend and the HLE layer.
type Memory struct {
	RAM     []byte
	Scratch []byte
	ROM     []byte
}

func NewMemory() *Memory {
	return &Memory{
		RAM:     make([]byte, RamSize),
		// backends that map whole pages may use the spare capacity
		Scratch: make([]byte, ScratchSize, 0x1000),
		ROM:     make([]byte, RomSize),
	}
}

// Valid reports whether Translate would succeed.
func (m *Memory) Valid(addr uint32) bool {
	_, ok := m.lookup(addr)
	return ok
}

func (m *Memory) lookup(addr uint32) ([]byte, bool) {
	masked := addr & SegmentMask
	switch {
	case masked < RamWindow:
		return m.RAM[masked&(RamSize-1):], true
	case masked >= ScratchBase && masked < ScratchBase+ScratchSize:
		return m.Scratch[masked-ScratchBase:], true
	case masked >= RomBase && masked < RomBase+RomSize:
		return m.ROM[masked-RomBase:], true
	}
	return nil, false
}

// Translate resolves a guest address to the host bytes from that address to
// the end of its region. Addresses outside the memory map panic with *AddrError.
func (m *Memory) Translate(addr uint32) []byte {
	p, ok := m.lookup(addr)
	if !ok {
		panic(&AddrError{addr})
	}
	return p
}

// Slice returns n bytes at addr, sharing storage with guest memory.
func (m *Memory) Slice(addr uint32, n int) []byte {
	p := m.Translate(addr)
	if n > len(p) {
		panic(&AddrError{addr + uint32(len(p))})
	}
	return p[:n]
}

func (m *Memory) Read8(addr uint32) uint8 {
	return m.Translate(addr)[0]
}

func (m *Memory) Read16(addr uint32) uint16 {
	return binary.LittleEndian.Uint16(m.Slice(addr, 2))
}

func (m *Memory) Read32(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(m.Slice(addr, 4))
}

func (m *Memory) Write8(addr uint32, v uint8) {
	m.Translate(addr)[0] = v
}

func (m *Memory) Write16(addr uint32, v uint16) {
	binary.LittleEndian.PutUint16(m.Slice(addr, 2), v)
}

func (m *Memory) Write32(addr uint32, v uint32) {
	binary.LittleEndian.PutUint32(m.Slice(addr, 4), v)
}

// ReadUint and WriteUint are the sized accessors used by the interpreter.
func (m *Memory) ReadUint(addr uint32, size int) uint32 {
	n, err := cpu.UnpackUint(binary.LittleEndian, size, m.Slice(addr, size))
	if err != nil {
		panic(err)
	}
	return uint32(n)
}

func (m *Memory) WriteUint(addr uint32, size int, v uint32) {
	if _, err := cpu.PackUint(binary.LittleEndian, size, m.Slice(addr, size), uint64(v)); err != nil {
		panic(err)
	}
}

// ReadStr reads a NUL-terminated string, stopping at the end of the region.
func (m *Memory) ReadStr(addr uint32) string {
	p := m.Translate(addr)
	for i, c := range p {
		if c == 0 {
			return string(p[:i])
		}
	}
	return string(p)
}

// WriteStr stores s followed by a NUL.
func (m *Memory) WriteStr(addr uint32, s string) {
	p := m.Slice(addr, len(s)+1)
	copy(p, s)
	p[len(s)] = 0
}

// Stream returns a sequential reader/writer starting at addr.
func (m *Memory) Stream(addr uint32) *MemStream {
	return &MemStream{Mem: m, Addr: addr}
}

type MemStream struct {
	Mem  *Memory
	Addr uint32
}

func (s *MemStream) Read(p []byte) (int, error) {
	copy(p, s.Mem.Slice(s.Addr, len(p)))
	s.Addr += uint32(len(p))
	return len(p), nil
}

func (s *MemStream) Write(p []byte) (int, error) {
	copy(s.Mem.Slice(s.Addr, len(p)), p)
	s.Addr += uint32(len(p))
	return len(p), nil
}
