package psxcorn

import (
	"github.com/pkg/errors"

	"github.com/psxcorn/psxcorn/go/kernel/bios"
	"github.com/psxcorn/psxcorn/go/loader"
	"github.com/psxcorn/psxcorn/go/models/cpu"
	"github.com/psxcorn/psxcorn/go/models/psx"
)

const (
	pageSize = 0x1000

	// general exception vector in kseg0
	excVector = 0x80000080
	// the guest returns here from its entry point
	exitAddr = bios.SoftCallBase + bios.SoftCallSize
)

// physical addresses of the 2MB RAM mirrors inside the 8MB window
var ramMirrors = []uint64{0, 0x200000, 0x400000, 0x600000}

// mapMemory shares the console's memory regions with the cpu. The page at the
// softcall base backs the sentinel addresses so their fetches reach the block hook.
func (e *Emulator) mapMemory() error {
	for _, addr := range ramMirrors {
		if err := e.MemMapSlice(addr, e.mem.RAM, cpu.PROT_ALL); err != nil {
			return errors.Wrap(err, "mapping RAM")
		}
	}
	maps := []struct {
		name string
		addr uint64
		mem  []byte
		prot int
	}{
		{"scratchpad", psx.ScratchBase, e.mem.Scratch, cpu.PROT_READ | cpu.PROT_WRITE},
		{"io", psx.IOBase, e.hw.IO, cpu.PROT_READ | cpu.PROT_WRITE},
		{"rom", psx.RomBase, e.mem.ROM, cpu.PROT_READ | cpu.PROT_EXEC},
		{"trampoline", bios.SoftCallBase & psx.SegmentMask, e.tramp, cpu.PROT_ALL},
	}
	for _, m := range maps {
		if err := e.MemMapSlice(m.addr, m.mem, m.prot); err != nil {
			return errors.Wrapf(err, "mapping %s", m.name)
		}
	}
	return nil
}

// ignoredFault reports whether a bad access hits hardware this machine doesn't model:
// the cache control register in kseg2 and the expansion regions.
func ignoredFault(addr uint64) bool {
	if addr >= 0xfffe0000 {
		return true
	}
	phys := uint32(addr) & psx.SegmentMask
	return phys >= 0x1f000000 && phys < psx.RomBase
}

// Load copies img into RAM, zeroes its bss and makes it the entry point.
func (e *Emulator) Load(img *loader.Image) error {
	for _, seg := range img.Segments {
		if err := e.checkRange(seg.Addr, uint32(len(seg.Data))); err != nil {
			return errors.Wrap(err, "segment")
		}
		copy(e.mem.Slice(seg.Addr, len(seg.Data)), seg.Data)
	}
	if img.BssSize > 0 {
		if err := e.checkRange(img.BssAddr, img.BssSize); err != nil {
			return errors.Wrap(err, "bss")
		}
		bss := e.mem.Slice(img.BssAddr, int(img.BssSize))
		for i := range bss {
			bss[i] = 0
		}
	}
	e.entry, e.gp, e.sp = img.Entry, img.GP, img.SP
	return nil
}

// LoadFirmware copies a ROM image into place. Calls without a high-level
// handler then fall through to the firmware's own code.
func (e *Emulator) LoadFirmware(rom []byte) error {
	if len(rom) > len(e.mem.ROM) {
		return errors.Errorf("firmware image is %#x bytes, ROM holds %#x", len(rom), len(e.mem.ROM))
	}
	copy(e.mem.ROM, rom)
	e.firmware = true
	return nil
}

func (e *Emulator) checkRange(addr, size uint32) error {
	if size == 0 {
		return nil
	}
	if !e.mem.Valid(addr) || !e.mem.Valid(addr+size-1) || len(e.mem.Translate(addr)) < int(size) {
		return errors.Errorf("%#08x+%#x is outside guest memory", addr, size)
	}
	return nil
}
