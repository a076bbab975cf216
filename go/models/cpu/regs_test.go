package cpu

import (
	"testing"
)

func makeRegs(bits uint) ([]int, *Regs) {
	enums := make([]int, 38)
	for i := range enums {
		enums[i] = 37 - i
	}
	return enums, NewRegs(bits, enums)
}

func BenchmarkRegsRead(b *testing.B) {
	enums, regs := makeRegs(32)
	for i := 0; i < b.N; i++ {
		regs.RegRead(enums[i%len(enums)])
	}
}

func BenchmarkRegsWrite(b *testing.B) {
	enums, regs := makeRegs(32)
	for i := 0; i < b.N; i++ {
		regs.RegWrite(enums[i%len(enums)], uint64(i))
	}
}

func TestRegs(t *testing.T) {
	enums, regs := makeRegs(32)

	// save context to check zeroes later
	ctx, err := regs.ContextSave(nil)
	if err != nil {
		t.Fatal(err, "initial ContextSave() failed")
	}

	// set all regs to pos * 2
	for i, e := range enums {
		if err := regs.RegWrite(e, uint64(i*2)); err != nil {
			t.Fatal(err, "initial RegWrite() failed")
		}
	}
	for i, e := range enums {
		if val, err := regs.RegRead(e); err != nil {
			t.Fatal(err, "initial RegRead() failed")
		} else if val != uint64(i*2) {
			t.Fatalf("RegRead() returned %d, expecting %d", val, i*2)
		}
	}

	// restore context and check
	if err := regs.ContextRestore(ctx); err != nil {
		t.Fatal(err, "ContextRestore() failed")
	}
	for _, e := range enums {
		if val, err := regs.RegRead(e); err != nil {
			t.Fatal(err, "RegRead() failed")
		} else if val != 0 {
			t.Fatalf("RegRead() returned %d, expecting 0", val)
		}
	}

	// test reusing context
	if err := regs.RegWrite(enums[0], 1); err != nil {
		t.Fatal(err, "RegWrite() failed")
	}
	if _, err := regs.ContextSave(ctx); err != nil {
		t.Fatal(err, "ContextSave() failed")
	}
	regs.RegWrite(enums[0], 0)
	if err := regs.ContextRestore(ctx); err != nil {
		t.Fatal(err, "ContextRestore() failed")
	}
	if val, _ := regs.RegRead(enums[0]); val != 1 {
		t.Fatalf("RegRead() returned %d, expecting 1", val)
	}
}

func TestRegsMask(t *testing.T) {
	enums, regs := makeRegs(32)
	if err := regs.RegWrite(enums[0], 0xffffffff0); err != nil {
		t.Fatal("RegWrite() failed")
	}
	if val, _ := regs.RegRead(enums[0]); val != 0xfffffff0 {
		t.Fatalf("RegRead() returned %#x, expecting 0xfffffff0", val)
	}
}

func TestRegsInvalid(t *testing.T) {
	regs := NewRegs(32, []int{0, 2})
	if _, err := regs.RegRead(1); err == nil {
		t.Fatal("RegRead() of unlisted enum should fail")
	}
	if err := regs.RegWrite(3, 1); err == nil {
		t.Fatal("RegWrite() past the last enum should fail")
	}
	if err := regs.ContextRestore(map[int]uint64{}); err == nil {
		t.Fatal("ContextRestore() accepted a foreign context")
	}
}
