package bios

import (
	"strings"
	"testing"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	co "github.com/psxcorn/psxcorn/go/kernel/common"
	"github.com/psxcorn/psxcorn/go/models/psx"
)

func TestRand(t *testing.T) {
	b, m := newBios()
	call(t, b, m, co.TableA0, 0x30, 1)
	if r := call(t, b, m, co.TableA0, 0x2f); r != 16838 {
		t.Fatalf("rand after srand(1) = %d", r)
	}
	if r := call(t, b, m, co.TableA0, 0x2f); r != 5758 {
		t.Fatalf("second rand = %d", r)
	}
}

func TestKrom2RawAdd(t *testing.T) {
	b, m := newBios()
	tests := map[uint32]uint32{
		0x8140: 0xbfc66000,
		0x8141: 0xbfc66000 + 0x1e,
		0x8180: 0xbfc66000 + 0x0762,
		0x889f: 0xbfc66000 + 0x3d68,
		0x88a0: 0xbfc66000 + 0x3d68 + 0x1e,
		0x0041: 0xffffffff,
		0x9900: 0xffffffff,
	}
	for code, want := range tests {
		if got := call(t, b, m, co.TableB0, 0x51, code); got != want {
			t.Errorf("Krom2RawAdd(%#x) = %#x, want %#x", code, got, want)
		}
	}
}

func TestTables(t *testing.T) {
	b, m := newBios()
	if call(t, b, m, co.TableB0, 0x56) != c0TableAddr || call(t, b, m, co.TableB0, 0x57) != b0TableAddr {
		t.Fatal("table addresses")
	}
	if m.M.Read32(randSeed) != 0xac20cc00 || m.M.Read32(intrStackPtr) != 0x85c8 {
		t.Fatal("kernel RAM words not seeded")
	}
}

func TestPrintf(t *testing.T) {
	b, m := newBios()
	format := guestStr(m, 0x80050000, "%d %5s|%-3x|%c %u %p %% %s %05d\n")
	str := guestStr(m, 0x80050080, "hi")
	call(t, b, m, co.TableA0, 0x3f, format, 0xfffffffb, str, 0xab, 'Z', 7, 0x1000, 0, 42)
	want := "-5    hi|ab |Z 7 0x1000 % (null) 00042\n"
	if m.Stdout.String() != want {
		t.Fatalf("printf wrote %q, want %q", m.Stdout.String(), want)
	}
}

func TestPutsGetchar(t *testing.T) {
	b, m := newBios()
	call(t, b, m, co.TableA0, 0x3e, guestStr(m, 0x80050000, "line\n"))
	if c := call(t, b, m, co.TableB0, 0x3d, 'x'); c != 'x' {
		t.Fatalf("putchar returned %#x", c)
	}
	if m.Stdout.String() != "line\nx" {
		t.Fatalf("stdout: %q", m.Stdout.String())
	}
	m.Conf.Stdin = strings.NewReader("a")
	if c := call(t, b, m, co.TableA0, 0x3b); c != 'a' {
		t.Fatalf("getchar = %#x", c)
	}
	if c := call(t, b, m, co.TableB0, 0x3c); int32(c) != -1 {
		t.Fatalf("getchar at EOF = %#x", c)
	}
}

func TestRCnt(t *testing.T) {
	b, m := newBios()
	call(t, b, m, co.TableB0, 0x02, 1, 0x100, 0x1111)
	if mode := m.H.RCntMode(1); mode != 0x159 {
		t.Fatalf("counter mode %#x", mode)
	}
	if call(t, b, m, co.TableB0, 0x03, 1) != 0x100 {
		t.Fatal("GetRCnt")
	}
	if call(t, b, m, co.TableB0, 0x04, 1) != 1 || m.H.IMask()&psx.IrqRCnt1 == 0 {
		t.Fatal("StartRCnt did not unmask the counter")
	}
	call(t, b, m, co.TableB0, 0x04, 3)
	if m.H.IMask()&psx.IrqVBlank == 0 {
		t.Fatal("StartRCnt(3) did not unmask vblank")
	}
	call(t, b, m, co.TableB0, 0x05, 1)
	if m.H.IMask()&psx.IrqRCnt1 != 0 {
		t.Fatal("StopRCnt")
	}
	call(t, b, m, co.TableB0, 0x06, 1)
	if m.H.RCntMode(1) != 0 || m.H.RCntCount(1) != 0 {
		t.Fatal("ResetRCnt")
	}
	if call(t, b, m, co.TableC0, 0x0a, 2, 5) != 0 || call(t, b, m, co.TableC0, 0x0a, 2, 6) != 5 {
		t.Fatal("ChangeClearRCnt")
	}
}

func TestPad(t *testing.T) {
	b, m := newBios()
	const buf = 0x80090000
	call(t, b, m, co.TableB0, 0x15, 0x20000001, buf)
	if m.M.Read32(buf) != 0xffffffff {
		t.Fatal("PAD_init buffer")
	}
	if m.H.IMask()&psx.IrqVBlank == 0 || m.Reg(mips.SR)&0x401 != 0x401 {
		t.Fatal("PAD_init did not enable the vblank interrupt")
	}
	if int32(call(t, b, m, co.TableB0, 0x16)) != -1 {
		t.Fatal("PAD_dr")
	}
	if call(t, b, m, co.TableB0, 0x12, buf+8, 4, buf+16, 4) != 1 {
		t.Fatal("InitPAD")
	}
	b.pollPads()
	if m.M.Read32(buf+8) != 0xffff4100 || m.M.Read32(buf+16) != 0xffff4100 {
		t.Fatal("pads not polled")
	}
}

func TestReset(t *testing.T) {
	b, _ := newBios()
	b.InitHeap(0x80002000, 0x1000)
	b.OpenTh(0x80020000, 0, 0)
	b.EnableEvent(b.OpenEvent(hwCard, specIOE, EvMdNoIntr, 0))
	b.Open("bu00:RESET", fCreat)
	b.Reset()
	if b.heap.base != 0 || b.threads[1].status != thFree || b.EventStatus(cardEvent) != EvStUnused || b.fds[firstFd].used {
		t.Fatal("control blocks survived Reset")
	}
	if b.threads[0].status != thRunning || b.CurrentThread() != 0 || b.CardState() != -1 {
		t.Fatal("boot context not restored")
	}
}
