package bios

import (
	"bytes"
	"testing"

	co "github.com/psxcorn/psxcorn/go/kernel/common"
	"github.com/psxcorn/psxcorn/go/models/mock"
	"github.com/psxcorn/psxcorn/go/models/psx"
)

const (
	pathAddr = 0x80050000
	path2    = 0x80050040
	bufAddr  = 0x80050100
	readAddr = 0x80050200
	dirAddr  = 0x80050300
)

func checkDirectory(t *testing.T, m *mock.Machine, port int) {
	image := m.Cards[port].Bytes()
	for i := 0; i < psx.NumBlocks; i++ {
		frame := image[i*psx.FrameSize : (i+1)*psx.FrameSize]
		if psx.Checksum(frame) != frame[psx.FrameSize-1] {
			t.Fatalf("card %d frame %d has a bad checksum", port, i)
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	b, m := newBios()
	fd := call(t, b, m, co.TableB0, 0x32, guestStr(m, pathAddr, "bu00:SAVE1"), fCreat)
	if fd != firstFd {
		t.Fatalf("open returned %d", int32(fd))
	}
	data := m.M.Slice(bufAddr, 32)
	for i := range data {
		data[i] = byte(i * 7)
	}
	if n := call(t, b, m, co.TableB0, 0x35, fd, bufAddr, 32); n != 32 {
		t.Fatalf("write returned %d", int32(n))
	}
	if off := call(t, b, m, co.TableB0, 0x33, fd, 0, seekSet); off != 0 {
		t.Fatalf("lseek returned %d", int32(off))
	}
	if n := call(t, b, m, co.TableA0, 0x02, fd, readAddr, 32); n != 32 {
		t.Fatalf("read returned %d", int32(n))
	}
	if !bytes.Equal(m.M.Slice(readAddr, 32), data) {
		t.Fatal("read back different data")
	}
	if !bytes.Equal(m.Cards[0].Bytes()[psx.BlockSize:psx.BlockSize+32], data) {
		t.Fatal("data not stored in the file's block")
	}
	if off := call(t, b, m, co.TableB0, 0x33, fd, 0xfffffffc, seekEnd); off != psx.BlockSize-4 {
		t.Fatalf("lseek from end returned %d", int32(off))
	}
	if off := call(t, b, m, co.TableB0, 0x33, fd, 4, seekCur); off != psx.BlockSize {
		t.Fatalf("relative lseek returned %d", int32(off))
	}
	if call(t, b, m, co.TableB0, 0x36, fd) != fd {
		t.Fatal("close")
	}
	// reopening the same name reuses its descriptor
	if call(t, b, m, co.TableB0, 0x32, pathAddr, 0) != fd {
		t.Fatal("reopen got a different descriptor")
	}
	checkDirectory(t, m, 0)
}

func TestOpenErrors(t *testing.T) {
	b, m := newBios()
	if fd := call(t, b, m, co.TableB0, 0x32, guestStr(m, pathAddr, "bu00:MISSING"), 0); int32(fd) != -1 {
		t.Fatalf("open of a missing file returned %d", int32(fd))
	}
	if fd := call(t, b, m, co.TableB0, 0x32, guestStr(m, pathAddr, "cdrom:FILE"), fCreat); int32(fd) != -1 {
		t.Fatalf("open of a non-card path returned %d", int32(fd))
	}
	if n := call(t, b, m, co.TableB0, 0x34, 9, readAddr, 4); int32(n) != -1 {
		t.Fatalf("read from a closed descriptor returned %d", int32(n))
	}
	if off := call(t, b, m, co.TableB0, 0x33, 9, 0, seekSet); int32(off) != -1 {
		t.Fatalf("lseek on a closed descriptor returned %d", int32(off))
	}
}

func TestSecondCard(t *testing.T) {
	b, m := newBios()
	fd := call(t, b, m, co.TableB0, 0x32, guestStr(m, pathAddr, "bu10:OTHER"), fCreat)
	m.M.WriteStr(bufAddr, "port1")
	call(t, b, m, co.TableB0, 0x35, fd, bufAddr, 5)
	if string(m.Cards[1].Bytes()[psx.BlockSize:psx.BlockSize+5]) != "port1" {
		t.Fatal("write did not reach card 1")
	}
	if f, _ := psx.GetFrame(m.Cards[0].Bytes(), 1); f.InUse() {
		t.Fatal("card 0 directory touched")
	}
	checkDirectory(t, m, 1)
}

func TestStdoutWrite(t *testing.T) {
	b, m := newBios()
	m.M.WriteStr(bufAddr, "hello")
	if n := call(t, b, m, co.TableA0, 0x03, stdoutFd, bufAddr, 5); n != 5 {
		t.Fatalf("write returned %d", int32(n))
	}
	if m.Stdout.String() != "hello" {
		t.Fatalf("stdout: %q", m.Stdout.String())
	}
}

func TestDirectoryOps(t *testing.T) {
	b, m := newBios()
	b.Open("bu00:GAME01", fCreat)
	b.Open("bu00:GAME02", fCreat)
	b.Open("bu00:OTHER", fCreat)

	var names []string
	r := call(t, b, m, co.TableB0, 0x42, guestStr(m, pathAddr, "bu00:GAME*"), dirAddr)
	for r != 0 {
		if r != dirAddr {
			t.Fatalf("firstfile/nextfile returned %#x", r)
		}
		names = append(names, m.M.ReadStr(dirAddr))
		r = call(t, b, m, co.TableB0, 0x43, dirAddr)
	}
	if len(names) != 2 || names[0] != "GAME01" || names[1] != "GAME02" {
		t.Fatalf("found %q", names)
	}
	var ent DirEntry
	if err := co.NewBuf(b.KernelBase, dirAddr).Unpack(&ent); err != nil {
		t.Fatal(err, "unpacking DirEntry")
	}
	if ent.Head != 2 || ent.Size != psx.BlockSize || ent.Attr != psx.StateInUse {
		t.Fatalf("bad entry: %+v", ent)
	}

	if call(t, b, m, co.TableB0, 0x44, guestStr(m, pathAddr, "bu00:GAME01"), guestStr(m, path2, "bu00:SAVE01")) != 1 {
		t.Fatal("rename failed")
	}
	if call(t, b, m, co.TableB0, 0x42, guestStr(m, pathAddr, "bu00:GAME01"), dirAddr) != 0 {
		t.Fatal("old name still found after rename")
	}
	if call(t, b, m, co.TableB0, 0x42, guestStr(m, pathAddr, "bu00:SAVE01"), dirAddr) != dirAddr {
		t.Fatal("new name not found after rename")
	}
	if call(t, b, m, co.TableB0, 0x44, guestStr(m, pathAddr, "bu00:OTHER"), guestStr(m, path2, "bu10:OTHER")) != 0 {
		t.Fatal("rename across cards succeeded")
	}

	if call(t, b, m, co.TableB0, 0x45, guestStr(m, pathAddr, "bu00:SAVE01")) != 1 {
		t.Fatal("delete failed")
	}
	if call(t, b, m, co.TableB0, 0x45, pathAddr) != 0 {
		t.Fatal("deleted twice")
	}
	f, err := psx.GetFrame(m.Cards[0].Bytes(), 1)
	if err != nil {
		t.Fatal(err, "reading frame")
	}
	if f.State&0xf0 != psx.StateDeleted || f.Name != "SAVE01" {
		t.Fatalf("deleted frame: state=%#x name=%q", f.State, f.Name)
	}
	// the deleted block is the first free one again
	if fd := b.Open("bu00:NEW", fCreat); fd < firstFd {
		t.Fatal("open after delete failed")
	}
	if f, _ := psx.GetFrame(m.Cards[0].Bytes(), 1); f.Name != "NEW" {
		t.Fatalf("block 1 holds %q", f.Name)
	}
	checkDirectory(t, m, 0)
}

func TestGlob(t *testing.T) {
	tests := []struct {
		pattern, name string
		match         bool
	}{
		{"", "ANY", true},
		{"*", "ANY", true},
		{"BESLUS-00000GAME", "BESLUS-00000GAME", true},
		{"BES?US*", "BESLUS-00000GAME", true},
		{"BES?US*", "BASLUS", false},
		{"SAVE1", "SAVE12", false},
		{"SAVE12", "SAVE1", false},
	}
	for _, test := range tests {
		if glob(test.pattern, test.name) != test.match {
			t.Errorf("glob(%q, %q) != %v", test.pattern, test.name, test.match)
		}
	}
}

func TestCardSectors(t *testing.T) {
	b, m := newBios()
	call(t, b, m, co.TableB0, 0x4a, 0)
	if b.CardState() != 0 {
		t.Fatal("InitCARD")
	}
	call(t, b, m, co.TableB0, 0x4b)
	if b.CardState() != 1 {
		t.Fatal("StartCARD")
	}
	data := m.M.Slice(bufAddr, psx.FrameSize)
	for i := range data {
		data[i] = byte(i)
	}
	if call(t, b, m, co.TableB0, 0x4e, 0x10, 64, bufAddr) != 1 {
		t.Fatal("_card_write")
	}
	if !bytes.Equal(m.Cards[1].Bytes()[64*psx.FrameSize:65*psx.FrameSize], data) {
		t.Fatal("sector not written to card 1")
	}
	if call(t, b, m, co.TableB0, 0x4f, 0x10, 64, readAddr) != 1 {
		t.Fatal("_card_read")
	}
	if !bytes.Equal(m.M.Slice(readAddr, psx.FrameSize), data) {
		t.Fatal("sector read back different data")
	}
	if call(t, b, m, co.TableB0, 0x58) != 0x10 {
		t.Fatal("_card_chan")
	}
	call(t, b, m, co.TableB0, 0x4c)
	if b.CardState() != 0 {
		t.Fatal("StopCARD")
	}
}
