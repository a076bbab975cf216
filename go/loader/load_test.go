package loader

import (
	"bytes"
	"testing"

	"github.com/lunixbochs/struc"
)

func makeExe(t *testing.T, hdr *ExeHeader, text []byte) []byte {
	var buf bytes.Buffer
	if err := struc.Pack(&buf, hdr); err != nil {
		t.Fatal(err, "packing header")
	}
	out := make([]byte, ExeHeaderSize+len(text))
	copy(out, buf.Bytes())
	copy(out[ExeHeaderSize:], text)
	return out
}

func TestLoad(t *testing.T) {
	text := []byte{0x08, 0x00, 0xe0, 0x03, 0, 0, 0, 0}
	exe := makeExe(t, &ExeHeader{
		Magic: "PS-X EXE",
		PC0:   0x80010000,
		GP0:   0x80020000,
		TAddr: 0x80010000,
		TSize: uint32(len(text)),
		BAddr: 0x80011000,
		BSize: 0x100,
	}, text)
	img, err := Load(bytes.NewReader(exe))
	if err != nil {
		t.Fatal(err)
	}
	if img.Entry != 0x80010000 || img.GP != 0x80020000 || img.SP != DefaultStack {
		t.Fatalf("bad registers: %+v", img)
	}
	if len(img.Segments) != 1 || img.Segments[0].Addr != 0x80010000 || !bytes.Equal(img.Segments[0].Data, text) {
		t.Fatalf("bad text segment: %+v", img.Segments)
	}
	if img.BssAddr != 0x80011000 || img.BssSize != 0x100 {
		t.Fatalf("bad bss: %#x+%#x", img.BssAddr, img.BssSize)
	}
	if _, err := Load(bytes.NewReader([]byte(""))); err == nil {
		t.Fatal("Failed to error on loading bad file.")
	}
}

func TestLoadStack(t *testing.T) {
	exe := makeExe(t, &ExeHeader{Magic: "PS-X EXE", SAddr: 0x801f0000, SSize: 0x8000}, nil)
	img, err := LoadExe(bytes.NewReader(exe))
	if err != nil {
		t.Fatal(err)
	}
	if img.SP != 0x801f8000 {
		t.Fatalf("sp = %#x, want 0x801f8000", img.SP)
	}
}

func TestLoadTruncated(t *testing.T) {
	exe := makeExe(t, &ExeHeader{Magic: "PS-X EXE", TSize: 0x800}, make([]byte, 0x10))
	if _, err := LoadExe(bytes.NewReader(exe)); err == nil {
		t.Fatal("truncated text segment loaded")
	}
}

func TestLoadRaw(t *testing.T) {
	img, err := LoadRaw(bytes.NewReader([]byte{1, 2, 3, 4}), 0x80010000)
	if err != nil {
		t.Fatal(err)
	}
	if img.Entry != 0x80010000 || len(img.Segments[0].Data) != 4 {
		t.Fatalf("bad raw image: %+v", img)
	}
	if _, err := LoadRaw(bytes.NewReader(nil), 0); err == nil {
		t.Fatal("empty raw image loaded")
	}
}
