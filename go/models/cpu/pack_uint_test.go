package cpu

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestPackUint(t *testing.T) {
	buf, err := PackUint(binary.LittleEndian, 4, nil, 0x11223344)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf, []byte{0x44, 0x33, 0x22, 0x11}) {
		t.Fatalf("bad packing: %x", buf)
	}
	n, err := UnpackUint(binary.LittleEndian, 2, buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0x3344 {
		t.Fatalf("UnpackUint() returned %#x, expecting 0x3344", n)
	}
	if _, err := PackUint(binary.LittleEndian, 4, make([]byte, 2), 1); err == nil {
		t.Fatal("PackUint() should reject a short buffer")
	}
	if _, err := UnpackUint(binary.LittleEndian, 3, buf); err == nil {
		t.Fatal("UnpackUint() should reject odd sizes")
	}
}
