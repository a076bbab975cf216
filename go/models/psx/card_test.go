package psx

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestFormat(t *testing.T) {
	c := NewCard()
	img := c.Bytes()
	if img[0] != 'M' || img[1] != 'C' {
		t.Fatal("missing card header")
	}
	for i := 1; i < NumBlocks; i++ {
		f, err := GetFrame(img, i)
		if err != nil {
			t.Fatal(err)
		}
		if f.InUse() || f.Next != NoNext {
			t.Fatalf("frame %d not free after format: %+v", i, f)
		}
		if img[i*FrameSize+FrameSize-1] != Checksum(img[i*FrameSize:]) {
			t.Fatalf("frame %d has a bad checksum", i)
		}
	}
}

func TestFrameRoundTrip(t *testing.T) {
	img := make([]byte, CardSize)
	in := &DirFrame{State: StateInUse, Size: BlockSize, Next: NoNext, Name: "BESLES-00000GAME"}
	if err := PutFrame(img, 3, in); err != nil {
		t.Fatal(err)
	}
	frame := img[3*FrameSize : 4*FrameSize]
	if frame[5] != 0x20 || frame[8] != 0xff || string(frame[0xa:0xa+16]) != in.Name {
		t.Fatalf("unexpected frame layout: % x", frame[:32])
	}
	out, err := GetFrame(img, 3)
	if err != nil {
		t.Fatal(err)
	}
	if out.Name != in.Name || out.Size != BlockSize || !out.InUse() {
		t.Fatalf("frame mismatch: %+v", out)
	}
	if out.Checksum != Checksum(frame) {
		t.Fatal("stored checksum does not match")
	}
}

func TestOpenCardPersist(t *testing.T) {
	dir, err := ioutil.TempDir("", "psxcard")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "card0.mcd")

	c, err := OpenCard(path)
	if err != nil {
		t.Fatal(err)
	}
	c.Bytes()[BlockSize+5] = 0x42
	if err := c.Persist(BlockSize+5, 1); err != nil {
		t.Fatal(err)
	}
	c2, err := OpenCard(path)
	if err != nil {
		t.Fatal(err)
	}
	if c2.Bytes()[BlockSize+5] != 0x42 {
		t.Fatal("persisted byte was not reloaded")
	}
	if err := c2.Persist(CardSize-1, 2); err == nil {
		t.Fatal("Persist() past the end should fail")
	}
}
