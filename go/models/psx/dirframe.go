package psx

import (
	"bytes"
	"strings"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

// directory frame states (high nibble of the first byte)
const (
	StateInUse   = 0x50
	StateFree    = 0xa0
	StateDeleted = 0xa0

	NoNext = 0xffff

	NameLen = 20
)

// DirFrame is one 128-byte directory record in block 0 of a card.
type DirFrame struct {
	State    uint8
	Reserved [3]byte
	Size     uint32 `struc:"uint32,little"`
	Next     uint16 `struc:"uint16,little"`
	Name     string `struc:"[21]byte"`
	Pad      [96]byte
	Checksum uint8
}

func (f *DirFrame) InUse() bool {
	return f.State&0xf0 == StateInUse
}

// Checksum is the XOR of the first 127 bytes of a frame.
func Checksum(frame []byte) uint8 {
	var x uint8
	for _, b := range frame[:FrameSize-1] {
		x ^= b
	}
	return x
}

func frameOffset(i int) int { return i * FrameSize }

// GetFrame unpacks directory frame i from a card image.
func GetFrame(image []byte, i int) (*DirFrame, error) {
	off := frameOffset(i)
	if i < 0 || off+FrameSize > len(image) {
		return nil, errors.Errorf("frame %d out of range", i)
	}
	var f DirFrame
	if err := struc.Unpack(bytes.NewReader(image[off:off+FrameSize]), &f); err != nil {
		return nil, errors.Wrap(err, "struc.Unpack() failed")
	}
	f.Name = strings.TrimRight(f.Name, "\x00")
	if n := strings.IndexByte(f.Name, 0); n >= 0 {
		f.Name = f.Name[:n]
	}
	return &f, nil
}

// PutFrame packs f into frame i of a card image, recomputing the checksum.
func PutFrame(image []byte, i int, f *DirFrame) error {
	if len(f.Name) > NameLen {
		f.Name = f.Name[:NameLen]
	}
	var buf bytes.Buffer
	if err := struc.Pack(&buf, f); err != nil {
		return errors.Wrap(err, "struc.Pack() failed")
	}
	frame := image[frameOffset(i) : frameOffset(i)+FrameSize]
	copy(frame, buf.Bytes())
	frame[FrameSize-1] = Checksum(frame)
	f.Checksum = frame[FrameSize-1]
	return nil
}
