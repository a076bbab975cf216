package loader

import (
	"bytes"
	"io"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

var exeMagic = []byte("PS-X EXE")

const (
	// text follows the header sector
	ExeHeaderSize = 0x800
	// stack pointer used when the header leaves s_addr empty
	DefaultStack = 0x801ffff0
)

// ExeHeader is the start of the 2048-byte PS-X EXE header sector.
type ExeHeader struct {
	Magic string `struc:"[8]byte"`
	Pad   []byte `struc:"[8]pad"`
	PC0   uint32 `struc:"uint32,little"`
	GP0   uint32 `struc:"uint32,little"`
	TAddr uint32 `struc:"uint32,little"`
	TSize uint32 `struc:"uint32,little"`
	DAddr uint32 `struc:"uint32,little"`
	DSize uint32 `struc:"uint32,little"`
	BAddr uint32 `struc:"uint32,little"`
	BSize uint32 `struc:"uint32,little"`
	SAddr uint32 `struc:"uint32,little"`
	SSize uint32 `struc:"uint32,little"`
}

func MatchExe(r io.ReaderAt) bool {
	return bytes.Equal(getMagic(r, len(exeMagic)), exeMagic)
}

// LoadExe parses a PS-X EXE and reads its text segment.
func LoadExe(r io.ReaderAt) (*Image, error) {
	var hdr ExeHeader
	if err := struc.Unpack(io.NewSectionReader(r, 0, ExeHeaderSize), &hdr); err != nil {
		return nil, errors.Wrap(err, "failed to unpack PS-X EXE header")
	}
	if hdr.Magic != string(exeMagic) {
		return nil, errors.WithStack(UnknownMagic)
	}
	text := make([]byte, hdr.TSize)
	if n, err := r.ReadAt(text, ExeHeaderSize); n < len(text) {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, errors.Wrapf(err, "text segment is %#x bytes, read %#x", hdr.TSize, n)
	}
	img := &Image{
		Entry:    hdr.PC0,
		GP:       hdr.GP0,
		SP:       DefaultStack,
		Segments: []Segment{{Addr: hdr.TAddr, Data: text}},
		BssAddr:  hdr.BAddr,
		BssSize:  hdr.BSize,
	}
	if hdr.SAddr != 0 {
		img.SP = hdr.SAddr + hdr.SSize
	}
	return img, nil
}
