package psx

import (
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
)

const (
	CardSize  = 0x20000
	FrameSize = 128
	BlockSize = 8192
	NumBlocks = CardSize / BlockSize
)

// Storage is a non-volatile byte image. Callers mutate Bytes() in place and
// then Persist the touched range.
type Storage interface {
	Bytes() []byte
	Persist(off, n int) error
}

// Card is a memory card image, optionally backed by a file.
type Card struct {
	data []byte
	path string
}

// NewCard returns a formatted card that lives only in memory.
func NewCard() *Card {
	c := &Card{data: make([]byte, CardSize)}
	c.Format()
	return c
}

// OpenCard loads the image at path, creating a formatted one if it doesn't exist.
func OpenCard(path string) (*Card, error) {
	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		c := NewCard()
		c.path = path
		return c, errors.Wrap(ioutil.WriteFile(path, c.data, 0644), "creating card image")
	} else if err != nil {
		return nil, errors.Wrap(err, "reading card image")
	}
	if len(data) != CardSize {
		return nil, errors.Errorf("%s: card image is %d bytes, expected %d", path, len(data), CardSize)
	}
	return &Card{data: data, path: path}, nil
}

func (c *Card) Path() string  { return c.path }
func (c *Card) Bytes() []byte { return c.data }

func (c *Card) Persist(off, n int) error {
	if off < 0 || n < 0 || off+n > len(c.data) {
		return errors.Errorf("persist range %#x+%#x outside card", off, n)
	}
	if c.path == "" {
		return nil
	}
	f, err := os.OpenFile(c.path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return errors.Wrap(err, "opening card image")
	}
	defer f.Close()
	_, err = f.WriteAt(c.data[off:off+n], int64(off))
	return errors.Wrap(err, "writing card image")
}

// Format lays out an empty directory and persists the whole image.
func (c *Card) Format() error {
	for i := range c.data {
		c.data[i] = 0
	}
	header := c.data[:FrameSize]
	header[0], header[1] = 'M', 'C'
	header[FrameSize-1] = Checksum(header)
	for i := 1; i < NumBlocks; i++ {
		if err := PutFrame(c.data, i, &DirFrame{State: StateFree, Next: NoNext}); err != nil {
			return err
		}
	}
	// broken sector list
	for i := NumBlocks; i < NumBlocks+20; i++ {
		f := c.data[i*FrameSize : (i+1)*FrameSize]
		f[0], f[1], f[2], f[3] = 0xff, 0xff, 0xff, 0xff
		f[8], f[9] = 0xff, 0xff
		f[FrameSize-1] = Checksum(f)
	}
	// write-test frame mirrors the header
	copy(c.data[63*FrameSize:], header)
	return c.Persist(0, len(c.data))
}
