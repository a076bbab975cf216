package loader

import (
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

// LoadRaw treats the whole of r as code to run at addr, with the default stack.
func LoadRaw(r io.ReaderAt, addr uint32) (*Image, error) {
	code, err := ioutil.ReadAll(io.NewSectionReader(r, 0, 1<<31-1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read raw image")
	}
	if len(code) == 0 {
		return nil, errors.New("raw image is empty")
	}
	return &Image{
		Entry:    addr,
		SP:       DefaultStack,
		Segments: []Segment{{Addr: addr, Data: code}},
	}, nil
}
