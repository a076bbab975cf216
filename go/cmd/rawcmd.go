package cmd

import (
	"bytes"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/psxcorn/psxcorn/go/loader"
)

// NewRawCmd runs a flat binary placed at -entry.
func NewRawCmd() *PsxCmd {
	c := NewPsxCmd()

	c.LoadImage = func(path string) (*loader.Image, error) {
		p, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "reading raw binary")
		}
		return loader.LoadRaw(bytes.NewReader(p), uint32(c.Entry))
	}
	c.SetupFlags = func() error {
		c.Flags.Uint64Var(&c.Entry, "entry", DefaultEntry, "load and entry address")
		return nil
	}
	return c
}

// DefaultEntry is where raw code lands unless -entry says otherwise.
const DefaultEntry = 0x80010000
