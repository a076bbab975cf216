package loader

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

var UnknownMagic = errors.New("Could not identify file magic.")

func LoadFile(path string) (*Image, error) {
	p, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return Load(bytes.NewReader(p))
}

func Load(r io.ReaderAt) (*Image, error) {
	if MatchExe(r) {
		return LoadExe(r)
	}
	return nil, errors.WithStack(UnknownMagic)
}
