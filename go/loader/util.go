package loader

import (
	"io"
)

func getMagic(r io.ReaderAt, n int) []byte {
	ret := make([]byte, n)
	r.ReadAt(ret, 0)
	return ret
}
