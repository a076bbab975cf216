package common

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/psxcorn/psxcorn/go/models"
)

type (
	// Buf is a guest pointer the handler reads from.
	Buf struct {
		Addr uint32
		K    *KernelBase
	}
	// Obuf is a guest pointer the handler writes to.
	Obuf struct{ Buf }
	Len  uint32
	Off  int32
	Fd   int32
	Ptr  uint32
)

func NewBuf(k *KernelBase, addr uint32) Buf {
	return Buf{K: k, Addr: addr}
}

func (b Buf) Struc() *models.StrucStream {
	return &models.StrucStream{Stream: b.K.M.Mem().Stream(b.Addr), Order: binary.LittleEndian}
}

func (b Buf) Pack(i interface{}) error {
	return errors.Wrap(b.Struc().Pack(i), "struc.Pack() failed")
}

func (b Buf) Unpack(i interface{}) error {
	return errors.Wrap(b.Struc().Unpack(i), "struc.Unpack() failed")
}

// Bytes returns n bytes of guest memory backing the buffer.
func (b Buf) Bytes(n int) []byte {
	return b.K.M.Mem().Slice(b.Addr, n)
}
