package trace

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

var TRACE_MAGIC = "PSXT"

const TRACE_VERSION = 1

// header flags
const (
	FLAG_HLE_ONLY = 1 << iota
)

type TraceHeader struct {
	// MAGIC ("PSXT")
	Magic string `struc:"[4]byte" json:"-"`
	// file format version
	Version uint32 `struc:"uint32,little" json:"version"`
	Flags   uint32 `struc:"uint32,little" json:"flags"`
}

// Call is one BIOS call as seen at the trampoline.
type Call struct {
	Table uint8
	Num   uint8
	Pc    uint32    `struc:"uint32,little"`
	Args  [4]uint32 `struc:"[4]uint32,little"`
	Ret   uint32    `struc:"uint32,little"`
	// set when the call was handled at high level
	Handled bool
}

func (c *Call) String() string {
	return fmt.Sprintf("%#08x %X0:%02x(%#x, %#x, %#x, %#x) = %#x", c.Pc, c.Table, c.Num, c.Args[0], c.Args[1], c.Args[2], c.Args[3], c.Ret)
}

type TraceWriter struct {
	w  io.WriteCloser
	zw *snappy.Writer
}

func NewWriter(w io.WriteCloser, flags uint32) (*TraceWriter, error) {
	header := &TraceHeader{
		Magic:   TRACE_MAGIC,
		Version: TRACE_VERSION,
		Flags:   flags,
	}
	if err := struc.Pack(w, header); err != nil {
		return nil, errors.Wrap(err, "failed to pack header")
	}
	zw := snappy.NewBufferedWriter(w)
	return &TraceWriter{w: w, zw: zw}, nil
}

// write a record at a time
func (t *TraceWriter) Pack(c *Call) error {
	return struc.PackWithOrder(t.zw, c, binary.LittleEndian)
}

func (t *TraceWriter) Close() error {
	if err := t.zw.Close(); err != nil {
		t.w.Close()
		return err
	}
	return t.w.Close()
}

type TraceReader struct {
	r      io.ReadCloser
	zr     *snappy.Reader
	Header TraceHeader
}

func NewReader(r io.ReadCloser) (*TraceReader, error) {
	t := &TraceReader{r: r}
	if err := struc.Unpack(r, &t.Header); err != nil {
		return nil, errors.Wrap(err, "failed to unpack header")
	}
	if t.Header.Magic != TRACE_MAGIC {
		return nil, errors.New("invalid trace file magic")
	}
	if t.Header.Version != TRACE_VERSION {
		return nil, errors.Errorf("unsupported trace version %d", t.Header.Version)
	}
	t.zr = snappy.NewReader(r)
	return t, nil
}

// Next returns io.EOF after the last record.
func (t *TraceReader) Next() (*Call, error) {
	var c Call
	if err := struc.UnpackWithOrder(t.zr, &c, binary.LittleEndian); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	return &c, nil
}

func (t *TraceReader) Close() {
	t.zr.Reset(nil)
	t.r.Close()
}
