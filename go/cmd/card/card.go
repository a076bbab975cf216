package card

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lunixbochs/fvbommel-util/sortorder"
	"github.com/pkg/errors"

	"github.com/psxcorn/psxcorn/go/cmd"
	"github.com/psxcorn/psxcorn/go/models/psx"
)

// Entry is one file found in a card's directory.
type Entry struct {
	Name   string
	Size   uint32
	Block  int
	Blocks int
	// the directory frame's checksum matched
	Valid bool
}

// List reads the directory of a card image, sorted by name.
func List(image []byte) ([]Entry, error) {
	var out []Entry
	for i := 1; i < psx.NumBlocks; i++ {
		f, err := psx.GetFrame(image, i)
		if err != nil {
			return nil, err
		}
		if !f.InUse() {
			continue
		}
		frame := image[i*psx.FrameSize : (i+1)*psx.FrameSize]
		out = append(out, Entry{
			Name:   f.Name,
			Size:   f.Size,
			Block:  i,
			Blocks: int((f.Size + psx.BlockSize - 1) / psx.BlockSize),
			Valid:  psx.Checksum(frame) == f.Checksum,
		})
	}
	sort.Slice(out, func(i, j int) bool { return sortorder.NaturalLess(out[i].Name, out[j].Name) })
	return out, nil
}

func ls(w io.Writer, path string) error {
	c, err := psx.OpenCard(path)
	if err != nil {
		return err
	}
	entries, err := List(c.Bytes())
	if err != nil {
		return err
	}
	free := psx.NumBlocks - 1
	for _, e := range entries {
		mark := ""
		if !e.Valid {
			mark = " (bad checksum)"
		}
		fmt.Fprintf(w, "%-20s %6d bytes  block %2d%s\n", e.Name, e.Size, e.Block, mark)
		free -= e.Blocks
	}
	fmt.Fprintf(w, "%d files, %d blocks free\n", len(entries), free)
	return nil
}

func format(path string) error {
	c, err := psx.OpenCard(path)
	if err != nil {
		return err
	}
	return c.Format()
}

func Main(args []string) {
	fs := flag.NewFlagSet("card", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s ls|format <card image>\n", args[0])
	}
	fs.Parse(args[1:])
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(1)
	}
	var err error
	switch fs.Arg(0) {
	case "ls":
		err = ls(os.Stdout, fs.Arg(1))
	case "format":
		err = format(fs.Arg(1))
	default:
		err = errors.Errorf("unknown card command %q", fs.Arg(0))
	}
	if err != nil {
		cmd.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() { cmd.Register("card", "list or format a memory card image", Main) }
