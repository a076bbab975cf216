package shellcode

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	"github.com/psxcorn/psxcorn/go/cmd"
	"github.com/psxcorn/psxcorn/go/loader"
)

// Assemble turns MIPS source into an image at addr.
func Assemble(src string, addr uint32) (*loader.Image, error) {
	code, err := mips.Arch.Asm.Asm(src, uint64(addr))
	if err != nil {
		return nil, errors.Wrap(err, "failed to assemble shellcode")
	}
	return loader.LoadRaw(bytes.NewReader(code), addr)
}

func Main(args []string) {
	c := cmd.NewRawCmd()
	c.LoadImage = func(path string) (*loader.Image, error) {
		var src []byte
		var err error
		if path == "-" {
			src, err = ioutil.ReadAll(os.Stdin)
		} else {
			src, err = ioutil.ReadFile(path)
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read shellcode")
		}
		return Assemble(string(src), uint32(c.Entry))
	}
	c.RunEmulator = func() error {
		emu := c.Emulator
		err := emu.Run()
		regs, rerr := emu.RegDump()
		if rerr != nil {
			return rerr
		}
		for _, r := range regs {
			if r.Name == "v0" || r.Name == "v1" {
				fmt.Fprintf(c.Config.Output, "%s = %#x\n", r.Name, r.Val)
			}
		}
		return err
	}
	os.Exit(c.Run(args, os.Environ()))
}

func init() { cmd.Register("shellcode", "assemble and run MIPS source (- for stdin)", Main) }
