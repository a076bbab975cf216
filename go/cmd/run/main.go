package run

import (
	"os"

	"github.com/psxcorn/psxcorn/go/cmd"
)

func Main(args []string) {
	os.Exit(cmd.NewPsxCmd().Run(args, os.Environ()))
}

func RawMain(args []string) {
	os.Exit(cmd.NewRawCmd().Run(args, os.Environ()))
}

func init() {
	cmd.Register("run", "execute a PS-X EXE", Main)
	cmd.Register("raw", "execute a flat binary at -entry", RawMain)
}
