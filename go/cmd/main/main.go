package main

import (
	"github.com/psxcorn/psxcorn/go/cmd"

	_ "github.com/psxcorn/psxcorn/go/cmd/run"

	_ "github.com/psxcorn/psxcorn/go/cmd/card"
	_ "github.com/psxcorn/psxcorn/go/cmd/shellcode"
)

func main() { cmd.Main() }
