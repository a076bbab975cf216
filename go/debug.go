package psxcorn

import (
	"fmt"
	"io"
	"strings"

	"github.com/psxcorn/psxcorn/go/arch/mips"
	"github.com/psxcorn/psxcorn/go/models"
)

// crash context shown around pc
const crashWindow = 64

// CrashReport prints the register file (highlighting what moved since the
// last trace step or the start of the run), the instruction at pc and the memory around it.
func (e *Emulator) CrashReport(w io.Writer) {
	color := e.config.Color
	fmt.Fprintln(w, models.Colorize("[registers]", "red", color))
	fmt.Fprint(w, e.status.Grid(e.status.Diff(false), color))

	pc := e.reg(mips.PC)
	if dis, err := e.Dis(uint64(pc), 4, true); err == nil && dis != "" {
		fmt.Fprintln(w, models.Colorize("[pc]", "red", color))
		fmt.Fprintln(w, dis)
	}
	base := pc &^ 0xf
	if e.mem.Valid(base) {
		p := e.mem.Translate(base)
		if len(p) > crashWindow {
			p = p[:crashWindow]
		}
		fmt.Fprintln(w, models.Colorize("[memory]", "red", color))
		fmt.Fprintln(w, strings.Join(models.HexDump(uint64(base), p), "\n"))
	}
}
