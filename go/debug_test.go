package psxcorn

import (
	"bytes"
	"strings"
	"testing"
)

func TestCrashReport(t *testing.T) {
	e := newEmulator(t, nil)
	defer e.Close()
	e.load(t, program(0x48000000, jr(ra), nop))
	if err := e.Run(); err == nil {
		t.Fatal("Run() should fail on cop2")
	}
	var buf bytes.Buffer
	e.CrashReport(&buf)
	out := buf.String()
	for _, want := range []string{"[registers]", "[memory]", "0x80010000:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("crash report missing %q:\n%s", want, out)
		}
	}
}
