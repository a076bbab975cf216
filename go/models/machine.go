package models

import (
	"github.com/psxcorn/psxcorn/go/models/psx"
)

// Machine is the view of the console the BIOS kernel runs against.
type Machine interface {
	RegRead(reg int) (uint64, error)
	RegWrite(reg int, val uint64) error

	Mem() *psx.Memory
	Hw() *psx.Hw
	// Card returns the storage for memory card port 0 or 1, nil if absent.
	Card(port int) psx.Storage

	Config() *Config
}
