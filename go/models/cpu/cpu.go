package cpu

// This interface abstracts the minimum functionality psxcorn requires in a CPU emulator.
type Cpu interface {
	// memory mapping: the cpu shares the caller's backing slice
	MemMapSlice(addr uint64, mem []byte, prot int) error

	// memory IO
	MemRead(addr, size uint64) ([]byte, error)
	MemWrite(addr uint64, p []byte) error

	// register IO
	RegRead(reg int) (uint64, error)
	RegWrite(reg int, val uint64) error

	// execution
	Start(begin, until uint64) error
	Stop() error

	// hooks
	HookAdd(htype int, cb interface{}, begin, end uint64, extra ...int) (Hook, error)
	HookDel(hook Hook) error

	// save/restore entire CPU state
	ContextSave(reuse interface{}) (interface{}, error)
	ContextRestore(ctx interface{}) error

	// cleanup
	Close() error
}

// Builder constructs a Cpu backend.
type Builder interface {
	New() (Cpu, error)
}
