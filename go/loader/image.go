package loader

// Segment is a run of bytes copied into guest memory before execution.
type Segment struct {
	Addr uint32
	Data []byte
}

// Image is a program ready to be placed in guest memory.
type Image struct {
	Entry, GP, SP uint32
	Segments      []Segment
	// zero filled before entry
	BssAddr, BssSize uint32
}
