package intcode

// View is read-only access to machine memory.
type View interface {
	// Len returns the number of cells in memory.
	Len() int
	// Load returns the cell at addr.
	Load(addr int64) (value int64, err error)
}

// Memory is the fixed-length cell array of a machine.
type Memory []int64

var _ View = Memory(nil)

// Len returns the number of cells in memory.
func (mem Memory) Len() int {
	return len(mem)
}

// Load returns the cell at addr, or ErrAddress if addr is outside memory.
func (mem Memory) Load(addr int64) (value int64, err error) {
	if addr < 0 || addr >= int64(len(mem)) {
		err = ErrAddress(addr)
		return
	}

	value = mem[addr]
	return
}

// Store sets the cell at addr, or returns ErrAddress if addr is outside memory.
func (mem Memory) Store(addr int64, value int64) (err error) {
	if addr < 0 || addr >= int64(len(mem)) {
		err = ErrAddress(addr)
		return
	}

	mem[addr] = value
	return
}
