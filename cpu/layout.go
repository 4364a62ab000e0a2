package cpu

// Word is a single signed memory cell.
type Word int32

// Image layout. The external word stream carries the initial stack
// and base pointer in its first two words; code follows at ORIGIN.
const (
	HEADER_SP   = 0     // Image word holding the initial stack pointer.
	HEADER_BP   = 1     // Image word holding the initial base pointer.
	ORIGIN      = 2     // Address of the first instruction.
	MEMORY_SIZE = 65536 // Default memory size in words.
)
