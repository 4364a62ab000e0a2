package cpu

import (
	"iter"
)

// Link is a reference from a data word to a label, resolved after assembly.
type Link struct {
	Index int    // Index into Line.Data.
	Label string // Label to resolve.
}

// Line represents a line of assembled code with its source location and
// generated words.
type Line struct {
	LineNo int
	Addr   int
	Words  []string
	Data   []Word
	Links  []Link
}

// Program is an assembled program.
type Program struct {
	Sp    Word           // Initial stack pointer; zero for top of memory.
	Bp    Word           // Initial base pointer.
	Lines []Line         // Assembled lines, in address order.
	Label map[string]int // Label addresses.
}

// Debug locates the line holding an address.
type Debug struct {
	*Line
	Index int
}

// Debug returns the line containing addr, if any.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, line := range prog.Lines {
		if addr >= line.Addr && addr < line.Addr+len(line.Data) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: addr - line.Addr,
			}
			break
		}
	}

	return
}

// Size returns the number of words in the binary image.
func (prog *Program) Size() (size int) {
	size = ORIGIN
	for _, line := range prog.Lines {
		size = max(size, line.Addr+len(line.Data))
	}
	return
}

// Binary returns the loadable word stream: the stack header followed by
// the program words from ORIGIN.
func (prog *Program) Binary() (image []Word) {
	image = make([]Word, prog.Size())
	image[HEADER_SP] = prog.Sp
	image[HEADER_BP] = prog.Bp

	for addr, word := range prog.Words() {
		image[addr] = word
	}

	return
}

// Words iterates over every assembled word and its address.
func (prog *Program) Words() iter.Seq2[int, Word] {
	return func(yield func(addr int, word Word) bool) {
		for _, line := range prog.Lines {
			for n, word := range line.Data {
				if !yield(line.Addr+n, word) {
					return
				}
			}
		}
	}
}
