package cpu

import (
	"errors"
)

// Memory is the linear word store holding code, data and stack.
type Memory []Word

// NewMemory allocates zeroed memory of size words.
func NewMemory(size int) Memory {
	return make(Memory, size)
}

// Check returns an error if addr is not a valid index.
func (mem Memory) Check(addr Word) (err error) {
	if addr < 0 || int64(addr) >= int64(len(mem)) {
		err = errors.Join(ErrOutOfBounds, ErrAddress(addr))
	}
	return
}

// Read returns the word at addr.
func (mem Memory) Read(addr Word) (value Word, err error) {
	err = mem.Check(addr)
	if err != nil {
		return
	}

	value = mem[addr]
	return
}

// Write stores value at addr.
func (mem Memory) Write(addr Word, value Word) (err error) {
	err = mem.Check(addr)
	if err != nil {
		return
	}

	mem[addr] = value
	return
}

// Clear zeroes all of memory.
func (mem Memory) Clear() {
	clear(mem)
}
