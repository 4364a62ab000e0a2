package cpu

// Push decrements the stack pointer, then stores value at the new top.
func (cpu *Cpu) Push(value Word) (err error) {
	sp := cpu.Sp - 1
	err = cpu.Memory.Write(sp, value)
	if err != nil {
		return
	}

	cpu.Sp = sp
	return
}

// Pop returns the value at the top of the stack, then increments
// the stack pointer.
func (cpu *Cpu) Pop() (value Word, err error) {
	value, err = cpu.Peek()
	if err != nil {
		return
	}

	cpu.Sp++
	return
}

// Peek returns the value at the top of the stack.
func (cpu *Cpu) Peek() (value Word, err error) {
	return cpu.Memory.Read(cpu.Sp)
}

// Depth returns the number of words pushed since the program was loaded.
func (cpu *Cpu) Depth() int {
	return int(cpu.stackBase - cpu.Sp)
}

// reserve checks that n more words can be pushed.
func (cpu *Cpu) reserve(n Word) (err error) {
	err = cpu.Memory.Check(cpu.Sp - n)
	if err != nil {
		return
	}

	return cpu.Memory.Check(cpu.Sp - 1)
}
