package cpu

// value resolves a source operand to the value it designates.
//   - Literal: the word itself.
//   - Memory: the word at address 'word'.
//   - Reference: the word at the address held at 'word'.
func (cpu *Cpu) value(word Word, mode Mode) (value Word, err error) {
	switch mode {
	case MODE_LITERAL:
		value = word
	case MODE_MEMORY:
		value, err = cpu.Memory.Read(word)
	case MODE_REFERENCE:
		var addr Word
		addr, err = cpu.Memory.Read(word)
		if err != nil {
			return
		}
		value, err = cpu.Memory.Read(addr)
	default:
		err = ErrIllegalOperand
	}

	return
}

// target resolves a destination operand to a writable address.
// Literals are never writable.
func (cpu *Cpu) target(word Word, mode Mode) (addr Word, err error) {
	switch mode {
	case MODE_MEMORY:
		addr = word
	case MODE_REFERENCE:
		addr, err = cpu.Memory.Read(word)
		if err != nil {
			return
		}
	default:
		err = ErrIllegalOperand
		return
	}

	err = cpu.Memory.Check(addr)
	return
}

// jump resolves a control flow target. Literal and Memory both name the
// target address directly; Reference loads it from memory.
func (cpu *Cpu) jump(word Word, mode Mode) (addr Word, err error) {
	switch mode {
	case MODE_LITERAL, MODE_MEMORY:
		addr = word
	case MODE_REFERENCE:
		addr, err = cpu.Memory.Read(word)
	default:
		err = ErrIllegalOperand
	}

	return
}
