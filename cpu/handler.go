package cpu

import (
	"errors"
	"strconv"
)

// handler executes a single decoded instruction. Handlers resolve every
// operand before the first write, so a failing handler leaves the
// machine untouched.
type handler func(cpu *Cpu, code Code) (exit bool, err error)

var handlers = [OP_COUNT]handler{
	OP_NOP:    (*Cpu).opNop,
	OP_MV:     (*Cpu).opAlu,
	OP_ADD:    (*Cpu).opAlu,
	OP_SUB:    (*Cpu).opAlu,
	OP_MUL:    (*Cpu).opAlu,
	OP_DIV:    (*Cpu).opAlu,
	OP_MOD:    (*Cpu).opAlu,
	OP_EQ:     (*Cpu).opCompare,
	OP_NE:     (*Cpu).opCompare,
	OP_LT:     (*Cpu).opCompare,
	OP_LE:     (*Cpu).opCompare,
	OP_GT:     (*Cpu).opCompare,
	OP_GE:     (*Cpu).opCompare,
	OP_HOPT:   (*Cpu).opHop,
	OP_HOPF:   (*Cpu).opHop,
	OP_HOP:    (*Cpu).opHop,
	OP_PRINTN: (*Cpu).opPrint,
	OP_PRINT:  (*Cpu).opPrint,
	OP_PUSH:   (*Cpu).opPush,
	OP_POP:    (*Cpu).opPop,
	OP_SMV:    (*Cpu).opSmv,
	OP_CALL:   (*Cpu).opCall,
	OP_RET:    (*Cpu).opRet,
	OP_EXIT:   (*Cpu).opExit,
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (exit bool, err error) {
	op := code.Op
	if !op.Valid() || handlers[op] == nil {
		err = ErrUnknownOpcode
		return
	}

	if len(code.Args) != op.Arity() || !op.Accepts(code.Tag) {
		err = ErrIllegalOperand
		return
	}

	return handlers[op](cpu, code)
}

// binary resolves the source value and destination address of a
// two operand instruction.
func (cpu *Cpu) binary(code Code) (value Word, addr Word, err error) {
	value, err = cpu.value(code.Args[0], code.Tag.Mode(0))
	if err != nil {
		return
	}

	addr, err = cpu.target(code.Args[1], code.Tag.Mode(1))
	return
}

func (cpu *Cpu) opNop(code Code) (exit bool, err error) {
	return
}

func (cpu *Cpu) opExit(code Code) (exit bool, err error) {
	exit = true
	return
}

// opAlu applies an arithmetic operation to the destination in place.
func (cpu *Cpu) opAlu(code Code) (exit bool, err error) {
	value, addr, err := cpu.binary(code)
	if err != nil {
		return
	}

	input := cpu.Memory[addr]

	var output Word
	switch code.Op {
	case OP_MV:
		output = value
	case OP_ADD:
		output = input + value
	case OP_SUB:
		output = input - value
	case OP_MUL:
		output = input * value
	case OP_DIV:
		if value == 0 {
			err = ErrDivisionByZero
			return
		}
		output = input / value
	case OP_MOD:
		if value == 0 {
			err = ErrDivisionByZero
			return
		}
		output = input % value
	}

	cpu.Memory[addr] = output

	return
}

// opCompare sets the flag to (destination OP source).
func (cpu *Cpu) opCompare(code Code) (exit bool, err error) {
	value, addr, err := cpu.binary(code)
	if err != nil {
		return
	}

	input := cpu.Memory[addr]

	switch code.Op {
	case OP_EQ:
		cpu.Flag = input == value
	case OP_NE:
		cpu.Flag = input != value
	case OP_LT:
		cpu.Flag = input < value
	case OP_LE:
		cpu.Flag = input <= value
	case OP_GT:
		cpu.Flag = input > value
	case OP_GE:
		cpu.Flag = input >= value
	}

	return
}

// opHop jumps, always or on the flag state. An untaken branch leaves the
// pc on its operand word.
func (cpu *Cpu) opHop(code Code) (exit bool, err error) {
	switch code.Op {
	case OP_HOPT:
		if !cpu.Flag {
			return
		}
	case OP_HOPF:
		if cpu.Flag {
			return
		}
	}

	target, err := cpu.jump(code.Args[0], code.Tag.Mode(0))
	if err != nil {
		return
	}

	err = cpu.Memory.Check(target)
	if err != nil {
		return
	}

	cpu.Pc = target - 1

	return
}

func (cpu *Cpu) opPrint(code Code) (exit bool, err error) {
	value, err := cpu.value(code.Args[0], code.Tag.Mode(0))
	if err != nil {
		return
	}

	var data []byte
	if code.Op == OP_PRINTN {
		data = strconv.AppendInt(data, int64(value), 10)
	} else {
		data = []byte{byte(value)}
	}

	err = cpu.send(data)
	return
}

// send writes to the output channel, if any.
func (cpu *Cpu) send(data []byte) (err error) {
	if cpu.Output == nil {
		return
	}

	err = cpu.Output.Send(data)
	if err != nil {
		err = errors.Join(ErrOutput, err)
	}

	return
}

func (cpu *Cpu) opPush(code Code) (exit bool, err error) {
	value, err := cpu.value(code.Args[0], code.Tag.Mode(0))
	if err != nil {
		return
	}

	err = cpu.Push(value)
	return
}

// opPop copies the top of the stack to the destination before releasing
// it. A literal destination discards the value.
func (cpu *Cpu) opPop(code Code) (exit bool, err error) {
	mode := code.Tag.Mode(0)
	if mode == MODE_LITERAL {
		cpu.Sp++
		return
	}

	addr, err := cpu.target(code.Args[0], mode)
	if err != nil {
		return
	}

	value, err := cpu.Peek()
	if err != nil {
		return
	}

	cpu.Memory[addr] = value
	cpu.Sp++

	return
}

// opSmv reads the frame-relative cell Bp + 1 + offset.
func (cpu *Cpu) opSmv(code Code) (exit bool, err error) {
	offset, addr, err := cpu.binary(code)
	if err != nil {
		return
	}

	value, err := cpu.Memory.Read(cpu.Bp + 1 + offset)
	if err != nil {
		return
	}

	cpu.Memory[addr] = value

	return
}

// opCall pushes the return address and the caller's frame anchor, makes
// the new frame current, then jumps. A reference target is read as it
// will be once the frame is built.
func (cpu *Cpu) opCall(code Code) (exit bool, err error) {
	word := code.Args[0]
	mode := code.Tag.Mode(0)

	if mode == MODE_REFERENCE {
		err = cpu.Memory.Check(word)
		if err != nil {
			return
		}
	}

	err = cpu.reserve(2)
	if err != nil {
		return
	}

	ret := cpu.Pc + 1

	var target Word
	switch {
	case mode == MODE_REFERENCE && word == cpu.Sp-1:
		target = ret
	case mode == MODE_REFERENCE && word == cpu.Sp-2:
		target = cpu.Bp
	default:
		target, err = cpu.jump(word, mode)
		if err != nil {
			return
		}
	}

	err = cpu.Memory.Check(target)
	if err != nil {
		return
	}

	cpu.Sp--
	cpu.Memory[cpu.Sp] = ret

	cpu.Sp--
	cpu.Memory[cpu.Sp] = cpu.Bp

	cpu.Bp = cpu.Sp
	cpu.Pc = target - 1

	return
}

// opRet discards the current frame and returns to the caller.
func (cpu *Cpu) opRet(code Code) (exit bool, err error) {
	bp, err := cpu.Memory.Read(cpu.Bp)
	if err != nil {
		return
	}

	ret, err := cpu.Memory.Read(cpu.Bp + 1)
	if err != nil {
		return
	}

	err = cpu.Memory.Check(ret)
	if err != nil {
		return
	}

	cpu.Sp = cpu.Bp + 2
	cpu.Bp = bp
	cpu.Pc = ret - 1

	return
}
