package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

// Channel is the output channel written by print and printn.
type Channel interface {
	// Send writes data, and flushes it to its destination.
	Send(data []byte) error
}

// State is the execution state of the machine.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_EXIT    = State(1) // exit
	STATE_FAULT   = State(2) // fault
)

// Cpu is the simulation context for the machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory Memory // Code, data and stack.

	Pc   Word // Current program counter.
	Flag bool // Comparison flag.
	Sp   Word // Stack pointer; address of the top of stack.
	Bp   Word // Base pointer; address of the current frame anchor.

	Output Channel // Output channel for print and printn.

	State State // Execution state.
	Fault error // Fault that halted the machine, if any.
	Ticks int   // Instructions retired.

	stackBase Word // Stack pointer at load time.
}

// NewCpu creates a new CPU with size words of memory.
func NewCpu(size int) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(size),
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"ORIGIN":      fmt.Sprintf("%d", ORIGIN),
		"MEMORY_SIZE": fmt.Sprintf("%d", len(cpu.Memory)),
	})
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "flag", "sp", "bp", "top", "state"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%d", cpu.Pc)
		case "flag":
			strval = fmt.Sprintf("%v", cpu.Flag)
		case "sp":
			strval = fmt.Sprintf("%d", cpu.Sp)
		case "bp":
			strval = fmt.Sprintf("%d", cpu.Bp)
		case "top":
			val, err := cpu.Peek()
			if err == nil {
				strval = fmt.Sprintf("%d", val)
			} else {
				strval = "-"
			}
		case "state":
			strval = cpu.State.String()
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Reset the CPU state.
// - Clears memory, flag and pointers.
// - Zeros statistics counters.
// - Sets the machine running at ORIGIN.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Clear()
	cpu.Pc = ORIGIN
	cpu.Flag = false
	cpu.Sp = Word(len(cpu.Memory))
	cpu.Bp = 0
	cpu.State = STATE_RUNNING
	cpu.Fault = nil
	cpu.Ticks = 0
	cpu.stackBase = cpu.Sp
}

// Load resets the machine and copies the image to memory from address 0.
// The first two image words supply the initial stack and base pointers; a
// zero stack pointer selects the top of memory. Both words also remain in
// memory as ordinary cells.
func (cpu *Cpu) Load(image []Word) (err error) {
	if len(image) < ORIGIN {
		err = ErrImageShort
		return
	}

	if len(image) > len(cpu.Memory) {
		err = ErrImageLarge
		return
	}

	cpu.Reset()

	copy(cpu.Memory, image)

	cpu.Sp = image[HEADER_SP]
	if cpu.Sp == 0 {
		cpu.Sp = Word(len(cpu.Memory))
	}
	cpu.Bp = image[HEADER_BP]
	cpu.stackBase = cpu.Sp

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words, sp %d, bp %d", len(image), cpu.Sp, cpu.Bp)
	}

	return
}

// Fetch decodes the instruction at the pc. On return the pc addresses the
// last word consumed by the instruction.
func (cpu *Cpu) Fetch() (code Code, err error) {
	word, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}

	code.Op = Opcode(word)
	if !code.Op.Valid() {
		err = ErrUnknownOpcode
		return
	}

	cpu.Pc++
	word, err = cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}
	code.Tag = Tag(uint16(word))
	if Word(code.Tag) != word && code.Op.Tags() != nil {
		err = ErrIllegalOperand
		return
	}

	arity := code.Op.Arity()
	if arity > 0 {
		code.Args = make([]Word, arity)
	}
	for n := range arity {
		cpu.Pc++
		code.Args[n], err = cpu.Memory.Read(cpu.Pc)
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single instruction. 'done' is set once the machine has
// halted; a normal exit has a nil 'err', a fault returns a *Fault. Ticking
// a halted machine repeats its halt result.
func (cpu *Cpu) Tick() (done bool, err error) {
	switch cpu.State {
	case STATE_EXIT:
		done = true
		return
	case STATE_FAULT:
		done = true
		err = cpu.Fault
		return
	}

	pc := cpu.Pc

	code, err := cpu.Fetch()
	if err == nil {
		if cpu.Verbose {
			log.Printf("%04d: %v", pc, code)
		}

		var exit bool
		exit, err = cpu.Execute(code)
		if err == nil {
			cpu.Ticks++
			if exit {
				cpu.Pc = pc
				cpu.State = STATE_EXIT
				done = true
				if cpu.Verbose {
					log.Printf("cpu: exit after %d ticks", cpu.Ticks)
				}
				return
			}
			cpu.Pc++
			return
		}
	}

	cpu.Pc = pc
	cpu.State = STATE_FAULT
	cpu.Fault = &Fault{Pc: pc, Code: code, Err: err}
	if cpu.Verbose {
		log.Printf("cpu: %v", cpu.Fault)
	}

	done = true
	err = cpu.Fault

	return
}

// Run ticks until the machine halts.
func (cpu *Cpu) Run() (err error) {
	for done := false; !done; {
		done, err = cpu.Tick()
	}

	return
}
