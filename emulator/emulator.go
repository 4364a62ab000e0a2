// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/hopvm/cpu"
	"github.com/ezrec/hopvm/internal"
	"github.com/ezrec/hopvm/io"
	"github.com/ezrec/hopvm/translate"
)

var _emulator_defines = map[string]string{
	"HEADER_SP": fmt.Sprintf("%d", cpu.HEADER_SP),
	"HEADER_BP": fmt.Sprintf("%d", cpu.HEADER_BP),
}

// Emulator state. CPU + program + output tape.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Tape io.Tape // Output channel.
}

// NewEmulator creates a new emulator with size words of memory.
func NewEmulator(size int) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(size),
		Program: &cpu.Program{},
	}

	emu.Cpu.Output = &emu.Tape

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset loads the current program into memory.
func (emu *Emulator) Reset() (err error) {
	return emu.Load(emu.Program.Binary())
}

// Load loads a raw word stream, and rewinds the output.
func (emu *Emulator) Load(image []cpu.Word) (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Load(image)
	if err != nil {
		return
	}

	emu.Tape.Rewind()

	if emu.Verbose {
		log.Printf("emulator: %v of %v words in use",
			translate.Number(int64(len(image))),
			translate.Number(int64(len(emu.Cpu.Memory))))
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return int(emu.Cpu.Pc)
}

// Code returns the current instruction, as assembled.
func (emu *Emulator) Code() (code cpu.Code) {
	dbg := emu.Program.Debug(emu.Pc())
	if dbg.Line == nil || dbg.Index != 0 || len(dbg.Data) < 2 {
		return
	}

	code.Op = cpu.Opcode(dbg.Data[0])
	code.Tag = cpu.Tag(dbg.Data[1])
	code.Args = dbg.Data[2:]

	return
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Pc())
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	done, err = emu.Cpu.Tick()
	if err != nil {
		// The pc is restored to the faulting instruction.
		err = &ErrRuntime{LineNo: emu.LineNo(), Err: err}
	}

	return
}

// Run ticks the emulator until it halts.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
	}

	return
}
