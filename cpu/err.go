package cpu

import (
	"errors"
	"fmt"

	"github.com/ezrec/hopvm/translate"
)

var f = translate.From

var (
	// Machine faults
	ErrIllegalOperand = errors.New(f("illegal operand encoding"))
	ErrUnknownOpcode  = errors.New(f("unknown opcode"))
	ErrDivisionByZero = errors.New(f("division by zero"))
	ErrOutOfBounds    = errors.New(f("out of bounds access"))
	ErrOutput         = errors.New(f("output failed"))

	// Load errors
	ErrImageShort = errors.New(f("image missing stack header"))
	ErrImageLarge = errors.New(f("image larger than memory"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrDirectiveSyntax    = errors.New(f("directive syntax"))
	ErrDirectiveRange     = errors.New(f("directive value exceeds memory"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeMode         = errors.New(f("addressing mode not supported"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// FaultKind classifies a machine fault.
type FaultKind int

//go:generate go tool stringer -linecomment -type=FaultKind
const (
	FAULT_NONE             = FaultKind(0) // none
	FAULT_ILLEGAL_OPERAND  = FaultKind(1) // illegal operand encoding
	FAULT_UNKNOWN_OPCODE   = FaultKind(2) // unknown opcode
	FAULT_DIVISION_BY_ZERO = FaultKind(3) // division by zero
	FAULT_OUT_OF_BOUNDS    = FaultKind(4) // out of bounds access
	FAULT_OUTPUT           = FaultKind(5) // output
)

// KindOf returns the fault kind carried by err.
func KindOf(err error) FaultKind {
	switch {
	case err == nil:
		return FAULT_NONE
	case errors.Is(err, ErrIllegalOperand):
		return FAULT_ILLEGAL_OPERAND
	case errors.Is(err, ErrUnknownOpcode):
		return FAULT_UNKNOWN_OPCODE
	case errors.Is(err, ErrDivisionByZero):
		return FAULT_DIVISION_BY_ZERO
	case errors.Is(err, ErrOutOfBounds):
		return FAULT_OUT_OF_BOUNDS
	case errors.Is(err, ErrOutput):
		return FAULT_OUTPUT
	}
	return FAULT_NONE
}

// ErrAddress is the address of a failed memory access.
type ErrAddress Word

func (ea ErrAddress) Error() string {
	return f("address %v", fmt.Sprint(int64(ea)))
}

// Fault is a machine fault, reported at the address of the
// faulting instruction.
type Fault struct {
	Pc   Word
	Code Code
	Err  error
}

func (ft *Fault) Error() string {
	return f("pc %v '%v' %v", fmt.Sprint(int64(ft.Pc)), ft.Code, ft.Err)
}

func (ft *Fault) Unwrap() error {
	return ft.Err
}

// Kind returns the fault classification.
func (ft *Fault) Kind() FaultKind {
	return KindOf(ft.Err)
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", fmt.Sprint(err.LineNo), err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseOperand string

func (err ErrParseOperand) Error() string {
	return f("'%v' is not an operand", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, fmt.Sprint(err.Line), err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
