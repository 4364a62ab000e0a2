package cpu

import (
	"fmt"
	"slices"
	"strings"
)

// Opcode is an instruction opcode word.
type Opcode int

// The numbering is the binary contract with assemblers; do not reorder.
//
//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOP    = Opcode(0)  // nop
	OP_MV     = Opcode(1)  // mv
	OP_ADD    = Opcode(2)  // vadd
	OP_SUB    = Opcode(3)  // vsub
	OP_MUL    = Opcode(4)  // vmul
	OP_DIV    = Opcode(5)  // vdiv
	OP_MOD    = Opcode(6)  // vmod
	OP_EQ     = Opcode(7)  // eq
	OP_NE     = Opcode(8)  // neq
	OP_LT     = Opcode(9)  // lt
	OP_LE     = Opcode(10) // lte
	OP_GT     = Opcode(11) // gt
	OP_GE     = Opcode(12) // gte
	OP_HOPT   = Opcode(13) // hopt
	OP_HOPF   = Opcode(14) // hopf
	OP_HOP    = Opcode(15) // hop
	OP_PRINTN = Opcode(16) // printn
	OP_PRINT  = Opcode(17) // print
	OP_PUSH   = Opcode(18) // push
	OP_POP    = Opcode(19) // pop
	OP_SMV    = Opcode(20) // smv
	OP_CALL   = Opcode(21) // call
	OP_RET    = Opcode(22) // ret
	OP_EXIT   = Opcode(23) // vexit
)

// OP_COUNT is the number of defined opcodes.
const OP_COUNT = 24

var (
	// Source mode, destination mode.
	tagsBinary = []Tag{
		MakeTag(MODE_LITERAL, MODE_MEMORY),
		MakeTag(MODE_REFERENCE, MODE_MEMORY),
		MakeTag(MODE_MEMORY, MODE_MEMORY),
		MakeTag(MODE_LITERAL, MODE_REFERENCE),
		MakeTag(MODE_MEMORY, MODE_REFERENCE),
		MakeTag(MODE_REFERENCE, MODE_REFERENCE),
	}
	tagsUnary = []Tag{
		MakeTag(MODE_LITERAL),
		MakeTag(MODE_MEMORY),
		MakeTag(MODE_REFERENCE),
	}
	// call targets must live in memory.
	tagsCall = []Tag{
		MakeTag(MODE_MEMORY),
		MakeTag(MODE_REFERENCE),
	}
)

// Valid returns true if the opcode is defined.
func (op Opcode) Valid() bool {
	return op >= 0 && op < OP_COUNT
}

// Arity returns the number of operand words that follow the tag word.
func (op Opcode) Arity() int {
	switch op {
	case OP_MV, OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD,
		OP_EQ, OP_NE, OP_LT, OP_LE, OP_GT, OP_GE, OP_SMV:
		return 2
	case OP_HOPT, OP_HOPF, OP_HOP, OP_PRINTN, OP_PRINT,
		OP_PUSH, OP_POP, OP_CALL:
		return 1
	}
	return 0
}

// Tags returns the operand tags the opcode accepts.
// A nil result means the tag word is ignored.
func (op Opcode) Tags() []Tag {
	switch op.Arity() {
	case 2:
		return tagsBinary
	case 1:
		if op == OP_CALL {
			return tagsCall
		}
		return tagsUnary
	}
	return nil
}

// Accepts returns true if the opcode supports the operand tag.
func (op Opcode) Accepts(tag Tag) bool {
	tags := op.Tags()
	if tags == nil {
		return op.Valid()
	}
	return slices.Contains(tags, tag)
}

// Size returns the number of words the instruction occupies.
func (op Opcode) Size() int {
	return 2 + op.Arity()
}

// Code is a single decoded instruction.
type Code struct {
	Op   Opcode
	Tag  Tag
	Args []Word
}

// MakeCode builds an instruction from operand (mode, word) pairs.
func MakeCode(op Opcode, operands ...Operand) (code Code) {
	code.Op = op
	var modes []Mode
	for _, operand := range operands {
		modes = append(modes, operand.Mode)
		code.Args = append(code.Args, operand.Word)
	}
	code.Tag = MakeTag(modes...)
	return
}

// Operand is a single operand word with its addressing mode.
type Operand struct {
	Mode Mode
	Word Word
}

// L is a literal operand.
func L(word Word) Operand { return Operand{MODE_LITERAL, word} }

// M is a memory operand.
func M(word Word) Operand { return Operand{MODE_MEMORY, word} }

// R is a reference operand.
func R(word Word) Operand { return Operand{MODE_REFERENCE, word} }

// Words returns the instruction in its binary form.
func (code Code) Words() (words []Word) {
	words = make([]Word, 0, 2+len(code.Args))
	words = append(words, Word(code.Op), Word(code.Tag))
	words = append(words, code.Args...)
	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	var sb strings.Builder

	sb.WriteString(code.Op.String())
	for n, arg := range code.Args {
		sb.WriteByte(' ')
		switch code.Tag.Mode(n) {
		case MODE_LITERAL:
			fmt.Fprintf(&sb, "%d", arg)
		case MODE_MEMORY:
			fmt.Fprintf(&sb, "[%d]", arg)
		case MODE_REFERENCE:
			fmt.Fprintf(&sb, "[[%d]]", arg)
		default:
			fmt.Fprintf(&sb, "?%d", arg)
		}
	}

	return sb.String()
}
