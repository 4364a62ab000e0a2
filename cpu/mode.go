package cpu

import (
	"strings"
)

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_NONE      = Mode(0) // -
	MODE_LITERAL   = Mode(1) // L
	MODE_MEMORY    = Mode(2) // M
	MODE_REFERENCE = Mode(4) // R
)

const (
	TAG_SLOTS     = 4   // Operand slots in a tag.
	TAG_SLOT_BITS = 4   // Bits per operand slot.
	TAG_SLOT_MASK = 0xf // Mask of a single operand slot.
)

// Tag is the packed operand-type word following every opcode.
// Slot 0 (bits 0-3) describes the first operand.
type Tag uint16

// MakeTag packs the operand modes, first operand first.
func MakeTag(modes ...Mode) (tag Tag) {
	if len(modes) > TAG_SLOTS {
		panic("too many operand modes")
	}

	for n, mode := range modes {
		tag |= Tag(uint16(mode)&TAG_SLOT_MASK) << (n * TAG_SLOT_BITS)
	}

	return
}

// Mode returns the addressing mode of operand n.
func (tag Tag) Mode(n int) Mode {
	return Mode((uint16(tag) >> (n * TAG_SLOT_BITS)) & TAG_SLOT_MASK)
}

// Modes returns the modes of the first n operands.
func (tag Tag) Modes(n int) (modes []Mode) {
	for i := range n {
		modes = append(modes, tag.Mode(i))
	}
	return
}

// String returns the tag as its slot letters, ie "LM".
func (tag Tag) String() string {
	var sb strings.Builder
	n := TAG_SLOTS
	for n > 0 && tag.Mode(n-1) == MODE_NONE {
		n--
	}
	for i := range n {
		sb.WriteString(tag.Mode(i).String())
	}
	return sb.String()
}
