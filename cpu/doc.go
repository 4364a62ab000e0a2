// Package cpu implements the word-addressed virtual machine and its
// assembler.
//
// The machine has a single linear memory of signed 32-bit words holding
// code, data and a downward growing stack, a program counter, a comparison
// flag, and stack and base pointers for call frames. Every instruction is
// an opcode word, an operand tag word, and zero to two operand words. The
// tag packs one 4-bit addressing mode per operand: literal, memory, or
// reference (memory indirect).
//
// The assembler provides a small macro assembly language for the machine,
// supporting labels, equates, macros, and compile-time expression
// evaluation.
package cpu
