package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeHandlers(t *testing.T) {
	assert := assert.New(t)

	for op := range Opcode(OP_COUNT) {
		assert.True(op.Valid(), op.String())
		assert.NotNil(handlers[op], op.String())
	}

	assert.False(Opcode(-1).Valid())
	assert.False(Opcode(OP_COUNT).Valid())
}

func TestOpcodeEncoding(t *testing.T) {
	assert := assert.New(t)

	// Binary contract with assemblers.
	names := []string{
		"nop", "mv", "vadd", "vsub", "vmul", "vdiv", "vmod",
		"eq", "neq", "lt", "lte", "gt", "gte",
		"hopt", "hopf", "hop", "printn", "print",
		"push", "pop", "smv", "call", "ret", "vexit",
	}
	assert.Equal(OP_COUNT, len(names))
	for n, name := range names {
		assert.Equal(name, Opcode(n).String())
	}
}

func TestOpcodeArity(t *testing.T) {
	assert := assert.New(t)

	table := map[Opcode]int{
		OP_NOP: 0, OP_RET: 0, OP_EXIT: 0,
		OP_HOP: 1, OP_HOPT: 1, OP_HOPF: 1, OP_CALL: 1,
		OP_PUSH: 1, OP_POP: 1, OP_PRINT: 1, OP_PRINTN: 1,
		OP_MV: 2, OP_DIV: 2, OP_GE: 2, OP_SMV: 2,
	}

	for op, arity := range table {
		assert.Equal(arity, op.Arity(), op.String())
		assert.Equal(2+arity, op.Size(), op.String())
	}
}

func TestOpcodeAccepts(t *testing.T) {
	assert := assert.New(t)

	lm := MakeTag(MODE_LITERAL, MODE_MEMORY)
	ll := MakeTag(MODE_LITERAL, MODE_LITERAL)
	rm := MakeTag(MODE_REFERENCE, MODE_MEMORY)
	l := MakeTag(MODE_LITERAL)
	m := MakeTag(MODE_MEMORY)

	assert.True(OP_ADD.Accepts(lm))
	assert.True(OP_SMV.Accepts(rm))
	assert.False(OP_ADD.Accepts(ll))
	assert.False(OP_ADD.Accepts(l))
	assert.False(OP_ADD.Accepts(lm | 0x100))

	assert.True(OP_HOP.Accepts(l))
	assert.True(OP_POP.Accepts(l))
	assert.False(OP_HOP.Accepts(lm))

	// call targets must already be in memory.
	assert.False(OP_CALL.Accepts(l))
	assert.True(OP_CALL.Accepts(m))

	// No operands, tag ignored.
	assert.True(OP_EXIT.Accepts(0x1234))
	assert.True(OP_NOP.Accepts(0))
	assert.False(Opcode(99).Accepts(0))
}

func TestCodeString(t *testing.T) {
	assert := assert.New(t)

	code := MakeCode(OP_MV, L(5), M(10))
	assert.Equal("mv 5 [10]", code.String())
	assert.Equal([]Word{1, 0x21, 5, 10}, code.Words())

	code = MakeCode(OP_CALL, R(-3))
	assert.Equal("call [[-3]]", code.String())

	code = MakeCode(OP_RET)
	assert.Equal("ret", code.String())
	assert.Equal([]Word{22, 0}, code.Words())

	code = Code{Op: OP_PUSH, Tag: 0x8, Args: []Word{1}}
	assert.Equal("push ?1", code.String())
}
