package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: []Line{
			{LineNo: 1, Addr: 2, Words: []string{"mv", "5", "[10]"},
				Data: MakeCode(OP_MV, L(5), M(10)).Words()},
			{LineNo: 2, Addr: 6, Words: []string{"printn", "[10]"},
				Data: MakeCode(OP_PRINTN, M(10)).Words()},
			{LineNo: 4, Addr: 9, Words: []string{"vexit"},
				Data: MakeCode(OP_EXIT).Words()},
		},
	}

	dbg := prog.Debug(2)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(5)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(3, dbg.Index)

	dbg = prog.Debug(8)
	assert.NotNil(dbg.Line)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(10)
	assert.NotNil(dbg.Line)
	assert.Equal(4, dbg.LineNo)
	assert.Equal(1, dbg.Index)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: []Line{
			{LineNo: 1, Addr: 2, Words: []string{"ret"}, Data: MakeCode(OP_RET).Words()},
		},
	}

	for _, addr := range []int{0, 1, 4, 100} {
		dbg := prog.Debug(addr)
		assert.Nil(dbg.Line)
		assert.Equal(0, dbg.Index)
	}
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Sp: 30,
		Bp: 4,
		Lines: []Line{
			{LineNo: 1, Addr: 2, Data: []Word{1, 2}},
			{LineNo: 2, Addr: 6, Data: []Word{3}},
		},
	}

	assert.Equal(7, prog.Size())
	assert.Equal([]Word{30, 4, 1, 2, 0, 0, 3}, prog.Binary())

	count := 0
	for addr, word := range prog.Words() {
		if count == 0 {
			assert.Equal(2, addr)
			assert.Equal(Word(1), word)
		}
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)

	empty := &Program{}
	assert.Equal(ORIGIN, empty.Size())
	assert.Equal([]Word{0, 0}, empty.Binary())
}
