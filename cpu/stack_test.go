package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(4)
	assert.Equal(0, cpu.Depth())

	_, err := cpu.Peek()
	assert.ErrorIs(err, ErrOutOfBounds)

	_, err = cpu.Pop()
	assert.ErrorIs(err, ErrOutOfBounds)
	assert.Equal(Word(4), cpu.Sp)

	assert.NoError(cpu.Push(10))
	assert.NoError(cpu.Push(20))
	assert.Equal(2, cpu.Depth())

	value, err := cpu.Peek()
	assert.NoError(err)
	assert.Equal(Word(20), value)

	assert.NoError(cpu.reserve(2))
	assert.ErrorIs(cpu.reserve(3), ErrOutOfBounds)

	assert.NoError(cpu.Push(30))
	assert.NoError(cpu.Push(40))
	assert.ErrorIs(cpu.Push(50), ErrOutOfBounds)
	assert.Equal(Word(0), cpu.Sp)
	assert.Equal(4, cpu.Depth())

	for _, expected := range []Word{40, 30, 20, 10} {
		value, err = cpu.Pop()
		assert.NoError(err)
		assert.Equal(expected, value)
	}
	assert.Equal(0, cpu.Depth())
}

func TestStackBase(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(16)
	assert.NoError(cpu.Load([]Word{10, 0}))
	assert.Equal(Word(10), cpu.Sp)

	assert.NoError(cpu.Push(1))
	assert.Equal(1, cpu.Depth())
	assert.Equal(Word(1), cpu.Memory[9])
}
