package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(4)
	assert.Equal(4, len(mem))

	assert.NoError(mem.Write(3, -7))
	value, err := mem.Read(3)
	assert.NoError(err)
	assert.Equal(Word(-7), value)

	for _, addr := range []Word{-1, 4, -0x80000000, 0x7fffffff} {
		err = mem.Check(addr)
		assert.ErrorIs(err, ErrOutOfBounds, "%d", addr)

		var bad ErrAddress
		assert.True(errors.As(err, &bad))
		assert.Equal(ErrAddress(addr), bad)

		_, err = mem.Read(addr)
		assert.ErrorIs(err, ErrOutOfBounds)
		assert.ErrorIs(mem.Write(addr, 1), ErrOutOfBounds)
	}

	mem.Clear()
	assert.Equal(Memory{0, 0, 0, 0}, mem)
}
