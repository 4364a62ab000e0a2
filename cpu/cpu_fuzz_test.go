package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	for op := range Opcode(OP_COUNT) {
		for _, tag := range []uint16{0, 0x21, 0x42, 0x4, 0x1, 0x11} {
			f.Add(int32(op), tag, int32(12), int32(40), false, int16(0), int16(50))
			f.Add(int32(op), tag, int32(-1), int32(99), true, int16(1), int16(62))
		}
	}
	f.Add(int32(OP_COUNT), uint16(0), int32(0), int32(0), false, int16(0), int16(0))

	f.Fuzz(func(t *testing.T, opcode int32, tag uint16, arg0, arg1 int32, flag bool, sp, bp int16) {
		assert := assert.New(t)

		cpu, out := newTestCpu(t, 64, 0, 0, Code{})
		copy(cpu.Memory[ORIGIN:], []Word{Word(opcode), Word(tag), Word(arg0), Word(arg1)})

		// Cells that point both inside and outside memory.
		for n := 10; n < 64; n++ {
			cpu.Memory[n] = Word((n*7)%80 - 8)
		}
		cpu.Sp = Word(sp) % 80
		cpu.Bp = Word(bp) % 80
		cpu.Flag = flag

		before := takeSnapshot(cpu)

		done, err := cpu.Tick()
		if err == nil {
			assert.Equal(Opcode(opcode) == OP_EXIT, done)
			assert.Equal(1, cpu.Ticks)
			return
		}

		assert.True(done)
		assert.Equal(STATE_FAULT, cpu.State)
		assert.NotEqual(FAULT_NONE, KindOf(err))
		assert.Equal(Word(ORIGIN), cpu.Pc)
		assert.Equal(before, takeSnapshot(cpu))
		assert.Empty(out.String())
		assert.Equal(0, cpu.Ticks)
	})
}
