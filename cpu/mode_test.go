package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeTag(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		modes []Mode
		tag   Tag
		str   string
	}){
		{"none", nil, 0x0000, ""},
		{"l", []Mode{MODE_LITERAL}, 0x0001, "L"},
		{"m", []Mode{MODE_MEMORY}, 0x0002, "M"},
		{"r", []Mode{MODE_REFERENCE}, 0x0004, "R"},
		{"lm", []Mode{MODE_LITERAL, MODE_MEMORY}, 0x0021, "LM"},
		{"rr", []Mode{MODE_REFERENCE, MODE_REFERENCE}, 0x0044, "RR"},
		{"lmrl", []Mode{MODE_LITERAL, MODE_MEMORY, MODE_REFERENCE, MODE_LITERAL}, 0x1421, "LMRL"},
		{"gap", []Mode{MODE_NONE, MODE_MEMORY}, 0x0020, "-M"},
	}

	for _, entry := range table {
		tag := MakeTag(entry.modes...)
		assert.Equal(entry.tag, tag, entry.name)
		assert.Equal(entry.str, tag.String(), entry.name)
		for n, mode := range entry.modes {
			assert.Equal(mode, tag.Mode(n), entry.name)
		}
		if len(entry.modes) < TAG_SLOTS {
			assert.Equal(MODE_NONE, tag.Mode(len(entry.modes)), entry.name)
		}
	}

	assert.Panics(func() {
		MakeTag(MODE_LITERAL, MODE_LITERAL, MODE_LITERAL, MODE_LITERAL, MODE_LITERAL)
	})
}

func TestTagModes(t *testing.T) {
	assert := assert.New(t)

	tag := Tag(0x0842)
	assert.Equal([]Mode{MODE_MEMORY, MODE_REFERENCE, Mode(8)}, tag.Modes(3))
	assert.Equal("Mode(8)", tag.Mode(2).String())
}
