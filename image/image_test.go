package image

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/hopvm/cpu"
)

func TestImageRoundTrip(t *testing.T) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		".sp 100",
		"start: printn 42",
		"vexit",
	}, "\n")))
	assert.NoError(err)

	img := FromProgram(prog)
	assert.Equal(VERSION, img.Version)
	assert.Equal(cpu.Word(100), img.Words[cpu.HEADER_SP])
	assert.Equal(map[string]int{"start": cpu.ORIGIN}, img.Symbols)

	buf := &bytes.Buffer{}
	assert.NoError(Save(buf, img))

	loaded, err := Load(buf)
	assert.NoError(err)
	assert.Equal(img, loaded)

	name, ok := loaded.Symbol(cpu.ORIGIN)
	assert.True(ok)
	assert.Equal("start", name)

	_, ok = loaded.Symbol(0)
	assert.False(ok)
}

func TestImageCanonical(t *testing.T) {
	assert := assert.New(t)

	img := &Image{
		Version: VERSION,
		Words:   []cpu.Word{0, 0, cpu.Word(cpu.OP_EXIT), 0},
		Symbols: map[string]int{"b": 3, "a": 2},
	}

	first, err := Marshal(img)
	assert.NoError(err)
	second, err := Marshal(img)
	assert.NoError(err)
	assert.Equal(first, second)
}

func TestImageErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Unmarshal([]byte{0xff, 0x00})
	assert.Error(err)

	data, err := Marshal(&Image{Version: VERSION + 1, Words: []cpu.Word{0, 0}})
	assert.NoError(err)
	_, err = Unmarshal(data)
	assert.ErrorContains(err, "unsupported version")

	data, err = Marshal(&Image{Version: VERSION, Words: []cpu.Word{0}})
	assert.NoError(err)
	_, err = Unmarshal(data)
	assert.True(errors.Is(err, cpu.ErrImageShort))
}

func TestImageLocate(t *testing.T) {
	assert := assert.New(t)

	img := &Image{
		Version: VERSION,
		Symbols: map[string]int{"main": 2, "loop": 6, "again": 6, "fn": 20},
	}

	name, offset, ok := img.Locate(2)
	assert.True(ok)
	assert.Equal("main", name)
	assert.Equal(0, offset)

	name, offset, ok = img.Locate(9)
	assert.True(ok)
	assert.Equal("again", name)
	assert.Equal(3, offset)

	name, offset, ok = img.Locate(1000)
	assert.True(ok)
	assert.Equal("fn", name)
	assert.Equal(980, offset)

	_, _, ok = img.Locate(1)
	assert.False(ok)

	_, _, ok = (&Image{}).Locate(5)
	assert.False(ok)
}
