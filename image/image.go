// Package image reads and writes hopvm memory images.
//
// An image is the loadable word stream of a program (stack header followed
// by code) plus its symbol table, serialised as canonical CBOR.
package image

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/ezrec/hopvm/cpu"
)

// VERSION is the current image format version.
const VERSION = 1

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("image: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Image is a loadable memory image.
type Image struct {
	Version int            `cbor:"version"`
	Words   []cpu.Word     `cbor:"words"`
	Symbols map[string]int `cbor:"symbols,omitempty"`
}

// FromProgram builds an image from an assembled program.
func FromProgram(prog *cpu.Program) *Image {
	img := &Image{
		Version: VERSION,
		Words:   prog.Binary(),
	}
	if len(prog.Label) > 0 {
		img.Symbols = make(map[string]int, len(prog.Label))
		for label, addr := range prog.Label {
			img.Symbols[label] = addr
		}
	}
	return img
}

// Marshal serializes an image to CBOR bytes.
func Marshal(img *Image) ([]byte, error) {
	return cborEncMode.Marshal(img)
}

// Unmarshal deserializes and validates an image from CBOR bytes.
func Unmarshal(data []byte) (*Image, error) {
	var img Image
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, errors.Wrap(err, "image: unmarshal")
	}
	if img.Version != VERSION {
		return nil, errors.Errorf("image: unsupported version %d", img.Version)
	}
	if len(img.Words) < cpu.ORIGIN {
		return nil, errors.Wrap(cpu.ErrImageShort, "image")
	}
	return &img, nil
}

// Save writes an image.
func Save(w io.Writer, img *Image) error {
	data, err := Marshal(img)
	if err != nil {
		return errors.Wrap(err, "image: marshal")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "image: write")
}

// Load reads an image.
func Load(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "image: read")
	}
	return Unmarshal(data)
}

// Symbol returns the name of the symbol at addr, if any.
func (img *Image) Symbol(addr int) (name string, ok bool) {
	for label, at := range img.Symbols {
		if at == addr && (!ok || label < name) {
			name, ok = label, true
		}
	}
	return
}

// Locate returns the nearest symbol at or below addr, and the offset of
// addr from it.
func (img *Image) Locate(addr int) (name string, offset int, ok bool) {
	best := -1
	for label, at := range img.Symbols {
		if at > addr || at < best {
			continue
		}
		if at > best || label < name {
			name, best, ok = label, at, true
		}
	}
	offset = addr - best
	return
}
