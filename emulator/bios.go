package emulator

import (
	"errors"
	"fmt"
	"io"
)

const BIOS_SIZE uint32 = 512 * 1024 // BIOS images are always 512KB in length

// Returned by LoadBIOS when the image isn't exactly BIOS_SIZE bytes long
var (
	ErrShortBIOS = errors.New("bios image is too short")
	ErrLongBIOS  = errors.New("bios image is too long")
)

// This stores the raw BIOS data
type BIOS struct {
	Data []byte // Raw BIOS data
}

// Loads a BIOS from a reader. Note that the BIOS must be 512 * 1024
// bytes in size
func LoadBIOS(r io.Reader) (*BIOS, error) {
	data := make([]byte, BIOS_SIZE)
	n, err := io.ReadFull(r, data)
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w (expected %d, got %d bytes)", ErrShortBIOS, BIOS_SIZE, n)
	}
	if err != nil {
		return nil, err
	}

	// anything past the image means the file isn't a BIOS dump
	var extra [1]byte
	if n, _ := io.ReadFull(r, extra[:]); n > 0 {
		return nil, fmt.Errorf("%w (expected %d bytes)", ErrLongBIOS, BIOS_SIZE)
	}
	return &BIOS{Data: data}, nil
}

// Fetch byte at `offset`. Note that `offset` is not the absolute address
// used by the CPU, instead it is an offset in the BIOS memory range
func (bios *BIOS) Load8(offset uint32) byte {
	if offset >= uint32(len(bios.Data)) {
		return OPEN_BUS
	}
	return bios.Data[offset]
}

// The BIOS is read only, writes never reach the image
func (bios *BIOS) Store8(offset uint32, val byte) {}

// Returns a 32 bit little endian value at `offset`
func (bios *BIOS) Load32(offset uint32) uint32 {
	return loadBytes(bios, offset, uint32(len(bios.Data)), ACCESS_WORD)
}
