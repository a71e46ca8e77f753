package emulator

import (
	"testing"

	"github.com/matryer/is"
)

func TestRAM(t *testing.T) {
	is := is.New(t)

	ram := NewRAM()
	is.Equal(ram.Load8(0), byte(0xcd)) // garbage on power up

	ram.Store32(0x100, 0xdeadbeef)
	is.Equal(ram.Load32(0x100), uint32(0xdeadbeef))
	is.Equal(ram.Load8(0x100), byte(0xef)) // little endian
	is.Equal(ram.Load8(0x103), byte(0xde))
}

func TestRAMWraps(t *testing.T) {
	is := is.New(t)

	ram := NewRAM()
	ram.Store8(RAM_ALLOC_SIZE+5, 0x42)
	is.Equal(ram.Load8(5), byte(0x42))

	// words crossing the end of RAM wrap to the beginning
	ram.Store32(RAM_ALLOC_SIZE-2, 0x11223344)
	is.Equal(ram.Load8(RAM_ALLOC_SIZE-2), byte(0x44))
	is.Equal(ram.Load8(0), byte(0x22))
	is.Equal(ram.Load32(RAM_ALLOC_SIZE-2), uint32(0x11223344))
}

func TestCacheControl(t *testing.T) {
	is := is.New(t)

	var cache CacheControl
	cache.Store32(0, 0x00000804)
	is.True(cache.ICacheEnabled())
	is.True(cache.TagTestMode())
	is.True(!cache.ScratchpadEnabled())

	cache.Store8(0, 0x88)
	is.Equal(cache.Load32(0), uint32(0x00000888))
	is.True(cache.ScratchpadEnabled())

	cache.Store16(2, 0x1234)
	is.Equal(cache.Load16(2), uint16(0x1234))
	is.Equal(cache.Load32(0), uint32(0x12340888))
}
