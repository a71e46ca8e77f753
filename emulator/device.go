package emulator

// A memory mapped device. Offsets are relative to the start of the range the
// device is mapped at
type Device interface {
	Load8(offset uint32) byte
	Store8(offset uint32, val byte)
}

// Implemented by devices that can serve 16 and 32 bit accesses directly
// instead of having the interconnect compose them from single bytes
type WideDevice interface {
	Device
	Load16(offset uint32) uint16
	Load32(offset uint32) uint32
	Store16(offset uint32, val uint16)
	Store32(offset uint32, val uint32)
}

// Value returned by loads from unimplemented peripherals
const OPEN_BUS byte = 0xff

// Placeholder for peripherals that aren't emulated. Loads return the open
// bus value and stores are discarded
type OpenBus struct{}

func (OpenBus) Load8(offset uint32) byte { return OPEN_BUS }

func (OpenBus) Store8(offset uint32, val byte) {}

// Composes a little endian value of `size` bytes from `dev`. Bytes at or
// past `limit` read as OPEN_BUS
func loadBytes(dev Device, offset, limit uint32, size AccessSize) uint32 {
	var v uint32
	for i := uint32(0); i < uint32(size); i++ {
		b := OPEN_BUS
		if offset+i < limit {
			b = dev.Load8(offset + i)
		}
		v |= uint32(b) << (i * 8)
	}
	return v
}

// Splits `val` into `size` little endian bytes and stores them into `dev`.
// Bytes at or past `limit` are dropped
func storeBytes(dev Device, offset, limit uint32, size AccessSize, val uint32) {
	for i := uint32(0); i < uint32(size) && offset+i < limit; i++ {
		dev.Store8(offset+i, byte(val>>(i*8)))
	}
}
