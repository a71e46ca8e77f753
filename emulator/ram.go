package emulator

const (
	RAM_ALLOC_SIZE = 2 * 1024 * 1024 // Main PlayStation RAM: 2MB
	ramMask        = RAM_ALLOC_SIZE - 1
)

type RAM struct {
	Data [RAM_ALLOC_SIZE]byte // RAM buffer
}

// Creates a new RAM instance (allocates `RAM_ALLOC_SIZE` bytes and fills
// them with garbage values)
func NewRAM() *RAM {
	ram := &RAM{}
	for i := 0; i < len(ram.Data); i++ {
		ram.Data[i] = 0xcd
	}
	return ram
}

// Fetches the byte at `offset`. The offset wraps around the RAM size
func (ram *RAM) Load8(offset uint32) byte {
	return ram.Data[offset&ramMask]
}

// Sets the byte at `offset`
func (ram *RAM) Store8(offset uint32, val byte) {
	ram.Data[offset&ramMask] = val
}

// Load a 32 bit little endian word at `offset`
func (ram *RAM) Load32(offset uint32) uint32 {
	// offsets wrap, there is no limit
	return loadBytes(ram, offset, ^uint32(0), ACCESS_WORD)
}

// Store a 32 bit little endian word `val` into `offset`
func (ram *RAM) Store32(offset, val uint32) {
	storeBytes(ram, offset, ^uint32(0), ACCESS_WORD, val)
}
