package emulator

// Cache control register at 0xfffe0130. Only its value is emulated, cache
// contents are not
type CacheControl uint32

// Returns whether the instruction cache is enabled
func (cache CacheControl) ICacheEnabled() bool {
	return uint32(cache)&0x800 != 0
}

func (cache CacheControl) TagTestMode() bool {
	return uint32(cache)&4 != 0
}

// Returns whether the data cache is used as scratchpad
func (cache CacheControl) ScratchpadEnabled() bool {
	return uint32(cache)&0x88 == 0x88
}

func (cache *CacheControl) Load8(offset uint32) byte {
	return byte(uint32(*cache) >> ((offset & 3) * 8))
}

func (cache *CacheControl) Store8(offset uint32, val byte) {
	shift := (offset & 3) * 8
	*cache = CacheControl(uint32(*cache)&^(0xff<<shift) | uint32(val)<<shift)
}

func (cache *CacheControl) Load16(offset uint32) uint16 {
	return uint16(uint32(*cache) >> ((offset & 2) * 8))
}

func (cache *CacheControl) Load32(offset uint32) uint32 {
	return uint32(*cache)
}

func (cache *CacheControl) Store16(offset uint32, val uint16) {
	shift := (offset & 2) * 8
	*cache = CacheControl(uint32(*cache)&^(0xffff<<shift) | uint32(val)<<shift)
}

func (cache *CacheControl) Store32(offset uint32, val uint32) {
	*cache = CacheControl(val)
}
