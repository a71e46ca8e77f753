package emulator

// Masks used to translate a CPU address into a physical address. The region
// is selected by the 3 most significant bits of the address
var REGION_MASKS = [8]uint32{
	// KUSEG: 2048MB
	0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff,
	// KSEG0: 512MB
	0x7fffffff,
	// KSEG1: 512MB
	0x1fffffff,
	// KSEG2: 1024MB
	0xffffffff, 0xffffffff,
}

// Strips the region bits of `addr` and returns the physical address
func MaskRegion(addr uint32) uint32 {
	return addr & REGION_MASKS[addr>>29]
}

// Represents one of the 4 top-level virtual address segments
type Segment uint8

const (
	SEGMENT_KUSEG Segment = iota // User segment, 0x00000000-0x7fffffff
	SEGMENT_KSEG0                // Cached kernel mirror, 0x80000000-0x9fffffff
	SEGMENT_KSEG1                // Uncached kernel mirror, 0xa0000000-0xbfffffff
	SEGMENT_KSEG2                // Kernel segment, 0xc0000000-0xffffffff
)

// Returns the segment `addr` belongs to
func SegmentOf(addr uint32) Segment {
	switch addr >> 29 {
	case 4:
		return SEGMENT_KSEG0
	case 5:
		return SEGMENT_KSEG1
	case 6, 7:
		return SEGMENT_KSEG2
	default:
		return SEGMENT_KUSEG
	}
}

func (s Segment) String() string {
	switch s {
	case SEGMENT_KSEG0:
		return "KSEG0"
	case SEGMENT_KSEG1:
		return "KSEG1"
	case SEGMENT_KSEG2:
		return "KSEG2"
	default:
		return "KUSEG"
	}
}
