package emulator

import (
	"testing"

	"github.com/matryer/is"
)

func TestMaskRegion(t *testing.T) {
	is := is.New(t)

	tests := []struct {
		addr uint32
		want uint32
	}{
		{0x00000000, 0x00000000},
		{0x00001234, 0x00001234},
		{0x7fffffff, 0x7fffffff},
		{0x80000000, 0x00000000},
		{0x80001234, 0x00001234},
		{0x9fc00000, 0x1fc00000},
		{0xa0001234, 0x00001234},
		{0xbfc00000, 0x1fc00000},
		{0xbfffffff, 0x1fffffff},
		{0xc0000000, 0xc0000000},
		{0xfffe0130, 0xfffe0130},
	}
	for _, tt := range tests {
		is.Equal(MaskRegion(tt.addr), tt.want) // MaskRegion
	}
}

func TestMaskRegionMirrors(t *testing.T) {
	is := is.New(t)

	// KSEG0 and KSEG1 mirror the first 512MB of KUSEG
	for low := uint32(0); low < 0x20000000; low += 0x00fedcb3 {
		is.Equal(MaskRegion(0x80000000|low), low)
		is.Equal(MaskRegion(0xa0000000|low), low)
		is.Equal(MaskRegion(0x80000000|low), MaskRegion(0xa0000000|low))
	}
}

func TestSegmentOf(t *testing.T) {
	is := is.New(t)

	is.Equal(SegmentOf(0x00000000), SEGMENT_KUSEG)
	is.Equal(SegmentOf(0x7fffffff), SEGMENT_KUSEG)
	is.Equal(SegmentOf(0x80000000), SEGMENT_KSEG0)
	is.Equal(SegmentOf(0xbfc00000), SEGMENT_KSEG1)
	is.Equal(SegmentOf(0xfffe0130), SEGMENT_KSEG2)
	is.Equal(SegmentOf(0xbfc00000).String(), "KSEG1")
}

func TestRange(t *testing.T) {
	is := is.New(t)

	is.True(BIOS_RANGE.Contains(0x1fc00000))
	is.True(BIOS_RANGE.Contains(0x1fc7ffff))
	is.True(!BIOS_RANGE.Contains(0x1fc80000))
	is.True(!BIOS_RANGE.Contains(0x1fbfffff))
	is.Equal(BIOS_RANGE.Offset(0x1fc00010), uint32(0x10))

	// doesn't overflow at the top of the address space
	top := NewRange(0xfffffff0, 0x10)
	is.True(top.Contains(0xffffffff))
	is.True(!top.Contains(0x00000000))
}
