package emulator

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Wrapped by BusError, so callers can use errors.Is
var (
	ErrUnmapped   = errors.New("unmapped address")
	ErrMisaligned = errors.New("misaligned address")
)

// Returned when a load targets an address no device answers to, or an
// address that isn't a multiple of the access size
type BusError struct {
	Addr       uint32     // Virtual address of the access
	Size       AccessSize // Width of the access
	Misaligned bool       // Set if the address is mapped but misaligned
}

func (err *BusError) Error() string {
	kind := "unhandled"
	if err.Misaligned {
		kind = "misaligned"
	}
	return fmt.Sprintf("interconnect: %s %s load at address 0x%08x (%s)",
		kind, err.Size, err.Addr, SegmentOf(err.Addr))
}

func (err *BusError) Unwrap() error {
	if err.Misaligned {
		return ErrMisaligned
	}
	return ErrUnmapped
}

// A device attached to the interconnect at a fixed range
type mapping struct {
	Name     string
	Range    Range
	Device   Device
	ReadOnly bool
}

// Global interconnect. It stores all of the peripherals
type Interconnect struct {
	Bios         *BIOS              // Basic input/output memory
	Ram          *RAM               // Main RAM
	CacheControl CacheControl       // Cache control register
	Log          logrus.FieldLogger // Receives diagnostics about dropped stores
	mappings     []mapping          // Checked in order on every access
}

// Creates a new interconnect instance
func NewInterconnect(bios *BIOS, ram *RAM) *Interconnect {
	inter := &Interconnect{
		Bios: bios,
		Ram:  ram,
		Log:  logrus.StandardLogger(),
	}
	inter.mappings = []mapping{
		{Name: "ram", Range: RAM_RANGE, Device: ram},
		{Name: "expansion 1", Range: EXPANSION_1, Device: OpenBus{}},
		{Name: "memory control", Range: MEM_CONTROL, Device: OpenBus{}},
		{Name: "ram size", Range: RAM_SIZE, Device: OpenBus{}},
		{Name: "spu", Range: SPU_RANGE, Device: OpenBus{}},
		{Name: "expansion 2", Range: EXPANSION_2, Device: OpenBus{}},
		{Name: "bios", Range: BIOS_RANGE, Device: bios, ReadOnly: true},
	}
	return inter
}

// Finds the device that answers to `addr` and the offset inside of it
func (inter *Interconnect) resolve(addr uint32) (*mapping, uint32, bool) {
	// the cache control register lives in KSEG2, outside of the regular map
	if CACHE_CONTROL.Contains(addr) {
		return &mapping{
			Name:   "cache control",
			Range:  CACHE_CONTROL,
			Device: &inter.CacheControl,
		}, CACHE_CONTROL.Offset(addr), true
	}

	abs := MaskRegion(addr)
	for i := range inter.mappings {
		m := &inter.mappings[i]
		if m.Range.Contains(abs) {
			return m, m.Range.Offset(abs), true
		}
	}
	return nil, 0, false
}

// Returns a little endian value of `size` bytes at `addr`. Returns a
// *BusError if nothing is mapped at that address or if `addr` is misaligned
func (inter *Interconnect) Load(addr uint32, size AccessSize) (uint32, error) {
	if !size.Aligned(addr) {
		return 0, &BusError{Addr: addr, Size: size, Misaligned: true}
	}
	m, offset, ok := inter.resolve(addr)
	if !ok {
		return 0, &BusError{Addr: addr, Size: size}
	}

	if wide, ok := m.Device.(WideDevice); ok {
		switch size {
		case ACCESS_BYTE:
			return uint32(wide.Load8(offset)), nil
		case ACCESS_HALFWORD:
			return uint32(wide.Load16(offset)), nil
		default:
			return wide.Load32(offset), nil
		}
	}
	return loadBytes(m.Device, offset, m.Range.Length, size), nil
}

// Stores `size` bytes of `val` at `addr`. Stores to unmapped, misaligned or
// read only addresses are dropped and reported to the logger
func (inter *Interconnect) Store(addr uint32, size AccessSize, val uint32) {
	fields := logrus.Fields{
		"addr":    fmt.Sprintf("0x%08x", addr),
		"segment": SegmentOf(addr).String(),
		"size":    size.String(),
		"value":   fmt.Sprintf("0x%x", val),
	}
	if !size.Aligned(addr) {
		inter.Log.WithFields(fields).Warn("interconnect: misaligned store")
		return
	}
	m, offset, ok := inter.resolve(addr)
	if !ok {
		inter.Log.WithFields(fields).Warn("interconnect: unhandled store")
		return
	}
	if m.ReadOnly {
		inter.Log.WithFields(logrus.Fields{
			"addr":   fmt.Sprintf("0x%08x", addr),
			"device": m.Name,
			"range":  m.Range.String(),
			"value":  fmt.Sprintf("0x%x", val),
		}).Warn("interconnect: store to read only device ignored")
		return
	}

	if wide, ok := m.Device.(WideDevice); ok {
		switch size {
		case ACCESS_BYTE:
			wide.Store8(offset, byte(val))
		case ACCESS_HALFWORD:
			wide.Store16(offset, uint16(val))
		default:
			wide.Store32(offset, val)
		}
		return
	}
	storeBytes(m.Device, offset, m.Range.Length, size, val)
}

// Returns a 32 bit little endian value at `addr`
func (inter *Interconnect) Load32(addr uint32) (uint32, error) {
	return inter.Load(addr, ACCESS_WORD)
}

// Returns a 16 bit little endian value at `addr`
func (inter *Interconnect) Load16(addr uint32) (uint16, error) {
	v, err := inter.Load(addr, ACCESS_HALFWORD)
	return uint16(v), err
}

// Returns the byte at `addr`
func (inter *Interconnect) Load8(addr uint32) (byte, error) {
	v, err := inter.Load(addr, ACCESS_BYTE)
	return byte(v), err
}

// Stores a 32 bit little endian word `val` at `addr`
func (inter *Interconnect) Store32(addr, val uint32) {
	inter.Store(addr, ACCESS_WORD, val)
}

// Stores a 16 bit little endian value at `addr`
func (inter *Interconnect) Store16(addr uint32, val uint16) {
	inter.Store(addr, ACCESS_HALFWORD, uint32(val))
}

// Stores the byte `val` at `addr`
func (inter *Interconnect) Store8(addr uint32, val byte) {
	inter.Store(addr, ACCESS_BYTE, uint32(val))
}
