package hwio

import "mos65/emu/log"

// mem is the main structure used for linear memory access.
//
// We use this structure by pointer rather than by value because it is stored as
// BankIO interface within Table, and checking if a concrete pointer type is
// behind the interface is faster than checking a non-pointer type.
type mem struct {
	buf  []byte
	base uint16
	mask uint16
	wcb  func(uint16, uint8)
	ro   MemFlags
}

func newMem(buf []byte, base uint16, wcb func(uint16, uint8), roflag MemFlags) *mem {
	if len(buf) == 0 || len(buf)&(len(buf)-1) != 0 {
		panic("memory buffer size is not pow2")
	}
	return &mem{
		buf:  buf,
		base: base,
		mask: uint16(len(buf) - 1),
		wcb:  wcb,
		ro:   roflag,
	}
}

func (m *mem) off(addr uint16) uint16 {
	return (addr - m.base) & m.mask
}

func (m *mem) FetchPointer(addr uint16) []uint8 {
	off := int(m.off(addr))
	return m.buf[off:len(m.buf):len(m.buf)]
}

func (m *mem) Read8(addr uint16, _ bool) uint8 {
	return m.buf[m.off(addr)]
}

func (m *mem) Write8CheckRO(addr uint16, val uint8) bool {
	if m.ro == 0 {
		m.buf[m.off(addr)] = val
		if m.wcb != nil {
			m.wcb(addr, val)
		}
		return true
	}
	return m.ro&MemFlagNoROLog != 0 // fake success if we're in silent mode
}

func (m *mem) Write8(addr uint16, val uint8) {
	switch {
	case m.ro == MemFlagReadWrite:
		m.buf[m.off(addr)] = val
		if m.wcb != nil {
			m.wcb(addr, val)
		}
	case m.ro&MemFlagNoROLog != 0:
		return
	default:
		log.ModHwIo.ErrorZ("Write8 to readonly memory").
			Hex8("val", val).
			Hex16("addr", addr).
			End()
	}
}

func (m *mem) poke8(addr uint16, val uint8) {
	m.buf[m.off(addr)] = val
}

type MemFlags int

const (
	MemFlagReadWrite MemFlags = 0
	MemFlag8ReadOnly MemFlags = (1 << iota) // read-only accesses
	MemFlagNoROLog                          // skip logging attempts to write when configured to readonly
)

// Linear memory area that can be mapped into a Table.
//
// The buffer size must be a power of 2. When the mapped area is bigger than
// the buffer, the buffer is mirrored.
type Mem struct {
	Name    string              // name of the memory area (for debugging)
	Data    []byte              // actual memory buffer
	VSize   int                 // virtual size of the memory (can be bigger than physical size)
	Flags   MemFlags            // flags determining how the memory can be accessed
	WriteCb func(uint16, uint8) // optional write callback, called after each successful write
}

func (m *Mem) bankIO8(base uint16) BankIO8 {
	return newMem(m.Data, base, m.WriteCb, m.Flags)
}
