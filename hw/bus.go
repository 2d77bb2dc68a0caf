package hw

// Bus is the memory bus the CPU is connected to. Implementations are
// provided by the host: every call is synchronous and always succeeds from
// the CPU point of view, unmapped addresses and faults are the host's
// business.
type Bus interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

// A Peeker is a Bus that can be read without side effects. It's used by the
// disassembler and the tracer. Buses that don't implement it are read with
// Read8.
type Peeker interface {
	Peek8(addr uint16) uint8
}

// Read16 reads a little-endian word at addr. The high byte address wraps
// around at $FFFF.
func Read16(b Bus, addr uint16) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func peek8(b Bus, addr uint16) uint8 {
	if p, ok := b.(Peeker); ok {
		return p.Peek8(addr)
	}
	return b.Read8(addr)
}
