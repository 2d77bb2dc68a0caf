// Package hwio provides the building blocks of a memory bus: an address
// decoding table, linear memory areas and callback-backed devices.
package hwio

import (
	"fmt"

	"mos65/emu/log"
)

type BankIO8 interface {
	// Read8 reads a byte from the given address. If peek is true, the read
	// shouldn't have any side effects (debugging/tracing).
	Read8(addr uint16, peek bool) uint8
	Write8(addr uint16, val uint8)
}

// OpenBus serves the accesses to unmapped addresses.
type OpenBus interface {
	Read8(addr uint16) uint8
	Peek8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

func Write16(b interface{ Write8(uint16, uint8) }, addr uint16, val uint16) {
	lo := uint8(val & 0xff)
	hi := uint8(val >> 8)
	b.Write8(addr, lo)
	b.Write8(addr+1, hi)
}

// maxMappings is the number of distinct mappings a Table can hold, since
// index 0 means unmapped.
const maxMappings = 255

// Table is a 64KiB address decoder. Each address is looked up in a flat
// index table which points to the BankIO8 mapped there. Mapping a range over
// an already mapped one replaces it.
type Table struct {
	Name string

	// Unmapped, if set, serves accesses to unmapped addresses. Otherwise
	// they read as 0 and writes are ignored.
	Unmapped OpenBus

	idx  [0x10000]uint8
	devs []BankIO8
}

func NewTable(name string) *Table {
	t := new(Table)
	t.Name = name
	t.Reset()
	return t
}

// Reset unmaps everything.
func (t *Table) Reset() {
	clear(t.idx[:])
	t.devs = []BankIO8{nil}
}

func (t *Table) mapBus8(begin, end uint16, io BankIO8) {
	if end < begin {
		panic(fmt.Errorf("hwio: invalid range [%04X-%04X]", begin, end))
	}
	if len(t.devs) > maxMappings {
		panic(fmt.Errorf("hwio: table %q: too many mappings", t.Name))
	}
	t.devs = append(t.devs, io)
	n := uint8(len(t.devs) - 1)
	for addr := int(begin); addr <= int(end); addr++ {
		t.idx[addr] = n
	}
}

// MapMem maps mem at addr. The area spans mem.VSize bytes, or the size of
// its buffer if VSize is 0. The buffer is mirrored over the whole area.
func (t *Table) MapMem(addr uint16, mem *Mem) {
	vsize := mem.VSize
	if vsize == 0 {
		vsize = len(mem.Data)
	}
	log.ModHwIo.DebugZ("mapping mem").
		Hex16("addr", addr).
		Int("size", vsize).
		String("area", mem.Name).
		String("bus", t.Name).
		End()

	if vsize == 0 || int(addr)+vsize > 0x10000 {
		panic(fmt.Errorf("hwio: mem %q doesn't fit at $%04X", mem.Name, addr))
	}
	t.mapBus8(addr, uint16(int(addr)+vsize-1), mem.bankIO8(addr))
}

// MapMemorySlice maps buf over [addr, end].
func (t *Table) MapMemorySlice(addr, end uint16, buf []uint8, readonly bool) {
	var flags MemFlags
	if readonly {
		flags |= MemFlag8ReadOnly
	}
	t.MapMem(addr, &Mem{
		Data:  buf,
		Flags: flags,
		VSize: int(end) - int(addr) + 1,
	})
}

// MapDevice maps dev at addr, over dev.Size bytes.
func (t *Table) MapDevice(addr uint16, dev *Device) {
	log.ModHwIo.DebugZ("mapping device").
		Hex16("addr", addr).
		Int("size", dev.Size).
		String("dev", dev.Name).
		String("bus", t.Name).
		End()

	if dev.Size <= 0 || int(addr)+dev.Size > 0x10000 {
		panic(fmt.Errorf("hwio: device %q doesn't fit at $%04X", dev.Name, addr))
	}
	t.mapBus8(addr, uint16(int(addr)+dev.Size-1), &devio{dev: dev, base: addr})
}

func (t *Table) Unmap(begin, end uint16) {
	for addr := int(begin); addr <= int(end); addr++ {
		t.idx[addr] = 0
	}
}

// Mapped reports whether something is mapped at addr.
func (t *Table) Mapped(addr uint16) bool {
	return t.idx[addr] != 0
}

func (t *Table) lookup(addr uint16) BankIO8 {
	return t.devs[t.idx[addr]]
}

// Read8 forwards the read to the device mapped at the given address.
func (t *Table) Read8(addr uint16) uint8 {
	io := t.lookup(addr)
	if io == nil {
		log.ModHwIo.DebugZ("unmapped Read8").
			String("name", t.Name).
			Hex16("addr", addr).
			End()
		if t.Unmapped != nil {
			return t.Unmapped.Read8(addr)
		}
		return 0
	}
	return io.Read8(addr, false)
}

// Peek8 reads without side effects.
func (t *Table) Peek8(addr uint16) uint8 {
	io := t.lookup(addr)
	if io == nil {
		if t.Unmapped != nil {
			return t.Unmapped.Peek8(addr)
		}
		return 0
	}
	return io.Read8(addr, true)
}

func (t *Table) Write8(addr uint16, val uint8) {
	io := t.lookup(addr)
	if io == nil {
		log.ModHwIo.DebugZ("unmapped Write8").
			String("name", t.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
		if t.Unmapped != nil {
			t.Unmapped.Write8(addr, val)
		}
		return
	}
	if mem, ok := io.(*mem); ok {
		// NOTE: we use the CheckRO format so that the success codepath
		// (that is, when the memory is read-write) is fully inlined and
		// requires no function call.
		ok := mem.Write8CheckRO(addr, val)
		if !ok {
			log.ModHwIo.ErrorZ("Write8 to read-only address").
				String("name", t.Name).
				Hex16("addr", addr).
				Hex8("val", val).
				End()
		}
		return
	}
	io.Write8(addr, val)
}

// Poke8 writes to memory regardless of its read-only flag. It's used by
// loaders to fill ROMs. Devices receive a regular write.
func (t *Table) Poke8(addr uint16, val uint8) {
	io := t.lookup(addr)
	if mem, ok := io.(*mem); ok {
		mem.poke8(addr, val)
		return
	}
	if io != nil {
		io.Write8(addr, val)
	}
}

// FetchPointer returns the slice of the memory buffer starting at addr, up
// to the end of the buffer, or nil if addr is not mapped to memory.
func (t *Table) FetchPointer(addr uint16) []uint8 {
	if mem, ok := t.lookup(addr).(*mem); ok {
		return mem.FetchPointer(addr)
	}
	return nil
}
