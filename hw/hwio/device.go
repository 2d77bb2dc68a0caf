package hwio

import "mos65/emu/log"

type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = 1 << iota
	WriteOnlyFlag
)

// Device is an I/O range backed by callbacks. Callbacks receive the offset
// of the access relative to the address the device is mapped at.
type Device struct {
	Name  string // name of the memory area (for debugging)
	Size  int    // size of the memory area
	Flags RWFlags

	ReadCb  func(off uint16) uint8
	PeekCb  func(off uint16) uint8
	WriteCb func(off uint16, val uint8)
}

func (d *Device) Read8(off uint16) uint8 {
	switch {
	case d.Flags&WriteOnlyFlag != 0:
		log.ModHwIo.ErrorZ("invalid Read8 from writeonly device").
			String("name", d.Name).
			Hex16("off", off).
			End()
		fallthrough
	case d.ReadCb == nil:
		return 0
	}
	return d.ReadCb(off)
}

func (d *Device) Peek8(off uint16) uint8 {
	if d.PeekCb != nil {
		return d.PeekCb(off)
	}
	return 0
}

func (d *Device) Write8(off uint16, val uint8) {
	switch {
	case d.Flags&ReadOnlyFlag != 0:
		log.ModHwIo.ErrorZ("invalid Write8 to readonly device").
			String("name", d.Name).
			Hex16("off", off).
			End()
		fallthrough
	case d.WriteCb == nil:
		return
	}

	d.WriteCb(off, val)
}

// devio adapts a Device mapped at base to BankIO8.
type devio struct {
	dev  *Device
	base uint16
}

func (d *devio) Read8(addr uint16, peek bool) uint8 {
	if peek {
		return d.dev.Peek8(addr - d.base)
	}
	return d.dev.Read8(addr - d.base)
}

func (d *devio) Write8(addr uint16, val uint8) {
	d.dev.Write8(addr-d.base, val)
}
