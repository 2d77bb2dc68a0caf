package emu

import (
	"io"

	"mos65/emu/log"
	"mos65/hw/hwio"
)

// Console is a write-only character output device. Each byte written to it
// is sent as-is to the output writer. Reads return 0.
type Console struct {
	out    io.Writer
	failed bool
	buf    [1]byte
}

func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = io.Discard
	}
	return &Console{out: out}
}

func (c *Console) Device() *hwio.Device {
	return &hwio.Device{
		Name:    "console",
		Size:    1,
		ReadCb:  func(uint16) uint8 { return 0 },
		PeekCb:  func(uint16) uint8 { return 0 },
		WriteCb: c.write,
	}
}

func (c *Console) write(_ uint16, val uint8) {
	log.ModConsole.DebugZ("write").Hex8("val", val).End()

	c.buf[0] = val
	if _, err := c.out.Write(c.buf[:]); err != nil && !c.failed {
		// Only report the first failure, the program keeps running.
		c.failed = true
		log.ModConsole.ErrorZ("console output failed").Error("err", err).End()
	}
}
