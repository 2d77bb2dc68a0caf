package main

import (
	"fmt"
	"io"
	"os"

	"mos65/hw"
	"mos65/hw/hwio"
)

func disasmMain(args Disasm) {
	img, err := os.ReadFile(args.ImagePath)
	checkf(err, "failed to read image")

	load := addrOr(args.Load, 0)
	bus, err := imageBus(img, load)
	checkf(err, "failed to load image")

	disasm(os.Stdout, bus, addrOr(args.Start, load), args.Count)
}

// imageBus returns a bus with 64KiB of RAM, img being copied at addr.
func imageBus(img []byte, addr uint16) (*hwio.Table, error) {
	if int(addr)+len(img) > 0x10000 {
		return nil, fmt.Errorf("image of %d bytes doesn't fit at $%04X", len(img), addr)
	}

	ram := make([]byte, 0x10000)
	copy(ram[addr:], img)

	bus := hwio.NewTable("disasm")
	bus.MapMemorySlice(0x0000, 0xFFFF, ram, false)
	return bus, nil
}

// disasm writes count instructions starting at pc, one per line.
func disasm(w io.Writer, bus hw.Bus, pc uint16, count int) {
	for i := 0; i < count; i++ {
		op := hw.Disassemble(bus, pc)
		fmt.Fprintln(w, op)
		pc += uint16(len(op.Buf))
	}
}
