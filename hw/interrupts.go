package hw

import "mos65/emu/log"

// IRQSource identifies a device driving the IRQ line. The line is asserted
// as long as at least one source is.
type IRQSource uint8

const (
	IRQExternal IRQSource = 1 << iota
	IRQTimer
	IRQDevice
)

// TriggerIRQ requests a one-shot interrupt. The request stays pending until
// serviced, that is until I is found clear at an instruction boundary.
func (c *CPU) TriggerIRQ() {
	c.irqLatch = true
}

// SetIRQLine asserts or releases the IRQ line for src. A level-triggered
// source must be released by the host, usually when the interrupt handler
// acknowledges the device. Otherwise the IRQ fires again as soon as I is
// cleared.
func (c *CPU) SetIRQLine(src IRQSource, asserted bool) {
	if asserted {
		c.irqLines |= src
	} else {
		c.irqLines &^= src
	}
}

// IRQLine reports whether the IRQ line is asserted by src.
func (c *CPU) IRQLine(src IRQSource) bool {
	return c.irqLines&src != 0
}

// TriggerNMI signals a falling edge on the NMI line. The NMI is serviced at
// the end of the current instruction, whatever the state of I.
func (c *CPU) TriggerNMI() {
	c.nmiPending = true
}

// SetOverflow emulates a falling edge on the SO pin, setting V.
func (c *CPU) SetOverflow() {
	c.P.setFlags(Overflow)
}

func (c *CPU) irqPending() bool {
	return c.irqLatch || c.irqLines != 0
}

// pollInterrupts services a pending interrupt, if any. NMI has priority over
// IRQ, IRQ is honored if masked is false.
func (c *CPU) pollInterrupts(masked bool) {
	switch {
	case c.nmiPending:
		c.nmiPending = false
		c.interrupt(NMIVector, true)
	case !masked && c.irqPending():
		c.irqLatch = false
		c.interrupt(IRQVector, false)
	}
}

// interrupt runs the IRQ/NMI sequence: PC and P (with B clear) are pushed, I
// is set and PC is loaded from the vector.
func (c *CPU) interrupt(vector uint16, isNMI bool) {
	prevpc := c.PC
	c.push16(c.PC)

	p := c.P | Reserved
	p &^= Break
	c.push8(uint8(p))

	c.P.setFlags(Interrupt)
	c.PC = c.Read16(vector)
	c.stepCycles += interruptCycles

	c.dbg.Interrupt(prevpc, c.PC, isNMI)
	log.ModCPU.DebugZ("interrupt").
		Bool("nmi", isNMI).
		Hex16("from", prevpc).
		Hex16("to", c.PC).
		End()
}

// BRK pushes the address of the byte following its padding byte, and P with
// B set. If an NMI is pending it hijacks BRK: the NMI vector is used and the
// NMI is consumed.
func BRK(c *CPU, _ operand) {
	// padding byte.
	c.PC++
	c.push16(c.PC)
	c.push8(uint8(c.P | Break | Reserved))
	c.P.setFlags(Interrupt)

	if c.nmiPending {
		c.nmiPending = false
		c.PC = c.Read16(NMIVector)
		return
	}
	c.PC = c.Read16(IRQVector)
}
