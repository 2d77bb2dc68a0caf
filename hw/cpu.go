package hw

import (
	"io"

	"mos65/emu/log"
	"mos65/hw/snapshot"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

// Number of cycles taken by the reset sequence and by the servicing of an
// IRQ or NMI.
const (
	resetCycles     = 7
	interruptCycles = 7
)

type CPU struct {
	Bus Bus

	// DisableDecimal makes ADC and SBC ignore the D flag, like the Ricoh
	// 2A03 does. D can still be set and cleared.
	DisableDecimal bool

	// Non-nil when execution tracing is enabled.
	tracer *tracer
	dbg    Debugger

	Cycles int64 // CPU cycles

	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P

	// cycles taken by the instruction being executed.
	stepCycles uint32

	// interrupt handling
	nmiPending bool
	irqLatch   bool
	irqLines   IRQSource
}

// NewCPU creates a new CPU at power-up state, connected to bus. Call Reset
// before the first Step.
func NewCPU(bus Bus) *CPU {
	return &CPU{
		Bus: bus,
		SP:  0x00,
		P:   Reserved,
		dbg: nopDebugger{},
	}
}

// Reset runs the reset sequence. Like the hardware, S is decremented by 3
// (the 3 pushes are performed as reads), I is set, D is cleared and PC is
// loaded from the reset vector. A, X and Y are preserved, pending interrupts
// are dropped.
func (c *CPU) Reset() {
	c.SP -= 0x03
	c.P.setFlags(Interrupt)
	c.P.clearFlags(Decimal)
	c.nmiPending = false
	c.irqLatch = false

	// Directly read from the bus to avoid side effects.
	c.PC = Read16(c.Bus, ResetVector)
	c.Cycles += resetCycles
	c.dbg.Reset()

	log.ModCPU.DebugZ("reset").Hex16("pc", c.PC).End()
}

func (c *CPU) traceOp() {
	if c.tracer != nil {
		c.tracer.write(cpuState{
			A:     c.A,
			X:     c.X,
			Y:     c.Y,
			P:     c.P,
			SP:    c.SP,
			Clock: c.Cycles,
			PC:    c.PC,
		})
	}

	c.dbg.Trace(c.PC)
}

// Step executes the instruction at PC and services a pending interrupt if
// there's one. It returns the number of cycles it took, interrupt included.
func (c *CPU) Step() uint32 {
	c.traceOp()

	pc := c.PC
	desc := &opcodes[c.fetch8()]
	c.stepCycles = uint32(desc.Cycles)

	// The I flag sampled for interrupt polling is the one before CLI, SEI
	// and PLP changed it.
	masked := c.P.I()
	if desc.Official {
		op := c.resolve(desc.Mode)
		if op.crossed && desc.PageCross {
			c.stepCycles++
		}
		desc.exec(c, op)
	} else {
		c.undocumented(pc, desc)
	}
	if !desc.delayIRQ {
		masked = c.P.I()
	}

	c.pollInterrupts(masked)
	c.Cycles += int64(c.stepCycles)
	return c.stepCycles
}

// Run executes whole instructions until at least ncycles cycles have elapsed.
// It returns the number of cycles actually consumed.
func (c *CPU) Run(ncycles int64) int64 {
	var elapsed int64
	for elapsed < ncycles {
		elapsed += int64(c.Step())
	}
	return elapsed
}

// undocumented executes an opcode with no official definition: the operand
// bytes are skipped, nothing else happens.
func (c *CPU) undocumented(pc uint16, desc *Opcode) {
	c.PC += uint16(desc.Mode.Len() - 1)

	log.ModCPU.DebugZ("undocumented opcode").
		Hex16("pc", pc).
		String("op", desc.Name).
		End()
	c.dbg.Break("undocumented opcode " + desc.Name)
}

func (c *CPU) Read8(addr uint16) uint8 {
	c.dbg.WatchRead(addr)
	return c.Bus.Read8(addr)
}

func (c *CPU) Write8(addr uint16, val uint8) {
	c.dbg.WatchWrite(addr, val)
	c.Bus.Write8(addr, val)
}

func (c *CPU) Read16(addr uint16) uint16 {
	lo := c.Read8(addr)
	hi := c.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) fetch8() uint8 {
	val := c.Read8(c.PC)
	c.PC++
	return val
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	top := uint16(c.SP) + 0x0100
	c.Write8(top, val)
	c.SP -= 1
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val & 0xff))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	top := uint16(c.SP) + 0x0100
	return c.Read8(top)
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

/* registers and state */

// Registers holds the programmer visible registers.
type Registers struct {
	PC      uint16
	SP      uint8
	P       P
	A, X, Y uint8
}

func (c *CPU) Registers() Registers {
	return Registers{
		PC: c.PC,
		SP: c.SP,
		P:  c.P,
		A:  c.A,
		X:  c.X,
		Y:  c.Y,
	}
}

// SetRegisters forces the register file. Bit 5 of P is always set.
func (c *CPU) SetRegisters(r Registers) {
	c.PC = r.PC
	c.SP = r.SP
	c.P = UnpackP(uint8(r.P))
	c.A = r.A
	c.X = r.X
	c.Y = r.Y
}

func (c *CPU) State() *snapshot.CPU {
	return &snapshot.CPU{
		PC:         c.PC,
		SP:         c.SP,
		P:          c.P.Pack(),
		A:          c.A,
		X:          c.X,
		Y:          c.Y,
		Cycles:     c.Cycles,
		NMIPending: c.nmiPending,
		IRQLatch:   c.irqLatch,
		IRQLines:   uint8(c.irqLines),
	}
}

func (c *CPU) SetState(state *snapshot.CPU) {
	c.PC = state.PC
	c.SP = state.SP
	c.P = UnpackP(state.P)
	c.A = state.A
	c.X = state.X
	c.Y = state.Y
	c.Cycles = state.Cycles
	c.nmiPending = state.NMIPending
	c.irqLatch = state.IRQLatch
	c.irqLines = IRQSource(state.IRQLines)
}

/* tracing / debugging */

// SetTraceOutput enables execution tracing to w, or disables it if w is nil.
func (c *CPU) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w, d: c}
}

func (c *CPU) SetDebugger(dbg Debugger) {
	if dbg == nil {
		dbg = nopDebugger{}
	}
	c.dbg = dbg
}
