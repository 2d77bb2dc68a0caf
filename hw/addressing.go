package hw

//go:generate go tool stringer -type=AddrMode

// AddrMode is the addressing mode of an instruction, it determines how the
// operand bytes following the opcode are turned into an effective address.
type AddrMode uint8

const (
	Implied     AddrMode = iota // no operand
	Accumulator                 // operates on A
	Immediate                   // #$nn
	ZeroPage                    // $nn
	ZeroPageX                   // $nn,X
	ZeroPageY                   // $nn,Y
	Absolute                    // $nnnn
	AbsoluteX                   // $nnnn,X
	AbsoluteY                   // $nnnn,Y
	Indirect                    // ($nnnn), JMP only
	IndexedIndirect             // ($nn,X)
	IndirectIndexed             // ($nn),Y
	Relative                    // branch offset
)

// Len returns the length in bytes of an instruction using this addressing
// mode, opcode included.
func (m AddrMode) Len() int {
	switch m {
	case Implied, Accumulator:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 3
	}
	return 2
}

// operand is the result of the resolution of an addressing mode.
type operand struct {
	mode AddrMode

	// Effective address. For Immediate this is the address of the operand
	// byte, for Relative the branch target. Meaningless for Implied and
	// Accumulator.
	addr uint16

	// Set when indexing crossed a page boundary (AbsoluteX, AbsoluteY,
	// IndirectIndexed), or when the branch target is in a different page than
	// the next instruction (Relative).
	crossed bool
}

// resolve fetches the operand bytes of the current instruction, advancing PC,
// and computes the effective address.
func (c *CPU) resolve(mode AddrMode) operand {
	op := operand{mode: mode}

	switch mode {
	case Implied, Accumulator:
	case Immediate:
		op.addr = c.PC
		c.PC++
	case ZeroPage:
		op.addr = uint16(c.fetch8())
	case ZeroPageX:
		op.addr = uint16(c.fetch8() + c.X)
	case ZeroPageY:
		op.addr = uint16(c.fetch8() + c.Y)
	case Absolute:
		op.addr = c.fetch16()
	case AbsoluteX:
		op.addr, op.crossed = index(c.fetch16(), c.X)
	case AbsoluteY:
		op.addr, op.crossed = index(c.fetch16(), c.Y)
	case Indirect:
		op.addr = c.readIndirect(c.fetch16())
	case IndexedIndirect:
		op.addr = c.readZP16(c.fetch8() + c.X)
	case IndirectIndexed:
		op.addr, op.crossed = index(c.readZP16(c.fetch8()), c.Y)
	case Relative:
		off := int8(c.fetch8())
		op.addr = c.PC + uint16(off)
		op.crossed = !samePage(c.PC, op.addr)
	}
	return op
}

func index(base uint16, idx uint8) (uint16, bool) {
	addr := base + uint16(idx)
	return addr, !samePage(base, addr)
}

func samePage(a, b uint16) bool {
	return a&0xFF00 == b&0xFF00
}

// readZP16 reads a pointer from the zero page. The high byte is read from
// zp+1, wrapping within page 0.
func (c *CPU) readZP16(zp uint8) uint16 {
	lo := c.Read8(uint16(zp))
	hi := c.Read8(uint16(zp + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// readIndirect reads the JMP ($nnnn) target.
//
// The NMOS 6502 doesn't carry into the high byte of the pointer when
// fetching the second byte: with JMP ($30FF) the target high byte comes from
// $3000, not $3100.
func (c *CPU) readIndirect(ptr uint16) uint16 {
	lo := c.Read8(ptr)
	hi := c.Read8(ptr&0xFF00 | uint16(uint8(ptr)+1))
	return uint16(hi)<<8 | uint16(lo)
}
