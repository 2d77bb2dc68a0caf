package hw

// An Opcode describes one of the 256 opcodes.
type Opcode struct {
	Name   string
	Mode   AddrMode
	Cycles uint8 // base cycle count

	// PageCross is set for the read instructions taking one more cycle when
	// indexing crosses a page boundary.
	PageCross bool

	// Official is false for the opcodes with no documented behavior. Those
	// are executed as no-operations, see (*CPU).undocumented.
	Official bool

	exec func(*CPU, operand)

	// The effect of the instruction on the I flag is only seen by the
	// interrupt logic after the next instruction.
	delayIRQ bool
}

// Lookup returns the descriptor of the given opcode.
func Lookup(opcode uint8) Opcode {
	return opcodes[opcode]
}

// Opcodes returns a copy of the whole opcode table.
func Opcodes() [256]Opcode {
	return opcodes
}

func op(name string, mode AddrMode, cycles uint8, exec func(*CPU, operand)) Opcode {
	return Opcode{Name: name, Mode: mode, Cycles: cycles, Official: true, exec: exec}
}

// opx is op for the instructions paying the page-cross penalty.
func opx(name string, mode AddrMode, cycles uint8, exec func(*CPU, operand)) Opcode {
	o := op(name, mode, cycles, exec)
	o.PageCross = true
	return o
}

func undoc(name string, mode AddrMode, cycles uint8) Opcode {
	return Opcode{Name: name, Mode: mode, Cycles: cycles}
}

func delayIRQ(o Opcode) Opcode {
	o.delayIRQ = true
	return o
}

var opcodes = [256]Opcode{
	0x00: op("BRK", Implied, 7, BRK),
	0x01: op("ORA", IndexedIndirect, 6, ORA),
	0x02: undoc("JAM", Implied, 2),
	0x03: undoc("SLO", IndexedIndirect, 8),
	0x04: undoc("NOP", ZeroPage, 3),
	0x05: op("ORA", ZeroPage, 3, ORA),
	0x06: op("ASL", ZeroPage, 5, ASL),
	0x07: undoc("SLO", ZeroPage, 5),
	0x08: op("PHP", Implied, 3, PHP),
	0x09: op("ORA", Immediate, 2, ORA),
	0x0A: op("ASL", Accumulator, 2, ASL),
	0x0B: undoc("ANC", Immediate, 2),
	0x0C: undoc("NOP", Absolute, 4),
	0x0D: op("ORA", Absolute, 4, ORA),
	0x0E: op("ASL", Absolute, 6, ASL),
	0x0F: undoc("SLO", Absolute, 6),
	0x10: op("BPL", Relative, 2, BPL),
	0x11: opx("ORA", IndirectIndexed, 5, ORA),
	0x12: undoc("JAM", Implied, 2),
	0x13: undoc("SLO", IndirectIndexed, 8),
	0x14: undoc("NOP", ZeroPageX, 4),
	0x15: op("ORA", ZeroPageX, 4, ORA),
	0x16: op("ASL", ZeroPageX, 6, ASL),
	0x17: undoc("SLO", ZeroPageX, 6),
	0x18: op("CLC", Implied, 2, CLC),
	0x19: opx("ORA", AbsoluteY, 4, ORA),
	0x1A: undoc("NOP", Implied, 2),
	0x1B: undoc("SLO", AbsoluteY, 7),
	0x1C: undoc("NOP", AbsoluteX, 4),
	0x1D: opx("ORA", AbsoluteX, 4, ORA),
	0x1E: op("ASL", AbsoluteX, 7, ASL),
	0x1F: undoc("SLO", AbsoluteX, 7),
	0x20: op("JSR", Absolute, 6, JSR),
	0x21: op("AND", IndexedIndirect, 6, AND),
	0x22: undoc("JAM", Implied, 2),
	0x23: undoc("RLA", IndexedIndirect, 8),
	0x24: op("BIT", ZeroPage, 3, BIT),
	0x25: op("AND", ZeroPage, 3, AND),
	0x26: op("ROL", ZeroPage, 5, ROL),
	0x27: undoc("RLA", ZeroPage, 5),
	0x28: delayIRQ(op("PLP", Implied, 4, PLP)),
	0x29: op("AND", Immediate, 2, AND),
	0x2A: op("ROL", Accumulator, 2, ROL),
	0x2B: undoc("ANC", Immediate, 2),
	0x2C: op("BIT", Absolute, 4, BIT),
	0x2D: op("AND", Absolute, 4, AND),
	0x2E: op("ROL", Absolute, 6, ROL),
	0x2F: undoc("RLA", Absolute, 6),
	0x30: op("BMI", Relative, 2, BMI),
	0x31: opx("AND", IndirectIndexed, 5, AND),
	0x32: undoc("JAM", Implied, 2),
	0x33: undoc("RLA", IndirectIndexed, 8),
	0x34: undoc("NOP", ZeroPageX, 4),
	0x35: op("AND", ZeroPageX, 4, AND),
	0x36: op("ROL", ZeroPageX, 6, ROL),
	0x37: undoc("RLA", ZeroPageX, 6),
	0x38: op("SEC", Implied, 2, SEC),
	0x39: opx("AND", AbsoluteY, 4, AND),
	0x3A: undoc("NOP", Implied, 2),
	0x3B: undoc("RLA", AbsoluteY, 7),
	0x3C: undoc("NOP", AbsoluteX, 4),
	0x3D: opx("AND", AbsoluteX, 4, AND),
	0x3E: op("ROL", AbsoluteX, 7, ROL),
	0x3F: undoc("RLA", AbsoluteX, 7),
	0x40: op("RTI", Implied, 6, RTI),
	0x41: op("EOR", IndexedIndirect, 6, EOR),
	0x42: undoc("JAM", Implied, 2),
	0x43: undoc("SRE", IndexedIndirect, 8),
	0x44: undoc("NOP", ZeroPage, 3),
	0x45: op("EOR", ZeroPage, 3, EOR),
	0x46: op("LSR", ZeroPage, 5, LSR),
	0x47: undoc("SRE", ZeroPage, 5),
	0x48: op("PHA", Implied, 3, PHA),
	0x49: op("EOR", Immediate, 2, EOR),
	0x4A: op("LSR", Accumulator, 2, LSR),
	0x4B: undoc("ALR", Immediate, 2),
	0x4C: op("JMP", Absolute, 3, JMP),
	0x4D: op("EOR", Absolute, 4, EOR),
	0x4E: op("LSR", Absolute, 6, LSR),
	0x4F: undoc("SRE", Absolute, 6),
	0x50: op("BVC", Relative, 2, BVC),
	0x51: opx("EOR", IndirectIndexed, 5, EOR),
	0x52: undoc("JAM", Implied, 2),
	0x53: undoc("SRE", IndirectIndexed, 8),
	0x54: undoc("NOP", ZeroPageX, 4),
	0x55: op("EOR", ZeroPageX, 4, EOR),
	0x56: op("LSR", ZeroPageX, 6, LSR),
	0x57: undoc("SRE", ZeroPageX, 6),
	0x58: delayIRQ(op("CLI", Implied, 2, CLI)),
	0x59: opx("EOR", AbsoluteY, 4, EOR),
	0x5A: undoc("NOP", Implied, 2),
	0x5B: undoc("SRE", AbsoluteY, 7),
	0x5C: undoc("NOP", AbsoluteX, 4),
	0x5D: opx("EOR", AbsoluteX, 4, EOR),
	0x5E: op("LSR", AbsoluteX, 7, LSR),
	0x5F: undoc("SRE", AbsoluteX, 7),
	0x60: op("RTS", Implied, 6, RTS),
	0x61: op("ADC", IndexedIndirect, 6, ADC),
	0x62: undoc("JAM", Implied, 2),
	0x63: undoc("RRA", IndexedIndirect, 8),
	0x64: undoc("NOP", ZeroPage, 3),
	0x65: op("ADC", ZeroPage, 3, ADC),
	0x66: op("ROR", ZeroPage, 5, ROR),
	0x67: undoc("RRA", ZeroPage, 5),
	0x68: op("PLA", Implied, 4, PLA),
	0x69: op("ADC", Immediate, 2, ADC),
	0x6A: op("ROR", Accumulator, 2, ROR),
	0x6B: undoc("ARR", Immediate, 2),
	0x6C: op("JMP", Indirect, 5, JMP),
	0x6D: op("ADC", Absolute, 4, ADC),
	0x6E: op("ROR", Absolute, 6, ROR),
	0x6F: undoc("RRA", Absolute, 6),
	0x70: op("BVS", Relative, 2, BVS),
	0x71: opx("ADC", IndirectIndexed, 5, ADC),
	0x72: undoc("JAM", Implied, 2),
	0x73: undoc("RRA", IndirectIndexed, 8),
	0x74: undoc("NOP", ZeroPageX, 4),
	0x75: op("ADC", ZeroPageX, 4, ADC),
	0x76: op("ROR", ZeroPageX, 6, ROR),
	0x77: undoc("RRA", ZeroPageX, 6),
	0x78: delayIRQ(op("SEI", Implied, 2, SEI)),
	0x79: opx("ADC", AbsoluteY, 4, ADC),
	0x7A: undoc("NOP", Implied, 2),
	0x7B: undoc("RRA", AbsoluteY, 7),
	0x7C: undoc("NOP", AbsoluteX, 4),
	0x7D: opx("ADC", AbsoluteX, 4, ADC),
	0x7E: op("ROR", AbsoluteX, 7, ROR),
	0x7F: undoc("RRA", AbsoluteX, 7),
	0x80: undoc("NOP", Immediate, 2),
	0x81: op("STA", IndexedIndirect, 6, STA),
	0x82: undoc("NOP", Immediate, 2),
	0x83: undoc("SAX", IndexedIndirect, 6),
	0x84: op("STY", ZeroPage, 3, STY),
	0x85: op("STA", ZeroPage, 3, STA),
	0x86: op("STX", ZeroPage, 3, STX),
	0x87: undoc("SAX", ZeroPage, 3),
	0x88: op("DEY", Implied, 2, DEY),
	0x89: undoc("NOP", Immediate, 2),
	0x8A: op("TXA", Implied, 2, TXA),
	0x8B: undoc("ANE", Immediate, 2),
	0x8C: op("STY", Absolute, 4, STY),
	0x8D: op("STA", Absolute, 4, STA),
	0x8E: op("STX", Absolute, 4, STX),
	0x8F: undoc("SAX", Absolute, 4),
	0x90: op("BCC", Relative, 2, BCC),
	0x91: op("STA", IndirectIndexed, 6, STA),
	0x92: undoc("JAM", Implied, 2),
	0x93: undoc("SHA", IndirectIndexed, 6),
	0x94: op("STY", ZeroPageX, 4, STY),
	0x95: op("STA", ZeroPageX, 4, STA),
	0x96: op("STX", ZeroPageY, 4, STX),
	0x97: undoc("SAX", ZeroPageY, 4),
	0x98: op("TYA", Implied, 2, TYA),
	0x99: op("STA", AbsoluteY, 5, STA),
	0x9A: op("TXS", Implied, 2, TXS),
	0x9B: undoc("TAS", AbsoluteY, 5),
	0x9C: undoc("SHY", AbsoluteX, 5),
	0x9D: op("STA", AbsoluteX, 5, STA),
	0x9E: undoc("SHX", AbsoluteY, 5),
	0x9F: undoc("SHA", AbsoluteY, 5),
	0xA0: op("LDY", Immediate, 2, LDY),
	0xA1: op("LDA", IndexedIndirect, 6, LDA),
	0xA2: op("LDX", Immediate, 2, LDX),
	0xA3: undoc("LAX", IndexedIndirect, 6),
	0xA4: op("LDY", ZeroPage, 3, LDY),
	0xA5: op("LDA", ZeroPage, 3, LDA),
	0xA6: op("LDX", ZeroPage, 3, LDX),
	0xA7: undoc("LAX", ZeroPage, 3),
	0xA8: op("TAY", Implied, 2, TAY),
	0xA9: op("LDA", Immediate, 2, LDA),
	0xAA: op("TAX", Implied, 2, TAX),
	0xAB: undoc("LXA", Immediate, 2),
	0xAC: op("LDY", Absolute, 4, LDY),
	0xAD: op("LDA", Absolute, 4, LDA),
	0xAE: op("LDX", Absolute, 4, LDX),
	0xAF: undoc("LAX", Absolute, 4),
	0xB0: op("BCS", Relative, 2, BCS),
	0xB1: opx("LDA", IndirectIndexed, 5, LDA),
	0xB2: undoc("JAM", Implied, 2),
	0xB3: undoc("LAX", IndirectIndexed, 5),
	0xB4: op("LDY", ZeroPageX, 4, LDY),
	0xB5: op("LDA", ZeroPageX, 4, LDA),
	0xB6: op("LDX", ZeroPageY, 4, LDX),
	0xB7: undoc("LAX", ZeroPageY, 4),
	0xB8: op("CLV", Implied, 2, CLV),
	0xB9: opx("LDA", AbsoluteY, 4, LDA),
	0xBA: op("TSX", Implied, 2, TSX),
	0xBB: undoc("LAS", AbsoluteY, 4),
	0xBC: opx("LDY", AbsoluteX, 4, LDY),
	0xBD: opx("LDA", AbsoluteX, 4, LDA),
	0xBE: opx("LDX", AbsoluteY, 4, LDX),
	0xBF: undoc("LAX", AbsoluteY, 4),
	0xC0: op("CPY", Immediate, 2, CPY),
	0xC1: op("CMP", IndexedIndirect, 6, CMP),
	0xC2: undoc("NOP", Immediate, 2),
	0xC3: undoc("DCP", IndexedIndirect, 8),
	0xC4: op("CPY", ZeroPage, 3, CPY),
	0xC5: op("CMP", ZeroPage, 3, CMP),
	0xC6: op("DEC", ZeroPage, 5, DEC),
	0xC7: undoc("DCP", ZeroPage, 5),
	0xC8: op("INY", Implied, 2, INY),
	0xC9: op("CMP", Immediate, 2, CMP),
	0xCA: op("DEX", Implied, 2, DEX),
	0xCB: undoc("SBX", Immediate, 2),
	0xCC: op("CPY", Absolute, 4, CPY),
	0xCD: op("CMP", Absolute, 4, CMP),
	0xCE: op("DEC", Absolute, 6, DEC),
	0xCF: undoc("DCP", Absolute, 6),
	0xD0: op("BNE", Relative, 2, BNE),
	0xD1: opx("CMP", IndirectIndexed, 5, CMP),
	0xD2: undoc("JAM", Implied, 2),
	0xD3: undoc("DCP", IndirectIndexed, 8),
	0xD4: undoc("NOP", ZeroPageX, 4),
	0xD5: op("CMP", ZeroPageX, 4, CMP),
	0xD6: op("DEC", ZeroPageX, 6, DEC),
	0xD7: undoc("DCP", ZeroPageX, 6),
	0xD8: op("CLD", Implied, 2, CLD),
	0xD9: opx("CMP", AbsoluteY, 4, CMP),
	0xDA: undoc("NOP", Implied, 2),
	0xDB: undoc("DCP", AbsoluteY, 7),
	0xDC: undoc("NOP", AbsoluteX, 4),
	0xDD: opx("CMP", AbsoluteX, 4, CMP),
	0xDE: op("DEC", AbsoluteX, 7, DEC),
	0xDF: undoc("DCP", AbsoluteX, 7),
	0xE0: op("CPX", Immediate, 2, CPX),
	0xE1: op("SBC", IndexedIndirect, 6, SBC),
	0xE2: undoc("NOP", Immediate, 2),
	0xE3: undoc("ISC", IndexedIndirect, 8),
	0xE4: op("CPX", ZeroPage, 3, CPX),
	0xE5: op("SBC", ZeroPage, 3, SBC),
	0xE6: op("INC", ZeroPage, 5, INC),
	0xE7: undoc("ISC", ZeroPage, 5),
	0xE8: op("INX", Implied, 2, INX),
	0xE9: op("SBC", Immediate, 2, SBC),
	0xEA: op("NOP", Implied, 2, NOP),
	0xEB: undoc("SBC", Immediate, 2),
	0xEC: op("CPX", Absolute, 4, CPX),
	0xED: op("SBC", Absolute, 4, SBC),
	0xEE: op("INC", Absolute, 6, INC),
	0xEF: undoc("ISC", Absolute, 6),
	0xF0: op("BEQ", Relative, 2, BEQ),
	0xF1: opx("SBC", IndirectIndexed, 5, SBC),
	0xF2: undoc("JAM", Implied, 2),
	0xF3: undoc("ISC", IndirectIndexed, 8),
	0xF4: undoc("NOP", ZeroPageX, 4),
	0xF5: op("SBC", ZeroPageX, 4, SBC),
	0xF6: op("INC", ZeroPageX, 6, INC),
	0xF7: undoc("ISC", ZeroPageX, 6),
	0xF8: op("SED", Implied, 2, SED),
	0xF9: opx("SBC", AbsoluteY, 4, SBC),
	0xFA: undoc("NOP", Implied, 2),
	0xFB: undoc("ISC", AbsoluteY, 7),
	0xFC: undoc("NOP", AbsoluteX, 4),
	0xFD: opx("SBC", AbsoluteX, 4, SBC),
	0xFE: op("INC", AbsoluteX, 7, INC),
	0xFF: undoc("ISC", AbsoluteX, 7),
}
