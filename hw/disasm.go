package hw

import (
	"fmt"
	"strings"
)

type DisasmOp struct {
	Opcode string
	Oper   string
	Buf    []byte
	PC     uint16
}

// Disasm disassembles the instruction at pc, without side effects if the bus
// is a Peeker.
func (c *CPU) Disasm(pc uint16) DisasmOp {
	return Disassemble(c.Bus, pc)
}

// Disassemble disassembles the instruction at pc. Undocumented opcodes are
// prefixed with '*'.
func Disassemble(b Bus, pc uint16) DisasmOp {
	desc := &opcodes[peek8(b, pc)]

	n := desc.Mode.Len()
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = peek8(b, pc+uint16(i))
	}

	name := desc.Name
	if !desc.Official {
		name = "*" + name
	}

	return DisasmOp{
		Opcode: name,
		Oper:   formatOperand(desc.Mode, pc, buf),
		Buf:    buf,
		PC:     pc,
	}
}

func formatOperand(mode AddrMode, pc uint16, buf []byte) string {
	var w uint16
	if len(buf) == 3 {
		w = uint16(buf[2])<<8 | uint16(buf[1])
	}

	switch mode {
	case Accumulator:
		return "A"
	case Immediate:
		return fmt.Sprintf("#$%02X", buf[1])
	case ZeroPage:
		return fmt.Sprintf("$%02X", buf[1])
	case ZeroPageX:
		return fmt.Sprintf("$%02X,X", buf[1])
	case ZeroPageY:
		return fmt.Sprintf("$%02X,Y", buf[1])
	case Absolute:
		return fmt.Sprintf("$%04X", w)
	case AbsoluteX:
		return fmt.Sprintf("$%04X,X", w)
	case AbsoluteY:
		return fmt.Sprintf("$%04X,Y", w)
	case Indirect:
		return fmt.Sprintf("($%04X)", w)
	case IndexedIndirect:
		return fmt.Sprintf("($%02X,X)", buf[1])
	case IndirectIndexed:
		return fmt.Sprintf("($%02X),Y", buf[1])
	case Relative:
		return fmt.Sprintf("$%04X", pc+2+uint16(int8(buf[1])))
	}
	return ""
}

func hexEncode(dst []byte, v byte) {
	const hextable = "0123456789ABCDEF"
	dst[0] = hextable[v>>4]
	dst[1] = hextable[v&0x0f]
}

// Bytes returns the fixed-width representation of a DisasmOp, suitable for
// the execution tracer.
func (d DisasmOp) Bytes() []byte {
	const totalLen = 48
	buf := make([]byte, totalLen)

	hexEncode(buf[0:], byte(d.PC>>8))
	hexEncode(buf[2:], byte(d.PC))
	buf[4] = ' '
	buf[5] = ' '

	off := 6
	for i := range d.Buf {
		hexEncode(buf[off:], d.Buf[i])
		buf[off+2] = ' '
		off += 3
	}

	for ; off < 15; off++ {
		buf[off] = ' '
	}
	// Undocumented opcodes have their '*' one column to the left.
	if !strings.HasPrefix(d.Opcode, "*") {
		buf[off] = ' '
		off++
	}

	off += copy(buf[off:], d.Opcode)
	buf[off] = ' '
	off++

	buf = append(buf[:off], d.Oper...)
	off += len(d.Oper)
	if len(buf) > totalLen {
		buf = append(buf, ' ')
	} else {
		buf = buf[:totalLen]
		for i := off; i < totalLen; i++ {
			buf[i] = ' '
		}
	}

	return buf
}

func (d DisasmOp) String() string {
	return strings.TrimRight(string(d.Bytes()), " ")
}
