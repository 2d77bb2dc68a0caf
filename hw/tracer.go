package hw

import (
	"fmt"
	"io"
)

// cpuState stores the CPU state for the execution trace.
type cpuState struct {
	A, X, Y uint8
	P       P
	SP      uint8
	PC      uint16

	Clock int64
}

type disasmer interface {
	Disasm(pc uint16) DisasmOp
}

type tracer struct {
	d disasmer
	w io.Writer
}

// write the execution trace line for the instruction about to be executed,
// in the nestest log format.
func (t *tracer) write(state cpuState) {
	dis := t.d.Disasm(state.PC)
	buf := dis.Bytes()

	buf = appendReg(buf, 'A', state.A)
	buf = appendReg(buf, 'X', state.X)
	buf = appendReg(buf, 'Y', state.Y)
	buf = appendReg(buf, 'P', uint8(state.P))
	buf = append(buf, "SP:"...)
	buf = append(buf, 0, 0)
	hexEncode(buf[len(buf)-2:], state.SP)

	buf = fmt.Appendf(buf, " CYC:%d\n", state.Clock)
	t.w.Write(buf)
}

func appendReg(buf []byte, name byte, v uint8) []byte {
	buf = append(buf, name, ':', 0, 0, ' ')
	hexEncode(buf[len(buf)-3:], v)
	return buf
}
