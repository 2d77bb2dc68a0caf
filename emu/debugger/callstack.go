package debugger

import (
	"fmt"
	"slices"
)

type FrameKind uint8

const (
	CallFrame FrameKind = iota // subroutine entered with JSR
	NMIFrame
	IRQFrame
)

type stackFrame struct {
	src    uint16
	target uint16
	ret    uint16
	kind   FrameKind
}

type callStack []stackFrame

func (cs *callStack) push(src, dst, ret uint16, kind FrameKind) {
	*cs = append(*cs, stackFrame{
		src:    src,
		target: dst,
		ret:    ret,
		kind:   kind,
	})
}

func (cs *callStack) len() int {
	return len(*cs)
}

func (cs *callStack) pop() {
	if cs.len() == 0 {
		return
	}
	*cs = (*cs)[:cs.len()-1]
}

func (cs *callStack) reset() {
	*cs = (*cs)[:0]
}

// Frame is an entry of the call stack, as seen from the debugger.
type Frame struct {
	Kind   FrameKind
	Bottom bool   // outermost frame, Entry is meaningless
	Entry  uint16 // entry point of the subroutine or interrupt handler
	PC     uint16 // current location in the frame
}

func (f Frame) String() string {
	var entry string
	switch {
	case f.Bottom:
		entry = "[bottom of stack]"
	case f.Kind == NMIFrame:
		entry = fmt.Sprintf("[nmi] $%04X", f.Entry)
	case f.Kind == IRQFrame:
		entry = fmt.Sprintf("[irq] $%04X", f.Entry)
	default:
		entry = fmt.Sprintf("$%04X", f.Entry)
	}
	return fmt.Sprintf("%-18s at $%04X", entry, f.PC)
}

// build returns the frames, innermost first, pc being the current location.
func (cs *callStack) build(pc uint16) []Frame {
	frames := make([]Frame, 0, cs.len()+1)
	for i, f := range *cs {
		frames = slices.Insert(frames, 0, cs.frame(i-1, f.src))
	}
	return slices.Insert(frames, 0, cs.frame(cs.len()-1, pc))
}

func (cs *callStack) frame(i int, pc uint16) Frame {
	if i < 0 {
		return Frame{Bottom: true, PC: pc}
	}
	f := (*cs)[i]
	return Frame{Kind: f.kind, Entry: f.target, PC: pc}
}
