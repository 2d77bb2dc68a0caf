// Package debugger implements breakpoints, watchpoints and call stack
// tracking on top of the hw.Debugger hooks.
package debugger

import (
	"fmt"

	"mos65/emu/log"
	"mos65/hw"
)

var modDbg = log.NewModule("debugger")

type EventKind uint8

const (
	BreakpointHit EventKind = iota + 1
	ReadWatch
	WriteWatch
	BreakRequest // break requested by the CPU core
)

func (k EventKind) String() string {
	switch k {
	case BreakpointHit:
		return "breakpoint"
	case ReadWatch:
		return "read watchpoint"
	case WriteWatch:
		return "write watchpoint"
	case BreakRequest:
		return "break"
	}
	return fmt.Sprintf("EventKind(%d)", k)
}

// An Event is the reason the debugger stopped the execution.
type Event struct {
	Kind EventKind
	PC   uint16 // address of the instruction that caused the event
	Addr uint16 // watched address
	Val  uint8  // value written, for WriteWatch
	Msg  string
}

func (ev Event) String() string {
	switch ev.Kind {
	case ReadWatch:
		return fmt.Sprintf("%s: read $%04X at $%04X", ev.Kind, ev.Addr, ev.PC)
	case WriteWatch:
		return fmt.Sprintf("%s: write $%02X to $%04X at $%04X", ev.Kind, ev.Val, ev.Addr, ev.PC)
	case BreakRequest:
		return fmt.Sprintf("%s: %s at $%04X", ev.Kind, ev.Msg, ev.PC)
	}
	return fmt.Sprintf("%s at $%04X", ev.Kind, ev.PC)
}

const nopOpcode = 0xEA

// A Debugger holds the state of the CPU debugger. It keeps track of the
// call stack at all times, and records the events (watchpoints and break
// requests) occurring during an instruction. Breakpoints and recorded events
// are reported by Check, which the execution loop calls before each
// instruction.
type Debugger struct {
	cpu *hw.CPU

	breakpoints map[uint16]bool
	rwatch      map[uint16]bool
	wwatch      map[uint16]bool

	pending  *Event
	resumed  bool // resuming from the breakpoint at resumeAt
	resumeAt uint16

	curPC      uint16
	prevPC     uint16
	prevOpcode uint8
	resetPC    uint16

	cstack callStack
}

// New creates a debugger and attaches it to cpu.
func New(cpu *hw.CPU) *Debugger {
	d := &Debugger{
		cpu:         cpu,
		breakpoints: make(map[uint16]bool),
		rwatch:      make(map[uint16]bool),
		wwatch:      make(map[uint16]bool),
		prevOpcode:  nopOpcode,
	}
	cpu.SetDebugger(d)
	return d
}

func (d *Debugger) SetBreakpoint(addr uint16) {
	modDbg.DebugZ("set breakpoint").Hex16("addr", addr).End()
	d.breakpoints[addr] = true
}

func (d *Debugger) ClearBreakpoint(addr uint16) {
	delete(d.breakpoints, addr)
}

// Watch sets a watchpoint on addr, for reads, writes or both.
func (d *Debugger) Watch(addr uint16, read, write bool) {
	modDbg.DebugZ("set watchpoint").
		Hex16("addr", addr).
		Bool("read", read).
		Bool("write", write).
		End()
	if read {
		d.rwatch[addr] = true
	}
	if write {
		d.wwatch[addr] = true
	}
}

func (d *Debugger) Unwatch(addr uint16) {
	delete(d.rwatch, addr)
	delete(d.wwatch, addr)
}

// Check must be called before the instruction at pc is executed. It reports
// the event recorded during the previous instruction if any, or a breakpoint
// hit at pc. Calling Check again at the same pc, after a breakpoint was hit,
// resumes the execution.
func (d *Debugger) Check(pc uint16) (Event, bool) {
	d.updateStack(pc, CallFrame)

	if d.pending != nil {
		ev := *d.pending
		d.pending = nil
		return ev, true
	}

	if d.breakpoints[pc] {
		if d.resumed && d.resumeAt == pc {
			d.resumed = false
			return Event{}, false
		}
		d.resumed, d.resumeAt = true, pc
		modDbg.DebugZ("breakpoint hit").Hex16("pc", pc).End()
		return Event{Kind: BreakpointHit, PC: pc}, true
	}

	d.resumed = false
	return Event{}, false
}

// CallStack returns the call stack frames, innermost first.
func (d *Debugger) CallStack() []Frame {
	return d.cstack.build(d.cpu.PC)
}

// ResetPC returns the address PC was set to by the last reset.
func (d *Debugger) ResetPC() uint16 {
	return d.resetPC
}

// record keeps the first event of an instruction.
func (d *Debugger) record(ev Event) {
	if d.pending == nil {
		d.pending = &ev
	}
}

func (d *Debugger) Reset() {
	d.resetPC = d.cpu.PC
	d.cstack.reset()
	d.prevOpcode = nopOpcode
	d.pending = nil
	d.resumed = false
}

func (d *Debugger) Trace(pc uint16) {
	d.updateStack(pc, CallFrame)

	d.curPC = pc
	d.prevPC = pc
	d.prevOpcode = d.peek8(pc)
}

func (d *Debugger) peek8(addr uint16) uint8 {
	if p, ok := d.cpu.Bus.(hw.Peeker); ok {
		return p.Peek8(addr)
	}
	return d.cpu.Bus.Read8(addr)
}

// updateStack applies the effect of the previous instruction on the call
// stack, now that its destination is known.
func (d *Debugger) updateStack(dstPc uint16, kind FrameKind) {
	switch d.prevOpcode {
	case 0x00: // BRK
		d.cstack.push(d.prevPC, dstPc, d.prevPC+2, IRQFrame)
	case 0x20: // JSR
		d.cstack.push(d.prevPC, dstPc, d.prevPC+3, kind)
	case 0x40, 0x60: // RTI RTS
		d.cstack.pop()
	}
	d.prevOpcode = nopOpcode
}

func (d *Debugger) Interrupt(prevpc, curpc uint16, isNMI bool) {
	kind := IRQFrame
	if isNMI {
		kind = NMIFrame
	}
	d.updateStack(prevpc, CallFrame)
	d.cstack.push(prevpc, curpc, prevpc, kind)
}

func (d *Debugger) WatchRead(addr uint16) {
	if d.rwatch[addr] {
		d.record(Event{Kind: ReadWatch, PC: d.curPC, Addr: addr})
	}
}

func (d *Debugger) WatchWrite(addr uint16, val uint8) {
	if d.wwatch[addr] {
		d.record(Event{Kind: WriteWatch, PC: d.curPC, Addr: addr, Val: val})
	}
}

func (d *Debugger) Break(msg string) {
	d.record(Event{Kind: BreakRequest, PC: d.curPC, Msg: msg})
}
