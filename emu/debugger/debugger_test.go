package debugger

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"mos65/hw"
	"mos65/hw/hwio"
)

func newTestCPU(tb testing.TB, prog map[uint16][]byte) (*hw.CPU, *Debugger) {
	tb.Helper()

	ram := make([]byte, 0x10000)
	for addr, code := range prog {
		copy(ram[addr:], code)
	}
	bus := hwio.NewTable("cpu")
	bus.MapMemorySlice(0x0000, 0xFFFF, ram, false)

	cpu := hw.NewCPU(bus)
	d := New(cpu)
	cpu.Reset()
	return cpu, d
}

// run executes up to maxSteps instructions, until the debugger reports an
// event.
func run(cpu *hw.CPU, d *Debugger, maxSteps int) (Event, bool) {
	for i := 0; i < maxSteps; i++ {
		if ev, ok := d.Check(cpu.PC); ok {
			return ev, true
		}
		cpu.Step()
	}
	return Event{}, false
}

func wantEvent(t *testing.T, cpu *hw.CPU, d *Debugger, want Event) {
	t.Helper()

	got, ok := run(cpu, d, 100)
	if !ok {
		t.Fatalf("no event, want %v", want)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("event differs (-want +got):\n%s", diff)
	}
}

func wantCallStack(t *testing.T, d *Debugger, want ...Frame) {
	t.Helper()

	if diff := cmp.Diff(want, d.CallStack()); diff != "" {
		t.Fatalf("callstack differs (-want +got):\n%s", diff)
	}
}

var subroutineProg = map[uint16][]byte{
	0x0600: {
		0x20, 0x10, 0x06, // JSR $0610
		0x8D, 0x00, 0x02, // STA $0200
		0xAD, 0x00, 0x03, // LDA $0300
		0x4C, 0x09, 0x06, // JMP $0609
	},
	0x0610: {
		0xA9, 0x42, // LDA #$42
		0x60, // RTS
	},
	0xFFFC: {0x00, 0x06},
}

func TestBreakpointsAndWatchpoints(t *testing.T) {
	cpu, d := newTestCPU(t, subroutineProg)
	if d.ResetPC() != 0x0600 {
		t.Fatalf("ResetPC() = $%04X, want $0600", d.ResetPC())
	}

	d.SetBreakpoint(0x0610)
	wantEvent(t, cpu, d, Event{Kind: BreakpointHit, PC: 0x0610})
	wantCallStack(t, d,
		Frame{Kind: CallFrame, Entry: 0x0610, PC: 0x0610},
		Frame{Bottom: true, PC: 0x0600},
	)

	d.Watch(0x0200, false, true)
	d.Watch(0x0300, true, false)
	wantEvent(t, cpu, d, Event{Kind: WriteWatch, PC: 0x0603, Addr: 0x0200, Val: 0x42})
	if cpu.PC != 0x0606 {
		t.Errorf("PC = $%04X, want $0606", cpu.PC)
	}
	wantCallStack(t, d, Frame{Bottom: true, PC: 0x0606})

	wantEvent(t, cpu, d, Event{Kind: ReadWatch, PC: 0x0606, Addr: 0x0300})

	// Nothing else should stop the execution.
	if ev, ok := run(cpu, d, 100); ok {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestClearBreakpoint(t *testing.T) {
	cpu, d := newTestCPU(t, subroutineProg)

	d.SetBreakpoint(0x0610)
	d.ClearBreakpoint(0x0610)
	d.Watch(0x0200, true, true)
	d.Unwatch(0x0200)
	if ev, ok := run(cpu, d, 100); ok {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestBreakRequest(t *testing.T) {
	cpu, d := newTestCPU(t, map[uint16][]byte{
		0x0600: {0xEA, 0x02, 0xEA},
		0xFFFC: {0x00, 0x06},
	})

	wantEvent(t, cpu, d, Event{Kind: BreakRequest, PC: 0x0601, Msg: "undocumented opcode JAM"})
	if cpu.PC != 0x0602 {
		t.Errorf("PC = $%04X, want $0602", cpu.PC)
	}
}

func TestInterruptFrames(t *testing.T) {
	cpu, d := newTestCPU(t, map[uint16][]byte{
		0x0600: {
			0x58,             // CLI
			0xEA,             // NOP
			0x4C, 0x02, 0x06, // JMP $0602
		},
		0x3000: {
			0xEA, // NOP
			0x40, // RTI
		},
		0xFFFC: {0x00, 0x06, 0x00, 0x30},
	})

	cpu.TriggerIRQ()
	d.SetBreakpoint(0x3001)
	d.SetBreakpoint(0x0602)

	wantEvent(t, cpu, d, Event{Kind: BreakpointHit, PC: 0x3001})
	wantCallStack(t, d,
		Frame{Kind: IRQFrame, Entry: 0x3000, PC: 0x3001},
		Frame{Bottom: true, PC: 0x0602},
	)

	wantEvent(t, cpu, d, Event{Kind: BreakpointHit, PC: 0x0602})
	wantCallStack(t, d, Frame{Bottom: true, PC: 0x0602})
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Event{Kind: BreakpointHit, PC: 0x0610}, "breakpoint at $0610"},
		{Event{Kind: ReadWatch, PC: 0x0606, Addr: 0x0300}, "read watchpoint: read $0300 at $0606"},
		{Event{Kind: WriteWatch, PC: 0x0603, Addr: 0x0200, Val: 0x42}, "write watchpoint: write $42 to $0200 at $0603"},
		{Event{Kind: BreakRequest, PC: 0x0601, Msg: "undocumented opcode JAM"}, "break: undocumented opcode JAM at $0601"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
