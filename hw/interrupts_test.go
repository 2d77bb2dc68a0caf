package hw

import "testing"

const irqDump = `
# NOP; CLI; NOP; NOP
0600: ea 58 ea ea
# IRQ handler: RTI
3000: 40
# NMI handler: RTI
4000: 40
# NMI, IRQ vectors
FFFA: 00 40
FFFE: 00 30`

func wantStep(t *testing.T, cpu *CPU, want uint32) {
	t.Helper()
	if got := cpu.Step(); got != want {
		t.Errorf("Step() = %d cycles, want %d", got, want)
	}
}

func TestIRQMasked(t *testing.T) {
	cpu := loadCPUWith(t, irqDump)
	cpu.PC = 0x0600
	cpu.TriggerIRQ()

	wantStep(t, cpu, 2) // NOP
	runAndCheckState(t, cpu, 0, "PC", 0x0601)

	// IRQ is still masked right after CLI.
	wantStep(t, cpu, 2)
	runAndCheckState(t, cpu, 0, "PC", 0x0602, "Pi", 0)

	wantStep(t, cpu, 2+7)
	runAndCheckState(t, cpu, 0,
		"PC", 0x3000,
		"SP", 0xFA,
		"Pi", 1,
		"mem", `01FB: 20 03 06 00`,
	)

	// The one-shot request has been acknowledged.
	wantStep(t, cpu, 6)
	runAndCheckState(t, cpu, 0, "PC", 0x0603, "Pi", 0, "SP", 0xFD)
}

func TestIRQAfterSEI(t *testing.T) {
	// SEI
	cpu := loadCPUWith(t, irqDump+"\n0700: 78")
	cpu.PC = 0x0700
	cpu.P.clearFlags(Interrupt)
	cpu.SetIRQLine(IRQExternal, true)

	// The IRQ is serviced after SEI, with I set in the pushed P.
	wantStep(t, cpu, 2+7)
	runAndCheckState(t, cpu, 0,
		"PC", 0x3000,
		"mem", `01FB: 24 01 07 00`,
	)

	// RTI restores I, the line is still asserted but masked.
	wantStep(t, cpu, 6)
	runAndCheckState(t, cpu, 0, "PC", 0x0701, "Pi", 1)
}

func TestIRQAfterPLP(t *testing.T) {
	t.Run("set I", func(t *testing.T) {
		cpu := loadCPUWith(t, irqDump+"\n01FE: 04\n0700: 28")
		cpu.PC = 0x0700
		cpu.P.clearFlags(Interrupt)
		cpu.SetIRQLine(IRQDevice, true)

		wantStep(t, cpu, 4+7)
		runAndCheckState(t, cpu, 0, "PC", 0x3000, "SP", 0xFB)
		wantMem8(t, cpu, 0x01FC, 0x24)
	})
	t.Run("clear I", func(t *testing.T) {
		// PLP; NOP
		cpu := loadCPUWith(t, irqDump+"\n01FE: 00\n0700: 28 ea")
		cpu.PC = 0x0700
		cpu.SetIRQLine(IRQDevice, true)

		wantStep(t, cpu, 4)
		runAndCheckState(t, cpu, 0, "PC", 0x0701, "Pi", 0)
		wantStep(t, cpu, 2+7)
		runAndCheckState(t, cpu, 0, "PC", 0x3000)
	})
}

func TestIRQLevelTriggered(t *testing.T) {
	cpu := loadCPUWith(t, irqDump)
	cpu.PC = 0x0600
	cpu.P.clearFlags(Interrupt)
	cpu.SetIRQLine(IRQTimer, true)
	if !cpu.IRQLine(IRQTimer) || cpu.IRQLine(IRQExternal) {
		t.Fatalf("unexpected IRQ lines %03b", cpu.irqLines)
	}

	wantStep(t, cpu, 2+7)
	runAndCheckState(t, cpu, 0, "PC", 0x3000)

	// RTI takes effect immediately, the still asserted line fires again.
	wantStep(t, cpu, 6+7)
	runAndCheckState(t, cpu, 0, "PC", 0x3000, "SP", 0xFA)

	cpu.SetIRQLine(IRQTimer, false)
	wantStep(t, cpu, 6)
	runAndCheckState(t, cpu, 0, "PC", 0x0601, "SP", 0xFD)
}

type irqRecorder struct {
	nopDebugger
	prevpc, curpc []uint16
	nmi           []bool
}

func (d *irqRecorder) Interrupt(prevpc, curpc uint16, isNMI bool) {
	d.prevpc = append(d.prevpc, prevpc)
	d.curpc = append(d.curpc, curpc)
	d.nmi = append(d.nmi, isNMI)
}

func TestNMI(t *testing.T) {
	cpu := loadCPUWith(t, irqDump)
	cpu.PC = 0x0600
	dbg := &irqRecorder{}
	cpu.SetDebugger(dbg)

	// NMI ignores I.
	cpu.TriggerNMI()
	wantStep(t, cpu, 2+7)
	runAndCheckState(t, cpu, 0,
		"PC", 0x4000,
		"mem", `01FB: 24 01 06 00`,
	)

	if len(dbg.nmi) != 1 || !dbg.nmi[0] || dbg.prevpc[0] != 0x0601 || dbg.curpc[0] != 0x4000 {
		t.Errorf("debugger got prevpc=%04X curpc=%04X nmi=%v", dbg.prevpc, dbg.curpc, dbg.nmi)
	}

	wantStep(t, cpu, 6)
	runAndCheckState(t, cpu, 0, "PC", 0x0601)
}

func TestNMIPriority(t *testing.T) {
	cpu := loadCPUWith(t, irqDump)
	cpu.PC = 0x0600
	cpu.P.clearFlags(Interrupt)
	cpu.TriggerIRQ()
	cpu.TriggerNMI()

	wantStep(t, cpu, 2+7)
	runAndCheckState(t, cpu, 0, "PC", 0x4000)

	// Returning from the NMI handler restores I=0, the IRQ is then serviced.
	wantStep(t, cpu, 6+7)
	runAndCheckState(t, cpu, 0, "PC", 0x3000)
}

func TestBRKHijackedByNMI(t *testing.T) {
	cpu := loadCPUWith(t, irqDump+"\n0700: 00 ff")
	cpu.PC = 0x0700
	cpu.TriggerNMI()

	// The NMI is consumed by BRK.
	wantStep(t, cpu, 7)
	runAndCheckState(t, cpu, 0,
		"PC", 0x4000,
		"mem", `01FB: 34 02 07 00`,
	)

	wantStep(t, cpu, 6)
	runAndCheckState(t, cpu, 0, "PC", 0x0702)
}

func TestSetOverflow(t *testing.T) {
	cpu := loadCPUWith(t, ``)
	cpu.P.clearFlags(Overflow)
	cpu.SetOverflow()
	if !cpu.P.V() {
		t.Errorf("V not set by SetOverflow")
	}
}

func TestResetDropsPendingInterrupts(t *testing.T) {
	cpu := loadCPUWith(t, irqDump+"\nFFFC: 00 06")
	cpu.TriggerNMI()
	cpu.TriggerIRQ()
	cpu.Reset()
	cpu.P.clearFlags(Interrupt)

	wantStep(t, cpu, 2)
	runAndCheckState(t, cpu, 0, "PC", 0x0601)
}
