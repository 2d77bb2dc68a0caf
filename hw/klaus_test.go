package hw

import (
	"os"
	"testing"

	"mos65/tests"
)

func TestKlausFunctional(t *testing.T) {
	if os.Getenv("MOS65_KLAUS") == "" {
		t.Skip("set MOS65_KLAUS=1 to run Klaus Dormann's functional test")
	}

	bus, ram := newRAMBus()
	copy(ram, tests.KlausFunctionalTest(t))

	cpu := NewCPU(bus)
	cpu.Reset()
	cpu.PC = tests.KlausFunctionalEntry

	// The test traps on failure and success with a jump to self.
	const maxCycles = 200_000_000
	for cpu.Cycles < maxCycles {
		pc := cpu.PC
		cpu.Step()
		if cpu.PC == pc {
			break
		}
	}

	if cpu.PC != tests.KlausFunctionalSuccess {
		t.Fatalf("trapped at $%04X after %d cycles (test case $%02X)", cpu.PC, cpu.Cycles, ram[0x0200])
	}
}
