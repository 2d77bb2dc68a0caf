// Package emu assembles a 6502 machine out of a configuration: memory
// regions, program images, vectors and devices, and runs it.
package emu

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"mos65/emu/debugger"
	"mos65/emu/log"
	"mos65/hw"
	"mos65/hw/hwio"
)

//go:generate go tool stringer -type=StopReason -trimprefix=Stop

// StopReason tells why Run returned.
type StopReason uint8

const (
	StopBudget   StopReason = iota // cycle budget exhausted
	StopTrap                       // an instruction jumped to itself
	StopDebug                      // debugger event, see RunResult.Event
	StopCanceled                   // context canceled or Stop called
)

type RunResult struct {
	Reason StopReason
	Cycles int64  // cycles elapsed during the run
	PC     uint16 // PC at the time the machine stopped
	Event  debugger.Event
}

func (r RunResult) String() string {
	s := fmt.Sprintf("%s at $%04X after %d cycles", r.Reason, r.PC, r.Cycles)
	if r.Reason == StopDebug {
		s += " (" + r.Event.String() + ")"
	}
	return s
}

type region struct {
	cfg  MemoryConfig
	data []byte
}

type Machine struct {
	CPU *hw.CPU
	Bus *hwio.Table

	// Debugger is nil unless EnableDebugger has been called.
	Debugger *debugger.Debugger

	cfg     Config
	regions []region
	console *Console

	nextIRQ int64

	// These are accessed concurrently by the run loop and remote controllers.
	quit   atomic.Bool
	paused atomic.Bool
	reset  atomic.Bool
}

// NewMachine creates a machine from cfg and resets it. Console output, if
// enabled, is written to out.
func NewMachine(cfg Config, out io.Writer) (*Machine, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	m := &Machine{
		cfg: cfg,
		Bus: hwio.NewTable("cpu"),
	}

	for _, mc := range cfg.Memory {
		r := region{cfg: mc, data: make([]byte, mc.size())}
		if mc.Image != "" {
			img, err := os.ReadFile(mc.Image)
			if err != nil {
				return nil, fmt.Errorf("memory %q: %w", mc.Name, err)
			}
			if len(img) > len(r.data)-mc.Offset {
				return nil, fmt.Errorf("memory %q: image %s too large (%d bytes at offset %d, region holds %d)",
					mc.Name, mc.Image, len(img), mc.Offset, len(r.data))
			}
			copy(r.data[mc.Offset:], img)
		}

		var flags hwio.MemFlags
		if mc.Kind == ROM {
			flags |= hwio.MemFlag8ReadOnly
		}
		m.Bus.MapMem(mc.Start, &hwio.Mem{
			Name:  mc.Name,
			Data:  r.data,
			VSize: int(mc.End) - int(mc.Start) + 1,
			Flags: flags,
		})
		m.regions = append(m.regions, r)
	}

	if cfg.Console.Enabled {
		m.console = NewConsole(out)
		m.Bus.MapDevice(cfg.Console.Addr, m.console.Device())
	}

	m.pokeVector(hw.NMIVector, cfg.Vectors.NMI)
	m.pokeVector(hw.ResetVector, cfg.Vectors.Reset)
	m.pokeVector(hw.IRQVector, cfg.Vectors.IRQ)

	m.CPU = hw.NewCPU(m.Bus)
	m.CPU.DisableDecimal = cfg.CPU.DisableDecimal

	dbg := cfg.Debug
	if len(dbg.Breakpoints)+len(dbg.WatchReads)+len(dbg.WatchWrites) > 0 {
		d := m.EnableDebugger()
		for _, addr := range dbg.Breakpoints {
			d.SetBreakpoint(addr)
		}
		for _, addr := range dbg.WatchReads {
			d.Watch(addr, true, false)
		}
		for _, addr := range dbg.WatchWrites {
			d.Watch(addr, false, true)
		}
	}

	m.Reset()
	return m, nil
}

func (m *Machine) pokeVector(addr uint16, val *uint16) {
	if val == nil {
		return
	}
	if !m.Bus.Mapped(addr) {
		log.ModEmu.WarnZ("vector not mapped to memory").Hex16("addr", addr).End()
		return
	}
	m.Bus.Poke8(addr, uint8(*val))
	m.Bus.Poke8(addr+1, uint8(*val>>8))
}

// EnableDebugger attaches a debugger to the CPU, if there's none yet, and
// returns it.
func (m *Machine) EnableDebugger() *debugger.Debugger {
	if m.Debugger == nil {
		m.Debugger = debugger.New(m.CPU)
	}
	return m.Debugger
}

// LoadImage copies data into memory at addr, ROM included.
func (m *Machine) LoadImage(addr uint16, data []byte) error {
	if int(addr)+len(data) > 0x10000 {
		return fmt.Errorf("image of %d bytes doesn't fit at $%04X", len(data), addr)
	}
	for i, b := range data {
		m.Bus.Poke8(addr+uint16(i), b)
	}

	log.ModEmu.InfoZ("image loaded").
		Hex16("addr", addr).
		Int("size", len(data)).
		End()
	return nil
}

// Reset runs the CPU reset sequence. If the configuration overrides the
// start address, PC is set to it afterwards.
func (m *Machine) Reset() {
	m.CPU.Reset()
	if m.cfg.CPU.StartPC != nil {
		m.CPU.PC = *m.cfg.CPU.StartPC
	}
	m.nextIRQ = m.CPU.Cycles + m.cfg.Run.IRQEvery

	log.ModEmu.InfoZ("machine reset").Hex16("pc", m.CPU.PC).End()
}

// Stop, SetPause and RequestReset control the run loop in a concurrent-safe
// way. They take effect at the next instruction boundary.

func (m *Machine) Stop()               { m.quit.Store(true) }
func (m *Machine) SetPause(pause bool) { m.paused.Store(pause) }
func (m *Machine) RequestReset()       { m.reset.Store(true) }

// waitResume blocks while the machine is paused. It returns false if the
// machine has been stopped or ctx canceled in the meantime.
func (m *Machine) waitResume(ctx context.Context) bool {
	for m.paused.Load() {
		if ctx.Err() != nil || m.quit.CompareAndSwap(true, false) {
			return false
		}
		// Don't burn cpu while paused.
		time.Sleep(10 * time.Millisecond)
	}
	return true
}

// how many instructions are executed between checks of the context.
const ctxCheckInterval = 1024

// Run executes instructions until maxCycles cycles have elapsed (0 means no
// limit), a trap is detected (if enabled), the debugger reports an event or
// ctx is canceled. Reset requests are honored between instructions.
func (m *Machine) Run(ctx context.Context, maxCycles int64) RunResult {
	start := m.CPU.Cycles
	irqEvery := m.cfg.Run.IRQEvery

	stop := func(reason StopReason) RunResult {
		res := RunResult{
			Reason: reason,
			Cycles: m.CPU.Cycles - start,
			PC:     m.CPU.PC,
		}
		log.ModEmu.InfoZ("machine stopped").
			Stringer("reason", reason).
			Hex16("pc", res.PC).
			Uint64("cycles", uint64(res.Cycles)).
			End()
		return res
	}

	for n := 0; ; n++ {
		if n%ctxCheckInterval == 0 && ctx.Err() != nil {
			return stop(StopCanceled)
		}
		if m.quit.CompareAndSwap(true, false) {
			return stop(StopCanceled)
		}
		if m.paused.Load() && !m.waitResume(ctx) {
			return stop(StopCanceled)
		}
		if m.reset.CompareAndSwap(true, false) {
			m.Reset()
		}
		if maxCycles > 0 && m.CPU.Cycles-start >= maxCycles {
			return stop(StopBudget)
		}

		pc := m.CPU.PC
		if m.Debugger != nil {
			if ev, ok := m.Debugger.Check(pc); ok {
				res := stop(StopDebug)
				res.Event = ev
				return res
			}
		}

		m.CPU.Step()

		// With periodic interrupts enabled, a program can legitimately wait
		// for them in a 'JMP *' loop.
		if m.cfg.Run.Trap && m.CPU.PC == pc && (irqEvery == 0 || m.CPU.P.I()) {
			return stop(StopTrap)
		}

		if irqEvery > 0 && m.CPU.Cycles >= m.nextIRQ {
			m.CPU.TriggerIRQ()
			m.nextIRQ += irqEvery
		}
	}
}
