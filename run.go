package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"mos65/emu"
	"mos65/emu/rpc"
	"mos65/hw"
)

// runMain builds the machine described by the configuration, loads the
// program and runs it until it stops.
func runMain(args Run) {
	cfg := emu.LoadConfigOrDefault()
	if args.Config != "" {
		var err error
		cfg, err = emu.LoadConfig(args.Config)
		checkf(err, "failed to load configuration")
	}
	applyRunFlags(&cfg, args)

	m, err := emu.NewMachine(cfg, os.Stdout)
	checkf(err, "failed to create machine")

	if args.ImagePath != "" {
		img, err := os.ReadFile(args.ImagePath)
		checkf(err, "failed to read image")
		checkf(m.LoadImage(addrOr(args.Load, 0), img), "failed to load image")
		m.Reset()
	}
	if args.LoadState != "" {
		checkf(m.LoadState(args.LoadState), "failed to restore state")
	}
	if args.Entry != nil {
		m.CPU.PC = uint16(*args.Entry)
	}

	if args.Trace != nil {
		w := bufio.NewWriterSize(args.Trace, 64*1024)
		m.CPU.SetTraceOutput(w)
		defer func() {
			checkf(w.Flush(), "failed to write trace")
			args.Trace.Close()
		}()
	}

	if args.RPCPort != 0 {
		server, err := rpc.NewServer(args.RPCPort, m)
		checkf(err, "failed to start rpc server")
		defer server.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res := m.Run(ctx, cfg.Run.MaxCycles)
	printStop(os.Stderr, m, res)

	if args.SaveState != "" {
		checkf(m.SaveState(args.SaveState), "failed to save state")
	}
}

func applyRunFlags(cfg *emu.Config, args Run) {
	if args.Cycles > 0 {
		cfg.Run.MaxCycles = args.Cycles
	}
	if args.IRQEvery > 0 {
		cfg.Run.IRQEvery = args.IRQEvery
	}
	if args.NoTrap {
		cfg.Run.Trap = false
	}
	for _, s := range args.Break {
		addr, err := parseAddr(s)
		checkf(err, "invalid breakpoint")
		cfg.Debug.Breakpoints = append(cfg.Debug.Breakpoints, addr)
	}
}

func printStop(w io.Writer, m *emu.Machine, res emu.RunResult) {
	fmt.Fprintf(w, "stopped: %s\n", res)

	regs := m.CPU.Registers()
	fmt.Fprintf(w, "PC:%04X A:%02X X:%02X Y:%02X SP:%02X P:%s CYC:%d\n",
		regs.PC, regs.A, regs.X, regs.Y, regs.SP, regs.P, m.CPU.Cycles)
	fmt.Fprintf(w, "next: %s\n", hw.Disassemble(m.Bus, regs.PC))

	if m.Debugger != nil {
		fmt.Fprintln(w, "call stack:")
		for _, f := range m.Debugger.CallStack() {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
}
