package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"mos65/emu/log"
)

type mode byte

const (
	runMode     mode = iota // Run a program
	disasmMode              // Disassemble a program image
	opcodesMode             // Show the opcode table
	versionMode             // Show mos65 version
)

type (
	CLI struct {
		Run     Run     `cmd:"" help:"Run a program in the emulator."`
		Disasm  Disasm  `cmd:"" help:"Disassemble a program image."`
		Opcodes Opcodes `cmd:"" help:"Show the opcode table."`
		Version Version `cmd:"" help:"Show mos65 version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		ImagePath string `arg:"" optional:"" name:"/path/to/image" help:"${image_help}" type:"existingfile"`

		Config    string   `name:"config" help:"${config_help}" type:"existingfile"`
		Load      *address `name:"load" help:"Address the image is loaded at (default $0000)." placeholder:"ADDR"`
		Entry     *address `name:"entry" help:"Start execution at ADDR instead of the reset vector." placeholder:"ADDR"`
		Cycles    int64    `name:"cycles" help:"Stop after N cycles (overrides the configuration)." placeholder:"N"`
		NoTrap    bool     `name:"no-trap" help:"Don't stop when an instruction jumps to itself."`
		IRQEvery  int64    `name:"irq-every" help:"Trigger an IRQ every N cycles." placeholder:"N"`
		Break     []string `name:"break" help:"Stop when PC reaches ADDR." placeholder:"ADDR" sep:","`
		Trace     *outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
		SaveState string   `name:"save-state" help:"Save machine state to FILE when stopped." type:"path" placeholder:"FILE"`
		LoadState string   `name:"load-state" help:"Restore machine state from FILE before running." type:"existingfile" placeholder:"FILE"`
		RPCPort   int      `name:"rpc-port" help:"Accept remote control requests on localhost:PORT." placeholder:"PORT"`
	}

	Disasm struct {
		ImagePath string `arg:"" name:"/path/to/image" type:"existingfile"`

		Load  *address `name:"load" help:"Address the image is loaded at (default $0000)." placeholder:"ADDR"`
		Start *address `name:"start" help:"Address to start disassembling from (default: load address)." placeholder:"ADDR"`
		Count int      `name:"count" help:"Number of instructions." default:"32"`
	}

	Opcodes struct{}

	Version struct{}
)

var vars = kong.Vars{
	"image_help":  "Raw binary image to load in memory.",
	"config_help": "Machine configuration file (TOML).",
	"log_help":    "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("mos65"),
		kong.Description("MOS 6502 emulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch {
	case strings.HasPrefix(ctx.Command(), "disasm"):
		cfg.mode = disasmMode
	case ctx.Command() == "opcodes":
		cfg.mode = opcodesMode
	case ctx.Command() == "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.

Addresses:
  ADDR values are hexadecimal, with an optional '$' or '0x' prefix.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	mask, nolog, err := parseLogModules(tok.Value.(string))
	if err != nil {
		return err
	}
	if nolog {
		log.Disable()
		return nil
	}

	log.EnableDebugModules(mask)
	return nil
}

func parseLogModules(s string) (mask log.ModuleMask, nolog bool, err error) {
	allLogs := false
	for _, v := range strings.Split(s, ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return 0, false, fmt.Errorf("unknown log module %s", v)
			}
			mask |= mod.Mask()
		}
	}

	if nolog {
		if allLogs {
			return 0, false, fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if mask != 0 {
			return 0, false, fmt.Errorf("cannot combine 'no' with other log modules")
		}
		return 0, true, nil
	}

	if allLogs {
		mask = log.ModuleMaskAll
	}
	return mask, false, nil
}

// address is a 16-bit hexadecimal address.
type address uint16

// Decode implements kong.MapperValue interface.
func (a *address) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	s, ok := tok.Value.(string)
	if !ok {
		return fmt.Errorf("expected an address, got %v", tok.Value)
	}
	v, err := parseAddr(s)
	if err != nil {
		return err
	}
	*a = address(v)
	return nil
}

func parseAddr(s string) (uint16, error) {
	hex := strings.TrimPrefix(s, "$")
	hex = strings.TrimPrefix(strings.TrimPrefix(hex, "0x"), "0X")
	v, err := strconv.ParseUint(hex, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}

func addrOr(a *address, def uint16) uint16 {
	if a == nil {
		return def
	}
	return uint16(*a)
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n\t"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
