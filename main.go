package main

import (
	"os"
)

func main() {
	cfg := parseArgs(os.Args[1:])

	switch cfg.mode {
	case runMode:
		runMain(cfg.Run)
	case disasmMode:
		disasmMain(cfg.Disasm)
	case opcodesMode:
		opcodesMain(os.Stdout)
	case versionMode:
		versionMain(os.Stdout)
	}
}
