package main

import (
	"fmt"
	"io"

	"mos65/hw"
)

// opcodesMain prints the opcode table. Undocumented opcodes are marked with a
// '*', '+' marks a one cycle penalty when a page boundary is crossed.
func opcodesMain(w io.Writer) {
	fmt.Fprintln(w, "OP  NAME  MODE             LEN CYC")
	for i, op := range hw.Opcodes() {
		name := op.Name
		if !op.Official {
			name = "*" + name
		}
		cycles := fmt.Sprint(op.Cycles)
		if op.PageCross {
			cycles += "+"
		}
		fmt.Fprintf(w, "%02X  %-4s  %-15s  %d   %s\n", i, name, op.Mode, op.Mode.Len(), cycles)
	}
}
