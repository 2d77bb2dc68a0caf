package hw

import (
	"bytes"
	"strings"
	"testing"
)

type dummyDisasm map[uint16]DisasmOp

func (dd dummyDisasm) Disasm(pc uint16) DisasmOp {
	return dd[pc]
}

func TestTraceFormat(t *testing.T) {
	want := []string{
		`E052  A9 32     LDA #$32                        A:00 X:01 Y:00 P:27 SP:F4 CYC:8`,
		`E054  20 EE E0  JSR $E0EE                       A:32 X:01 Y:00 P:25 SP:F4 CYC:10`,
	}

	var out bytes.Buffer

	tr := tracer{
		d: dummyDisasm{
			0xE052: DisasmOp{
				PC:     0xE052,
				Buf:    []byte{0xA9, 0x32},
				Opcode: "LDA",
				Oper:   "#$32",
			},
			0xE054: DisasmOp{
				PC:     0xE054,
				Buf:    []byte{0x20, 0xEE, 0xE0},
				Opcode: "JSR",
				Oper:   "$E0EE",
			},
		},
		w: &out,
	}

	tr.write(cpuState{A: 0x00, X: 0x01, Y: 0x00, P: 0x27, SP: 0xF4, PC: 0xE052, Clock: 8})
	tr.write(cpuState{A: 0x32, X: 0x01, Y: 0x00, P: 0x25, SP: 0xF4, PC: 0xE054, Clock: 10})

	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d:\ngot:  %q\nwant: %q", i, got[i], want[i])
		}
	}
}

func TestTraceOutput(t *testing.T) {
	// LDA #$32; TAX
	cpu := loadCPUWith(t, `0600: a9 32 aa`)
	cpu.PC = 0x0600

	var out bytes.Buffer
	cpu.SetTraceOutput(&out)
	cpu.Run(4)
	cpu.SetTraceOutput(nil)
	cpu.Step()

	want := "0600  A9 32     LDA #$32                        A:00 X:00 Y:00 P:24 SP:FD CYC:7\n" +
		"0602  AA        TAX                             A:32 X:00 Y:00 P:24 SP:FD CYC:9\n"
	if out.String() != want {
		t.Errorf("got trace:\n%s\nwant:\n%s", out.String(), want)
	}
}
