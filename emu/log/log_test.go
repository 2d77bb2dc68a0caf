package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestModuleByName(t *testing.T) {
	mod, ok := ModuleByName("cpu")
	if !ok || mod != ModCPU {
		t.Fatalf("ModuleByName(cpu) = %v, %t", mod, ok)
	}
	if _, ok := ModuleByName("<error>"); ok {
		t.Errorf("placeholder module name should not resolve")
	}
	if _, ok := ModuleByName("nope"); ok {
		t.Errorf("unknown module should not resolve")
	}
}

func TestNewModule(t *testing.T) {
	mod := NewModule("testmod")
	if mod.String() != "testmod" {
		t.Errorf("got name %q, want testmod", mod.String())
	}
	found := false
	for _, n := range ModuleNames() {
		if n == "testmod" {
			found = true
		}
	}
	if !found {
		t.Errorf("testmod not listed in ModuleNames()")
	}
}

func TestDebugMask(t *testing.T) {
	t.Cleanup(func() { DisableDebugModules(ModuleMaskAll) })

	if ModCPU.Enabled(DebugLevel) {
		t.Fatal("cpu debug logs should be disabled by default")
	}
	if !ModCPU.Enabled(WarnLevel) {
		t.Fatal("warnings should always be enabled")
	}
	if ModCPU.DebugZ("msg") != nil {
		t.Fatal("DebugZ should return nil for a disabled module")
	}
	// Must not panic on a nil entry.
	ModCPU.DebugZ("msg").Hex16("pc", 0x1234).Bool("b", true).End()

	EnableDebugModules(ModCPU.Mask())
	if !ModCPU.Enabled(DebugLevel) {
		t.Fatal("cpu debug logs should be enabled")
	}
	if ModHwIo.Enabled(DebugLevel) {
		t.Fatal("hwio debug logs should still be disabled")
	}
}

func TestEntryOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { DisableDebugModules(ModuleMaskAll) })

	EnableDebugModules(ModBus.Mask())
	ModBus.DebugZ("unmapped read").
		Hex16("addr", 0xC000).
		Hex8("val", 0x0F).
		Error("err", errors.New("boom")).
		End()

	out := buf.String()
	for _, want := range []string{"unmapped read", "addr=c000", "val=0f", "err=boom", "_mod=bus"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q doesn't contain %q", out, want)
		}
	}
}
