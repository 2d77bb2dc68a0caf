package rpc

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeEmu struct {
	mu    sync.Mutex
	calls []string
}

func (e *fakeEmu) record(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, s)
}

func (e *fakeEmu) RequestReset() { e.record("reset") }
func (e *fakeEmu) Stop()         { e.record("stop") }
func (e *fakeEmu) SetPause(pause bool) {
	if pause {
		e.record("pause")
	} else {
		e.record("resume")
	}
}

func TestClientServer(t *testing.T) {
	emu := &fakeEmu{}
	port := UnusedPort()

	srv, err := NewServer(port, emu)
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	client, err := NewClient(port)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	ready, err := client.IsReady()
	if err != nil || !ready {
		t.Fatalf("IsReady() = %t, %v", ready, err)
	}
	for _, f := range []func() error{
		func() error { return client.SetPause(true) },
		func() error { return client.SetPause(false) },
		client.Reset,
		client.Stop,
	} {
		if err := f(); err != nil {
			t.Fatal(err)
		}
	}

	emu.mu.Lock()
	defer emu.mu.Unlock()
	want := []string{"pause", "resume", "reset", "stop"}
	if diff := cmp.Diff(want, emu.calls); diff != "" {
		t.Errorf("calls differ (-want +got):\n%s", diff)
	}
}
