package emu

import (
	"bytes"
	"os"
	"slices"

	"github.com/go-faster/errors"

	"mos65/emu/log"
	"mos65/hw/snapshot"
)

// Snapshot captures the CPU state and the content of the RAM regions.
func (m *Machine) Snapshot() *snapshot.Machine {
	snap := &snapshot.Machine{
		Version: snapshot.Version,
		CPU:     m.CPU.State(),
	}
	for _, r := range m.regions {
		if r.cfg.Kind != RAM {
			continue
		}
		snap.Mem = append(snap.Mem, snapshot.Region{
			Name: r.cfg.Name,
			Data: slices.Clone(r.data),
		})
	}
	return snap
}

// Restore sets the machine state from snap. Regions are matched by name and
// must have the same size. The machine is left untouched on error.
func (m *Machine) Restore(snap *snapshot.Machine) error {
	if snap.CPU == nil {
		return errors.New("restore: missing cpu state")
	}

	dst := make([][]byte, len(snap.Mem))
	for i, sr := range snap.Mem {
		idx := slices.IndexFunc(m.regions, func(r region) bool {
			return r.cfg.Name == sr.Name
		})
		if idx == -1 {
			return errors.Errorf("restore: unknown memory region %q", sr.Name)
		}
		r := m.regions[idx]
		if r.cfg.Kind != RAM {
			return errors.Errorf("restore: memory region %q is not ram", sr.Name)
		}
		if len(sr.Data) != len(r.data) {
			return errors.Errorf("restore: memory region %q: size mismatch (%d != %d)",
				sr.Name, len(sr.Data), len(r.data))
		}
		dst[i] = r.data
	}

	for i, sr := range snap.Mem {
		copy(dst[i], sr.Data)
	}
	m.CPU.SetState(snap.CPU)
	m.nextIRQ = m.CPU.Cycles + m.cfg.Run.IRQEvery
	return nil
}

// SaveState writes a snapshot of the machine to path.
func (m *Machine) SaveState(path string) error {
	var buf bytes.Buffer
	if err := snapshot.Save(&buf, m.Snapshot()); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(err, "save state")
	}

	log.ModEmu.InfoZ("state saved").String("path", path).Int("size", buf.Len()).End()
	return nil
}

// LoadState restores the machine from a snapshot file written by SaveState.
func (m *Machine) LoadState(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "load state")
	}
	defer f.Close()

	snap, err := snapshot.Load(f)
	if err != nil {
		return errors.Wrapf(err, "load state %s", path)
	}
	if err := m.Restore(snap); err != nil {
		return err
	}

	log.ModEmu.InfoZ("state loaded").String("path", path).Hex16("pc", m.CPU.PC).End()
	return nil
}
