package emu

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"mos65/emu/log"
)

type Config struct {
	CPU     CPUConfig      `toml:"cpu"`
	Memory  []MemoryConfig `toml:"memory"`
	Vectors VectorsConfig  `toml:"vectors"`
	Console ConsoleConfig  `toml:"console"`
	Run     RunConfig      `toml:"run"`
	Debug   DebugConfig    `toml:"debug"`
}

type CPUConfig struct {
	// StartPC, if set, overrides the reset vector.
	StartPC        *uint16 `toml:"start_pc,omitempty"`
	DisableDecimal bool    `toml:"disable_decimal"`
}

type MemoryKind string

const (
	RAM MemoryKind = "ram"
	ROM MemoryKind = "rom"
)

// MemoryConfig describes a memory region, mapped over [Start, End]. The
// physical buffer is Size bytes (a power of 2), mirrored over the region. If
// Size is 0 the buffer covers the whole region.
type MemoryConfig struct {
	Name   string     `toml:"name"`
	Start  uint16     `toml:"start"`
	End    uint16     `toml:"end"`
	Kind   MemoryKind `toml:"kind"`
	Size   int        `toml:"size,omitempty"`
	Image  string     `toml:"image,omitempty"`  // file loaded into the region
	Offset int        `toml:"offset,omitempty"` // load offset of Image in the buffer
}

func (mc *MemoryConfig) size() int {
	if mc.Size != 0 {
		return mc.Size
	}
	return int(mc.End) - int(mc.Start) + 1
}

// VectorsConfig holds optional values written at the top of the address
// space, after images have been loaded.
type VectorsConfig struct {
	NMI   *uint16 `toml:"nmi,omitempty"`
	Reset *uint16 `toml:"reset,omitempty"`
	IRQ   *uint16 `toml:"irq,omitempty"`
}

// ConsoleConfig configures the console device. Bytes written to Addr are
// sent to the machine output, reads return 0.
type ConsoleConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    uint16 `toml:"addr"`
}

type RunConfig struct {
	// MaxCycles stops the machine after that many cycles. 0 means no limit.
	MaxCycles int64 `toml:"max_cycles"`
	// Trap stops the machine when an instruction jumps to itself.
	Trap bool `toml:"trap"`
	// IRQEvery triggers an IRQ every IRQEvery cycles. 0 disables it.
	IRQEvery int64 `toml:"irq_every,omitempty"`
}

type DebugConfig struct {
	Breakpoints []uint16 `toml:"breakpoints,omitempty"`
	WatchReads  []uint16 `toml:"watch_reads,omitempty"`
	WatchWrites []uint16 `toml:"watch_writes,omitempty"`
}

// DefaultConfig is a machine with 64KiB of RAM.
func DefaultConfig() Config {
	return Config{
		Memory: []MemoryConfig{
			{Name: "ram", Start: 0x0000, End: 0xFFFF, Kind: RAM},
		},
		Run: RunConfig{Trap: true},
	}
}

// Check verifies the configuration is consistent.
func (cfg *Config) Check() error {
	if len(cfg.Memory) == 0 {
		return fmt.Errorf("no memory region")
	}

	names := make(map[string]bool)
	for i, mc := range cfg.Memory {
		if mc.Name == "" {
			return fmt.Errorf("memory[%d]: missing name", i)
		}
		if names[mc.Name] {
			return fmt.Errorf("memory[%d]: duplicate region name %q", i, mc.Name)
		}
		names[mc.Name] = true

		switch mc.Kind {
		case RAM, ROM:
		default:
			return fmt.Errorf("memory %q: invalid kind %q", mc.Name, mc.Kind)
		}
		if mc.End < mc.Start {
			return fmt.Errorf("memory %q: end $%04X before start $%04X", mc.Name, mc.End, mc.Start)
		}
		size := mc.size()
		if size <= 0 || size&(size-1) != 0 {
			return fmt.Errorf("memory %q: size %d is not a power of 2", mc.Name, size)
		}
		if size > int(mc.End)-int(mc.Start)+1 {
			return fmt.Errorf("memory %q: size %d larger than region", mc.Name, size)
		}
		if mc.Offset < 0 || mc.Offset >= size {
			return fmt.Errorf("memory %q: offset %d out of region", mc.Name, mc.Offset)
		}
	}
	if cfg.Run.MaxCycles < 0 || cfg.Run.IRQEvery < 0 {
		return fmt.Errorf("run: negative cycle count")
	}
	return nil
}

// LoadConfig decodes the TOML configuration file at path. Relative image
// paths are resolved from the directory of the configuration file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		log.ModEmu.Warnf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	dir := filepath.Dir(path)
	for i := range cfg.Memory {
		if img := cfg.Memory[i].Image; img != "" && !filepath.IsAbs(img) {
			cfg.Memory[i].Image = filepath.Join(dir, img)
		}
	}

	if err := cfg.Check(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as TOML to path.
func SaveConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, buf, 0644)
}

// ConfigDir returns the user configuration directory of mos65.
var ConfigDir = sync.OnceValue(func() string {
	return configdir.LocalConfig("mos65")
})

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the mos65 config directory,
// or provide the default one if there's none.
func LoadConfigOrDefault() Config {
	path := filepath.Join(ConfigDir(), cfgFilename)
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig()
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		log.ModEmu.Warnf("using default config: %s", err)
		return DefaultConfig()
	}
	return cfg
}
