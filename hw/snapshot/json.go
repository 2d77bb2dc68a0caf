package snapshot

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

func (c *CPU) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.Field("pc", func(e *jx.Encoder) { e.UInt16(c.PC) })
	e.Field("sp", func(e *jx.Encoder) { e.UInt8(c.SP) })
	e.Field("p", func(e *jx.Encoder) { e.UInt8(c.P) })
	e.Field("a", func(e *jx.Encoder) { e.UInt8(c.A) })
	e.Field("x", func(e *jx.Encoder) { e.UInt8(c.X) })
	e.Field("y", func(e *jx.Encoder) { e.UInt8(c.Y) })
	e.Field("cycles", func(e *jx.Encoder) { e.Int64(c.Cycles) })
	e.Field("nmi_pending", func(e *jx.Encoder) { e.Bool(c.NMIPending) })
	e.Field("irq_latch", func(e *jx.Encoder) { e.Bool(c.IRQLatch) })
	e.Field("irq_lines", func(e *jx.Encoder) { e.UInt8(c.IRQLines) })
	e.ObjEnd()
}

func (c *CPU) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "pc":
			c.PC, err = d.UInt16()
		case "sp":
			c.SP, err = d.UInt8()
		case "p":
			c.P, err = d.UInt8()
		case "a":
			c.A, err = d.UInt8()
		case "x":
			c.X, err = d.UInt8()
		case "y":
			c.Y, err = d.UInt8()
		case "cycles":
			c.Cycles, err = d.Int64()
		case "nmi_pending":
			c.NMIPending, err = d.Bool()
		case "irq_latch":
			c.IRQLatch, err = d.Bool()
		case "irq_lines":
			c.IRQLines, err = d.UInt8()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	})
}

func (r *Region) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.Field("name", func(e *jx.Encoder) { e.Str(r.Name) })
	e.Field("data", func(e *jx.Encoder) { e.Base64(r.Data) })
	e.ObjEnd()
}

func (r *Region) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			r.Name, err = d.Str()
		case "data":
			r.Data, err = d.Base64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	})
}

func (m *Machine) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.Field("version", func(e *jx.Encoder) { e.Int(m.Version) })
	if m.CPU != nil {
		e.Field("cpu", m.CPU.Encode)
	}
	e.Field("mem", func(e *jx.Encoder) {
		e.ArrStart()
		for i := range m.Mem {
			m.Mem[i].Encode(e)
		}
		e.ArrEnd()
	})
	e.ObjEnd()
}

func (m *Machine) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "version":
			v, err := d.Int()
			if err != nil {
				return errors.Wrap(err, "version")
			}
			if v != Version {
				return errors.Errorf("unsupported snapshot version %d", v)
			}
			m.Version = v
			return nil
		case "cpu":
			m.CPU = &CPU{}
			if err := m.CPU.Decode(d); err != nil {
				return errors.Wrap(err, "cpu")
			}
			return nil
		case "mem":
			return d.Arr(func(d *jx.Decoder) error {
				var r Region
				if err := r.Decode(d); err != nil {
					return errors.Wrapf(err, "mem[%d]", len(m.Mem))
				}
				m.Mem = append(m.Mem, r)
				return nil
			})
		}
		return d.Skip()
	})
}

func (c *CPU) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	c.Encode(&e)
	return e.Bytes(), nil
}

func (c *CPU) UnmarshalJSON(data []byte) error {
	return c.Decode(jx.DecodeBytes(data))
}

// Save writes m as JSON to w.
func Save(w io.Writer, m *Machine) error {
	var e jx.Encoder
	e.SetIdent(2)
	m.Encode(&e)
	if _, err := w.Write(e.Bytes()); err != nil {
		return errors.Wrap(err, "write snapshot")
	}
	return nil
}

// Load reads a snapshot written by Save.
func Load(r io.Reader) (*Machine, error) {
	m := &Machine{}
	if err := m.Decode(jx.Decode(r, 4096)); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	if m.CPU == nil {
		return nil, errors.New("decode snapshot: missing cpu state")
	}
	return m, nil
}
