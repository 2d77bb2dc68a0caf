package tests

import (
	"fmt"
	"io"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// CPUState is the processor and memory state before or after a single-step
// test case.
type CPUState struct {
	PC      uint16
	S       uint8
	A, X, Y uint8
	P       uint8
	RAM     []RAMCell
}

type RAMCell struct {
	Addr uint16
	Val  uint8
}

// SingleStepCase is a SingleStepTests test case. Only the number of bus
// cycles is kept from the cycle-by-cycle trace.
type SingleStepCase struct {
	Name    string
	Initial CPUState
	Final   CPUState
	Cycles  int
}

// LoadSingleStep decodes the test cases of a SingleStepTests JSON file.
func LoadSingleStep(path string) ([]SingleStepCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cases, err := DecodeSingleStep(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

func DecodeSingleStep(r io.Reader) ([]SingleStepCase, error) {
	var cases []SingleStepCase
	d := jx.Decode(r, 64*1024)
	err := d.Arr(func(d *jx.Decoder) error {
		var tc SingleStepCase
		if err := tc.decode(d); err != nil {
			return errors.Wrapf(err, "case %d", len(cases))
		}
		cases = append(cases, tc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (tc *SingleStepCase) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "name":
			s, err := d.Str()
			tc.Name = s
			return err
		case "initial":
			return tc.Initial.decode(d)
		case "final":
			return tc.Final.decode(d)
		case "cycles":
			return d.Arr(func(d *jx.Decoder) error {
				tc.Cycles++
				return d.Skip()
			})
		}
		return d.Skip()
	})
}

func (s *CPUState) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "pc":
			s.PC, err = d.UInt16()
		case "s":
			s.S, err = d.UInt8()
		case "a":
			s.A, err = d.UInt8()
		case "x":
			s.X, err = d.UInt8()
		case "y":
			s.Y, err = d.UInt8()
		case "p":
			s.P, err = d.UInt8()
		case "ram":
			err = d.Arr(func(d *jx.Decoder) error {
				var cell RAMCell
				i := 0
				err := d.Arr(func(d *jx.Decoder) error {
					var err error
					switch i {
					case 0:
						cell.Addr, err = d.UInt16()
					case 1:
						cell.Val, err = d.UInt8()
					default:
						err = d.Skip()
					}
					i++
					return err
				})
				if err != nil {
					return err
				}
				if i < 2 {
					return errors.Errorf("ram cell with %d values", i)
				}
				s.RAM = append(s.RAM, cell)
				return nil
			})
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "%q", key)
		}
		return nil
	})
}
