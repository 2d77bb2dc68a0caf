package hw

// P is the processor status register.
//
// Bit 5 (Reserved) has no storage on the chip and always reads as 1. Every
// path writing a full byte into P goes through UnpackP, flag updates never
// touch bit 5.
type P uint8

const (
	Carry P = 1 << iota
	Zero
	Interrupt
	Decimal
	Break
	Reserved
	Overflow
	Negative
)

// UnpackP converts a status byte (as pulled from the stack or provided by a
// test harness) into a P value, forcing the reserved bit.
func UnpackP(b uint8) P {
	return P(b) | Reserved
}

// Pack returns the byte representation of p, with bit 5 set.
func (p P) Pack() uint8 {
	return uint8(p | Reserved)
}

func (p P) Has(flags P) bool {
	return p&flags == flags
}

// Set sets or clears flags depending on v.
func (p *P) Set(flags P, v bool) {
	if v {
		*p |= flags &^ Reserved
	} else {
		*p &^= flags &^ Reserved
	}
}

func (p *P) setFlags(flags P)   { p.Set(flags, true) }
func (p *P) clearFlags(flags P) { p.Set(flags, false) }

// setNZ sets N to bit 7 of val and Z if val is 0.
func (p *P) setNZ(val uint8) {
	*p &^= Zero | Negative
	if val == 0 {
		*p |= Zero
	}
	*p |= P(val) & Negative
}

func (p P) carry() uint8 {
	return uint8(p & Carry)
}

func (p P) N() bool { return p&Negative != 0 }
func (p P) V() bool { return p&Overflow != 0 }
func (p P) B() bool { return p&Break != 0 }
func (p P) D() bool { return p&Decimal != 0 }
func (p P) I() bool { return p&Interrupt != 0 }
func (p P) Z() bool { return p&Zero != 0 }
func (p P) C() bool { return p&Carry != 0 }

func (p P) String() string {
	const bits = "nvubdizcNVUBDIZC"

	s := make([]byte, 8)
	for i := 0; i < 8; i++ {
		ibit := (uint8(p) & (1 << (7 - i))) >> (7 - i)
		s[i] = bits[i+int(8*ibit)]
	}
	return string(s)
}
