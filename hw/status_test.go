package hw

import "testing"

func TestPString(t *testing.T) {
	p := P(0b00110100)
	if got := p.String(); got != "nvUBdIzc" {
		t.Errorf("got P = %s, want %s", got, "nvUBdIzc")
	}
	p = P(0b11000011)
	if got := p.String(); got != "NVubdiZC" {
		t.Errorf("got P = %s, want %s", got, "NVubdiZC")
	}
}

func TestPackUnpackP(t *testing.T) {
	for b := 0; b < 256; b++ {
		p := UnpackP(uint8(b))
		if got, want := p.Pack(), uint8(b)|0x20; got != want {
			t.Errorf("UnpackP(%02X).Pack() = %02X, want %02X", b, got, want)
		}
		if !p.Has(Reserved) {
			t.Errorf("UnpackP(%02X) = %s, reserved bit is clear", b, p)
		}
	}
}

func TestPSet(t *testing.T) {
	p := UnpackP(0)

	p.Set(Carry|Negative, true)
	if p != 0xA1 {
		t.Errorf("got P = %s, want %s", p, P(0xA1))
	}

	// Reserved can't be cleared through flag updates.
	p.Set(Reserved|Carry, false)
	if p != 0xA0 {
		t.Errorf("got P = %s, want %s", p, P(0xA0))
	}

	p.setFlags(Interrupt)
	p.clearFlags(Negative)
	if !p.I() || p.N() {
		t.Errorf("got P = %s, want I set and N clear", p)
	}
}

func TestSetNZ(t *testing.T) {
	tests := []struct {
		val  uint8
		n, z bool
	}{
		{0x00, false, true},
		{0x01, false, false},
		{0x7F, false, false},
		{0x80, true, false},
		{0xFF, true, false},
	}
	for _, tt := range tests {
		p := UnpackP(uint8(Negative | Zero | Carry))
		p.setNZ(tt.val)
		if p.N() != tt.n || p.Z() != tt.z {
			t.Errorf("setNZ(%02X): got P = %s, want N=%t Z=%t", tt.val, p, tt.n, tt.z)
		}
		if !p.C() || !p.Has(Reserved) {
			t.Errorf("setNZ(%02X) modified other flags: %s", tt.val, p)
		}
	}
}
