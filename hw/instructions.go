package hw

// load returns the operand value, read from the bus or taken from A.
func (c *CPU) load(op operand) uint8 {
	if op.mode == Accumulator {
		return c.A
	}
	return c.Read8(op.addr)
}

// store writes val back to where the operand has been loaded from.
func (c *CPU) store(op operand, val uint8) {
	if op.mode == Accumulator {
		c.A = val
		return
	}
	c.Write8(op.addr, val)
}

/* loads, stores and transfers */

func LDA(c *CPU, op operand) {
	c.A = c.load(op)
	c.P.setNZ(c.A)
}

func LDX(c *CPU, op operand) {
	c.X = c.load(op)
	c.P.setNZ(c.X)
}

func LDY(c *CPU, op operand) {
	c.Y = c.load(op)
	c.P.setNZ(c.Y)
}

func STA(c *CPU, op operand) { c.Write8(op.addr, c.A) }
func STX(c *CPU, op operand) { c.Write8(op.addr, c.X) }
func STY(c *CPU, op operand) { c.Write8(op.addr, c.Y) }

func TAX(c *CPU, _ operand) {
	c.X = c.A
	c.P.setNZ(c.X)
}

func TAY(c *CPU, _ operand) {
	c.Y = c.A
	c.P.setNZ(c.Y)
}

func TXA(c *CPU, _ operand) {
	c.A = c.X
	c.P.setNZ(c.A)
}

func TYA(c *CPU, _ operand) {
	c.A = c.Y
	c.P.setNZ(c.A)
}

func TSX(c *CPU, _ operand) {
	c.X = c.SP
	c.P.setNZ(c.X)
}

// TXS is the only transfer leaving flags alone.
func TXS(c *CPU, _ operand) { c.SP = c.X }

/* stack */

func PHA(c *CPU, _ operand) { c.push8(c.A) }

// PHP always pushes B and bit 5 set.
func PHP(c *CPU, _ operand) { c.push8(uint8(c.P | Break | Reserved)) }

func PLA(c *CPU, _ operand) {
	c.A = c.pull8()
	c.P.setNZ(c.A)
}

func PLP(c *CPU, _ operand) { c.pullP() }

// pullP replaces P with a byte pulled from the stack. B and bit 5 don't
// exist in the register, their pulled value is ignored.
func (c *CPU) pullP() {
	const mask = 0b11001111
	c.P = UnpackP(c.pull8()&mask | uint8(c.P)&^mask)
}

/* logical */

func AND(c *CPU, op operand) {
	c.A &= c.load(op)
	c.P.setNZ(c.A)
}

func ORA(c *CPU, op operand) {
	c.A |= c.load(op)
	c.P.setNZ(c.A)
}

func EOR(c *CPU, op operand) {
	c.A ^= c.load(op)
	c.P.setNZ(c.A)
}

func BIT(c *CPU, op operand) {
	val := c.load(op)
	c.P.Set(Zero, c.A&val == 0)
	c.P.Set(Negative, val&0x80 != 0)
	c.P.Set(Overflow, val&0x40 != 0)
}

/* arithmetic */

func ADC(c *CPU, op operand) {
	val := c.load(op)
	if c.P.D() && !c.DisableDecimal {
		c.adcDecimal(val)
		return
	}
	c.add(val)
}

func SBC(c *CPU, op operand) {
	val := c.load(op)
	if c.P.D() && !c.DisableDecimal {
		c.sbcDecimal(val)
		return
	}
	c.add(^val)
}

// add is binary ADC. SBC is an ADC of the one's complement.
func (c *CPU) add(val uint8) {
	sum := uint16(c.A) + uint16(val) + uint16(c.P.carry())
	res := uint8(sum)
	c.P.Set(Overflow, (c.A^res)&(val^res)&0x80 != 0)
	c.P.Set(Carry, sum > 0xFF)
	c.A = res
	c.P.setNZ(res)
}

// adcDecimal is ADC with D set, as the NMOS 6502 does it: Z reflects the
// binary sum, N and V are taken after the low digit has been adjusted but
// before the high digit is, C reflects the final BCD result.
func (c *CPU) adcDecimal(val uint8) {
	a, v, cin := uint16(c.A), uint16(val), uint16(c.P.carry())

	lo := a&0x0F + v&0x0F + cin
	if lo >= 0x0A {
		lo = (lo+0x06)&0x0F + 0x10
	}
	sum := a&0xF0 + v&0xF0 + lo

	c.P.Set(Zero, uint8(a+v+cin) == 0)
	c.P.Set(Negative, sum&0x80 != 0)
	c.P.Set(Overflow, (a^sum)&(v^sum)&0x80 != 0)

	if sum >= 0xA0 {
		sum += 0x60
	}
	c.P.Set(Carry, sum >= 0x100)
	c.A = uint8(sum)
}

// sbcDecimal is SBC with D set. On the NMOS 6502 all flags are those of the
// binary subtraction, only A gets the BCD result.
func (c *CPU) sbcDecimal(val uint8) {
	a, v := int(c.A), int(val)
	borrow := 1 - int(c.P.carry())

	c.add(^val)

	lo := a&0x0F - v&0x0F - borrow
	if lo < 0 {
		lo = (lo-0x06)&0x0F - 0x10
	}
	res := a&0xF0 - v&0xF0 + lo
	if res < 0 {
		res -= 0x60
	}
	c.A = uint8(res)
}

func (c *CPU) compare(reg, val uint8) {
	c.P.Set(Carry, reg >= val)
	c.P.setNZ(reg - val)
}

func CMP(c *CPU, op operand) { c.compare(c.A, c.load(op)) }
func CPX(c *CPU, op operand) { c.compare(c.X, c.load(op)) }
func CPY(c *CPU, op operand) { c.compare(c.Y, c.load(op)) }

/* increments and decrements */

func INC(c *CPU, op operand) {
	val := c.load(op) + 1
	c.store(op, val)
	c.P.setNZ(val)
}

func DEC(c *CPU, op operand) {
	val := c.load(op) - 1
	c.store(op, val)
	c.P.setNZ(val)
}

func INX(c *CPU, _ operand) {
	c.X++
	c.P.setNZ(c.X)
}

func INY(c *CPU, _ operand) {
	c.Y++
	c.P.setNZ(c.Y)
}

func DEX(c *CPU, _ operand) {
	c.X--
	c.P.setNZ(c.X)
}

func DEY(c *CPU, _ operand) {
	c.Y--
	c.P.setNZ(c.Y)
}

/* shifts and rotates */

func ASL(c *CPU, op operand) {
	val := c.load(op)
	c.P.Set(Carry, val&0x80 != 0)
	val <<= 1
	c.store(op, val)
	c.P.setNZ(val)
}

func LSR(c *CPU, op operand) {
	val := c.load(op)
	c.P.Set(Carry, val&0x01 != 0)
	val >>= 1
	c.store(op, val)
	c.P.setNZ(val)
}

func ROL(c *CPU, op operand) {
	val := c.load(op)
	carry := c.P.carry()
	c.P.Set(Carry, val&0x80 != 0)
	val = val<<1 | carry
	c.store(op, val)
	c.P.setNZ(val)
}

func ROR(c *CPU, op operand) {
	val := c.load(op)
	carry := c.P.carry()
	c.P.Set(Carry, val&0x01 != 0)
	val = val>>1 | carry<<7
	c.store(op, val)
	c.P.setNZ(val)
}

/* jumps and branches */

func JMP(c *CPU, op operand) { c.PC = op.addr }

// JSR pushes the address of its last byte.
func JSR(c *CPU, op operand) {
	c.push16(c.PC - 1)
	c.PC = op.addr
}

func RTS(c *CPU, _ operand) { c.PC = c.pull16() + 1 }

func RTI(c *CPU, _ operand) {
	c.pullP()
	c.PC = c.pull16()
}

// branch jumps to the target if cond holds. A taken branch takes one more
// cycle, two if the target is in another page.
func (c *CPU) branch(op operand, cond bool) {
	if !cond {
		return
	}
	c.stepCycles++
	if op.crossed {
		c.stepCycles++
	}
	c.PC = op.addr
}

func BCC(c *CPU, op operand) { c.branch(op, !c.P.C()) }
func BCS(c *CPU, op operand) { c.branch(op, c.P.C()) }
func BNE(c *CPU, op operand) { c.branch(op, !c.P.Z()) }
func BEQ(c *CPU, op operand) { c.branch(op, c.P.Z()) }
func BPL(c *CPU, op operand) { c.branch(op, !c.P.N()) }
func BMI(c *CPU, op operand) { c.branch(op, c.P.N()) }
func BVC(c *CPU, op operand) { c.branch(op, !c.P.V()) }
func BVS(c *CPU, op operand) { c.branch(op, c.P.V()) }

/* flags */

func CLC(c *CPU, _ operand) { c.P.clearFlags(Carry) }
func CLD(c *CPU, _ operand) { c.P.clearFlags(Decimal) }
func CLI(c *CPU, _ operand) { c.P.clearFlags(Interrupt) }
func CLV(c *CPU, _ operand) { c.P.clearFlags(Overflow) }
func SEC(c *CPU, _ operand) { c.P.setFlags(Carry) }
func SED(c *CPU, _ operand) { c.P.setFlags(Decimal) }
func SEI(c *CPU, _ operand) { c.P.setFlags(Interrupt) }

func NOP(c *CPU, _ operand) {}
