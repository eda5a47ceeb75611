// This file is part of the z80-digital-twin project.
//
// z80-digital-twin is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// z80-digital-twin is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with z80-digital-twin.  If not, see <https://www.gnu.org/licenses/>.

package z80

// execBase is the 256-entry dispatch table for every opcode that is neither
// a CB, DD, ED or FD prefix byte. decode.go reuses this single table for
// both the unprefixed and the DD/FD-indexed case: c.indexMode, set just
// before the call, is what makes a handler's effHL/effH/effL/effAddr calls
// resolve to HL/H/L/(HL) or IX/IXH/IXL/(IX+d) - the handler bodies below
// never need to know which. The table is built once, in init, the way the
// reference Z80 core this module is grounded on builds its own opcode
// tables: explicit assignment for the irregular opcodes, small generating
// loops for the regular families (spec 9, Design Notes).
var execBase [256]func(*CPU)

func init() {
	assignIrregularBase()
	assignLoadImmediate16()
	assignIncDec16()
	assignAddHL16()
	assignLoadMemA()
	assignIncDecReg8()
	assignLoadRegImm8()
	assignLoadGrid()
	assignALUReg8()
	assignALUImm8()
	assignRetCC()
	assignStack()
	assignJPCC()
	assignCallCC()
	assignRST()
	assignJRCC()
}

func assignIrregularBase() {
	execBase[0x00] = opNOP
	execBase[0x07] = opRLCA
	execBase[0x08] = opEXAFAF
	execBase[0x0F] = opRRCA
	execBase[0x10] = opDJNZ
	execBase[0x17] = opRLA
	execBase[0x18] = opJR
	execBase[0x1F] = opRRA
	execBase[0x27] = opDAA
	execBase[0x2F] = opCPL
	execBase[0x37] = opSCF
	execBase[0x3F] = opCCF
	execBase[0x76] = opHALT
	execBase[0xC3] = opJP
	execBase[0xC9] = opRET
	execBase[0xCD] = opCALL
	execBase[0xD3] = opOUTnA
	execBase[0xD9] = opEXX
	execBase[0xDB] = opINAn
	execBase[0xE3] = opEXSPHL
	execBase[0xE9] = opJPHL
	execBase[0xEB] = opEXDEHL
	execBase[0xF3] = opDI
	execBase[0xF9] = opLDSPHL
	execBase[0xFB] = opEI
}

func opNOP(c *CPU) { c.tick(4) }

func opRLCA(c *CPU) {
	result, flags := rlc8(c.a)
	c.a = result
	c.f = (c.f & (FlagS | FlagZ | FlagPV)) | (flags & FlagC)
	c.tick(4)
}

func opRRCA(c *CPU) {
	result, flags := rrc8(c.a)
	c.a = result
	c.f = (c.f & (FlagS | FlagZ | FlagPV)) | (flags & FlagC)
	c.tick(4)
}

func opRLA(c *CPU) {
	result, flags := rl8(c.a, c.FlagCarry())
	c.a = result
	c.f = (c.f & (FlagS | FlagZ | FlagPV)) | (flags & FlagC)
	c.tick(4)
}

func opRRA(c *CPU) {
	result, flags := rr8(c.a, c.FlagCarry())
	c.a = result
	c.f = (c.f & (FlagS | FlagZ | FlagPV)) | (flags & FlagC)
	c.tick(4)
}

func opEXAFAF(c *CPU) {
	c.exAFAF()
	c.tick(4)
}

func opEXX(c *CPU) {
	c.exx()
	c.tick(4)
}

// opEXDEHL is the one documented exception to the effHL rewrite: EX DE,HL
// always exchanges the true DE and HL, never IX or IY, even under a DD/FD
// prefix.
func opEXDEHL(c *CPU) {
	c.exDEHL()
	c.tick(4)
}

func opEXSPHL(c *CPU) {
	addr := uint16(c.sp)
	lo := c.mem.read8(addr)
	hi := c.mem.read8(addr + 1)
	old := c.effHL()
	c.mem.write8(addr, loByte(old))
	c.mem.write8(addr+1, hiByte(old))
	c.setEffHL(pair(hi, lo))
	c.tick(c.memCost(19, 19))
}

func opJPHL(c *CPU) {
	c.pc = byte2(c.effHL())
	c.tick(4)
}

func opLDSPHL(c *CPU) {
	c.sp = byte2(c.effHL())
	c.tick(6)
}

func opDI(c *CPU) {
	c.iff1, c.iff2 = false, false
	c.tick(4)
}

func opEI(c *CPU) {
	c.iff1, c.iff2 = true, true
	c.tick(4)
}

func opDJNZ(c *CPU) {
	d := int8(c.fetch())
	c.b--
	if c.b != 0 {
		c.pc = byte2(int32(c.pc) + int32(d))
		c.tick(13)
		return
	}
	c.tick(8)
}

func opJR(c *CPU) {
	d := int8(c.fetch())
	c.pc = byte2(int32(c.pc) + int32(d))
	c.tick(12)
}

func opJP(c *CPU) {
	addr := c.fetch16()
	c.pc = byte2(addr)
	c.tick(10)
}

func opCALL(c *CPU) {
	addr := c.fetch16()
	c.pushWord(uint16(c.pc))
	c.pc = byte2(addr)
	c.tick(17)
}

func opRET(c *CPU) {
	c.pc = byte2(c.popWord())
	c.tick(10)
}

func opHALT(c *CPU) {
	c.halted = true
	c.pc--
	c.tick(4)
}

// opDAA adjusts A after a BCD add or subtract, per the standard Z80
// correction table keyed on A's nibbles, the half-carry flag and whether
// the preceding operation was an add or a subtract (N).
func opDAA(c *CPU) {
	a := c.a
	carry := c.FlagCarry()
	half := c.FlagHalfCarry()
	sub := c.FlagSubtract()

	var correction byte
	newCarry := carry

	if half || a&0x0F > 9 {
		correction |= 0x06
	}
	if carry || a > 0x99 {
		correction |= 0x60
		newCarry = true
	}

	var result byte
	var newHalf bool
	if sub {
		if half && a&0x0F < 6 {
			newHalf = true
		}
		result = a - correction
	} else {
		if a&0x0F > 9 {
			newHalf = true
		}
		result = a + correction
	}

	c.a = result
	flags := szFlags(result)
	if parityTable[result] {
		flags |= FlagPV
	}
	if newHalf {
		flags |= FlagH
	}
	if newCarry {
		flags |= FlagC
	}
	if sub {
		flags |= FlagN
	}
	c.f = flags
	c.tick(4)
}

func opCPL(c *CPU) {
	c.a = ^c.a
	c.f = (c.f & (FlagS | FlagZ | FlagPV | FlagC)) | FlagH | FlagN
	c.tick(4)
}

func opSCF(c *CPU) {
	c.f &= FlagS | FlagZ | FlagPV
	c.setCarry(true)
	c.tick(4)
}

func opCCF(c *CPU) {
	wasCarry := c.FlagCarry()
	c.f &= FlagS | FlagZ | FlagPV
	if wasCarry {
		c.f |= FlagH
	}
	c.setCarry(!wasCarry)
	c.tick(4)
}

func opOUTnA(c *CPU) {
	port := c.fetch()
	c.WritePort(port, c.a)
	c.tick(11)
}

func opINAn(c *CPU) {
	port := c.fetch()
	c.a = c.ReadPort(port)
	c.tick(11)
}

// assignLoadImmediate16 builds LD BC/DE/HL(eff)/SP,nn: 0x01, 0x11, 0x21, 0x31.
func assignLoadImmediate16() {
	for dd := byte(0); dd < 4; dd++ {
		dd := dd
		op := 0x01 | (dd << 4)
		execBase[op] = func(c *CPU) {
			v := c.fetch16()
			c.setDD(dd, v)
			c.tick(10)
		}
	}
}

func assignIncDec16() {
	for dd := byte(0); dd < 4; dd++ {
		dd := dd
		incOp := 0x03 | (dd << 4)
		decOp := 0x0B | (dd << 4)
		execBase[incOp] = func(c *CPU) {
			c.setDD(dd, c.getDD(dd)+1)
			c.tick(6)
		}
		execBase[decOp] = func(c *CPU) {
			c.setDD(dd, c.getDD(dd)-1)
			c.tick(6)
		}
	}
}

func assignAddHL16() {
	for dd := byte(0); dd < 4; dd++ {
		dd := dd
		op := 0x09 | (dd << 4)
		execBase[op] = func(c *CPU) {
			result, mask, value := addHL16(c.effHL(), c.getDD(dd))
			c.setEffHL(result)
			c.f = (c.f &^ mask) | value
			c.tick(11)
		}
	}
}

// getDD/setDD read/write the 16-bit register pair selected by a two-bit dd
// field: 0 BC, 1 DE, 2 HL (effective - IX/IY under a DD/FD prefix), 3 SP.
func (c *CPU) getDD(dd byte) uint16 {
	switch dd {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.effHL()
	default:
		return uint16(c.sp)
	}
}

func (c *CPU) setDD(dd byte, v uint16) {
	switch dd {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.setEffHL(v)
	default:
		c.sp = byte2(v)
	}
}

func assignLoadMemA() {
	execBase[0x02] = func(c *CPU) { c.mem.write8(c.BC(), c.a); c.tick(7) }
	execBase[0x12] = func(c *CPU) { c.mem.write8(c.DE(), c.a); c.tick(7) }
	execBase[0x0A] = func(c *CPU) { c.a = c.mem.read8(c.BC()); c.tick(7) }
	execBase[0x1A] = func(c *CPU) { c.a = c.mem.read8(c.DE()); c.tick(7) }
	execBase[0x22] = func(c *CPU) {
		addr := c.fetch16()
		c.mem.write16(addr, c.effHL())
		c.tick(16)
	}
	execBase[0x2A] = func(c *CPU) {
		addr := c.fetch16()
		c.setEffHL(c.mem.read16(addr))
		c.tick(16)
	}
	execBase[0x32] = func(c *CPU) {
		addr := c.fetch16()
		c.mem.write8(addr, c.a)
		c.tick(13)
	}
	execBase[0x3A] = func(c *CPU) {
		addr := c.fetch16()
		c.a = c.mem.read8(addr)
		c.tick(13)
	}
}

// assignIncDecReg8 builds INC r and DEC r for every 3-bit register code,
//00rrr100 and 00rrr101. r==6 is (HL)/(IX+d), a read-modify-write memory
// access with its own, longer timing.
func assignIncDecReg8() {
	for r := byte(0); r < 8; r++ {
		r := r
		incOp := 0x04 | (r << 3)
		decOp := 0x05 | (r << 3)

		if r == 6 {
			execBase[incOp] = func(c *CPU) {
				addr := c.effAddr()
				result, flags := inc8(c.mem.read8(addr), c.FlagCarry())
				c.mem.write8(addr, result)
				c.f = flags
				c.tick(c.memCost(11, 19))
			}
			execBase[decOp] = func(c *CPU) {
				addr := c.effAddr()
				result, flags := dec8(c.mem.read8(addr), c.FlagCarry())
				c.mem.write8(addr, result)
				c.f = flags
				c.tick(c.memCost(11, 19))
			}
			continue
		}

		execBase[incOp] = func(c *CPU) {
			result, flags := inc8(c.effReg8(r), c.FlagCarry())
			c.setEffReg8(r, result)
			c.f = flags
			c.tick(4)
		}
		execBase[decOp] = func(c *CPU) {
			result, flags := dec8(c.effReg8(r), c.FlagCarry())
			c.setEffReg8(r, result)
			c.f = flags
			c.tick(4)
		}
	}
}

// assignLoadRegImm8 builds LD r,n, 00rrr110.
func assignLoadRegImm8() {
	for r := byte(0); r < 8; r++ {
		r := r
		op := 0x06 | (r << 3)

		if r == 6 {
			execBase[op] = func(c *CPU) {
				addr := c.effAddr()
				n := c.fetch()
				c.mem.write8(addr, n)
				c.tick(c.memCost(10, 15))
			}
			continue
		}

		execBase[op] = func(c *CPU) {
			c.setEffReg8(r, c.fetch())
			c.tick(7)
		}
	}
}

// assignLoadGrid builds the 0x40-0x7F LD r,r' block, 01dddsss. 0x76 (d=6,
// s=6) is HALT and is assigned separately.
//
// Real Z80 hardware only rewrites an H or L operand to IXH/IXL/IYH/IYL when
// NEITHER operand of the LD is the (HL)/(IX+d)/(IY+d) memory form. When one
// side is memory, the register side - if it is H or L - keeps meaning the
// true H or L, confirmed by the handlers for LD H,(HL), LD (HL),H and LD
// (HL),L: see DESIGN.md's reg8.go entry. The reg/reg sub-grid below therefore uses
// effReg8/setEffReg8 (IXH/IXL-aware); the two memory sub-grids use
// trueReg8/setTrueReg8 for their register side instead.
func assignLoadGrid() {
	for d := byte(0); d < 8; d++ {
		for s := byte(0); s < 8; s++ {
			if d == 6 && s == 6 {
				continue // HALT
			}
			d, s := d, s
			op := 0x40 | (d << 3) | s

			switch {
			case d == 6:
				execBase[op] = func(c *CPU) {
					addr := c.effAddr()
					c.mem.write8(addr, c.trueReg8(s))
					c.tick(c.memCost(7, 15))
				}
			case s == 6:
				execBase[op] = func(c *CPU) {
					addr := c.effAddr()
					c.setTrueReg8(d, c.mem.read8(addr))
					c.tick(c.memCost(7, 15))
				}
			default:
				execBase[op] = func(c *CPU) {
					c.setEffReg8(d, c.effReg8(s))
					c.tick(4)
				}
			}
		}
	}
}

// aluOp applies one of the eight 8-bit ALU operations (bits 3-5 of an ALU
// opcode select ADD, ADC, SUB, SBC, AND, XOR, OR, CP in that order) to A and
// v, updating A (except for CP) and F.
func (c *CPU) aluOp(which byte, v byte) {
	switch which {
	case 0:
		result, flags := add8(c.a, v, false)
		c.a, c.f = result, flags
	case 1:
		result, flags := add8(c.a, v, c.FlagCarry())
		c.a, c.f = result, flags
	case 2:
		result, flags := sub8(c.a, v, false)
		c.a, c.f = result, flags
	case 3:
		result, flags := sub8(c.a, v, c.FlagCarry())
		c.a, c.f = result, flags
	case 4:
		result, flags := and8(c.a, v)
		c.a, c.f = result, flags
	case 5:
		result, flags := xor8(c.a, v)
		c.a, c.f = result, flags
	case 6:
		result, flags := or8(c.a, v)
		c.a, c.f = result, flags
	case 7:
		c.f = cp8(c.a, v)
	}
}

// assignALUReg8 builds the 0x80-0xBF ALU A,r block, 10pppsss.
func assignALUReg8() {
	for p := byte(0); p < 8; p++ {
		for s := byte(0); s < 8; s++ {
			p, s := p, s
			op := 0x80 | (p << 3) | s

			if s == 6 {
				execBase[op] = func(c *CPU) {
					addr := c.effAddr()
					c.aluOp(p, c.mem.read8(addr))
					c.tick(c.memCost(7, 15))
				}
				continue
			}

			execBase[op] = func(c *CPU) {
				c.aluOp(p, c.effReg8(s))
				c.tick(4)
			}
		}
	}
}

// assignALUImm8 builds the eight ALU A,n immediate opcodes: 0xC6, 0xCE,
// 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE.
func assignALUImm8() {
	for p := byte(0); p < 8; p++ {
		p := p
		op := 0xC6 | (p << 3)
		execBase[op] = func(c *CPU) {
			c.aluOp(p, c.fetch())
			c.tick(7)
		}
	}
}

// assignRetCC builds RET cc, 11ccc000.
func assignRetCC() {
	for cc := byte(0); cc < 8; cc++ {
		cc := cc
		op := 0xC0 | (cc << 3)
		execBase[op] = func(c *CPU) {
			if c.condition(cc) {
				c.pc = byte2(c.popWord())
				c.tick(11)
				return
			}
			c.tick(5)
		}
	}
}

// assignStack builds POP qq (11qq0001) and PUSH qq (11qq0101). qq==2 is the
// effective HL slot (IX/IY under a prefix); qq==3 is always the true AF -
// there is no such instruction as "POP IY-in-place-of-AF".
func assignStack() {
	for qq := byte(0); qq < 4; qq++ {
		qq := qq
		popOp := 0xC1 | (qq << 4)
		pushOp := 0xC5 | (qq << 4)

		execBase[popOp] = func(c *CPU) {
			v := c.popWord()
			c.setQQ(qq, v)
			c.tick(10)
		}
		execBase[pushOp] = func(c *CPU) {
			c.pushWord(c.getQQ(qq))
			c.tick(11)
		}
	}
}

func (c *CPU) getQQ(qq byte) uint16 {
	switch qq {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.effHL()
	default:
		return c.AF()
	}
}

func (c *CPU) setQQ(qq byte, v uint16) {
	switch qq {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.setEffHL(v)
	default:
		c.SetAF(v)
	}
}

// assignJPCC builds JP cc,nn, 11ccc010. Unlike CALL/RET, the real chip
// charges the same 10 T-states whether or not the jump is taken.
func assignJPCC() {
	for cc := byte(0); cc < 8; cc++ {
		cc := cc
		op := 0xC2 | (cc << 3)
		execBase[op] = func(c *CPU) {
			addr := c.fetch16()
			if c.condition(cc) {
				c.pc = byte2(addr)
			}
			c.tick(10)
		}
	}
}

// assignCallCC builds CALL cc,nn, 11ccc100.
func assignCallCC() {
	for cc := byte(0); cc < 8; cc++ {
		cc := cc
		op := 0xC4 | (cc << 3)
		execBase[op] = func(c *CPU) {
			addr := c.fetch16()
			if c.condition(cc) {
				c.pushWord(uint16(c.pc))
				c.pc = byte2(addr)
				c.tick(17)
				return
			}
			c.tick(10)
		}
	}
}

// assignRST builds RST p, 11ppp111, p in {0x00,0x08,...,0x38}.
func assignRST() {
	for p := byte(0); p < 8; p++ {
		p := p
		op := 0xC7 | (p << 3)
		target := uint16(p) * 8
		execBase[op] = func(c *CPU) {
			c.pushWord(uint16(c.pc))
			c.pc = byte2(target)
			c.tick(11)
		}
	}
}

// assignJRCC builds JR cc,e, 001cc000: 12 T-states taken, 7 not taken.
func assignJRCC() {
	for cc := byte(0); cc < 4; cc++ {
		cc := cc
		execBase[0x20|(cc<<3)] = func(c *CPU) {
			d := int8(c.fetch())
			if c.condition(cc) {
				c.pc = byte2(int32(c.pc) + int32(d))
				c.tick(12)
				return
			}
			c.tick(7)
		}
	}
}
