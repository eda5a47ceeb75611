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

// cbShift applies one of the eight CB rotate/shift operations (bits 3-5 of
// a CB opcode select RLC, RRC, RL, RR, SLA, SRA, SLL, SRL in that order) to
// v and returns the result and flags.
func cbShift(which byte, v byte, carryIn bool) (result byte, flags byte) {
	switch which {
	case 0:
		return rlc8(v)
	case 1:
		return rrc8(v)
	case 2:
		return rl8(v, carryIn)
	case 3:
		return rr8(v, carryIn)
	case 4:
		return sla8(v)
	case 5:
		return sra8(v)
	case 6:
		return sll8(v)
	default:
		return srl8(v)
	}
}

// execCB dispatches an unprefixed CB opcode: rotate/shift group 00rrrsss,
// BIT group 01bbbsss, RES group 10bbbsss, SET group 11bbbsss, where sss
// selects the operand register (0-5, 7) or (HL) (6, s==6). There is no
// DD/FD prefix active here, so register-field sss==4/5 always means the
// true H and L.
func (c *CPU) execCB(op byte) {
	group := op >> 6
	bit := (op >> 3) & 7
	s := op & 7

	switch group {
	case 0:
		if s == 6 {
			addr := c.HL()
			result, flags := cbShift(bit, c.mem.read8(addr), c.FlagCarry())
			c.mem.write8(addr, result)
			c.f = flags
			c.tick(11) // decode.go already ticked 4 for the CB byte; total 15
			return
		}
		result, flags := cbShift(bit, c.trueReg8(s), c.FlagCarry())
		c.setTrueReg8(s, result)
		c.f = flags
		c.tick(4) // total 8

	case 1: // BIT b,s
		if s == 6 {
			c.f = bitFlags(c.mem.read8(c.HL()), uint(bit), c.FlagCarry())
			c.tick(8) // total 12
			return
		}
		c.f = bitFlags(c.trueReg8(s), uint(bit), c.FlagCarry())
		c.tick(4) // total 8

	case 2: // RES b,s
		mask := ^(byte(1) << bit)
		if s == 6 {
			addr := c.HL()
			c.mem.write8(addr, c.mem.read8(addr)&mask)
			c.tick(11) // total 15
			return
		}
		c.setTrueReg8(s, c.trueReg8(s)&mask)
		c.tick(4) // total 8

	default: // SET b,s
		mask := byte(1) << bit
		if s == 6 {
			addr := c.HL()
			c.mem.write8(addr, c.mem.read8(addr)|mask)
			c.tick(11) // total 15
			return
		}
		c.setTrueReg8(s, c.trueReg8(s)|mask)
		c.tick(4) // total 8
	}
}

// execIndexedCB dispatches a DD·CB or FD·CB opcode. c.displacement has
// already been captured by decode.go; the operand is always the byte at
// IX+d/IY+d, regardless of the sss field - DDCB/FDCB addressing has no
// register form at all. When sss is not 6, real hardware also writes the
// computed result into that register, a documented-as-undefined but stable
// side effect usually called "the copy quirk"; sss==4/5 in that copy always
// means the true H and L, exactly as in the plain CB table, never IXH/IXL.
func (c *CPU) execIndexedCB(op byte, mode uint8) {
	group := op >> 6
	bit := (op >> 3) & 7
	s := op & 7

	addr := uint16(int32(c.effHL()) + int32(c.displacement))
	v := c.mem.read8(addr)

	switch group {
	case 0:
		result, flags := cbShift(bit, v, c.FlagCarry())
		c.mem.write8(addr, result)
		if s != 6 {
			c.setTrueReg8(s, result)
		}
		c.f = flags

	case 1: // BIT b,(IX+d)/(IY+d)
		c.f = bitFlags(v, uint(bit), c.FlagCarry())

	case 2: // RES b,(IX+d)/(IY+d)
		result := v &^ (byte(1) << bit)
		c.mem.write8(addr, result)
		if s != 6 {
			c.setTrueReg8(s, result)
		}

	default: // SET b,(IX+d)/(IY+d)
		result := v | (byte(1) << bit)
		c.mem.write8(addr, result)
		if s != 6 {
			c.setTrueReg8(s, result)
		}
	}

	// decode.go has already ticked 8 T-states for the DD/FD and CB prefix
	// bytes themselves; the local cost added here is exactly the unprefixed
	// CB group's own cost (12 for BIT, 15 for the rest), giving the correct
	// DDCB/FDCB totals of 20 and 23 without any indexed-specific numbers.
	if group == 1 {
		c.tick(12)
		return
	}
	c.tick(15)
}
