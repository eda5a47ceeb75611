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

// This file implements the DD/FD "IX/IY rewrite": for the duration of one
// instruction, every reference the unprefixed handler table makes to HL, H,
// L or (HL) is transparently redirected to IX, IXH, IXL and (IX+d) - or the
// IY equivalents. A single dispatch table in opcodes_base.go is reused for
// both the unprefixed and the DD/FD-prefixed cases; handlers call the
// effHL/effH/effL/effAddr family below instead of touching c.h/c.l/c.HL()
// directly, so the same handler body is correct in either mode. The
// exceptions are EX DE,HL, whose handler uses c.h/c.l directly, bypassing
// this file entirely; the register side of an LD between H or L and
// (IX+d)/(IY+d) in the 0x40-0x7F grid, which means the true H or L (see
// assignLoadGrid in opcodes_base.go); and CB-prefixed H/L register targets
// reached through DD·CB/FD·CB, which always mean the true H and L (see
// opcodes_cb.go).

const (
	indexNone uint8 = 0
	indexIX   uint8 = 1
	indexIY   uint8 = 2
)

// effHL returns HL, or IX/IY if a DD/FD prefix is active.
func (c *CPU) effHL() uint16 {
	switch c.indexMode {
	case indexIX:
		return uint16(c.ix)
	case indexIY:
		return uint16(c.iy)
	default:
		return c.HL()
	}
}

// setEffHL writes HL, or IX/IY if a DD/FD prefix is active.
func (c *CPU) setEffHL(v uint16) {
	switch c.indexMode {
	case indexIX:
		c.ix = byte2(v)
	case indexIY:
		c.iy = byte2(v)
	default:
		c.SetHL(v)
	}
}

// effH, effL, setEffH, setEffL address the high/low half of the effective
// pair - IXH/IXL or IYH/IYL under a DD/FD prefix, H/L otherwise.
func (c *CPU) effH() byte { return hiByte(c.effHL()) }
func (c *CPU) effL() byte { return loByte(c.effHL()) }

func (c *CPU) setEffH(v byte) { c.setEffHL(pair(v, c.effL())) }
func (c *CPU) setEffL(v byte) { c.setEffHL(pair(c.effH(), v)) }

// effAddr resolves the address an instruction's (HL) operand refers to. Under
// a DD/FD prefix it additionally fetches the signed displacement byte from
// PC, as part of the instruction rather than the prefix transition, and
// computes IX+d/IY+d.
func (c *CPU) effAddr() uint16 {
	if c.indexMode == indexNone {
		return c.HL()
	}
	d := int8(c.fetch())
	return uint16(int32(c.effHL()) + int32(d))
}

// memCost returns the T-states a handler should tick for an instruction
// whose only memory reference is the effective (HL) operand. base is the
// unprefixed HL-form cost, ticked as-is. indexed is the handler-local
// portion of the real, measured IX+d/IY+d total: the DD/FD prefix byte
// itself is already ticked once by decode.go before the handler runs, so
// indexed equals the real total minus 4, not the real total itself (these
// do not follow the simple "+4 for the prefix" pattern that register-only
// rewrites do - see DESIGN.md section 2).
func (c *CPU) memCost(base, indexed int) int {
	if c.indexMode == indexNone {
		return base
	}
	return indexed
}
