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

// byte2 is a little-endian 16-bit counter with no independent half access,
// used for SP, PC, IX, IY and WZ, none of which expose high/low halves on
// real Z80 hardware (IX/IY halves are synthesised by the DD/FD prefix
// rewrite, not stored separately - see index.go).
type byte2 uint16

func pair(hi, lo byte) uint16   { return uint16(hi)<<8 | uint16(lo) }
func hiByte(v uint16) byte      { return byte(v >> 8) }
func loByte(v uint16) byte      { return byte(v) }

// A returns the accumulator.
func (c *CPU) A() byte { return c.a }

// SetA sets the accumulator.
func (c *CPU) SetA(v byte) { c.a = v }

// F returns the flag byte. Bits not defined by the flag model (5 and 3) hold
// whatever a handler last wrote there; callers must mask the bit they care
// about.
func (c *CPU) F() byte { return c.f }

// SetF sets the flag byte directly.
func (c *CPU) SetF(v byte) { c.f = v }

func (c *CPU) B() byte      { return c.b }
func (c *CPU) SetB(v byte)  { c.b = v }
func (c *CPU) C() byte      { return c.c }
func (c *CPU) SetC(v byte)  { c.c = v }
func (c *CPU) D() byte      { return c.d }
func (c *CPU) SetD(v byte)  { c.d = v }
func (c *CPU) E() byte      { return c.e }
func (c *CPU) SetE(v byte)  { c.e = v }
func (c *CPU) H() byte      { return c.h }
func (c *CPU) SetH(v byte)  { c.h = v }
func (c *CPU) L() byte      { return c.l }
func (c *CPU) SetL(v byte)  { c.l = v }

// AF returns the accumulator/flags pair, A in the high byte.
func (c *CPU) AF() uint16     { return pair(c.a, c.f) }
func (c *CPU) SetAF(v uint16) { c.a, c.f = hiByte(v), loByte(v) }

func (c *CPU) BC() uint16     { return pair(c.b, c.c) }
func (c *CPU) SetBC(v uint16) { c.b, c.c = hiByte(v), loByte(v) }

func (c *CPU) DE() uint16     { return pair(c.d, c.e) }
func (c *CPU) SetDE(v uint16) { c.d, c.e = hiByte(v), loByte(v) }

func (c *CPU) HL() uint16     { return pair(c.h, c.l) }
func (c *CPU) SetHL(v uint16) { c.h, c.l = hiByte(v), loByte(v) }

// AF2, BC2, DE2, HL2 are the alternate register set, exchanged en masse by
// EXX (BC/DE/HL) and EX AF,AF' (AF only).
func (c *CPU) AF2() uint16     { return pair(c.a2, c.f2) }
func (c *CPU) SetAF2(v uint16) { c.a2, c.f2 = hiByte(v), loByte(v) }
func (c *CPU) BC2() uint16     { return pair(c.b2, c.c2) }
func (c *CPU) SetBC2(v uint16) { c.b2, c.c2 = hiByte(v), loByte(v) }
func (c *CPU) DE2() uint16     { return pair(c.d2, c.e2) }
func (c *CPU) SetDE2(v uint16) { c.d2, c.e2 = hiByte(v), loByte(v) }
func (c *CPU) HL2() uint16     { return pair(c.h2, c.l2) }
func (c *CPU) SetHL2(v uint16) { c.h2, c.l2 = hiByte(v), loByte(v) }

func (c *CPU) IX() uint16     { return uint16(c.ix) }
func (c *CPU) SetIX(v uint16) { c.ix = byte2(v) }
func (c *CPU) IY() uint16     { return uint16(c.iy) }
func (c *CPU) SetIY(v uint16) { c.iy = byte2(v) }

func (c *CPU) SP() uint16     { return uint16(c.sp) }
func (c *CPU) SetSP(v uint16) { c.sp = byte2(v) }
func (c *CPU) PC() uint16     { return uint16(c.pc) }
func (c *CPU) SetPC(v uint16) { c.pc = byte2(v) }

func (c *CPU) I() byte     { return c.i }
func (c *CPU) SetI(v byte) { c.i = v }
func (c *CPU) R() byte     { return c.r }
func (c *CPU) SetR(v byte) { c.r = v }

// WZ returns the internal MEMPTR/WZ scratch register. It is modelled as
// plain state with no externally observable side effects beyond what a
// caller inspects directly - the undocumented flag interactions WZ produces
// on real silicon are not part of this engine (spec Non-goals).
func (c *CPU) WZ() uint16     { return uint16(c.wz) }
func (c *CPU) SetWZ(v uint16) { c.wz = byte2(v) }

// incPC advances PC by one, wrapping at the 64 KiB boundary.
func (c *CPU) incPC() { c.pc++ }

// fetch reads the byte at PC and advances PC.
func (c *CPU) fetch() byte {
	b := c.mem.read8(uint16(c.pc))
	c.incPC()
	return b
}

// fetch16 reads a little-endian word starting at PC and advances PC by two.
func (c *CPU) fetch16() uint16 {
	lo := c.fetch()
	hi := c.fetch()
	return pair(hi, lo)
}

// exAFAF swaps AF with its alternate.
func (c *CPU) exAFAF() {
	c.a, c.a2 = c.a2, c.a
	c.f, c.f2 = c.f2, c.f
}

// exx swaps BC, DE, HL with their alternates simultaneously.
func (c *CPU) exx() {
	c.b, c.b2 = c.b2, c.b
	c.c, c.c2 = c.c2, c.c
	c.d, c.d2 = c.d2, c.d
	c.e, c.e2 = c.e2, c.e
	c.h, c.h2 = c.h2, c.h
	c.l, c.l2 = c.l2, c.l
}

// exDEHL swaps DE and HL. This always operates on the true HL, even under
// an active DD/FD prefix (spec 4.3 exceptions).
func (c *CPU) exDEHL() {
	c.d, c.h = c.h, c.d
	c.e, c.l = c.l, c.e
}
