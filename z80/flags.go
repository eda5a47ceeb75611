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

// Flag bit positions within F, MSB to LSB: S Z _ H _ P/V N C. Bits 5 and 3
// are the undocumented "flag 5"/"flag 3" bits; this engine does not model
// them and leaves them as whatever a handler last wrote.
const (
	FlagC  byte = 0x01 // Carry
	FlagN  byte = 0x02 // Subtract
	FlagPV byte = 0x04 // Parity (logic ops) / Overflow (arithmetic)
	FlagH  byte = 0x10 // Half-carry
	FlagZ  byte = 0x40 // Zero
	FlagS  byte = 0x80 // Sign
)

func (c *CPU) flag(mask byte) bool { return c.f&mask != 0 }

func (c *CPU) setFlag(mask byte, v bool) {
	if v {
		c.f |= mask
	} else {
		c.f &^= mask
	}
}

// setCarry sets or clears just the carry bit, mirroring the original's own
// dedicated carry-flag primitive rather than going through the general
// mask-based setFlag path. SCF and CCF (opcodes_base.go) call this directly
// for the one bit they share, alongside their own handling of N and H.
func (c *CPU) setCarry(v bool) { c.setFlag(FlagC, v) }

// FlagSign, FlagZero, FlagHalfCarry, FlagParityOverflow, FlagSubtract and
// FlagCarry read the individual bits of F.
func (c *CPU) FlagSign() bool           { return c.flag(FlagS) }
func (c *CPU) FlagZero() bool           { return c.flag(FlagZ) }
func (c *CPU) FlagHalfCarry() bool      { return c.flag(FlagH) }
func (c *CPU) FlagParityOverflow() bool { return c.flag(FlagPV) }
func (c *CPU) FlagSubtract() bool       { return c.flag(FlagN) }
func (c *CPU) FlagCarry() bool          { return c.flag(FlagC) }

// SetFlagSign, SetFlagZero, SetFlagHalfCarry, SetFlagParityOverflow,
// SetFlagSubtract and SetFlagCarry write the individual bits of F.
func (c *CPU) SetFlagSign(v bool)           { c.setFlag(FlagS, v) }
func (c *CPU) SetFlagZero(v bool)           { c.setFlag(FlagZ, v) }
func (c *CPU) SetFlagHalfCarry(v bool)      { c.setFlag(FlagH, v) }
func (c *CPU) SetFlagParityOverflow(v bool) { c.setFlag(FlagPV, v) }
func (c *CPU) SetFlagSubtract(v bool)       { c.setFlag(FlagN, v) }
func (c *CPU) SetFlagCarry(v bool)          { c.setFlag(FlagC, v) }

// flagBits renders F as a labelled bit pattern, upper case for a set bit,
// lower case for a clear one, mirroring how the teacher's status register
// renders itself for debug output.
func (c *CPU) flagBits() string {
	bits := []struct {
		mask byte
		ch   byte
	}{
		{FlagS, 'S'}, {FlagZ, 'Z'}, {0x20, '5'}, {FlagH, 'H'},
		{0x08, '3'}, {FlagPV, 'P'}, {FlagN, 'N'}, {FlagC, 'C'},
	}
	out := make([]byte, len(bits))
	for i, b := range bits {
		set := c.f&b.mask != 0
		switch {
		case b.ch < 'A' || b.ch > 'Z':
			out[i] = b.ch // digit label for the undocumented bits, case-less
		case set:
			out[i] = b.ch
		default:
			out[i] = b.ch - 'A' + 'a'
		}
	}
	return string(out)
}
