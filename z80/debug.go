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

import "fmt"

// String renders the register file and flags for debug output, in the same
// spirit as a status register's own String method: every field in one
// line, flags as a labelled bit pattern rather than a bare hex byte.
func (c *CPU) String() string {
	return fmt.Sprintf(
		"AF=%04x BC=%04x DE=%04x HL=%04x IX=%04x IY=%04x SP=%04x PC=%04x F=%s cyc=%d",
		c.AF(), c.BC(), c.DE(), c.HL(), c.IX(), c.IY(), c.SP(), c.PC(),
		c.flagBits(), c.cycles,
	)
}
