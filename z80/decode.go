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

import "github.com/dawsonlp/z80-digital-twin/internal/logger"

// step consumes one full instruction, including every prefix byte that
// precedes it, starting from PC. It implements the Normal/CB/DD/ED/FD/
// DDCB/FDCB state machine of spec 4.3 as a single call rather than as
// state carried across Step invocations - see SPEC_FULL.md 4.3.
func (c *CPU) step() {
	op := c.fetch()

	switch op {
	case 0xCB:
		c.tick(4)
		c.indexMode = indexNone
		sub := c.fetch()
		c.execCB(sub)

	case 0xDD:
		c.tick(4)
		c.stepPrefixed(indexIX)

	case 0xFD:
		c.tick(4)
		c.stepPrefixed(indexIY)

	case 0xED:
		c.tick(4)
		c.indexMode = indexNone
		sub := c.fetch()
		c.execED(sub)

	default:
		c.indexMode = indexNone
		execBase[op](c)
	}
}

// stepPrefixed runs the DD/FD side of the state machine: absorbing a chain
// of further DD/FD bytes (the last one wins), handing off to DDCB/FDCB or
// ED as appropriate, and otherwise dispatching the unprefixed table with
// indexMode set so every HL/H/L/(HL) reference is rewritten.
func (c *CPU) stepPrefixed(mode uint8) {
	for {
		op := c.fetch()
		switch op {
		case 0xCB:
			c.tick(4)
			c.indexMode = mode
			d := int8(c.fetch())
			c.displacement = d
			sub := c.fetch()
			c.execIndexedCB(sub, mode)
			return

		case 0xDD:
			c.tick(4)
			mode = indexIX
			continue

		case 0xFD:
			c.tick(4)
			mode = indexIY
			continue

		case 0xED:
			c.tick(4)
			c.indexMode = indexNone
			sub := c.fetch()
			c.execED(sub)
			return

		default:
			c.indexMode = mode
			execBase[op](c)
			return
		}
	}
}

// execED dispatches an ED-prefixed opcode. Unmapped entries are no-ops
// costing 8 T-states total, per spec 4.3; decode.go has already ticked 4 for
// the ED byte itself, so the local tick here is the remaining 4.
func (c *CPU) execED(op byte) {
	if h := edTable[op]; h != nil {
		h(c)
		return
	}
	logger.Logf(c, "cpu", "unmapped ED opcode 0x%02x at PC=0x%04x", op, uint16(c.pc)-2)
	c.tick(4)
}
