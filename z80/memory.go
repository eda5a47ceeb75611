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

// memory is the flat, fully-populated 64 KiB address space. There is no
// ROM/RAM split and no access restriction; addresses wrap modulo 2^16 at
// the byte level, which uint16 arithmetic gives us for free.
type memory struct {
	bytes [65536]byte
}

func (m *memory) read8(addr uint16) byte {
	return m.bytes[addr]
}

func (m *memory) write8(addr uint16, v byte) {
	m.bytes[addr] = v
}

// read16 reads a little-endian word: low byte at addr, high byte at addr+1.
// The two byte accesses wrap independently, so a word read at 0xFFFF reads
// 0xFFFF then 0x0000.
func (m *memory) read16(addr uint16) uint16 {
	lo := m.read8(addr)
	hi := m.read8(addr + 1)
	return pair(hi, lo)
}

func (m *memory) write16(addr uint16, v uint16) {
	m.write8(addr, loByte(v))
	m.write8(addr+1, hiByte(v))
}

// loadProgram copies program into memory starting at start, discarding any
// bytes that would fall past the top of the address space.
func (m *memory) loadProgram(program []byte, start uint16) {
	for i, b := range program {
		addr := int(start) + i
		if addr > 0xFFFF {
			return
		}
		m.bytes[addr] = b
	}
}

// ReadMemory reads a single byte from the CPU's address space.
func (c *CPU) ReadMemory(addr uint16) byte { return c.mem.read8(addr) }

// WriteMemory writes a single byte to the CPU's address space.
func (c *CPU) WriteMemory(addr uint16, v byte) { c.mem.write8(addr, v) }

// ReadMemory16 reads a little-endian word from the CPU's address space.
func (c *CPU) ReadMemory16(addr uint16) uint16 { return c.mem.read16(addr) }

// WriteMemory16 writes a little-endian word to the CPU's address space.
func (c *CPU) WriteMemory16(addr uint16, v uint16) { c.mem.write16(addr, v) }

// LoadProgram copies program into memory starting at start, truncating at
// the end of the address space. It does not affect registers or the cycle
// counter.
func (c *CPU) LoadProgram(program []byte, start uint16) {
	c.mem.loadProgram(program, start)
}
