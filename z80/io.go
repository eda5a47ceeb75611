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

// IOBus is the 256-port I/O substrate. A caller that wants real peripherals
// behind IN/OUT supplies its own implementation to NewWithBus; the default,
// used by New, is a plain 256-byte array with no side effects.
type IOBus interface {
	In(port byte) byte
	Out(port byte, v byte)
}

// Ports is the default IOBus: a flat 256-entry array with direct reads and
// writes and no peripheral behaviour.
type Ports struct {
	data [256]byte
}

// In returns the byte previously written to port, or zero.
func (p *Ports) In(port byte) byte { return p.data[port] }

// Out stores v at port.
func (p *Ports) Out(port byte, v byte) { p.data[port] = v }

// ReadPort reads the CPU's I/O bus at port.
func (c *CPU) ReadPort(port byte) byte { return c.bus.In(port) }

// WritePort writes the CPU's I/O bus at port.
func (c *CPU) WritePort(port byte, v byte) { c.bus.Out(port, v) }
