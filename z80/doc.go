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

// Package z80 emulates the instruction execution engine of the Zilog Z80
// microprocessor: fetch, decode and execute over a flat 64 KiB memory and
// 256 I/O ports, producing bit-exact registers, flags and T-state counts.
//
// A CPU owns its own memory and, unless constructed with NewWithBus, a plain
// 256-byte I/O port array. Programs are installed with LoadProgram and run
// one instruction at a time with Step, or in bulk with RunUntilCycle, which
// loops over Step while the cycle counter is below a target and the
// processor has not executed HALT.
//
//	cpu := z80.New()
//	cpu.LoadProgram(program, 0x0000)
//	cpu.SetHL(48)
//	cpu.SetDE(18)
//	cpu.RunUntilCycle(10_000)
//
// The CPU has no recoverable error paths: unmapped opcodes execute as NOPs,
// every address and port index is masked to its valid range by construction,
// and LoadProgram truncates rather than failing. Interrupt acknowledgement,
// refresh-register bus effects and contended-memory timings are explicitly
// out of scope; IFF1/IFF2 and the interrupt mode are tracked as plain state
// with no injection API.
package z80
