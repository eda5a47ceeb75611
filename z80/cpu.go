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

// RepeatMode selects how the block-repeat instructions (LDIR, CPIR, INIR,
// OTIR and their decrementing counterparts) re-enter themselves.
type RepeatMode uint8

const (
	// RepeatInternalLoop executes every iteration of a block-repeat
	// instruction inside a single Step call - simpler to test, and the
	// shape the teacher's own instruction stepping favours (spec 9, Design
	// Notes: "a single-call design is easier to test").
	RepeatInternalLoop RepeatMode = iota

	// RepeatRewindPC decrements PC by 2 after each iteration that should
	// continue, so the instruction is re-fetched by the next Step call.
	// This is the Zilog-accurate shape and the one that allows an external
	// event to interrupt mid-block (spec 9, "Out of scope but worth
	// flagging").
	RepeatRewindPC
)

// CPU is one Z80 processor instance: its register file, flags, control
// latches, 64 KiB memory, I/O bus and cycle counter. The zero value is not
// ready for use; construct with New or NewWithBus.
type CPU struct {
	a, f byte
	b, c byte
	d, e byte
	h, l byte

	a2, f2 byte
	b2, c2 byte
	d2, e2 byte
	h2, l2 byte

	ix, iy byte2
	sp, pc byte2
	i, r   byte
	wz     byte2

	iff1, iff2 bool
	im         uint8
	halted     bool

	cycles uint64

	displacement int8

	// indexMode selects which register the current instruction's HL/H/L/
	// (HL) references are rewritten to: 0 none, 1 IX, 2 IY. It is set for
	// the duration of a single Step call only - see index.go.
	indexMode uint8

	repeatMode RepeatMode
	logging    bool

	mem memory
	bus IOBus
}

// New creates a CPU with a plain, unshared 256-port I/O bus.
func New() *CPU {
	return NewWithBus(&Ports{})
}

// NewWithBus creates a CPU whose I/O reads and writes go through bus,
// letting a host wire in real peripherals.
func NewWithBus(bus IOBus) *CPU {
	c := &CPU{bus: bus, logging: true}
	c.Reset()
	return c
}

// NewWithOptions creates a CPU with an explicit bus and repeat-instruction
// semantics (see RepeatMode).
func NewWithOptions(bus IOBus, mode RepeatMode) *CPU {
	c := NewWithBus(bus)
	c.repeatMode = mode
	return c
}

// AllowLogging implements logger.Permission: a CPU only logs anomalies when
// its own logging flag is set, letting a caller silence a CPU instance
// (e.g. one deliberately probing unmapped opcodes in a test) without a
// global switch.
func (c *CPU) AllowLogging() bool { return c.logging }

// SetLogging enables or disables this CPU's anomaly logging.
func (c *CPU) SetLogging(v bool) { c.logging = v }

// Reset restores the documented power-on state: every register except SP
// is zeroed, SP is 0xFFFF, IFF1/IFF2 are false, interrupt mode is 0, halted
// is false, and the cycle counter is reset to 0.
func (c *CPU) Reset() {
	*c = CPU{
		bus:        c.bus,
		logging:    c.logging,
		repeatMode: c.repeatMode,
	}
	c.sp = 0xFFFF
	logger.Log(c, "cpu", "reset")
}

// CycleCount returns the number of T-states executed since the last Reset.
func (c *CPU) CycleCount() uint64 { return c.cycles }

// tick adds n T-states to the cycle counter. Every instruction handler
// funnels its timing through this one choke point, mirroring the original
// implementation's single counter-increment helper (spec 5, Supplemented
// Features).
func (c *CPU) tick(n int) { c.cycles += uint64(n) }

// IsHalted reports whether HALT has been executed and not yet cleared by a
// Reset. RunUntilCycle stops as soon as this becomes true; PC remains
// pointed at the HALT opcode (spec 9, Open Question).
func (c *CPU) IsHalted() bool { return c.halted }

// IFF1, IFF2 are the interrupt-enable latches.
func (c *CPU) IFF1() bool      { return c.iff1 }
func (c *CPU) IFF2() bool      { return c.iff2 }
func (c *CPU) SetIFF1(v bool)  { c.iff1 = v }
func (c *CPU) SetIFF2(v bool)  { c.iff2 = v }

// InterruptMode returns the current interrupt mode, 0, 1 or 2.
func (c *CPU) InterruptMode() uint8 { return c.im }

// SetInterruptMode sets the interrupt mode. Values outside 0-2 are masked
// to their low two bits, matching the IM instruction's own encoding.
func (c *CPU) SetInterruptMode(v uint8) { c.im = v & 0x03 }

// Step executes exactly one instruction, consuming every prefix byte that
// precedes it in a single call (spec 9, Design Notes: the single-call
// shape). If the processor is halted, Step re-executes a 4 T-state NOP at
// the current PC without advancing it, which is observably identical to a
// real Z80 re-running internal NOPs while halted.
func (c *CPU) Step() {
	if c.halted {
		c.tick(4)
		return
	}
	c.step()
}

// RunUntilCycle calls Step repeatedly while the cycle counter is below
// target and the processor has not halted. It checks both conditions only
// at instruction boundaries (spec 5, Concurrency & Resource Model).
func (c *CPU) RunUntilCycle(target uint64) {
	for c.cycles < target && !c.halted {
		c.Step()
	}
}
