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

import "testing"

// runToHalt steps the CPU until it halts, bailing out after a generous
// T-state ceiling so a broken decode loop fails the test instead of hanging
// the test binary.
func runToHalt(t *testing.T, c *CPU, ceiling uint64) {
	t.Helper()
	for !c.IsHalted() {
		if c.CycleCount() > ceiling {
			t.Fatalf("did not halt within %d T-states (cycle=%d, PC=0x%04x)", ceiling, c.CycleCount(), c.PC())
		}
		c.Step()
	}
}

func TestScenarioEuclideanGCD(t *testing.T) {
	c := New()
	c.LoadProgram([]byte{
		0x7A, 0xB3, 0x28, 0x0B, 0xB7, 0xED, 0x52, 0x30,
		0x02, 0x19, 0xEB, 0x18, 0xF3, 0x18, 0xF1, 0x76,
	}, 0)
	c.SetHL(48)
	c.SetDE(18)

	runToHalt(t, c, 2000)

	if c.HL() != 6 {
		t.Fatalf("HL: got %d, want 6", c.HL())
	}
	if c.DE() != 6 {
		t.Fatalf("DE: got %d, want 6", c.DE())
	}
	if c.PC() != 0x0F {
		t.Fatalf("PC: got 0x%04x, want 0x0f", c.PC())
	}
	if c.CycleCount() < 300 || c.CycleCount() > 1000 {
		t.Fatalf("cycle_count out of the expected finite range: %d", c.CycleCount())
	}
}

func TestScenarioSBCHLZeroResult(t *testing.T) {
	c := New()
	c.LoadProgram([]byte{
		0x21, 0x00, 0x00, 0x11, 0x00, 0x00, 0xB7, 0xED, 0x52, 0x76,
	}, 0)

	runToHalt(t, c, 200)

	if c.HL() != 0 {
		t.Fatalf("HL: got %d, want 0", c.HL())
	}
	if !c.FlagZero() {
		t.Fatalf("Z must be set")
	}
	if !c.FlagSubtract() {
		t.Fatalf("N must be set")
	}
	if c.FlagCarry() {
		t.Fatalf("C must be clear")
	}
}

func TestScenarioIXDisplacementCBRotate(t *testing.T) {
	c := New()
	c.SetIX(0x2000)
	c.SetH(0x42)
	c.WriteMemory(0x2005, 0x81)
	c.LoadProgram([]byte{0xDD, 0xCB, 0x05, 0x05}, 0)

	c.Step()

	if c.ReadMemory(0x2005) != 0x03 {
		t.Fatalf("(IX+5): got 0x%02x, want 0x03", c.ReadMemory(0x2005))
	}
	if c.L() != 0x03 {
		t.Fatalf("L (result copy): got 0x%02x, want 0x03", c.L())
	}
	if c.IX() != 0x2000 {
		t.Fatalf("IX must be unchanged: got 0x%04x", c.IX())
	}
	if c.H() != 0x42 {
		t.Fatalf("H must be unchanged: got 0x%02x", c.H())
	}
}

func TestScenarioFibonacciViaAddHLDJNZ(t *testing.T) {
	c := New()
	c.LoadProgram([]byte{
		0x21, 0x01, 0x00, 0x11, 0x01, 0x00, 0x06, 0x20,
		0x19, 0xEB, 0x10, 0xFC, 0x76,
	}, 0)

	runToHalt(t, c, 10000)

	if c.HL() != 0xC5E2 {
		t.Fatalf("HL: got 0x%04x, want 0xc5e2", c.HL())
	}
}

func TestScenarioIncAFlagBehavior(t *testing.T) {
	c := New()
	c.SetA(0x7F)
	c.LoadProgram([]byte{0x3C, 0x76}, 0)

	runToHalt(t, c, 50)

	if c.A() != 0x80 {
		t.Fatalf("A: got 0x%02x, want 0x80", c.A())
	}
	if !c.FlagSign() {
		t.Fatalf("S must be set")
	}
	if c.FlagZero() {
		t.Fatalf("Z must be clear")
	}
	if !c.FlagHalfCarry() {
		t.Fatalf("H must be set")
	}
	if !c.FlagParityOverflow() {
		t.Fatalf("P/V must be set (overflow)")
	}
	if c.FlagSubtract() {
		t.Fatalf("N must be clear")
	}
	if c.FlagCarry() {
		t.Fatalf("C must be preserved as 0")
	}
}

func TestScenarioBlockMoveLDIR(t *testing.T) {
	c := New()
	c.WriteMemory(0x8000, 0xAA)
	c.WriteMemory(0x8001, 0xBB)
	c.WriteMemory(0x8002, 0xCC)
	c.WriteMemory(0x8003, 0xDD)
	c.SetHL(0x8000)
	c.SetDE(0x9000)
	c.SetBC(4)
	c.LoadProgram([]byte{0xED, 0xB0, 0x76}, 0)

	runToHalt(t, c, 500)

	want := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	for i, b := range want {
		if got := c.ReadMemory(0x9000 + uint16(i)); got != b {
			t.Fatalf("byte %d: got 0x%02x, want 0x%02x", i, got, b)
		}
	}
	if c.BC() != 0 {
		t.Fatalf("BC: got %d, want 0", c.BC())
	}
	if c.FlagParityOverflow() {
		t.Fatalf("P/V must be clear")
	}
	if c.HL() != 0x8004 {
		t.Fatalf("HL: got 0x%04x, want 0x8004", c.HL())
	}
	if c.DE() != 0x9004 {
		t.Fatalf("DE: got 0x%04x, want 0x9004", c.DE())
	}
}

// TestLDIRWithZeroBCWrapsAround exercises the documented 65536-iteration
// wraparound: BC=0 decrements to 0xFFFF first, so LDIR only stops once it
// has cycled all the way back around to 0 again.
func TestLDIRWithZeroBCWrapsAround(t *testing.T) {
	c := New()
	c.SetHL(0x8000)
	c.SetDE(0x9000)
	c.SetBC(0)
	c.LoadProgram([]byte{0xED, 0xB0}, 0)

	c.Step()

	if c.BC() != 0 {
		t.Fatalf("BC after a full 65536-iteration wrap: got %d, want 0", c.BC())
	}
	if c.HL() != 0x8000 || c.DE() != 0x9000 {
		t.Fatalf("HL/DE must have wrapped back to their start: HL=0x%04x DE=0x%04x", c.HL(), c.DE())
	}
}
