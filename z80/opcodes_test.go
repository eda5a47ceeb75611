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

func assertCycles(t *testing.T, c *CPU, want uint64, what string) {
	t.Helper()
	if c.CycleCount() != want {
		t.Fatalf("%s: got %d cycles, want %d", what, c.CycleCount(), want)
	}
}

func TestLDddnn(t *testing.T) {
	c := New()
	c.LoadProgram([]byte{0x21, 0x34, 0x12}, 0) // LD HL,0x1234
	c.Step()
	assertEqual16(t, c.HL(), 0x1234, "HL")
	assertCycles(t, c, 10, "LD HL,nn")
}

func TestIncRegisterSetsHalfCarryAndOverflow(t *testing.T) {
	c := New()
	c.SetA(0x7F)
	c.LoadProgram([]byte{0x3C}, 0) // INC A
	c.Step()
	if c.A() != 0x80 {
		t.Fatalf("A: got 0x%02x, want 0x80", c.A())
	}
	if !c.FlagHalfCarry() || !c.FlagParityOverflow() || !c.FlagSign() {
		t.Fatalf("INC 0x7F must set H, P/V and S")
	}
	assertCycles(t, c, 4, "INC A")
}

func TestLDRegReg(t *testing.T) {
	c := New()
	c.SetA(0x55)
	c.LoadProgram([]byte{0x47}, 0) // LD B,A
	c.Step()
	if c.B() != 0x55 {
		t.Fatalf("B: got 0x%02x, want 0x55", c.B())
	}
	assertCycles(t, c, 4, "LD B,A")
}

func TestLDMemoryFromRegister(t *testing.T) {
	c := New()
	c.SetHL(0x3000)
	c.SetA(0x99)
	c.LoadProgram([]byte{0x77}, 0) // LD (HL),A
	c.Step()
	if c.ReadMemory(0x3000) != 0x99 {
		t.Fatalf("(HL): got 0x%02x, want 0x99", c.ReadMemory(0x3000))
	}
	assertCycles(t, c, 7, "LD (HL),A")
}

func TestDDRewritesHToIXH(t *testing.T) {
	c := New()
	c.LoadProgram([]byte{0xDD, 0x26, 0x99}, 0) // LD IXH,0x99
	c.Step()
	if c.IX() != 0x9900 {
		t.Fatalf("IX: got 0x%04x, want 0x9900", c.IX())
	}
	assertCycles(t, c, 11, "LD IXH,n")
}

func TestDDRegRegRewritesBothSides(t *testing.T) {
	c := New()
	c.SetIX(0x1234)
	c.LoadProgram([]byte{0xDD, 0x6C}, 0) // LD IXL,IXH
	c.Step()
	if c.IX() != 0x1212 {
		t.Fatalf("IX: got 0x%04x, want 0x1212", c.IX())
	}
	assertCycles(t, c, 8, "LD IXL,IXH")
}

// TestDDMemoryFormUsesTrueHL is the documented hardware quirk: when one
// operand of an LD in the 0x40-0x7F grid is (IX+d), an H or L on the other
// side means the true H/L register, never IXH/IXL.
func TestDDMemoryFormUsesTrueHL(t *testing.T) {
	c := New()
	c.SetH(0x77)
	c.SetIX(0x2000)
	c.LoadProgram([]byte{0xDD, 0x74, 0x05}, 0) // LD (IX+5),H
	c.Step()
	if c.ReadMemory(0x2005) != 0x77 {
		t.Fatalf("(IX+5): got 0x%02x, want the true H (0x77)", c.ReadMemory(0x2005))
	}
	assertCycles(t, c, 19, "LD (IX+d),H")
}

func TestDDMemoryFormLoadIntoTrueL(t *testing.T) {
	c := New()
	c.SetIX(0x4000)
	c.WriteMemory(0x4002, 0x5A)
	c.LoadProgram([]byte{0xDD, 0x6E, 0x02}, 0) // LD L,(IX+2)
	c.Step()
	if c.L() != 0x5A {
		t.Fatalf("L: got 0x%02x, want 0x5a (the true L, not IXL)", c.L())
	}
	if c.IX() != 0x4000 {
		t.Fatalf("IX must be untouched by LD L,(IX+2)")
	}
	assertCycles(t, c, 19, "LD L,(IX+d)")
}

func TestEXDEHLUnaffectedByDDPrefix(t *testing.T) {
	c := New()
	c.SetDE(0x1111)
	c.SetIX(0x2222)
	c.LoadProgram([]byte{0xDD, 0xEB}, 0) // DD EX DE,HL - still true HL
	c.Step()
	if c.HL() != 0x1111 {
		t.Fatalf("HL: got 0x%04x, want 0x1111", c.HL())
	}
	if c.IX() != 0x2222 {
		t.Fatalf("IX must be untouched: got 0x%04x", c.IX())
	}
}

func TestALUIndexedOperand(t *testing.T) {
	c := New()
	c.SetIX(0x3000)
	c.SetA(0x01)
	c.WriteMemory(0x3003, 0x02)
	c.LoadProgram([]byte{0xDD, 0x86, 0x03}, 0) // ADD A,(IX+3)
	c.Step()
	if c.A() != 0x03 {
		t.Fatalf("A: got 0x%02x, want 0x03", c.A())
	}
	assertCycles(t, c, 19, "ADD A,(IX+d)")
}

func TestCBRotateRegister(t *testing.T) {
	c := New()
	c.SetB(0x81)
	c.LoadProgram([]byte{0xCB, 0x00}, 0) // RLC B
	c.Step()
	if c.B() != 0x03 {
		t.Fatalf("B: got 0x%02x, want 0x03", c.B())
	}
	if !c.FlagCarry() {
		t.Fatalf("RLC 0x81 must set carry")
	}
	assertCycles(t, c, 8, "RLC B")
}

func TestCBBitOnMemory(t *testing.T) {
	c := New()
	c.SetHL(0x5000)
	c.WriteMemory(0x5000, 0x00)
	c.LoadProgram([]byte{0xCB, 0x46}, 0) // BIT 0,(HL)
	c.Step()
	if !c.FlagZero() {
		t.Fatalf("BIT 0,(HL) against 0 must set Z")
	}
	assertCycles(t, c, 12, "BIT 0,(HL)")
}

// TestDDCBCopyQuirk exercises the undocumented DDCB/FDCB behaviour where a
// non-(HL) register field in the CB sub-opcode also receives the computed
// result, in addition to it being written back to (IX+d).
func TestDDCBCopyQuirk(t *testing.T) {
	c := New()
	c.SetIX(0x4000)
	c.WriteMemory(0x4001, 0x81)
	c.LoadProgram([]byte{0xDD, 0xCB, 0x01, 0x00}, 0) // RLC (IX+1),B
	c.Step()
	if c.ReadMemory(0x4001) != 0x03 {
		t.Fatalf("(IX+1): got 0x%02x, want 0x03", c.ReadMemory(0x4001))
	}
	if c.B() != 0x03 {
		t.Fatalf("B must receive the copy: got 0x%02x", c.B())
	}
	if !c.FlagCarry() {
		t.Fatalf("RLC 0x81 must set carry")
	}
	assertCycles(t, c, 23, "RLC (IX+d),B")
}

func TestDDCBBitDoesNotCopy(t *testing.T) {
	c := New()
	c.SetIX(0x4000)
	c.SetB(0x00)
	c.WriteMemory(0x4001, 0x01)
	c.LoadProgram([]byte{0xDD, 0xCB, 0x01, 0x40}, 0) // BIT 0,(IX+1)
	c.Step()
	if c.FlagZero() {
		t.Fatalf("bit 0 of 0x01 is set, Z must clear")
	}
	if c.B() != 0 {
		t.Fatalf("BIT must never write back: B changed to 0x%02x", c.B())
	}
	assertCycles(t, c, 20, "BIT 0,(IX+d)")
}

func TestEDLoadMemoryFromBC(t *testing.T) {
	c := New()
	c.SetBC(0x1234)
	c.LoadProgram([]byte{0xED, 0x43, 0x00, 0x50}, 0) // LD (0x5000),BC
	c.Step()
	if c.ReadMemory16(0x5000) != 0x1234 {
		t.Fatalf("(0x5000): got 0x%04x, want 0x1234", c.ReadMemory16(0x5000))
	}
	assertCycles(t, c, 20, "LD (nn),BC")
}

func TestEDNeg(t *testing.T) {
	c := New()
	c.SetA(0x01)
	c.LoadProgram([]byte{0xED, 0x44}, 0) // NEG
	c.Step()
	if c.A() != 0xFF {
		t.Fatalf("A: got 0x%02x, want 0xff", c.A())
	}
	if !c.FlagCarry() || !c.FlagSubtract() {
		t.Fatalf("NEG 0x01 must set C and N")
	}
	assertCycles(t, c, 8, "NEG")
}

func TestEDNegAliasRows(t *testing.T) {
	c := New()
	c.SetA(0x05)
	c.LoadProgram([]byte{0xED, 0x6C}, 0) // row 5 alias of NEG
	c.Step()
	if c.A() != 0xFB {
		t.Fatalf("A: got 0x%02x, want 0xfb", c.A())
	}
}

func TestEDRetnRetiAlternateByRow(t *testing.T) {
	c := New()
	c.SetIFF2(true)
	c.LoadProgram([]byte{0xED, 0x45}, 0x1000) // row 0: RETN
	c.SetPC(0x1000)
	c.WriteMemory16(0xFFFE, 0x2000)
	c.SetSP(0xFFFE)
	c.Step()
	if c.PC() != 0x2000 {
		t.Fatalf("RETN must pop PC: got 0x%04x", c.PC())
	}
	if !c.IFF1() {
		t.Fatalf("RETN must copy IFF2 into IFF1")
	}
}

func TestLDIMovesOneByteAndDecrementsBC(t *testing.T) {
	c := New()
	c.SetHL(0x1000)
	c.SetDE(0x2000)
	c.SetBC(0x0002)
	c.WriteMemory(0x1000, 0xAA)
	c.LoadProgram([]byte{0xED, 0xA0}, 0) // LDI
	c.Step()
	if c.ReadMemory(0x2000) != 0xAA {
		t.Fatalf("(DE): got 0x%02x, want 0xaa", c.ReadMemory(0x2000))
	}
	if c.HL() != 0x1001 || c.DE() != 0x2001 || c.BC() != 1 {
		t.Fatalf("HL/DE/BC after LDI: %04x %04x %04x", c.HL(), c.DE(), c.BC())
	}
	if !c.FlagParityOverflow() {
		t.Fatalf("LDI with BC!=0 after decrement must set P/V")
	}
	assertCycles(t, c, 16, "LDI")
}

func TestLDIRRepeatsUntilBCZero(t *testing.T) {
	c := New()
	c.SetHL(0x1000)
	c.SetDE(0x2000)
	c.SetBC(0x0003)
	c.WriteMemory(0x1000, 0x01)
	c.WriteMemory(0x1001, 0x02)
	c.WriteMemory(0x1002, 0x03)
	c.LoadProgram([]byte{0xED, 0xB0}, 0) // LDIR
	c.Step()
	if c.BC() != 0 {
		t.Fatalf("BC after LDIR: got %d, want 0", c.BC())
	}
	for i, want := range []byte{0x01, 0x02, 0x03} {
		if got := c.ReadMemory(0x2000 + uint16(i)); got != want {
			t.Fatalf("byte %d: got 0x%02x, want 0x%02x", i, got, want)
		}
	}
	if c.FlagParityOverflow() {
		t.Fatalf("LDIR always finishes with BC==0, P/V must clear")
	}
	assertCycles(t, c, 21+21+16, "LDIR over 3 bytes")
}

func TestLDIRRewindPCRepeatsAcrossSteps(t *testing.T) {
	c := NewWithOptions(&Ports{}, RepeatRewindPC)
	c.SetHL(0x1000)
	c.SetDE(0x2000)
	c.SetBC(0x0002)
	c.WriteMemory(0x1000, 0x11)
	c.WriteMemory(0x1001, 0x22)
	c.LoadProgram([]byte{0xED, 0xB0}, 0)

	c.Step()
	if c.BC() != 1 {
		t.Fatalf("after first Step, BC: got %d, want 1", c.BC())
	}
	if c.PC() != 0 {
		t.Fatalf("RepeatRewindPC must rewind PC to the ED byte: got 0x%04x", c.PC())
	}

	c.Step()
	if c.BC() != 0 {
		t.Fatalf("after second Step, BC: got %d, want 0", c.BC())
	}
	if c.ReadMemory(0x2001) != 0x22 {
		t.Fatalf("second byte not transferred: got 0x%02x", c.ReadMemory(0x2001))
	}
}
