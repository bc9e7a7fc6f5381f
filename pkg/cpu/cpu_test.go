// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package cpu_test

import (
	"testing"

	"github.com/hallgrim/microstep/pkg/cpu"
	"github.com/hallgrim/microstep/pkg/trace"
)

func newLoaded(t *testing.T, program []byte) *cpu.CPU {
	t.Helper()

	var c cpu.CPU
	c.LoadProgram(program, 0x0000)
	c.Reset(0x0000)

	return &c
}

// S1 — LDA immediate then HLT.
func TestLDAThenHalt(t *testing.T) {
	c := newLoaded(t, []byte{0x10, 0x2A, 0xFF})

	c.StepInstr()

	if c.A != 0x2A {
		t.Errorf("A: want 0x2A, have %#02x", c.A)
	}
	if c.Flags&cpu.FlagZ != 0 {
		t.Error("Z: want clear")
	}
	if c.Flags&cpu.FlagN != 0 {
		t.Error("N: want clear")
	}
	if c.PC != 0x0002 {
		t.Errorf("PC: want 0x0002, have %#04x", c.PC)
	}

	c.StepInstr()

	if !c.Halted {
		t.Error("Halted: want true")
	}
	if c.Ustate != trace.Halted {
		t.Errorf("Ustate: want Halted, have %s", c.Ustate)
	}
}

// S2 — ADD with carry and zero.
func TestAddCarryZero(t *testing.T) {
	c := newLoaded(t, []byte{0x10, 0xFF, 0x11, 0x01, 0x20, 0xFF})

	for i := 0; i < 3; i++ {
		c.StepInstr()
	}

	if c.A != 0x00 {
		t.Errorf("A: want 0x00, have %#02x", c.A)
	}

	want := cpu.FlagC | cpu.FlagZ
	if c.Flags != want {
		t.Errorf("Flags: want %#02x, have %#02x", want, c.Flags)
	}
}

// S3 — Signed overflow on ADD.
func TestAddSignedOverflow(t *testing.T) {
	c := newLoaded(t, []byte{0x10, 0x7F, 0x11, 0x01, 0x20, 0xFF})

	for i := 0; i < 3; i++ {
		c.StepInstr()
	}

	if c.A != 0x80 {
		t.Errorf("A: want 0x80, have %#02x", c.A)
	}

	want := cpu.FlagN | cpu.FlagV
	if c.Flags != want {
		t.Errorf("Flags: want %#02x, have %#02x", want, c.Flags)
	}
}

// S4 — Subtraction borrow semantics.
func TestSubBorrow(t *testing.T) {
	noBorrow := newLoaded(t, []byte{0x10, 0x05, 0x11, 0x03, 0x21, 0xFF})
	for i := 0; i < 3; i++ {
		noBorrow.StepInstr()
	}

	if noBorrow.A != 0x02 {
		t.Errorf("A: want 0x02, have %#02x", noBorrow.A)
	}
	if noBorrow.Flags&cpu.FlagC == 0 {
		t.Error("C: want set (no borrow)")
	}
	if noBorrow.Flags&cpu.FlagN != 0 {
		t.Error("N: want clear")
	}

	borrow := newLoaded(t, []byte{0x10, 0x03, 0x11, 0x05, 0x21, 0xFF})
	for i := 0; i < 3; i++ {
		borrow.StepInstr()
	}

	if borrow.A != 0xFE {
		t.Errorf("A: want 0xFE, have %#02x", borrow.A)
	}
	if borrow.Flags&cpu.FlagC != 0 {
		t.Error("C: want clear (borrow)")
	}
	if borrow.Flags&cpu.FlagN == 0 {
		t.Error("N: want set")
	}
}

// S5 — Store/Load round-trip through memory.
func TestStoreLoadRoundTrip(t *testing.T) {
	c := newLoaded(t, []byte{
		0x10, 0x42,
		0x13, 0x00, 0x80,
		0x10, 0x00,
		0x12, 0x00, 0x80,
		0xFF,
	})

	for i := 0; i < 4; i++ {
		c.StepInstr()
	}

	if c.A != 0x42 {
		t.Errorf("A: want 0x42, have %#02x", c.A)
	}
	if c.Mem[0x8000] != 0x42 {
		t.Errorf("mem[0x8000]: want 0x42, have %#02x", c.Mem[0x8000])
	}

	var sawWrite, sawRead bool
	var writeCycle, readCycle uint64

	for _, frame := range c.Timeline {
		for _, ev := range frame.Events {
			if ev.Address != 0x8000 {
				continue
			}
			if ev.Dir == trace.BusWrite && !sawWrite {
				sawWrite = true
				writeCycle = ev.Cycle
			}
			if ev.Dir == trace.BusRead {
				sawRead = true
				readCycle = ev.Cycle
			}
		}
	}

	if !sawWrite {
		t.Error("expected a bus Write event to 0x8000")
	}
	if !sawRead {
		t.Error("expected a bus Read event from 0x8000")
	}
	if sawWrite && sawRead && readCycle < writeCycle {
		t.Errorf("read (cycle %d) happened before write (cycle %d)", readCycle, writeCycle)
	}
}

// S6 — Indexed addressing.
func TestIndexedAddressing(t *testing.T) {
	c := newLoaded(t, []byte{
		0x33, 0x05,
		0x10, 0x99,
		0x13, 0x00, 0x80,
		0x35, 0x00, 0x80,
		0xFF,
	})

	for i := 0; i < 4; i++ {
		c.StepInstr()
	}

	if c.Mem[0x8005] != 0x99 {
		t.Errorf("mem[0x8005]: want 0x99, have %#02x", c.Mem[0x8005])
	}
	if c.Mem[0x8000] != 0x99 {
		t.Errorf("mem[0x8000]: want 0x99, have %#02x", c.Mem[0x8000])
	}
	if c.X != 0x05 {
		t.Errorf("X: want 0x05, have %#02x", c.X)
	}
}

// S7 — Infinite loop halted by external control.
func TestInfiniteLoopNeverHalts(t *testing.T) {
	c := newLoaded(t, []byte{0x30, 0x00, 0x00})

	var prevCycles uint64
	var delta uint64

	for i := 0; i < 1000; i++ {
		before := c.Cycles
		c.StepInstr()

		if c.Halted {
			t.Fatalf("unexpectedly halted after %d instructions", i+1)
		}
		if c.PC != 0x0000 {
			t.Fatalf("PC drifted to %#04x after %d instructions", c.PC, i+1)
		}

		d := c.Cycles - before
		if i == 0 {
			delta = d
		} else if d != delta {
			t.Fatalf("cycle delta changed: want %d, have %d at instruction %d", delta, d, i+1)
		}

		prevCycles = c.Cycles
	}

	if prevCycles == 0 {
		t.Fatal("cycles never advanced")
	}
}

func TestLoadProgramTruncatesAtMemoryEnd(t *testing.T) {
	var c cpu.CPU

	program := make([]byte, 16)
	for i := range program {
		program[i] = 0xAA
	}

	c.LoadProgram(program, 0xFFFA)

	for i := 0; i < 6; i++ {
		if c.Mem[0xFFFA+uint16(i)] != 0xAA {
			t.Errorf("mem[%#04x]: want 0xAA, have %#02x", 0xFFFA+i, c.Mem[0xFFFA+uint16(i)])
		}
	}
}

func TestResetIsIdempotent(t *testing.T) {
	var a, b cpu.CPU

	a.LoadProgram([]byte{0x10, 0x01}, 0x0000)
	b.LoadProgram([]byte{0x10, 0x01}, 0x0000)

	a.Reset(0x0010)

	b.Reset(0x0010)
	b.Reset(0x0010)

	if a.PC != b.PC || a.SP != b.SP || a.Flags != b.Flags || a.Ustate != b.Ustate {
		t.Error("double Reset diverged from single Reset")
	}
	if len(a.Timeline) != 0 || len(b.Timeline) != 0 {
		t.Error("Reset should clear the timeline")
	}
}

func TestUnknownOpcodeHalts(t *testing.T) {
	c := newLoaded(t, []byte{0x7E})

	c.StepInstr()

	if !c.Halted {
		t.Error("expected unknown opcode to halt")
	}
	if c.Ustate != trace.Halted {
		t.Errorf("Ustate: want Halted, have %s", c.Ustate)
	}
}

func TestIncDecLeaveCarryAndOverflowUnchanged(t *testing.T) {
	// LDA #0x80; LDB #0x80; ADD B sets both C and V; then INC A; DEC A.
	c := newLoaded(t, []byte{0x10, 0x80, 0x11, 0x80, 0x20, 0x25, 0x26, 0xFF})

	for i := 0; i < 4; i++ {
		c.StepInstr()
	}

	if c.Flags&cpu.FlagC == 0 {
		t.Error("C: want to survive INC unchanged (was set by the preceding ADD)")
	}
	if c.Flags&cpu.FlagV == 0 {
		t.Error("V: want to survive INC unchanged (was set by the preceding ADD)")
	}

	c.StepInstr()

	if c.Flags&cpu.FlagC == 0 {
		t.Error("C: want to survive DEC unchanged")
	}
	if c.Flags&cpu.FlagV == 0 {
		t.Error("V: want to survive DEC unchanged")
	}
}
