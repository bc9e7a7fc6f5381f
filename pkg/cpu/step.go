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

package cpu

import (
	"github.com/hallgrim/microstep/pkg/isa"
	"github.com/hallgrim/microstep/pkg/trace"
)

// StepCycle advances the machine by exactly one micro-state transition. It
// is a no-op once Halted is true. Every call appends exactly one TraceFrame
// to Timeline, even when the phase issues no bus transaction.
func (c *CPU) StepCycle() {
	if c.Halted {
		return
	}

	var events []trace.BusEvent
	var next trace.MicroState

	switch c.Ustate {
	case trace.FetchOp:
		events, next = c.doFetchOp()
	case trace.FetchOpLo:
		events, next = c.doFetchOpLo()
	case trace.FetchOpHi:
		events, next = c.doFetchOpHi()
	case trace.Decode:
		next = c.doDecode()
	case trace.Execute:
		events, next = c.doExecute()
	case trace.WriteBack:
		next = trace.FetchOp
	default:
		// Halted, or one of the reserved-but-unused states. Neither is
		// reachable in practice; treat as a halt if it ever is.
		c.Halted = true
		next = trace.Halted
	}

	c.Ustate = next

	c.Timeline = append(c.Timeline, trace.TraceFrame{
		Cycle:  c.Cycles,
		PC:     c.PC,
		A:      c.A,
		B:      c.B,
		X:      c.X,
		SP:     uint8(c.SP),
		Flags:  c.Flags,
		Opcode: c.Opcode,
		State:  c.Ustate,
		Events: events,
	})

	c.Cycles++
}

// StepInstr advances the machine until the next FetchOp boundary. If called
// mid-instruction it first finishes the instruction in flight, then
// executes exactly one more complete instruction. It aligns to instruction
// boundaries regardless of where it is called from.
func (c *CPU) StepInstr() {
	if c.Halted {
		return
	}

	if c.Ustate != trace.FetchOp {
		for {
			c.StepCycle()
			if c.Ustate == trace.FetchOp || c.Halted {
				break
			}
		}
	}

	for {
		c.StepCycle()
		if c.Ustate == trace.FetchOp || c.Halted {
			break
		}
	}
}

func (c *CPU) doFetchOp() ([]trace.BusEvent, trace.MicroState) {
	v, ev := c.busRead(c.PC, "opcode fetch")
	c.PC++
	c.Opcode = v

	return []trace.BusEvent{ev}, trace.Decode
}

func (c *CPU) doDecode() trace.MicroState {
	info, ok := isa.Lookup(c.Opcode)
	if !ok {
		// Unknown opcode: Execute will treat it as HLT.
		return trace.Execute
	}

	switch info.Mode {
	case isa.AddrImmediate, isa.AddrAbsolute, isa.AddrIndexed:
		return trace.FetchOpLo
	default:
		return trace.Execute
	}
}

func (c *CPU) doFetchOpLo() ([]trace.BusEvent, trace.MicroState) {
	v, ev := c.busRead(c.PC, "operand lo")
	c.PC++
	c.Opaddr = uint16(v)

	info, ok := isa.Lookup(c.Opcode)
	if ok && info.Mode == isa.AddrImmediate {
		return []trace.BusEvent{ev}, trace.Execute
	}

	return []trace.BusEvent{ev}, trace.FetchOpHi
}

func (c *CPU) doFetchOpHi() ([]trace.BusEvent, trace.MicroState) {
	v, ev := c.busRead(c.PC, "operand hi")
	c.PC++
	c.Opaddr |= uint16(v) << 8

	return []trace.BusEvent{ev}, trace.Execute
}

func (c *CPU) doExecute() ([]trace.BusEvent, trace.MicroState) {
	var events []trace.BusEvent

	switch c.Opcode {
	case opNOP:
		// no effect

	case opLDAimm:
		c.A = uint8(c.Opaddr)
		c.setZN(c.A)

	case opLDBimm:
		c.B = uint8(c.Opaddr)
		c.setZN(c.B)

	case opLDXimm:
		c.X = uint8(c.Opaddr)
		c.setZN(c.X)

	case opLDAabs:
		v, ev := c.busRead(c.Opaddr, "LDA mem")
		events = append(events, ev)
		c.A = v
		c.setZN(c.A)

	case opSTAabs:
		ev := c.busWrite(c.Opaddr, c.A, "STA mem")
		events = append(events, ev)

	case opLDAidxX:
		ea := c.Opaddr + uint16(c.X)
		v, ev := c.busRead(ea, "LDA [abs+X]")
		events = append(events, ev)
		c.A = v
		c.setZN(c.A)

	case opSTAidxX:
		ea := c.Opaddr + uint16(c.X)
		ev := c.busWrite(ea, c.A, "STA [abs+X]")
		events = append(events, ev)

	case opADDB:
		res := uint16(c.A) + uint16(c.B)
		a := c.A
		c.setAddFlags(res, a, c.B)
		c.A = uint8(res)

	case opSUBB:
		res := uint16(c.A) + uint16(^c.B) + 1
		a := c.A
		c.setSubFlags(res, a, c.B)
		c.A = uint8(res)

	case opANDB:
		c.A &= c.B
		c.setZN(c.A)

	case opORB:
		c.A |= c.B
		c.setZN(c.A)

	case opXORB:
		c.A ^= c.B
		c.setZN(c.A)

	case opINCA:
		c.A = c.A + 1
		c.setZN(c.A)

	case opDECA:
		c.A = c.A - 1
		c.setZN(c.A)

	case opJMP:
		c.PC = c.Opaddr

	case opJZ:
		if c.Flags&FlagZ != 0 {
			c.PC = c.Opaddr
		}

	case opJNZ:
		if c.Flags&FlagZ == 0 {
			c.PC = c.Opaddr
		}

	case opHLT:
		c.Halted = true

	default:
		// Unknown opcode: halt gracefully rather than trap.
		c.Halted = true
	}

	if c.Halted {
		return events, trace.Halted
	}

	return events, trace.WriteBack
}
