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

import "github.com/hallgrim/microstep/pkg/trace"

// Reset brings the machine to a known state: registers and flags cleared,
// SP set to StackInit, PC set to pcInit, Halted cleared, the cycle counter
// zeroed, Timeline cleared, and Ustate set to FetchOp. It does not consult
// the reset vector at 0xFFFC/0xFFFD; callers that want vector-driven reset
// must read the vector themselves and pass the result as pcInit.
func (c *CPU) Reset(pcInit uint16) {
	c.A, c.B, c.X = 0, 0, 0
	c.Flags = 0
	c.SP = StackInit
	c.PC = pcInit
	c.Halted = false
	c.Cycles = 0
	c.Ustate = trace.FetchOp
	c.Opcode = 0
	c.Opaddr = 0
	c.Timeline = nil
}

// LoadProgram copies bytes into memory starting at origin. If bytes would
// run past the end of the address space it is silently truncated to fit.
func (c *CPU) LoadProgram(bytes []byte, origin uint16) {
	max := MemSize - int(origin)
	if max <= 0 {
		return
	}

	n := len(bytes)
	if n > max {
		n = max
	}

	copy(c.Mem[origin:], bytes[:n])
}

// Write16 stores v as a little-endian 16-bit quantity: the low byte at
// addr, the high byte at addr+1. It issues no bus event. addr+1 wraps to
// 0x0000 when addr is 0xFFFF.
func (c *CPU) Write16(addr uint16, v uint16) {
	c.Mem[addr] = uint8(v)
	c.Mem[addr+1] = uint8(v >> 8)
}
