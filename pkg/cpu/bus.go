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

// busRead loads the byte at addr and returns it along with the BusEvent
// describing the transaction. It never fails: addr is a uint16 and Mem is
// exactly 1<<16 bytes, so every address is in range by construction.
func (c *CPU) busRead(addr uint16, note string) (uint8, trace.BusEvent) {
	v := c.Mem[addr]

	return v, trace.BusEvent{
		Cycle:   c.Cycles,
		State:   c.Ustate,
		Dir:     trace.BusRead,
		Address: addr,
		Data:    v,
		Note:    note,
	}
}

// busWrite stores data at addr and returns the BusEvent describing the
// transaction.
func (c *CPU) busWrite(addr uint16, data uint8, note string) trace.BusEvent {
	c.Mem[addr] = data

	return trace.BusEvent{
		Cycle:   c.Cycles,
		State:   c.Ustate,
		Dir:     trace.BusWrite,
		Address: addr,
		Data:    data,
		Note:    note,
	}
}

// setZN sets Z iff v == 0 and N iff bit 7 of v is set, leaving C and V
// untouched.
func (c *CPU) setZN(v uint8) {
	if v == 0 {
		c.Flags |= FlagZ
	} else {
		c.Flags &^= FlagZ
	}

	if v&0x80 != 0 {
		c.Flags |= FlagN
	} else {
		c.Flags &^= FlagN
	}
}

// setAddFlags sets C, Z, N, V from a 9-bit-wide addition result, where res
// is the unsigned sum of a and b (res's bit 8 is the carry out).
func (c *CPU) setAddFlags(res uint16, a, b uint8) {
	if res&0x100 != 0 {
		c.Flags |= FlagC
	} else {
		c.Flags &^= FlagC
	}

	r := uint8(res)
	c.setZN(r)

	overflow := (a^b)&0x80 == 0 && (a^r)&0x80 != 0
	if overflow {
		c.Flags |= FlagV
	} else {
		c.Flags &^= FlagV
	}
}

// setSubFlags sets C, Z, N, V for a−b, computed by the caller as the 9-bit
// sum res = a + ^b + 1. C is the inverted borrow: set iff res's bit 8 is 1,
// meaning no borrow occurred.
func (c *CPU) setSubFlags(res uint16, a, b uint8) {
	if res&0x100 != 0 {
		c.Flags |= FlagC
	} else {
		c.Flags &^= FlagC
	}

	r := uint8(res)
	c.setZN(r)

	overflow := (a^b)&0x80 != 0 && (a^r)&0x80 != 0
	if overflow {
		c.Flags |= FlagV
	} else {
		c.Flags &^= FlagV
	}
}
