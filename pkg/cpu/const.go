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

const (
	FlagC uint8 = 1 << 0 // Carry
	FlagZ uint8 = 1 << 1 // Zero
	FlagN uint8 = 1 << 2 // Negative (mirrors bit 7 of the last result)
	FlagV uint8 = 1 << 3 // Signed overflow
)

const (
	// StackInit is the stack pointer's value immediately after Reset.
	StackInit uint16 = 0x01FF

	// OutPort is the conventional OUT0 output address. The core makes no
	// distinction between this address and ordinary RAM; it exists only
	// so external observers (cmd/microstep) know where to watch.
	OutPort uint16 = 0xFF00
)

const (
	opNOP = 0x00

	opLDAimm = 0x10
	opLDBimm = 0x11
	opLDXimm = 0x33

	opLDAabs  = 0x12
	opSTAabs  = 0x13
	opLDAidxX = 0x34
	opSTAidxX = 0x35

	opADDB = 0x20
	opSUBB = 0x21
	opANDB = 0x22
	opORB  = 0x23
	opXORB = 0x24
	opINCA = 0x25
	opDECA = 0x26

	opJMP = 0x30
	opJZ  = 0x31
	opJNZ = 0x32

	opHLT = 0xFF
)
