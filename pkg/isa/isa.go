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

// Package isa holds the single opcode table the micro-step engine's Decode
// phase and the external disassembler both read from, so the two can never
// disagree about an instruction's addressing mode or length.
package isa

// AddrMode classifies how an opcode's operand (if any) is fetched.
type AddrMode int

const (
	// AddrImplied opcodes carry no operand bytes (e.g. ADD B, HLT).
	AddrImplied AddrMode = iota
	// AddrImmediate opcodes carry a single operand byte, the value itself.
	AddrImmediate
	// AddrAbsolute opcodes carry a 16-bit little-endian address.
	AddrAbsolute
	// AddrIndexed opcodes carry a 16-bit address added to X.
	AddrIndexed
)

// Info describes one opcode: its disassembly mnemonic, how its operand (if
// any) is fetched, and the instruction's total length in bytes.
type Info struct {
	Mnemonic string
	Mode     AddrMode
	Length   uint8
}

// Table maps opcode byte to Info for every opcode this ISA defines. Opcodes
// absent from Table are unknown and are treated as HLT by the engine and
// rendered as raw data bytes by the disassembler.
var Table = map[uint8]Info{
	0x00: {"NOP", AddrImplied, 1},

	0x10: {"LDA", AddrImmediate, 2},
	0x11: {"LDB", AddrImmediate, 2},
	0x33: {"LDX", AddrImmediate, 2},

	0x12: {"LDA", AddrAbsolute, 3},
	0x13: {"STA", AddrAbsolute, 3},
	0x34: {"LDA", AddrIndexed, 3},
	0x35: {"STA", AddrIndexed, 3},

	0x20: {"ADD", AddrImplied, 1},
	0x21: {"SUB", AddrImplied, 1},
	0x22: {"AND", AddrImplied, 1},
	0x23: {"OR", AddrImplied, 1},
	0x24: {"XOR", AddrImplied, 1},
	0x25: {"INC", AddrImplied, 1},
	0x26: {"DEC", AddrImplied, 1},

	0x30: {"JMP", AddrAbsolute, 3},
	0x31: {"JZ", AddrAbsolute, 3},
	0x32: {"JNZ", AddrAbsolute, 3},

	0xFF: {"HLT", AddrImplied, 1},
}

// Lookup returns the Info for op and whether op is a known opcode. Unknown
// opcodes are the engine's and the disassembler's signal to fall back to a
// one-byte implied-mode treatment (HLT for the engine, ".DB" for the
// disassembler).
func Lookup(op uint8) (Info, bool) {
	info, ok := Table[op]
	return info, ok
}

// Mnemonic returns op's mnemonic, or ".DB" if op is not a known opcode.
func Mnemonic(op uint8) string {
	if info, ok := Table[op]; ok {
		return info.Mnemonic
	}
	return ".DB"
}

// Length returns the instruction length in bytes for op, treating unknown
// opcodes as a single raw byte.
func Length(op uint8) uint8 {
	if info, ok := Table[op]; ok {
		return info.Length
	}
	return 1
}
