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

// Package cpu implements the architectural state and micro-step execution
// engine of the emulated CPU: registers, flags, a flat 64 KiB memory, and
// the FetchOp/Decode/FetchOpLo/FetchOpHi/Execute/WriteBack state machine
// that drives it one cycle at a time.
package cpu

import "github.com/hallgrim/microstep/pkg/trace"

// MemSize is the size, in bytes, of the CPU's address space.
const MemSize = 1 << 16

// CPU is the complete architectural and microarchitectural state of one
// emulated machine. The zero value is not ready to run; call Reset (after
// optionally calling LoadProgram) before stepping.
type CPU struct {
	A, B, X uint8
	PC      uint16
	SP      uint16
	Flags   uint8

	Mem [MemSize]byte

	Halted bool
	Cycles uint64
	Ustate trace.MicroState
	Opcode uint8
	Opaddr uint16

	Timeline []trace.TraceFrame
}
