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

// Package trace holds the immutable record types produced by the micro-step
// engine in pkg/cpu: one BusEvent per memory transaction, folded into one
// TraceFrame per micro-step.
package trace

// MicroState is one phase of an instruction's fetch/decode/execute cycle.
type MicroState int

const (
	FetchOp MicroState = iota
	FetchOpLo
	FetchOpHi
	Decode
	MemRead  // reserved, never entered by the engine
	MemWrite // reserved, never entered by the engine
	Execute
	WriteBack
	Halted
)

func (s MicroState) String() string {
	switch s {
	case FetchOp:
		return "FetchOp"
	case FetchOpLo:
		return "FetchOpLo"
	case FetchOpHi:
		return "FetchOpHi"
	case Decode:
		return "Decode"
	case MemRead:
		return "MemRead"
	case MemWrite:
		return "MemWrite"
	case Execute:
		return "Execute"
	case WriteBack:
		return "WriteBack"
	case Halted:
		return "Halted"
	default:
		return "?"
	}
}

// BusDir is the direction of a bus transaction.
type BusDir int

const (
	BusNone BusDir = iota
	BusRead
	BusWrite
)

func (d BusDir) String() string {
	switch d {
	case BusRead:
		return "RD"
	case BusWrite:
		return "WR"
	default:
		return "--"
	}
}

// BusEvent describes a single memory read or write issued during a
// micro-step. It is purely descriptive and is never replayed.
type BusEvent struct {
	Cycle   uint64
	State   MicroState
	Dir     BusDir
	Address uint16
	Data    uint8
	Note    string
}

// TraceFrame is a snapshot of architectural state taken immediately after a
// micro-step executes, together with whatever bus events that step issued.
type TraceFrame struct {
	Cycle  uint64
	PC     uint16
	A      uint8
	B      uint8
	X      uint8
	SP     uint8 // low byte only
	Flags  uint8
	Opcode uint8
	State  MicroState
	Events []BusEvent
}
