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

// Package debugger provides breakpoints and watchpoints against a
// pkg/cpu.CPU, plus the register/memory/trace printers cmd/microstep uses
// to render machine state.
package debugger

import (
	"fmt"
	"io"

	"github.com/hallgrim/microstep/pkg/cpu"
	"github.com/hallgrim/microstep/pkg/isa"
	"github.com/hallgrim/microstep/pkg/trace"
)

// ShouldBreak reports whether pc matches a registered breakpoint.
func (dbg *Debugger) ShouldBreak(pc uint16) bool {
	for _, bp := range dbg.Breakpoints {
		if bp.Addr == pc {
			return true
		}
	}
	return false
}

// Watched returns the bus events in frame that match a registered
// watchpoint, in the order they occurred.
func (dbg *Debugger) Watched(frame trace.TraceFrame) []trace.BusEvent {
	var hits []trace.BusEvent

	for _, ev := range frame.Events {
		for _, wp := range dbg.Watchpoints {
			if ev.Address != wp.Addr {
				continue
			}
			if wp.Dir != trace.BusNone && wp.Dir != ev.Dir {
				continue
			}
			hits = append(hits, ev)
			break
		}
	}

	return hits
}

// PrintRegisters writes the machine's architectural registers and flags to
// w in a single line.
func PrintRegisters(w io.Writer, c *cpu.CPU) {
	fmt.Fprintf(w, "PC=%#04x A=%#02x B=%#02x X=%#02x SP=%#02x  Z=%d N=%d C=%d V=%d  cycle=%d %s\n",
		c.PC, c.A, c.B, c.X, c.SP,
		bit(c.Flags, cpu.FlagZ), bit(c.Flags, cpu.FlagN), bit(c.Flags, cpu.FlagC), bit(c.Flags, cpu.FlagV),
		c.Cycles, c.Ustate)
}

func bit(flags, mask uint8) int {
	if flags&mask != 0 {
		return 1
	}
	return 0
}

// PrintMemory writes rows of 8 bytes each, starting at addr, to w. A zero
// byte is dimmed to make sparse regions easy to scan.
func PrintMemory(w io.Writer, c *cpu.CPU, addr uint16, rows uint16) {
	const perRow = 8

	for r := uint16(0); r < rows; r++ {
		base := addr + r*perRow
		fmt.Fprintf(w, "\033[1m[%#04x]\033[0m ", base)

		for i := uint16(0); i < perRow; i++ {
			v := c.Mem[base+i]
			if v == 0 {
				fmt.Fprintf(w, "\033[1;30m%#02x\033[0m ", v)
			} else {
				fmt.Fprintf(w, "%#02x ", v)
			}
		}

		fmt.Fprintln(w)
	}
}

// PrintTrace writes the last k TraceFrames in c.Timeline to w, oldest
// first, one line per frame plus one indented line per bus event.
func PrintTrace(w io.Writer, c *cpu.CPU, k int) {
	frames := c.Timeline
	if k > 0 && k < len(frames) {
		frames = frames[len(frames)-k:]
	}

	for _, f := range frames {
		fmt.Fprintf(w, "cycle=%-5d pc=%#04x op=%#02x %-9s\n", f.Cycle, f.PC, f.Opcode, f.State)
		for _, ev := range f.Events {
			fmt.Fprintf(w, "    %s %#04x <- %#02x  %s\n", ev.Dir, ev.Address, ev.Data, ev.Note)
		}
	}
}

// DisasmOne renders the instruction at pc in mem as one line: address,
// raw bytes, mnemonic, and operand. Unknown opcodes render as a ".DB" data
// byte, the same one-byte fallback Decode uses when it can't classify an
// opcode.
func DisasmOne(mem []byte, pc uint16) string {
	op := mem[pc]
	info, ok := isa.Lookup(op)

	length := uint8(1)
	mnemonic := ".DB"
	if ok {
		length = info.Length
		mnemonic = info.Mnemonic
	}

	var lo, hi uint8
	if length >= 2 {
		lo = mem[pc+1]
	}
	if length >= 3 {
		hi = mem[pc+2]
	}

	bytes := fmt.Sprintf("%02x", op)
	for i := uint8(1); i < length; i++ {
		bytes += fmt.Sprintf(" %02x", mem[pc+uint16(i)])
	}

	line := fmt.Sprintf("%04x:  %-8s  ", pc, bytes)

	if !ok {
		return line + fmt.Sprintf(".DB $%02x", op)
	}

	switch info.Mode {
	case isa.AddrImplied:
		return line + mnemonic
	case isa.AddrImmediate:
		return line + fmt.Sprintf("%s #$%02x", mnemonic, lo)
	case isa.AddrAbsolute:
		abs := uint16(lo) | uint16(hi)<<8
		return line + fmt.Sprintf("%s $%04x", mnemonic, abs)
	case isa.AddrIndexed:
		abs := uint16(lo) | uint16(hi)<<8
		return line + fmt.Sprintf("%s $%04x,X", mnemonic, abs)
	default:
		return line + mnemonic
	}
}

// DisasmUntil renders instructions starting at start up to (but not
// including) end, advancing by each instruction's actual length. If an
// instruction's bytes would straddle end it is still rendered whole.
// end is a plain int rather than uint16 so a caller can pass 0x10000 to
// mean "through the top of the address space" without it wrapping to 0.
func DisasmUntil(w io.Writer, mem []byte, start uint16, end int) {
	for pc := int(start); pc < end; {
		addr := uint16(pc)
		fmt.Fprintln(w, DisasmOne(mem, addr))
		pc += int(isa.Length(mem[addr]))
	}
}

// DisasmRange renders count instructions starting at start, advancing by
// each instruction's actual length, and writes one line per instruction
// to w.
func DisasmRange(w io.Writer, mem []byte, start uint16, count int) {
	pc := start
	for i := 0; i < count; i++ {
		fmt.Fprintln(w, DisasmOne(mem, pc))
		pc += uint16(isa.Length(mem[pc]))
	}
}
