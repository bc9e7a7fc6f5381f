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

package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/hallgrim/microstep/pkg/cpu"
	"github.com/hallgrim/microstep/pkg/debugger"
	"github.com/hallgrim/microstep/pkg/encoding"
	"github.com/hallgrim/microstep/pkg/loader"
	"github.com/hallgrim/microstep/pkg/trace"
)

const runWatchdog = 10_000_000

var shouldBreak bool
var shouldExit bool

const replUsage = `Commands:
  s, step             step one instruction
  c, cycle            step one cycle (micro-step)
  r, run N            run N instructions, or until a breakpoint
  g, go               run until halt or breakpoint (watchdog-bounded)
  p, regs             print registers
  m, mem ADDR [ROWS]  dump memory from hex ADDR (default 8 rows of 8)
  w, write ADDR BYTE  write BYTE at hex ADDR (BYTE as 0x## hex or #### decimal)
  b, break ADDR       add breakpoint at PC == hex ADDR
  bl, breaks          list breakpoints
  bc, clear ADDR      clear breakpoint at hex ADDR
  watch ADDR [r|w|rw] add watchpoint on hex ADDR (default rw)
  wl, watches         list watchpoints
  wc, wclear [#]      clear watchpoint #, or all if omitted
  t, trace [K]        show last K trace frames (default 20)
  reset               reset the CPU to the original PC and clear the trace
  d, dis ADDR [N]     disassemble N instructions starting at hex ADDR
  loadhex PATH ADDR   load a hex-text program at hex ADDR
  loadbin PATH ADDR   load a raw binary program at hex ADDR
  setrv ADDR          set the reset vector at 0xFFFC to hex ADDR
  help                this text
  quit                exit
`

func repl(c *cpu.CPU, dbg *debugger.Debugger) {
	exitRawTerm()
	defer enterRawTerm()

	origin := c.PC

	scanner := bufio.NewScanner(os.Stdin)

	for !shouldExit {
		fmt.Print("\033[1;30m>\033[0m ")

		if !scanner.Scan() {
			fmt.Println()
			return
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		cmd := args[0]
		args = args[1:]

		switch cmd {
		case "s", "step":
			if !c.Halted {
				c.StepInstr()
				scanNewFrames(c, dbg)
			}
			debugger.PrintRegisters(os.Stdout, c)

		case "c", "cycle":
			if !c.Halted {
				c.StepCycle()
				scanNewFrames(c, dbg)
			}
			debugger.PrintRegisters(os.Stdout, c)

		case "r", "run":
			n := 1
			if len(args) > 0 {
				if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
					n = v
				}
			}
			for i := 0; i < n && !c.Halted && !shouldBreak; i++ {
				if dbg.ShouldBreak(c.PC) {
					fmt.Printf("* breakpoint hit at PC=%#04x\n", c.PC)
					break
				}
				c.StepInstr()
				scanNewFrames(c, dbg)
				if dbg.ShouldBreak(c.PC) {
					fmt.Printf("* breakpoint hit at PC=%#04x\n", c.PC)
					break
				}
			}
			debugger.PrintRegisters(os.Stdout, c)

		case "g", "go":
			watchdog := runWatchdog
			for !c.Halted && watchdog > 0 && !shouldBreak {
				if dbg.ShouldBreak(c.PC) {
					fmt.Printf("* breakpoint hit at PC=%#04x\n", c.PC)
					break
				}
				c.StepInstr()
				scanNewFrames(c, dbg)
				watchdog--
			}
			if watchdog == 0 {
				fmt.Println("* watchdog expired")
			}
			debugger.PrintRegisters(os.Stdout, c)

		case "p", "regs":
			debugger.PrintRegisters(os.Stdout, c)

		case "m", "mem":
			cmdMem(c, args)

		case "w", "write":
			cmdWrite(c, args)

		case "b", "break":
			cmdBreak(dbg, args)

		case "bl", "breaks":
			for i, bp := range dbg.Breakpoints {
				fmt.Printf("#%d: %#04x\n", i, bp.Addr)
			}

		case "bc", "clear":
			cmdClearBreak(dbg, args)

		case "watch":
			cmdWatch(dbg, args)

		case "wl", "watches":
			for i, wp := range dbg.Watchpoints {
				fmt.Printf("#%d: %#04x %s\n", i, wp.Addr, watchDirName(wp.Dir))
			}

		case "wc", "wclear":
			cmdClearWatch(dbg, args)

		case "t", "trace":
			k := 20
			if len(args) > 0 {
				if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
					k = v
				}
			}
			debugger.PrintTrace(os.Stdout, c, k)

		case "reset":
			c.Reset(origin)
			scanMark = 0
			fmt.Println("reset done")
			debugger.PrintRegisters(os.Stdout, c)

		case "d", "dis", "disasm":
			cmdDisasm(c, args)

		case "loadhex":
			cmdLoad(c, args, true)

		case "loadbin":
			cmdLoad(c, args, false)

		case "setrv":
			cmdSetRV(c, args)

		case "help", "h", "?":
			fmt.Print(replUsage)

		case "q", "quit", "exit":
			shouldExit = true

		default:
			fmt.Printf("unknown command %q, type 'help'\n", cmd)
		}

		if shouldBreak {
			shouldBreak = false
			fmt.Println("* interrupted")
		}
	}
}

// scanNewFrames walks the frames appended by the most recent step, once:
// it echoes any write to cpu.OutPort (mirroring the teacher's display-device
// write hook without the core needing to know about it) and reports any
// watchpoint hit against dbg, the host-side collaborator that inspects each
// TraceFrame after the fact instead of the core calling back into it.
func scanNewFrames(c *cpu.CPU, dbg *debugger.Debugger) {
	start := scanMark
	if start > len(c.Timeline) {
		start = 0
	}

	for _, frame := range c.Timeline[start:] {
		for _, ev := range frame.Events {
			if ev.Dir == trace.BusWrite && ev.Address == cpu.OutPort {
				fmt.Printf("OUT0: %c\n", ev.Data)
			}
		}
		for _, hit := range dbg.Watched(frame) {
			fmt.Printf("* watchpoint hit: %s %#04x = %#02x  %s\n", hit.Dir, hit.Address, hit.Data, hit.Note)
		}
	}

	scanMark = len(c.Timeline)
}

var scanMark int

func cmdMem(c *cpu.CPU, args []string) {
	const usage = "usage: mem ADDR [ROWS]"
	if len(args) == 0 {
		log.Println(usage)
		return
	}

	addr, err := encoding.DecodeHex(args[0])
	if err != nil {
		log.Println(err)
		return
	}

	rows := uint16(8)
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil && v > 0 {
			rows = uint16(v)
		}
	}

	debugger.PrintMemory(os.Stdout, c, addr, rows)
}

func cmdWrite(c *cpu.CPU, args []string) {
	const usage = "usage: write ADDR BYTE"
	if len(args) != 2 {
		log.Println(usage)
		return
	}

	addr, err := encoding.DecodeHex(args[0])
	if err != nil {
		log.Println(err)
		return
	}

	value, err := decodeByte(args[1])
	if err != nil {
		log.Println(err)
		return
	}

	c.Mem[addr] = value
	fmt.Printf("wrote %#02x to [%#04x]\n", value, addr)
}

// decodeByte accepts either the REPL's usual 0x##/x## hex form or a base-10
// #123/123 literal, so a BYTE argument can be written in whichever base is
// more natural at the prompt.
func decodeByte(s string) (uint8, error) {
	if v, err := encoding.DecodeHex(s); err == nil {
		return uint8(v), nil
	}

	v, err := encoding.DecodeInt(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 0xFF {
		return 0, fmt.Errorf("%d is out of byte range", v)
	}

	return uint8(v), nil
}

func cmdBreak(dbg *debugger.Debugger, args []string) {
	const usage = "usage: break ADDR"
	if len(args) != 1 {
		log.Println(usage)
		return
	}

	addr, err := encoding.DecodeHex(args[0])
	if err != nil {
		log.Println(err)
		return
	}

	dbg.AddBreakpoint(addr)
	fmt.Printf("breakpoint added at %#04x\n", addr)
}

func cmdClearBreak(dbg *debugger.Debugger, args []string) {
	if len(args) == 0 {
		dbg.Breakpoints = nil
		fmt.Println("breakpoints cleared")
		return
	}

	addr, err := encoding.DecodeHex(args[0])
	if err != nil {
		log.Println(err)
		return
	}

	if dbg.ClearBreakpoint(addr) {
		fmt.Printf("breakpoint cleared at %#04x\n", addr)
	} else {
		fmt.Printf("no breakpoint at %#04x\n", addr)
	}
}

func cmdWatch(dbg *debugger.Debugger, args []string) {
	const usage = "usage: watch ADDR [r|w|rw]"
	if len(args) < 1 || len(args) > 2 {
		log.Println(usage)
		return
	}

	addr, err := encoding.DecodeHex(args[0])
	if err != nil {
		log.Println(err)
		return
	}

	dir := trace.BusNone
	if len(args) == 2 {
		switch args[1] {
		case "r", "read":
			dir = trace.BusRead
		case "w", "write":
			dir = trace.BusWrite
		case "rw", "readwrite":
			dir = trace.BusNone
		default:
			log.Println(usage)
			return
		}
	}

	dbg.AddWatchpoint(addr, dir)
	fmt.Printf("watchpoint added at %#04x (%s)\n", addr, watchDirName(dir))
}

func cmdClearWatch(dbg *debugger.Debugger, args []string) {
	if len(args) == 0 {
		dbg.Watchpoints = nil
		fmt.Println("watchpoints cleared")
		return
	}

	i, err := strconv.Atoi(args[0])
	if err != nil {
		log.Println(err)
		return
	}

	if dbg.RemoveWatchpoint(i) {
		fmt.Printf("watchpoint #%d cleared\n", i)
	} else {
		fmt.Printf("no watchpoint #%d\n", i)
	}
}

func watchDirName(dir trace.BusDir) string {
	switch dir {
	case trace.BusRead:
		return "read"
	case trace.BusWrite:
		return "write"
	default:
		return "read/write"
	}
}

func cmdDisasm(c *cpu.CPU, args []string) {
	const usage = "usage: dis ADDR [N]"
	if len(args) == 0 {
		log.Println(usage)
		return
	}

	addr, err := encoding.DecodeHex(args[0])
	if err != nil {
		log.Println(err)
		return
	}

	n := 16
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil && v > 0 {
			n = v
		}
	}

	debugger.DisasmRange(os.Stdout, c.Mem[:], addr, n)
}

func cmdLoad(c *cpu.CPU, args []string, hex bool) {
	const usage = "usage: loadhex|loadbin PATH ADDR"
	if len(args) != 2 {
		log.Println(usage)
		return
	}

	addr, err := encoding.DecodeHex(args[1])
	if err != nil {
		log.Println(err)
		return
	}

	file, err := os.Open(args[0])
	if err != nil {
		log.Println(err)
		return
	}
	defer file.Close()

	var program []byte
	if hex {
		program, err = loader.Parse(file)
	} else {
		program, err = io.ReadAll(file)
	}
	if err != nil {
		log.Println(err)
		return
	}

	c.LoadProgram(program, addr)
	fmt.Printf("loaded %d bytes at %#04x\n", len(program), addr)
}

func cmdSetRV(c *cpu.CPU, args []string) {
	const usage = "usage: setrv ADDR"
	if len(args) != 1 {
		log.Println(usage)
		return
	}

	addr, err := encoding.DecodeHex(args[0])
	if err != nil {
		log.Println(err)
		return
	}

	c.Write16(0xFFFC, addr)
	fmt.Printf("reset vector set to %#04x\n", addr)
}
