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

package debugger

import "github.com/hallgrim/microstep/pkg/trace"

// Breakpoint fires when the CPU's PC equals Addr at a FetchOp boundary.
type Breakpoint struct {
	Addr uint16
}

// Watchpoint fires when a bus event in the most recent TraceFrame touches
// Addr in direction Dir. Dir == trace.BusNone matches both reads and writes.
type Watchpoint struct {
	Addr uint16
	Dir  trace.BusDir
}

// Debugger holds breakpoints and watchpoints against a running CPU. It is
// pull-based: rather than the core calling back into the debugger on every
// bus access, the debugger inspects the TraceFrame the core already
// produced, so pkg/cpu never imports pkg/debugger.
type Debugger struct {
	Breakpoints []Breakpoint
	Watchpoints []Watchpoint
}

// AddBreakpoint registers a breakpoint at addr, if one is not already set
// there.
func (dbg *Debugger) AddBreakpoint(addr uint16) {
	for _, bp := range dbg.Breakpoints {
		if bp.Addr == addr {
			return
		}
	}
	dbg.Breakpoints = append(dbg.Breakpoints, Breakpoint{Addr: addr})
}

// ClearBreakpoint removes the breakpoint at addr, if any, and reports
// whether one was removed.
func (dbg *Debugger) ClearBreakpoint(addr uint16) bool {
	for i, bp := range dbg.Breakpoints {
		if bp.Addr == addr {
			dbg.Breakpoints = append(dbg.Breakpoints[:i], dbg.Breakpoints[i+1:]...)
			return true
		}
	}
	return false
}

// AddWatchpoint registers a watchpoint at addr for the given direction, if
// an identical one is not already set.
func (dbg *Debugger) AddWatchpoint(addr uint16, dir trace.BusDir) {
	for _, wp := range dbg.Watchpoints {
		if wp.Addr == addr && wp.Dir == dir {
			return
		}
	}
	dbg.Watchpoints = append(dbg.Watchpoints, Watchpoint{Addr: addr, Dir: dir})
}

// RemoveWatchpoint removes the watchpoint at index i, reporting whether i
// was in range.
func (dbg *Debugger) RemoveWatchpoint(i int) bool {
	if i < 0 || i >= len(dbg.Watchpoints) {
		return false
	}
	dbg.Watchpoints = append(dbg.Watchpoints[:i], dbg.Watchpoints[i+1:]...)
	return true
}
