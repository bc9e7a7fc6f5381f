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
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/hallgrim/microstep/pkg/cpu"
	"github.com/hallgrim/microstep/pkg/debugger"
	"github.com/hallgrim/microstep/pkg/encoding"
	"github.com/hallgrim/microstep/pkg/loader"
)

var helpvar bool
var hexvar bool
var addrvar string

const usage = "microstep [-hex] [-addr 0x####] filename"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&hexvar, "hex", false, "Interprets filename as a hex-text program instead of a raw binary")
	flag.StringVar(&addrvar, "addr", "0x0000", "Origin address to load the program at, and the initial PC")
	flag.Parse()
}

func readProgram(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if hexvar {
		return loader.Parse(file)
	}
	return io.ReadAll(file)
}

func microstep() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()
	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	origin, err := encoding.DecodeHex(addrvar)
	if err != nil {
		log.Println(err)
		return 1
	}

	program, err := readProgram(args[0])
	if err != nil {
		log.Println(err)
		return 1
	}

	var c cpu.CPU
	c.LoadProgram(program, origin)
	c.Reset(origin)

	var dbg debugger.Debugger

	brk := make(chan os.Signal, 1)
	defer close(brk)

	signal.Notify(brk, os.Interrupt)
	go func() {
		for range brk {
			fmt.Println()
			shouldBreak = true
		}
	}()

	enterRawTerm()
	defer exitRawTerm()

	repl(&c, &dbg)

	return 0
}

func main() {
	os.Exit(microstep())
}
