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

	"github.com/hallgrim/microstep/pkg/debugger"
	"github.com/hallgrim/microstep/pkg/encoding"
	"github.com/hallgrim/microstep/pkg/loader"
)

var helpvar bool
var hexvar bool
var addrvar string
var countvar int

const usage = "microstep-dis [-hex] [-addr 0x####] [-n count] [filename]"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&hexvar, "hex", false, "Interprets the input as a hex-text program instead of a raw binary")
	flag.StringVar(&addrvar, "addr", "0x0000", "Origin address the image is mapped to")
	flag.IntVar(&countvar, "n", 0, "Number of instructions to print; 0 disassembles the whole image")
	flag.Parse()
}

func microstepDis() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	var input io.Reader

	if stat, _ := os.Stdin.Stat(); stat.Mode()&os.ModeCharDevice == 0 && len(args) == 0 {
		input = os.Stdin
		log.SetPrefix("<stdin>: ")
	} else {
		if len(args) != 1 {
			log.Println(usage)
			return 1
		}

		file, err := os.Open(args[0])
		if err != nil {
			log.Println(err)
			return 1
		}
		defer file.Close()

		input = file
		log.SetPrefix(fmt.Sprintf("%s: ", args[0]))
	}

	origin, err := encoding.DecodeHex(addrvar)
	if err != nil {
		log.Println(err)
		return 1
	}

	raw, err := readImage(input)
	if err != nil {
		log.Println(err)
		return 1
	}

	mem := make([]byte, 1<<16)
	n := copy(mem[origin:], raw)
	if n < len(raw) {
		log.Println("image truncated: larger than the address space from the given origin")
	}

	if countvar > 0 {
		debugger.DisasmRange(os.Stdout, mem, origin, countvar)
	} else {
		debugger.DisasmUntil(os.Stdout, mem, origin, int(origin)+n)
	}

	return 0
}

func readImage(r io.Reader) ([]byte, error) {
	if hexvar {
		return loader.Parse(r)
	}
	return io.ReadAll(r)
}

func main() {
	os.Exit(microstepDis())
}
