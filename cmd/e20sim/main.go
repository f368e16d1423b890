// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command e20sim loads an E20 program image, runs it until it halts, and
// prints the final machine state.
//
//	e20sim program.bin
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/e20/emulator"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v <program.bin>\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	filename := flag.Arg(0)

	inf, err := os.Open(filename)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}

	emu := emulator.NewEmulator()
	err = emu.Load(inf)
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}

	emu.Run()

	err = emu.WriteState(os.Stdout, emulator.REPORT_MEMORY)
	if err != nil {
		log.Fatal(err)
	}
}
