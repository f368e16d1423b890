// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command e20asm assembles E20 assembly source into a program image that
// e20sim can load.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/e20/cpu"
	e20io "github.com/ezrec/e20/io"
)

func main() {
	var output string
	var verbose bool

	asm := &cpu.Assembler{}

	flag.StringVar(&output, "o", "-", "Program image output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine an equate as NAME=VALUE", func(define string) error {
		name, value, ok := strings.Cut(define, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("%v: expected NAME=VALUE", define)
		}
		asm.Predefine(name, value)
		return nil
	})

	flag.Parse()

	if flag.NArg() > 1 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
	}

	asm.Verbose = verbose

	source := "-"
	inf := os.Stdin
	if flag.NArg() == 1 {
		source = flag.Arg(0)
		var err error
		inf, err = os.Open(source)
		if err != nil {
			log.Fatalf("%v: %v", source, err)
		}
		defer inf.Close()
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	words := prog.Binary()
	notes := make([]string, len(words))
	for _, op := range prog.Opcodes {
		notes[op.Ip] = op.Source()
	}

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	err = e20io.WriteImage(ouf, words, notes)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}
