// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs E20 programs: it loads a program image into a
// fresh machine, runs it to the self-jump halt, and reports the final state.
package emulator

import (
	"io"

	"github.com/ezrec/e20/cpu"
	e20io "github.com/ezrec/e20/io"
)

// Emulator state. CPU + loaded image + optional assembler listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Assembler listing of the image, if known.
	Image    []uint16     // Words placed in memory on reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	return
}

// Load reads a program image and resets the machine with it.
func (emu *Emulator) Load(input io.Reader) (err error) {
	memory := make([]uint16, cpu.MEM_SIZE)
	count, err := e20io.ReadImage(input, memory)
	if err != nil {
		return
	}

	emu.Program = nil
	emu.Image = memory[:count]
	emu.Reset()

	return
}

// LoadProgram resets the machine with an assembled program.
func (emu *Emulator) LoadProgram(prog *cpu.Program) {
	emu.Program = prog
	emu.Image = prog.Binary()
	emu.Reset()
}

// Reset the machine, then place the image in memory.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	copy(emu.Cpu.Memory, emu.Image)
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line number for the instruction at the
// program counter, or 0 if there is no listing.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	op := emu.Program.Debug(emu.Cpu.Pc)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	done = emu.Cpu.Tick()
	return
}

// Run ticks the emulator until halt, and returns the final program counter.
func (emu *Emulator) Run() (pc int) {
	for !emu.Tick() {
	}

	pc = emu.Cpu.Pc
	return
}
