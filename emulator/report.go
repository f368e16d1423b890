package emulator

import (
	"fmt"
	"io"
	"strings"
)

const (
	REPORT_MEMORY   = 128 // Memory words shown in the final state.
	REPORT_PER_LINE = 8   // Memory words per report line.
)

// WriteState writes the final machine state: the program counter, every
// register, and the first count words of memory in hexadecimal.
func (emu *Emulator) WriteState(output io.Writer, count int) (err error) {
	var text strings.Builder

	text.WriteString("Final state:\n")
	fmt.Fprintf(&text, "\tpc=%5d\n", emu.Cpu.Pc)
	for reg, val := range emu.Cpu.Register {
		fmt.Fprintf(&text, "\t$%d=%5d\n", reg, val)
	}

	count = min(count, len(emu.Cpu.Memory))

	var line string
	for addr := range count {
		line += fmt.Sprintf("%04x ", emu.Cpu.Memory[addr])
		if addr%REPORT_PER_LINE == REPORT_PER_LINE-1 {
			text.WriteString(line + "\n")
			line = ""
		}
	}
	if line != "" {
		text.WriteString(line + "\n")
	}

	_, err = io.WriteString(output, text.String())
	return
}
