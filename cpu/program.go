package cpu

import (
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location and generated word.
type Opcode struct {
	LineNo    int
	Ip        int
	Words     []string
	Code      Code
	LinkLabel string    // Label to resolve into LinkField once all labels are known.
	LinkField CodeField // Field LinkLabel is resolved into.
}

// Source returns the assembler words of the opcode as a single line.
func (op *Opcode) Source() string {
	return strings.Join(op.Words, " ")
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

// Debug returns the opcode placed at memory address pc, or nil.
func (prog *Program) Debug(pc int) (op *Opcode) {
	addr := Address(pc)
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Ip == addr {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Binary returns the memory image of the program, from address 0 up to
// the last assembled word.
func (prog *Program) Binary() (words []uint16) {
	for ip, code := range prog.Codes() {
		for len(words) <= ip {
			words = append(words, 0)
		}
		words[ip] = uint16(code)
	}

	return
}

// Codes iterates over every assembled word and its address.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(ip int, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Ip, op.Code) {
				return
			}
		}
	}
}
