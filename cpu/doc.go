// Package cpu implements the processor and assembler for the E20 machine.
//
// The E20 is a 16-bit word machine with a program counter, eight 16-bit
// registers ($0-$7, with $0 hard-wired to zero) and 8192 words of unified
// instruction and data memory. Every instruction is a single word; the
// three most significant bits select the opcode class.
//
// The assembler provides the E20 assembly language, supporting labels,
// equates, the .fill directive, the movi/nop/halt pseudo-instructions and
// compile-time expression evaluation.
package cpu
