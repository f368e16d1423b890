package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

// Machine geometry.
const (
	NUM_REGS = 8       // General purpose registers, $0 is always zero.
	MEM_SIZE = 1 << 13 // Words of unified memory.
	REG_SIZE = 1 << 16 // Distinct register values.
	MEM_MASK = MEM_SIZE - 1
	REG_MASK = REG_SIZE - 1
	REG_LINK = 7 // Return address register written by jal.
)

var _cpu_defines = map[string]string{
	"NUM_REGS": fmt.Sprintf("%d", NUM_REGS),
	"MEM_SIZE": fmt.Sprintf("%d", MEM_SIZE),
	"REG_SIZE": fmt.Sprintf("%d", REG_SIZE),
	"MEM_MASK": fmt.Sprintf("%#x", MEM_MASK),
	"REG_MASK": fmt.Sprintf("%#x", REG_MASK),
	"REG_LINK": fmt.Sprintf("%d", REG_LINK),
}

// Cpu is the simulation context for the E20 processor.
//
// Pc is kept unwrapped; it is reduced modulo MEM_SIZE only when used to
// fetch, so it may briefly hold an out-of-range value between instructions.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc       int              // Program counter.
	Register [NUM_REGS]uint16 // Register bank.
	Memory   []uint16         // Unified instruction and data memory.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU with zeroed registers and memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Memory: make([]uint16, MEM_SIZE),
	}

	return
}

// Defines for the cpu
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("pc: %5d (%04x)\n", cpu.Pc, cpu.Pc&MEM_MASK)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("$%d: %5d (%04x)\n", n, val, val)
	}

	return
}

// Reset the CPU state.
// - Clears the program counter, registers and memory.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Pc = 0
	clear(cpu.Register[:])
	clear(cpu.Memory)
	cpu.Ticks = 0
}

// Address wraps any integer into a valid memory address.
func Address(value int) int {
	return value & MEM_MASK
}

// FetchCode fetches the instruction word at the current program counter.
func (cpu *Cpu) FetchCode() Code {
	return Code(cpu.Memory[Address(cpu.Pc)])
}

// Halted returns true if inst is a jump to the current program counter.
func (cpu *Cpu) Halted(inst Instruction) bool {
	return inst.Kind == KIND_J && int(inst.Imm13) == cpu.Pc
}

// Tick executes a single instruction cycle. No state changes once the
// fetched instruction is a jump to itself, and halted is returned.
func (cpu *Cpu) Tick() (halted bool) {
	code := cpu.FetchCode()
	inst := code.Decode()

	if cpu.Halted(inst) {
		if cpu.Verbose {
			log.Printf("%04x: %v ; halt", Address(cpu.Pc), code)
		}
		halted = true
		return
	}

	if cpu.Verbose {
		log.Printf("%04x: %v", Address(cpu.Pc), code)
	}

	cpu.Execute(inst)
	cpu.Ticks++

	return
}

// Run ticks until the machine halts, and returns the final program counter.
// A program that never jumps to itself never returns.
func (cpu *Cpu) Run() (pc int) {
	for !cpu.Tick() {
	}

	pc = cpu.Pc
	return
}

// setRegister writes a register, discarding writes to $0.
func (cpu *Cpu) setRegister(reg int, value uint16) {
	if reg == 0 {
		return
	}
	cpu.Register[reg] = value
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(inst Instruction) {
	next_pc := cpu.Pc + 1

	a := cpu.Register[inst.RegA]
	b := cpu.Register[inst.RegB]

	switch inst.Kind {
	case KIND_ADD:
		cpu.setRegister(inst.RegC, a+b)
	case KIND_SUB:
		cpu.setRegister(inst.RegC, a-b)
	case KIND_OR:
		cpu.setRegister(inst.RegC, a|b)
	case KIND_AND:
		cpu.setRegister(inst.RegC, a&b)
	case KIND_SLT:
		cpu.setRegister(inst.RegC, asWord(a < b))
	case KIND_JR:
		next_pc = int(a)
	case KIND_ADDI:
		cpu.setRegister(inst.RegB, uint16(int(a)+ToSigned(inst.Imm7, 7)))
	case KIND_J:
		next_pc = int(inst.Imm13)
	case KIND_JAL:
		cpu.setRegister(REG_LINK, uint16(cpu.Pc+1))
		next_pc = int(inst.Imm13)
	case KIND_LW:
		addr := Address(int(a) + ToSigned(inst.Imm7, 7))
		cpu.setRegister(inst.RegB, cpu.Memory[addr])
	case KIND_SW:
		addr := Address(int(a) + ToSigned(inst.Imm7, 7))
		cpu.Memory[addr] = b
	case KIND_JEQ:
		// The offset is sign extended to a full word, then read back as signed.
		if a == b {
			next_pc = cpu.Pc + 1 + ToSigned(SignExtend(inst.Imm7, 7), 16)
		}
	case KIND_SLTI:
		// Unsigned compare against the sign extended bit pattern.
		cpu.setRegister(inst.RegB, asWord(a < SignExtend(inst.Imm7, 7)))
	case KIND_UNDEFINED:
		// Only the program counter advances.
	}

	cpu.Pc = next_pc
}

// asWord converts a comparison result to 0 or 1.
func asWord(cond bool) uint16 {
	if cond {
		return 1
	}
	return 0
}
