package cpu

import (
	"fmt"
)

// CodeOp is the opcode class, held in bits 15-13 of an instruction word.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_REG3 = CodeOp(0) // reg3
	OP_ADDI = CodeOp(1) // addi
	OP_J    = CodeOp(2) // j
	OP_JAL  = CodeOp(3) // jal
	OP_LW   = CodeOp(4) // lw
	OP_SW   = CodeOp(5) // sw
	OP_JEQ  = CodeOp(6) // jeq
	OP_SLTI = CodeOp(7) // slti
)

// CodeFunc selects the register-register operation when the opcode is OP_REG3.
type CodeFunc int

const (
	FUNC_ADD = CodeFunc(0)
	FUNC_SUB = CodeFunc(1)
	FUNC_OR  = CodeFunc(2)
	FUNC_AND = CodeFunc(3)
	FUNC_SLT = CodeFunc(4) // Any func not otherwise assigned is also slt.
	FUNC_JR  = CodeFunc(8)
)

// CodeKind is the decoded instruction variant.
type CodeKind int

//go:generate go tool stringer -linecomment -type=CodeKind
const (
	// KIND_UNDEFINED is the fallback variant; every E20 word decodes to a defined kind.
	KIND_UNDEFINED = CodeKind(iota) // undefined
	KIND_ADD                        // add
	KIND_SUB                        // sub
	KIND_OR                         // or
	KIND_AND                        // and
	KIND_SLT                        // slt
	KIND_JR                         // jr
	KIND_ADDI                       // addi
	KIND_J                          // j
	KIND_JAL                        // jal
	KIND_LW                         // lw
	KIND_SW                         // sw
	KIND_JEQ                        // jeq
	KIND_SLTI                       // slti
)

// CodeField is an immediate field the assembler can fill in.
type CodeField int

//go:generate go tool stringer -linecomment -type=CodeField
const (
	FIELD_IMM7  = CodeField(0) // imm7
	FIELD_REL7  = CodeField(1) // rel7
	FIELD_IMM13 = CodeField(2) // imm13
	FIELD_WORD  = CodeField(3) // word
)

// Code is a single 16-bit instruction word.
type Code uint16

// Instruction is the decoded form of a Code.
type Instruction struct {
	Kind  CodeKind
	RegA  int
	RegB  int
	RegC  int
	Imm13 uint16
	Imm7  uint16
}

// MakeCodeReg3 creates a register-register instruction.
func MakeCodeReg3(fn CodeFunc, reg_a, reg_b, reg_c int) Code {
	return Code((uint16(OP_REG3) << 13) |
		(uint16(reg_a&7) << 10) |
		(uint16(reg_b&7) << 7) |
		(uint16(reg_c&7) << 4) |
		uint16(fn&0xf))
}

// MakeCodeImm7 creates a two register instruction with a 7-bit immediate.
func MakeCodeImm7(op CodeOp, reg_a, reg_b int, imm7 int) Code {
	return Code((uint16(op&7) << 13) |
		(uint16(reg_a&7) << 10) |
		(uint16(reg_b&7) << 7) |
		uint16(imm7&0x7f))
}

// MakeCodeImm13 creates a jump instruction with a 13-bit target.
func MakeCodeImm13(op CodeOp, imm13 int) Code {
	return Code((uint16(op&7) << 13) | uint16(imm13&0x1fff))
}

// MakeCodeHalt creates the jump-to-self that stops the machine at pc.
func MakeCodeHalt(pc int) Code {
	return MakeCodeImm13(OP_J, pc)
}

// Op returns the opcode class from bits 15-13.
func (code Code) Op() CodeOp {
	return CodeOp((code >> 13) & 0x7)
}

// RegA returns the first source register index from bits 12-10.
func (code Code) RegA() int {
	return int((code >> 10) & 0x7)
}

// RegB returns the second source, or destination, register index from bits 9-7.
func (code Code) RegB() int {
	return int((code >> 7) & 0x7)
}

// RegC returns the register-register destination index from bits 6-4.
func (code Code) RegC() int {
	return int((code >> 4) & 0x7)
}

// Imm13 returns the unsigned jump target from bits 12-0.
func (code Code) Imm13() uint16 {
	return uint16(code & 0x1fff)
}

// Imm7 returns the raw 7-bit immediate from bits 6-0.
func (code Code) Imm7() uint16 {
	return uint16(code & 0x7f)
}

// Func returns the register-register sub-opcode from bits 3-0.
func (code Code) Func() CodeFunc {
	return CodeFunc(code & 0xf)
}

// Kind returns the instruction variant selected by the opcode and func fields.
func (code Code) Kind() CodeKind {
	switch code.Op() {
	case OP_REG3:
		switch code.Func() {
		case FUNC_ADD:
			return KIND_ADD
		case FUNC_SUB:
			return KIND_SUB
		case FUNC_OR:
			return KIND_OR
		case FUNC_AND:
			return KIND_AND
		case FUNC_JR:
			return KIND_JR
		default:
			return KIND_SLT
		}
	case OP_ADDI:
		return KIND_ADDI
	case OP_J:
		return KIND_J
	case OP_JAL:
		return KIND_JAL
	case OP_LW:
		return KIND_LW
	case OP_SW:
		return KIND_SW
	case OP_JEQ:
		return KIND_JEQ
	case OP_SLTI:
		return KIND_SLTI
	}

	return KIND_UNDEFINED
}

// Decode extracts every field of the instruction word.
func (code Code) Decode() (inst Instruction) {
	inst = Instruction{
		Kind:  code.Kind(),
		RegA:  code.RegA(),
		RegB:  code.RegB(),
		RegC:  code.RegC(),
		Imm13: code.Imm13(),
		Imm7:  code.Imm7(),
	}
	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	inst := code.Decode()

	switch inst.Kind {
	case KIND_ADD, KIND_SUB, KIND_OR, KIND_AND, KIND_SLT:
		out = fmt.Sprintf("%v $%d, $%d, $%d", inst.Kind, inst.RegC, inst.RegA, inst.RegB)
	case KIND_JR:
		out = fmt.Sprintf("%v $%d", inst.Kind, inst.RegA)
	case KIND_ADDI, KIND_SLTI:
		out = fmt.Sprintf("%v $%d, $%d, %d", inst.Kind, inst.RegB, inst.RegA, ToSigned(inst.Imm7, 7))
	case KIND_LW, KIND_SW:
		out = fmt.Sprintf("%v $%d, %d($%d)", inst.Kind, inst.RegB, ToSigned(inst.Imm7, 7), inst.RegA)
	case KIND_JEQ:
		out = fmt.Sprintf("%v $%d, $%d, %+d", inst.Kind, inst.RegA, inst.RegB, ToSigned(inst.Imm7, 7))
	case KIND_J, KIND_JAL:
		out = fmt.Sprintf("%v %d", inst.Kind, inst.Imm13)
	default:
		out = fmt.Sprintf(".fill 0x%04x", uint16(code))
	}

	return
}
