// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"maps"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/k0kubun/pp/v3"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler is a single pass assembler for the E20 machine. Label
// references are linked after the whole source has been read.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to memory addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to register indexes.
var regMap = map[string]int{
	"$0": 0,
	"$1": 1,
	"$2": 2,
	"$3": 3,
	"$4": 4,
	"$5": 5,
	"$6": 6,
	"$7": 7,
}

// Three register instructions: op $dst, $srcA, $srcB
var reg3Map = map[string]CodeFunc{
	"add": FUNC_ADD,
	"sub": FUNC_SUB,
	"or":  FUNC_OR,
	"and": FUNC_AND,
	"slt": FUNC_SLT,
}

// Two register immediate instructions: op $dst, $src, imm
var imm7Map = map[string]CodeOp{
	"addi": OP_ADDI,
	"slti": OP_SLTI,
}

// Memory instructions: op $reg, imm($addr)
var memMap = map[string]CodeOp{
	"lw": OP_LW,
	"sw": OP_SW,
}

// Absolute jumps: op imm
var jumpMap = map[string]CodeOp{
	"j":   OP_J,
	"jal": OP_JAL,
}

var (
	reLabel   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reMemory  = regexp.MustCompile(`^(.*)\((\$[^()]*)\)$`)
	reParen   = regexp.MustCompile(`\$\([^\$]*\)`)
	reOperand = regexp.MustCompile(`[\s,]+`)
	reRawBits = regexp.MustCompile(`^0[xXbB]`)
)

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// register returns the register index of a $n word.
func (asm *Assembler) register(word string) (reg int, err error) {
	reg, ok := regMap[word]
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var equ int
		equ, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates, such as register names.
			continue
		}
		pred[key] = starlark.MakeInt(equ)
	}
	for label, ip := range asm.Label {
		pred[label] = starlark.MakeInt(ip)
	}
	err = nil

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine substitutes expressions and equates, records labels, and
// returns the remaining instruction words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = strconv.Itoa(lineno)
	asm.Equate["PC"] = strconv.Itoa(asm.currentIp())

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.Itoa(value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(reOperand.Split(line, -1), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.ToLower(words[0]) == ".equ" {
		if len(words) != 3 || !reLabel.MatchString(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := strings.ToLower(strings.TrimSuffix(words[0], ":"))
		if !reLabel.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.currentIp()
		words = words[1:]
	}

	return
}

// currentIp gets the address of the next opcode.
func (asm *Assembler) currentIp() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	return asm.Opcode[len(asm.Opcode)-1].Ip + 1
}

// argCount verifies an instruction has exactly need arguments.
func argCount(args []string, need int) (err error) {
	switch {
	case len(args) > need:
		err = ErrOpcodeExtraArgs
	case len(args) < need:
		err = ErrOpcodeValueMissing
	}
	return
}

// setField places value into an immediate field of the opcode.
func (op *Opcode) setField(field CodeField, value int) (err error) {
	switch field {
	case FIELD_IMM7:
		if value < -64 || value > 63 {
			err = ErrImmediateRange{Field: field, Value: value}
			return
		}
		op.Code |= Code(value & 0x7f)
	case FIELD_REL7:
		rel := value - (op.Ip + 1)
		if rel < -64 || rel > 63 {
			err = ErrImmediateRange{Field: field, Value: rel}
			return
		}
		op.Code |= Code(rel & 0x7f)
	case FIELD_IMM13:
		if value < 0 || value > MEM_MASK {
			err = ErrImmediateRange{Field: field, Value: value}
			return
		}
		op.Code |= Code(value)
	case FIELD_WORD:
		if value < -0x8000 || value > 0xffff {
			err = ErrImmediateRange{Field: field, Value: value}
			return
		}
		op.Code = Code(uint16(value))
	}

	return
}

// setImmediate resolves word into a field now, or defers it as a link label.
func (asm *Assembler) setImmediate(op *Opcode, field CodeField, word string) (err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		if !reLabel.MatchString(word) {
			return
		}
		op.LinkLabel = strings.ToLower(word)
		op.LinkField = field
		err = nil
		return
	}

	// Hex and binary literals may give the raw 7-bit pattern.
	if field == FIELD_IMM7 && reRawBits.MatchString(word) && value > 63 && value <= 0x7f {
		value -= 0x80
	}

	err = op.setField(field, value)
	return
}

// parseWords assembles a single instruction.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	ip := asm.currentIp()
	if ip >= MEM_SIZE {
		err = ErrProgramTooBig
		return
	}

	op := Opcode{LineNo: lineno, Ip: ip, Words: words}
	mnemonic := strings.ToLower(words[0])
	args := words[1:]

	var regs [3]int
	getRegs := func(count int) (err error) {
		for n := range count {
			regs[n], err = asm.register(args[n])
			if err != nil {
				return
			}
		}
		return
	}

	if fn, ok := reg3Map[mnemonic]; ok {
		// op $dst, $srcA, $srcB
		if err = argCount(args, 3); err != nil {
			return
		}
		if err = getRegs(3); err != nil {
			return
		}
		op.Code = MakeCodeReg3(fn, regs[1], regs[2], regs[0])
	} else if opc, ok := imm7Map[mnemonic]; ok {
		// op $dst, $src, imm
		if err = argCount(args, 3); err != nil {
			return
		}
		if err = getRegs(2); err != nil {
			return
		}
		op.Code = MakeCodeImm7(opc, regs[1], regs[0], 0)
		err = asm.setImmediate(&op, FIELD_IMM7, args[2])
	} else if opc, ok := memMap[mnemonic]; ok {
		// op $reg, imm($addr)
		if err = argCount(args, 2); err != nil {
			return
		}
		if err = getRegs(1); err != nil {
			return
		}
		match := reMemory.FindStringSubmatch(args[1])
		if match == nil {
			err = ErrAddressInvalid
			return
		}
		var base int
		base, err = asm.register(match[2])
		if err != nil {
			return
		}
		offset := match[1]
		if equate, ok := asm.Equate[offset]; ok {
			offset = equate
		}
		if len(offset) == 0 {
			offset = "0"
		}
		op.Code = MakeCodeImm7(opc, base, regs[0], 0)
		err = asm.setImmediate(&op, FIELD_IMM7, offset)
	} else if opc, ok := jumpMap[mnemonic]; ok {
		// op imm
		if err = argCount(args, 1); err != nil {
			return
		}
		op.Code = MakeCodeImm13(opc, 0)
		err = asm.setImmediate(&op, FIELD_IMM13, args[0])
	} else {
		switch mnemonic {
		case "jr":
			if err = argCount(args, 1); err != nil {
				return
			}
			if err = getRegs(1); err != nil {
				return
			}
			op.Code = MakeCodeReg3(FUNC_JR, regs[0], 0, 0)
		case "jeq":
			if err = argCount(args, 3); err != nil {
				return
			}
			if err = getRegs(2); err != nil {
				return
			}
			op.Code = MakeCodeImm7(OP_JEQ, regs[0], regs[1], 0)
			err = asm.setImmediate(&op, FIELD_REL7, args[2])
		case "movi":
			if err = argCount(args, 2); err != nil {
				return
			}
			if err = getRegs(1); err != nil {
				return
			}
			op.Code = MakeCodeImm7(OP_ADDI, 0, regs[0], 0)
			err = asm.setImmediate(&op, FIELD_IMM7, args[1])
		case "nop":
			if err = argCount(args, 0); err != nil {
				return
			}
			op.Code = MakeCodeReg3(FUNC_ADD, 0, 0, 0)
		case "halt":
			if err = argCount(args, 0); err != nil {
				return
			}
			op.Code = MakeCodeHalt(ip)
		case ".fill":
			if err = argCount(args, 1); err != nil {
				return
			}
			err = asm.setImmediate(&op, FIELD_WORD, args[0])
		default:
			err = ErrOpcodeInvalid
		}
	}
	if err != nil {
		return
	}

	if asm.Verbose {
		pp.Fprintf(os.Stderr, "adding %v @ %v\n", op.Words, op.Ip)
	}

	asm.Opcode = append(asm.Opcode, op)

	return
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Collect(Defines())
	maps.Copy(asm.Equate, asm.predefine)

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.SplitN(text, "#", 2)
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = op.Source()

		ip, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		err = op.setField(op.LinkField, ip)
		if err != nil {
			return
		}
	}

	if asm.Verbose {
		pp.Fprintf(os.Stderr, "labels: %v\n", asm.Label)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}
