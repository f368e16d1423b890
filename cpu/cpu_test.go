package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// newCpuWith creates a cpu with codes loaded from address 0.
func newCpuWith(codes ...Code) (cpu *Cpu) {
	cpu = NewCpu()
	for n, code := range codes {
		cpu.Memory[n] = uint16(code)
	}
	return
}

func TestCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.False(cpu.Verbose)
	assert.Equal(0, cpu.Pc)
	assert.Equal(MEM_SIZE, len(cpu.Memory))
	assert.Equal([NUM_REGS]uint16{}, cpu.Register)

	cpu.Pc = 12
	cpu.Register[3] = 4
	cpu.Memory[100] = 5
	cpu.Ticks = 6
	cpu.Reset()
	assert.Equal(0, cpu.Pc)
	assert.Equal(uint16(0), cpu.Register[3])
	assert.Equal(uint16(0), cpu.Memory[100])
	assert.Equal(0, cpu.Ticks)
}

func TestCpuHaltAtZero(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpuWith(MakeCodeHalt(0))

	assert.True(cpu.Tick())
	assert.Equal(0, cpu.Pc)
	assert.Equal(0, cpu.Ticks)
	assert.Equal([NUM_REGS]uint16{}, cpu.Register)
	assert.Equal(uint16(MakeCodeHalt(0)), cpu.Memory[0])
	for addr := 1; addr < MEM_SIZE; addr++ {
		if cpu.Memory[addr] != 0 {
			t.Fatalf("memory %d changed", addr)
		}
	}

	assert.Equal(0, cpu.Run())
}

func TestCpuHaltUnwrappedPc(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpuWith(MakeCodeHalt(0))

	// Fetches from address 0, but the target does not equal the pc.
	cpu.Pc = MEM_SIZE
	assert.False(cpu.Tick())
	assert.Equal(0, cpu.Pc)

	assert.True(cpu.Tick())
	assert.Equal(0, cpu.Pc)
}

func TestCpuJalSelfIsNotHalt(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpuWith(MakeCodeImm13(OP_JAL, 0))

	assert.False(cpu.Tick())
	assert.Equal(0, cpu.Pc)
	assert.Equal(uint16(1), cpu.Register[REG_LINK])
}

func TestCpuReg3(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		fn   CodeFunc
		a    uint16
		b    uint16
		want uint16
	}){
		{"add", FUNC_ADD, 3, 4, 7},
		{"add_wrap", FUNC_ADD, 0xffff, 2, 1},
		{"sub", FUNC_SUB, 7, 3, 4},
		{"sub_wrap", FUNC_SUB, 1, 2, 0xffff},
		{"or", FUNC_OR, 0x00f0, 0x0f0f, 0x0fff},
		{"and", FUNC_AND, 0x00ff, 0x0f0f, 0x000f},
		{"slt_true", FUNC_SLT, 1, 2, 1},
		{"slt_false", FUNC_SLT, 2, 2, 0},
		{"slt_unsigned", FUNC_SLT, 0x8000, 1, 0},
		{"slt_func5", CodeFunc(5), 1, 0x8000, 1},
		{"slt_func15", CodeFunc(15), 3, 2, 0},
	}

	for _, entry := range table {
		cpu := newCpuWith(MakeCodeReg3(entry.fn, 1, 2, 3))
		cpu.Register[1] = entry.a
		cpu.Register[2] = entry.b

		assert.False(cpu.Tick(), entry.name)
		assert.Equal(entry.want, cpu.Register[3], entry.name)
		assert.Equal(1, cpu.Pc, entry.name)
	}
}

func TestCpuRegisterZero(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code Code
	}){
		{"add", MakeCodeReg3(FUNC_ADD, 1, 2, 0)},
		{"sub", MakeCodeReg3(FUNC_SUB, 1, 2, 0)},
		{"or", MakeCodeReg3(FUNC_OR, 1, 2, 0)},
		{"and", MakeCodeReg3(FUNC_AND, 1, 2, 0)},
		{"slt", MakeCodeReg3(FUNC_SLT, 2, 1, 0)},
		{"addi", MakeCodeImm7(OP_ADDI, 1, 0, 5)},
		{"lw", MakeCodeImm7(OP_LW, 0, 0, 7)},
		{"slti", MakeCodeImm7(OP_SLTI, 2, 0, 100)},
	}

	for _, entry := range table {
		cpu := newCpuWith(entry.code)
		cpu.Memory[7] = 0x1234
		cpu.Register[1] = 0xffff
		cpu.Register[2] = 0x0001

		cpu.Tick()
		assert.Equal(uint16(0), cpu.Register[0], entry.name)
		assert.Equal(1, cpu.Pc, entry.name)
	}
}

func TestCpuAddi(t *testing.T) {
	assert := assert.New(t)

	// addi $1, $1, -1
	cpu := newCpuWith(MakeCodeImm7(OP_ADDI, 1, 1, 127))
	cpu.Register[1] = 5
	cpu.Tick()
	assert.Equal(uint16(4), cpu.Register[1])

	// addi $2, $1, -64 wraps below zero
	cpu = newCpuWith(MakeCodeImm7(OP_ADDI, 1, 2, 64))
	cpu.Register[1] = 1
	cpu.Tick()
	assert.Equal(uint16(0xffc1), cpu.Register[2])

	// addi $2, $1, 63 wraps above 0xffff
	cpu = newCpuWith(MakeCodeImm7(OP_ADDI, 1, 2, 63))
	cpu.Register[1] = 0xfff0
	cpu.Tick()
	assert.Equal(uint16(0x002f), cpu.Register[2])
}

func TestCpuMemoryWrap(t *testing.T) {
	assert := assert.New(t)

	// sw $2, 1($1) with $1 at the top of memory stores to 0.
	cpu := newCpuWith(MakeCodeImm7(OP_SW, 1, 2, 1))
	cpu.Register[1] = MEM_SIZE - 1
	cpu.Register[2] = 0xbeef
	cpu.Tick()
	assert.Equal(uint16(0xbeef), cpu.Memory[0])

	// lw $3, -1($0) loads from the top of memory.
	cpu = newCpuWith(MakeCodeImm7(OP_LW, 0, 3, -1))
	cpu.Memory[MEM_SIZE-1] = 0xcafe
	cpu.Tick()
	assert.Equal(uint16(0xcafe), cpu.Register[3])

	// lw $3, 63($1) with $1 = 0xffff reads address 62.
	cpu = newCpuWith(MakeCodeImm7(OP_LW, 1, 3, 63))
	cpu.Register[1] = 0xffff
	cpu.Memory[62] = 0x0062
	cpu.Tick()
	assert.Equal(uint16(0x0062), cpu.Register[3])

	// sw $2, 0($1) with $1 = 0x2005 stores to 5.
	cpu = newCpuWith(MakeCodeImm7(OP_SW, 1, 2, 0))
	cpu.Register[1] = 0x2005
	cpu.Register[2] = 0x0505
	cpu.Tick()
	assert.Equal(uint16(0x0505), cpu.Memory[5])
	assert.Equal(1, cpu.Pc)
}

func TestCpuJeq(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Memory[3] = uint16(MakeCodeImm7(OP_JEQ, 1, 2, 2))
	cpu.Pc = 3
	cpu.Register[1] = 7
	cpu.Register[2] = 7
	cpu.Tick()
	assert.Equal(6, cpu.Pc)

	cpu.Pc = 3
	cpu.Register[2] = 8
	cpu.Tick()
	assert.Equal(4, cpu.Pc)

	// Branching backwards from 0 leaves the pc negative until the next fetch.
	cpu = newCpuWith(MakeCodeImm7(OP_JEQ, 0, 0, -64))
	cpu.Memory[MEM_SIZE-63] = uint16(MakeCodeHalt(MEM_SIZE - 63))
	cpu.Tick()
	assert.Equal(-63, cpu.Pc)
	assert.Equal(MEM_SIZE-63, Address(cpu.Pc))
	assert.Equal(MakeCodeHalt(MEM_SIZE-63), cpu.FetchCode())

	// Not a halt: the target is compared with the unwrapped pc.
	assert.False(cpu.Tick())
	assert.Equal(MEM_SIZE-63, cpu.Pc)
	assert.True(cpu.Tick())
}

func TestCpuJumps(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Memory[10] = uint16(MakeCodeImm13(OP_JAL, 100))
	cpu.Memory[100] = uint16(MakeCodeReg3(FUNC_JR, REG_LINK, 0, 0))
	cpu.Memory[11] = uint16(MakeCodeImm13(OP_J, 0x1fff))
	cpu.Pc = 10

	cpu.Tick()
	assert.Equal(100, cpu.Pc)
	assert.Equal(uint16(11), cpu.Register[REG_LINK])

	cpu.Tick()
	assert.Equal(11, cpu.Pc)

	cpu.Tick()
	assert.Equal(0x1fff, cpu.Pc)

	// jr to a register value beyond memory.
	cpu = newCpuWith(MakeCodeReg3(FUNC_JR, 3, 0, 0))
	cpu.Register[3] = 0xffff
	cpu.Tick()
	assert.Equal(0xffff, cpu.Pc)
	assert.Equal(MEM_SIZE-1, Address(cpu.Pc))
}

func TestCpuSlti(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		a    uint16
		imm7 int
		want uint16
	}){
		{"less", 5, 10, 1},
		{"equal", 10, 10, 0},
		{"negative_is_large", 5, -1, 1},
		{"max_vs_negative", 0xffff, -1, 0},
		{"large_vs_positive", 0xfff0, 10, 0},
		{"below_extended", 0xff7f, -64, 1},
	}

	for _, entry := range table {
		cpu := newCpuWith(MakeCodeImm7(OP_SLTI, 1, 2, entry.imm7))
		cpu.Register[1] = entry.a
		cpu.Register[2] = 0x5555
		cpu.Tick()
		assert.Equal(entry.want, cpu.Register[2], entry.name)
	}
}

func TestCpuUndefined(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Pc = 41
	cpu.Register[1] = 1
	cpu.Execute(Instruction{Kind: KIND_UNDEFINED, RegA: 1, RegB: 1, RegC: 1, Imm7: 0x7f, Imm13: 0x1fff})

	assert.Equal(42, cpu.Pc)
	assert.Equal([NUM_REGS]uint16{0, 1}, cpu.Register)
}

func TestCpuRun(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpuWith(
		MakeCodeImm7(OP_ADDI, 0, 1, 3),
		MakeCodeImm7(OP_ADDI, 0, 2, 4),
		MakeCodeReg3(FUNC_ADD, 1, 2, 3),
		MakeCodeHalt(3),
	)

	assert.Equal(3, cpu.Run())
	assert.Equal(uint16(3), cpu.Register[1])
	assert.Equal(uint16(4), cpu.Register[2])
	assert.Equal(uint16(7), cpu.Register[3])
	assert.Equal(3, cpu.Ticks)
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Pc = MEM_SIZE + 2
	cpu.Register[7] = 0xabcd

	text := cpu.String()
	assert.Contains(text, "pc:  8194 (0002)\n")
	assert.Contains(text, "$7: 43981 (abcd)\n")
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range Defines() {
		defines[key] = value
	}

	assert.Equal("8192", defines["MEM_SIZE"])
	assert.Equal("8", defines["NUM_REGS"])
	assert.Equal("0x1fff", defines["MEM_MASK"])
}
