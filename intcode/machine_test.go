package intcode

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/io"
)

func runMachine(t *testing.T, program []int64, inputs ...int64) (m *Machine, output *io.Buffer) {
	output = &io.Buffer{}
	m = NewMachine(program, inputs...)
	m.Output = output

	err := m.Run()
	assert.NoError(t, err)
	assert.Equal(t, STATE_HALTED, m.State)
	return
}

func TestMachine_Memory(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []int64
		cell    int
		value   int64
	}){
		{"add_mul", []int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, 0, 3500},
		{"add", []int64{1, 0, 0, 0, 99}, 0, 2},
		{"mul", []int64{2, 3, 0, 3, 99}, 3, 6},
		{"mul_square", []int64{2, 4, 4, 5, 99, 0}, 5, 9801},
		{"self_modify", []int64{1, 1, 1, 4, 99, 5, 6, 0, 99}, 0, 30},
		{"mul_immediate", []int64{1002, 4, 3, 4, 33}, 4, 99},
		{"add_negative", []int64{1101, 100, -1, 4, 0}, 4, 99},
	}

	for _, entry := range table {
		m, output := runMachine(t, entry.program)
		assert.Equal(entry.value, m.Memory[entry.cell], entry.name)
		assert.Empty(output.Data, entry.name)
	}
}

func TestMachine_OwnsMemory(t *testing.T) {
	assert := assert.New(t)

	program := []int64{1, 0, 0, 0, 99}
	m, _ := runMachine(t, program)

	assert.Equal(int64(2), m.Memory[0])
	assert.Equal(int64(1), program[0])
}

func TestMachine_HaltOnly(t *testing.T) {
	assert := assert.New(t)

	m, output := runMachine(t, []int64{99})

	assert.Equal(Memory{99}, m.Memory)
	assert.Empty(output.Data)
	assert.Equal(1, m.Ip)
	assert.Equal(1, m.Ticks)

	// Ticking a halted machine does nothing.
	state, err := m.Tick()
	assert.NoError(err)
	assert.Equal(STATE_HALTED, state)
	assert.Equal(1, m.Ticks)
}

func TestMachine_Compare(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []int64
		input   int64
		output  int64
	}){
		{"eq8_pos_true", []int64{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, 8, 1},
		{"eq8_pos_false", []int64{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, 7, 0},
		{"lt8_pos_true", []int64{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, 5, 1},
		{"lt8_pos_false", []int64{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, 8, 0},
		{"eq8_imm_true", []int64{3, 3, 1108, -1, 8, 3, 4, 3, 99}, 8, 1},
		{"eq8_imm_false", []int64{3, 3, 1108, -1, 8, 3, 4, 3, 99}, 9, 0},
		{"lt8_imm_true", []int64{3, 3, 1107, -1, 8, 3, 4, 3, 99}, -20, 1},
		{"lt8_imm_false", []int64{3, 3, 1107, -1, 8, 3, 4, 3, 99}, 10, 0},
	}

	for _, entry := range table {
		_, output := runMachine(t, entry.program, entry.input)
		assert.Equal([]int64{entry.output}, output.Data, entry.name)
	}
}

func TestMachine_Jump(t *testing.T) {
	assert := assert.New(t)

	jumpPos := []int64{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}
	jumpImm := []int64{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}

	for _, program := range [][]int64{jumpPos, jumpImm} {
		_, output := runMachine(t, program, 0)
		assert.Equal([]int64{0}, output.Data)

		_, output = runMachine(t, program, 42)
		assert.Equal([]int64{1}, output.Data)
	}
}

func TestMachine_Compare8(t *testing.T) {
	assert := assert.New(t)

	program := []int64{
		3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31,
		1106, 0, 36, 98, 0, 0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104,
		999, 1105, 1, 46, 1101, 1000, 1, 20, 4, 20, 1105, 1, 46, 98, 99,
	}

	for input, expect := range map[int64]int64{5: 999, 7: 999, 8: 1000, 9: 1001, 100: 1001} {
		_, output := runMachine(t, program, input)
		assert.Equal([]int64{expect}, output.Data, "input %d", input)
	}
}

func TestMachine_JumpOverridesAdvance(t *testing.T) {
	assert := assert.New(t)

	// jt 1 7 at 0 must land on 7, not on 3.
	m := NewMachine([]int64{1105, 1, 7, 104, 1, 99, 0, 104, 2, 99})
	output := &io.Buffer{}
	m.Output = output

	state, err := m.Tick()
	assert.NoError(err)
	assert.Equal(STATE_RUNNING, state)
	assert.Equal(7, m.Ip)

	assert.NoError(m.Run())
	assert.Equal([]int64{2}, output.Data)

	// A jump that is not taken keeps the advanced pointer.
	m = NewMachine([]int64{1106, 1, 7, 99})
	_, err = m.Tick()
	assert.NoError(err)
	assert.Equal(3, m.Ip)
}

func TestMachine_InputOrder(t *testing.T) {
	assert := assert.New(t)

	// in [11]; in [12]; out [11]; out [12]; halt
	program := []int64{3, 11, 3, 12, 4, 11, 4, 12, 99, 0, 0, 0, 0}
	_, output := runMachine(t, program, 10, 20)
	assert.Equal([]int64{10, 20}, output.Data)
}

func TestMachine_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []int64
		inputs  []int64
		err     error
		output  []int64
	}){
		{"unknown_opcode", []int64{42}, nil, ErrOpcodeUnknown, nil},
		{"bad_mode", []int64{201, 0, 0, 0, 99}, nil, ErrModeInvalid, nil},
		{"read_oob", []int64{1, 100, 0, 0, 99}, nil, ErrOutOfBounds, nil},
		{"write_oob", []int64{1101, 1, 1, 100, 99}, nil, ErrOutOfBounds, nil},
		{"write_negative", []int64{1101, 1, 1, -1, 99}, nil, ErrOutOfBounds, nil},
		{"run_off_end", []int64{1101, 1, 1, 0}, nil, ErrOutOfBounds, nil},
		{"jump_oob", []int64{1105, 1, 50, 99}, nil, ErrOutOfBounds, nil},
		{"jump_negative", []int64{1106, 0, -3, 99}, nil, ErrOutOfBounds, nil},
		{"no_input", []int64{3, 0, 99}, nil, ErrInputExhausted, nil},
		{"second_input", []int64{3, 0, 3, 0, 99}, []int64{1}, ErrInputExhausted, nil},
		{"output_kept", []int64{104, 7, 104, 8, 42}, nil, ErrOpcodeUnknown, []int64{7, 8}},
	}

	for _, entry := range table {
		m := NewMachine(entry.program, entry.inputs...)
		output := &io.Buffer{}
		m.Output = output

		err := m.Run()
		assert.ErrorIs(err, entry.err, entry.name)
		assert.Equal(STATE_RUNNING, m.State, entry.name)
		assert.Equal(entry.output, output.Data, entry.name)

		var exec *ErrExecute
		assert.ErrorAs(err, &exec, entry.name)
	}
}

func TestMachine_ErrorLocation(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine([]int64{1101, 1, 1, 0, 3, 0, 99})
	err := m.Run()
	assert.ErrorIs(err, ErrInputExhausted)

	var exec *ErrExecute
	if assert.ErrorAs(err, &exec) {
		assert.Equal(4, exec.Ip)
		assert.Equal(Input{Dst: 0}, exec.Instruction)
	}
}

func TestMachine_ErrorText(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []int64
		text    string
	}){
		{"large address", []int64{1, 12345, 0, 0, 99}, "ip 0 'add [12345] [0] [0]' address 12345 out of bounds"},
		{"input", []int64{3, 0, 99}, "ip 0 'in [0]' input exhausted"},
		{"truncated", []int64{1, 2, 3}, "ip 0 address 3 out of bounds"},
		{"mode", []int64{1101, 1, 1, 0, 12004, 0, 99}, "ip 4 bad parameter mode in cell 12004"},
	}

	for _, entry := range table {
		err := NewMachine(entry.program).Run()
		if assert.Error(err, entry.name) {
			assert.Equal(entry.text, err.Error(), entry.name)
		}
	}
}

func TestMachine_NoOutputChannel(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine([]int64{104, 1, 99})
	assert.NoError(m.Run())
	assert.Equal(STATE_HALTED, m.State)
}

func TestMachine_OutputChannelFull(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine([]int64{104, 1, 104, 2, 99})
	m.Output = &io.Buffer{Capacity: 1}
	assert.ErrorIs(m.Run(), io.ErrChannelFull)
}

func TestMachine_Independent(t *testing.T) {
	assert := assert.New(t)

	program := []int64{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}

	a := NewMachine(program, 8)
	b := NewMachine(program, 7)
	out_a := &io.Buffer{}
	out_b := &io.Buffer{}
	a.Output = out_a
	b.Output = out_b

	// Interleave the two machines tick by tick.
	for a.State != STATE_HALTED || b.State != STATE_HALTED {
		_, err := a.Tick()
		assert.NoError(err)
		_, err = b.Tick()
		assert.NoError(err)
	}

	assert.Equal([]int64{1}, out_a.Data)
	assert.Equal([]int64{0}, out_b.Data)
	assert.Equal(int64(-1), program[9])
}

// TestMachine_ArithmeticDag runs random straight-line add/mul programs and
// compares the result with direct evaluation.
func TestMachine_ArithmeticDag(t *testing.T) {
	assert := assert.New(t)

	rng := rand.New(rand.NewSource(5))

	for range 100 {
		count := 1 + rng.Intn(8)
		data := 4*count + 1
		size := data + 6

		program := make([]int64, size)
		for n := data; n < size; n++ {
			program[n] = int64(rng.Intn(21) - 10)
		}
		expect := append([]int64(nil), program...)

		for n := range count {
			op := OP_ADD
			if rng.Intn(2) == 1 {
				op = OP_MULTIPLY
			}
			mode_a := Mode(rng.Intn(2))
			mode_b := Mode(rng.Intn(2))
			a := int64(data + rng.Intn(6))
			b := int64(data + rng.Intn(6))
			if mode_a == MODE_IMMEDIATE {
				a = int64(rng.Intn(21) - 10)
			}
			if mode_b == MODE_IMMEDIATE {
				b = int64(rng.Intn(21) - 10)
			}
			dst := int64(data + rng.Intn(6))

			program[4*n+0] = Encode(op, mode_a, mode_b)
			program[4*n+1] = a
			program[4*n+2] = b
			program[4*n+3] = dst

			va, vb := a, b
			if mode_a == MODE_POSITION {
				va = expect[a]
			}
			if mode_b == MODE_POSITION {
				vb = expect[b]
			}
			if op == OP_ADD {
				expect[dst] = va + vb
			} else {
				expect[dst] = va * vb
			}
		}
		program[data-1] = int64(OP_TERMINATE)
		copy(expect[:data], program[:data])

		m, _ := runMachine(t, program)
		assert.Equal(expect[data:], []int64(m.Memory[data:]))
	}
}

func TestMachine_String(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine([]int64{1002, 4, 3, 4, 33}, 5)
	text := m.String()
	assert.Contains(text, "ip: 0")
	assert.Contains(text, "state: running")
	assert.Contains(text, "next: mul [4] 3 [4]")
}

func FuzzMachine(f *testing.F) {
	f.Add(int64(3), int64(9), int64(8), int64(9), int64(10), int64(8))
	f.Add(int64(1002), int64(4), int64(3), int64(4), int64(33), int64(0))
	f.Add(int64(1105), int64(1), int64(4), int64(99), int64(99), int64(0))

	f.Fuzz(func(t *testing.T, c0, c1, c2, c3, c4, input int64) {
		assert := assert.New(t)

		m := NewMachine([]int64{c0, c1, c2, c3, c4, 99}, input)
		m.Output = &io.Buffer{}

		// Programs may loop forever, so only run a bounded number of ticks.
		for range 64 {
			state, err := m.Tick()
			if err != nil {
				assert.Equal(STATE_RUNNING, state)
				return
			}
			if state == STATE_HALTED {
				return
			}
			assert.Len(m.Memory, 6)
			assert.GreaterOrEqual(m.Ip, 0)
		}
	})
}
