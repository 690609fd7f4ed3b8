package interpreter

import (
	"errors"
	"testing"

	"github.com/hormigadev/hormiga/pkg/hw/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, source string) cpu.Snapshot {
	t.Helper()

	snapshot, err := Execute(source)
	require.NoError(t, err)

	return snapshot
}

func assertProgramError(t *testing.T, err error, sentinel error, line int) {
	t.Helper()

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	var programErr *cpu.ProgramError
	require.True(t, errors.As(err, &programErr))
	assert.Equal(t, line, programErr.Line)
}

func TestExecute_Arithmetic(t *testing.T) {
	t.Run("mov and saturating add and sub", func(t *testing.T) {
		snapshot := run(t, "mov r0,#255\nmov r1,#10\nadd r0,r1\nsub #50,r1")

		assert.Equal(t, cpu.Snapshot{
			cpu.RegR0:             255,
			cpu.RegR1:             205,
			cpu.RegStatus:         0,
			cpu.RegOverflow:       1,
			cpu.RegUnderflow:      0,
			cpu.RegProgramCounter: 4,
		}, snapshot)
	})

	t.Run("add without overflow", func(t *testing.T) {
		snapshot := run(t, "add #1,r0")

		assert.Equal(t, cpu.Word(1), snapshot[cpu.RegR0])
		assert.Equal(t, cpu.Word(0), snapshot[cpu.RegOverflow])
	})

	t.Run("sub without underflow", func(t *testing.T) {
		snapshot := run(t, "mov r0,#10\nsub #3,r0")

		assert.Equal(t, cpu.Word(7), snapshot[cpu.RegR0])
		assert.Equal(t, cpu.Word(0), snapshot[cpu.RegUnderflow])
	})

	t.Run("sub clamps at zero", func(t *testing.T) {
		snapshot := run(t, "mov r1,#10\nsub r1,r0")

		assert.Equal(t, cpu.Word(0), snapshot[cpu.RegR0])
		assert.Equal(t, cpu.Word(1), snapshot[cpu.RegUnderflow])
	})

	t.Run("mov is not clamped to the register width", func(t *testing.T) {
		snapshot := run(t, "mov r0,#999")
		assert.Equal(t, cpu.Word(999), snapshot[cpu.RegR0])
	})

	t.Run("register to register mov", func(t *testing.T) {
		snapshot := run(t, "mov r0,#3\nmov r1,r0")
		assert.Equal(t, cpu.Word(3), snapshot[cpu.RegR1])
	})
}

func TestExecute_Comparisons(t *testing.T) {
	cases := []struct {
		source   string
		expected cpu.Word
	}{
		{"mov r0,#5\ncmp r0,#5", 1},
		{"mov r0,#5\ncmp r0,#6", 0},
		{"cgt #7,#3", 1},
		{"cgt #3,#3", 0},
		{"clt #2,#3", 1},
		{"clt #3,#2", 0},
	}

	for _, c := range cases {
		t.Run(c.source, func(t *testing.T) {
			snapshot := run(t, c.source)
			assert.Equal(t, c.expected, snapshot[cpu.RegStatus])
		})
	}
}

func TestExecute_Branches(t *testing.T) {
	t.Run("jmp skips over instructions", func(t *testing.T) {
		snapshot := run(t, "jmp #2\nmov r0,#1\nmov r1,#1")

		assert.Equal(t, cpu.Word(0), snapshot[cpu.RegR0])
		assert.Equal(t, cpu.Word(1), snapshot[cpu.RegR1])
	})

	t.Run("jump to the instruction count halts cleanly", func(t *testing.T) {
		snapshot := run(t, "jmp #2\nmov r0,#1")

		assert.Equal(t, cpu.Word(0), snapshot[cpu.RegR0])
		assert.Equal(t, cpu.Word(2), snapshot[cpu.RegProgramCounter])
	})

	t.Run("jnz taken", func(t *testing.T) {
		snapshot := run(t, "cmp #1,#1\njnz #3\nmov r0,#1")
		assert.Equal(t, cpu.Word(0), snapshot[cpu.RegR0])
	})

	t.Run("jnz fall through advances pc by one", func(t *testing.T) {
		snapshot := run(t, "cmp #1,#2\njnz #3\nmov r0,#1")
		assert.Equal(t, cpu.Word(1), snapshot[cpu.RegR0])
	})

	t.Run("jze taken", func(t *testing.T) {
		snapshot := run(t, "cmp #1,#2\njze #3\nmov r0,#1")
		assert.Equal(t, cpu.Word(0), snapshot[cpu.RegR0])
	})

	t.Run("jze fall through", func(t *testing.T) {
		snapshot := run(t, "cmp #1,#1\njze #3\nmov r0,#1")
		assert.Equal(t, cpu.Word(1), snapshot[cpu.RegR0])
	})

	t.Run("register target", func(t *testing.T) {
		snapshot := run(t, "mov r0,#3\njmp r0\nmov r1,#1")
		assert.Equal(t, cpu.Word(0), snapshot[cpu.RegR1])
	})

	t.Run("countdown loop", func(t *testing.T) {
		snapshot := run(t, `
			mov r0,#3
			sub #1,r0
			cmp r0,#0
			jnz #5
			jmp #1
		`)

		assert.Equal(t, cpu.Word(0), snapshot[cpu.RegR0])
		assert.Equal(t, cpu.Word(1), snapshot[cpu.RegStatus])
	})
}

func TestExecute_Errors(t *testing.T) {
	t.Run("empty program", func(t *testing.T) {
		_, err := Execute("")
		assert.ErrorIs(t, err, cpu.ErrEmptyProgram)

		_, err = Execute("\n  \n\t\n")
		assert.ErrorIs(t, err, cpu.ErrEmptyProgram)
	})

	t.Run("unknown opcode cites the line", func(t *testing.T) {
		_, err := Execute("mov r0,#1\nxyz #1,r0")
		assertProgramError(t, err, cpu.ErrUnknownOpcode, 1)
	})

	t.Run("missing operands", func(t *testing.T) {
		_, err := Execute("mov")
		assertProgramError(t, err, cpu.ErrMissingOperand, 0)
	})

	t.Run("too few operands", func(t *testing.T) {
		_, err := Execute("mov r0")
		assertProgramError(t, err, cpu.ErrBadArity, 0)
	})

	t.Run("unknown register", func(t *testing.T) {
		_, err := Execute("mov r0,#1\nmov r0,r7")
		assertProgramError(t, err, cpu.ErrUnknownRegister, 1)
	})

	t.Run("unknown destination register is rejected by the bank", func(t *testing.T) {
		_, err := Execute("mov r7,#1")
		assertProgramError(t, err, cpu.ErrUnknownRegister, 0)
	})

	t.Run("jump below zero", func(t *testing.T) {
		_, err := Execute("jmp #-1")
		assertProgramError(t, err, cpu.ErrJumpOutOfBounds, 0)
	})

	t.Run("jump past the end", func(t *testing.T) {
		_, err := Execute("jmp #5\nmov r0,#1")
		assertProgramError(t, err, cpu.ErrJumpOutOfBounds, 0)
	})

	t.Run("conditional branch resolves its target only when taken", func(t *testing.T) {
		snapshot := run(t, "cmp #1,#2\njnz #99")
		assert.Equal(t, cpu.Word(2), snapshot[cpu.RegProgramCounter])

		_, err := Execute("cmp #1,#1\njnz #99")
		assertProgramError(t, err, cpu.ErrJumpOutOfBounds, 1)
	})

	t.Run("failed load never starts execution", func(t *testing.T) {
		i := NewInterpreter(cpu.MakeDefaultMachine())

		require.NoError(t, i.Load("mov r0,#1"))
		require.Error(t, i.Load("   \n   "))

		// the previous program is still loaded and runnable
		snapshot, err := i.Run()
		require.NoError(t, err)
		assert.Equal(t, cpu.Word(1), snapshot[cpu.RegR0])
	})
}

func TestInterpreter_Step(t *testing.T) {
	i := NewInterpreter(cpu.MakeDefaultMachine())
	require.NoError(t, i.Load("mov r0,#1\nmov r1,#2"))

	step, err := i.Step()
	require.NoError(t, err)
	assert.Equal(t, 0, step.Line)
	assert.Equal(t, "mov r0,#1", step.Instruction)
	assert.Equal(t, cpu.Word(1), step.NextPC)
	assert.False(t, i.Halted())

	step, err = i.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, step.Line)
	assert.True(t, i.Halted())

	_, err = i.Step()
	assert.Error(t, err)
}

func TestInterpreter_Load_ResetsRegisters(t *testing.T) {
	i := NewInterpreter(cpu.MakeDefaultMachine())

	require.NoError(t, i.Load("mov r0,#255\nadd r0,r0"))

	_, err := i.Run()
	require.NoError(t, err)

	require.NoError(t, i.Load("mov r1,#1"))

	snapshot, err := i.Machine().Snapshot()
	require.NoError(t, err)

	for _, r := range cpu.MachineRegisterNames() {
		assert.Equal(t, cpu.Word(0), snapshot[r], "register %v", r)
	}
}

func TestInterpreter_RunN(t *testing.T) {
	i := NewInterpreter(cpu.MakeDefaultMachine())
	require.NoError(t, i.Load("mov r0,#1\nmov r1,#2\nmov r0,#3"))

	require.NoError(t, i.RunN(2))

	pc, err := i.PC()
	require.NoError(t, err)
	assert.Equal(t, cpu.Word(2), pc)
	assert.False(t, i.Halted())
}
