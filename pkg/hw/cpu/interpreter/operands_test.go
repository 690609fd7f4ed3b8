package interpreter

import (
	"testing"

	"github.com/hormigadev/hormiga/pkg/hw/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestResolver(t *testing.T) (*operandResolver, cpu.RegisterBank[cpu.Register, cpu.Word]) {
	t.Helper()

	machine := cpu.MakeDefaultMachine()

	return &operandResolver{rs: machine.Registers()}, machine.Registers()
}

func TestOperandResolver_Raw(t *testing.T) {
	resolver, _ := makeTestResolver(t)

	t.Run("returns the requested token verbatim", func(t *testing.T) {
		token, err := resolver.Raw("r0,#255", 0, DefaultOperandCount)
		require.NoError(t, err)
		assert.Equal(t, "r0", token)

		token, err = resolver.Raw("r0,#255", 1, DefaultOperandCount)
		require.NoError(t, err)
		assert.Equal(t, "#255", token)
	})

	t.Run("tokens are trimmed", func(t *testing.T) {
		token, err := resolver.Raw("r0, #255", 1, DefaultOperandCount)
		require.NoError(t, err)
		assert.Equal(t, "#255", token)
	})

	t.Run("arity error on too few tokens", func(t *testing.T) {
		_, err := resolver.Raw("r0", 0, DefaultOperandCount)
		assert.ErrorIs(t, err, cpu.ErrBadArity)
	})

	t.Run("single token arity can be requested", func(t *testing.T) {
		token, err := resolver.Raw("#3", 0, 1)
		require.NoError(t, err)
		assert.Equal(t, "#3", token)
	})
}

func TestOperandResolver_Value(t *testing.T) {
	resolver, rs := makeTestResolver(t)

	t.Run("immediate", func(t *testing.T) {
		value, err := resolver.Value("r0,#255", 1, DefaultOperandCount)
		require.NoError(t, err)
		assert.Equal(t, cpu.Word(255), value)
	})

	t.Run("register", func(t *testing.T) {
		require.NoError(t, rs.Write(42, cpu.RegR1))

		value, err := resolver.Value("r1,#0", 0, DefaultOperandCount)
		require.NoError(t, err)
		assert.Equal(t, cpu.Word(42), value)
	})

	t.Run("unknown register", func(t *testing.T) {
		_, err := resolver.Value("r9,#0", 0, DefaultOperandCount)
		assert.ErrorIs(t, err, cpu.ErrUnknownRegister)
	})

	t.Run("invalid immediate", func(t *testing.T) {
		_, err := resolver.Value("#abc,r0", 0, DefaultOperandCount)
		assert.ErrorIs(t, err, cpu.ErrBadImmediate)
	})

	t.Run("arity error before resolution", func(t *testing.T) {
		_, err := resolver.Value("#1", 0, DefaultOperandCount)
		assert.ErrorIs(t, err, cpu.ErrBadArity)
	})
}

func TestParseWord(t *testing.T) {
	value, err := ParseWord[cpu.Word]("123")
	require.NoError(t, err)
	assert.Equal(t, cpu.Word(123), value)

	value, err = ParseWord[cpu.Word]("-5")
	require.NoError(t, err)
	assert.Equal(t, cpu.Word(-5), value)

	_, err = ParseWord[cpu.Word]("0x10")
	assert.ErrorIs(t, err, cpu.ErrBadImmediate)
}
