package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRegisters(t *testing.T) {
	rs := MakeRegisters[Register, Word]("r0", "r1")

	t.Run("registers start at zero", func(t *testing.T) {
		value, err := rs.Read("r0")
		require.NoError(t, err)
		assert.Equal(t, Word(0), value)
	})

	t.Run("write then read", func(t *testing.T) {
		require.NoError(t, rs.Write(42, "r1"))

		value, err := rs.Read("r1")
		require.NoError(t, err)
		assert.Equal(t, Word(42), value)
	})

	t.Run("read unknown register", func(t *testing.T) {
		_, err := rs.Read("r9")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownRegister)
	})

	t.Run("write unknown register", func(t *testing.T) {
		err := rs.Write(1, "sp")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownRegister)
	})
}

func TestJoinRegisterBanks(t *testing.T) {
	general := MakeRegisters[Register, Word]("r0", "r1")
	flags := MakeRegisters[Register, Word]("s")
	joined := JoinRegisterBanks(general, flags)

	t.Run("reads reach the owning bank", func(t *testing.T) {
		require.NoError(t, general.Write(7, "r0"))
		require.NoError(t, flags.Write(1, "s"))

		value, err := joined.Read("r0")
		require.NoError(t, err)
		assert.Equal(t, Word(7), value)

		value, err = joined.Read("s")
		require.NoError(t, err)
		assert.Equal(t, Word(1), value)
	})

	t.Run("writes reach the owning bank", func(t *testing.T) {
		require.NoError(t, joined.Write(9, "r1"))

		value, err := general.Read("r1")
		require.NoError(t, err)
		assert.Equal(t, Word(9), value)
	})

	t.Run("unknown register in every bank", func(t *testing.T) {
		_, err := joined.Read("pc")
		assert.ErrorIs(t, err, ErrUnknownRegister)

		err = joined.Write(1, "pc")
		assert.ErrorIs(t, err, ErrUnknownRegister)
	})
}

func TestTraceRegisterBank(t *testing.T) {
	type access struct {
		op    string
		r     Register
		value Word
		err   error
	}

	var accesses []access

	rs := TraceRegisterBank(MakeRegisters[Register, Word]("r0"), func(op string, r Register, value Word, err error) {
		accesses = append(accesses, access{op: op, r: r, value: value, err: err})
	})

	require.NoError(t, rs.Write(5, "r0"))

	value, err := rs.Read("r0")
	require.NoError(t, err)
	assert.Equal(t, Word(5), value)

	_, err = rs.Read("nope")
	require.Error(t, err)

	require.Len(t, accesses, 3)
	assert.Equal(t, access{op: "write", r: "r0", value: 5}, accesses[0])
	assert.Equal(t, access{op: "read", r: "r0", value: 5}, accesses[1])
	assert.Equal(t, "read", accesses[2].op)
	assert.ErrorIs(t, accesses[2].err, ErrUnknownRegister)
}
