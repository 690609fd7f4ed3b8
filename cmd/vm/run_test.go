package vm

import (
	"strings"
	"testing"

	"github.com/hormigadev/hormiga/pkg/hw/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintSnapshot_Yaml(t *testing.T) {
	snapshot := cpu.Snapshot{
		cpu.RegR0:             255,
		cpu.RegR1:             205,
		cpu.RegStatus:         0,
		cpu.RegOverflow:       1,
		cpu.RegUnderflow:      0,
		cpu.RegProgramCounter: 4,
	}

	var out strings.Builder
	require.NoError(t, printSnapshot(&out, snapshot, "yaml"))

	assert.Equal(t, "r0: 255\nr1: 205\ns: 0\novfl: 1\nudfl: 0\npc: 4\n", out.String())
}

func TestPrintSnapshot_UnknownFormat(t *testing.T) {
	err := printSnapshot(&strings.Builder{}, cpu.Snapshot{}, "json")
	assert.Error(t, err)
}

func TestMakeMachine_Traced(t *testing.T) {
	m := makeMachine(true)

	require.NoError(t, m.Registers().Write(1, cpu.RegR0))

	value, err := m.Registers().Read(cpu.RegR0)
	require.NoError(t, err)
	assert.Equal(t, cpu.Word(1), value)
}
