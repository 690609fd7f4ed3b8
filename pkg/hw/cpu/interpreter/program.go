package interpreter

import (
	"strings"

	"github.com/hormigadev/hormiga/pkg/hw/cpu"
)

// Program is the instruction sequence produced by LoadProgram. It is
// immutable after load; execution only ever indexes into it.
type Program struct {
	lines []string
}

// LoadProgram splits source text on newlines, trims every line and drops the
// blank ones, preserving order. Loading fails if nothing remains.
func LoadProgram(source string) (*Program, error) {
	var lines []string

	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)

		if len(line) > 0 {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return nil, cpu.MakeError(cpu.ErrEmptyProgram, "no instructions left after sanitizing source")
	}

	return &Program{
		lines: lines,
	}, nil
}

// Len returns the instruction count. A program counter equal to Len() means
// the machine has halted.
func (p *Program) Len() int {
	return len(p.lines)
}

func (p *Program) Line(index int) string {
	return p.lines[index]
}

func (p *Program) Lines() []string {
	return append([]string{}, p.lines...)
}
