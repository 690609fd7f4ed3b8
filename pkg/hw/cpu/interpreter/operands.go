package interpreter

import (
	"strconv"
	"strings"

	"github.com/hormigadev/hormiga/pkg/hw/cpu"
	"golang.org/x/exp/constraints"
)

// DefaultOperandCount is the arity required by most instructions. Branches
// override it to one.
const DefaultOperandCount = 2

// ImmediatePrefix marks a literal decimal operand, as in `mov r0,#42`.
const ImmediatePrefix = "#"

func ParseWord[Word constraints.Integer](str string) (Word, error) {
	if value, err := strconv.ParseInt(str, 10, cpu.Sizeof[Word]()*8); err != nil {
		return 0, cpu.MakeError(cpu.ErrBadImmediate, "'%v': %v", str, err)
	} else {
		return Word(value), nil
	}
}

// operandResolver extracts tokens from comma separated operand text, either
// verbatim or resolved to a value against the register bank.
type operandResolver struct {
	rs cpu.RegisterBank[cpu.Register, cpu.Word]
}

func splitOperands(text string, required int) ([]string, error) {
	tokens := strings.Split(text, ",")

	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}

	if len(tokens) < required {
		return nil, cpu.MakeError(cpu.ErrBadArity, "expected at least %v operands, got %v ('%v')", required, len(tokens), text)
	}

	return tokens, nil
}

// Raw returns the requested token unresolved. Used when the token names a
// destination register rather than a value.
func (r *operandResolver) Raw(text string, index int, required int) (string, error) {
	tokens, err := splitOperands(text, required)

	if err != nil {
		return "", err
	}

	return tokens[index], nil
}

// Value resolves the requested token: immediates are parsed as decimal
// integers, anything else is read as a register name.
func (r *operandResolver) Value(text string, index int, required int) (cpu.Word, error) {
	token, err := r.Raw(text, index, required)

	if err != nil {
		return 0, err
	}

	if strings.HasPrefix(token, ImmediatePrefix) {
		return ParseWord[cpu.Word](strings.TrimPrefix(token, ImmediatePrefix))
	}

	return r.rs.Read(token)
}
