package interpreter

import (
	"github.com/hormigadev/hormiga/pkg/hw/cpu"
)

// mov dst,value: stores the resolved value verbatim. Movement is not clamped
// to the register width; only the arithmetic unit saturates.
func execMov(i *Interpreter, operands string) error {
	dst, err := i.resolver.Raw(operands, 0, DefaultOperandCount)

	if err != nil {
		return err
	}

	value, err := i.resolver.Value(operands, 1, DefaultOperandCount)

	if err != nil {
		return err
	}

	return i.machine.Registers().Write(value, dst)
}

// add src,dst: dst += src, saturating at the register width and raising the
// sticky overflow flag.
func execAdd(i *Interpreter, operands string) error {
	src, err := i.resolver.Value(operands, 0, DefaultOperandCount)

	if err != nil {
		return err
	}

	dst, err := i.resolver.Raw(operands, 1, DefaultOperandCount)

	if err != nil {
		return err
	}

	return i.machine.Alu().Add(src, dst)
}

// sub src,dst: dst -= src, saturating at zero and raising the sticky
// underflow flag.
func execSub(i *Interpreter, operands string) error {
	src, err := i.resolver.Value(operands, 0, DefaultOperandCount)

	if err != nil {
		return err
	}

	dst, err := i.resolver.Raw(operands, 1, DefaultOperandCount)

	if err != nil {
		return err
	}

	return i.machine.Alu().Sub(src, dst)
}

func resolveComparison(i *Interpreter, operands string) (cpu.Word, cpu.Word, error) {
	lhs, err := i.resolver.Value(operands, 0, DefaultOperandCount)

	if err != nil {
		return 0, 0, err
	}

	rhs, err := i.resolver.Value(operands, 1, DefaultOperandCount)

	if err != nil {
		return 0, 0, err
	}

	return lhs, rhs, nil
}

// cmp a,b: s = 1 iff a == b
func execCmp(i *Interpreter, operands string) error {
	lhs, rhs, err := resolveComparison(i, operands)

	if err != nil {
		return err
	}

	return i.machine.Alu().Equal(lhs, rhs)
}

// cgt a,b: s = 1 iff a > b
func execCgt(i *Interpreter, operands string) error {
	lhs, rhs, err := resolveComparison(i, operands)

	if err != nil {
		return err
	}

	return i.machine.Alu().Greater(lhs, rhs)
}

// clt a,b: s = 1 iff a < b
func execClt(i *Interpreter, operands string) error {
	lhs, rhs, err := resolveComparison(i, operands)

	if err != nil {
		return err
	}

	return i.machine.Alu().Less(lhs, rhs)
}

// branch validates the target against [0, program length] and stores
// target - 1, relying on the loop's unconditional increment to land on the
// target. Jumping to the program length is a legal clean halt.
func (i *Interpreter) branch(target cpu.Word) error {
	if target < 0 || target > i.program.Len() {
		return cpu.MakeError(cpu.ErrJumpOutOfBounds, "target %v not in [0, %v]", target, i.program.Len())
	}

	return i.machine.StateRegisters().Write(target-1, cpu.RegProgramCounter)
}

// jmp target: unconditional branch
func execJmp(i *Interpreter, operands string) error {
	target, err := i.resolver.Value(operands, 0, 1)

	if err != nil {
		return err
	}

	return i.branch(target)
}

// jnz target: branch iff s != 0. The target is only resolved when taken.
func execJnz(i *Interpreter, operands string) error {
	status, err := i.machine.FlagRegisters().Read(cpu.RegStatus)

	if err != nil {
		return err
	}

	if status == 0 {
		return nil
	}

	return execJmp(i, operands)
}

// jze target: branch iff s == 0
func execJze(i *Interpreter, operands string) error {
	status, err := i.machine.FlagRegisters().Read(cpu.RegStatus)

	if err != nil {
		return err
	}

	if status != 0 {
		return nil
	}

	return execJmp(i, operands)
}
