// Package interpreter executes hormiga assembly programs: it loads source
// text into an instruction sequence and drives the fetch-decode-execute loop
// against a machine's register file.
package interpreter

import (
	"fmt"
	"strings"

	"github.com/hormigadev/hormiga/pkg/hw/cpu"
)

// Interpreter owns the execution loop. The program counter lives in the
// machine's state registers and is mutated only by branch handlers and the
// loop's own post-instruction increment.
type Interpreter struct {
	machine  cpu.Machine
	resolver operandResolver
	program  *Program
}

func NewInterpreter(machine cpu.Machine) *Interpreter {
	return &Interpreter{
		machine: machine,
		resolver: operandResolver{
			rs: machine.Registers(),
		},
	}
}

func (i *Interpreter) Machine() cpu.Machine {
	return i.machine
}

// Program returns the loaded program, or nil before any load.
func (i *Interpreter) Program() *Program {
	return i.program
}

// Load parses source text into the instruction sequence and resets the
// register file. A failed load leaves the previous program in place and never
// starts execution.
func (i *Interpreter) Load(source string) error {
	program, err := LoadProgram(source)

	if err != nil {
		return err
	}

	if err := i.machine.Reset(); err != nil {
		return err
	}

	i.program = program

	return nil
}

// PC reads the current program counter from the machine.
func (i *Interpreter) PC() (cpu.Word, error) {
	return i.machine.StateRegisters().Read(cpu.RegProgramCounter)
}

// Halted reports whether execution is finished: no program, or the program
// counter past the last instruction.
func (i *Interpreter) Halted() bool {
	if i.program == nil {
		return true
	}

	pc, err := i.PC()

	if err != nil {
		return true
	}

	return pc < 0 || pc >= i.program.Len()
}

// StepResult describes a single executed instruction.
type StepResult struct {
	// Line is the instruction index that was executed
	Line int
	// Instruction is its source text
	Instruction string
	// NextPC is the program counter after the post-instruction increment
	NextPC cpu.Word
}

// Step fetches, decodes and executes the instruction at the current program
// counter, then unconditionally advances it by one. Branch handlers store
// `target - 1` so the increment lands exactly on the target.
func (i *Interpreter) Step() (*StepResult, error) {
	if i.program == nil {
		return nil, cpu.MakeError(cpu.ErrEmptyProgram, "no program loaded")
	}

	if i.Halted() {
		return nil, fmt.Errorf("machine is halted")
	}

	pc, err := i.PC()

	if err != nil {
		return nil, err
	}

	line := i.program.Line(pc)

	if err := i.execute(line); err != nil {
		return nil, cpu.MakeProgramError(pc, line, err)
	}

	// the branch handlers rely on this increment always happening
	current, err := i.PC()

	if err != nil {
		return nil, err
	}

	next := current + 1

	if err := i.machine.StateRegisters().Write(next, cpu.RegProgramCounter); err != nil {
		return nil, err
	}

	return &StepResult{
		Line:        pc,
		Instruction: line,
		NextPC:      next,
	}, nil
}

// execute decodes one instruction line: mnemonic up to the first space,
// operand text after it.
func (i *Interpreter) execute(line string) error {
	mnemonic, operands, found := strings.Cut(line, " ")

	if !found {
		return cpu.MakeError(cpu.ErrMissingOperand, "no operands in instruction")
	}

	operands = strings.TrimSpace(operands)

	if len(operands) == 0 {
		return cpu.MakeError(cpu.ErrMissingOperand, "empty operands in instruction")
	}

	opcode, known := ParseOpcode(mnemonic)

	if !known {
		return cpu.MakeError(cpu.ErrUnknownOpcode, "'%v'", mnemonic)
	}

	return opcodes[opcode].execute(i, operands)
}

// Run executes the loaded program until it halts and returns the final
// register snapshot.
func (i *Interpreter) Run() (cpu.Snapshot, error) {
	for !i.Halted() {
		if _, err := i.Step(); err != nil {
			return nil, err
		}
	}

	return i.machine.Snapshot()
}

// RunN executes at most n instructions.
func (i *Interpreter) RunN(n int) error {
	for count := 0; count < n && !i.Halted(); count++ {
		if _, err := i.Step(); err != nil {
			return err
		}
	}

	return nil
}

// Execute is the one-call entry point: it runs a complete source text on a
// fresh default machine and yields the final register snapshot.
func Execute(source string) (cpu.Snapshot, error) {
	i := NewInterpreter(cpu.MakeDefaultMachine())

	if err := i.Load(source); err != nil {
		return nil, err
	}

	return i.Run()
}
