package vm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hormigadev/hormiga/pkg/hw/cpu"
	"github.com/hormigadev/hormiga/pkg/hw/cpu/interpreter"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var debugCmd = &cobra.Command{
	Use:   "debug <file>",
	Short: "Debug a hormiga program interactively",
	Long: `Loads a hormiga assembly file and drops into an interactive debugger.

Commands:
  step, s            execute one instruction
  continue, c        run until a breakpoint or halt
  regs, r            show the register file
  list, l            show the program with the current pc
  break <line>, b    add a breakpoint at an instruction index
  delete <id>, d     remove a breakpoint by id
  breaks             list breakpoints
  reset              reload the program from the start
  help, h            show this help
  quit, q            leave the debugger`,
	Args: cobra.ExactArgs(1),
	Run:  runDebug,
}

func init() {
	VmCmd.AddCommand(debugCmd)
}

type debugSession struct {
	source string
	runner *interpreter.Runner
}

func runDebug(cmd *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		colorError.Fprintln(os.Stderr, "Error: the debugger needs an interactive terminal")
		os.Exit(1)
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		colorError.Fprintf(os.Stderr, "Error reading program: %v\n", err)
		os.Exit(1)
	}

	session := &debugSession{
		source: string(source),
		runner: interpreter.NewRunner(cpu.MakeDefaultMachine()),
	}

	if err := session.runner.Load(session.source); err != nil {
		colorError.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("Loaded %v (%d instructions). Type 'help' for commands.\n",
		args[0], session.runner.Interpreter().Program().Len())

	prompt := liner.NewLiner()
	defer prompt.Close()
	prompt.SetCtrlCAborts(true)

	for {
		input, err := prompt.Prompt(colorPrompt.Sprint("(hormiga) "))

		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Println()
			return
		} else if err != nil {
			colorError.Fprintf(os.Stderr, "Error reading command: %v\n", err)
			return
		}

		input = strings.TrimSpace(input)

		if len(input) == 0 {
			continue
		}

		prompt.AppendHistory(input)

		if quit := session.dispatch(cmd, input); quit {
			return
		}
	}
}

// dispatch runs one debugger command, reporting whether the session is over.
func (s *debugSession) dispatch(cmd *cobra.Command, input string) bool {
	fields := strings.Fields(input)

	switch fields[0] {
	case "step", "s":
		s.report(s.runner.Step())

	case "continue", "c":
		s.report(s.runner.Continue(0))

	case "regs", "r":
		s.printRegisters()

	case "list", "l":
		s.printProgram()

	case "break", "b":
		s.addBreakpoint(fields[1:])

	case "delete", "d":
		s.removeBreakpoint(fields[1:])

	case "breaks":
		s.printBreakpoints()

	case "reset":
		if err := s.runner.Load(s.source); err != nil {
			colorError.Printf("Error reloading program: %v\n", err)
		} else {
			colorSuccess.Println("Program reloaded")
		}

	case "help", "h":
		fmt.Println(cmd.Long)

	case "quit", "q", "exit":
		return true

	default:
		colorError.Printf("Unknown command '%v', type 'help'\n", fields[0])
	}

	return false
}

func (s *debugSession) report(result *interpreter.ExecutionResult) {
	if result.Err != nil {
		colorError.Printf("Execution failed: %v\n", result.Err)
		return
	}

	switch result.StopReason {
	case interpreter.StopBreakpoint:
		if pc, err := s.runner.Interpreter().PC(); err == nil {
			colorBreakpoint.Printf("Breakpoint hit at line %v\n", pc)
		}
	case interpreter.StopHalt:
		if result.StepsExecuted == 0 && s.runner.Halted() {
			colorWarning.Println("Machine is halted, use 'reset' to start over")
			return
		}
		if s.runner.Halted() {
			colorSuccess.Printf("Program halted after %d steps\n", result.StepsExecuted)
		}
	}

	if result.LastStep != nil {
		fmt.Printf("%s %s\n",
			colorAddr.Sprintf("%3d", result.LastStep.Line),
			colorInstr.Sprint(result.LastStep.Instruction))
	}
}

func (s *debugSession) printRegisters() {
	snapshot, err := s.runner.Snapshot()

	if err != nil {
		colorError.Printf("Error reading registers: %v\n", err)
		return
	}

	for _, r := range cpu.MachineRegisterNames() {
		value := snapshot[r]

		switch r {
		case cpu.RegStatus, cpu.RegOverflow, cpu.RegUnderflow:
			flag := colorFlagClear
			if value != 0 {
				flag = colorFlagSet
			}
			fmt.Printf("%s = %s\n", colorReg.Sprintf("%-4s", r), flag.Sprint(value))
		default:
			fmt.Printf("%s = %s\n", colorReg.Sprintf("%-4s", r), colorValue.Sprint(value))
		}
	}
}

func (s *debugSession) printProgram() {
	pc, err := s.runner.Interpreter().PC()

	if err != nil {
		colorError.Printf("Error reading pc: %v\n", err)
		return
	}

	breakpoints := map[int]bool{}

	for _, bp := range s.runner.ListBreakpoints() {
		if bp.Enabled {
			breakpoints[bp.Line] = true
		}
	}

	program := s.runner.Interpreter().Program()

	for index, line := range program.Lines() {
		marker := "   "

		if index == pc {
			marker = colorPC.Sprint("-> ")
		} else if breakpoints[index] {
			marker = colorBreakpoint.Sprint(" * ")
		}

		fmt.Printf("%s%s %s\n", marker, colorAddr.Sprintf("%3d", index), colorInstr.Sprint(line))
	}
}

func (s *debugSession) addBreakpoint(args []string) {
	if len(args) != 1 {
		colorError.Println("Usage: break <line>")
		return
	}

	line, err := strconv.Atoi(args[0])

	if err != nil || line < 0 || line >= s.runner.Interpreter().Program().Len() {
		colorError.Printf("Invalid instruction index '%v'\n", args[0])
		return
	}

	bp := s.runner.AddBreakpoint(line)
	colorSuccess.Printf("Breakpoint %d set at line %d\n", bp.ID, bp.Line)
}

func (s *debugSession) removeBreakpoint(args []string) {
	if len(args) != 1 {
		colorError.Println("Usage: delete <id>")
		return
	}

	id, err := strconv.Atoi(args[0])

	if err != nil || !s.runner.RemoveBreakpoint(id) {
		colorError.Printf("No breakpoint with id '%v'\n", args[0])
		return
	}

	colorSuccess.Printf("Breakpoint %d removed\n", id)
}

func (s *debugSession) printBreakpoints() {
	breakpoints := s.runner.ListBreakpoints()

	if len(breakpoints) == 0 {
		fmt.Println("No breakpoints")
		return
	}

	for _, bp := range breakpoints {
		fmt.Printf("%s at line %s: %s\n",
			colorBreakpoint.Sprintf("#%d", bp.ID),
			colorAddr.Sprint(bp.Line),
			colorInstr.Sprint(s.runner.Interpreter().Program().Line(bp.Line)))
	}
}
