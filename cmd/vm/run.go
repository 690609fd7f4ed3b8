package vm

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hormigadev/hormiga/pkg/hw/cpu"
	"github.com/hormigadev/hormiga/pkg/hw/cpu/interpreter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	runTrace     bool
	runMaxSteps  int
	runFormat    string
	runTraceRegs bool
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Execute a hormiga program",
	Long: `Loads and executes a hormiga assembly file and prints the final register
snapshot.

Programs are plain text, one instruction per line:

  mov r0,#255
  mov r1,#10
  add r0,r1
  sub #50,r1

Operands are either immediates (#42) or register names (r0, r1, s, ovfl,
udfl, pc). --trace prints every executed line, and --max-steps bounds
execution as a safety net against programs that never halt.

Example:
  hormiga vm run program.hormiga
  hormiga vm run --trace --format yaml program.hormiga`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	VmCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVarP(&runTrace, "trace", "t", false, "Print each executed instruction")
	runCmd.Flags().IntVarP(&runMaxSteps, "max-steps", "n", 0, "Maximum number of instructions to execute (0 = unlimited)")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "text", "Snapshot output format (text, yaml)")
	runCmd.Flags().BoolVar(&runTraceRegs, "trace-registers", false, "Log every register access at debug level")

	cobra.CheckErr(viper.BindPFlag("run.max-steps", runCmd.Flags().Lookup("max-steps")))
}

func runRun(cmd *cobra.Command, args []string) {
	source, err := os.ReadFile(args[0])
	if err != nil {
		colorError.Fprintf(os.Stderr, "Error reading program: %v\n", err)
		os.Exit(1)
	}

	runner := interpreter.NewRunner(makeMachine(runTraceRegs))

	if err := runner.Load(string(source)); err != nil {
		colorError.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(2)
	}

	slog.Debug("program loaded", "file", args[0], "instructions", runner.Interpreter().Program().Len())

	if runTrace {
		runner.SetTrace(func(step int, line int, instruction string) bool {
			fmt.Fprintf(os.Stderr, "[%4d] %s %s\n",
				step,
				colorAddr.Sprintf("%3d", line),
				colorInstr.Sprint(instruction))
			return true
		})
	}

	result := runner.Run(viper.GetInt("run.max-steps"))

	if result.Err != nil {
		colorError.Fprintf(os.Stderr, "Execution failed: %v\n", result.Err)
		os.Exit(3)
	}

	if result.StopReason == interpreter.StopMaxSteps {
		colorWarning.Fprintf(os.Stderr, "Execution %s (%d)\n", result.StopReason, result.StepsExecuted)
		os.Exit(4)
	}

	slog.Debug("program finished", "steps", result.StepsExecuted)

	snapshot, err := runner.Snapshot()
	if err != nil {
		colorError.Fprintf(os.Stderr, "Error reading final state: %v\n", err)
		os.Exit(3)
	}

	if err := printSnapshot(os.Stdout, snapshot, runFormat); err != nil {
		colorError.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// makeMachine wires the default machine, optionally decorating every
// register bank so each access is logged.
func makeMachine(traced bool) cpu.Machine {
	if !traced {
		return cpu.MakeDefaultMachine()
	}

	trace := func(op string, r cpu.Register, value cpu.Word, err error) {
		if err != nil {
			slog.Debug("register access failed", "op", op, "register", r, "error", err)
		} else {
			slog.Debug("register access", "op", op, "register", r, "value", value)
		}
	}

	banks := cpu.TracedRegisterBankFactory[cpu.Register, cpu.Word](cpu.MakeRegisters[cpu.Register, cpu.Word], trace)

	return cpu.MakeMachine(cpu.MachineSettings{
		RegisterSize: cpu.RegSize,
	}, cpu.MachineFactories{
		GeneralRegisters: banks,
		FlagRegisters:    banks,
		StateRegisters:   banks,
		Alu:              cpu.MakeSaturatingAlu[cpu.Register, cpu.Word],
	})
}

// snapshotDocument fixes the register order of the YAML output.
type snapshotDocument struct {
	R0   cpu.Word `yaml:"r0"`
	R1   cpu.Word `yaml:"r1"`
	S    cpu.Word `yaml:"s"`
	Ovfl cpu.Word `yaml:"ovfl"`
	Udfl cpu.Word `yaml:"udfl"`
	Pc   cpu.Word `yaml:"pc"`
}

func printSnapshot(w io.Writer, snapshot cpu.Snapshot, format string) error {
	switch format {
	case "text":
		for _, r := range cpu.MachineRegisterNames() {
			fmt.Fprintf(w, "%s = %s\n",
				colorReg.Sprintf("%-4s", r),
				colorValue.Sprint(snapshot[r]))
		}
		return nil

	case "yaml":
		out, err := yaml.Marshal(&snapshotDocument{
			R0:   snapshot[cpu.RegR0],
			R1:   snapshot[cpu.RegR1],
			S:    snapshot[cpu.RegStatus],
			Ovfl: snapshot[cpu.RegOverflow],
			Udfl: snapshot[cpu.RegUnderflow],
			Pc:   snapshot[cpu.RegProgramCounter],
		})
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err

	default:
		return fmt.Errorf("unsupported snapshot format '%v'", format)
	}
}
