package interpreter

import (
	"github.com/hormigadev/hormiga/pkg/hw/cpu"
)

// StopReason tells why an execution run returned.
type StopReason int

const (
	// StopHalt means the program counter reached the end of the program
	StopHalt StopReason = iota
	// StopError means an instruction failed
	StopError
	// StopMaxSteps means the step budget ran out
	StopMaxSteps
	// StopBreakpoint means execution paused on a breakpoint
	StopBreakpoint
)

func (r StopReason) String() string {
	switch r {
	case StopHalt:
		return "halted"
	case StopError:
		return "failed"
	case StopMaxSteps:
		return "stopped after max steps"
	case StopBreakpoint:
		return "paused on breakpoint"
	default:
		return "unknown"
	}
}

// ExecutionResult is the outcome of a Run, Continue or Step call.
type ExecutionResult struct {
	StopReason    StopReason
	StepsExecuted int
	// LastStep is the last executed instruction, nil when nothing ran
	LastStep *StepResult
	Err      error
}

// TraceCallback observes each instruction before the loop moves on. Return
// false to stop execution.
type TraceCallback func(step int, line int, instruction string) bool

// Breakpoint pauses Continue before the instruction at Line executes.
type Breakpoint struct {
	ID      int
	Line    int
	Enabled bool
}

// Runner wraps the interpreter with the conveniences CLI tools want: bounded
// runs, per-instruction tracing and breakpoints. The plain run path never
// consults breakpoints.
type Runner struct {
	interp       *Interpreter
	breakpoints  []*Breakpoint
	nextBreakpID int
	trace        TraceCallback
	result       *ExecutionResult
}

func NewRunner(machine cpu.Machine) *Runner {
	return &Runner{
		interp:       NewInterpreter(machine),
		nextBreakpID: 1,
	}
}

func (r *Runner) Interpreter() *Interpreter {
	return r.interp
}

func (r *Runner) Load(source string) error {
	return r.interp.Load(source)
}

// SetTrace installs a per-instruction callback, nil to remove it.
func (r *Runner) SetTrace(trace TraceCallback) {
	r.trace = trace
}

func (r *Runner) Halted() bool {
	return r.interp.Halted()
}

func (r *Runner) Snapshot() (cpu.Snapshot, error) {
	return r.interp.Machine().Snapshot()
}

// Result returns the outcome of the last run, nil before any run.
func (r *Runner) Result() *ExecutionResult {
	return r.result
}

// Run executes until halt, error or the step budget (0 = unlimited) runs
// out. Breakpoints are ignored.
func (r *Runner) Run(maxSteps int) *ExecutionResult {
	r.result = r.run(maxSteps, false)
	return r.result
}

// Continue executes like Run but pauses before any enabled breakpoint. The
// instruction currently under the program counter is always executed first,
// so resuming from a breakpoint makes progress.
func (r *Runner) Continue(maxSteps int) *ExecutionResult {
	r.result = r.run(maxSteps, true)
	return r.result
}

// Step executes exactly one instruction.
func (r *Runner) Step() *ExecutionResult {
	r.result = r.run(1, false)
	return r.result
}

func (r *Runner) run(maxSteps int, stopAtBreakpoints bool) *ExecutionResult {
	result := &ExecutionResult{
		StopReason: StopHalt,
	}

	for !r.interp.Halted() {
		if maxSteps > 0 && result.StepsExecuted >= maxSteps {
			result.StopReason = StopMaxSteps
			return result
		}

		pc, err := r.interp.PC()

		if err != nil {
			result.StopReason = StopError
			result.Err = err
			return result
		}

		if stopAtBreakpoints && result.StepsExecuted > 0 && r.breakpointAt(pc) != nil {
			result.StopReason = StopBreakpoint
			return result
		}

		if r.trace != nil && !r.trace(result.StepsExecuted, pc, r.interp.Program().Line(pc)) {
			result.StopReason = StopBreakpoint
			return result
		}

		step, err := r.interp.Step()

		if err != nil {
			result.StopReason = StopError
			result.Err = err
			return result
		}

		result.LastStep = step
		result.StepsExecuted++
	}

	return result
}

func (r *Runner) breakpointAt(line cpu.Word) *Breakpoint {
	for _, bp := range r.breakpoints {
		if bp.Enabled && bp.Line == line {
			return bp
		}
	}

	return nil
}

// AddBreakpoint registers a breakpoint at the given instruction index.
func (r *Runner) AddBreakpoint(line int) *Breakpoint {
	bp := &Breakpoint{
		ID:      r.nextBreakpID,
		Line:    line,
		Enabled: true,
	}

	r.nextBreakpID++
	r.breakpoints = append(r.breakpoints, bp)

	return bp
}

// RemoveBreakpoint deletes a breakpoint by ID, reporting whether it existed.
func (r *Runner) RemoveBreakpoint(id int) bool {
	for i, bp := range r.breakpoints {
		if bp.ID == id {
			r.breakpoints = append(r.breakpoints[:i], r.breakpoints[i+1:]...)
			return true
		}
	}

	return false
}

func (r *Runner) ListBreakpoints() []*Breakpoint {
	return append([]*Breakpoint{}, r.breakpoints...)
}
