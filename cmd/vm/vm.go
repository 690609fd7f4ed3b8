package vm

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// VmCmd groups the virtual machine commands
var VmCmd = &cobra.Command{
	Use:   "vm",
	Short: "Run and debug hormiga programs",
}

// Color definitions for CLI output
var (
	colorAddr       = color.New(color.FgCyan)
	colorInstr      = color.New(color.FgYellow)
	colorReg        = color.New(color.FgGreen)
	colorValue      = color.New(color.FgWhite, color.Bold)
	colorPrompt     = color.New(color.FgBlue, color.Bold)
	colorError      = color.New(color.FgRed, color.Bold)
	colorSuccess    = color.New(color.FgGreen)
	colorWarning    = color.New(color.FgYellow)
	colorBreakpoint = color.New(color.FgRed, color.Bold)
	colorPC         = color.New(color.FgGreen, color.Bold)
	colorFlagSet    = color.New(color.FgGreen, color.Bold)
	colorFlagClear  = color.New(color.FgHiBlack)
)
