package tools

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hormigadev/hormiga/pkg/hw/cpu"
	"github.com/hormigadev/hormiga/pkg/hw/cpu/interpreter"
	"github.com/spf13/cobra"
)

var supportedModules = map[string]func() string{
	"cpu.instruction_set": interpreter.Reference,
	"cpu.registers": func() string {
		return strings.Join(cpu.MachineRegisterNames(), "\n") + "\n"
	},
}

func moduleNames() []string {
	names := make([]string, 0, len(supportedModules))

	for name := range supportedModules {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

var docsCmd = &cobra.Command{
	Use:   "docs module",
	Short: "Show hormiga documentation",
	Long: `Dumps the documentation of the specified hormiga module.
By default the tool dumps the documentation to stdout, but it can be redirected to a file using the --output flag.

Supported modules:
  ` + strings.Join(moduleNames(), "\n  "),
	Args:      cobra.MatchAll(cobra.OnlyValidArgs, cobra.ExactArgs(1)),
	ValidArgs: moduleNames(),
	Run: func(cmd *cobra.Command, args []string) {
		outputFile, _ := cmd.Flags().GetString("output")

		if outputFile != "" {
			file, err := os.Create(outputFile)
			if err != nil {
				fmt.Println("Error creating file:", err)
				os.Exit(1)
			}
			defer file.Close()
			fmt.Fprintln(file, supportedModules[args[0]]())
		} else {
			fmt.Println(supportedModules[args[0]]())
		}
	},
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Output file")
}
