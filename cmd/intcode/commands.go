package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/intcode"
)

// options shared by the commands that execute a program.
type options struct {
	input   string
	set     string
	verbose bool
}

func (opts *options) flags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "input values, comma or space separated")
	cmd.Flags().StringVarP(&opts.set, "set", "s", "", "memory patches before the run, as address=value pairs")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "trace every instruction")
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "intcode",
		Short:         "intcode virtual machine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newRunCmd(), newAsmCmd(), newDisasmCmd(), newSearchCmd())

	return rootCmd
}

func newRunCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "run [program]",
		Short: "Run a comma-separated intcode program (default: standard input)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			mem, err := readProgram(cmd, args)
			if err != nil {
				return
			}
			return execute(cmd, intcode.NewProgram(mem), &opts)
		},
	}
	opts.flags(cmd)

	return cmd
}

func newAsmCmd() *cobra.Command {
	var opts options
	var run bool

	cmd := &cobra.Command{
		Use:   "asm <source>",
		Short: "Assemble an intcode source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			inf, err := openInput(cmd, args[0])
			if err != nil {
				return
			}
			defer inf.Close()

			asm := &intcode.Assembler{Verbose: opts.verbose}
			prog, err := asm.Parse(inf)
			if err != nil {
				return
			}

			if !run {
				return intcode.FormatProgram(cmd.OutOrStdout(), prog.Memory())
			}
			return execute(cmd, prog, &opts)
		},
	}
	opts.flags(cmd)
	cmd.Flags().BoolVarP(&run, "run", "r", false, "run the program instead of printing it")

	return cmd
}

func newDisasmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disasm [program]",
		Short: "List a comma-separated intcode program as assembler source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			mem, err := readProgram(cmd, args)
			if err != nil {
				return
			}
			return intcode.Listing(cmd.OutOrStdout(), mem)
		},
	}

	return cmd
}

func newSearchCmd() *cobra.Command {
	var limit int64
	var result int64

	cmd := &cobra.Command{
		Use:   "search [program]",
		Short: "Find the noun and verb that leave a result in cell 0, printing 100*noun+verb",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			mem, err := readProgram(cmd, args)
			if err != nil {
				return
			}

			noun, verb, err := intcode.Search(mem, limit, result)
			if err != nil {
				return
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d\n", 100*noun+verb)
			return
		},
	}
	cmd.Flags().Int64VarP(&limit, "limit", "l", 100, "nouns and verbs are searched in [0, limit)")
	cmd.Flags().Int64VarP(&result, "result", "r", 0, "value cell 0 must hold after the run")
	_ = cmd.MarkFlagRequired("result")

	return cmd
}

// openInput opens a named file, or standard input for "-".
func openInput(cmd *cobra.Command, name string) (inf io.ReadCloser, err error) {
	if name == "-" {
		inf = io.NopCloser(cmd.InOrStdin())
		return
	}

	return os.Open(name)
}

// readProgram reads the program named by the first argument, or standard
// input if there is none.
func readProgram(cmd *cobra.Command, args []string) (mem []int64, err error) {
	name := "-"
	if len(args) > 0 {
		name = args[0]
	}

	inf, err := openInput(cmd, name)
	if err != nil {
		return
	}
	defer inf.Close()

	return intcode.ParseProgram(inf)
}

// execute runs a program to completion, writing outputs one per line.
func execute(cmd *cobra.Command, prog *intcode.Program, opts *options) (err error) {
	inputs, err := intcode.ParseValues(opts.input)
	if err != nil {
		return
	}

	patches, err := intcode.ParsePatches(opts.set)
	if err != nil {
		return
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Inputs = inputs
	emu.Verbose = opts.verbose
	emu.Tape.Output = cmd.OutOrStdout()

	err = emu.Reset()
	if err != nil {
		return
	}

	for _, patch := range patches {
		if opts.verbose {
			log.Printf("intcode: patch %v", patch)
		}
		err = patch.Apply(emu.Machine.Memory)
		if err != nil {
			return
		}
	}

	return emu.Run()
}
