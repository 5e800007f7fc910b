// Command rv32isim assembles an RV32I source file, runs it to completion,
// and prints a statistics report. It is a thin external driver: it has no
// REPL, no TUI, and no benchmark suite.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rv32core/rv32isim/asm"
	"github.com/rv32core/rv32isim/config"
	"github.com/rv32core/rv32isim/loader"
	"github.com/rv32core/rv32isim/vm"
)

func main() {
	var (
		verbose    bool
		dump       bool
		maxCycles  uint64
		memSize    uint32
		configPath string
		saveConfig bool
		logTrace   bool
	)

	root := &cobra.Command{
		Use:   "rv32isim <file.s>",
		Short: "Assemble and run an RV32I program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(runOptions{
				path:         args[0],
				verbose:      verbose,
				dump:         dump,
				maxCycles:    maxCycles,
				maxCyclesSet: cmd.Flags().Changed("max-cycles"),
				memSize:      memSize,
				memSizeSet:   cmd.Flags().Changed("mem-size"),
				configPath:   configPath,
				saveConfig:   saveConfig,
				logTrace:     logTrace,
			})
		},
	}

	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the statistics report after execution")
	root.Flags().BoolVar(&dump, "dump", false, "print disassembled machine code before running")
	root.Flags().Uint64Var(&maxCycles, "max-cycles", 1_000_000, "maximum cycles before forced stop")
	root.Flags().Uint32Var(&memSize, "mem-size", vm.DefaultMemorySize, "memory size in bytes")
	root.Flags().StringVar(&configPath, "config", "", "TOML config file to load (default: platform config path)")
	root.Flags().BoolVar(&saveConfig, "save-config", false, "persist the effective configuration for future runs")
	root.Flags().BoolVar(&logTrace, "log-trace", false, "append run warnings to a log file under the platform log directory")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runOptions carries the flags a run needs, separate from cobra's own
// Command so loadConfig/run stay easy to read in isolation.
type runOptions struct {
	path         string
	verbose      bool
	dump         bool
	maxCycles    uint64
	maxCyclesSet bool
	memSize      uint32
	memSizeSet   bool
	configPath   string
	saveConfig   bool
	logTrace     bool
}

func run(opt runOptions) error {
	cfg, err := loadConfig(opt.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Explicit flags override whatever the config file (or its defaults)
	// supplied.
	if opt.maxCyclesSet {
		cfg.Execution.MaxCycles = opt.maxCycles
	}
	if opt.memSizeSet {
		cfg.Execution.MemorySize = opt.memSize
	}
	if opt.logTrace {
		cfg.Execution.EnableTrace = true
	}

	if opt.saveConfig {
		if err := persistConfig(cfg, opt.configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	src, err := os.ReadFile(opt.path) // #nosec G304 -- user-specified input file
	if err != nil {
		return fmt.Errorf("reading %s: %w", opt.path, err)
	}

	if opt.dump {
		words, errs := asm.Assemble(string(src))
		if errs.HasErrors() {
			return fmt.Errorf("assembly failed:\n%s", errs.Error())
		}
		fmt.Print(asm.Disassemble(words, 0))
		fmt.Println()
	}

	machine := vm.NewVM(cfg.Execution.MemorySize, cfg.Execution.MaxCycles)
	if err := loader.LoadSource(machine, string(src), 0); err != nil {
		return err
	}

	runErr := machine.Run()

	if cfg.Execution.EnableTrace && len(machine.Warnings) > 0 {
		if err := appendTraceLog(machine.Warnings); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write trace log: %v\n", err)
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "execution fault at PC=0x%08X: %v\n", machine.CPU.PC, runErr)
		os.Exit(1)
	}

	for _, w := range machine.Warnings {
		fmt.Fprintln(os.Stderr, "warning: "+w)
	}

	if opt.verbose || cfg.Execution.EnableStats {
		fmt.Print(machine.Statistics().String())
	}

	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func persistConfig(cfg *config.Config, path string) error {
	if path != "" {
		return cfg.SaveTo(path)
	}
	return cfg.Save()
}

// appendTraceLog appends the run's warnings to a log file under the platform log
// directory, for the --log-trace / execution.enable_trace case.
func appendTraceLog(warnings []string) error {
	path := filepath.Join(config.GetLogPath(), "rv32isim.log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // #nosec G304 -- fixed platform log directory
	if err != nil {
		return err
	}
	defer f.Close()
	for _, w := range warnings {
		if _, err := fmt.Fprintln(f, w); err != nil {
			return err
		}
	}
	return nil
}
