package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/shader-validator/arena"
	"github.com/wippyai/shader-validator/engine"
	"github.com/wippyai/shader-validator/loader"
	"github.com/wippyai/shader-validator/validator"
)

func main() {
	var (
		searchPath  = pflag.StringSlice("path", nil, "Component search directories (overrides $"+loader.EnvSearchPath+")")
		disasm      = pflag.BoolP("disasm", "d", false, "Print disassembly after validating")
		verbose     = pflag.BoolP("verbose", "v", false, "Log component loading and degradations")
		interactive = pflag.BoolP("interactive", "i", false, "Interactive viewer")
	)
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: shaderval [flags] <bytecode-file>")
		pflag.PrintDefaults()
		os.Exit(2)
	}
	file := pflag.Arg(0)

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		defer logger.Sync()
		loader.SetLogger(logger)
		engine.SetLogger(logger)
		validator.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(file, *searchPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		return
	}

	passed, err := run(file, *searchPath, *disasm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if !passed {
		os.Exit(1)
	}
}

func run(file string, searchPath []string, disasm bool) (bool, error) {
	ctx := context.Background()

	data, err := os.ReadFile(file)
	if err != nil {
		return false, fmt.Errorf("read bytecode: %w", err)
	}

	a := arena.New(nil)
	defer a.Free()

	vctx, err := newContext(ctx, a, searchPath)
	if err != nil {
		return false, err
	}

	out, err := vctx.Validate(ctx, data)
	if err != nil {
		return false, fmt.Errorf("validate: %w", err)
	}

	if out.Passed {
		fmt.Printf("%s: PASS\n", file)
	} else {
		fmt.Printf("%s: FAIL\n", file)
		if out.Message != "" {
			fmt.Println(out.Message)
		}
	}

	if disasm {
		text, err := vctx.Disassemble(ctx, data)
		if stderrors.Is(err, validator.ErrUnavailable) {
			fmt.Fprintln(os.Stderr, "disassembly unavailable: diagnostics component not found")
			return out.Passed, nil
		}
		if err != nil {
			return out.Passed, fmt.Errorf("disassemble: %w", err)
		}
		fmt.Println()
		printDisassembly(text)
	}

	return out.Passed, nil
}

func newContext(ctx context.Context, a *arena.Arena, searchPath []string) (*validator.Context, error) {
	var opts []validator.Option
	if len(searchPath) > 0 {
		opts = append(opts, validator.WithLoader(loader.NewWithPath(searchPath)))
	}
	return validator.New(ctx, a, opts...)
}

// printDisassembly writes the text to stdout, syntax-highlighted when
// stdout is a terminal. Shader disassembly is LLVM IR, so the llvm
// lexer fits.
func printDisassembly(text string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(text)
		return
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, text, "llvm", "terminal256", "monokai"); err != nil {
		fmt.Print(text)
		return
	}
	fmt.Print(buffer.String())
}
