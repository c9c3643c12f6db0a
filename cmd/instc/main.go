package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/raymyers/instc/pkg/ast"
	"github.com/raymyers/instc/pkg/jasmin"
	"github.com/raymyers/instc/pkg/jvmgen"
	"github.com/raymyers/instc/pkg/lexer"
	"github.com/raymyers/instc/pkg/llvm"
	"github.com/raymyers/instc/pkg/llvmgen"
	"github.com/raymyers/instc/pkg/logger"
	"github.com/raymyers/instc/pkg/parser"
	"github.com/raymyers/instc/pkg/toolchain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "0.1.0"

// Debug flags for dumping intermediate representations
var (
	dParse bool
	dAST   bool
	dDepth bool
)

// Compilation options
var (
	target    = targetJVM
	outputDir string
	runCode   bool
	assemble  bool
	jasminJar string
	verbose   bool
	logFormat string
)

// targetValue selects the backend. It implements pflag.Value so that an
// unknown target is rejected while flags are parsed.
type targetValue string

const (
	targetJVM  targetValue = "jvm"
	targetLLVM targetValue = "llvm"
)

var _ pflag.Value = (*targetValue)(nil)

func (t *targetValue) String() string { return string(*t) }

func (t *targetValue) Set(s string) error {
	switch v := targetValue(strings.ToLower(s)); v {
	case targetJVM, targetLLVM:
		*t = v
		return nil
	}
	return fmt.Errorf("unknown target %q (want jvm or llvm)", s)
}

func (t *targetValue) Type() string { return "target" }

// ext returns the extension of the generated file
func (t targetValue) ext() string {
	if t == targetLLVM {
		return ".ll"
	}
	return ".j"
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Accept single-dash debug flags such as -dparse
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists the debug flags that also accept single-dash style
var debugFlagNames = []string{"dparse", "dast", "ddepth"}

// normalizeFlags converts single-dash debug flags like -dparse to --dparse
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "instc [file]",
		Short: "instc compiles Instant programs to JVM and LLVM assembly",
		Long: `instc compiles programs in Instant, a language of integer
assignments and print statements, to Jasmin assembly for the JVM or
to LLVM IR. Operands are ordered so that the JVM operand stack stays
as small as possible.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(logger.Config{Verbose: verbose, Format: logFormat, Output: errOut}); err != nil {
				fmt.Fprintf(errOut, "instc: %v\n", err)
				return err
			}

			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			filename := args[0]

			if dParse {
				return doParse(filename, out, errOut)
			}
			if dAST {
				return doAST(filename, out, errOut)
			}
			if dDepth {
				return doDepth(filename, out, errOut)
			}
			return doCompile(cmd.Context(), filename, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// Debug flags
	rootCmd.Flags().BoolVarP(&dParse, "dparse", "", false, "Dump after parsing")
	rootCmd.Flags().BoolVarP(&dAST, "dast", "", false, "Dump the AST structure")
	rootCmd.Flags().BoolVarP(&dDepth, "ddepth", "", false, "Dump expressions annotated with stack depth")

	// Compilation flags
	rootCmd.Flags().VarP(&target, "target", "t", "Backend: jvm or llvm")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for generated files (default: next to the input)")
	rootCmd.Flags().BoolVar(&runCode, "run", false, "Interpret the generated code and print its output")
	rootCmd.Flags().BoolVar(&assemble, "assemble", false, "Assemble the generated code with jasmin or llvm-as")
	rootCmd.Flags().StringVar(&jasminJar, "jasmin", "", "Path to jasmin.jar (default: $"+toolchain.JasminEnv+")")

	// Logging flags
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	return rootCmd
}

// parseFile reads and parses an Instant file, returning the AST
func parseFile(filename string, errOut io.Writer) (*ast.Program, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "instc: error reading %s: %v\n", filename, err)
		return nil, err
	}

	p := parser.New(lexer.New(string(content)))
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			fmt.Fprintf(errOut, "%s: %s\n", filename, e)
		}
		return nil, fmt.Errorf("parsing failed with %d errors", len(p.Errors()))
	}
	logger.Debug("parsed program", "file", filename, "statements", len(program.Stmts))
	return program, nil
}

// outputFilename returns where the file generated from filename with the
// given extension is written
func outputFilename(filename, ext string) string {
	path := toolchain.OutputPath(filename, ext)
	if outputDir != "" {
		return filepath.Join(outputDir, filepath.Base(path))
	}
	return path
}

// writeOutput writes text to path and echoes it to out
func writeOutput(path, text string, out, errOut io.Writer) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		fmt.Fprintf(errOut, "instc: error creating %s: %v\n", path, err)
		return err
	}
	logger.Debug("wrote output", "file", path, "bytes", len(text))
	fmt.Fprint(out, text)
	return nil
}

// doParse parses the file and writes the program back to a .parsed.ins file
func doParse(filename string, out, errOut io.Writer) error {
	program, err := parseFile(filename, errOut)
	if err != nil {
		return err
	}

	var sb strings.Builder
	ast.NewPrinter(&sb).PrintProgram(program)
	return writeOutput(outputFilename(filename, ".parsed.ins"), sb.String(), out, errOut)
}

// doAST dumps the Go structure of the parsed program
func doAST(filename string, out, errOut io.Writer) error {
	program, err := parseFile(filename, errOut)
	if err != nil {
		return err
	}
	spew.Fdump(out, program)
	return nil
}

// doDepth prints the depth-annotated program and its stack limit
func doDepth(filename string, out, errOut io.Writer) error {
	program, err := parseFile(filename, errOut)
	if err != nil {
		return err
	}
	jvmgen.NewPrinter(out).PrintProgram(jvmgen.AnnotateProgram(program))
	return nil
}

// compiled is the generated code for one backend
type compiled struct {
	text string
	run  func() ([]int32, error)
}

func compileJVM(program *ast.Program, filename string) (*compiled, error) {
	class, err := jvmgen.TranslateProgram(program, toolchain.ClassName(filename))
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	jasmin.NewPrinter(&sb).PrintClass(class)
	return &compiled{
		text: sb.String(),
		run:  func() ([]int32, error) { return jasmin.RunClass(class) },
	}, nil
}

func compileLLVM(program *ast.Program) (*compiled, error) {
	module, err := llvmgen.TranslateProgram(program)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	llvm.NewPrinter(&sb).PrintModule(module)
	return &compiled{
		text: sb.String(),
		run:  func() ([]int32, error) { return llvm.RunModule(module) },
	}, nil
}

// doCompile generates code for the selected target and writes it next to
// the input. With --run the program output is printed instead of the code.
func doCompile(ctx context.Context, filename string, out, errOut io.Writer) error {
	program, err := parseFile(filename, errOut)
	if err != nil {
		return err
	}

	logger.Debug("compiling", "file", filename, "target", target.String())
	var result *compiled
	if target == targetLLVM {
		result, err = compileLLVM(program)
	} else {
		result, err = compileJVM(program, filename)
	}
	if err != nil {
		fmt.Fprintf(errOut, "instc: %s: %v\n", filename, err)
		return err
	}

	path := outputFilename(filename, target.ext())
	textOut := out
	if runCode {
		textOut = io.Discard
	}
	if err := writeOutput(path, result.text, textOut, errOut); err != nil {
		return err
	}

	if runCode {
		values, err := result.run()
		for _, v := range values {
			fmt.Fprintln(out, v)
		}
		if err != nil {
			fmt.Fprintf(errOut, "instc: runtime error: %v\n", err)
			return err
		}
	}

	if assemble {
		return doAssemble(ctx, path, errOut)
	}
	return nil
}

// doAssemble runs the external assembler for the selected target
func doAssemble(ctx context.Context, path string, errOut io.Writer) error {
	opts := &toolchain.Options{JasminJar: jasminJar}
	if target == targetLLVM {
		bc, err := toolchain.AssembleLLVM(ctx, opts, path)
		if err != nil {
			fmt.Fprintf(errOut, "instc: %v\n", err)
			return err
		}
		logger.Info("assembled", "file", bc)
		return nil
	}

	if err := toolchain.AssembleJasmin(ctx, opts, path); err != nil {
		fmt.Fprintf(errOut, "instc: %v\n", err)
		return err
	}
	logger.Info("assembled", "dir", filepath.Dir(path))
	return nil
}
