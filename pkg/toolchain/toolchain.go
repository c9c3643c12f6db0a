// Package toolchain turns generated assembly into runnable artifacts using
// the external Jasmin assembler and LLVM tools.
package toolchain

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/raymyers/instc/pkg/logger"
)

// JasminEnv names the environment variable holding the jasmin.jar path
const JasminEnv = "INSTC_JASMIN"

// ErrToolNotFound is returned when a required external tool is unavailable
var ErrToolNotFound = errors.New("external tool not found")

//go:embed runtime.ll
var runtimeIR []byte

// Runtime returns the LLVM IR defining printInt
func Runtime() string {
	return string(runtimeIR)
}

// Options configures the external tools. Empty fields use defaults.
type Options struct {
	JasminJar string // jasmin.jar, falling back to $INSTC_JASMIN
	Java      string // java executable
	LLVMAs    string // llvm-as executable
	LLVMLink  string // llvm-link executable
}

func (o *Options) jasminJar() string {
	if o != nil && o.JasminJar != "" {
		return o.JasminJar
	}
	return os.Getenv(JasminEnv)
}

func lookTool(configured, name string) (string, error) {
	if configured == "" {
		configured = name
	}
	path, err := exec.LookPath(configured)
	if err != nil {
		return "", fmt.Errorf("%s: %w", configured, ErrToolNotFound)
	}
	return path, nil
}

func (o *Options) orEmpty() Options {
	if o == nil {
		return Options{}
	}
	return *o
}

// OutputPath returns input with its extension replaced by ext
func OutputPath(input, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

// ClassName returns the class name for an input file: its base name
// without extension
func ClassName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// AssembleJasmin assembles a .j file into a class file in the same directory
func AssembleJasmin(ctx context.Context, opts *Options, path string) error {
	jar := opts.jasminJar()
	if jar == "" {
		return fmt.Errorf("jasmin.jar (set --jasmin or %s): %w", JasminEnv, ErrToolNotFound)
	}
	java, err := lookTool(opts.orEmpty().Java, "java")
	if err != nil {
		return err
	}
	return run(ctx, java, "-jar", jar, "-d", filepath.Dir(path), path)
}

// AssembleLLVM assembles a .ll file, links it with the printInt runtime and
// returns the path of the resulting .bc file. Intermediate files are removed.
func AssembleLLVM(ctx context.Context, opts *Options, path string) (string, error) {
	o := opts.orEmpty()
	llvmAs, err := lookTool(o.LLVMAs, "llvm-as")
	if err != nil {
		return "", err
	}
	llvmLink, err := lookTool(o.LLVMLink, "llvm-link")
	if err != nil {
		return "", err
	}

	stem := OutputPath(path, "")
	intermediate := stem + "_intermediate.bc"
	runtimeLL := stem + "_runtime.ll"
	runtimeBC := stem + "_runtime.bc"
	output := stem + ".bc"
	defer func() {
		for _, f := range []string{intermediate, runtimeLL, runtimeBC} {
			os.Remove(f)
		}
	}()

	if err := os.WriteFile(runtimeLL, runtimeIR, 0644); err != nil {
		return "", fmt.Errorf("failed to write runtime: %w", err)
	}
	if err := run(ctx, llvmAs, "-o", intermediate, path); err != nil {
		return "", err
	}
	if err := run(ctx, llvmAs, "-o", runtimeBC, runtimeLL); err != nil {
		return "", err
	}
	if err := run(ctx, llvmLink, "-o", output, intermediate, runtimeBC); err != nil {
		return "", err
	}
	return output, nil
}

func run(ctx context.Context, name string, args ...string) error {
	logger.Debug("running tool", "cmd", name, "args", args)

	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w\n%s", filepath.Base(name), err, stderr.String())
	}
	return nil
}
