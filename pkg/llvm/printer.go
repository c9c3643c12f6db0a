package llvm

import (
	"fmt"
	"io"
	"strings"
)

// Printer outputs textual LLVM IR accepted by llvm-as
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new IR printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintModule prints declarations followed by function definitions
func (p *Printer) PrintModule(m *Module) {
	for _, d := range m.Declares {
		fmt.Fprintf(p.w, "declare %s @%s(%s)\n", d.Result, d.Name, strings.Join(d.Params, ", "))
	}
	for i := range m.Functions {
		p.PrintFunction(&m.Functions[i])
	}
}

// PrintFunction prints a function definition
func (p *Printer) PrintFunction(fn *Function) {
	fmt.Fprintf(p.w, "define %s @%s() {\n", fn.Result, fn.Name)
	for _, inst := range fn.Code {
		fmt.Fprintf(p.w, "\t%s\n", FormatInstruction(inst))
	}
	fmt.Fprintln(p.w, "}")
}

// FormatInstruction renders one instruction without indentation
func FormatInstruction(inst Instruction) string {
	switch i := inst.(type) {
	case Alloca:
		return fmt.Sprintf("%s = alloca i32", i.Dst)
	case Load:
		return fmt.Sprintf("%s = load i32, i32* %s", i.Dst, i.Ptr)
	case Store:
		return fmt.Sprintf("store i32 %s, i32* %s", i.Val, i.Ptr)
	case BinOp:
		return fmt.Sprintf("%s = %s i32 %s, %s", i.Dst, i.Op, i.Left, i.Right)
	case Call:
		return fmt.Sprintf("call void @%s(i32 %s)", i.Callee, i.Arg)
	case Ret:
		return fmt.Sprintf("ret i32 %s", i.Val)
	default:
		return fmt.Sprintf("; unknown instruction %T", inst)
	}
}
