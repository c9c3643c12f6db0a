// Package llvm defines the subset of LLVM IR emitted for Instant programs.
// Every variable lives in its own stack slot created by alloca; values are
// i32 virtual registers or immediates.
package llvm

import "strconv"

// Value is an i32 operand: an immediate or a virtual register
type Value interface {
	implValue()
	String() string
}

// Const is an immediate i32 operand
type Const int32

// Reg is a named virtual register, printed with a % prefix
type Reg string

func (Const) implValue() {}
func (Reg) implValue()   {}

func (c Const) String() string { return strconv.FormatInt(int64(c), 10) }
func (r Reg) String() string   { return "%" + string(r) }

// Opcode is an i32 binary operation
type Opcode int

const (
	Add Opcode = iota
	Sub
	Mul
	SDiv
)

func (op Opcode) String() string {
	names := []string{"add", "sub", "mul", "sdiv"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Instruction is the interface for all instructions
type Instruction interface {
	implInstruction()
}

// Alloca reserves a stack slot for one i32
type Alloca struct {
	Dst Reg
}

// Load reads the i32 stored at Ptr
type Load struct {
	Dst Reg
	Ptr Reg
}

// Store writes Val to Ptr
type Store struct {
	Val Value
	Ptr Reg
}

// BinOp computes Dst = Left op Right
type BinOp struct {
	Dst   Reg
	Op    Opcode
	Left  Value
	Right Value
}

// Call calls a void function taking one i32
type Call struct {
	Callee string
	Arg    Value
}

// Ret returns an i32 from the function
type Ret struct {
	Val Value
}

func (Alloca) implInstruction() {}
func (Load) implInstruction()   {}
func (Store) implInstruction()  {}
func (BinOp) implInstruction()  {}
func (Call) implInstruction()   {}
func (Ret) implInstruction()    {}

// PrintInt is the runtime function that prints an integer and a newline
const PrintInt = "printInt"

// Declare is an external function declaration
type Declare struct {
	Name   string
	Result string
	Params []string
}

// Function is a function definition without parameters
type Function struct {
	Name   string
	Result string
	Code   []Instruction
}

// Module is a complete IR compilation unit
type Module struct {
	Declares  []Declare
	Functions []Function
}

// NewMainModule wraps code in an i32 main function returning 0, with the
// printInt runtime declared. The code slice is copied.
func NewMainModule(code []Instruction) *Module {
	body := make([]Instruction, 0, len(code)+1)
	body = append(body, code...)
	body = append(body, Ret{Val: Const(0)})
	return &Module{
		Declares: []Declare{{Name: PrintInt, Result: "void", Params: []string{"i32"}}},
		Functions: []Function{{
			Name:   "main",
			Result: "i32",
			Code:   body,
		}},
	}
}

// FindFunction returns the function with the given name, or nil
func (m *Module) FindFunction(name string) *Function {
	for i := range m.Functions {
		if m.Functions[i].Name == name {
			return &m.Functions[i]
		}
	}
	return nil
}
