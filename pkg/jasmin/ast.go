// Package jasmin defines the JVM stack-machine representation emitted by the
// compiler, printed in the textual format accepted by the Jasmin assembler.
package jasmin

// Instruction is the interface for all JVM instructions
type Instruction interface {
	implInstruction()
}

// Constant pushes

// Iconst pushes -1 or 1..5 with the single-byte iconst_<n> forms
type Iconst struct{ Value int32 }

// Bipush pushes a signed 8-bit immediate
type Bipush struct{ Value int32 }

// Sipush pushes a signed 16-bit immediate
type Sipush struct{ Value int32 }

// Ldc pushes an int from the constant pool
type Ldc struct{ Value int32 }

// Local variable access

// Iload pushes the int in local Slot
type Iload struct{ Slot int }

// Istore pops an int into local Slot
type Istore struct{ Slot int }

// Aload pushes the reference in local Slot
type Aload struct{ Slot int }

// Arithmetic
type Iadd struct{} // ..., a, b -> a + b
type Isub struct{} // ..., a, b -> a - b
type Imul struct{} // ..., a, b -> a * b
type Idiv struct{} // ..., a, b -> a / b

// Swap exchanges the two topmost stack values
type Swap struct{}

// Fields and calls

// Getstatic pushes the value of a static field
type Getstatic struct {
	Field      string // e.g. java/lang/System/out
	Descriptor string // e.g. Ljava/io/PrintStream;
}

// Invokevirtual calls an instance method
type Invokevirtual struct {
	Method string // class/name(args)ret
}

// Invokespecial calls a constructor or private method
type Invokespecial struct {
	Method string
}

// Return returns void from the current method
type Return struct{}

func (Iconst) implInstruction()        {}
func (Bipush) implInstruction()        {}
func (Sipush) implInstruction()        {}
func (Ldc) implInstruction()           {}
func (Iload) implInstruction()         {}
func (Istore) implInstruction()        {}
func (Aload) implInstruction()         {}
func (Iadd) implInstruction()          {}
func (Isub) implInstruction()          {}
func (Imul) implInstruction()          {}
func (Idiv) implInstruction()          {}
func (Swap) implInstruction()          {}
func (Getstatic) implInstruction()     {}
func (Invokevirtual) implInstruction() {}
func (Invokespecial) implInstruction() {}
func (Return) implInstruction()        {}

// Well-known members used by generated code
const (
	ObjectClass     = "java/lang/Object"
	ObjectInit      = "java/lang/Object/<init>()V"
	SystemOut       = "java/lang/System/out"
	PrintStreamType = "Ljava/io/PrintStream;"
	PrintlnInt      = "java/io/PrintStream/println(I)V"
	MainDescriptor  = "([Ljava/lang/String;)V"
	InitDescriptor  = "()V"
	PublicAccess    = "public"
	PublicStatic    = "public static"
)

// PrintSink is the instruction that pushes System.out
var PrintSink = Getstatic{Field: SystemOut, Descriptor: PrintStreamType}

// PrintCall is the instruction that prints an int through System.out
var PrintCall = Invokevirtual{Method: PrintlnInt}

// Limits are the operand stack and local variable sizes declared for a method
type Limits struct {
	Stack  int
	Locals int
}

// Method is a single method body
type Method struct {
	Access     string
	Name       string
	Descriptor string
	Limits     *Limits // nil: no .limit directives
	Code       []Instruction
}

// Class is a complete compilation unit
type Class struct {
	Name    string
	Super   string
	Methods []Method
}

// DefaultConstructor returns the <init> method that only calls the
// superclass constructor
func DefaultConstructor() Method {
	return Method{
		Access:     PublicAccess,
		Name:       "<init>",
		Descriptor: InitDescriptor,
		Code: []Instruction{
			Aload{Slot: 0},
			Invokespecial{Method: ObjectInit},
			Return{},
		},
	}
}

// NewMainClass builds a class with a default constructor and a static main
// method running code. A trailing return is appended to code.
func NewMainClass(name string, code []Instruction, limits Limits) *Class {
	body := make([]Instruction, 0, len(code)+1)
	body = append(body, code...)
	body = append(body, Return{})

	return &Class{
		Name:  name,
		Super: ObjectClass,
		Methods: []Method{
			DefaultConstructor(),
			{
				Access:     PublicStatic,
				Name:       "main",
				Descriptor: MainDescriptor,
				Limits:     &limits,
				Code:       body,
			},
		},
	}
}

// FindMethod returns the method with the given name, or nil
func (c *Class) FindMethod(name string) *Method {
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			return &c.Methods[i]
		}
	}
	return nil
}
