package jasmin

import (
	"fmt"
	"io"
)

// Printer outputs classes in Jasmin assembler syntax
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new Jasmin printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintClass outputs a complete class
func (p *Printer) PrintClass(c *Class) {
	fmt.Fprintf(p.w, ".class public %s\n", c.Name)
	fmt.Fprintf(p.w, ".super %s\n", c.Super)
	for i := range c.Methods {
		p.PrintMethod(&c.Methods[i])
	}
}

// PrintMethod outputs a method with its limits and body
func (p *Printer) PrintMethod(m *Method) {
	fmt.Fprintf(p.w, ".method %s %s%s\n", m.Access, m.Name, m.Descriptor)
	if m.Limits != nil {
		fmt.Fprintf(p.w, ".limit stack %d\n", m.Limits.Stack)
		fmt.Fprintf(p.w, ".limit locals %d\n", m.Limits.Locals)
	}
	for _, inst := range m.Code {
		p.printInstruction(inst)
	}
	fmt.Fprintln(p.w, ".end method")
}

func (p *Printer) printInstruction(inst Instruction) {
	fmt.Fprintf(p.w, "\t%s\n", FormatInstruction(inst))
}

// FormatInstruction returns the Jasmin text of a single instruction
func FormatInstruction(inst Instruction) string {
	switch i := inst.(type) {
	case Iconst:
		if i.Value == -1 {
			return "iconst_m1"
		}
		return fmt.Sprintf("iconst_%d", i.Value)
	case Bipush:
		return fmt.Sprintf("bipush %d", i.Value)
	case Sipush:
		return fmt.Sprintf("sipush %d", i.Value)
	case Ldc:
		return fmt.Sprintf("ldc %d", i.Value)
	case Iload:
		return slotInstruction("iload", i.Slot)
	case Istore:
		return slotInstruction("istore", i.Slot)
	case Aload:
		return slotInstruction("aload", i.Slot)
	case Iadd:
		return "iadd"
	case Isub:
		return "isub"
	case Imul:
		return "imul"
	case Idiv:
		return "idiv"
	case Swap:
		return "swap"
	case Getstatic:
		return fmt.Sprintf("getstatic %s %s", i.Field, i.Descriptor)
	case Invokevirtual:
		return fmt.Sprintf("invokevirtual %s", i.Method)
	case Invokespecial:
		return fmt.Sprintf("invokespecial %s", i.Method)
	case Return:
		return "return"
	default:
		return fmt.Sprintf("; unknown instruction %T", inst)
	}
}

// Slots 0..3 have dedicated one-byte opcodes
func slotInstruction(op string, slot int) string {
	if slot >= 0 && slot <= 3 {
		return fmt.Sprintf("%s_%d", op, slot)
	}
	return fmt.Sprintf("%s %d", op, slot)
}
