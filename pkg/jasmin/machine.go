package jasmin

import (
	"errors"
	"fmt"
)

// Errors reported by Machine
var (
	ErrStackUnderflow     = errors.New("operand stack underflow")
	ErrStackLimitExceeded = errors.New("operand stack exceeds declared limit")
	ErrLocalOutOfRange    = errors.New("local variable index exceeds declared limit")
	ErrUninitializedLocal = errors.New("read of uninitialized local variable")
	ErrTypeMismatch       = errors.New("operand type mismatch")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrUnsupported        = errors.New("unsupported instruction")
	ErrNoMainMethod       = errors.New("class has no main method")
)

// value is an operand stack entry: an int, or a reference to a static field
type value struct {
	n   int32
	ref string
}

func (v value) isRef() bool { return v.ref != "" }

// Machine is a reference interpreter for the instructions the compiler
// emits. It records printed integers and the highest operand stack it saw.
type Machine struct {
	stack     []value
	locals    map[int]int32
	limits    *Limits
	Output    []int32
	MaxHeight int
}

// NewMachine creates an empty machine
func NewMachine() *Machine {
	return &Machine{locals: make(map[int]int32)}
}

// RunClass runs the static main method of c and returns the printed values
func RunClass(c *Class) ([]int32, error) {
	main := c.FindMethod("main")
	if main == nil {
		return nil, ErrNoMainMethod
	}
	m := NewMachine()
	if err := m.Run(main); err != nil {
		return m.Output, err
	}
	return m.Output, nil
}

// Run executes a method body until its return instruction or the end of
// code. Declared limits, when present, are enforced.
func (m *Machine) Run(method *Method) error {
	m.limits = method.Limits
	for pc, inst := range method.Code {
		if _, ok := inst.(Return); ok {
			return nil
		}
		if err := m.Step(inst); err != nil {
			return fmt.Errorf("%s: %d: %s: %w", method.Name, pc, FormatInstruction(inst), err)
		}
	}
	return nil
}

// Height returns the current operand stack height
func (m *Machine) Height() int {
	return len(m.stack)
}

// Step executes a single instruction
func (m *Machine) Step(inst Instruction) error {
	switch i := inst.(type) {
	case Iconst:
		return m.push(value{n: i.Value})
	case Bipush:
		return m.push(value{n: i.Value})
	case Sipush:
		return m.push(value{n: i.Value})
	case Ldc:
		return m.push(value{n: i.Value})
	case Iload:
		if err := m.checkLocal(i.Slot); err != nil {
			return err
		}
		n, ok := m.locals[i.Slot]
		if !ok {
			return ErrUninitializedLocal
		}
		return m.push(value{n: n})
	case Istore:
		if err := m.checkLocal(i.Slot); err != nil {
			return err
		}
		n, err := m.popInt()
		if err != nil {
			return err
		}
		m.locals[i.Slot] = n
		return nil
	case Iadd, Isub, Imul, Idiv:
		return m.arith(inst)
	case Swap:
		if len(m.stack) < 2 {
			return ErrStackUnderflow
		}
		top := len(m.stack) - 1
		m.stack[top], m.stack[top-1] = m.stack[top-1], m.stack[top]
		return nil
	case Getstatic:
		if i.Field != SystemOut {
			return ErrUnsupported
		}
		return m.push(value{ref: i.Field})
	case Invokevirtual:
		if i.Method != PrintlnInt {
			return ErrUnsupported
		}
		n, err := m.popInt()
		if err != nil {
			return err
		}
		sink, err := m.pop()
		if err != nil {
			return err
		}
		if sink.ref != SystemOut {
			return ErrTypeMismatch
		}
		m.Output = append(m.Output, n)
		return nil
	}
	return ErrUnsupported
}

func (m *Machine) arith(inst Instruction) error {
	b, err := m.popInt()
	if err != nil {
		return err
	}
	a, err := m.popInt()
	if err != nil {
		return err
	}

	var r int32
	switch inst.(type) {
	case Iadd:
		r = a + b
	case Isub:
		r = a - b
	case Imul:
		r = a * b
	case Idiv:
		if b == 0 {
			return ErrDivisionByZero
		}
		r = a / b
	}
	return m.push(value{n: r})
}

func (m *Machine) checkLocal(slot int) error {
	if slot < 0 || (m.limits != nil && slot >= m.limits.Locals) {
		return ErrLocalOutOfRange
	}
	return nil
}

func (m *Machine) push(v value) error {
	m.stack = append(m.stack, v)
	if len(m.stack) > m.MaxHeight {
		m.MaxHeight = len(m.stack)
	}
	if m.limits != nil && len(m.stack) > m.limits.Stack {
		return ErrStackLimitExceeded
	}
	return nil
}

func (m *Machine) pop() (value, error) {
	if len(m.stack) == 0 {
		return value{}, ErrStackUnderflow
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *Machine) popInt() (int32, error) {
	v, err := m.pop()
	if err != nil {
		return 0, err
	}
	if v.isRef() {
		return 0, ErrTypeMismatch
	}
	return v.n, nil
}
