package llvm

import (
	"errors"
	"fmt"
)

// Errors reported by Machine
var (
	ErrUndefinedValue  = errors.New("use of undefined value")
	ErrRedefinedValue  = errors.New("value defined more than once")
	ErrNotPointer      = errors.New("operand is not an alloca")
	ErrLoadBeforeStore = errors.New("load from slot that was never stored")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrUnknownCallee   = errors.New("call to unknown function")
	ErrNoMainFunction  = errors.New("module has no main function")
	ErrUnsupported     = errors.New("unsupported instruction")
)

type slot struct {
	value  int32
	stored bool
}

// Machine is a reference interpreter for the IR subset. Registers are
// checked for single assignment.
type Machine struct {
	regs   map[Reg]int32
	slots  map[Reg]*slot
	Output []int32
}

// NewMachine creates an empty machine
func NewMachine() *Machine {
	return &Machine{
		regs:  make(map[Reg]int32),
		slots: make(map[Reg]*slot),
	}
}

// RunModule runs the main function of m and returns the printed values
func RunModule(m *Module) ([]int32, error) {
	main := m.FindFunction("main")
	if main == nil {
		return nil, ErrNoMainFunction
	}
	mach := NewMachine()
	if _, err := mach.Run(main); err != nil {
		return mach.Output, err
	}
	return mach.Output, nil
}

// Run executes a function body and returns the value of its ret
// instruction, or 0 if it falls off the end
func (m *Machine) Run(fn *Function) (int32, error) {
	for pc, inst := range fn.Code {
		if r, ok := inst.(Ret); ok {
			return m.value(r.Val)
		}
		if err := m.Step(inst); err != nil {
			return 0, fmt.Errorf("%s: %d: %s: %w", fn.Name, pc, FormatInstruction(inst), err)
		}
	}
	return 0, nil
}

// Step executes a single non-terminator instruction
func (m *Machine) Step(inst Instruction) error {
	switch i := inst.(type) {
	case Alloca:
		if err := m.define(i.Dst); err != nil {
			return err
		}
		m.slots[i.Dst] = &slot{}
		return nil
	case Load:
		s, ok := m.slots[i.Ptr]
		if !ok {
			return ErrNotPointer
		}
		if !s.stored {
			return ErrLoadBeforeStore
		}
		if err := m.define(i.Dst); err != nil {
			return err
		}
		m.regs[i.Dst] = s.value
		return nil
	case Store:
		s, ok := m.slots[i.Ptr]
		if !ok {
			return ErrNotPointer
		}
		v, err := m.value(i.Val)
		if err != nil {
			return err
		}
		s.value, s.stored = v, true
		return nil
	case BinOp:
		return m.binop(i)
	case Call:
		if i.Callee != PrintInt {
			return ErrUnknownCallee
		}
		v, err := m.value(i.Arg)
		if err != nil {
			return err
		}
		m.Output = append(m.Output, v)
		return nil
	}
	return ErrUnsupported
}

func (m *Machine) binop(i BinOp) error {
	a, err := m.value(i.Left)
	if err != nil {
		return err
	}
	b, err := m.value(i.Right)
	if err != nil {
		return err
	}

	var r int32
	switch i.Op {
	case Add:
		r = a + b
	case Sub:
		r = a - b
	case Mul:
		r = a * b
	case SDiv:
		if b == 0 {
			return ErrDivisionByZero
		}
		r = a / b
	}

	if err := m.define(i.Dst); err != nil {
		return err
	}
	m.regs[i.Dst] = r
	return nil
}

func (m *Machine) define(r Reg) error {
	_, isReg := m.regs[r]
	_, isSlot := m.slots[r]
	if isReg || isSlot {
		return fmt.Errorf("%s: %w", r, ErrRedefinedValue)
	}
	return nil
}

func (m *Machine) value(v Value) (int32, error) {
	switch val := v.(type) {
	case Const:
		return int32(val), nil
	case Reg:
		n, ok := m.regs[val]
		if !ok {
			return 0, fmt.Errorf("%s: %w", val, ErrUndefinedValue)
		}
		return n, nil
	}
	return 0, ErrUndefinedValue
}
