// Register naming for LLVM generation.
// Temporaries are %r1, %r2, ...; variable x lives in %loc.x and its k-th
// read is loaded into %x.k. Identifiers cannot contain dots or start with a
// digit, so the three families never collide.

package llvmgen

import (
	"fmt"

	"github.com/raymyers/instc/pkg/llvm"
)

// RegAllocator hands out virtual register names and tracks which variables
// have a stack slot
type RegAllocator struct {
	nextReg   int            // next temporary number
	loads     map[string]int // variable -> number of loads so far
	allocated map[string]bool
	order     []string
}

// NewRegAllocator creates a new register allocator.
func NewRegAllocator() *RegAllocator {
	return &RegAllocator{
		nextReg:   1,
		loads:     make(map[string]int),
		allocated: make(map[string]bool),
	}
}

// Fresh allocates a fresh temporary register.
func (a *RegAllocator) Fresh() llvm.Reg {
	r := llvm.Reg(fmt.Sprintf("r%d", a.nextReg))
	a.nextReg++
	return r
}

// FreshLoad allocates the register for the next read of a variable
func (a *RegAllocator) FreshLoad(name string) llvm.Reg {
	a.loads[name]++
	return llvm.Reg(fmt.Sprintf("%s.%d", name, a.loads[name]))
}

// Slot returns the stack slot register of a variable
func (a *RegAllocator) Slot(name string) llvm.Reg {
	return llvm.Reg("loc." + name)
}

// MapVar marks a variable as having a stack slot. It reports whether the
// slot is new, in which case the caller must emit its alloca.
func (a *RegAllocator) MapVar(name string) (llvm.Reg, bool) {
	slot := a.Slot(name)
	if a.allocated[name] {
		return slot, false
	}
	a.allocated[name] = true
	a.order = append(a.order, name)
	return slot, true
}

// Vars returns the variables with a slot, in allocation order
func (a *RegAllocator) Vars() []string {
	return append([]string(nil), a.order...)
}

// NextRegID returns the number the next temporary will get.
func (a *RegAllocator) NextRegID() int {
	return a.nextReg
}
