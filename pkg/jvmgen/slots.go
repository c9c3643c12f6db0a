// Local variable slot allocation for JVM code generation.
// Slot 0 holds the String[] argument of main, so variables start at 1.

package jvmgen

// SlotAllocator assigns local variable slots to Instant variables in the
// order the variables are first assigned
type SlotAllocator struct {
	nextSlot  int
	varToSlot map[string]int
	order     []string
}

// NewSlotAllocator creates a new slot allocator.
func NewSlotAllocator() *SlotAllocator {
	return &SlotAllocator{
		nextSlot:  1,
		varToSlot: make(map[string]int),
	}
}

// MapVar maps a variable name to a slot.
// If already mapped, returns the existing slot.
func (a *SlotAllocator) MapVar(name string) int {
	if s, ok := a.varToSlot[name]; ok {
		return s
	}
	s := a.nextSlot
	a.nextSlot++
	a.varToSlot[name] = s
	a.order = append(a.order, name)
	return s
}

// LookupVar returns the slot for a variable
func (a *SlotAllocator) LookupVar(name string) (int, bool) {
	s, ok := a.varToSlot[name]
	return s, ok
}

// Vars returns the mapped variables in slot order
func (a *SlotAllocator) Vars() []string {
	return append([]string(nil), a.order...)
}

// Count returns the number of mapped variables
func (a *SlotAllocator) Count() int {
	return len(a.order)
}

// LocalsLimit returns the locals size to declare, counting slot 0
func (a *SlotAllocator) LocalsLimit() int {
	return a.Count() + 1
}
