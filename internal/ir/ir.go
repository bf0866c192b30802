// Package ir defines the Bril instruction model that every optimization
// pass and the JSON codec operate on.
package ir

// Param is one function argument: a name paired with its declared type.
type Param struct {
	Name string
	Type Type
}

// Module is a whole Bril program: an ordered set of functions.
type Module struct {
	Functions []*Function
}

// Function is one Bril function: its name, its formal arguments, and its
// body split into basic blocks.
type Function struct {
	Name   string
	Args   []Param
	Blocks []*BasicBlock
}

// BasicBlock is a maximal straight-line run of instructions: an optional
// leading Label and a body that ends, if at all, in a terminator (Jmp or
// Br). Instructions may contain nil tombstones while a pass like TDCE is
// mid-rewrite; callers that don't perform that rewrite should not see any.
type BasicBlock struct {
	Label        *Label
	Instructions []Instruction
}

func (b *BasicBlock) isEmpty() bool {
	return b.Label == nil && len(b.Instructions) == 0
}
