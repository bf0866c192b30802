package lvn

import (
	"fmt"
	"strings"

	"brilopt/internal/cerr"
	"brilopt/internal/ir"
)

// ignoreOperations lists operators the numbering table never admits:
// jumps and branches carry no value to hash-cons.
var ignoreOperations = map[string]bool{"jmp": true, "br": true}

// Entry is one row of the numbering table: its dense number, its
// hash-consed Value, and the canonical user-visible name later
// instructions should route through.
type Entry struct {
	Number   Identifier
	Value    Value
	Variable Identifier
}

// Table is a per-block, hash-consed value numbering table. It is born
// empty at the start of a block, only ever grows, and is discarded once
// the block's rewrite is done.
//
// The local agent admits every instruction in a block (AddEntry) before
// reconstructing any of them (Reconstruct): conflict-repair renames an
// entry's canonical Variable in place, and since nothing is materialized
// into an actual instruction until the reconstruction pass runs, every
// reconstructed reference — both the redefinition itself and any earlier
// read that resolves through it — sees the final, post-rename name. No
// already-built instruction ever needs to be patched.
type Table struct {
	entries      []*Entry
	byValue      map[string]*Entry
	byIdentifier map[Identifier]*Entry
	extensions   []Extension
}

// NewTable builds an empty table driven by the given extension pipeline.
func NewTable(extensions []Extension) *Table {
	return &Table{
		byValue:      map[string]*Entry{},
		byIdentifier: map[Identifier]*Entry{},
		extensions:   extensions,
	}
}

// AddEntry admits instr into the table, applying the PreBuild extensions
// and any conflict-repair renaming a reused destination name requires. It
// returns the identifier reconstruction should later be called with, or
// ok=false if instr is not subject to numbering (jmp/br).
func (t *Table) AddEntry(instr ir.Instruction) (identifier Identifier, ok bool) {
	if ignoreOperations[instr.Operator()] {
		return Identifier{}, false
	}

	destName, hasDest := instr.Dest()
	if !hasDest {
		destName = t.pseudoName()
	}
	identifier = Name(destName)

	if prev, conflict := t.byIdentifier[identifier]; conflict {
		t.repairConflict(identifier, prev)
	}

	value := t.encode(instr)
	for _, ext := range t.extensions {
		if ext.Phase() == PreBuild {
			value = ext.Update(value, t)
		}
	}

	// A Print never defines a reusable value: a second "print x" must not
	// coalesce into the first's entry, since that entry's canonical
	// variable is bookkeeping-only and has no backing instruction a later
	// "id" copy could legally reference.
	if instr.Operator() != "print" {
		if existing, found := t.byValue[value.Key()]; found {
			t.byIdentifier[identifier] = existing
			return identifier, true
		}
	}

	number := Number(len(t.entries))
	entry := &Entry{Number: number, Value: value, Variable: identifier}
	t.entries = append(t.entries, entry)
	t.byValue[value.Key()] = entry
	t.byIdentifier[number] = entry
	t.byIdentifier[identifier] = entry
	return number, true
}

// repairConflict renames prev's canonical variable out of the way of a
// new definition that reuses its name. Both the old numeric binding and
// the freshly renamed one remain reachable in byIdentifier, so any not-
// yet-reconstructed reference to prev resolves to the renamed variable.
func (t *Table) repairConflict(identifier Identifier, prev *Entry) {
	renamed := Name(t.pseudoNameFor(prev.Number))
	delete(t.byIdentifier, identifier)
	prev.Variable = renamed
	t.byIdentifier[renamed] = prev
}

func (t *Table) pseudoName() string {
	return fmt.Sprintf("lvn.%d", len(t.entries))
}

func (t *Table) pseudoNameFor(number Identifier) string {
	return fmt.Sprintf("lvn.%d", number.number)
}

// encode builds the Value a freshly-admitted instruction hash-consed
// against, resolving named operands to the numeric identifier of the
// entry that currently defines them.
func (t *Table) encode(instr ir.Instruction) Value {
	if instr.Operator() == "const" {
		literal := instr.(*ir.Const).Literal
		return NewValue("const", []Use{Primitive{Literal: literal}}, instr.DestType())
	}

	args := instr.Args()
	operands := make([]Use, len(args))
	for i, arg := range args {
		id := Name(arg)
		if entry, found := t.byIdentifier[id]; found {
			id = entry.Number
		}
		operands[i] = id
	}
	return NewValue(instr.Operator(), operands, instr.DestType())
}

// GetEntryByIdentifier looks up an entry by either its number or name.
func (t *Table) GetEntryByIdentifier(id Identifier) (*Entry, bool) {
	e, ok := t.byIdentifier[id]
	return e, ok
}

// GetEntryByValue looks up an entry by its hash-consed Value.
func (t *Table) GetEntryByValue(v Value) (*Entry, bool) {
	e, ok := t.byValue[v.Key()]
	return e, ok
}

// Reconstruct materializes the instruction that should occupy the
// position originally held by the instruction that produced identifier,
// applying the Reconstruction-phase extensions first.
func (t *Table) Reconstruct(identifier Identifier) ir.Instruction {
	entry, ok := t.byIdentifier[identifier]
	if !ok {
		cerr.Invariant("lvn: reconstruct of dangling identifier %s", identifier)
	}

	value := entry.Value
	for _, ext := range t.extensions {
		if ext.Phase() == Reconstruction {
			value = ext.Update(value, t)
		}
	}

	uses := make([]any, len(value.Operands))
	for i, operand := range value.Operands {
		switch op := operand.(type) {
		case Primitive:
			uses[i] = op.Literal
		case Identifier:
			if !op.IsNumber() {
				uses[i] = op.String()
				continue
			}
			used, found := t.byIdentifier[op]
			if !found {
				cerr.Invariant("lvn: reconstruct operand refers to dangling entry %s", op)
			}
			uses[i] = used.Variable.String()
		}
	}

	switch {
	case identifier.IsNumber():
		return ir.Build(value.Op, entry.Variable.String(), value.Type, uses)
	case value.Op == "id" || value.Op == "const":
		return ir.Build(value.Op, identifier.String(), value.Type, uses)
	default:
		return ir.Build("id", identifier.String(), value.Type, []any{entry.Variable.String()})
	}
}

// DebugString renders the table as a human-readable row listing, for use
// behind a debug flag.
func (t *Table) DebugString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%5s | %-30s | %-15s\n", "#", "value", "variable")
	b.WriteString(strings.Repeat("-", 56) + "\n")
	for i, e := range t.entries {
		fmt.Fprintf(&b, "%5d | %-30s | %-15s\n", i, e.Value.String(), e.Variable.String())
	}
	return b.String()
}
