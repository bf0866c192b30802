package lvn

import "brilopt/internal/ir"

// Agent drives one basic block through a fresh Table. Construct one per
// block: its table and extensions are scoped to exactly one block's
// rewrite and must not be reused across blocks.
type Agent struct {
	table *Table
}

// NewAgent builds an agent over a fresh table with the given extensions.
func NewAgent(extensions []Extension) *Agent {
	return &Agent{table: NewTable(extensions)}
}

// Reform rewrites block's instructions in place, in two passes: every
// instruction is admitted to the table first (collecting the identifier
// each will reconstruct from, or passing ignored instructions through
// unchanged), and only once every admission — and every conflict-repair
// rename it may trigger — has settled does reconstruction run. See
// Table's doc comment for why this ordering matters.
func (a *Agent) Reform(block *ir.BasicBlock) {
	type encoding struct {
		passthrough ir.Instruction
		identifier  Identifier
		numbered    bool
	}

	plan := make([]encoding, len(block.Instructions))
	for i, instr := range block.Instructions {
		identifier, ok := a.table.AddEntry(instr)
		if !ok {
			plan[i] = encoding{passthrough: instr}
			continue
		}
		plan[i] = encoding{identifier: identifier, numbered: true}
	}

	rewritten := make([]ir.Instruction, len(plan))
	for i, step := range plan {
		if !step.numbered {
			rewritten[i] = step.passthrough
			continue
		}
		rewritten[i] = a.table.Reconstruct(step.identifier)
	}
	block.Instructions = rewritten
}

// Table exposes the agent's numbering table, chiefly so callers can dump
// it for debugging.
func (a *Agent) Table() *Table { return a.table }
