// Package tdce implements trivial dead code elimination: a fixed-point
// loop over two elimination criteria, followed by a tombstone sweep.
package tdce

import "brilopt/internal/ir"

// Pass runs unused-definition elimination and dead-store elimination to a
// fixed point, per function, then sweeps the tombstones either criterion
// leaves behind out of every block.
type Pass struct{}

func New() *Pass { return &Pass{} }

func (*Pass) Name() string { return "tdce" }

func (p *Pass) Optimize(m *ir.Module) error {
	for _, fn := range m.Functions {
		for {
			unusedChanged := eliminateUnusedDefinitions(fn)
			storeChanged := eliminateDeadStores(fn)
			if !unusedChanged && !storeChanged {
				break
			}
		}
	}
	sweep(m)
	return nil
}

// eliminateUnusedDefinitions drops any instruction whose destination is
// never read anywhere in the function. Print, Jmp, Br, and Label have no
// destination and are never candidates.
func eliminateUnusedDefinitions(fn *ir.Function) bool {
	used := map[string]bool{}
	for _, block := range fn.Blocks {
		for _, instr := range block.Instructions {
			if instr == nil {
				continue
			}
			for _, arg := range instr.Args() {
				used[arg] = true
			}
		}
	}

	changed := false
	for _, block := range fn.Blocks {
		for i, instr := range block.Instructions {
			if instr == nil {
				continue
			}
			dest, ok := instr.Dest()
			if ok && !used[dest] {
				block.Instructions[i] = nil
				changed = true
			}
		}
	}
	return changed
}

// eliminateDeadStores drops a definition that is itself overwritten,
// within the same block, before ever being read. It tracks, per name, the
// index of the instruction that last defined it; a read clears that
// tracking (the store was live after all), and a redefinition tombstones
// whatever the tracking still points at.
func eliminateDeadStores(fn *ir.Function) bool {
	changed := false
	for _, block := range fn.Blocks {
		lastDefined := map[string]int{}
		cleared := map[string]bool{}
		for i, instr := range block.Instructions {
			if instr == nil {
				continue
			}
			for _, arg := range instr.Args() {
				if _, tracked := lastDefined[arg]; tracked {
					cleared[arg] = true
				}
			}

			dest, ok := instr.Dest()
			if !ok {
				continue
			}
			if idx, tracked := lastDefined[dest]; tracked && !cleared[dest] {
				block.Instructions[idx] = nil
				changed = true
			}
			lastDefined[dest] = i
			cleared[dest] = false
		}
	}
	return changed
}

func sweep(m *ir.Module) {
	for _, fn := range m.Functions {
		for _, block := range fn.Blocks {
			compact := block.Instructions[:0]
			for _, instr := range block.Instructions {
				if instr != nil {
					compact = append(compact, instr)
				}
			}
			block.Instructions = compact
		}
	}
}
