package lvn

import (
	"fmt"
	"io"

	"brilopt/internal/ir"
)

// Config names one LVN extension pipeline. Extensions is a constructor
// rather than a fixed slice so every block gets fresh extension instances
// (see IdentityPropagation's per-block cache).
type Config struct {
	Name       string
	Extensions func() []Extension
}

// Plain is commutativity plus identity propagation, with no constant
// folding.
var Plain = Config{
	Name: "plain",
	Extensions: func() []Extension {
		return []Extension{NewCommutativity(), NewIdentityPropagation()}
	},
}

// WithConstantPropagation adds constant folding and its matching
// reconstruction-time identity-to-constant rewrite on top of Plain.
var WithConstantPropagation = Config{
	Name: "constprop",
	Extensions: func() []Extension {
		return []Extension{
			NewCommutativity(),
			NewConstantPropagation(),
			NewIdentityPropagation(),
			NewIdentityToConstant(),
		}
	},
}

// Pass runs one Config's LVN agent over every basic block of every
// function in a module.
type Pass struct {
	cfg   Config
	debug io.Writer
}

// New builds a Pass from a Config.
func New(cfg Config) *Pass { return &Pass{cfg: cfg} }

// WithDebugTables dumps every block's numbering table to w once that
// block has been rewritten, for the life of the returned pass.
func (p *Pass) WithDebugTables(w io.Writer) *Pass {
	p.debug = w
	return p
}

func (p *Pass) Name() string { return "lvn-" + p.cfg.Name }

func (p *Pass) Optimize(m *ir.Module) error {
	for _, fn := range m.Functions {
		for i, block := range fn.Blocks {
			agent := NewAgent(p.cfg.Extensions())
			agent.Reform(block)
			if p.debug != nil {
				label := fmt.Sprintf("<entry %d>", i)
				if block.Label != nil {
					label = block.Label.Name
				}
				fmt.Fprintf(p.debug, "== %s.%s ==\n%s\n", fn.Name, label, agent.Table().DebugString())
			}
		}
	}
	return nil
}
