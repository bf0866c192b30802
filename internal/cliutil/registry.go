// Package cliutil holds the pieces cmd/brilopt shares with nothing else:
// the pass-name registry and the colored diagnostic reporter.
package cliutil

import (
	"sort"

	"brilopt/internal/lvn"
	"brilopt/internal/optpass"
	"brilopt/internal/tdce"
)

// registry maps a pass identifier accepted on the command line to the
// optpass.Pass it builds. Entries are built fresh on every lookup so a
// single process can run the same name against more than one module
// without passes leaking per-block state across runs.
var registry = map[string]func() optpass.Pass{
	"tdce": func() optpass.Pass { return tdce.New() },
	"lvn": func() optpass.Pass {
		return optpass.NewManager("lvn", lvn.New(lvn.Plain), tdce.New())
	},
	"lvn-only": func() optpass.Pass { return lvn.New(lvn.Plain) },
	"lvn-constprop": func() optpass.Pass {
		return optpass.NewManager("lvn-constprop", lvn.New(lvn.WithConstantPropagation), tdce.New())
	},
	"lvn-constprop-only": func() optpass.Pass { return lvn.New(lvn.WithConstantPropagation) },
}

// Lookup builds the named pass, or reports ok=false for an unregistered
// name.
func Lookup(name string) (optpass.Pass, bool) {
	build, ok := registry[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// Names returns every registered pass identifier, sorted for stable
// --list output.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
