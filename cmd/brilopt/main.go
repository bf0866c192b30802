// Command brilopt runs a named sequence of optimization passes over a
// Bril program and writes the result back out as Bril JSON.
package main

import (
	"errors"
	"os"

	"github.com/urfave/cli/v2"

	"brilopt/internal/bril2json"
	"brilopt/internal/cerr"
	"brilopt/internal/cliutil"
	"brilopt/internal/ir"
	"brilopt/internal/lvn"
	"brilopt/internal/optpass"
)

func main() {
	app := &cli.App{
		Name:  "brilopt",
		Usage: "run optimization passes over a Bril program",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "input program: .json, Bril surface syntax, or - for stdin JSON"},
			&cli.StringSliceFlag{Name: "passes", Aliases: []string{"p"}, Usage: "pass name to run; repeat -p to build a sequence"},
			&cli.BoolFlag{Name: "list", Aliases: []string{"l"}, Usage: "list registered pass names and exit"},
			&cli.BoolFlag{Name: "dump-tables", Aliases: []string{"v"}, Usage: "dump each block's LVN numbering table to stderr as it runs"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		cliutil.ReportError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func run(c *cli.Context) error {
	if c.Bool("list") {
		cliutil.ListPasses(os.Stdout)
		return nil
	}

	source := c.String("source")
	if source == "" {
		return cerr.New(cerr.InputNotFound, "missing required --source")
	}

	module, err := loadModule(source)
	if err != nil {
		return err
	}

	names := c.StringSlice("passes")
	manager := optpass.NewManager("cli")
	for _, name := range names {
		pass, ok := cliutil.Lookup(name)
		if !ok {
			return cerr.New(cerr.UnknownPass, "no pass named %q (see --list)", name)
		}
		// Only takes effect for the un-composed "lvn-only"/"lvn-constprop-only"
		// names: the "lvn"/"lvn-constprop" composites wrap the lvn.Pass inside
		// an optpass.Manager, which has no table to dump.
		if c.Bool("dump-tables") {
			if lvnPass, ok := pass.(*lvn.Pass); ok {
				pass = lvnPass.WithDebugTables(os.Stderr)
			}
		}
		manager.AddPass(pass)
	}

	if err := runPasses(manager, module); err != nil {
		return err
	}

	return ir.EncodeProgram(os.Stdout, module)
}

// runPasses recovers a cerr.Invariant panic raised deep in a pass back
// into an ordinary error, so main can report it and exit distinctly from
// a user-facing failure.
func runPasses(manager *optpass.Manager, module *ir.Module) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*cerr.Error); ok {
				err = ce
				return
			}
			panic(r)
		}
	}()
	return manager.Optimize(module)
}

func loadModule(source string) (*ir.Module, error) {
	if source == "-" {
		return ir.DecodeProgram(os.Stdin)
	}
	r, err := bril2json.ToJSON(source)
	if err != nil {
		return nil, err
	}
	return ir.DecodeProgram(r)
}

// exitCode maps a classified error to the process exit status: 2 for an
// internal invariant violation (a bug in this program), 1 for every
// other user-facing failure.
func exitCode(err error) int {
	var ce *cerr.Error
	if errors.As(err, &ce) && ce.Kind == cerr.IRInvariantViolation {
		return 2
	}
	return 1
}
