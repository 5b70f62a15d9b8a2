package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/crow-cp/crow/analysis/ast"
	"github.com/crow-cp/crow/analysis/rewrite"
	"github.com/crow-cp/crow/analysis/satcheck"
	"github.com/crow-cp/crow/analysis/symtab"
	"github.com/crow-cp/crow/utils"
)

// pipeline is a wrapper around the rewriting pipeline for one model.
type pipeline struct {
	loaded *symtab.Loaded
	diag   *symtab.Log
	// before is the constraint as it was read, kept for the SAT check.
	before ast.Node
}

// run rewrites the model with the configuration given on the command line.
func (p *pipeline) run() (*rewrite.Stats, error) {
	m := p.loaded.Model
	if opts.SatCheck() {
		p.before = m.Constraint().DeepCopy()
	}

	cfg := rewrite.ConfigFromOpts()
	utils.VerbosePrint("Rewriting with %+v\n", cfg)
	return rewrite.Run(m, cfg)
}

// report prints the auxiliary variables and aliases introduced by
// rewriting, followed by statistics if requested.
func (p *pipeline) report(stats *rewrite.Stats) {
	syms := p.loaded.Symbols
	for _, name := range syms.Names() {
		if d, _ := syms.Lookup(name); d.Aux {
			fmt.Printf("%s %s %s\n", utils.Colorize.Kind("aux"), utils.Colorize.Ident(name), d.Domain)
		}
	}
	for _, alias := range syms.Aliases() {
		fmt.Printf("%s %s -> %s\n", utils.Colorize.Kind("alias"), utils.Colorize.Ident(alias[0]), utils.Colorize.Ident(alias[1]))
	}

	if opts.Metrics() {
		printMetrics(stats, p.diag)
	}
}

// satCheck compares the satisfiability of the model before and after
// rewriting. Models with integer variables are skipped.
func (p *pipeline) satCheck() {
	ok, err := satcheck.Equisatisfiable(p.before, p.loaded.Model.Constraint())
	switch {
	case errors.Is(err, satcheck.ErrNotPropositional):
		log.Println(utils.Colorize.Warning("SAT check skipped:"), err)
	case err != nil:
		log.Fatalln("SAT check failed:", err)
	case !ok:
		log.Fatalln(utils.Colorize.Error("Rewriting changed satisfiability of the model"))
	default:
		log.Println(utils.Colorize.Pass("SAT check passed"))
	}
}
