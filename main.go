package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/crow-cp/crow/analysis/ast"
	"github.com/crow-cp/crow/analysis/rewrite"
	"github.com/crow-cp/crow/analysis/symtab"
	"github.com/crow-cp/crow/utils"
)

var (
	opts = utils.Opts()
	task = opts.Task()
)

const printWidth = 100

func main() {
	utils.ParseArgs()
	path := utils.MakePath()

	loaded, diag, err := load(path)
	if err != nil {
		log.Println("Failed to load model", path)
		log.Println(err)
		os.Exit(1)
	}
	m := loaded.Model

	switch {
	case task.IsParse():
		fmt.Println(highlight(ast.Pretty(m.Constraint(), printWidth)))
	case task.IsTypecheck():
		if !ast.TypeCheck(m, m.Root) {
			log.Printf("%s: %d type errors", path, len(diag.Errors))
			os.Exit(1)
		}
		log.Println(utils.Colorize.Pass("Model is well-typed"))
	case task.IsSimplify(), task.IsToDot():
		p := pipeline{loaded: loaded, diag: diag}
		stats, err := p.run()
		if err != nil {
			log.Println(utils.Colorize.Error("Rewriting failed:"), err)
			if errors.Is(err, rewrite.ErrTypeCheck) {
				os.Exit(1)
			}
			os.Exit(2)
		}

		if task.IsToDot() {
			out := opts.DotPath()
			if out == "" {
				out = "model"
			}
			out += "." + opts.OutputFormat()
			if err := ast.ToDot(m.Root, path).Export(out); err != nil {
				log.Fatalln("Failed to render", out, err)
			}
			fmt.Println(out)
			return
		}

		fmt.Println(highlight(ast.Pretty(m.Constraint(), printWidth)))
		if b, ok := m.Constraint().(*ast.BoolConst); ok && !b.Value {
			log.Println(utils.Colorize.Warning("Model is unsatisfiable by inspection"))
		}
		p.report(stats)
		if opts.SatCheck() {
			p.satCheck()
		}
	}
}

func load(path string) (*symtab.Loaded, *symtab.Log, error) {
	defer func(start time.Time) {
		opts.OnVerbose(func() { utils.TimeTrack(start, "Loading "+path) })
	}(time.Now())

	file, err := symtab.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	diag := symtab.NewLog(os.Stderr)
	loaded, err := file.Build(diag)
	if err != nil {
		return nil, nil, err
	}
	if opts.Order().Alphabetic() {
		loaded.Model.Order = ast.Alphabetic
	}
	return loaded, diag, nil
}
