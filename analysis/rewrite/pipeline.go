package rewrite

import (
	"log"
	"time"

	"github.com/crow-cp/crow/analysis/ast"
	"github.com/crow-cp/crow/analysis/normalise"
	"github.com/crow-cp/crow/utils"
)

// Config selects the optional passes of Run.
type Config struct {
	MaxPasses  int
	Unroll     bool
	DeleteVars bool
	CSE        bool
}

// DefaultConfig unrolls quantifiers and eliminates common subexpressions.
func DefaultConfig() Config {
	return Config{
		MaxPasses: DefaultMaxPasses,
		Unroll:    true,
		CSE:       true,
	}
}

// ConfigFromOpts reads the configuration from the command line options.
func ConfigFromOpts() Config {
	return Config{
		MaxPasses:  utils.Opts().MaxPasses(),
		Unroll:     utils.Opts().Unroll(),
		DeleteVars: utils.Opts().DeleteVars(),
		CSE:        utils.Opts().CSE(),
	}
}

type step struct {
	name    string
	enabled bool
	run     func() (bool, error)
}

// Run rewrites the model through the fixed pass order:
//
//	typecheck, unroll, simplify, deletevars, simplify, normalise,
//	simplify, cse, simplify, normalise
//
// Disabled passes are skipped. The first failing pass stops the pipeline.
func Run(m *ast.Model, cfg Config) (*Stats, error) {
	if cfg.MaxPasses <= 0 {
		cfg.MaxPasses = DefaultMaxPasses
	}
	stats := NewStats()

	typecheck := func() (bool, error) {
		if !ast.TypeCheck(m, m.Root) {
			return false, ErrTypeCheck
		}
		return false, nil
	}
	simplify := func() (bool, error) { return Simplify(m, cfg.MaxPasses, stats) }
	norm := func() (bool, error) { return normalise.Normalise(m, m.Root), nil }

	steps := []step{
		{"typecheck", true, typecheck},
		{"unroll", cfg.Unroll, func() (bool, error) { return Unroll(m, stats) }},
		{"simplify", true, simplify},
		{"deletevars", cfg.DeleteVars, func() (bool, error) { return DeleteVars(m, stats), nil }},
		{"simplify", true, simplify},
		{"normalise", true, norm},
		{"simplify", true, simplify},
		{"cse", cfg.CSE, func() (bool, error) { return CSE(m, stats), nil }},
		{"simplify", true, simplify},
		{"normalise", true, norm},
	}

	for _, s := range steps {
		if !s.enabled {
			continue
		}
		start := time.Now()
		changed, err := s.run()
		phase := Phase{
			Name:     s.name,
			Duration: time.Since(start),
			Changed:  changed,
			Size:     ast.Size(m.Root),
		}
		stats.Phases = append(stats.Phases, phase)
		utils.Opts().OnVerbose(func() {
			log.Printf("%s: changed=%t size=%d (%s)", utils.Colorize.Pass(s.name), changed, phase.Size, phase.Duration)
		})
		if err != nil {
			return stats, err
		}
	}
	return stats, nil
}
