package utils

import (
	"flag"
	"fmt"
	"log"
	"strings"
)

type options struct {
	maxPasses    uint
	outputFormat string
	order        string
	task         string
	configPath   string
	dotPath      string
	metrics      bool
	noColorize   bool
	verbose      bool
	cse          bool
	deleteVars   bool
	noUnroll     bool
	satCheck     bool
}

const (
	_SIMPLIFY = iota
	_TYPECHECK
	_PARSE
	_TO_DOT
)

const (
	_ORDER_HASH = iota
	_ORDER_ALPHA
)

func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%v", len(is)), is...)
		}
	}
	return col
}

var task = []struct{ flag, explanation string }{{
	"simplify",
	"Typecheck the model and run the full rewriting pipeline",
}, {
	"typecheck",
	"Only typecheck the model and report diagnostics",
}, {
	"parse",
	"Read the model and print it back without rewriting",
}, {
	"to-dot",
	"Simplify the model and render the resulting expression tree with Graphviz",
}}

var orders = []struct{ flag, explanation string }{{
	"hash",
	"Order commutative children by structural hash (fast)",
}, {
	"alpha",
	"Order commutative children by their textual rendering (stable across hash changes)",
}}

var opts = &options{}

type optInterface struct{}

type taskInterface struct{}

type orderInterface struct{}

func Opts() optInterface {
	return optInterface{}
}

func (optInterface) NoColorize() bool {
	return opts.noColorize
}
func (optInterface) MaxPasses() int {
	return int(opts.maxPasses)
}
func (optInterface) OutputFormat() string {
	return opts.outputFormat
}
func (optInterface) ConfigPath() string {
	return opts.configPath
}
func (optInterface) DotPath() string {
	return opts.dotPath
}
func (optInterface) Metrics() bool {
	return opts.metrics
}
func (optInterface) Verbose() bool {
	return opts.verbose
}
func (optInterface) CSE() bool {
	return opts.cse
}
func (optInterface) DeleteVars() bool {
	return opts.deleteVars
}
func (optInterface) Unroll() bool {
	return !opts.noUnroll
}
func (optInterface) SatCheck() bool {
	return opts.satCheck
}
func (optInterface) Order() orderInterface {
	return orderInterface{}
}
func (orderInterface) Hash() bool {
	return opts.order == orders[_ORDER_HASH].flag
}
func (orderInterface) Alphabetic() bool {
	return opts.order == orders[_ORDER_ALPHA].flag
}
func (optInterface) Task() taskInterface {
	return taskInterface{}
}
func (taskInterface) IsSimplify() bool {
	return opts.task == task[_SIMPLIFY].flag
}
func (taskInterface) IsTypecheck() bool {
	return opts.task == task[_TYPECHECK].flag
}
func (taskInterface) IsParse() bool {
	return opts.task == task[_PARSE].flag
}
func (taskInterface) IsToDot() bool {
	return opts.task == task[_TO_DOT].flag
}

func init() {
	taskFlag := "\n"
	for _, task := range task {
		taskFlag += task.flag + " -- " + task.explanation + "\n"
	}
	taskFlag += "\n"
	orderFlag := "\n"
	for _, order := range orders {
		orderFlag += order.flag + " -- " + order.explanation + "\n"
	}
	orderFlag += "\n"

	flag.StringVar(&(opts.task), "task", task[_SIMPLIFY].flag, "Set the task to do during execution. Options:"+taskFlag)
	flag.StringVar(&(opts.order), "order", orders[_ORDER_HASH].flag, "Canonical order used when normalising commutative expressions. Options:"+orderFlag)
	flag.StringVar(&(opts.outputFormat), "format", "svg", "output file format for -task to-dot [svg | png | jpg | ...]")
	flag.StringVar(&(opts.dotPath), "dot-out", "", "output path (without extension) for -task to-dot")
	flag.StringVar(&(opts.configPath), "config", "", "YAML file with pipeline options; command line flags take precedence")
	flag.UintVar(&(opts.maxPasses), "max-passes", 10000, "abort simplification after this many full-tree passes without reaching a fixpoint")
	flag.BoolVar(&(opts.metrics), "metrics", false, "Print rewriting statistics when done")
	flag.BoolVar(&(opts.noColorize), "no-colorize", false, "Disable pretty printer colorization")
	flag.BoolVar(&(opts.verbose), "verbose", false, "enable verbose output")
	flag.BoolVar(&(opts.cse), "cse", true, "extract common subexpressions into auxiliary variables")
	flag.BoolVar(&(opts.deleteVars), "delete-vars", false, "unify variables equated at the top level of the model")
	flag.BoolVar(&(opts.noUnroll), "no-unroll", false, "keep quantifiers instead of unrolling them")
	flag.BoolVar(&(opts.satCheck), "sat-check", false, "decide purely propositional models with the SAT back-end")

	// Set up logging
	log.SetFlags(log.Ltime | log.Lshortfile)
}

func ParseArgs() {
	// Calling flag.Parse in init messes up unit tests.
	flag.Parse()

	if opts.configPath != "" {
		explicit := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		if err := loadConfig(opts.configPath, explicit); err != nil {
			log.Fatalf("Failed to load configuration %s: %v", opts.configPath, err)
		}
	}

	checkChoice("task", opts.task, task)
	checkChoice("order", opts.order, orders)

	if Opts().Task().IsToDot() {
		opts.noColorize = true
	}
}

func checkChoice(name, value string, choices []struct{ flag, explanation string }) {
	for _, c := range choices {
		if c.flag == value {
			return
		}
	}
	log.Fatalf("Value \"%s\" is not valid for -%s", value, name)
}

func (optInterface) OnVerbose(do func()) {
	if Opts().Verbose() {
		do()
	}
}
