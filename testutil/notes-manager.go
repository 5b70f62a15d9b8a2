package testutil

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/crow-cp/crow/analysis/ast"
	"github.com/crow-cp/crow/analysis/rewrite"
)

type NotesManager struct {
	anns  map[*Note]Annotation
	notes []*Note
}

func MakeNotesManager(t *testing.T, src string) *NotesManager {
	t.Helper()
	notes, err := ExtractNotes(src)
	if err != nil {
		t.Fatal(err)
	}
	n := &NotesManager{anns: make(map[*Note]Annotation), notes: notes}

	for _, note := range n.notes {
		ann, err := n.makeAnnotation(note)
		if err != nil {
			t.Fatal(err)
		}
		n.anns[note] = ann
	}
	return n
}

func (n *NotesManager) makeAnnotation(note *Note) (Annotation, error) {
	basic := basicAnnotation{note: note, mgr: n}
	arity := func(k int) error {
		if len(note.Args) != k {
			return fmt.Errorf("line %d: %s expects %d arguments, found %d", note.Line, note.Name, k, len(note.Args))
		}
		return nil
	}

	switch note.Name {
	case id_RESULT:
		if err := arity(1); err != nil {
			return nil, err
		}
		return AnnResult{basic}, nil
	case id_WARNS:
		if err := arity(1); err != nil {
			return nil, err
		}
		count, err := strconv.Atoi(note.Args[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", note.Line, err)
		}
		return AnnWarns{basic, count}, nil
	case id_FAILS:
		if err := arity(1); err != nil {
			return nil, err
		}
		return AnnFails{basic}, nil
	case id_OPTION:
		return AnnOption{basic}, nil
	case id_ORDER:
		if err := arity(1); err != nil {
			return nil, err
		}
		return AnnOrder{basic}, nil
	case id_SATISFIES:
		if err := arity(1); err != nil {
			return nil, err
		}
		sat, err := strconv.ParseBool(note.Args[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", note.Line, err)
		}
		return AnnSatisfies{basic, sat}, nil
	}
	return nil, fmt.Errorf("line %d: unknown annotation %q", note.Line, note.Name)
}

func (n *NotesManager) AnnotationOf(note *Note) Annotation {
	return n.anns[note]
}

// Annotations returns the annotations in source order.
func (n *NotesManager) Annotations() annList {
	res := make(annList, len(n.notes))
	for i, note := range n.notes {
		res[i] = n.anns[note]
	}
	return res
}

func (n *NotesManager) ForEach(do func(Annotation)) {
	n.Annotations().ForEach(do)
}

// Result returns the expected rendering of the simplified constraint.
func (n *NotesManager) Result() (AnnResult, bool) {
	ann, ok := n.Annotations().Find(func(a Annotation) bool {
		_, ok := a.(AnnResult)
		return ok
	})
	if !ok {
		return AnnResult{}, false
	}
	return ann.(AnnResult), true
}

// Order returns the annotated order, alphabetic by default so that expected
// renderings do not depend on the hash function.
func (n *NotesManager) Order() ast.Order {
	order := ast.Alphabetic
	n.ForEach(func(a Annotation) {
		if a, ok := a.(AnnOrder); ok && a.Order() == "hash" {
			order = ast.ByHash
		}
	})
	return order
}

// Config applies the option annotations to base.
func (n *NotesManager) Config(base rewrite.Config) (rewrite.Config, error) {
	cfg := base
	var err error
	n.ForEach(func(a Annotation) {
		opt, ok := a.(AnnOption)
		if !ok {
			return
		}
		for _, o := range opt.Options() {
			switch {
			case o == "cse":
				cfg.CSE = true
			case o == "nocse":
				cfg.CSE = false
			case o == "deletevars":
				cfg.DeleteVars = true
			case o == "nounroll":
				cfg.Unroll = false
			case strings.HasPrefix(o, "maxpasses="):
				passes, perr := strconv.Atoi(strings.TrimPrefix(o, "maxpasses="))
				if perr != nil {
					err = fmt.Errorf("%s: %w", a, perr)
				}
				cfg.MaxPasses = passes
			default:
				err = fmt.Errorf("%s: unknown option %q", a, o)
			}
		}
	})
	return cfg, err
}
