package testutil

import (
	"fmt"
)

type basicAnnotation struct {
	note *Note
	mgr  *NotesManager
}

func (a basicAnnotation) Note() *Note {
	return a.note
}

func (a basicAnnotation) Name() string {
	return a.note.Name
}

func (a basicAnnotation) Manager() *NotesManager {
	return a.mgr
}

// Returns all annotations found on the same line as the given annotation.
func (a basicAnnotation) Related() annList {
	as := make([]Annotation, 0, 5)
	for _, n := range a.mgr.notes {
		if n != a.note && n.Line == a.note.Line {
			as = append(as, a.mgr.AnnotationOf(n))
		}
	}
	return as
}

func (a basicAnnotation) String() string {
	return fmt.Sprintf(";@ %s at line %d", a.note, a.note.Line)
}

type annList []Annotation

func (la annList) Filter(pred func(Annotation) bool) annList {
	res := make([]Annotation, 0, len(la))
	for _, ann := range la {
		if pred(ann) {
			res = append(res, ann)
		}
	}
	return res
}

func (la annList) Find(pred func(Annotation) bool) (Annotation, bool) {
	for _, ann := range la {
		if pred(ann) {
			return ann, true
		}
	}
	return nil, false
}

func (la annList) Exists(pred func(Annotation) bool) bool {
	_, found := la.Find(pred)
	return found
}

func (la annList) ForEach(do func(Annotation)) {
	for _, ann := range la {
		do(ann)
	}
}
