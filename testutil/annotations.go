package testutil

type Annotation interface {
	// Returns related annotations (created from notes on the same line).
	Related() annList
	String() string
	Name() string

	Note() *Note
	Manager() *NotesManager
}

// AnnResult expects the final rendering of the constraint.
type AnnResult struct {
	basicAnnotation
}

func (a AnnResult) Expected() string {
	return a.note.Args[0]
}

// AnnWarns expects a number of warnings.
type AnnWarns struct {
	basicAnnotation
	count int
}

func (a AnnWarns) Count() int {
	return a.count
}

// AnnFails expects the pipeline to stop with an error.
type AnnFails struct {
	basicAnnotation
}

// Reason is one of typecheck, nofixpoint or unroll.
func (a AnnFails) Reason() string {
	return a.note.Args[0]
}

// AnnOption toggles pipeline options: cse, nocse, deletevars, nounroll and
// maxpasses=<n>.
type AnnOption struct {
	basicAnnotation
}

func (a AnnOption) Options() []string {
	return a.note.Args
}

// AnnOrder selects the order of commutative operands.
type AnnOrder struct {
	basicAnnotation
}

func (a AnnOrder) Order() string {
	return a.note.Args[0]
}

// AnnSatisfies expects a satisfiability verdict of a propositional model.
type AnnSatisfies struct {
	basicAnnotation
	sat bool
}

func (a AnnSatisfies) Satisfiable() bool {
	return a.sat
}
