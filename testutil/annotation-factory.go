package testutil

import (
	"fmt"
	"strings"
	"unicode"
)

var (
	id_RESULT     = "result"
	id_WARNS      = "warns"
	id_FAILS      = "fails"
	id_OPTION     = "option"
	id_ORDER      = "order"
	id_SATISFIES  = "sat"
	annotationTag = ";@"
)

// Note is a raw annotation read from a model's constraint text:
//
//	;@ result((<= x 3)) warns(1)
type Note struct {
	Name string
	Args []string
	Line int
}

func (n *Note) String() string {
	if len(n.Args) == 0 {
		return n.Name
	}
	return n.Name + "(" + strings.Join(n.Args, ", ") + ")"
}

// ExtractNotes collects the notes of every ";@" comment in src.
func ExtractNotes(src string) ([]*Note, error) {
	var notes []*Note
	for i, line := range strings.Split(src, "\n") {
		at := strings.Index(line, annotationTag)
		if at < 0 {
			continue
		}
		ns, err := parseNotes(line[at+len(annotationTag):], i+1)
		if err != nil {
			return nil, err
		}
		notes = append(notes, ns...)
	}
	return notes, nil
}

// parseNotes reads whitespace-separated notes. Arguments are split at
// top-level commas and may contain balanced parentheses.
func parseNotes(s string, line int) ([]*Note, error) {
	var notes []*Note
	rs := []rune(s)
	for i := 0; i < len(rs); {
		if unicode.IsSpace(rs[i]) {
			i++
			continue
		}
		j := i
		for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_') {
			j++
		}
		if j == i {
			return nil, fmt.Errorf("line %d: unexpected %q in annotation", line, rs[i])
		}
		note := &Note{Name: string(rs[i:j]), Line: line}
		notes = append(notes, note)
		i = j
		if i >= len(rs) || rs[i] != '(' {
			continue
		}

		depth, start := 0, i+1
		for ; i < len(rs); i++ {
			switch rs[i] {
			case '(':
				depth++
			case ')':
				depth--
			case ',':
				if depth == 1 {
					note.Args = append(note.Args, strings.TrimSpace(string(rs[start:i])))
					start = i + 1
				}
			}
			if depth == 0 {
				break
			}
		}
		if depth != 0 {
			return nil, fmt.Errorf("line %d: unbalanced parentheses in %s", line, note.Name)
		}
		if arg := strings.TrimSpace(string(rs[start:i])); arg != "" || len(note.Args) > 0 {
			note.Args = append(note.Args, arg)
		}
		i++
	}
	return notes, nil
}

type annFactory struct{}

// Factory for creating annotation strings. Wrap multiple factory calls in
// the At function to put several annotations on one comment line.
var Ann = annFactory{}

// The constraint is expected to simplify to the given rendering.
func (annFactory) Result(expr string) string {
	return id_RESULT + "(" + expr + ")"
}

// The rewriter is expected to report exactly n warnings.
func (annFactory) Warns(n int) string {
	return fmt.Sprintf("%s(%d)", id_WARNS, n)
}

// The pipeline is expected to stop with the named error.
func (annFactory) Fails(err string) string {
	return id_FAILS + "(" + err + ")"
}

// Enables or disables a pipeline option.
func (annFactory) Option(opts ...string) string {
	return id_OPTION + "(" + strings.Join(opts, ", ") + ")"
}

// Orders commutative operands by the named order.
func (annFactory) Order(order string) string {
	return id_ORDER + "(" + order + ")"
}

// The model is expected to be satisfiable or not, before and after.
func (annFactory) Satisfiable(sat bool) string {
	return fmt.Sprintf("%s(%t)", id_SATISFIES, sat)
}

// At joins annotations into one comment line.
func At(anns ...string) string {
	return annotationTag + " " + strings.Join(anns, " ")
}
