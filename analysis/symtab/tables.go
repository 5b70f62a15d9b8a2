package symtab

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-set/v3"

	"github.com/crow-cp/crow/analysis/ast"
)

// TableStore interns constant tables by content. Rows are kept sorted and
// without duplicates, so two tables with the same set of rows share a name.
type TableStore struct {
	byContent map[string]string
	rows      map[string][][]int64
}

func NewTableStore() *TableStore {
	return &TableStore{
		byContent: make(map[string]string),
		rows:      make(map[string][][]int64),
	}
}

func contentKey(rows [][]int64) string {
	var b strings.Builder
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(v, 10))
		}
		b.WriteByte(';')
	}
	return b.String()
}

func (s *TableStore) Intern(rows [][]int64) string {
	canon := set.TreeSetFrom(rows, ast.CompareRows).Slice()
	key := contentKey(canon)
	if name, ok := s.byContent[key]; ok {
		return name
	}
	name := fmt.Sprintf("t%d", len(s.rows))
	for i := len(s.rows) + 1; s.taken(name); i++ {
		name = fmt.Sprintf("t%d", i)
	}
	s.byContent[key] = name
	s.rows[name] = canon
	return name
}

// Define stores rows under a given name, as read from a model file.
func (s *TableStore) Define(name string, rows [][]int64) error {
	if _, ok := s.rows[name]; ok {
		return fmt.Errorf("table @%s defined twice", name)
	}
	canon := set.TreeSetFrom(rows, ast.CompareRows).Slice()
	s.rows[name] = canon
	if key := contentKey(canon); s.byContent[key] == "" {
		s.byContent[key] = name
	}
	return nil
}

func (s *TableStore) taken(name string) bool {
	_, ok := s.rows[name]
	return ok
}

func (s *TableStore) Rows(name string) ([][]int64, bool) {
	rows, ok := s.rows[name]
	return rows, ok
}

func (s *TableStore) Len() int {
	return len(s.rows)
}
