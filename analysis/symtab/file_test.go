package symtab

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
variables:
  x: "{1..9}"
  y: "{-inf..0,5}"
  b: bool
tables:
  pairs: [[2, 3], [1, 2], [2, 3]]
filtered:
  x: "{1..5}"
constraint: |
  ; a comment
  (and (table [x x] @pairs) (-> b (<= x y)))
`

func TestBuild(t *testing.T) {
	f, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	diag := NewLog(nil)
	loaded, err := f.Build(diag)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "x", "y"}, loaded.Symbols.Names())
	y, _ := loaded.Symbols.Lookup("y")
	assert.Equal(t, "{-∞..0,5}", y.Domain.String())

	rows, ok := loaded.Tables.Rows("pairs")
	require.True(t, ok)
	assert.Equal(t, [][]int64{{1, 2}, {2, 3}}, rows)

	m := loaded.Model
	assert.Equal(t, "(and (table [x x] @pairs) (-> b (<= x y)))", m.Constraint().String())
	dom, ok := m.Filtered.Domain("x")
	require.True(t, ok)
	assert.Equal(t, "{1..5}", dom.String())
	assert.Same(t, diag, m.Diag)
}

func TestBuildErrors(t *testing.T) {
	for _, src := range []string{
		"variables: {x: \"{1..\"}\nconstraint: x",
		"variables: {x: \"{1}\"}\nfiltered: {x: \"nope\"}\nconstraint: x",
		"variables: {x: \"{1}\"}",
		"variables: {x: \"{1}\"}\nconstraint: (= x",
	} {
		f, err := Decode(strings.NewReader(src))
		require.NoError(t, err, src)
		_, err = f.Build(NewLog(nil))
		assert.Error(t, err, src)
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("constraints: x\n"))
	assert.True(t, errors.Is(err, ErrModelFile))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))
	f, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Variables, 3)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
