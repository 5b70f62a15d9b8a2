package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crow-cp/crow/analysis/ast"
	"github.com/crow-cp/crow/analysis/rewrite"
)

func TestExtractNotes(t *testing.T) {
	src := "(and a b)\n" + At(Ann.Result("(and a (or b c))"), Ann.Warns(2)) + "\n" +
		"; plain comment\n" + At(Ann.Option("cse", "maxpasses=5"), "nocse")
	notes, err := ExtractNotes(src)
	require.NoError(t, err)
	require.Len(t, notes, 4)

	assert.Equal(t, "result", notes[0].Name)
	assert.Equal(t, []string{"(and a (or b c))"}, notes[0].Args)
	assert.Equal(t, 2, notes[0].Line)
	assert.Equal(t, []string{"2"}, notes[1].Args)
	assert.Equal(t, []string{"cse", "maxpasses=5"}, notes[2].Args)
	assert.Equal(t, "nocse", notes[3].Name)
	assert.Empty(t, notes[3].Args)
}

func TestExtractNotesErrors(t *testing.T) {
	for _, src := range []string{
		";@ result((and a b)",
		";@ (x)",
	} {
		_, err := ExtractNotes(src)
		assert.Error(t, err, src)
	}
}

func TestNotesManager(t *testing.T) {
	src := "(and a b)\n" +
		At(Ann.Result("(and a b)"), Ann.Order("hash")) + "\n" +
		At(Ann.Option("deletevars", "nounroll", "maxpasses=7"), Ann.Satisfiable(true))
	mgr := MakeNotesManager(t, src)

	res, ok := mgr.Result()
	require.True(t, ok)
	assert.Equal(t, "(and a b)", res.Expected())
	assert.Len(t, res.Related(), 1)
	assert.Equal(t, ast.ByHash, mgr.Order())

	cfg, err := mgr.Config(rewrite.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, cfg.DeleteVars)
	assert.False(t, cfg.Unroll)
	assert.True(t, cfg.CSE)
	assert.Equal(t, 7, cfg.MaxPasses)

	assert.True(t, mgr.Annotations().Exists(func(a Annotation) bool {
		s, ok := a.(AnnSatisfies)
		return ok && s.Satisfiable()
	}))
}

func TestLoadSource(t *testing.T) {
	res := LoadSource(t, `
variables:
  x: "{0..3}"
  a: bool
constraint: |
  (-> a (= x 2))
  ;@ result((-> a (= x 2)))
`)
	assert.Equal(t, "(-> a (= x 2))", res.Model.Constraint().String())
	assert.Equal(t, ast.Alphabetic, res.Model.Order)
	_, ok := res.Notes.Result()
	assert.True(t, ok)
}
