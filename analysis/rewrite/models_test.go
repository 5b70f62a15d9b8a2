package rewrite_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crow-cp/crow/analysis/ast"
	"github.com/crow-cp/crow/analysis/rewrite"
	"github.com/crow-cp/crow/analysis/satcheck"
	"github.com/crow-cp/crow/testutil"
)

var failures = map[string]error{
	"typecheck":  rewrite.ErrTypeCheck,
	"nofixpoint": rewrite.ErrNoFixpoint,
	"unroll":     rewrite.ErrUnroll,
}

// TestModels runs the pipeline over every model in testdata/models and
// checks the annotations of each model against the outcome. The summary of
// the outcome is compared with testdata/golden; run with -update to accept
// changes.
func TestModels(t *testing.T) {
	files := testutil.ModelFiles(t, filepath.Join("testdata", "models"))
	require.NotEmpty(t, files)

	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		t.Run(name, func(t *testing.T) {
			res := testutil.LoadModel(t, path)
			cfg, err := res.Notes.Config(rewrite.DefaultConfig())
			require.NoError(t, err)

			before := res.Model.Constraint().DeepCopy()
			_, err = rewrite.Run(res.Model, cfg)

			expectFailure := false
			res.Notes.ForEach(func(a testutil.Annotation) {
				switch a := a.(type) {
				case testutil.AnnFails:
					expectFailure = true
					want, ok := failures[a.Reason()]
					require.True(t, ok, "unknown failure %s", a)
					assert.True(t, errors.Is(err, want), "%s: got %v", a, err)
				case testutil.AnnResult:
					assert.Equal(t, a.Expected(), res.Model.Constraint().String(), a.String())
				case testutil.AnnWarns:
					assert.Len(t, res.Diag.Warnings, a.Count(), a.String())
				case testutil.AnnSatisfies:
					for _, n := range []ast.Node{before, res.Model.Constraint()} {
						sat, serr := satcheck.Satisfiable(n)
						require.NoError(t, serr)
						assert.Equal(t, a.Satisfiable(), sat, "%s for %s", a, n)
					}
				}
			})
			if !expectFailure {
				require.NoError(t, err)
			}

			goldie.New(t, goldie.WithFixtureDir(filepath.Join("testdata", "golden"))).
				Assert(t, name, []byte(res.Summary()))
		})
	}
}
