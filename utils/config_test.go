package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyConfig(t *testing.T) {
	saved := *opts
	defer func() { *opts = saved }()

	opts.order = "hash"
	opts.cse = true
	opts.maxPasses = 10

	data := []byte("order: alpha\ncse: false\nmax-passes: 50\ndelete-vars: true\n")
	require.NoError(t, applyConfig(data, map[string]bool{"max-passes": true}))

	require.True(t, Opts().Order().Alphabetic())
	require.False(t, Opts().CSE())
	require.True(t, Opts().DeleteVars())
	// Explicit flags win over the file.
	require.Equal(t, 10, Opts().MaxPasses())
}

func TestApplyConfigRejectsMalformed(t *testing.T) {
	require.Error(t, applyConfig([]byte("order: [unterminated"), nil))
}
