package template

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsp-cli/bsp/pkg/errors"
)

func TestCloneGitMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	err := Clone(context.Background(), "https://github.com/user/repo.git", t.TempDir(), time.Minute)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrToolMissing))
}

func TestClassifyCloneError(t *testing.T) {
	cause := assert.AnError

	tests := []struct {
		name   string
		stderr string
		code   errors.ErrorCode
	}{
		{"auth failed", "fatal: Authentication failed for 'https://github.com/u/r.git'", errors.ErrCloneAuth},
		{"permission denied", "git@github.com: Permission denied (publickey).", errors.ErrCloneAuth},
		{"repo not found", "remote: Repository not found.", errors.ErrCloneNotFound},
		{"generic not found", "fatal: repository 'https://x/y' not found", errors.ErrCloneNotFound},
		{"network", "fatal: unable to access: Network is unreachable", errors.ErrCloneNetwork},
		{"connection", "fatal: unable to access: Connection timed out", errors.ErrCloneNetwork},
		{"unclassified", "fatal: early EOF", errors.ErrCloneFailed},
		{"empty stderr", "", errors.ErrCloneFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyCloneError("https://github.com/u/r.git", tt.stderr, cause)
			assert.True(t, errors.IsCode(err, tt.code), "got code %s", errors.CodeOf(err))
			assert.ErrorIs(t, err, cause)
		})
	}
}

func TestClassifyCloneErrorCarriesStderrDetail(t *testing.T) {
	err := classifyCloneError("https://github.com/u/r.git", "fatal: early EOF\n", assert.AnError)

	var bspErr *errors.Error
	require.ErrorAs(t, err, &bspErr)
	assert.Equal(t, "fatal: early EOF", bspErr.Details["stderr"])
}
