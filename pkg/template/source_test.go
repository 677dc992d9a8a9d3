package template

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsp-cli/bsp/pkg/config"
	"github.com/bsp-cli/bsp/pkg/errors"
)

func TestIsGitURL(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"https://github.com/user/repo", true},
		{"https://github.com/user/repo.git", true},
		{"https://github.com/user/repo/", true},
		{"https://gitlab.com/user/repo", true},
		{"https://bitbucket.org/user/my-repo", true},
		{"https://git.example.com/team/repo", true},
		{"https://git.example.com/nested/path/repo.git", true},
		{"new_cli_project_template", false},
		{"my-template", false},
		{"http://github.com/user/repo", false},
		{"git@github.com:user/repo.git", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGitURL(tt.ref))
		})
	}
}

func TestNormalizeGitURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"github adds git suffix", "https://github.com/user/repo", "https://github.com/user/repo.git"},
		{"github keeps git suffix", "https://github.com/user/repo.git", "https://github.com/user/repo.git"},
		{"github strips trailing slash", "https://github.com/user/repo/", "https://github.com/user/repo.git"},
		{"gitlab adds git suffix", "https://gitlab.com/user/repo", "https://gitlab.com/user/repo.git"},
		{"bitbucket adds git suffix", "https://bitbucket.org/user/repo", "https://bitbucket.org/user/repo.git"},
		{"generic host untouched", "https://git.example.com/team/repo", "https://git.example.com/team/repo"},
		{"generic host trailing slash stripped", "https://git.example.com/team/repo/", "https://git.example.com/team/repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeGitURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeGitURLRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "not-a-url", "git@github.com:user/repo.git"} {
		_, err := NormalizeGitURL(in)
		require.Error(t, err, "input %q", in)
		assert.True(t, errors.IsCode(err, errors.ErrGitURLInvalid))
	}
}

func TestResolveLocalTemplate(t *testing.T) {
	repoDir := t.TempDir()
	cfg := &config.Config{Repo: config.RepoConfig{Dir: repoDir}}

	source, err := Resolve(context.Background(), "my_template", cfg)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(repoDir, "my_template"), source.Dir)
	assert.Equal(t, "my_template", source.Name)
	assert.False(t, source.Remote)

	// Cleanup on a local source is a no-op
	source.Cleanup()
	assert.Equal(t, filepath.Join(repoDir, "my_template"), source.Dir)
}

func TestResolveTrimsWhitespace(t *testing.T) {
	repoDir := t.TempDir()
	cfg := &config.Config{Repo: config.RepoConfig{Dir: repoDir}}

	source, err := Resolve(context.Background(), "  my_template  ", cfg)
	require.NoError(t, err)
	assert.Equal(t, "my_template", source.Name)
}

func TestResolveEmptyReference(t *testing.T) {
	_, err := Resolve(context.Background(), "   ", &config.Config{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidInput))
}

func TestResolveNoRepoDir(t *testing.T) {
	cfg := &config.Config{Repo: config.RepoConfig{Paths: []string{"/nonexistent/bsp-test-path"}}}

	_, err := Resolve(context.Background(), "my_template", cfg)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTemplateNotFound))
}

func TestResolveInvalidGitURLScheme(t *testing.T) {
	// Matches the generic HTTPS pattern shape but is rejected in Resolve
	// only through NormalizeGitURL, so feed it directly.
	_, err := NormalizeGitURL("https://")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrGitURLInvalid))
}

func TestRepoName(t *testing.T) {
	assert.Equal(t, "repo", repoName("https://github.com/user/repo.git"))
	assert.Equal(t, "my-template", repoName("https://git.example.com/team/my-template"))
}
