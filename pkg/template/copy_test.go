package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsp-cli/bsp/pkg/errors"
	"github.com/bsp-cli/bsp/pkg/testutil"
)

func defaultIgnore() map[string]bool {
	return map[string]bool{
		".git":        true,
		".venv":       true,
		"uv.lock":     true,
		".idea":       true,
		".ruff_cache": true,
	}
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "project")

	testutil.WriteFile(t, filepath.Join(src, "pyproject.toml"), "[project]\n")
	testutil.WriteFile(t, filepath.Join(src, "src", "tmpl", "__init__.py"), "")
	testutil.WriteFile(t, filepath.Join(src, ".git", "HEAD"), "ref: refs/heads/main\n")
	testutil.WriteFile(t, filepath.Join(src, "uv.lock"), "locked\n")
	testutil.WriteFile(t, filepath.Join(src, "docs", ".venv", "cfg"), "nested ignored\n")

	require.NoError(t, CopyTree(src, dst, defaultIgnore()))

	assert.FileExists(t, filepath.Join(dst, "pyproject.toml"))
	assert.FileExists(t, filepath.Join(dst, "src", "tmpl", "__init__.py"))
	assert.NoDirExists(t, filepath.Join(dst, ".git"))
	assert.NoFileExists(t, filepath.Join(dst, "uv.lock"))
	assert.NoDirExists(t, filepath.Join(dst, "docs", ".venv"))
	assert.DirExists(t, filepath.Join(dst, "docs"))
}

func TestCopyTreePreservesFileMode(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "project")

	script := filepath.Join(src, "run.sh")
	testutil.WriteFile(t, script, "#!/bin/sh\n")
	require.NoError(t, os.Chmod(script, 0755))

	require.NoError(t, CopyTree(src, dst, nil))

	info, err := os.Stat(filepath.Join(dst, "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestCopyTreeOverwritesExisting(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	testutil.WriteFile(t, filepath.Join(src, "README.md"), "new content\n")
	testutil.WriteFile(t, filepath.Join(dst, "README.md"), "old content\n")
	testutil.WriteFile(t, filepath.Join(dst, "keep.txt"), "kept\n")

	require.NoError(t, CopyTree(src, dst, nil))

	assert.Equal(t, "new content\n", testutil.ReadFile(t, filepath.Join(dst, "README.md")))
	assert.Equal(t, "kept\n", testutil.ReadFile(t, filepath.Join(dst, "keep.txt")))
}

func TestCopyTreeMissingSource(t *testing.T) {
	err := CopyTree(filepath.Join(t.TempDir(), "nope"), t.TempDir(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTemplateNotFound))
}

func TestCopyTreeSourceIsFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "file.txt")
	testutil.WriteFile(t, src, "not a dir\n")

	err := CopyTree(src, t.TempDir(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidInput))
}

func TestCopyTreeDestIsFile(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "occupied")
	testutil.WriteFile(t, dst, "a file\n")

	err := CopyTree(src, dst, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTargetConflict))
}

func TestRenameSrcDir(t *testing.T) {
	project := t.TempDir()
	testutil.WriteFile(t, filepath.Join(project, "src", "old_name", "__init__.py"), "")

	require.NoError(t, RenameSrcDir(project, "old_name", "new_name"))

	assert.FileExists(t, filepath.Join(project, "src", "new_name", "__init__.py"))
	assert.NoDirExists(t, filepath.Join(project, "src", "old_name"))
}

func TestRenameSrcDirMissingListsAvailable(t *testing.T) {
	project := t.TempDir()
	testutil.WriteFile(t, filepath.Join(project, "src", "something_else", "__init__.py"), "")

	err := RenameSrcDir(project, "old_name", "new_name")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrRenameFailed))
	assert.Contains(t, err.Error(), "something_else")
}

func TestRenameSrcDirTargetExists(t *testing.T) {
	project := t.TempDir()
	testutil.WriteFile(t, filepath.Join(project, "src", "old_name", "__init__.py"), "")
	testutil.CreateDir(t, filepath.Join(project, "src"), "new_name")

	err := RenameSrcDir(project, "old_name", "new_name")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTargetConflict))
}
