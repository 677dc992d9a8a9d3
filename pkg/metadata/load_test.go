package metadata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsp-cli/bsp/pkg/errors"
	"github.com/bsp-cli/bsp/pkg/testutil"
)

func writeMetadata(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.yaml")
	testutil.WriteFile(t, path, content)
	return path
}

func TestLoadFullDocument(t *testing.T) {
	path := writeMetadata(t, `
project:
  description: A terminal feed reader
  keywords: [rss, terminal, reader]
  homepage: https://example.com
  repository: https://github.com/example/feedr
  documentation: https://example.com/docs
  issues: https://github.com/example/feedr/issues
  license: Apache-2.0
author:
  name: Ada Example
  email: ada@example.com
  github_username: ada
maintainer:
  name: Grace Example
  email: grace@example.com
packages:
  - cli
  - httpx
readme:
  title: Feedr
  subtitle: Feeds in your terminal
  description: Reads RSS feeds without leaving the shell.
  badges:
    - name: PyPI
      url: https://img.shields.io/pypi/v/feedr
      link: https://pypi.org/project/feedr/
    - name: License
      url: https://img.shields.io/badge/license-Apache--2.0-green
pyproject:
  classifiers:
    - "Development Status :: 4 - Beta"
environment:
  FEEDR_CACHE_DIR: ~/.cache/feedr
additional_files:
  - "src/{project_name}/feeds.py"
`)

	meta, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "A terminal feed reader", meta.Project.Description)
	assert.Equal(t, []string{"rss", "terminal", "reader"}, meta.Project.Keywords)
	assert.Equal(t, "Apache-2.0", meta.Project.License)
	assert.Equal(t, "Ada Example", meta.Author.Name)
	assert.Equal(t, "ada", meta.Author.GithubUsername)
	require.NotNil(t, meta.Maintainer)
	assert.Equal(t, "Grace Example", meta.Maintainer.Name)
	assert.Equal(t, []string{"cli", "httpx"}, meta.Packages)
	assert.Equal(t, "Feedr", meta.Readme.Title)
	require.Len(t, meta.Readme.Badges, 2)
	assert.Equal(t, "https://pypi.org/project/feedr/", meta.Readme.Badges[0].Link)
	assert.Equal(t, "", meta.Readme.Badges[1].Link)
	assert.Equal(t, []string{"Development Status :: 4 - Beta"}, meta.PyprojectClassifiers)
	assert.Equal(t, "~/.cache/feedr", meta.Environment["FEEDR_CACHE_DIR"])
	assert.Equal(t, []string{"src/{project_name}/feeds.py"}, meta.AdditionalFiles)
}

func TestLoadEmptyDocumentYieldsDefaults(t *testing.T) {
	path := writeMetadata(t, "")

	meta, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "MIT", meta.Project.License)
	assert.Empty(t, meta.Project.Description)
	assert.Empty(t, meta.Packages)
	assert.Nil(t, meta.Maintainer)
	assert.Empty(t, meta.Environment)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.IsCode(err, errors.ErrMetadataNotFound))
}

func TestLoadDirectoryAsFile(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, errors.IsCode(err, errors.ErrMetadataNotFound))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeMetadata(t, "project: [unterminated")
	_, err := Load(path)
	assert.True(t, errors.IsCode(err, errors.ErrMetadataFormat))
}

func TestLoadNonMappingTopLevel(t *testing.T) {
	path := writeMetadata(t, "- just\n- a\n- list\n")
	_, err := Load(path)
	assert.True(t, errors.IsCode(err, errors.ErrMetadataFormat))
}

func TestLoadSectionShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "project not an object",
			doc:     "project: just a string\n",
			wantMsg: "project",
		},
		{
			name:    "author not an object",
			doc:     "author: [list]\n",
			wantMsg: "author",
		},
		{
			name:    "maintainer not an object",
			doc:     "maintainer: 42\n",
			wantMsg: "maintainer",
		},
		{
			name:    "packages not a list",
			doc:     "packages: {a: b}\n",
			wantMsg: "packages",
		},
		{
			name:    "keywords not a list",
			doc:     "project:\n  keywords: nope\n",
			wantMsg: "project.keywords",
		},
		{
			name:    "badges not a list",
			doc:     "readme:\n  badges: nope\n",
			wantMsg: "readme.badges",
		},
		{
			name:    "environment not an object",
			doc:     "environment: [a, b]\n",
			wantMsg: "environment",
		},
		{
			name:    "classifiers not a list",
			doc:     "pyproject:\n  classifiers: nope\n",
			wantMsg: "pyproject.classifiers",
		},
		{
			name:    "additional files not a list",
			doc:     "additional_files: nope\n",
			wantMsg: "additional_files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeMetadata(t, tt.doc)
			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrMetadataSection), "got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadBadgeMissingURLNamesIndex(t *testing.T) {
	path := writeMetadata(t, `
readme:
  badges:
    - name: CI
      url: https://img.shields.io/ci
    - name: Coverage
`)
	meta, err := Load(path)
	require.Error(t, err)
	assert.Nil(t, meta, "no partial metadata on error")
	assert.True(t, errors.IsCode(err, errors.ErrMetadataSection))
	assert.Contains(t, err.Error(), "badge 1")
}

func TestEffectiveMaintainer(t *testing.T) {
	meta := Default()
	meta.Author = AuthorInfo{Name: "Ada", Email: "ada@example.com"}
	assert.Equal(t, meta.Author, meta.EffectiveMaintainer())

	meta.Maintainer = &AuthorInfo{Name: "Grace"}
	assert.Equal(t, "Grace", meta.EffectiveMaintainer().Name)
}
