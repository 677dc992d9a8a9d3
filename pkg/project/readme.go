// Package project contains the metadata-to-artifact projectors: three
// best-effort writers that turn metadata fields into README,
// pyproject.toml and .env mutations inside a freshly instantiated
// project. Projectors warn and continue when their target file is
// absent; they are enhancements, not requirements, of a successful
// instantiation.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bsp-cli/bsp/pkg/errors"
	"github.com/bsp-cli/bsp/pkg/logging"
	"github.com/bsp-cli/bsp/pkg/metadata"
	"github.com/bsp-cli/bsp/pkg/rewrite"
)

// ReadmeMarker is the literal token whose trailing content the
// generated README block replaces.
const ReadmeMarker = "<!-- METADATA_CONTENT -->"

// GenerateReadmeContent builds the README header block from metadata:
// title (falling back to the title-cased project name), subtitle,
// badges and description. Returns "" when title and description are
// both empty, which callers treat as "skip".
func GenerateReadmeContent(meta *metadata.TemplateMetadata, projectName string) string {
	if meta.Readme.Title == "" && meta.Readme.Description == "" {
		return ""
	}

	var content []string

	title := meta.Readme.Title
	if title == "" {
		title = rewrite.CaseVariants(projectName).Title
	}
	content = append(content, "# "+title)

	if meta.Readme.Subtitle != "" {
		content = append(content, "\n"+meta.Readme.Subtitle)
	}

	if len(meta.Readme.Badges) > 0 {
		content = append(content, "\n")
		for _, badge := range meta.Readme.Badges {
			if badge.Link != "" {
				content = append(content, fmt.Sprintf("[![%s](%s)](%s)", badge.Name, badge.URL, badge.Link))
			} else {
				content = append(content, fmt.Sprintf("![%s](%s)", badge.Name, badge.URL))
			}
		}
		content = append(content, "")
	}

	if meta.Readme.Description != "" {
		content = append(content, "\n"+meta.Readme.Description)
	}

	return strings.Join(content, "\n")
}

// UpdateReadme injects the generated metadata block into README.md.
// When the file contains ReadmeMarker, the block replaces everything
// up to and including the first marker; otherwise the block is
// prepended. No-op when the generated block is empty.
func UpdateReadme(projectDir string, meta *metadata.TemplateMetadata, projectName string) error {
	log := logging.GetLogger("project.readme")

	readmePath := filepath.Join(projectDir, "README.md")
	if _, err := os.Stat(readmePath); err != nil {
		log.Warn().Str("path", readmePath).Msg("README.md not found, skipping metadata update")
		return nil
	}

	block := GenerateReadmeContent(meta, projectName)
	if block == "" {
		return nil
	}

	raw, err := os.ReadFile(readmePath)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read README.md")
	}
	current := string(raw)

	var updated string
	if strings.Contains(current, ReadmeMarker) {
		parts := strings.Split(current, ReadmeMarker)
		updated = block + "\n\n" + parts[1]
	} else {
		updated = block + "\n\n" + current
	}

	if err := os.WriteFile(readmePath, []byte(updated), 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write README.md")
	}

	log.Debug().Str("path", readmePath).Msg("README.md updated with metadata")
	return nil
}
