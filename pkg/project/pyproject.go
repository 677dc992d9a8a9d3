package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bsp-cli/bsp/pkg/errors"
	"github.com/bsp-cli/bsp/pkg/logging"
	"github.com/bsp-cli/bsp/pkg/metadata"
)

// UpdatePyproject patches the placeholder tokens in pyproject.toml by
// literal substring replacement, one token per metadata field and only
// for fields that are present. The substitution is pattern-literal: a
// target whose placeholder layout differs from the expected one is
// silently left untouched.
func UpdatePyproject(projectDir string, meta *metadata.TemplateMetadata) error {
	log := logging.GetLogger("project.pyproject")

	pyprojectPath := filepath.Join(projectDir, "pyproject.toml")
	if _, err := os.Stat(pyprojectPath); err != nil {
		log.Warn().Str("path", pyprojectPath).Msg("pyproject.toml not found, skipping metadata update")
		return nil
	}

	raw, err := os.ReadFile(pyprojectPath)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read pyproject.toml")
	}
	content := string(raw)
	original := content

	if meta.Project.Description != "" {
		content = strings.ReplaceAll(content,
			`description = "TEMPLATE_DESCRIPTION"`,
			`description = "`+meta.Project.Description+`"`)
	}

	if len(meta.Project.Keywords) > 0 {
		keywords := strings.Join(meta.Project.Keywords, "\",\n    \"")
		content = strings.ReplaceAll(content,
			"keywords = [\n    \"TEMPLATE_KEYWORDS\",\n]",
			"keywords = [\n    \""+keywords+"\",\n]")
	}

	if len(meta.PyprojectClassifiers) > 0 && strings.Contains(content, "TEMPLATE_CLASSIFIERS") {
		classifiers := strings.Join(meta.PyprojectClassifiers, "\",\n    \"")
		content = strings.ReplaceAll(content,
			`"TEMPLATE_CLASSIFIERS",`,
			`"`+classifiers+`",`)
	}

	if meta.Project.Homepage != "" {
		content = strings.ReplaceAll(content, "TEMPLATE_HOMEPAGE", meta.Project.Homepage)
	}
	if meta.Project.Repository != "" {
		content = strings.ReplaceAll(content, "TEMPLATE_REPOSITORY", meta.Project.Repository)
	}
	if meta.Project.Documentation != "" {
		content = strings.ReplaceAll(content, "TEMPLATE_DOCUMENTATION", meta.Project.Documentation)
	}
	if meta.Project.Issues != "" {
		content = strings.ReplaceAll(content, "TEMPLATE_ISSUES", meta.Project.Issues)
	}

	// Maintainer placeholders resolve through the author fallback at
	// this point, not at parse time.
	maintainer := meta.EffectiveMaintainer()
	if maintainer.Name != "" {
		content = strings.ReplaceAll(content, "TEMPLATE_MAINTAINER_NAME", maintainer.Name)
	}
	if maintainer.Email != "" {
		content = strings.ReplaceAll(content, "TEMPLATE_MAINTAINER_EMAIL", maintainer.Email)
	}

	if content == original {
		return nil
	}

	if err := os.WriteFile(pyprojectPath, []byte(content), 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write pyproject.toml")
	}

	log.Debug().Str("path", pyprojectPath).Msg("pyproject.toml updated with metadata")
	return nil
}
