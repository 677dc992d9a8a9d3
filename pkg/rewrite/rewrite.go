// Package rewrite implements the multi-pattern replacement engine:
// case-variant generation for the template/project name pair and an
// ordered literal-substring substitution pass over individual files.
package rewrite

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bsp-cli/bsp/pkg/errors"
	"github.com/bsp-cli/bsp/pkg/logging"
	"github.com/bsp-cli/bsp/pkg/metadata"
)

// Entry is one (search, replace) pair in a replacement table.
type Entry struct {
	Search  string
	Replace string
}

// Table is an ordered mapping from literal search string to literal
// replacement string. Entries are applied in insertion order; order
// only matters when one search key is a substring of another, so
// callers declare specific keys before generic ones.
type Table struct {
	entries []Entry
}

// Add appends a replacement pair. Empty search keys are rejected.
func (t *Table) Add(search, replace string) error {
	if search == "" {
		return errors.New(errors.ErrInvalidInput, "replacement search key cannot be empty")
	}
	t.entries = append(t.entries, Entry{Search: search, Replace: replace})
	return nil
}

// Entries returns the table's pairs in insertion order.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Len returns the number of pairs in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// BuildTable constructs the replacement table for one file-update run:
// the four case-variant pairs of template name vs. project name, then
// the metadata placeholder pairs for each non-empty field. meta may be
// nil.
func BuildTable(templateName, projectName string, meta *metadata.TemplateMetadata) *Table {
	templateVariants := CaseVariants(templateName)
	projectVariants := CaseVariants(projectName)

	table := &Table{}
	_ = table.Add(templateVariants.Snake, projectVariants.Snake)
	_ = table.Add(templateVariants.Title, projectVariants.Title)
	_ = table.Add(templateVariants.Kebab, projectVariants.Kebab)
	_ = table.Add(templateVariants.Pascal, projectVariants.Pascal)

	if meta == nil {
		return table
	}

	if meta.Project.Description != "" {
		_ = table.Add("TEMPLATE_DESCRIPTION", meta.Project.Description)
	}
	if meta.Author.Name != "" {
		_ = table.Add("TEMPLATE_AUTHOR_NAME", meta.Author.Name)
	}
	if meta.Author.Email != "" {
		_ = table.Add("TEMPLATE_AUTHOR_EMAIL", meta.Author.Email)
	}
	if meta.Project.Homepage != "" {
		_ = table.Add("TEMPLATE_HOMEPAGE", meta.Project.Homepage)
	}
	if meta.Project.Repository != "" {
		_ = table.Add("TEMPLATE_REPOSITORY", meta.Project.Repository)
	}

	return table
}

// Apply rewrites one file in place: the content is read once, every
// table entry whose search key occurs in the buffer replaces all of
// its occurrences (in insertion order, so a later pattern may match
// text introduced by an earlier one), and the result is written back
// only when it differs from the original. A missing path warns and
// no-ops; encoding and permission failures are fatal.
func Apply(path string, table *Table) (bool, error) {
	log := logging.GetLogger("rewrite")

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("File not found, skipping")
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat file: %s", path)
	}
	if !info.Mode().IsRegular() {
		log.Warn().Str("path", path).Msg("Path is not a file, skipping")
		return false, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read file: %s", path)
	}
	if !utf8.Valid(raw) {
		return false, errors.Newf(errors.ErrFileEncoding, "file is not valid UTF-8: %s", path)
	}

	content := string(raw)
	updated := content
	for _, entry := range table.entries {
		if strings.Contains(updated, entry.Search) {
			updated = strings.ReplaceAll(updated, entry.Search, entry.Replace)
		}
	}

	if updated == content {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "cannot write file: %s", path)
	}

	log.Debug().Str("path", path).Int("patterns", table.Len()).Msg("File rewritten")
	return true, nil
}
