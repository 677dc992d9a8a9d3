// Package metadata defines the template metadata document and its
// loader. The document is a loosely-structured YAML file; loading is
// fail-closed for shape errors and fail-soft for missing sections.
package metadata

// AuthorInfo identifies an author or maintainer.
type AuthorInfo struct {
	Name           string
	Email          string
	GithubUsername string
}

// ProjectInfo holds project-level metadata.
type ProjectInfo struct {
	Description   string
	Keywords      []string
	Homepage      string
	Repository    string
	Documentation string
	Issues        string
	License       string
}

// ReadmeBadge is a single badge in the generated README header.
// Name and URL are required; Link optionally wraps the image.
type ReadmeBadge struct {
	Name string
	URL  string
	Link string
}

// ReadmeInfo holds README customization content.
type ReadmeInfo struct {
	Title       string
	Subtitle    string
	Description string
	Badges      []ReadmeBadge
}

// TemplateMetadata is the root metadata record for one instantiation
// run. It is a faithful reflection of the source document: maintainer
// stays nil when absent and is resolved at use time.
type TemplateMetadata struct {
	Project              ProjectInfo
	Author               AuthorInfo
	Maintainer           *AuthorInfo
	Packages             []string
	Readme               ReadmeInfo
	PyprojectClassifiers []string
	Environment          map[string]string
	AdditionalFiles      []string
}

// Default returns a TemplateMetadata with documented defaults applied.
func Default() TemplateMetadata {
	return TemplateMetadata{
		Project:     ProjectInfo{License: "MIT"},
		Environment: map[string]string{},
	}
}

// EffectiveMaintainer returns the maintainer, falling back to the
// author when no maintainer was supplied.
func (m *TemplateMetadata) EffectiveMaintainer() AuthorInfo {
	if m.Maintainer != nil {
		return *m.Maintainer
	}
	return m.Author
}
