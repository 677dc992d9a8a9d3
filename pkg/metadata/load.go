package metadata

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bsp-cli/bsp/pkg/errors"
	"github.com/bsp-cli/bsp/pkg/logging"
)

// Load reads and validates a metadata document. It fails with
// ErrMetadataNotFound when path is missing or not a regular file,
// ErrMetadataFormat when the document is not parseable YAML or not a
// mapping, and ErrMetadataSection (naming the section) on any shape
// mismatch inside a recognized section. Missing sections yield
// defaults; no partial metadata is ever returned on error.
func Load(path string) (*TemplateMetadata, error) {
	log := logging.GetLogger("metadata")

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Newf(errors.ErrMetadataNotFound, "metadata file not found: %s", path)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Newf(errors.ErrMetadataNotFound, "metadata path is not a file: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read metadata file: %s", path)
	}

	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrMetadataFormat, "invalid YAML syntax in %s", path)
	}

	if doc == nil {
		log.Warn().Str("path", path).Msg("Metadata file is empty, using defaults")
		doc = map[string]interface{}{}
	}

	data, ok := doc.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrMetadataFormat,
			"invalid metadata format: expected a YAML mapping at the top level")
	}

	meta := Default()

	if raw, present := data["project"]; present {
		section, ok := raw.(map[string]interface{})
		if !ok {
			return nil, sectionError("project", "expected object")
		}
		if err := parseProject(section, &meta.Project); err != nil {
			return nil, err
		}
	}

	if raw, present := data["author"]; present {
		section, ok := raw.(map[string]interface{})
		if !ok {
			return nil, sectionError("author", "expected object")
		}
		if err := parseAuthor("author", section, &meta.Author); err != nil {
			return nil, err
		}
	}

	if raw, present := data["maintainer"]; present {
		section, ok := raw.(map[string]interface{})
		if !ok {
			return nil, sectionError("maintainer", "expected object")
		}
		var maintainer AuthorInfo
		if err := parseAuthor("maintainer", section, &maintainer); err != nil {
			return nil, err
		}
		meta.Maintainer = &maintainer
	}

	if raw, present := data["packages"]; present {
		packages, err := stringList("packages", raw)
		if err != nil {
			return nil, err
		}
		meta.Packages = packages
	}

	if raw, present := data["readme"]; present {
		section, ok := raw.(map[string]interface{})
		if !ok {
			return nil, sectionError("readme", "expected object")
		}
		if err := parseReadme(section, &meta.Readme); err != nil {
			return nil, err
		}
	}

	if raw, present := data["pyproject"]; present {
		section, ok := raw.(map[string]interface{})
		if !ok {
			return nil, sectionError("pyproject", "expected object")
		}
		if rawClassifiers, present := section["classifiers"]; present {
			classifiers, err := stringList("pyproject.classifiers", rawClassifiers)
			if err != nil {
				return nil, err
			}
			meta.PyprojectClassifiers = classifiers
		}
	}

	if raw, present := data["environment"]; present {
		section, ok := raw.(map[string]interface{})
		if !ok {
			return nil, sectionError("environment", "expected object")
		}
		for key, value := range section {
			str, ok := value.(string)
			if !ok {
				return nil, sectionError("environment", "value for %q must be a string", key)
			}
			meta.Environment[key] = str
		}
	}

	if raw, present := data["additional_files"]; present {
		files, err := stringList("additional_files", raw)
		if err != nil {
			return nil, err
		}
		meta.AdditionalFiles = files
	}

	log.Debug().Str("path", path).Msg("Metadata loaded")
	return &meta, nil
}

func parseProject(section map[string]interface{}, out *ProjectInfo) error {
	var err error
	if out.Description, err = stringField("project", section, "description", ""); err != nil {
		return err
	}
	if raw, present := section["keywords"]; present {
		keywords, err := stringList("project.keywords", raw)
		if err != nil {
			return err
		}
		out.Keywords = keywords
	}
	if out.Homepage, err = stringField("project", section, "homepage", ""); err != nil {
		return err
	}
	if out.Repository, err = stringField("project", section, "repository", ""); err != nil {
		return err
	}
	if out.Documentation, err = stringField("project", section, "documentation", ""); err != nil {
		return err
	}
	if out.Issues, err = stringField("project", section, "issues", ""); err != nil {
		return err
	}
	if out.License, err = stringField("project", section, "license", "MIT"); err != nil {
		return err
	}
	return nil
}

func parseAuthor(name string, section map[string]interface{}, out *AuthorInfo) error {
	var err error
	if out.Name, err = stringField(name, section, "name", ""); err != nil {
		return err
	}
	if out.Email, err = stringField(name, section, "email", ""); err != nil {
		return err
	}
	if out.GithubUsername, err = stringField(name, section, "github_username", ""); err != nil {
		return err
	}
	return nil
}

func parseReadme(section map[string]interface{}, out *ReadmeInfo) error {
	var err error
	if out.Title, err = stringField("readme", section, "title", ""); err != nil {
		return err
	}
	if out.Subtitle, err = stringField("readme", section, "subtitle", ""); err != nil {
		return err
	}
	if out.Description, err = stringField("readme", section, "description", ""); err != nil {
		return err
	}

	raw, present := section["badges"]
	if !present {
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return sectionError("readme.badges", "expected list")
	}

	for i, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return sectionError("readme.badges", "badge %d: expected object", i)
		}

		badge := ReadmeBadge{}
		name, hasName := entry["name"]
		url, hasURL := entry["url"]
		if !hasName || !hasURL {
			return sectionError("readme.badges", "badge %d missing required fields: name and url are required", i)
		}
		if badge.Name, ok = name.(string); !ok {
			return sectionError("readme.badges", "badge %d: name must be a string", i)
		}
		if badge.URL, ok = url.(string); !ok {
			return sectionError("readme.badges", "badge %d: url must be a string", i)
		}
		if link, present := entry["link"]; present {
			if badge.Link, ok = link.(string); !ok {
				return sectionError("readme.badges", "badge %d: link must be a string", i)
			}
		}
		out.Badges = append(out.Badges, badge)
	}
	return nil
}

// stringField reads an optional string field from a section, returning
// the default when absent and a section error when present with the
// wrong type.
func stringField(section string, m map[string]interface{}, key, def string) (string, error) {
	raw, present := m[key]
	if !present {
		return def, nil
	}
	str, ok := raw.(string)
	if !ok {
		return "", sectionError(section, "field %q must be a string", key)
	}
	return str, nil
}

func stringList(section string, raw interface{}) ([]string, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, sectionError(section, "expected list")
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		str, ok := item.(string)
		if !ok {
			return nil, sectionError(section, "entry %d must be a string", i)
		}
		out = append(out, str)
	}
	return out, nil
}

func sectionError(section, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrMetadataSection, "invalid %s section: "+format,
		append([]interface{}{section}, args...)...)
}
