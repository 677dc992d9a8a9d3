// Package template resolves a template reference into a directory on
// disk. A reference is either the name of a template inside the local
// repository directory, or an HTTPS git URL that gets shallow-cloned
// into a temporary directory.
package template

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bsp-cli/bsp/pkg/config"
	"github.com/bsp-cli/bsp/pkg/errors"
	"github.com/bsp-cli/bsp/pkg/logging"
)

var gitURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://github\.com/[\w\-\.]+/[\w\-\.]+(?:\.git)?/?$`),
	regexp.MustCompile(`^https://gitlab\.com/[\w\-\.]+/[\w\-\.]+(?:\.git)?/?$`),
	regexp.MustCompile(`^https://bitbucket\.org/[\w\-\.]+/[\w\-\.]+(?:\.git)?/?$`),
	regexp.MustCompile(`^https://[\w\-\.]+/[\w\-\./]+(?:\.git)?/?$`),
}

// knownGitHosts get a .git suffix appended during normalization.
var knownGitHosts = map[string]bool{
	"github.com":    true,
	"gitlab.com":    true,
	"bitbucket.org": true,
}

// IsGitURL reports whether the reference looks like a remote git URL
// rather than a local template name.
func IsGitURL(ref string) bool {
	for _, pattern := range gitURLPatterns {
		if pattern.MatchString(ref) {
			return true
		}
	}
	return false
}

// NormalizeGitURL validates a git URL and returns its canonical form:
// trailing slashes stripped, and a .git suffix appended for the known
// public hosts.
func NormalizeGitURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", errors.New(errors.ErrGitURLInvalid, "empty git URL")
	}
	if !IsGitURL(rawURL) {
		return "", errors.Newf(errors.ErrGitURLInvalid, "invalid git URL format: %s", rawURL)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrGitURLInvalid, "cannot parse git URL %s", rawURL)
	}
	if parsed.Scheme == "" {
		return "", errors.Newf(errors.ErrGitURLInvalid, "URL missing scheme: %s", rawURL)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return "", errors.Newf(errors.ErrGitURLInvalid, "unsupported URL scheme: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", errors.Newf(errors.ErrGitURLInvalid, "URL missing hostname: %s", rawURL)
	}

	if knownGitHosts[parsed.Hostname()] {
		path := strings.TrimRight(parsed.Path, "/")
		if !strings.HasSuffix(path, ".git") {
			path += ".git"
		}
		return fmt.Sprintf("%s://%s%s", parsed.Scheme, parsed.Host, path), nil
	}

	return strings.TrimRight(rawURL, "/"), nil
}

// Source is a resolved template directory. Remote sources live in a
// temporary directory that the caller releases with Cleanup.
type Source struct {
	Dir    string
	Name   string
	Remote bool
	temp   bool
}

// Cleanup removes the temporary clone directory, if any. Safe to call
// on local sources and safe to call more than once.
func (s *Source) Cleanup() {
	if !s.temp || s.Dir == "" {
		return
	}
	if err := os.RemoveAll(s.Dir); err != nil {
		logger := logging.GetLogger("template")
		logger.Warn().
			Err(err).
			Str("dir", s.Dir).
			Msg("could not clean up temporary template directory")
	}
	s.Dir = ""
}

// Resolve turns a template reference into a Source. Remote references
// are cloned; local names are joined onto the configured repository
// directory. The returned Source's Name is the directory basename,
// which drives the src/ rename and the rewrite table.
func Resolve(ctx context.Context, ref string, cfg *config.Config) (*Source, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New(errors.ErrInvalidInput, "template name cannot be empty")
	}

	log := logging.GetLogger("template")

	if IsGitURL(ref) {
		gitURL, err := NormalizeGitURL(ref)
		if err != nil {
			return nil, err
		}

		tempDir, err := os.MkdirTemp("", "bsp-template-")
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrDirCreate, "cannot create temporary directory for clone")
		}

		log.Info().Str("url", gitURL).Str("dir", tempDir).Msg("cloning remote template")
		if err := Clone(ctx, gitURL, tempDir, cfg.PackageTimeout()); err != nil {
			if rmErr := os.RemoveAll(tempDir); rmErr != nil {
				log.Warn().Err(rmErr).Str("dir", tempDir).Msg("could not clean up temp directory after failed clone")
			}
			return nil, err
		}

		return &Source{
			Dir:    tempDir,
			Name:   repoName(gitURL),
			Remote: true,
			temp:   true,
		}, nil
	}

	repoDir := cfg.FindRepoDir()
	if repoDir == "" {
		return nil, errors.New(errors.ErrTemplateNotFound,
			"no repository directory found for local template")
	}

	dir := filepath.Join(repoDir, ref)
	log.Debug().Str("dir", dir).Msg("resolved local template")
	return &Source{Dir: dir, Name: ref}, nil
}

// repoName extracts the repository basename from a normalized git URL,
// without the .git suffix.
func repoName(gitURL string) string {
	name := gitURL[strings.LastIndex(gitURL, "/")+1:]
	return strings.TrimSuffix(name, ".git")
}
