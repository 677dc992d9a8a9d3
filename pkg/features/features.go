// Package features defines the closed set of installable features, the
// static dependency graph between them, and the resolver that expands a
// requested feature set into its transitive closure.
package features

import (
	"sort"

	"github.com/bsp-cli/bsp/pkg/errors"
)

// Name identifies a feature in the closed enumeration.
type Name string

const (
	// Base is the baseline feature, present in every resolution.
	Base    Name = "base"
	CLI     Name = "cli"
	Textual Name = "textual"
	ParAI   Name = "par-ai-core"
)

// packages maps each feature to the packages it installs.
var packages = map[Name][]string{
	Base:    {"python-dotenv", "asyncio", "pydantic-core", "pydantic", "orjson", "rich", "requests"},
	CLI:     {"prompt-toolkit", "typer", "clipman"},
	Textual: {"textual", "textual-dev", "clipman"},
	ParAI:   {"par-ai-core"},
}

// deps maps each feature to its direct dependencies. The graph is
// acyclic by construction; ValidateGraph checks membership, not cycles.
var deps = map[Name][]Name{
	CLI:     {Base},
	Textual: {Base, CLI},
	ParAI:   {Base},
}

// IsKnown reports whether id is a member of the feature enumeration.
func IsKnown(id Name) bool {
	_, ok := packages[id]
	return ok
}

// Packages returns the package list for a feature. The second return
// is false for unknown features.
func Packages(id Name) ([]string, bool) {
	pkgs, ok := packages[id]
	return pkgs, ok
}

// Deps returns the direct dependencies of a feature.
func Deps(id Name) []Name {
	return deps[id]
}

// All returns every declared feature in stable order (base first, then
// lexicographic).
func All() []Name {
	names := make([]Name, 0, len(packages))
	for id := range packages {
		names = append(names, id)
	}
	return sortNames(names)
}

// ValidateGraph walks every declared dependency edge and fails when
// any feature or dependency identifier is not a declared feature. Run
// once at process start; a failure here means the static tables are
// malformed and the process cannot proceed.
func ValidateGraph() error {
	for feature, featureDeps := range deps {
		if !IsKnown(feature) {
			return errors.Newf(errors.ErrGraphInvalid,
				"dependency definition references unknown feature: %s", feature)
		}
		for _, dep := range featureDeps {
			if !IsKnown(dep) {
				return errors.Newf(errors.ErrGraphInvalid,
					"feature %s has unknown dependency: %s", feature, dep)
			}
		}
	}
	return nil
}

// Resolve expands the requested features into their transitive closure
// over the dependency graph. Base is unconditionally included, even
// for a nil or empty request. The result is an unordered set; use
// Sorted for deterministic presentation.
func Resolve(requested []Name) map[Name]bool {
	resolved := map[Name]bool{Base: true}

	if len(requested) == 0 {
		return resolved
	}

	queue := make([]Name, 0, len(requested))
	for _, id := range requested {
		resolved[id] = true
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		feature := queue[0]
		queue = queue[1:]
		for _, dep := range deps[feature] {
			if !resolved[dep] {
				resolved[dep] = true
				queue = append(queue, dep)
			}
		}
	}

	return resolved
}

// Sorted flattens a resolved set into presentation order: base first,
// then lexicographic.
func Sorted(set map[Name]bool) []Name {
	names := make([]Name, 0, len(set))
	for id := range set {
		names = append(names, id)
	}
	return sortNames(names)
}

func sortNames(names []Name) []Name {
	sort.Slice(names, func(i, j int) bool {
		if names[i] == Base {
			return names[j] != Base
		}
		if names[j] == Base {
			return false
		}
		return names[i] < names[j]
	})
	return names
}
