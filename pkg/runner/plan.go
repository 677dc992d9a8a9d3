package runner

import (
	"github.com/bsp-cli/bsp/pkg/config"
	"github.com/bsp-cli/bsp/pkg/features"
	"github.com/bsp-cli/bsp/pkg/metadata"
)

// FeatureOrigin says why a feature ended up in the install plan.
type FeatureOrigin string

const (
	OriginBase      FeatureOrigin = "always included"
	OriginRequested FeatureOrigin = "requested"
	OriginMetadata  FeatureOrigin = "from metadata"
	OriginDep       FeatureOrigin = "dependency"
)

// Plan is the resolved setup sequence for a new project: the commands
// to run plus the presentation data for the feature summary.
type Plan struct {
	Commands []Command
	// Features holds the resolved closure in presentation order.
	Features []features.Name
	// Origins maps each resolved feature to why it is included.
	Origins map[features.Name]FeatureOrigin
	// DirectPackages are metadata packages entries that are not
	// feature identifiers, installed verbatim.
	DirectPackages []string
}

// RequiredTools are the external tools the plan depends on.
var RequiredTools = []string{"uv", "git"}

// BuildPlan assembles the command sequence: dependency sync, one
// package install per resolved feature (base first), one install for
// the metadata's direct packages, then repository init. Feature
// identifiers found in the metadata packages list join the requested
// set before resolution.
func BuildPlan(requested []features.Name, meta *metadata.TemplateMetadata, cfg *config.Config) Plan {
	var metaFeatures []features.Name
	var direct []string
	if meta != nil {
		metaFeatures, direct = features.ClassifyAll(meta.Packages)
	}

	all := make([]features.Name, 0, len(requested)+len(metaFeatures))
	all = append(all, requested...)
	all = append(all, metaFeatures...)

	resolved := features.Resolve(all)
	sorted := features.Sorted(resolved)

	origins := make(map[features.Name]FeatureOrigin, len(sorted))
	for _, id := range sorted {
		origins[id] = originOf(id, requested, metaFeatures)
	}

	packageTimeout := cfg.PackageTimeout()
	commands := []Command{
		{Name: "uv", Args: []string{"sync", "-U"}, Timeout: packageTimeout, Label: "Synchronizing dependencies"},
	}

	for _, id := range sorted {
		pkgs, ok := features.Packages(id)
		if !ok || len(pkgs) == 0 {
			continue
		}
		commands = append(commands, Command{
			Name:    "uv",
			Args:    append([]string{"add"}, pkgs...),
			Timeout: packageTimeout,
			Label:   "Installing feature " + string(id),
		})
	}

	if len(direct) > 0 {
		commands = append(commands, Command{
			Name:    "uv",
			Args:    append([]string{"add"}, direct...),
			Timeout: packageTimeout,
			Label:   "Installing metadata packages",
		})
	}

	commands = append(commands, Command{
		Name:    "git",
		Args:    []string{"init"},
		Timeout: cfg.GitTimeout(),
		Label:   "Initializing git repository",
	})

	return Plan{
		Commands:       commands,
		Features:       sorted,
		Origins:        origins,
		DirectPackages: direct,
	}
}

func originOf(id features.Name, requested, metaFeatures []features.Name) FeatureOrigin {
	if id == features.Base {
		return OriginBase
	}
	for _, r := range requested {
		if r == id {
			return OriginRequested
		}
	}
	for _, m := range metaFeatures {
		if m == id {
			return OriginMetadata
		}
	}
	return OriginDep
}
