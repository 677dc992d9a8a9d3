// Package create implements the project instantiation pipeline: resolve
// the template source, copy it into place, rename the source subtree,
// rewrite placeholders, apply metadata projectors, and run the setup
// commands.
package create

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bsp-cli/bsp/pkg/config"
	"github.com/bsp-cli/bsp/pkg/errors"
	"github.com/bsp-cli/bsp/pkg/features"
	"github.com/bsp-cli/bsp/pkg/logging"
	"github.com/bsp-cli/bsp/pkg/metadata"
	"github.com/bsp-cli/bsp/pkg/project"
	"github.com/bsp-cli/bsp/pkg/rewrite"
	"github.com/bsp-cli/bsp/pkg/runner"
	"github.com/bsp-cli/bsp/pkg/template"
	"github.com/bsp-cli/bsp/pkg/ui"
)

// DefaultTemplateName is used when no template is specified.
const DefaultTemplateName = "new_cli_project_template"

// MaxProjectNameLength bounds the project name.
const MaxProjectNameLength = 50

// Options holds all inputs for the create command.
type Options struct {
	ProjectName  string
	TemplateName string
	Features     []string
	MetadataFile string
	ListFeatures bool
	Preview      bool

	Config  *config.Config
	Console *ui.Console
}

// Result reports what the command produced.
type Result struct {
	ProjectDir string
	Preview    bool
}

// Run executes the create pipeline. Short-circuit flags (ListFeatures)
// return before any validation of the project name. Preview mode walks
// the whole pipeline without touching the filesystem or running
// commands.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.create")
	logger.Info().
		Str("project", opts.ProjectName).
		Str("template", opts.TemplateName).
		Strs("features", opts.Features).
		Bool("preview", opts.Preview).
		Msg("Creating project")

	console := opts.Console
	cfg := opts.Config

	if err := features.ValidateGraph(); err != nil {
		return nil, err
	}

	var meta *metadata.TemplateMetadata
	if opts.MetadataFile != "" {
		metaPath, err := filepath.Abs(config.ExpandHome(opts.MetadataFile))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid metadata path %s", opts.MetadataFile)
		}
		meta, err = metadata.Load(metaPath)
		if err != nil {
			return nil, err
		}
		console.Success("Loaded metadata from %s", metaPath)
	}

	if opts.Preview {
		console.Step("Preview mode enabled")
		if meta != nil {
			console.PreviewMetadata(meta)
		}
	}

	if opts.ListFeatures {
		console.ListFeatures()
		return &Result{Preview: opts.Preview}, nil
	}

	requested, err := parseFeatures(opts.Features)
	if err != nil {
		return nil, err
	}

	if err := validateProjectName(opts.ProjectName); err != nil {
		return nil, err
	}

	templateName := opts.TemplateName
	if templateName == "" {
		templateName = DefaultTemplateName
	}

	source, err := template.Resolve(ctx, templateName, cfg)
	if err != nil {
		return nil, err
	}
	defer source.Cleanup()

	projectDir, err := projectLocation(opts.ProjectName, source, cfg)
	if err != nil {
		return nil, err
	}

	if err := validateSetup(source, projectDir, cfg, console); err != nil {
		return nil, err
	}

	plan := runner.BuildPlan(requested, meta, cfg)
	console.FeatureSummary(plan)

	if opts.Preview {
		previewReadme(console, meta, opts.ProjectName)
		console.Success("Preview completed for project '%s'", opts.ProjectName)
		return &Result{ProjectDir: projectDir, Preview: true}, nil
	}

	console.Step("Copying template from %s to %s...", source.Dir, projectDir)
	if err := template.CopyTree(source.Dir, projectDir, cfg.IgnoreSet()); err != nil {
		return nil, err
	}

	console.Step("Renaming src/%s to src/%s...", source.Name, opts.ProjectName)
	if err := template.RenameSrcDir(projectDir, source.Name, opts.ProjectName); err != nil {
		return nil, err
	}

	console.Step("Updating files with project name '%s'...", opts.ProjectName)
	if err := rewriteFiles(projectDir, source.Name, opts.ProjectName, meta, cfg, console); err != nil {
		return nil, err
	}

	applyProjectors(projectDir, meta, opts.ProjectName, console)

	console.Step("Running setup commands...")
	if err := runSetup(ctx, projectDir, plan, console); err != nil {
		return nil, err
	}

	console.Success("Project '%s' created successfully!", opts.ProjectName)
	console.Detail("Location: %s", projectDir)
	return &Result{ProjectDir: projectDir}, nil
}

// parseFeatures maps the raw flag values onto the feature enumeration.
func parseFeatures(raw []string) ([]features.Name, error) {
	var parsed []features.Name
	var invalid []string
	for _, entry := range raw {
		id := features.Name(entry)
		if !features.IsKnown(id) {
			invalid = append(invalid, entry)
			continue
		}
		parsed = append(parsed, id)
	}
	if len(invalid) > 0 {
		return nil, errors.Newf(errors.ErrFeatureUnknown,
			"invalid feature(s): %s", strings.Join(invalid, ", "))
	}
	return parsed, nil
}

// validateProjectName enforces the allowed character set and length.
func validateProjectName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "project name is required")
	}
	if len(name) > MaxProjectNameLength {
		return errors.Newf(errors.ErrInvalidInput,
			"project name too long: %d characters (max %d)", len(name), MaxProjectNameLength)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return errors.Newf(errors.ErrInvalidInput,
				"invalid project name: %s (use letters, numbers, underscores, and hyphens)", name)
		}
	}
	// The rune check above accepts a name of only separators; the
	// original rejects those too.
	if strings.Trim(name, "_-") == "" {
		return errors.Newf(errors.ErrInvalidInput, "invalid project name: %s", name)
	}
	return nil
}

// projectLocation picks where the new project lands: next to the
// template for local sources, under the current directory for remote
// ones.
func projectLocation(projectName string, source *template.Source, cfg *config.Config) (string, error) {
	if source.Remote {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
		}
		return filepath.Join(cwd, projectName), nil
	}

	repoDir := cfg.FindRepoDir()
	if repoDir == "" {
		return "", errors.New(errors.ErrTemplateNotFound, "no repository directory found for local template")
	}
	return filepath.Join(repoDir, projectName), nil
}

// validateSetup checks the template and target directories before any
// mutation happens.
func validateSetup(source *template.Source, projectDir string, cfg *config.Config, console *ui.Console) error {
	info, err := os.Stat(source.Dir)
	if err != nil {
		msg := "template directory not found: " + source.Dir
		if !source.Remote {
			if available := availableTemplates(cfg); len(available) > 0 {
				msg += " (available: " + strings.Join(available, ", ") + ")"
			}
		}
		return errors.New(errors.ErrTemplateNotFound, msg)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "template path is not a directory: %s", source.Dir)
	}

	srcAbs, err := filepath.Abs(source.Dir)
	if err == nil {
		if dstAbs, err := filepath.Abs(projectDir); err == nil && srcAbs == dstAbs {
			return errors.Newf(errors.ErrTargetConflict,
				"template and project directories cannot be the same: %s", srcAbs)
		}
	}

	if dstInfo, err := os.Stat(projectDir); err == nil {
		if !dstInfo.IsDir() {
			return errors.Newf(errors.ErrTargetConflict,
				"project location exists as a file: %s", projectDir)
		}
		if entries, err := os.ReadDir(projectDir); err == nil && len(entries) > 0 {
			console.Warn("Project directory already exists and is not empty: %s", projectDir)
			console.Detail("Existing files may be overwritten")
		}
	}

	parent := filepath.Dir(projectDir)
	if _, err := os.Stat(parent); os.IsNotExist(err) {
		if err := os.MkdirAll(parent, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent directory %s", parent)
		}
	}
	return nil
}

// availableTemplates lists template directories in the local repo dir
// for the not-found diagnostic. Hidden directories are skipped.
func availableTemplates(cfg *config.Config) []string {
	repoDir := cfg.FindRepoDir()
	if repoDir == "" {
		return nil
	}
	entries, err := os.ReadDir(repoDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	if len(names) > 5 {
		names = names[:5]
	}
	return names
}

// rewriteFiles applies the replacement table to the configured file
// patterns plus any additional files named by the metadata.
func rewriteFiles(projectDir, templateName, projectName string, meta *metadata.TemplateMetadata, cfg *config.Config, console *ui.Console) error {
	table := rewrite.BuildTable(templateName, projectName, meta)

	patterns := make([]string, 0, len(cfg.Rewrite.Patterns))
	patterns = append(patterns, cfg.Rewrite.Patterns...)
	if meta != nil {
		patterns = append(patterns, meta.AdditionalFiles...)
	}

	files := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		files = append(files, strings.ReplaceAll(pattern, "{project_name}", projectName))
	}

	bar := console.Progress(len(files), "Updating files")
	for _, file := range files {
		if bar != nil {
			bar.UpdateTitle(file)
		}
		if _, err := rewrite.Apply(filepath.Join(projectDir, file), table); err != nil {
			if bar != nil {
				_, _ = bar.Stop()
			}
			return err
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		_, _ = bar.Stop()
	}
	return nil
}

// applyProjectors runs the metadata-driven file patchers. Their errors
// downgrade to warnings: they enhance the project, they do not gate it.
func applyProjectors(projectDir string, meta *metadata.TemplateMetadata, projectName string, console *ui.Console) {
	if meta == nil {
		return
	}
	if err := project.UpdateReadme(projectDir, meta, projectName); err != nil {
		console.Warn("Could not update README.md: %v", err)
	}
	if err := project.UpdatePyproject(projectDir, meta); err != nil {
		console.Warn("Could not update pyproject.toml: %v", err)
	}
	if err := project.UpdateEnvFile(projectDir, meta); err != nil {
		console.Warn("Could not update .env: %v", err)
	}
}

// runSetup checks the required tools and runs the plan's commands in
// order, surfacing captured output when one fails.
func runSetup(ctx context.Context, projectDir string, plan runner.Plan, console *ui.Console) error {
	if err := runner.CheckTools(runner.RequiredTools...); err != nil {
		return err
	}

	r := runner.New(projectDir)
	err := r.RunAll(ctx, plan.Commands, func(command runner.Command) {
		console.Step("%s (%s)", command.Label, command.String())
	})
	if err != nil {
		if bspErr, ok := err.(*errors.Error); ok {
			if stderr, ok := bspErr.Details["stderr"].(string); ok {
				console.Error("Command output:")
				console.ErrorDetails(stderr)
			}
		}
		return err
	}

	console.Success("Dependencies synchronized")
	console.Success("Git repository initialized")
	return nil
}

// previewReadme renders the README block that would be generated, so a
// preview run shows the metadata projection.
func previewReadme(console *ui.Console, meta *metadata.TemplateMetadata, projectName string) {
	if meta == nil {
		return
	}
	block := project.GenerateReadmeContent(meta, projectName)
	if block == "" {
		return
	}
	console.Step("README content to be generated:")
	console.Detail("%s", console.RenderMarkdown(block))
}
