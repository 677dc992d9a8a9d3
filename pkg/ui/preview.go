package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/bsp-cli/bsp/pkg/metadata"
)

// RenderMarkdown converts markdown to rich terminal output, falling
// back to the raw text when rendering is unavailable or output is
// unstyled.
func (c *Console) RenderMarkdown(content string) string {
	if !c.styled() {
		return content
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// PreviewMetadata prints a summary of loaded metadata for preview mode.
func (c *Console) PreviewMetadata(meta *metadata.TemplateMetadata) {
	fmt.Fprintln(c.out, c.heading("Metadata loaded:"))
	if meta.Project.Description != "" {
		fmt.Fprintf(c.out, "  Description: %s\n", meta.Project.Description)
	}
	if meta.Author.Name != "" {
		fmt.Fprintf(c.out, "  Author: %s <%s>\n", meta.Author.Name, meta.Author.Email)
	}
	if meta.Maintainer != nil {
		maintainer := meta.EffectiveMaintainer()
		fmt.Fprintf(c.out, "  Maintainer: %s <%s>\n", maintainer.Name, maintainer.Email)
	}
	if len(meta.Packages) > 0 {
		fmt.Fprintf(c.out, "  Required packages: %s\n", strings.Join(meta.Packages, ", "))
	}
	if len(meta.Environment) > 0 {
		fmt.Fprintf(c.out, "  Environment keys: %d\n", len(meta.Environment))
	}
}
