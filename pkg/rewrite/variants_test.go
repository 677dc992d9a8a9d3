package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaseVariants(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       Variants
	}{
		{
			name:       "two tokens",
			identifier: "my_project",
			want: Variants{
				Snake:  "my_project",
				Title:  "My Project",
				Kebab:  "my-project",
				Pascal: "MyProject",
			},
		},
		{
			name:       "single token",
			identifier: "app",
			want: Variants{
				Snake:  "app",
				Title:  "App",
				Kebab:  "app",
				Pascal: "App",
			},
		},
		{
			name:       "template default",
			identifier: "new_cli_project_template",
			want: Variants{
				Snake:  "new_cli_project_template",
				Title:  "New Cli Project Template",
				Kebab:  "new-cli-project-template",
				Pascal: "NewCliProjectTemplate",
			},
		},
		{
			name:       "all caps token lowercased by title but kept by pascal",
			identifier: "my_API_tool",
			want: Variants{
				Snake:  "my_API_tool",
				Title:  "My Api Tool",
				Kebab:  "my-API-tool",
				Pascal: "MyAPITool",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CaseVariants(tt.identifier))
		})
	}
}

func TestCaseVariantsIsPure(t *testing.T) {
	first := CaseVariants("my_project")
	second := CaseVariants("my_project")
	assert.Equal(t, first, second)
}
