package project

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bsp-cli/bsp/pkg/errors"
	"github.com/bsp-cli/bsp/pkg/logging"
	"github.com/bsp-cli/bsp/pkg/metadata"
)

// UpdateEnvFile appends metadata environment variables to the
// project's .env file. A key is considered present when a literal
// "KEY=" prefix occurs anywhere in the file; present keys are never
// overwritten. Keys are appended in sorted order for deterministic
// output.
func UpdateEnvFile(projectDir string, meta *metadata.TemplateMetadata) error {
	if len(meta.Environment) == 0 {
		return nil
	}

	log := logging.GetLogger("project.env")

	envPath := filepath.Join(projectDir, ".env")
	if _, err := os.Stat(envPath); err != nil {
		log.Warn().Str("path", envPath).Msg(".env file not found, skipping metadata update")
		return nil
	}

	raw, err := os.ReadFile(envPath)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read .env file")
	}
	content := string(raw)
	original := content

	keys := make([]string, 0, len(meta.Environment))
	for key := range meta.Environment {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !strings.Contains(content, key+"=") {
			content += "\n" + key + "=" + meta.Environment[key]
		}
	}

	if content == original {
		return nil
	}

	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write .env file")
	}

	log.Debug().Str("path", envPath).Int("keys", len(keys)).Msg(".env updated with metadata")
	return nil
}
