package config

import (
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
)

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.NewError(ferrors.CategoryValidation, "configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}

	example := Default()
	example.Site = SiteConfig{
		Title:       "My Comic Archive",
		Description: "Every issue, page by page",
		BaseURL:     "https://example.com",
		Logo:        "logo.png",
	}
	example.Build.ReportFile = "build-report.json"
	example.Preview.RescanInterval = "10m"

	data, err := yaml.Marshal(example)
	if err != nil {
		return ferrors.InternalError("marshal example configuration").WithCause(err).Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ferrors.FileSystemError("write configuration file").WithCause(err).
			WithContext("path", path).Build()
	}
	return nil
}
