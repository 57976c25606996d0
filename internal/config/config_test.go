package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "issues", cfg.Paths.Issues)
	assert.Equal(t, "public", cfg.Paths.Output)
	assert.Equal(t, "templates", cfg.Paths.Templates)
	assert.Equal(t, "content", cfg.Paths.Content)
	assert.Equal(t, "assets", cfg.Paths.Assets)
	assert.Equal(t, 200, cfg.Images.ThumbnailWidth)
	assert.Equal(t, 2560, cfg.Images.OptimizedMaxWidth)
	assert.Equal(t, 85, cfg.Images.OptimizedQuality)
	assert.Equal(t, ImageFormatWebP, cfg.Images.OptimizedFormat)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, DefaultPreviewPort, cfg.Preview.Port)
	require.NoError(t, Validate(cfg))
}

func TestParse_NormalizesEnumerations(t *testing.T) {
	cfg, err := Parse([]byte(`
version: "1.0"
site:
  title: Night Shift
images:
  optimized_format: " JPG "
  optimized_max_width: 1600
  optimized_quality: 80
logging:
  level: WARNING
  format: Json
`))
	require.NoError(t, err)

	assert.Equal(t, "Night Shift", cfg.Site.Title)
	assert.Equal(t, ImageFormatJPEG, cfg.Images.OptimizedFormat)
	assert.Equal(t, "jpg", cfg.Images.OptimizedFormat.Extension())
	assert.Equal(t, 1600, cfg.Images.OptimizedMaxWidth)
	assert.Equal(t, 80, cfg.Images.OptimizedQuality)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		category ferrors.ErrorCategory
	}{
		{"bad yaml", "site: [", ferrors.CategoryConfig},
		{"unsupported version", `version: "9"`, ferrors.CategoryConfig},
		{"unknown format", "images:\n  optimized_format: avif", ferrors.CategoryConfig},
		{"quality too high", "images:\n  optimized_quality: 101", ferrors.CategoryValidation},
		{"negative thumbnail", "images:\n  thumbnail_width: -5", ferrors.CategoryValidation},
		{"negative concurrency", "images:\n  concurrency: -1", ferrors.CategoryValidation},
		{"bad rescan", "preview:\n  rescan_interval: soon", ferrors.CategoryValidation},
		{"issues inside output", "paths:\n  output: site\n  issues: site/issues", ferrors.CategoryValidation},
		{"output is cwd", "paths:\n  output: .", ferrors.CategoryValidation},
		{"output is parent", "paths:\n  output: ..", ferrors.CategoryValidation},
		{"output inside issues", "paths:\n  output: issues/site", ferrors.CategoryValidation},
		{"output inside templates", "paths:\n  output: templates/out", ferrors.CategoryValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, tt.category), "got %v", err)
		})
	}
}

func TestCheckOutput(t *testing.T) {
	t.Chdir(t.TempDir())
	paths := Default().Paths
	elsewhere := t.TempDir()

	tests := []struct {
		output string
		ok     bool
	}{
		{"public", true},
		{"build/site", true},
		{"../sibling", true},
		{elsewhere, true},
		{".", false},
		{"..", false},
		{"../..", false},
		{string(filepath.Separator), false},
		{"issues", false},
		{"issues/site", false},
		{"templates/out", false},
		{"content", false},
		{"assets/x", false},
	}
	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			err := CheckOutput(paths, tt.output)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation), "got %v", err)
		})
	}
}

func TestCheckOutput_StagingSibling(t *testing.T) {
	t.Chdir(t.TempDir())
	paths := Default().Paths
	paths.Issues = "site" + StagingSuffix + "/issues"

	err := CheckOutput(paths, "site")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paths.issues")
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("ARCHIVE_TITLE", "From Env")
	path := filepath.Join(t.TempDir(), "issuebuilder.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  title: ${ARCHIVE_TITLE}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Site.Title)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoadOrDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultSiteTitle, cfg.Site.Title)

	_, err = LoadOrDefault("explicit.yaml")
	require.Error(t, err)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issuebuilder.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "My Comic Archive", cfg.Site.Title)
	assert.Equal(t, "build-report.json", cfg.Build.ReportFile)
	d, err := cfg.Preview.Rescan()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, d)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	require.NoError(t, Init(path, true))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LoggingConfig{Level: LogLevelWarn, Format: LogFormatJSON}.NewLogger(&buf, false)
	logger.Info("hidden")
	logger.Warn("shown", "issue", "001")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"), "expected JSON output, got %q", out)
	assert.Contains(t, out, `"issue":"001"`)

	buf.Reset()
	LoggingConfig{Level: LogLevelError, Format: LogFormatText}.NewLogger(&buf, true).Debug("verbose wins")
	assert.Contains(t, buf.String(), "verbose wins")
}
