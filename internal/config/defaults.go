package config

// CurrentVersion is the configuration schema version written by Init.
const CurrentVersion = "1.0"

// Defaults mirrored from the layout the build has always used.
const (
	DefaultIssuesDir         = "issues"
	DefaultOutputDir         = "public"
	DefaultTemplatesDir      = "templates"
	DefaultContentDir        = "content"
	DefaultAssetsDir         = "assets"
	DefaultThumbnailWidth    = 200
	DefaultOptimizedMaxWidth = 2560
	DefaultOptimizedQuality  = 85
	DefaultPreviewPort       = 1316
	DefaultSiteTitle         = "Archive"
)

// A build is written to <output>_stage and promoted over the output root on
// success; the previous root is parked at <output>.prev during the swap.
const (
	StagingSuffix = "_stage"
	BackupSuffix  = ".prev"
)

// applyDefaults fills every zero value.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Site.Title == "" {
		cfg.Site.Title = DefaultSiteTitle
	}

	p := &cfg.Paths
	if p.Issues == "" {
		p.Issues = DefaultIssuesDir
	}
	if p.Output == "" {
		p.Output = DefaultOutputDir
	}
	if p.Templates == "" {
		p.Templates = DefaultTemplatesDir
	}
	if p.Content == "" {
		p.Content = DefaultContentDir
	}
	if p.Assets == "" {
		p.Assets = DefaultAssetsDir
	}

	img := &cfg.Images
	if img.ThumbnailWidth == 0 {
		img.ThumbnailWidth = DefaultThumbnailWidth
	}
	if img.OptimizedMaxWidth == 0 {
		img.OptimizedMaxWidth = DefaultOptimizedMaxWidth
	}
	if img.OptimizedQuality == 0 {
		img.OptimizedQuality = DefaultOptimizedQuality
	}
	if img.OptimizedFormat == "" {
		img.OptimizedFormat = ImageFormatWebP
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.Preview.Port == 0 {
		cfg.Preview.Port = DefaultPreviewPort
	}
}
