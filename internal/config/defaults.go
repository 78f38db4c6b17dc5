package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Logger LoggerConfig `json:"logger"`
	Files  FilesConfig  `json:"files"`
	UI     UIConfig     `json:"ui"`
}

type LoggerConfig struct {
	Level  string `json:"level"`  // Default: "info"
	Format string `json:"format"` // "text" or "json"
	Output string `json:"output"` // "stdout", "stderr" or a file path
}

type FilesConfig struct {
	// Reading
	MaxFileSize      int64  `json:"max_file_size"`     // Default: 20 * 1024 * 1024 (20MB)
	FallbackEncoding string `json:"fallback_encoding"` // Empty means the locale encoding

	// Scanning
	ScanPattern string `json:"scan_pattern"` // Default: "*readme*.txt"
	ListFile    string `json:"list_file"`    // Default: "all_readme_files.lst" in the config dir

	// Creation
	ReadmeName     string `json:"readme_name"`     // Default: "readme.txt"
	TemplateDir    string `json:"template_dir"`    // Default: "templates" in the config dir
	ActiveTemplate string `json:"active_template"` // Default: "readme_template.txt"
}

type UIConfig struct {
	ListWidth      int  `json:"list_width"`      // Default: 40
	RenderMarkdown bool `json:"render_markdown"` // Default: false
}

const (
	DefaultReadmeName   = "readme.txt"
	DefaultTemplateName = "readme_template.txt"
	DefaultListFile     = "all_readme_files.lst"
	DefaultScanPattern  = "*readme*.txt"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Files: FilesConfig{
			MaxFileSize:    20 * 1024 * 1024,
			ScanPattern:    DefaultScanPattern,
			ReadmeName:     DefaultReadmeName,
			ActiveTemplate: DefaultTemplateName,
		},
		UI: UIConfig{
			ListWidth: 40,
		},
	}
}
