// Package config loads codecomplete configuration from defaults, TOML files
// and CODECOMPLETE_* environment variables using Viper.
package config

// Config represents the codecomplete configuration
type Config struct {
	Service ServiceConfig `mapstructure:"service" toml:"service" json:"service" yaml:"service"`
	SDK     SDKConfig     `mapstructure:"sdk" toml:"sdk" json:"sdk" yaml:"sdk"`
	Build   BuildConfig   `mapstructure:"build" toml:"build" json:"build" yaml:"build"`
	Source  SourceConfig  `mapstructure:"source" toml:"source" json:"source" yaml:"source"`
	Output  OutputConfig  `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
}

// ServiceConfig configures the external analysis service process
type ServiceConfig struct {
	Command                string   `mapstructure:"command" toml:"command" json:"command" yaml:"command"`                                                             // Executable speaking LSP over stdio (default: sourcekit-lsp)
	Args                   []string `mapstructure:"args" toml:"args" json:"args" yaml:"args"`                                                                         // Extra arguments for the executable
	Compiler               string   `mapstructure:"compiler" toml:"compiler" json:"compiler" yaml:"compiler"`                                                         // First element of the compilation command sent to the service (default: swiftc)
	LanguageID             string   `mapstructure:"language_id" toml:"language_id" json:"language_id" yaml:"language_id"`                                             // LSP language identifier for opened documents (default: swift)
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" toml:"shutdown_timeout_seconds" json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"` // Bound on shutdown/exit after the reply (0 = wait forever)
}

// SDKConfig configures platform SDK discovery
type SDKConfig struct {
	Path            string `mapstructure:"path" toml:"path" json:"path" yaml:"path"`                                                 // Fixed SDK path; skips discovery when set
	DiscoverCommand string `mapstructure:"discover_command" toml:"discover_command" json:"discover_command" yaml:"discover_command"` // Shell-quoted command printing the SDK path
}

// BuildConfig configures build-system module lookup
type BuildConfig struct {
	PackagePath string `mapstructure:"package_path" toml:"package_path" json:"package_path" yaml:"package_path"` // Package root containing the build manifest
	Manifest    string `mapstructure:"manifest" toml:"manifest" json:"manifest" yaml:"manifest"`                 // Manifest path relative to the package root
}

// SourceConfig configures source resolution
type SourceConfig struct {
	SyntheticSuffix string `mapstructure:"synthetic_suffix" toml:"synthetic_suffix" json:"synthetic_suffix" yaml:"synthetic_suffix"` // Suffix for generated paths when only text is given
}

// OutputConfig configures result rendering
type OutputConfig struct {
	Format string `mapstructure:"format" toml:"format" json:"format" yaml:"format"` // json or text
}

// Output formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// File and directory names
const (
	ProjectConfigName = "codecomplete.toml"
	UserConfigDir     = ".codecomplete"
	UserConfigName    = "config.toml"
	EnvPrefix         = "CODECOMPLETE"

	// SDKRootEnv names a platform SDK directory ahead of sdk.discover_command
	SDKRootEnv = "SDKROOT"
)
