package config

import (
	"github.com/spf13/viper"
)

// Default values
const (
	DefaultServiceCommand         = "sourcekit-lsp"
	DefaultCompiler               = "swiftc"
	DefaultLanguageID             = "swift"
	DefaultShutdownTimeoutSeconds = 5
	DefaultDiscoverCommand        = "xcrun --show-sdk-path --sdk macosx"
	DefaultManifest               = ".build/debug.yaml"
	DefaultSyntheticSuffix        = ".swift"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Analysis service
	v.SetDefault("service.command", DefaultServiceCommand)
	v.SetDefault("service.args", []string{})
	v.SetDefault("service.compiler", DefaultCompiler)
	v.SetDefault("service.language_id", DefaultLanguageID)
	v.SetDefault("service.shutdown_timeout_seconds", DefaultShutdownTimeoutSeconds)

	// SDK discovery (empty path = discover)
	v.SetDefault("sdk.path", "")
	v.SetDefault("sdk.discover_command", DefaultDiscoverCommand)

	// Build-system module lookup
	v.SetDefault("build.package_path", ".")
	v.SetDefault("build.manifest", DefaultManifest)

	v.SetDefault("source.synthetic_suffix", DefaultSyntheticSuffix)

	v.SetDefault("output.format", FormatJSON)
}
