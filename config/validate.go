package config

import (
	"os"
	"strings"

	"github.com/teranos/codecomplete/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Service.Command) == "" {
		return errors.New("service.command cannot be empty")
	}

	if c.Service.LanguageID == "" {
		return errors.New("service.language_id cannot be empty")
	}

	// 0 = wait for the service to exit without a bound, negative = invalid
	if c.Service.ShutdownTimeoutSeconds < 0 {
		return errors.Newf("service.shutdown_timeout_seconds must be >= 0, got %d", c.Service.ShutdownTimeoutSeconds)
	}

	// Discovery is only needed when neither sdk.path nor SDKROOT names an SDK
	if c.SDK.Path == "" && strings.TrimSpace(os.Getenv(SDKRootEnv)) == "" &&
		strings.TrimSpace(c.SDK.DiscoverCommand) == "" {
		return errors.WithHint(
			errors.New("sdk.discover_command cannot be empty when sdk.path is not set"),
			"set sdk.path or SDKROOT to a platform SDK directory")
	}

	if c.Build.Manifest == "" {
		return errors.New("build.manifest cannot be empty")
	}

	if c.Source.SyntheticSuffix != "" && !strings.HasPrefix(c.Source.SyntheticSuffix, ".") {
		return errors.Newf("source.synthetic_suffix must start with '.', got %q", c.Source.SyntheticSuffix)
	}

	switch c.Output.Format {
	case FormatJSON, FormatText:
	default:
		return errors.Newf("output.format must be %q or %q, got %q", FormatJSON, FormatText, c.Output.Format)
	}

	return nil
}
