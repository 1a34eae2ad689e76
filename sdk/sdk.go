// Package sdk locates the platform SDK passed to the compiler with -sdk.
package sdk

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/teranos/codecomplete/config"
	"github.com/teranos/codecomplete/errors"
	"github.com/teranos/codecomplete/logger"
)

// EnvVar is the environment variable consulted before running discovery
const EnvVar = config.SDKRootEnv

// Discoverer returns the filesystem path of the platform SDK.
type Discoverer interface {
	Path(ctx context.Context) (string, error)
}

// Static is a fixed SDK path.
type Static string

// Path returns the fixed path
func (s Static) Path(context.Context) (string, error) {
	if s == "" {
		return "", errors.Wrap(errors.ErrSDKNotFound, "empty sdk path")
	}
	return string(s), nil
}

// FromEnv reads the SDK path from SDKROOT.
type FromEnv struct {
	// Lookup defaults to os.LookupEnv
	Lookup func(string) (string, bool)
}

// Path returns the value of SDKROOT
func (e FromEnv) Path(context.Context) (string, error) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvVar); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}
	return "", errors.Wrapf(errors.ErrSDKNotFound, "%s is not set", EnvVar)
}

// runFunc executes argv and returns its stdout
type runFunc func(ctx context.Context, argv []string) ([]byte, error)

// Command discovers the SDK path by running an external tool and taking its
// trimmed standard output.
type Command struct {
	argv []string
	run  runFunc
}

// NewCommand parses a shell-quoted command line such as
// "xcrun --show-sdk-path --sdk macosx".
func NewCommand(cmdline string) (*Command, error) {
	argv, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid sdk discovery command %q", cmdline)
	}
	if len(argv) == 0 {
		return nil, errors.New("sdk discovery command is empty")
	}
	return &Command{argv: argv, run: runExec}, nil
}

// Argv returns the parsed command line
func (c *Command) Argv() []string {
	return append([]string(nil), c.argv...)
}

// Path runs the discovery command
func (c *Command) Path(ctx context.Context) (string, error) {
	log := logger.ComponentLogger("sdk")
	log.Debugw("Discovering SDK", logger.FieldBinary, c.argv[0], logger.FieldArguments, c.argv[1:])

	out, err := c.run(ctx, c.argv)
	if err != nil {
		return "", errors.WithHintf(
			errors.Mark(errors.Wrapf(err, "%s failed", c.argv[0]), errors.ErrSDKNotFound),
			"set %s or sdk.path in codecomplete.toml", EnvVar)
	}

	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", errors.Wrapf(errors.ErrSDKNotFound, "%s printed no path", c.argv[0])
	}

	log.Debugw("Discovered SDK", logger.FieldSDK, path)
	return path, nil
}

func runExec(ctx context.Context, argv []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.WithDetail(err, msg)
		}
		return nil, err
	}
	return out, nil
}

// New picks a Discoverer from configuration: a fixed sdk.path wins, then
// SDKROOT, then the discovery command.
func New(cfg config.SDKConfig) (Discoverer, error) {
	if cfg.Path != "" {
		return Static(cfg.Path), nil
	}
	if v, ok := os.LookupEnv(EnvVar); ok && strings.TrimSpace(v) != "" {
		return FromEnv{}, nil
	}
	return NewCommand(cfg.DiscoverCommand)
}
