package commands

import (
	"context"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/teranos/codecomplete/arguments"
	"github.com/teranos/codecomplete/buildmanifest"
	"github.com/teranos/codecomplete/completion"
	"github.com/teranos/codecomplete/config"
	"github.com/teranos/codecomplete/errors"
	"github.com/teranos/codecomplete/langserver"
	"github.com/teranos/codecomplete/logger"
	"github.com/teranos/codecomplete/sdk"
	"github.com/teranos/codecomplete/source"
)

// CompleteCmd represents the complete command
var CompleteCmd = &cobra.Command{
	Use:   "complete [--file F | --text T] --offset N [--module M] [-- compiler args...]",
	Short: "Generate code completion options",
	Long: `Generate code completion options at a byte offset of a source file.

The source is read from --file unless --text is given, in which case the text
is used as-is and --file only names the document. Without --file a unique
file name is generated.

Compiler arguments come from one of two places:
  --module M         the named Swift package module's arguments from
                     .build/debug.yaml (run 'swift build' first)
  -- args...         the given arguments, prefixed with "-c <file>" and
                     followed by "-sdk <path>" unless -sdk is already present

Completion candidates are written to stdout, in the order the analysis
service ranked them.

Examples:
  codecomplete complete --file Foo.swift --offset 120
  codecomplete complete --text 'struct Foo { func bar() {} }' --offset 29
  codecomplete complete --file Sources/MyLib/A.swift --offset 80 --module MyLib
  codecomplete complete --file main.swift --offset 10 -- -sdk /custom/sdk -target arm64-apple-macosx13`,
	RunE: runComplete,
}

var (
	completeFile   string
	completeText   string
	completeOffset int64
	completeModule string
	completeFormat string
)

func init() {
	flags := CompleteCmd.Flags()
	flags.StringVar(&completeFile, "file", "", "relative or absolute path of the source file")
	flags.StringVar(&completeText, "text", "", "source text to complete in (skips reading --file)")
	flags.Int64Var(&completeOffset, "offset", 0, "byte offset to generate completion options for")
	flags.StringVar(&completeModule, "module", "", "read compiler arguments from a Swift package module")
	flags.StringVar(&completeModule, "spm-module", "", "alias of --module")
	flags.StringVar(&completeFormat, "format", "", "output format: json or text (default from output.format)")
	_ = flags.MarkHidden("spm-module")
}

// CompleteOptions are the inputs of one completion
type CompleteOptions struct {
	File         string
	Text         string
	Offset       int64
	Module       string
	CompilerArgs []string
	Format       string
}

// Completer runs the completion pipeline: locate the source, resolve
// arguments, send one request and render the normalized reply.
type Completer struct {
	Locator   *source.Locator
	Arguments *arguments.Resolver
	Service   completion.Service
}

// NewCompleter wires a Completer from configuration
func NewCompleter(cfg *config.Config) (*Completer, error) {
	discoverer, err := sdk.New(cfg.SDK)
	if err != nil {
		return nil, err
	}

	modules := buildmanifest.NewResolver(afero.NewOsFs(), cfg.Build.PackagePath, cfg.Build.Manifest)

	svc, err := langserver.NewService(langserver.ConfigFrom(cfg.Service, logger.ComponentLogger("langserver")))
	if err != nil {
		return nil, err
	}

	return &Completer{
		Locator:   source.NewLocator(source.WithSuffix(cfg.Source.SyntheticSuffix)),
		Arguments: arguments.NewResolver(discoverer, modules),
		Service:   svc,
	}, nil
}

// Run writes the completion items for opts to out. Nothing is written
// unless every step succeeds.
func (c *Completer) Run(ctx context.Context, opts CompleteOptions, out io.Writer) error {
	if err := completion.CheckFormat(opts.Format); err != nil {
		return err
	}

	id, err := c.Locator.Resolve(opts.File, opts.Text)
	if err != nil {
		return err
	}

	args, err := c.Arguments.Resolve(ctx, id.Path, arguments.InputFor(opts.Module, opts.CompilerArgs))
	if err != nil {
		return err
	}

	req, err := completion.NewRequest(id, opts.Offset, args)
	if err != nil {
		return err
	}

	raw, err := completion.Send(ctx, c.Service, req)
	if err != nil {
		return err
	}

	res, err := completion.Normalize(raw)
	if err != nil {
		return err
	}

	logger.Debugw("Completion finished", logger.FieldCount, len(res.Items), "incomplete", res.Incomplete)
	return completion.Render(out, opts.Format, res)
}

// compilerArgs returns the positional arguments after "--". Positional
// arguments before it are rejected so a forgotten "--" is not silently
// treated as compiler input.
func compilerArgs(args []string, dash int) ([]string, error) {
	if dash > 0 || (dash < 0 && len(args) > 0) {
		return nil, errors.WithHint(
			errors.InvalidArgument("unexpected argument "+args[0]),
			"compiler arguments must follow '--'")
	}
	if dash < 0 {
		return nil, nil
	}
	return args[dash:], nil
}

func runComplete(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	rawArgs, err := compilerArgs(args, cmd.ArgsLenAtDash())
	if err != nil {
		return err
	}

	format := completeFormat
	if !cmd.Flags().Changed("format") {
		format = cfg.Output.Format
	}
	if err := completion.CheckFormat(format); err != nil {
		return err
	}

	completer, err := NewCompleter(cfg)
	if err != nil {
		return err
	}

	return completer.Run(cmd.Context(), CompleteOptions{
		File:         completeFile,
		Text:         completeText,
		Offset:       completeOffset,
		Module:       completeModule,
		CompilerArgs: rawArgs,
		Format:       format,
	}, cmd.OutOrStdout())
}
