package langserver

import (
	"context"
	"path/filepath"
	"time"

	"github.com/teranos/codecomplete/completion"
	"github.com/teranos/codecomplete/config"
	"github.com/teranos/codecomplete/errors"
	"github.com/teranos/codecomplete/logger"
	"go.uber.org/zap"
)

// Defaults applied by NewService to an empty Config
const (
	DefaultCommand    = "sourcekit-lsp"
	DefaultCompiler   = "swiftc"
	DefaultLanguageID = "swift"
)

// Config holds analysis service configuration
type Config struct {
	Command    string
	Args       []string
	Compiler   string
	LanguageID string
	// ShutdownTimeout bounds shutdown after the reply; 0 waits indefinitely
	ShutdownTimeout time.Duration
	Logger          *zap.SugaredLogger
}

// ConfigFrom converts the [service] configuration section
func ConfigFrom(cfg config.ServiceConfig, log *zap.SugaredLogger) Config {
	return Config{
		Command:         cfg.Command,
		Args:            cfg.Args,
		Compiler:        cfg.Compiler,
		LanguageID:      cfg.LanguageID,
		ShutdownTimeout: time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second,
		Logger:          log,
	}
}

// Service answers completion requests with one language server session
// per request.
type Service struct {
	cfg   Config
	start func(ctx context.Context) (*Client, error)
}

var _ completion.Service = (*Service)(nil)

// NewService creates a Service that spawns cfg.Command for each request
func NewService(cfg Config) (*Service, error) {
	if cfg.Logger == nil {
		return nil, errors.New("analysis service requires a logger")
	}
	if cfg.Command == "" {
		cfg.Command = DefaultCommand
	}
	if cfg.Compiler == "" {
		cfg.Compiler = DefaultCompiler
	}
	if cfg.LanguageID == "" {
		cfg.LanguageID = DefaultLanguageID
	}

	s := &Service{cfg: cfg}
	s.start = func(ctx context.Context) (*Client, error) {
		return Start(ctx, cfg.Command, cfg.Args, cfg.Logger)
	}
	return s, nil
}

// Complete runs initialize, compile-command setup, didOpen and completion
// against a fresh server, then shuts it down. The completion call has no
// deadline of its own; failures after the reply arrived are logged only.
func (s *Service) Complete(ctx context.Context, req completion.Request) (completion.RawReply, error) {
	log := s.cfg.Logger
	start := time.Now()

	client, err := s.start(ctx)
	if err != nil {
		return nil, err
	}
	defer s.shutdown(client)

	root := filepath.Dir(req.SourcePath)
	serverName, err := client.Initialize(ctx, root)
	if err != nil {
		return nil, err
	}
	log.Debugw("Analysis service initialized", logger.FieldService, serverName, logger.FieldPath, root)

	compileCommand := CompileCommand{
		WorkingDirectory:   root,
		CompilationCommand: append([]string{s.cfg.Compiler}, req.Arguments...),
	}
	if err := client.SetCompileCommand(ctx, req.SourcePath, compileCommand); err != nil {
		return nil, err
	}

	if err := client.DidOpen(ctx, req.SourcePath, s.cfg.LanguageID, req.SourceContents); err != nil {
		return nil, err
	}

	pos := req.Position()
	result, err := client.Completion(ctx, req.SourcePath, pos)
	if err != nil {
		return nil, err
	}

	log.Infow("Completion reply received",
		logger.FieldService, serverName,
		logger.FieldPath, req.SourcePath,
		logger.FieldOffset, req.Offset,
		logger.FieldSize, len(result),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return completion.RawReply(result), nil
}

// shutdown tries a graceful shutdown and falls back to killing the process
func (s *Service) shutdown(client *Client) {
	ctx := context.Background()
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}

	if err := client.Shutdown(ctx); err != nil {
		s.cfg.Logger.Warnw("Graceful analysis service shutdown failed, attempting force kill", logger.FieldError, err)
		if killErr := client.ForceKill(); killErr != nil {
			s.cfg.Logger.Errorw("Failed to force kill analysis service", logger.FieldError, killErr)
		}
	}
}
