package langserver

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/teranos/codecomplete/errors"
	"github.com/teranos/codecomplete/logger"
	"github.com/teranos/codecomplete/version"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Client is a JSON-RPC session with one language server
type Client struct {
	conn   jsonrpc2.Conn
	cmd    *exec.Cmd // nil when attached to an existing stream
	logger *zap.SugaredLogger

	stderrDone chan struct{}

	mu     sync.Mutex
	closed bool
}

// pipe joins the server's stdout and stdin into one stream
type pipe struct {
	io.ReadCloser
	io.WriteCloser
}

func (p *pipe) Close() error {
	return multierr.Append(p.WriteCloser.Close(), p.ReadCloser.Close())
}

// Start spawns command with args and attaches a Client to its stdio.
func Start(ctx context.Context, command string, args []string, log *zap.SugaredLogger) (*Client, error) {
	cmd := exec.Command(command, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.ServiceUnavailable(err, "failed to create stdin pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.ServiceUnavailable(err, "failed to create stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.ServiceUnavailable(err, "failed to create stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.WithHintf(
			errors.ServiceUnavailable(err, "failed to start analysis service"),
			"install %s or point service.command at a language server", command)
	}

	log.Debugw("Analysis service started",
		logger.FieldBinary, command,
		logger.FieldArguments, args,
		logger.FieldPID, cmd.Process.Pid)

	c := Attach(ctx, &pipe{ReadCloser: stdout, WriteCloser: stdin}, log)
	c.cmd = cmd

	// Drain stderr so the server never blocks writing to it
	c.stderrDone = make(chan struct{})
	go c.stderrLoop(stderr)

	return c, nil
}

// Attach runs a Client over an already connected stream.
func Attach(ctx context.Context, rwc io.ReadWriteCloser, log *zap.SugaredLogger) *Client {
	c := &Client{
		conn:   jsonrpc2.NewConn(jsonrpc2.NewStream(rwc)),
		logger: log,
	}
	c.conn.Go(ctx, c.handle)
	return c
}

// handle answers server-initiated traffic. Requests such as
// window/workDoneProgress/create get a null result so the server never
// waits on us.
func (c *Client) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	method := req.Method()
	if method == protocol.MethodWindowLogMessage || method == protocol.MethodWindowShowMessage {
		var msg protocol.LogMessageParams
		if err := json.Unmarshal(req.Params(), &msg); err == nil {
			c.logger.Debugw("Server message", logger.FieldMethod, method, "message", msg.Message)
			return reply(ctx, nil, nil)
		}
	}
	c.logger.Debugw("Server request", logger.FieldMethod, method, logger.FieldSize, len(req.Params()))
	return reply(ctx, nil, nil)
}

// call issues one request. Call alone does not notice a dead connection,
// so the request context is also cancelled when the stream closes.
func (c *Client) call(ctx context.Context, method string, params, result interface{}) error {
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.conn.Done():
			cancel()
		case <-callCtx.Done():
		}
	}()

	if _, err := c.conn.Call(callCtx, method, params, result); err != nil {
		select {
		case <-c.conn.Done():
			cause := c.conn.Err()
			if cause == nil {
				cause = errors.New("connection closed")
			}
			return errors.ServiceUnavailable(cause, method+": analysis service connection lost")
		default:
		}
		return errors.ServiceUnavailable(err, method+" failed")
	}
	return nil
}

func (c *Client) notify(ctx context.Context, method string, params interface{}) error {
	if err := c.conn.Notify(ctx, method, params); err != nil {
		return errors.ServiceUnavailable(err, method+" notification failed")
	}
	return nil
}

// Initialize establishes the LSP session rooted at root and returns the
// server's self-reported name, if any.
func (c *Client) Initialize(ctx context.Context, root string) (string, error) {
	rootURI := uri.File(root)

	params := &protocol.InitializeParams{
		ProcessID:  int32(os.Getpid()),
		ClientInfo: version.Get().ClientInfo(),
		RootURI:    rootURI,
		WorkspaceFolders: []protocol.WorkspaceFolder{
			{URI: string(rootURI), Name: filepath.Base(root)},
		},
		Capabilities: protocol.ClientCapabilities{
			TextDocument: &protocol.TextDocumentClientCapabilities{
				Completion: &protocol.CompletionTextDocumentClientCapabilities{
					CompletionItem: &protocol.CompletionTextDocumentClientCapabilitiesItem{
						DocumentationFormat: []protocol.MarkupKind{protocol.PlainText, protocol.Markdown},
						DeprecatedSupport:   true,
						TagSupport: &protocol.CompletionTextDocumentClientCapabilitiesItemTagSupport{
							ValueSet: []protocol.CompletionItemTag{protocol.CompletionItemTagDeprecated},
						},
					},
				},
			},
		},
	}

	var result json.RawMessage
	if err := c.call(ctx, protocol.MethodInitialize, params, &result); err != nil {
		return "", errors.Wrapf(err, "initialize failed for workspace %s", root)
	}

	if err := c.notify(ctx, protocol.MethodInitialized, &protocol.InitializedParams{}); err != nil {
		return "", err
	}

	var init struct {
		ServerInfo *protocol.ServerInfo `json:"serverInfo"`
	}
	if json.Unmarshal(result, &init) == nil && init.ServerInfo != nil {
		return init.ServerInfo.Name, nil
	}
	return "", nil
}

// CompileCommand is the per-file compilation database entry sent through
// workspace/didChangeConfiguration
type CompileCommand struct {
	WorkingDirectory   string   `json:"workingDirectory"`
	CompilationCommand []string `json:"compilationCommand"`
}

// SetCompileCommand tells the server how path is compiled.
func (c *Client) SetCompileCommand(ctx context.Context, path string, cc CompileCommand) error {
	settings := map[string]interface{}{
		"compilationDatabaseChanges": map[string]CompileCommand{path: cc},
	}
	return c.notify(ctx, protocol.MethodWorkspaceDidChangeConfiguration, &protocol.DidChangeConfigurationParams{
		Settings: settings,
	})
}

// DidOpen hands the document text to the server.
func (c *Client) DidOpen(ctx context.Context, path, languageID, text string) error {
	return c.notify(ctx, protocol.MethodTextDocumentDidOpen, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri.File(path),
			LanguageID: protocol.LanguageIdentifier(languageID),
			Version:    1,
			Text:       text,
		},
	})
}

// Completion requests completions at pos and returns the raw result.
func (c *Client) Completion(ctx context.Context, path string, pos protocol.Position) (json.RawMessage, error) {
	params := &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri.File(path)},
			Position:     pos,
		},
		Context: &protocol.CompletionContext{TriggerKind: protocol.CompletionTriggerKindInvoked},
	}

	var result json.RawMessage
	if err := c.call(ctx, protocol.MethodTextDocumentCompletion, params, &result); err != nil {
		return nil, errors.Wrapf(err, "completion at %s:%d:%d", path, pos.Line, pos.Character)
	}
	return result, nil
}

// Shutdown ends the session: shutdown request, exit notification, stream
// close, then waiting for the process to exit. ctx bounds the whole
// sequence.
func (c *Client) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	var err error
	if callErr := c.call(ctx, protocol.MethodShutdown, nil, nil); callErr != nil {
		err = multierr.Append(err, callErr)
	} else {
		err = multierr.Append(err, c.notify(ctx, protocol.MethodExit, nil))
	}
	err = multierr.Append(err, ignoreClosed(c.conn.Close()))

	if c.cmd == nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		<-c.stderrDone
		done <- c.cmd.Wait()
	}()

	select {
	case waitErr := <-done:
		if waitErr != nil {
			err = multierr.Append(err, errors.Wrap(waitErr, "analysis service exited with error"))
		}
		return err
	case <-ctx.Done():
		return multierr.Append(err, errors.Wrap(ctx.Err(), "timeout waiting for analysis service to exit"))
	}
}

// ForceKill terminates the server process
func (c *Client) ForceKill() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	_ = c.conn.Close()
	if c.cmd == nil || c.cmd.Process == nil {
		return nil
	}
	if err := c.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return errors.Wrapf(err, "failed to kill analysis service (pid %d)", c.cmd.Process.Pid)
	}
	return nil
}

// stderrLoop forwards server stderr to the debug log
func (c *Client) stderrLoop(stderr io.Reader) {
	defer close(c.stderrDone)

	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			c.logger.Debugw("Service stderr", "line", line)
		}
	}
}

// ignoreClosed drops errors from closing an already closed pipe
func ignoreClosed(err error) error {
	if errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return nil
	}
	return err
}
