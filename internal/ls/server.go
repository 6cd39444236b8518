package ls

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/zuul-tools/zuul-ls/internal/config"
	"github.com/zuul-tools/zuul-ls/internal/logging"
	"github.com/zuul-tools/zuul-ls/internal/ls/token"
	zruntime "github.com/zuul-tools/zuul-ls/internal/runtime"
	"github.com/zuul-tools/zuul-ls/internal/search"
)

// Server answers language server requests for one workspace.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	docs   *Documents
	index  atomic.Pointer[SymbolIndex]

	mu      sync.Mutex
	workDir string

	// exit is called on the exit notification.
	exit func()
}

// NewServer creates a server. workDir is used until the client sends a
// root in initialize.
func NewServer(workDir string, cfg *config.Config, logger *slog.Logger, exit func()) *Server {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if exit == nil {
		exit = func() {}
	}
	return &Server{
		cfg:     cfg,
		logger:  logger,
		docs:    NewDocuments(),
		workDir: workDir,
		exit:    exit,
	}
}

// WorkDir returns the workspace root.
func (s *Server) WorkDir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workDir
}

// Index returns the symbol index, or nil before initialized.
func (s *Server) Index() *SymbolIndex {
	return s.index.Load()
}

func (s *Server) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	root := ""
	if params.RootURI != "" {
		root = uri.URI(params.RootURI).Filename()
	} else if params.RootPath != "" {
		root = params.RootPath
	}
	if root != "" {
		s.mu.Lock()
		s.workDir = root
		s.mu.Unlock()
	}
	s.logger.Info("initialize", "root", s.WorkDir())

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			DefinitionProvider:      true,
			WorkspaceSymbolProvider: true,
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "zuul-ls",
			Version: zruntime.Version + " " + runtime.Version(),
		},
	}, nil
}

// Initialized scans the workspace and builds the symbol index. The
// index is not rebuilt afterwards.
func (s *Server) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	ctx = logging.WithLogger(ctx, s.logger)
	ws, err := search.Scan(ctx, s.WorkDir(), s.cfg)
	if err != nil {
		s.logger.Error("workspace scan failed", "error", err)
		s.index.Store(NewSymbolIndex())
		return nil
	}
	idx := BuildIndex(ws)
	s.index.Store(idx)
	s.logger.Info("index built", "jobs", len(idx.Jobs), "roles", len(idx.Roles), "templates", len(idx.ProjectTemplates))
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown")
	return nil
}

func (s *Server) Exit(ctx context.Context) error {
	s.exit()
	return nil
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.Set(params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		last := params.ContentChanges[len(params.ContentChanges)-1]
		s.docs.Set(params.TextDocument.URI, last.Text)
	}
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.Close(params.TextDocument.URI)
	return nil
}

// Definition returns a single location, a list of locations or nil.
func (s *Server) Definition(ctx context.Context, params *protocol.DefinitionParams) (any, error) {
	idx := s.Index()
	if idx == nil {
		return nil, nil
	}

	docURI := params.TextDocument.URI
	path := uri.URI(docURI).Filename()
	text, ok := s.docs.Get(docURI)
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil
		}
		text = string(data)
	}

	pos := token.Position{Line: int(params.Position.Line), Col: int(params.Position.Character)}
	tok, ok := token.Classify(path, text, pos)
	if !ok {
		return nil, nil
	}
	s.logger.Debug("definition", "path", path, "token", tok.Value, "type", tok.Type.String())

	locs := Definition(idx, path, text, tok)
	switch len(locs) {
	case 0:
		return nil, nil
	case 1:
		return locs[0], nil
	}
	return locs, nil
}

func (s *Server) Symbols(ctx context.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	idx := s.Index()
	if idx == nil {
		return nil, nil
	}
	return WorkspaceSymbols(idx, params.Query), nil
}

// Handler dispatches JSON-RPC requests to the server methods.
func (s *Server) Handler() jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		s.logger.Debug("request", "method", req.Method())
		switch req.Method() {
		case "initialize":
			var params protocol.InitializeParams
			if err := json.Unmarshal(req.Params(), &params); err != nil {
				return reply(ctx, nil, err)
			}
			result, err := s.Initialize(ctx, &params)
			return reply(ctx, result, err)

		case "initialized":
			var params protocol.InitializedParams
			if err := unmarshalOptional(req.Params(), &params); err != nil {
				return reply(ctx, nil, err)
			}
			return reply(ctx, nil, s.Initialized(ctx, &params))

		case "shutdown":
			return reply(ctx, nil, s.Shutdown(ctx))

		case "exit":
			return s.Exit(ctx)

		case "textDocument/didOpen":
			var params protocol.DidOpenTextDocumentParams
			if err := json.Unmarshal(req.Params(), &params); err != nil {
				return reply(ctx, nil, err)
			}
			return reply(ctx, nil, s.DidOpen(ctx, &params))

		case "textDocument/didChange":
			var params protocol.DidChangeTextDocumentParams
			if err := json.Unmarshal(req.Params(), &params); err != nil {
				return reply(ctx, nil, err)
			}
			return reply(ctx, nil, s.DidChange(ctx, &params))

		case "textDocument/didClose":
			var params protocol.DidCloseTextDocumentParams
			if err := json.Unmarshal(req.Params(), &params); err != nil {
				return reply(ctx, nil, err)
			}
			return reply(ctx, nil, s.DidClose(ctx, &params))

		case "textDocument/didSave":
			return reply(ctx, nil, nil)

		case "textDocument/definition":
			var params protocol.DefinitionParams
			if err := json.Unmarshal(req.Params(), &params); err != nil {
				return reply(ctx, nil, err)
			}
			result, err := s.Definition(ctx, &params)
			return reply(ctx, result, err)

		case "workspace/symbol":
			var params protocol.WorkspaceSymbolParams
			if err := json.Unmarshal(req.Params(), &params); err != nil {
				return reply(ctx, nil, err)
			}
			result, err := s.Symbols(ctx, &params)
			return reply(ctx, result, err)

		default:
			return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
		}
	}
}

// unmarshalOptional accepts absent params.
func unmarshalOptional(data json.RawMessage, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, v)
}
