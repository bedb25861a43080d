// Package remote lets external processes surface messages in the
// modeline. A Server listens on a Unix socket and speaks JSON-RPC 2.0; the
// message notification reuses the LSP window/showMessage shape, so generic
// tooling can talk to it.
package remote

import (
	"context"
	"encoding/json"
	"net"
	"os"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/liushihao456/emacs-mini-modeline/pkg/logutil"
)

var logger = logutil.GetLogger("[remote] ")

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// Handler is the editor-side surface the server calls into. Implementations
// must serialize the calls into the host's event loop themselves; the
// server invokes them from connection goroutines.
type Handler interface {
	// ShowMessage surfaces a message in the modeline.
	ShowMessage(text string)
	// Status returns the currently rendered modeline content, as plain
	// text, and its line count.
	Status() (content string, lines int)
	// Clear blanks the modeline.
	Clear()
}

// StatusResult is the result of the modeline/status method.
type StatusResult struct {
	Content string `json:"content"`
	Lines   int    `json:"lines"`
}

// Server accepts connections on a Unix socket and dispatches requests to a
// Handler.
type Server struct {
	sockpath string
	listener net.Listener
	handler  jsonrpc2.Handler
}

// Listen creates a Server listening on the Unix socket at sockpath and
// starts accepting connections. Stale sockets from a previous run are
// removed first.
func Listen(sockpath string, h Handler) (*Server, error) {
	if _, err := os.Stat(sockpath); err == nil {
		// A leftover socket prevents binding; a live server would have to
		// be stopped by other means anyway.
		os.Remove(sockpath)
	}
	listener, err := net.Listen("unix", sockpath)
	if err != nil {
		return nil, err
	}
	s := &Server{sockpath, listener, handler(h)}
	go s.serve()
	logger.Println("listening on", sockpath)
	return s, nil
}

// Addr returns the path of the socket the server listens on.
func (s *Server) Addr() string { return s.sockpath }

// Close stops accepting connections and removes the socket.
func (s *Server) Close() error {
	err := s.listener.Close()
	os.Remove(s.sockpath)
	return err
}

func (s *Server) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			logger.Println("stopped accepting:", err)
			return
		}
		jsonrpc2.NewConn(context.Background(),
			jsonrpc2.NewBufferedStream(conn, jsonrpc2.VSCodeObjectCodec{}),
			s.handler)
	}
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func handler(h Handler) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"window/showMessage": func(_ context.Context, _ jsonrpc2.JSONRPC2, raw json.RawMessage) (any, error) {
			var params lsp.ShowMessageParams
			if json.Unmarshal(raw, &params) != nil {
				return nil, errInvalidParams
			}
			h.ShowMessage(params.Message)
			return nil, nil
		},
		"modeline/status": func(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
			content, lines := h.Status()
			return StatusResult{Content: content, Lines: lines}, nil
		},
		"modeline/clear": func(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
			h.Clear()
			return nil, nil
		},
	})
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var raw json.RawMessage
		if req.Params != nil {
			raw = *req.Params
		}
		return fn(ctx, conn, raw)
	})
}
