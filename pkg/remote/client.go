package remote

import (
	"context"
	"net"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
)

// Client talks to a Server over its Unix socket.
type Client struct {
	conn *jsonrpc2.Conn
}

// Dial connects to the server listening on the Unix socket at sockpath.
func Dial(sockpath string) (*Client, error) {
	conn, err := net.Dial("unix", sockpath)
	if err != nil {
		return nil, err
	}
	rpcConn := jsonrpc2.NewConn(context.Background(),
		jsonrpc2.NewBufferedStream(conn, jsonrpc2.VSCodeObjectCodec{}),
		noopHandler{})
	return &Client{rpcConn}, nil
}

// ShowMessage surfaces text in the remote modeline.
func (c *Client) ShowMessage(ctx context.Context, text string) error {
	params := lsp.ShowMessageParams{Type: lsp.Info, Message: text}
	return c.conn.Call(ctx, "window/showMessage", params, nil)
}

// Status returns the content currently rendered in the remote modeline.
func (c *Client) Status(ctx context.Context) (StatusResult, error) {
	var result StatusResult
	err := c.conn.Call(ctx, "modeline/status", nil, &result)
	return result, err
}

// Clear blanks the remote modeline.
func (c *Client) Clear(ctx context.Context) error {
	return c.conn.Call(ctx, "modeline/clear", nil, nil)
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// The client makes calls but never serves any, so all incoming requests
// are rejected.
type noopHandler struct{}

func (noopHandler) Handle(_ context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if !req.Notif {
		conn.ReplyWithError(context.Background(), req.ID, errMethodNotFound)
	}
}
