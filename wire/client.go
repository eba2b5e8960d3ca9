// Copyright 2026 The Buoy Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/buoy-foundation/buoy/lib/codec"
)

// dialTimeout covers the connect phase only; the server's own
// timeouts cover the request-response cycle.
const dialTimeout = 5 * time.Second

// responseReadTimeout is how long the client waits for the response
// after writing its request. Matched to the server's read plus write
// timeouts to account for handler execution.
const responseReadTimeout = 45 * time.Second

// maxResponseSize matches the server's maxRequestSize for symmetry.
const maxResponseSize = 1024 * 1024

// CallError is returned by Call when the server responds ok=false.
type CallError struct {
	Action  string
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("signal %q failed: %s", e.Action, e.Message)
}

// Client sends signal requests to the daemon's signal socket. Each
// Call opens a fresh connection, matching the server's one-request-
// per-connection model. The zero cost of a unix-socket dial keeps
// this simple model cheap.
type Client struct {
	socketPath string
}

// NewClient creates a client for the signal socket at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

// Call sends one request and decodes the response. On ok=false the
// error is a *CallError carrying the server's message; connection and
// encoding failures are plain errors. When result is non-nil and the
// response carries data, the data is CBOR-decoded into result.
func (c *Client) Call(ctx context.Context, request SignalRequest, result any) error {
	response, err := c.send(ctx, request)
	if err != nil {
		return fmt.Errorf("calling %q on %s: %w", request.Action, c.socketPath, err)
	}
	if !response.OK {
		return &CallError{Action: request.Action, Message: response.Error}
	}
	if result != nil && len(response.Data) > 0 {
		if err := codec.Unmarshal(response.Data, result); err != nil {
			return fmt.Errorf("decoding response data for %q: %w", request.Action, err)
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, request SignalRequest) (*Response, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("dialing: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	} else {
		conn.SetDeadline(time.Now().Add(responseReadTimeout))
	}

	if err := codec.NewEncoder(conn).Encode(request); err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	var response Response
	if err := codec.NewDecoder(io.LimitReader(conn, maxResponseSize)).Decode(&response); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &response, nil
}

// StreamClient is a subscription to the daemon's update stream. Next
// blocks on the socket; callers typically run it in a dedicated
// goroutine and fan frames into their own event loop.
type StreamClient struct {
	conn net.Conn
}

// DialStream subscribes to the update stream at socketPath. The first
// frame the server sends is the hello snapshot.
func DialStream(socketPath string) (*StreamClient, error) {
	conn, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("dialing stream socket %s: %w", socketPath, err)
	}
	return &StreamClient{conn: conn}, nil
}

// Next reads the next frame. Returns io.EOF (wrapped) when the daemon
// closes the stream.
func (c *StreamClient) Next() (Frame, error) {
	return ReadFrame(c.conn)
}

// Close tears down the subscription.
func (c *StreamClient) Close() error {
	return c.conn.Close()
}
