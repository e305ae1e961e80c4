package zpl

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"
)

// sendConfig holds the options of a single send.
type sendConfig struct {
	host string
	port int
	keep bool
}

// SendOption configures a single send.
type SendOption func(*sendConfig)

// ToHost sends to host instead of the client's printer.
func ToHost(host string) SendOption {
	return func(c *sendConfig) {
		c.host = host
	}
}

// ToPort sends to port instead of the client's port.
func ToPort(port int) SendOption {
	return func(c *sendConfig) {
		c.port = port
	}
}

// KeepMessage leaves the document buffer intact after a successful send.
func KeepMessage() SendOption {
	return func(c *sendConfig) {
		c.keep = true
	}
}

func (c *Client) destination(opts []SendOption) sendConfig {
	dst := sendConfig{}
	for _, opt := range opts {
		opt(&dst)
	}
	if dst.host == "" {
		dst.host = c.host
	}
	if dst.port == 0 {
		dst.port = c.port
	}
	return dst
}

func (dst sendConfig) overrides(c *Client) bool {
	return dst.host != c.host || dst.port != c.port
}

// Send delivers data to the printer. In socket mode it writes to the open
// connection; without one, or when the destination is overridden, a
// connection is opened for this send only.
func (c *Client) Send(ctx context.Context, data []byte, opts ...SendOption) error {
	switch c.mode {
	case ModeSocket:
		if c.conn != nil && !c.destination(opts).overrides(c) {
			return c.write(c.conn, data)
		}
		conn, err := c.dial(ctx, c.URL(opts...))
		if err != nil {
			return err
		}
		defer conn.Close()
		return c.write(conn, data)
	case ModeHTTP, ModeHTTPS:
		return c.post(ctx, c.URL(opts...), data)
	default:
		return fmt.Errorf("%w: unhandled mode %q", ErrConfiguration, c.mode)
	}
}

// write loops until every byte is flushed to conn.
func (c *Client) write(conn net.Conn, data []byte) error {
	// Bound the whole write by the timeout
	if c.timeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			return fmt.Errorf("%w: setting write deadline: %w", ErrTransport, err)
		}
	}

	// Write until every byte is flushed
	total := 0
	for total < len(data) {
		n, err := conn.Write(data[total:])
		if err != nil {
			return fmt.Errorf("%w: connection broken after %d of %d bytes: %w", ErrTransport, total, len(data), err)
		}
		if n == 0 {
			return fmt.Errorf("%w: connection broken after %d of %d bytes", ErrTransport, total, len(data))
		}
		total += n
	}

	c.logger.Debug("Sent data to printer", "addr", conn.RemoteAddr().String(), "size", total)
	return nil
}

// post submits data as the "zpl" form field.
func (c *Client) post(ctx context.Context, endpoint string, data []byte) error {
	// Print servers expect the document in the "zpl" form field
	form := url.Values{"zpl": {string(data)}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: creating request: %w", ErrConfiguration, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Execute request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: executing request: %w", ErrConnection, err)
	}

	// Check the printer answer
	if err := parseResponse(resp); err != nil {
		return err
	}

	c.logger.Debug("Posted data to printer", "url", endpoint, "size", len(data))
	return nil
}

// SendMessage delivers the current document and clears it once the send
// succeeded. A failed send leaves the document intact for a retry.
func (c *Client) SendMessage(ctx context.Context, opts ...SendOption) error {
	msg := c.Bytes()
	c.logger.Debug("Sending message", "lines", c.Len(), "size", len(msg))

	if err := c.Send(ctx, msg, opts...); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	// Clear the delivered document
	if !c.destination(opts).keep {
		c.Reset()
	}
	return nil
}

// Print sends the current document. Without an open connection it connects
// and disconnects around the send; an open connection is reused and left
// open.
func (c *Client) Print(ctx context.Context, opts ...SendOption) error {
	return c.scoped(ctx, opts, func(c *Client) error {
		return c.SendMessage(ctx, opts...)
	})
}

// scoped runs fn inside WithConnection unless the send needs no new client
// connection: HTTP modes, overridden socket destinations and a connection
// the caller already opened.
func (c *Client) scoped(ctx context.Context, opts []SendOption, fn func(*Client) error) error {
	if c.mode != ModeSocket || c.conn != nil || c.destination(opts).overrides(c) {
		return fn(c)
	}
	return c.WithConnection(ctx, fn)
}

// PrintFile sends a prepared ZPL file as is. The document buffer is not
// touched.
func (c *Client) PrintFile(ctx context.Context, path string, opts ...SendOption) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	return c.scoped(ctx, opts, func(c *Client) error {
		if err := c.Send(ctx, data, opts...); err != nil {
			return fmt.Errorf("sending file: %w", err)
		}
		return nil
	})
}
