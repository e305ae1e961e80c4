package zpl

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort    = 9100
	defaultTimeout = 30 * time.Second
)

// Mode selects how documents are delivered to the printer.
type Mode string

// Transport modes.
const (
	ModeSocket Mode = "SOCKET"
	ModeHTTP   Mode = "HTTP"
	ModeHTTPS  Mode = "HTTPS"
)

// Client is a printer session: a Document being built plus the transport
// used to deliver it.
//
// A Client is not safe for concurrent use.
type Client struct {
	*Document

	host       string
	port       int
	mode       Mode
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	insecure   bool
	logger     *slog.Logger
	conn       net.Conn
}

// Option is a function that configures the client.
type Option func(*Client)

// WithPort sets the printer port. The default is 9100.
func WithPort(port int) Option {
	return func(c *Client) {
		c.port = port
	}
}

// WithMode sets the transport mode. The default is ModeSocket.
func WithMode(mode Mode) Option {
	return func(c *Client) {
		c.mode = mode
	}
}

// WithEndpoint sets the URL path documents are posted to in HTTP modes.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithTimeout bounds connecting, writing and HTTP requests.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithInsecureSkipVerify disables certificate verification in ModeHTTPS.
// Print servers frequently use self-signed certificates.
func WithInsecureSkipVerify() Option {
	return func(c *Client) {
		c.insecure = true
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDocument builds into an existing document instead of a new one.
func WithDocument(doc *Document) Option {
	return func(c *Client) {
		c.Document = doc
	}
}

// New creates a client for the printer at host.
func New(host string, opts ...Option) (*Client, error) {
	c := &Client{
		host:    host,
		port:    defaultPort,
		mode:    ModeSocket,
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	switch c.mode {
	case ModeSocket:
	case ModeHTTP, ModeHTTPS:
		if c.endpoint == "" {
			return nil, fmt.Errorf("%w: an endpoint is required in mode %s", ErrConfiguration, c.mode)
		}
	default:
		return nil, fmt.Errorf("%w: invalid mode %q, valid modes are %s, %s, %s", ErrConfiguration, c.mode, ModeSocket, ModeHTTP, ModeHTTPS)
	}

	if c.Document == nil {
		c.Document = NewDocument()
	}
	if c.httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if c.insecure {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		}
		c.httpClient = &http.Client{Timeout: c.timeout, Transport: transport}
	}

	return c, nil
}

// Mode returns the transport mode.
func (c *Client) Mode() Mode {
	return c.mode
}

// URL returns the delivery address, "host:port" in socket mode and the full
// endpoint URL otherwise.
func (c *Client) URL(opts ...SendOption) string {
	dst := c.destination(opts)
	addr := net.JoinHostPort(dst.host, strconv.Itoa(dst.port))

	switch c.mode {
	case ModeHTTP, ModeHTTPS:
		scheme := "http"
		if c.mode == ModeHTTPS {
			scheme = "https"
		}
		endpoint := c.endpoint
		if !strings.HasPrefix(endpoint, "/") {
			endpoint = "/" + endpoint
		}
		return scheme + "://" + addr + endpoint
	default:
		return addr
	}
}

// Connected reports whether a socket connection is open.
func (c *Client) Connected() bool {
	return c.conn != nil
}

// Connect opens the socket connection, replacing any open one. It does
// nothing in HTTP modes.
func (c *Client) Connect(ctx context.Context) error {
	if c.mode != ModeSocket {
		return nil
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Warn("Error closing previous printer connection", "error", err)
		}
		c.conn = nil
	}

	addr := c.URL()
	c.logger.Info("Connecting to printer", "addr", addr)

	conn, err := c.dial(ctx, addr)
	if err != nil {
		return err
	}
	c.conn = conn

	return nil
}

func (c *Client) dial(ctx context.Context, addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		c.logger.Error("Couldn't connect to printer", "addr", addr, "error", err)
		return nil, fmt.Errorf("%w: dialing %s: %w", ErrConnection, addr, err)
	}
	return conn, nil
}

// Disconnect closes the socket connection, if any.
func (c *Client) Disconnect() error {
	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	if err != nil {
		c.logger.Warn("Error closing printer connection", "error", err)
		return fmt.Errorf("closing connection: %w", err)
	}

	return nil
}

// WithConnection connects, runs fn and disconnects again, whether or not fn
// succeeds.
func (c *Client) WithConnection(ctx context.Context, fn func(*Client) error) (err error) {
	if err := c.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if cerr := c.Disconnect(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(c)
}

// Response is the JSON answer of an HTTP print endpoint.
type Response struct {
	Error string `json:"error"`
}

// parseResponse reads and parses a print endpoint response.
func parseResponse(resp *http.Response) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %w", ErrTransport, err)
	}

	var r Response
	if jerr := json.Unmarshal(body, &r); jerr != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("%w: request failed with status %d: %s", ErrTransport, resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return fmt.Errorf("%w: decoding response: %w", ErrTransport, jerr)
	}

	if r.Error != "" {
		return fmt.Errorf("%w: printer returned error: %s", ErrTransport, r.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: request failed with status %d", ErrTransport, resp.StatusCode)
	}

	return nil
}
