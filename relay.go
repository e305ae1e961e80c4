package zpl

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

const defaultMaxBodyBytes = 8 << 20

// Sender delivers raw ZPL to a printer. *Client implements it.
type Sender interface {
	Send(ctx context.Context, data []byte, opts ...SendOption) error
}

// Relay is the server side of the HTTP transport. It accepts form posts with
// a "zpl" field, forwards the document through a Sender and answers with a
// Response.
type Relay struct {
	target       Sender
	maxBodyBytes int64
	logger       *slog.Logger
}

// RelayOption is a function that configures the relay.
type RelayOption func(*Relay)

// WithMaxBodyBytes limits the size of accepted requests. The default is 8 MiB.
func WithMaxBodyBytes(n int64) RelayOption {
	return func(r *Relay) {
		r.maxBodyBytes = n
	}
}

// WithRelayLogger sets the logger. The default is slog.Default().
func WithRelayLogger(logger *slog.Logger) RelayOption {
	return func(r *Relay) {
		r.logger = logger
	}
}

// NewRelay creates a relay that prints through target.
func NewRelay(target Sender, opts ...RelayOption) *Relay {
	r := &Relay{
		target:       target,
		maxBodyBytes: defaultMaxBodyBytes,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ServeHTTP implements http.Handler.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		r.respond(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req.Body = http.MaxBytesReader(w, req.Body, r.maxBodyBytes)
	if err := req.ParseForm(); err != nil {
		r.respond(w, http.StatusBadRequest, "parsing form: "+err.Error())
		return
	}

	data := req.PostForm.Get("zpl")
	if data == "" {
		r.respond(w, http.StatusBadRequest, "missing zpl field")
		return
	}

	if err := r.target.Send(req.Context(), []byte(data)); err != nil {
		r.logger.Error("Couldn't relay document to printer", "error", err, "size", len(data))
		r.respond(w, http.StatusBadGateway, err.Error())
		return
	}

	r.logger.Debug("Relayed document to printer", "size", len(data))
	r.respond(w, http.StatusOK, "")
}

func (r *Relay) respond(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Response{Error: msg}); err != nil {
		r.logger.Warn("Error writing relay response", "error", err)
	}
}
