package provider

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport logs every request body and response status/body.
type loggingTransport struct {
	base http.RoundTripper
	log  *slog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(b))
		t.log.Debug("chat request", "method", req.Method, "url", req.URL.String(), "body", string(b))
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.Warn("chat request failed", "url", req.URL.String(), "err", err)
		return nil, err
	}

	b, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(b))
	t.log.Info("chat response", "status", resp.StatusCode)
	t.log.Debug("chat response body", "body", string(b))
	return resp, nil
}

// NewHTTPClient returns a client whose transport logs traffic through log.
// A zero timeout keeps the transport default. A nil base uses http.DefaultTransport.
func NewHTTPClient(base http.RoundTripper, timeout time.Duration, log *slog.Logger) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	if log == nil {
		log = slog.Default()
	}
	return &http.Client{
		Transport: &loggingTransport{base: base, log: log},
		Timeout:   timeout,
	}
}
