package service

import (
	"net/http"

	"backendlink/helpers"
	"backendlink/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// requestLogProcessor implements interfaces.RequestProcessor. It logs the method
// and URL of every outgoing request at debug level. Composed into the client's
// processor chain in cmd.
type requestLogProcessor struct {
	logger log.Logger
}

// NewRequestLogProcessor creates a processor that logs each outgoing request. Panics on nil logger.
//
// Parameter logger — logger (a "component" field is added here).
//
// Returns: interfaces.RequestProcessor (*requestLogProcessor).
//
// Called from cmd when building the client's processor chain.
func NewRequestLogProcessor(logger log.Logger) interfaces.RequestProcessor {
	return &requestLogProcessor{
		logger: log.With(helpers.NilPanic(logger, "service.request_processors.go: logger is required"), "component", "request_log"),
	}
}

// Process logs the request and always returns nil (logging never aborts a request).
func (p *requestLogProcessor) Process(req *http.Request) error {
	_ = level.Debug(p.logger).Log("msg", "outgoing request", "method", req.Method, "url", req.URL.String())
	return nil
}

// headerSetProcessor implements interfaces.RequestProcessor. It sets a fixed
// header on every outgoing request (e.g. an app version or locale header).
type headerSetProcessor struct {
	key   string
	value string
}

// NewHeaderSetProcessor creates a processor that sets header key to value on every request. Panics on empty key.
//
// Parameters: key — header name; value — header value (empty is allowed and sets an empty header).
//
// Returns: interfaces.RequestProcessor (*headerSetProcessor).
//
// Called from cmd and application wiring for static per-client headers.
func NewHeaderSetProcessor(key, value string) interfaces.RequestProcessor {
	return &headerSetProcessor{
		key:   helpers.StrPanic(key, "service.request_processors.go: key is required"),
		value: value,
	}
}

// Process sets the configured header and returns nil.
func (p *headerSetProcessor) Process(req *http.Request) error {
	req.Header.Set(p.key, p.value)
	return nil
}
