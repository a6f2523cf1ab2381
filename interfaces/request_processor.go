package interfaces

import "net/http"

// RequestProcessor decorates one outgoing HTTP request before it is sent
// (extra headers, request logging, tracing). Processors run in a chain on every
// ResilientClient request, after the bearer credential is attached.
//
// Implemented by service.NewRequestLogProcessor and application-supplied
// processors; composed via helpers.RequestProcessorChain.
//
//go:generate moq -stub -out mock/request_processor.go -pkg mock . RequestProcessor
type RequestProcessor interface {
	// Process mutates req in place (headers only; body must not be touched).
	// Returns nil to continue the chain or an error to abort the request before it is sent.
	// Called from service.resilientClient.Request for every outgoing request.
	Process(req *http.Request) error
}
