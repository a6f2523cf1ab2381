package helpers

import (
	"net/http"
	"strconv"

	"backendlink/interfaces"
)

// RequestProcessorChain is a slice of RequestProcessors run in sequence; each processor
// sees the request after the previous one. Used to compose request logging and any
// application processors (e.g. locale headers, tracing). Implements interfaces.RequestProcessor.
type RequestProcessorChain []interfaces.RequestProcessor

// NewRequestProcessorChain creates a chain of request processors from the given list. Panics on a nil element (fail-fast at startup). An empty chain is valid and is a no-op.
//
// Parameters: processors — ordered list of RequestProcessor implementations (Process call order: first to last).
//
// Returns: RequestProcessorChain ([]RequestProcessor) implementing interfaces.RequestProcessor.
//
// Called from cmd and from service.NewResilientClient options when building the client.
func NewRequestProcessorChain(processors ...interfaces.RequestProcessor) RequestProcessorChain {
	for i, p := range processors {
		if p == nil {
			panic("helpers.request_chain.go: processor at index " + strconv.Itoa(i) + " is required")
		}
	}
	return RequestProcessorChain(processors)
}

// Process runs all processors in order on req. Returns the first processor error, aborting the rest of the chain.
//
// Parameter req — outgoing request (mutated in place by processors).
//
// Returns: nil when all processors succeed; the first error otherwise.
//
// Called from service.resilientClient.Request after the bearer credential is attached and before the request is sent.
func (c RequestProcessorChain) Process(req *http.Request) error {
	for _, p := range c {
		if err := p.Process(req); err != nil {
			return err
		}
	}
	return nil
}
