package service

import (
	"fmt"
	"strconv"

	"backendlink/domain"
	"backendlink/interfaces"
)

// candidateSource implements interfaces.CandidateSource. It expands the static
// discovery config into the ordered candidate sequence: for each subnet prefix,
// every configured host octet in order, then localhost last as the fixed
// fallback. Ordering is the tie-break when several candidates in the same batch
// are alive, so it is kept stable across runs.
type candidateSource struct {
	cfg domain.DiscoveryConfig
}

// NewCandidateSource creates a CandidateSource from a validated discovery config. Panics on an invalid config (constructors fail fast; cmd LoadConfig validates first with a returned error).
//
// Parameter cfg — static discovery config (subnet prefixes, host octets, port, scheme).
//
// Returns: interfaces.CandidateSource (*candidateSource).
//
// Called from cmd when wiring the discoverer.
func NewCandidateSource(cfg domain.DiscoveryConfig) interfaces.CandidateSource {
	if err := domain.ValidateDiscoveryConfig(cfg); err != nil {
		panic(fmt.Sprintf("service.candidates.go: invalid discovery config: %v", err))
	}
	return &candidateSource{cfg: cfg}
}

// Generate returns the full ordered candidate sequence for one discovery run: subnet prefixes × host octets in config order (prefix-major), then a localhost candidate with the same scheme and port.
//
// Parameters: none; no side effects, no I/O — a fresh slice is built per call.
//
// Returns: []domain.Candidate of length len(prefixes)*len(octets)+1; never nil.
//
// Called from service.discoverer.Resolve at the start of full discovery.
func (s *candidateSource) Generate() []domain.Candidate {
	out := make([]domain.Candidate, 0, len(s.cfg.SubnetPrefixes)*len(s.cfg.HostOctets)+1)
	for _, prefix := range s.cfg.SubnetPrefixes {
		for _, octet := range s.cfg.HostOctets {
			out = append(out, domain.Candidate{
				Scheme: s.cfg.Scheme,
				Host:   prefix + "." + strconv.Itoa(octet),
				Port:   s.cfg.Port,
			})
		}
	}
	out = append(out, domain.Candidate{
		Scheme: s.cfg.Scheme,
		Host:   "localhost",
		Port:   s.cfg.Port,
	})
	return out
}
