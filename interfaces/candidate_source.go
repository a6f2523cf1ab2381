package interfaces

import "backendlink/domain"

// CandidateSource produces the ordered sequence of candidate addresses to probe
// during one discovery run. Finite, deterministic for a given static config, no
// side effects, no I/O. Emission order matters: when several candidates are alive
// in the same batch, the earliest-generated one wins, so discovery stays
// deterministic across runs on the same network.
//
// Implemented by service.candidateSource. Called from service.discoverer.Resolve
// at the start of full discovery.
//
//go:generate moq -stub -out mock/candidate_source.go -pkg mock . CandidateSource
type CandidateSource interface {
	// Generate returns the full ordered candidate sequence: subnet prefixes × host
	// octets in config order, then the localhost fallback candidate last.
	// Parameters: none.
	// Returns: non-empty slice of candidates; never nil for a validated config.
	// Called from service.discoverer.Resolve once per full discovery run.
	Generate() []domain.Candidate
}
