package ports

import (
	"context"

	"github.com/lcalzada-xor/wpacrack/internal/core/domain"
)

// CandidateSource streams candidate passphrases to the dictionary
// attack driver. Implementations (internal/adapters/wordlist) must
// yield candidates in a single deterministic order, since N=1 runs
// rely on that order for reproducible results (spec.md §5).
type CandidateSource interface {
	// Each scans candidates, invoking fn for each one until fn returns
	// false or the source is exhausted.
	Each(fn func(candidate []byte) (cont bool)) error
}

// CrackService is the core dictionary-attack entry point (C5):
// given a handshake record and a candidate source, it returns the
// recovered passphrase or domain.ErrExhausted.
type CrackService interface {
	Run(ctx context.Context, record *domain.HandshakeRecord, candidates CandidateSource) (Result, error)
}

// Result reports the outcome of one completed attack run.
type Result struct {
	Passphrase string
	Tried      uint64
	Found      bool
}
