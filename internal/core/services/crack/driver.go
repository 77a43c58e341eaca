// Package crack implements the dictionary-attack driver (C5): it
// streams candidate passphrases against a single handshake record,
// deriving the PMK (C3) and verifying the MIC (C4) for each one, and
// reports the first candidate that matches.
//
// The default shape is a producer-consumer pipeline: one reader
// goroutine feeds a bounded channel, a pool of worker goroutines pull
// from it and run the full PBKDF2+PRF+MIC pipeline per candidate, and
// a shared atomic flag stops everyone cooperatively on first match
// (spec.md §5). Driver.Workers == 1 instead runs everything on the
// calling goroutine in strict wordlist order, which is required for
// deterministic test runs.
package crack

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/wpacrack/internal/core/crypto/pbkdf2"
	"github.com/lcalzada-xor/wpacrack/internal/core/crypto/wpa2"
	"github.com/lcalzada-xor/wpacrack/internal/core/domain"
	"github.com/lcalzada-xor/wpacrack/internal/core/ports"
)

// queueDepth is the bounded channel capacity between the reader and
// the worker pool (spec.md §5: "~1024 candidates").
const queueDepth = 1024

// minCandidateLen and maxCandidateLen bound an acceptable WPA2-PSK
// candidate passphrase, per spec.md §4.5.
const (
	minCandidateLen = 1
	maxCandidateLen = 63
)

// ProgressFunc is called once per candidate tried, with the cumulative
// number of candidates tried so far. It is called synchronously from
// the goroutine that tried the candidate, so it should not block. Used to wire
// internal/telemetry counters and the web dashboard without coupling
// this package to either.
type ProgressFunc func(tried uint64)

// Driver implements ports.CrackService.
type Driver struct {
	// Workers is the number of concurrent worker goroutines. A value
	// of 1 runs single-threaded and preserves wordlist order; this is
	// the only mode spec.md §5 requires to be deterministic. Zero or
	// less defaults to runtime.NumCPU().
	Workers int

	// OnProgress, if set, is invoked from worker goroutines as
	// candidates complete. Implementations must be safe for
	// concurrent use.
	OnProgress ProgressFunc
}

// New returns a Driver defaulting to one worker per logical CPU.
func New() *Driver {
	return &Driver{Workers: runtime.NumCPU()}
}

// Run streams candidates from the given source against record and
// returns the recovered passphrase, or domain.ErrExhausted if none
// matched. A job id is generated per run and appears only in the
// errors Run returns for an invalid record; it is not exposed on the
// Driver or the result.
func (d *Driver) Run(ctx context.Context, record *domain.HandshakeRecord, candidates ports.CandidateSource) (ports.Result, error) {
	jobID := uuid.New()

	if err := record.Validate(); err != nil {
		return ports.Result{}, fmt.Errorf("crack job %s: %w", jobID, err)
	}
	if record.KeyVer != domain.KeyVerWPA2 {
		return ports.Result{}, fmt.Errorf("crack job %s: %w", jobID, domain.ErrUnsupportedKeyver)
	}

	workers := d.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if workers == 1 {
		return d.runSequential(ctx, record, candidates)
	}
	return d.runParallel(ctx, record, candidates, workers)
}

// acceptCandidate reports whether line (its trailing terminator
// already stripped by the wordlist adapter) is a legal WPA2-PSK
// candidate length. It performs no other normalization, per spec.md
// §9 Open Question 3.
func acceptCandidate(line []byte) bool {
	return len(line) >= minCandidateLen && len(line) <= maxCandidateLen
}

// tryCandidate derives the PMK for candidate and verifies it against
// record, returning true on a MIC match.
func tryCandidate(record *domain.HandshakeRecord, candidate []byte) bool {
	pmk := pbkdf2.WPA2PMK(candidate, record.ESSID)
	ok, err := wpa2.Verify(record, pmk)
	if err != nil {
		// Already checked in Run; this should be unreachable.
		return false
	}
	return ok
}

// runSequential preserves wordlist order and runs on the calling
// goroutine only, per spec.md §5's determinism requirement for N=1.
func (d *Driver) runSequential(ctx context.Context, record *domain.HandshakeRecord, candidates ports.CandidateSource) (ports.Result, error) {
	var tried uint64
	var found string
	matched := false

	err := candidates.Each(func(line []byte) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		if !acceptCandidate(line) {
			return true
		}

		tried++
		if d.OnProgress != nil {
			d.OnProgress(tried)
		}

		candidate := append([]byte(nil), line...)
		if tryCandidate(record, candidate) {
			found = string(candidate)
			matched = true
			return false
		}
		return true
	})
	if err != nil {
		return ports.Result{Tried: tried}, err
	}

	if !matched {
		return ports.Result{Tried: tried}, domain.ErrExhausted
	}
	return ports.Result{Passphrase: found, Tried: tried, Found: true}, nil
}

// runParallel implements the bounded-channel producer/consumer
// pipeline described in spec.md §5: a reader goroutine feeds a
// channel of up to queueDepth candidates, Workers goroutines each run
// the full PBKDF2+MIC pipeline per candidate, and a shared atomic
// "done" flag stops everyone cooperatively on the first match. There
// is no ordering guarantee across workers: whichever candidate
// finishes verification first is reported.
func (d *Driver) runParallel(ctx context.Context, record *domain.HandshakeRecord, candidates ports.CandidateSource, workers int) (ports.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var done atomic.Bool
	var tried atomic.Uint64
	var once sync.Once
	var result ports.Result

	queue := make(chan []byte, queueDepth)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for candidate := range queue {
				if done.Load() {
					continue
				}
				n := tried.Add(1)
				if d.OnProgress != nil {
					d.OnProgress(n)
				}
				if tryCandidate(record, candidate) {
					once.Do(func() {
						result = ports.Result{Passphrase: string(candidate), Found: true}
						done.Store(true)
						cancel()
					})
				}
			}
		}()
	}

	readErr := candidates.Each(func(line []byte) bool {
		if done.Load() {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if !acceptCandidate(line) {
			return true
		}
		candidate := append([]byte(nil), line...)
		select {
		case queue <- candidate:
			return true
		case <-ctx.Done():
			return false
		}
	})
	close(queue)
	wg.Wait()

	result.Tried = tried.Load()

	if readErr != nil {
		return result, readErr
	}
	if !result.Found {
		return result, domain.ErrExhausted
	}
	return result, nil
}
