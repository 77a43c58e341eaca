package domain

import "errors"

// Error taxonomy for the offline WPA2 recovery pipeline. Each
// sentinel corresponds to one row of the error-handling table: the
// driver maps these to exit codes, the capture/hccapx adapters return
// them wrapped with context via fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidArgs signals a wrong argv count, unreadable input
	// file, or an unexpected file extension.
	ErrInvalidArgs = errors.New("invalid arguments")

	// ErrNoHandshake signals a capture or hccapx file that contains
	// zero valid handshake records.
	ErrNoHandshake = errors.New("no handshake found")

	// ErrMalformedRecord signals a record whose length, essid_len, or
	// eapol_len violates the hccapx invariants. The caller should skip
	// the record and continue; ErrNoHandshake is only fatal once every
	// record has been rejected.
	ErrMalformedRecord = errors.New("malformed handshake record")

	// ErrUnsupportedKeyver signals keyver values other than 2 (the
	// HMAC-SHA1-128 MIC this core implements). keyver 1 (HMAC-MD5) and
	// keyver 3 (AES-CMAC) are explicitly out of scope; the core must
	// never silently compute a wrong MIC for them.
	ErrUnsupportedKeyver = errors.New("unsupported keyver")

	// ErrCandidateRejected signals a wordlist line whose trimmed
	// length is 0 or exceeds 63 bytes, the WPA2 PSK length bounds.
	ErrCandidateRejected = errors.New("candidate passphrase out of bounds")

	// ErrExhausted signals that the wordlist was consumed without any
	// candidate producing a matching MIC.
	ErrExhausted = errors.New("wordlist exhausted without match")
)
