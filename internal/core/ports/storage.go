package ports

import (
	"context"
	"time"
)

// SessionRecord is the persisted outcome of one dictionary-attack run.
type SessionRecord struct {
	ID         string
	ESSID      string
	BSSID      string
	Workers    int
	Candidates uint64
	Found      bool
	Passphrase string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// SessionStore persists crack-run outcomes for later review.
// cmd/wpacrack saves one SessionRecord per run through it; the PDF
// reporter is handed that SessionRecord directly and the dashboard
// does not read from the store.
type SessionStore interface {
	SaveSession(ctx context.Context, s SessionRecord) error
	GetSession(ctx context.Context, id string) (*SessionRecord, error)
	ListSessions(ctx context.Context, limit int) ([]SessionRecord, error)
	Close() error
}
