package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lcalzada-xor/wpacrack/internal/core/ports"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// CrackSessionModel is the GORM model for one dictionary-attack run,
// mirroring the teacher's DeviceModel persistence conventions adapted
// to this domain's much narrower record shape.
type CrackSessionModel struct {
	ID         string `gorm:"primaryKey"`
	ESSID      string `gorm:"index"`
	BSSID      string
	Workers    int
	Candidates uint64
	Found      bool
	Passphrase string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// CrackSessionStore implements ports.SessionStore using GORM and
// SQLite, following the teacher's NewSQLiteAdapter setup (WAL mode,
// busy timeout, OpenTelemetry tracing plugin).
type CrackSessionStore struct {
	db *gorm.DB
}

// NewCrackSessionStore opens (creating if needed) a SQLite database at
// path and migrates the crack-session schema.
func NewCrackSessionStore(path string) (*CrackSessionStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	if err := db.AutoMigrate(&CrackSessionModel{}); err != nil {
		return nil, fmt.Errorf("migrate session store: %w", err)
	}

	if err := db.Use(tracing.NewPlugin()); err != nil {
		return nil, fmt.Errorf("instrument session store: %w", err)
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA busy_timeout=5000;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_essid ON crack_session_models(essid)")

	return &CrackSessionStore{db: db}, nil
}

// SaveSession upserts a session record keyed on ID.
func (s *CrackSessionStore) SaveSession(ctx context.Context, rec ports.SessionRecord) error {
	model := CrackSessionModel{
		ID:         rec.ID,
		ESSID:      rec.ESSID,
		BSSID:      rec.BSSID,
		Workers:    rec.Workers,
		Candidates: rec.Candidates,
		Found:      rec.Found,
		Passphrase: rec.Passphrase,
		Error:      rec.Error,
		StartedAt:  rec.StartedAt,
		FinishedAt: rec.FinishedAt,
	}
	return s.db.WithContext(ctx).Save(&model).Error
}

// GetSession retrieves one session by id.
func (s *CrackSessionStore) GetSession(ctx context.Context, id string) (*ports.SessionRecord, error) {
	var model CrackSessionModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	rec := toRecord(model)
	return &rec, nil
}

// ListSessions returns the most recent sessions, newest first, bounded
// by limit (0 means unbounded).
func (s *CrackSessionStore) ListSessions(ctx context.Context, limit int) ([]ports.SessionRecord, error) {
	query := s.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var models []CrackSessionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	records := make([]ports.SessionRecord, len(models))
	for i, m := range models {
		records[i] = toRecord(m)
	}
	return records, nil
}

// Close closes the underlying database connection.
func (s *CrackSessionStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRecord(m CrackSessionModel) ports.SessionRecord {
	return ports.SessionRecord{
		ID:         m.ID,
		ESSID:      m.ESSID,
		BSSID:      m.BSSID,
		Workers:    m.Workers,
		Candidates: m.Candidates,
		Found:      m.Found,
		Passphrase: m.Passphrase,
		Error:      m.Error,
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
	}
}

var _ ports.SessionStore = (*CrackSessionStore)(nil)
