// Command wpacrack recovers a WPA2-Personal passphrase from a
// captured four-way handshake by dictionary attack.
//
// Usage:
//
//	wpacrack <capture.cap|capture.hccapx> <wordlist.txt>
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/wpacrack/internal/adapters/capture"
	"github.com/lcalzada-xor/wpacrack/internal/adapters/dashboard"
	"github.com/lcalzada-xor/wpacrack/internal/adapters/hccapx"
	"github.com/lcalzada-xor/wpacrack/internal/adapters/reporting"
	"github.com/lcalzada-xor/wpacrack/internal/adapters/storage"
	"github.com/lcalzada-xor/wpacrack/internal/adapters/wordlist"
	"github.com/lcalzada-xor/wpacrack/internal/config"
	"github.com/lcalzada-xor/wpacrack/internal/core/domain"
	"github.com/lcalzada-xor/wpacrack/internal/core/ports"
	"github.com/lcalzada-xor/wpacrack/internal/core/services/crack"
	"github.com/lcalzada-xor/wpacrack/internal/telemetry"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	if cfg.Debug {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if cfg.CapturePath == "" || cfg.WordlistPath == "" {
		fmt.Fprintln(os.Stderr, "usage: wpacrack <capture.cap|capture.hccapx> <wordlist.txt>")
		os.Exit(2)
	}

	telemetry.InitMetrics()
	shutdownTracer, err := telemetry.InitTracer()
	if err != nil {
		slog.Warn("tracer init failed, continuing without tracing", "error", err)
	} else {
		defer shutdownTracer(context.Background())
	}

	record, err := loadRecord(cfg.CapturePath, cfg.ESSIDFilter)
	if err != nil {
		slog.Error("failed to load handshake", "error", err)
		os.Exit(1)
	}
	slog.Info("handshake loaded", "essid", record.ESSIDString())

	wordlistFile, err := os.Open(cfg.WordlistPath)
	if err != nil {
		slog.Error("failed to open wordlist", "error", err)
		os.Exit(1)
	}
	defer wordlistFile.Close()
	candidates := wordlist.NewSource(wordlistFile)

	sessionStore, err := storage.NewCrackSessionStore(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer sessionStore.Close()

	hub := dashboard.NewHub()
	dashboardServer := dashboard.NewServer(cfg.DashboardAddr, hub)
	go func() {
		if err := dashboardServer.Run(ctx); err != nil {
			slog.Error("dashboard server error", "error", err)
		}
	}()

	jobID := uuid.New().String()
	driver := crack.New()
	if cfg.Workers > 0 {
		driver.Workers = cfg.Workers
	}
	telemetry.RecordJobStart(jobID, driver.Workers)
	progress := telemetry.CrackProgressReporter(jobID)
	driver.OnProgress = func(tried uint64) {
		progress(tried)
		hub.Broadcast(dashboard.ProgressMessage{
			JobID:   jobID,
			Tried:   tried,
			Workers: driver.Workers,
		})
	}

	start := time.Now()
	slog.Info("starting dictionary attack", "job", jobID, "workers", driver.Workers)
	result, runErr := driver.Run(ctx, record, candidates)
	finished := time.Now()
	telemetry.RecordJobEnd(jobID, result.Found)

	if runErr != nil && !errors.Is(runErr, domain.ErrExhausted) {
		slog.Error("crack run failed", "error", runErr)
		os.Exit(1)
	}

	sessionRec := ports.SessionRecord{
		ID:         jobID,
		ESSID:      record.ESSIDString(),
		Workers:    driver.Workers,
		Candidates: result.Tried,
		Found:      result.Found,
		Passphrase: result.Passphrase,
		StartedAt:  start,
		FinishedAt: finished,
	}
	if runErr != nil {
		sessionRec.Error = runErr.Error()
	}
	if err := sessionStore.SaveSession(ctx, sessionRec); err != nil {
		slog.Warn("failed to persist session", "error", err)
	}

	hub.Broadcast(dashboard.ProgressMessage{
		JobID:      jobID,
		Tried:      result.Tried,
		Workers:    driver.Workers,
		Found:      result.Found,
		Passphrase: result.Passphrase,
		Done:       true,
	})

	if cfg.ReportPath != "" {
		if err := writeReport(cfg.ReportPath, sessionRec); err != nil {
			slog.Warn("failed to write PDF report", "error", err)
		}
	}

	if result.Found {
		fmt.Printf("KEY FOUND! [%s]\n", result.Passphrase)
		fmt.Printf("candidates tried: %d\n", result.Tried)
		os.Exit(0)
	}

	fmt.Printf("key not found (candidates tried: %d)\n", result.Tried)
	os.Exit(1)
}

// loadRecord reads path as either an hccapx binary record file or a
// raw pcap capture, selecting essidFilter if more than one handshake
// is present. With no filter and more than one candidate handshake,
// it is an error: interactive selection is out of scope for this
// command-line tool.
func loadRecord(path, essidFilter string) (*domain.HandshakeRecord, error) {
	var records []*domain.HandshakeRecord
	var err error

	if strings.HasSuffix(strings.ToLower(path), ".hccapx") {
		f, openErr := os.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgs, openErr)
		}
		defer f.Close()
		records, err = hccapx.ReadAll(f)
	} else {
		records, err = capture.WalkFile(path)
	}
	if err != nil {
		return nil, err
	}

	if essidFilter != "" {
		for _, r := range records {
			if r.ESSIDString() == essidFilter {
				return r, nil
			}
		}
		return nil, fmt.Errorf("%w: no handshake found for essid %q", domain.ErrNoHandshake, essidFilter)
	}

	if len(records) > 1 {
		return nil, fmt.Errorf("%w: %d handshakes found, use -essid to select one", domain.ErrInvalidArgs, len(records))
	}
	return records[0], nil
}

func writeReport(path string, rec ports.SessionRecord) error {
	exporter := reporting.NewCrackReportExporter()
	data, err := exporter.Export(rec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && filepath.Dir(path) != "." {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
