// Package sendlog maintains the append-only audit trail of email attempts.
// The log is a CSV file opened once per run; every attempted send appends
// exactly one row, flushed immediately so a crash mid-run loses nothing.
package sendlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

// DefaultPath is where the emailer writes its audit trail.
const DefaultPath = "sent_log.csv"

// Status is the outcome of one send attempt.
type Status string

const (
	StatusSent   Status = "sent"
	StatusDryRun Status = "dry-run"
	StatusFailed Status = "failed"
)

var columns = []string{"timestamp", "recipient", "sector", "subject", "status", "error"}

// Entry is one attempted send.
type Entry struct {
	Timestamp time.Time
	Recipient string
	Sector    string
	Subject   string
	Status    Status
	Error     string
}

// Log is a single-writer append-only send log.
type Log struct {
	f *os.File
	w *csv.Writer
}

// Open opens (or creates) the log at path for appending, writing the header
// row only when the file is new or empty.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening send log: %w", err)
	}

	w := csv.NewWriter(f)

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("checking send log: %w", err)
	}
	if info.Size() == 0 {
		if err := w.Write(columns); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing send log header: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("flushing send log header: %w", err)
		}
	}

	return &Log{f: f, w: w}, nil
}

// Append writes one entry and flushes it to disk.
func (l *Log) Append(e Entry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	row := []string{
		ts.UTC().Format(time.RFC3339),
		e.Recipient,
		e.Sector,
		e.Subject,
		string(e.Status),
		e.Error,
	}
	if err := l.w.Write(row); err != nil {
		return fmt.Errorf("appending send log entry: %w", err)
	}

	l.w.Flush()
	if err := l.w.Error(); err != nil {
		return fmt.Errorf("flushing send log entry: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (l *Log) Close() error {
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.f.Close()
		return fmt.Errorf("flushing send log: %w", err)
	}
	return l.f.Close()
}
