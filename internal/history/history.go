package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yildizm/ReviewRadar/internal/aggregate"
	"github.com/yildizm/ReviewRadar/internal/review"
	_ "modernc.org/sqlite"
)

// timeLayout sorts lexically in chronological order
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DefaultLimit is the number of entries List returns when limit <= 0
const DefaultLimit = 20

// Entry is one completed analysis
type Entry struct {
	ID         int64     `json:"id"`
	At         time.Time `json:"at"`
	Mode       string    `json:"mode"`
	Source     string    `json:"source"`
	Site       string    `json:"site,omitempty"`
	Threshold  string    `json:"threshold"`
	Reviews    int       `json:"reviews"`
	Fake       int       `json:"fake"`
	MeanRating *float64  `json:"mean_rating"`
}

// NewEntry summarises an analysis result
func NewEntry(mode, source string, threshold review.Threshold, reviews []review.Review) Entry {
	e := Entry{
		At:        time.Now().UTC(),
		Mode:      mode,
		Source:    source,
		Site:      review.SiteOf(source),
		Threshold: threshold.String(),
		Reviews:   len(reviews),
		Fake:      review.CountFake(reviews),
	}
	if mean, ok := aggregate.RatingDistribution(reviews).Mean(); ok {
		e.MeanRating = &mean
	}
	return e
}

// Store wraps the SQLite history database
type Store struct {
	conn *sql.DB
	path string
}

// Open creates or opens the history database at path
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	if err := migrate(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Store{conn: conn, path: path}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Record inserts an entry and returns its ID
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	var mean sql.NullFloat64
	if e.MeanRating != nil {
		mean = sql.NullFloat64{Float64: *e.MeanRating, Valid: true}
	}

	result, err := s.conn.ExecContext(ctx,
		`INSERT INTO analyses (analyzed_at, mode, source, site, threshold, reviews, fake, mean_rating)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.At.UTC().Format(timeLayout), e.Mode, e.Source, e.Site, e.Threshold, e.Reviews, e.Fake, mean,
	)
	if err != nil {
		return 0, fmt.Errorf("recording analysis: %w", err)
	}
	return result.LastInsertId()
}

// List returns the most recent entries, newest first
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, analyzed_at, mode, source, site, threshold, reviews, fake, mean_rating
		FROM analyses ORDER BY analyzed_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e    Entry
			at   string
			mean sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &at, &e.Mode, &e.Source, &e.Site, &e.Threshold, &e.Reviews, &e.Fake, &mean); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		if e.At, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", at, err)
		}
		if mean.Valid {
			m := mean.Float64
			e.MeanRating = &m
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes every entry and returns how many were removed
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.conn.ExecContext(ctx, "DELETE FROM analyses")
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	return result.RowsAffected()
}
