package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS track_ratings (
    id TEXT PRIMARY KEY,
    track_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    rating INTEGER NOT NULL CHECK (rating IN (1, -1)),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(track_id, user_id)
)`

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// SQLiteStore backs the rating store with an embedded SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database file and ensures the
// ratings schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create ratings table: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// SubmitVote upserts the pair's vote. The conflict target is the
// UNIQUE(track_id, user_id) constraint, so a repeat vote lands on the
// existing row and refreshes its timestamp.
func (s *SQLiteStore) SubmitVote(ctx context.Context, trackID, userID string, rating int) error {
	err := retryOnBusy(ctx, func() error {
		_, execErr := s.db.ExecContext(
			ctx,
			`INSERT INTO track_ratings (id, track_id, user_id, rating)
             VALUES (?, ?, ?, ?)
             ON CONFLICT(track_id, user_id)
             DO UPDATE SET rating = excluded.rating, created_at = CURRENT_TIMESTAMP`,
			uuid.NewString(),
			trackID,
			userID,
			rating,
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("upsert vote: %w", err)
	}
	return nil
}

// GetCounts tallies a track's votes grouped by rating value.
func (s *SQLiteStore) GetCounts(ctx context.Context, trackID string) (Counts, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT rating, COUNT(*) FROM track_ratings WHERE track_id = ? GROUP BY rating`,
		trackID,
	)
	if err != nil {
		return Counts{}, fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()

	var counts Counts
	for rows.Next() {
		var rating, count int
		if scanErr := rows.Scan(&rating, &count); scanErr != nil {
			return Counts{}, fmt.Errorf("scan counts: %w", scanErr)
		}
		switch rating {
		case 1:
			counts.ThumbsUp = count
		case -1:
			counts.ThumbsDown = count
		}
	}
	if err := rows.Err(); err != nil {
		return Counts{}, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

// GetUserVote returns the user's current vote for a track.
func (s *SQLiteStore) GetUserVote(ctx context.Context, trackID, userID string) (int, bool, error) {
	var rating int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT rating FROM track_ratings WHERE track_id = ? AND user_id = ?`,
		trackID,
		userID,
	).Scan(&rating)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query user vote: %w", err)
	}
	return rating, true, nil
}
