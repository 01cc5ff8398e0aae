package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/willmarzolf/radio-calico/internal/db"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS track_ratings (
    id UUID PRIMARY KEY,
    track_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    rating INTEGER NOT NULL CHECK (rating IN (1, -1)),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (track_id, user_id)
)`

// PostgresStore backs the rating store with a pgx connection pool.
type PostgresStore struct {
	db *db.DB
}

// OpenPostgres connects to the database named by dsn and ensures the
// ratings schema exists.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	database, err := db.New(dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if _, err := database.Pool().Exec(context.Background(), postgresSchema); err != nil {
		database.Close()
		return nil, fmt.Errorf("create ratings table: %w", err)
	}

	return &PostgresStore{db: database}, nil
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

// SubmitVote upserts the pair's vote on the (track_id, user_id)
// uniqueness constraint.
func (s *PostgresStore) SubmitVote(ctx context.Context, trackID, userID string, rating int) error {
	_, err := s.db.Pool().Exec(
		ctx,
		`INSERT INTO track_ratings (id, track_id, user_id, rating)
         VALUES ($1, $2, $3, $4)
         ON CONFLICT (track_id, user_id)
         DO UPDATE SET rating = EXCLUDED.rating, created_at = NOW()`,
		uuid.New(),
		trackID,
		userID,
		rating,
	)
	if err != nil {
		return fmt.Errorf("upsert vote: %w", err)
	}
	return nil
}

// GetCounts tallies a track's votes grouped by rating value.
func (s *PostgresStore) GetCounts(ctx context.Context, trackID string) (Counts, error) {
	rows, err := s.db.Pool().Query(
		ctx,
		`SELECT rating, COUNT(*) FROM track_ratings WHERE track_id = $1 GROUP BY rating`,
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
func (s *PostgresStore) GetUserVote(ctx context.Context, trackID, userID string) (int, bool, error) {
	var rating int
	err := s.db.Pool().QueryRow(
		ctx,
		`SELECT rating FROM track_ratings WHERE track_id = $1 AND user_id = $2`,
		trackID,
		userID,
	).Scan(&rating)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query user vote: %w", err)
	}
	return rating, true, nil
}
