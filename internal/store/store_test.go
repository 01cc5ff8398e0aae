package store

import (
	"context"
	"sync"
	"testing"
)

// runStoreContract exercises the Store behavior both engines must
// share: atomic upsert semantics, count aggregation, and per-user
// lookups.
func runStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty state", func(t *testing.T) {
		counts, err := s.GetCounts(ctx, "never-voted-track")
		if err != nil {
			t.Fatalf("GetCounts returned error %v", err)
		}
		if counts.ThumbsUp != 0 || counts.ThumbsDown != 0 {
			t.Errorf("GetCounts = %+v; want zero counts", counts)
		}

		_, found, err := s.GetUserVote(ctx, "never-voted-track", "anyuser")
		if err != nil {
			t.Fatalf("GetUserVote returned error %v", err)
		}
		if found {
			t.Error("GetUserVote found a vote on an unvoted track")
		}
	})

	t.Run("idempotent resubmit", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := s.SubmitVote(ctx, "idem-track", "user-a", 1); err != nil {
				t.Fatalf("SubmitVote returned error %v", err)
			}
		}

		counts, err := s.GetCounts(ctx, "idem-track")
		if err != nil {
			t.Fatalf("GetCounts returned error %v", err)
		}
		if counts.ThumbsUp != 1 || counts.ThumbsDown != 0 {
			t.Errorf("GetCounts = %+v; want {1 0}", counts)
		}
	})

	t.Run("overwrite flips the vote", func(t *testing.T) {
		if err := s.SubmitVote(ctx, "flip-track", "user-a", 1); err != nil {
			t.Fatalf("SubmitVote returned error %v", err)
		}
		if err := s.SubmitVote(ctx, "flip-track", "user-a", -1); err != nil {
			t.Fatalf("SubmitVote returned error %v", err)
		}

		counts, err := s.GetCounts(ctx, "flip-track")
		if err != nil {
			t.Fatalf("GetCounts returned error %v", err)
		}
		if counts.ThumbsUp != 0 || counts.ThumbsDown != 1 {
			t.Errorf("GetCounts = %+v; want {0 1}", counts)
		}

		rating, found, err := s.GetUserVote(ctx, "flip-track", "user-a")
		if err != nil {
			t.Fatalf("GetUserVote returned error %v", err)
		}
		if !found || rating != -1 {
			t.Errorf("GetUserVote = (%d, %v); want (-1, true)", rating, found)
		}
	})

	t.Run("votes are independent per user", func(t *testing.T) {
		if err := s.SubmitVote(ctx, "multi-track", "user-a", 1); err != nil {
			t.Fatalf("SubmitVote returned error %v", err)
		}
		if err := s.SubmitVote(ctx, "multi-track", "user-b", -1); err != nil {
			t.Fatalf("SubmitVote returned error %v", err)
		}

		counts, err := s.GetCounts(ctx, "multi-track")
		if err != nil {
			t.Fatalf("GetCounts returned error %v", err)
		}
		if counts.ThumbsUp != 1 || counts.ThumbsDown != 1 {
			t.Errorf("GetCounts = %+v; want {1 1}", counts)
		}
	})

	t.Run("votes are independent per track", func(t *testing.T) {
		if err := s.SubmitVote(ctx, "track-a", "user-a", 1); err != nil {
			t.Fatalf("SubmitVote returned error %v", err)
		}

		counts, err := s.GetCounts(ctx, "track-b")
		if err != nil {
			t.Fatalf("GetCounts returned error %v", err)
		}
		if counts.ThumbsUp != 0 || counts.ThumbsDown != 0 {
			t.Errorf("GetCounts on untouched track = %+v; want zero counts", counts)
		}
	})

	t.Run("schema rejects out-of-range ratings", func(t *testing.T) {
		if err := s.SubmitVote(ctx, "check-track", "user-a", 0); err == nil {
			t.Error("SubmitVote accepted rating 0; the CHECK constraint should reject it")
		}
	})

	t.Run("concurrent votes collapse to one row", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			rating := 1
			if i%2 == 0 {
				rating = -1
			}
			wg.Add(1)
			go func(rating int) {
				defer wg.Done()
				if err := s.SubmitVote(ctx, "race-track", "user-a", rating); err != nil {
					t.Errorf("SubmitVote returned error %v", err)
				}
			}(rating)
		}
		wg.Wait()

		counts, err := s.GetCounts(ctx, "race-track")
		if err != nil {
			t.Fatalf("GetCounts returned error %v", err)
		}
		if counts.ThumbsUp+counts.ThumbsDown != 1 {
			t.Errorf("GetCounts = %+v; want exactly one vote recorded", counts)
		}
	})
}
