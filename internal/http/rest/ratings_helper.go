// internal/http/rest/ratings_helper.go
package rest

import (
	"context"

	"github.com/willmarzolf/radio-calico/internal/store"
	"github.com/willmarzolf/radio-calico/util/values"
)

func (api *API) SubmitRatingHelper(ctx context.Context, trackID, userID string, rating int) (string, string, error) {
	if err := api.Store.SubmitVote(ctx, trackID, userID, rating); err != nil {
		return values.Error, "Failed to submit rating", err
	}
	return values.Success, "Rating submitted successfully", nil
}

func (api *API) GetTrackRatingsHelper(ctx context.Context, trackID string) (store.Counts, string, string, error) {
	counts, err := api.Store.GetCounts(ctx, trackID)
	if err != nil {
		return store.Counts{}, values.Error, "Failed to fetch ratings", err
	}
	return counts, values.Success, "Ratings fetched successfully", nil
}

func (api *API) GetUserRatingHelper(ctx context.Context, trackID, userID string) (int, bool, string, string, error) {
	rating, found, err := api.Store.GetUserVote(ctx, trackID, userID)
	if err != nil {
		return 0, false, values.Error, "Failed to fetch user rating", err
	}
	return rating, found, values.Success, "User rating fetched successfully", nil
}
