package model

import (
	"encoding/json"
)

// SubmitRatingRequest is the POST /api/ratings body. Rating stays a
// json.Number until validated so quoted or fractional values are
// rejected instead of silently coerced.
type SubmitRatingRequest struct {
	TrackID string      `json:"trackId" validate:"required"`
	Rating  json.Number `json:"rating" validate:"required,rating"`
}

type SubmitRatingResponse struct {
	Success bool   `json:"success"`
	TrackID string `json:"trackId"`
	Rating  int    `json:"rating"`
}

// UserRatingResponse renders as {"rating": null} when the caller has
// not voted on the track.
type UserRatingResponse struct {
	Rating *int `json:"rating"`
}
