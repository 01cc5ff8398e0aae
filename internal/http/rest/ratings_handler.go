package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/willmarzolf/radio-calico/internal/identity"
	"github.com/willmarzolf/radio-calico/internal/model"
	"github.com/willmarzolf/radio-calico/util"
	"github.com/willmarzolf/radio-calico/util/tracing"
	"github.com/willmarzolf/radio-calico/util/values"
)

func (api *API) RatingRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Method(http.MethodPost, "/ratings", Handler(api.SubmitRating))
		r.Method(http.MethodGet, "/ratings/{trackID}", Handler(api.GetTrackRatings))
		r.Method(http.MethodGet, "/user-rating/{trackID}", Handler(api.GetUserRating))
		r.Method(http.MethodGet, "/now-playing", Handler(api.GetNowPlaying))
	})

	return mux
}

func (api *API) SubmitRating(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.SubmitRatingRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "Invalid request payload", values.BadRequestBody, &tc)
	}

	if req.TrackID == "" {
		return respondWithError(nil, "Track ID required", values.BadRequestBody, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "Rating must be 1 or -1", values.BadRequestBody, &tc)
	}

	rating, err := req.Rating.Int64()
	if err != nil {
		return respondWithError(err, "Rating must be 1 or -1", values.BadRequestBody, &tc)
	}

	userID := identity.FromRequest(r)

	status, message, err := api.SubmitRatingHelper(r.Context(), req.TrackID, userID, int(rating))
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data: model.SubmitRatingResponse{
			Success: true,
			TrackID: req.TrackID,
			Rating:  int(rating),
		},
	}
}

func (api *API) GetTrackRatings(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	trackID := chi.URLParam(r, "trackID")
	if trackID == "" {
		return respondWithError(nil, "Track ID required", values.BadRequestBody, &tc)
	}

	counts, status, message, err := api.GetTrackRatingsHelper(r.Context(), trackID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       counts,
	}
}

func (api *API) GetUserRating(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	trackID := chi.URLParam(r, "trackID")
	if trackID == "" {
		return respondWithError(nil, "Track ID required", values.BadRequestBody, &tc)
	}

	userID := identity.FromRequest(r)

	rating, found, status, message, err := api.GetUserRatingHelper(r.Context(), trackID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	resp := model.UserRatingResponse{}
	if found {
		resp.Rating = &rating
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       resp,
	}
}

func (api *API) GetNowPlaying(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	np, err := api.Metadata.NowPlaying(r.Context())
	if err != nil {
		return respondWithError(err, "Failed to fetch now playing metadata", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Now playing metadata fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       np,
	}
}
