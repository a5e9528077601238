package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/reviews"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const maxReviewText = 2000

type reviewsResponse struct {
	Reviews []reviews.Review `json:"reviews"`
	Stats   reviews.Stats    `json:"stats"`
}

type createReviewRequest struct {
	Rating int    `json:"rating" validate:"gte=1,lte=5"`
	Text   string `json:"text" validate:"required"`
	Image  string `json:"image"`
}

func newReviewsResponse(list []reviews.Review) reviewsResponse {
	if list == nil {
		list = []reviews.Review{}
	}
	return reviewsResponse{Reviews: list, Stats: reviews.ComputeStats(list)}
}

func ReviewsList(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}
		sessionID, err := sessionFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		r, productID, err := productRequest(r, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newReviewsResponse(svc.List(r.Context(), sessionID, productID)))
	}
}

func ReviewsCreate(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}
		sessionID, err := sessionFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		r, productID, err := productRequest(r, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req createReviewRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.Add(r.Context(), sessionID, productID, reviews.Input{
			Rating: req.Rating,
			Text:   validators.SanitizeString(req.Text, maxReviewText),
			Image:  req.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newReviewsResponse(list))
	}
}
