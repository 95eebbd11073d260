package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/showroom/app/services"
	"github.com/shashiranjanraj/showroom/pkg/bind"
	"github.com/shashiranjanraj/showroom/pkg/middleware"
	"github.com/shashiranjanraj/showroom/pkg/response"
)

type ReviewController struct {
	reviews  *services.ReviewService
	pageSize int
}

func NewReviewController(reviews *services.ReviewService, pageSize int) *ReviewController {
	return &ReviewController{reviews: reviews, pageSize: pageSize}
}

// Index lists a vehicle's reviews, newest first. Public route.
func (c *ReviewController) Index(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	reviews, p, err := c.reviews.ListForVehicle(r.Context(), vehicleID, queryInt(r, "page", 1), c.pageSize)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Paginated(w, reviews, p)
}

type reviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"nullable,max=2000"`
}

// Store creates a review for a vehicle the caller has taken delivery of.
func (c *ReviewController) Store(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	vehicleID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var in reviewInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	review, err := c.reviews.Create(r.Context(), userID, vehicleID, in.Rating, in.Comment)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Created(w, review)
}

// Update edits an owned review.
func (c *ReviewController) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	reviewID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}

	var in reviewInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	review, err := c.reviews.Update(r.Context(), userID, reviewID, in.Rating, in.Comment)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, review)
}

// Destroy removes an owned review.
func (c *ReviewController) Destroy(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	reviewID, ok := uintParam(w, r, "id")
	if !ok {
		return
	}
	if err := c.reviews.Delete(r.Context(), userID, reviewID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.NoContent(w)
}
