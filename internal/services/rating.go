package services

import (
	"math"

	"github.com/phonedex/phonedex-backend/internal/models"
	"github.com/phonedex/phonedex-backend/internal/utils"
)

// ComputeOverallRating returns the mean of the five category ratings rounded
// half-away-from-zero to one decimal place. Inputs are validated in [1,5] by
// the caller before this runs.
func ComputeOverallRating(cr models.CategoryRatings) float64 {
	sum := cr.Camera + cr.Battery + cr.Design + cr.Performance + cr.Value
	mean := float64(sum) / 5.0
	return math.Round(mean*10) / 10
}

// RatingSummary aggregates a phone's review collection.
type RatingSummary struct {
	Camera      float64 `json:"camera"`
	Battery     float64 `json:"battery"`
	Design      float64 `json:"design"`
	Performance float64 `json:"performance"`
	Value       float64 `json:"value"`
	Overall     float64 `json:"overall"`
	Count       int     `json:"count"`
}

// AggregateReviews computes per-category and overall averages across reviews.
// An empty collection yields zeros, not an error.
func AggregateReviews(reviews []models.Review) RatingSummary {
	n := len(reviews)
	if n == 0 {
		return RatingSummary{}
	}

	var camera, battery, design, performance, value, overall float64
	for i := range reviews {
		cr := reviews[i].CategoryRatings
		camera += float64(cr.Camera)
		battery += float64(cr.Battery)
		design += float64(cr.Design)
		performance += float64(cr.Performance)
		value += float64(cr.Value)
		overall += reviews[i].Rating
	}

	round1 := func(v float64) float64 { return math.Round(v/float64(n)*10) / 10 }
	return RatingSummary{
		Camera:      round1(camera),
		Battery:     round1(battery),
		Design:      round1(design),
		Performance: round1(performance),
		Value:       round1(value),
		Overall:     round1(overall),
		Count:       n,
	}
}

// ValidateCategoryRatings checks every category sits in [1,5].
func ValidateCategoryRatings(cr models.CategoryRatings) error {
	for _, v := range []int{cr.Camera, cr.Battery, cr.Design, cr.Performance, cr.Value} {
		if !utils.IsValidRating(v) {
			return ErrInvalidArgument
		}
	}
	return nil
}
