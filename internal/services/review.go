package services

import (
	"context"
	"fmt"
	"time"

	"github.com/phonedex/phonedex-backend/internal/models"
	"github.com/phonedex/phonedex-backend/internal/utils"
)

const (
	DefaultReviewPageSize = 10
	MaxReviewPageSize     = 100
)

type ReviewService struct {
	phones PhoneRepository
}

func NewReviewService(phones PhoneRepository) *ReviewService {
	if phones == nil {
		panic("phone repository cannot be nil")
	}
	return &ReviewService{phones: phones}
}

type AddReviewInput struct {
	UserID          string
	UserName        string
	CategoryRatings models.CategoryRatings
	Title           string
	Body            string
}

// ReviewPage is one window of a phone's review collection, newest first.
type ReviewPage struct {
	Reviews      []models.Review `json:"reviews"`
	TotalReviews int             `json:"totalReviews"`
	TotalPages   int             `json:"totalPages"`
	CurrentPage  int             `json:"currentPage"`
}

// Add inserts a new review at the head of the phone's collection. A user may
// hold at most one review per phone; the overall rating is derived from the
// category ratings and never settable directly.
func (s *ReviewService) Add(ctx context.Context, phoneID string, in AddReviewInput) (*models.Review, error) {
	title := utils.SanitizeString(in.Title)
	body := utils.SanitizeString(in.Body)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if body == "" {
		return nil, fmt.Errorf("%w: review text is required", ErrInvalidArgument)
	}
	if err := ValidateCategoryRatings(in.CategoryRatings); err != nil {
		return nil, fmt.Errorf("%w: category ratings must be between 1 and 5", ErrInvalidArgument)
	}

	var created models.Review
	_, err := s.phones.MutatePhone(ctx, phoneID, func(p *models.Phone) error {
		if p.Reviews.FindByAuthor(in.UserID) >= 0 {
			return fmt.Errorf("%w: user has already reviewed this phone", ErrConflict)
		}

		created = models.Review{
			ID:               p.Reviews.NextID(),
			UserID:           in.UserID,
			UserName:         in.UserName,
			Rating:           ComputeOverallRating(in.CategoryRatings),
			CategoryRatings:  in.CategoryRatings,
			Date:             time.Now().Format("January 2, 2006"),
			Title:            title,
			Review:           body,
			HelpfulVoters:    models.UserIDSet{},
			NotHelpfulVoters: models.UserIDSet{},
		}
		p.Reviews = append(models.ReviewList{created}, p.Reviews...)
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, "phone %s", phoneID)
	}
	return &created, nil
}

// ListForPhone pages through a phone's reviews, newest first.
func (s *ReviewService) ListForPhone(ctx context.Context, phoneID string, page, limit int) (*ReviewPage, error) {
	if limit < 1 {
		limit = DefaultReviewPageSize
	}
	if limit > MaxReviewPageSize {
		limit = MaxReviewPageSize
	}

	phone, err := s.phones.GetPhone(ctx, phoneID)
	if err != nil {
		return nil, notFoundOr(err, "phone %s", phoneID)
	}

	window := utils.Paginate([]models.Review(phone.Reviews), page, limit)
	return &ReviewPage{
		Reviews:      window.Items,
		TotalReviews: window.TotalItems,
		TotalPages:   window.TotalPages,
		CurrentPage:  window.CurrentPage,
	}, nil
}

// Vote toggles the user's helpful/notHelpful vote on a review.
func (s *ReviewService) Vote(ctx context.Context, phoneID string, reviewID int, userID, voteType string) (*models.Review, error) {
	vt, err := parseVoteType(voteType, models.VoteHelpful, models.VoteNotHelpful)
	if err != nil {
		return nil, err
	}

	var voted models.Review
	_, err = s.phones.MutatePhone(ctx, phoneID, func(p *models.Phone) error {
		idx := p.Reviews.FindByID(reviewID)
		if idx < 0 {
			return fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
		}
		p.Reviews[idx].ApplyVote(userID, vt)
		voted = p.Reviews[idx]
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, "phone %s", phoneID)
	}
	return &voted, nil
}

// Remove deletes a review from its phone's collection. Author only.
func (s *ReviewService) Remove(ctx context.Context, phoneID string, reviewID int, userID string) error {
	_, err := s.phones.MutatePhone(ctx, phoneID, func(p *models.Phone) error {
		idx := p.Reviews.FindByID(reviewID)
		if idx < 0 {
			return fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
		}
		if err := ownerOnly(p.Reviews[idx].UserID, userID); err != nil {
			return err
		}
		p.Reviews = append(p.Reviews[:idx], p.Reviews[idx+1:]...)
		return nil
	})
	return notFoundOr(err, "phone %s", phoneID)
}

// Get fetches a single review by its per-phone id.
func (s *ReviewService) Get(ctx context.Context, phoneID string, reviewID int) (*models.Review, error) {
	phone, err := s.phones.GetPhone(ctx, phoneID)
	if err != nil {
		return nil, notFoundOr(err, "phone %s", phoneID)
	}
	idx := phone.Reviews.FindByID(reviewID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
	}
	review := phone.Reviews[idx]
	return &review, nil
}

// Summary aggregates per-category and overall averages for a phone.
func (s *ReviewService) Summary(ctx context.Context, phoneID string) (*RatingSummary, error) {
	phone, err := s.phones.GetPhone(ctx, phoneID)
	if err != nil {
		return nil, notFoundOr(err, "phone %s", phoneID)
	}
	summary := AggregateReviews(phone.Reviews)
	return &summary, nil
}
