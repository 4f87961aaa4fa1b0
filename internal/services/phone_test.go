package services

import (
	"context"
	"errors"
	"testing"

	"github.com/phonedex/phonedex-backend/internal/models"
)

func TestPhoneFilterValidation(t *testing.T) {
	f := PhoneFilter{Page: -2, Limit: 500}
	if err := f.ValidateAndNormalize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Page != 1 || f.Limit != MaxPhonePageSize {
		t.Errorf("expected clamped page/limit, got page=%d limit=%d", f.Page, f.Limit)
	}

	bad := PhoneFilter{MinPrice: 900, MaxPrice: 100}
	if err := bad.ValidateAndNormalize(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for inverted price range, got %v", err)
	}

	negative := PhoneFilter{MinPrice: -1}
	if err := negative.ValidateAndNormalize(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for negative price, got %v", err)
	}
}

func TestCreatePhoneRejectsDuplicateSlug(t *testing.T) {
	repo := newFakePhoneRepo()
	s := NewPhoneService(repo)

	in := PhoneInput{ID: "galaxy-s25", Name: "Galaxy S25", Brand: "Samsung", Price: 899}
	if _, err := s.Create(context.Background(), in); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := s.Create(context.Background(), in); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestUpdatePhonePreservesReviews(t *testing.T) {
	repo := newFakePhoneRepo()
	s := NewPhoneService(repo)
	reviews := NewReviewService(repo)

	if _, err := s.Create(context.Background(), PhoneInput{ID: "galaxy-s25", Name: "Galaxy S25", Brand: "Samsung", Price: 899}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := reviews.Add(context.Background(), "galaxy-s25", AddReviewInput{
		UserID: "u1", UserName: "A", Title: "t", Body: "b", CategoryRatings: goodRatings(),
	}); err != nil {
		t.Fatalf("add review failed: %v", err)
	}

	updated, err := s.Update(context.Background(), "galaxy-s25", PhoneInput{
		ID: "galaxy-s25", Name: "Galaxy S25 Ultra", Brand: "Samsung", Price: 1199,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Galaxy S25 Ultra" || updated.Price != 1199 {
		t.Errorf("catalog fields not updated: %+v", updated)
	}
	if len(updated.Reviews) != 1 {
		t.Errorf("expected reviews preserved through update, got %d", len(updated.Reviews))
	}
}

func TestPhoneStats(t *testing.T) {
	repo := newFakePhoneRepo()
	s := NewPhoneService(repo)

	empty, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if empty.TotalPhones != 0 || empty.TotalReviews != 0 || empty.AverageRating != 0 {
		t.Errorf("expected zeroed stats, got %+v", empty)
	}

	repo.CreatePhone(context.Background(), &models.Phone{
		ID: "a", Name: "A", Brand: "X", Price: 100,
		Reviews: models.ReviewList{{ID: 1, UserID: "u1", Rating: 4.0}},
	})
	repo.CreatePhone(context.Background(), &models.Phone{
		ID: "b", Name: "B", Brand: "Y", Price: 200,
		Reviews: models.ReviewList{{ID: 1, UserID: "u2", Rating: 2.0}, {ID: 2, UserID: "u3", Rating: 5.0}},
	})

	got, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if got.TotalPhones != 2 || got.TotalReviews != 3 {
		t.Errorf("unexpected stats: %+v", got)
	}
	// 11/3 rounds to one decimal like every other exposed rating.
	if got.AverageRating != 3.7 {
		t.Errorf("expected average 3.7, got %v", got.AverageRating)
	}
}

func TestDeletePhoneMissing(t *testing.T) {
	s := NewPhoneService(newFakePhoneRepo())
	if err := s.Delete(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
