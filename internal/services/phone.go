package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/phonedex/phonedex-backend/internal/models"
)

const (
	DefaultPhonePageSize = 10
	MaxPhonePageSize     = 100
	QueryTimeout         = 30 * time.Second
)

// PhoneRepository is the persistence handle for the catalog and, through
// MutatePhone, for the embedded review collections. MutatePhone runs its
// callback inside a per-row locked transaction; a callback error aborts the
// write and surfaces unchanged.
type PhoneRepository interface {
	CreatePhone(ctx context.Context, p *models.Phone) error
	GetPhone(ctx context.Context, id string) (*models.Phone, error)
	MutatePhone(ctx context.Context, id string, fn func(*models.Phone) error) (*models.Phone, error)
	DeletePhone(ctx context.Context, id string) error
	ListPhones(ctx context.Context, f PhoneFilter) ([]models.Phone, int64, error)
	AllPhones(ctx context.Context) ([]models.Phone, error)
}

type PhoneService struct {
	phones PhoneRepository
}

func NewPhoneService(phones PhoneRepository) *PhoneService {
	if phones == nil {
		panic("phone repository cannot be nil")
	}
	return &PhoneService{phones: phones}
}

type PhoneFilter struct {
	Brand    string  `form:"brand"`
	MinPrice float64 `form:"min_price"`
	MaxPrice float64 `form:"max_price"`
	Search   string  `form:"search"`
	Page     int     `form:"page"`
	Limit    int     `form:"limit"`
}

type PhonePage struct {
	Phones      []models.Phone `json:"phones"`
	TotalPhones int64          `json:"totalPhones"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

// ValidateAndNormalize clamps pagination and checks the price range.
func (f *PhoneFilter) ValidateAndNormalize() error {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPhonePageSize
	}
	if f.Limit > MaxPhonePageSize {
		f.Limit = MaxPhonePageSize
	}

	if f.MinPrice < 0 || f.MaxPrice < 0 {
		return fmt.Errorf("%w: prices cannot be negative", ErrInvalidArgument)
	}
	if f.MinPrice > 0 && f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return fmt.Errorf("%w: min_price cannot be greater than max_price", ErrInvalidArgument)
	}

	f.Search = strings.TrimSpace(f.Search)
	f.Brand = strings.TrimSpace(f.Brand)
	return nil
}

func (s *PhoneService) List(ctx context.Context, f PhoneFilter) (*PhonePage, error) {
	if err := f.ValidateAndNormalize(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	phones, total, err := s.phones.ListPhones(ctx, f)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / f.Limit
	if int(total)%f.Limit > 0 {
		totalPages++
	}

	return &PhonePage{
		Phones:      phones,
		TotalPhones: total,
		TotalPages:  totalPages,
		CurrentPage: f.Page,
	}, nil
}

func (s *PhoneService) Get(ctx context.Context, id string) (*models.Phone, error) {
	phone, err := s.phones.GetPhone(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "phone %s", id)
	}
	return phone, nil
}

type PhoneInput struct {
	ID          string             `json:"id" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	Brand       string             `json:"brand" binding:"required"`
	ReleaseDate time.Time          `json:"releaseDate"`
	Price       float64            `json:"price" binding:"required,gt=0"`
	ImageMain   string             `json:"imageMain"`
	Specs       models.PhoneSpecs  `json:"specs"`
	Carriers    models.CarrierList `json:"carrierCompatibility"`
}

// Create adds a phone to the catalog. The slug id must be unused.
func (s *PhoneService) Create(ctx context.Context, in PhoneInput) (*models.Phone, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, fmt.Errorf("%w: phone id is required", ErrInvalidArgument)
	}

	if _, err := s.phones.GetPhone(ctx, id); err == nil {
		return nil, fmt.Errorf("%w: phone %s already exists", ErrConflict, id)
	}

	phone := &models.Phone{
		ID:          id,
		Name:        in.Name,
		Brand:       in.Brand,
		ReleaseDate: in.ReleaseDate,
		Price:       in.Price,
		ImageMain:   in.ImageMain,
		Specs:       in.Specs,
		Carriers:    in.Carriers,
		Reviews:     models.ReviewList{},
	}
	if phone.Carriers == nil {
		phone.Carriers = models.CarrierList{}
	}

	if err := s.phones.CreatePhone(ctx, phone); err != nil {
		return nil, err
	}
	return phone, nil
}

// Update replaces the catalog fields of a phone. Reviews are untouched.
func (s *PhoneService) Update(ctx context.Context, id string, in PhoneInput) (*models.Phone, error) {
	phone, err := s.phones.MutatePhone(ctx, id, func(p *models.Phone) error {
		p.Name = in.Name
		p.Brand = in.Brand
		p.ReleaseDate = in.ReleaseDate
		p.Price = in.Price
		p.ImageMain = in.ImageMain
		p.Specs = in.Specs
		if in.Carriers != nil {
			p.Carriers = in.Carriers
		}
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, "phone %s", id)
	}
	return phone, nil
}

func (s *PhoneService) Delete(ctx context.Context, id string) error {
	if _, err := s.phones.GetPhone(ctx, id); err != nil {
		return notFoundOr(err, "phone %s", id)
	}
	return s.phones.DeletePhone(ctx, id)
}

// CatalogStats is the admin dashboard aggregate.
type CatalogStats struct {
	TotalPhones   int     `json:"totalPhones"`
	TotalReviews  int     `json:"totalReviews"`
	AverageRating float64 `json:"averageRating"`
}

func (s *PhoneService) Stats(ctx context.Context) (*CatalogStats, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	phones, err := s.phones.AllPhones(ctx)
	if err != nil {
		return nil, err
	}

	stats := &CatalogStats{TotalPhones: len(phones)}
	var ratingSum float64
	for i := range phones {
		for j := range phones[i].Reviews {
			stats.TotalReviews++
			ratingSum += phones[i].Reviews[j].Rating
		}
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = math.Round(ratingSum/float64(stats.TotalReviews)*10) / 10
	}
	return stats, nil
}
