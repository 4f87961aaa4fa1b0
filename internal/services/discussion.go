package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/phonedex/phonedex-backend/internal/models"
	"github.com/phonedex/phonedex-backend/internal/utils"
	"gorm.io/gorm"
)

const (
	FilterRecent   = "recent"
	FilterTrending = "trending"
	FilterPopular  = "popular"

	DefaultDiscussionPageSize = 20
	MaxDiscussionPageSize     = 100
)

// DiscussionQuery describes a listing request after normalization.
type DiscussionQuery struct {
	Page       int
	Limit      int
	Filter     string
	Search     string
	Categories []string
}

// DiscussionRepository is the persistence handle the discussion engine works
// against. Mutate calls run their callback inside a per-entity locked
// transaction; a callback error aborts the write and surfaces unchanged.
type DiscussionRepository interface {
	CreateDiscussion(ctx context.Context, d *models.Discussion) error
	GetDiscussion(ctx context.Context, id string) (*models.Discussion, error)
	MutateDiscussion(ctx context.Context, id string, fn func(*models.Discussion) error) (*models.Discussion, error)
	// DeleteDiscussionCascade removes the discussion and every reply that
	// references it in one transaction.
	DeleteDiscussionCascade(ctx context.Context, id string) error
	ListDiscussions(ctx context.Context, q DiscussionQuery) ([]models.Discussion, int64, error)

	// CreateReply inserts the reply and bumps the parent's reply count in one
	// transaction; DeleteReply is the mirror operation.
	CreateReply(ctx context.Context, r *models.Reply) error
	GetReply(ctx context.Context, id string) (*models.Reply, error)
	MutateReply(ctx context.Context, id string, fn func(*models.Reply) error) (*models.Reply, error)
	DeleteReply(ctx context.Context, r *models.Reply) error
	ListReplies(ctx context.Context, discussionID string) ([]models.Reply, error)
}

type DiscussionService struct {
	repo DiscussionRepository
}

func NewDiscussionService(repo DiscussionRepository) *DiscussionService {
	if repo == nil {
		panic("discussion repository cannot be nil")
	}
	return &DiscussionService{repo: repo}
}

type CreateDiscussionInput struct {
	AuthorID     string
	AuthorName   string
	AuthorAvatar string
	Title        string
	Content      string
	Category     string
	Tags         []string
	Images       []string
}

type CreateReplyInput struct {
	DiscussionID  string
	AuthorID      string
	AuthorName    string
	AuthorAvatar  string
	Content       string
	Images        []string
	ParentReplyID *string
}

// DiscussionPage is one listing window plus its totals.
type DiscussionPage struct {
	Discussions      []models.Discussion `json:"discussions"`
	TotalDiscussions int64               `json:"totalDiscussions"`
	TotalPages       int                 `json:"totalPages"`
	CurrentPage      int                 `json:"currentPage"`
}

func (s *DiscussionService) Create(ctx context.Context, in CreateDiscussionInput) (*models.Discussion, error) {
	title := utils.SanitizeString(in.Title)
	content := utils.SanitizeString(in.Content)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidArgument)
	}

	category := in.Category
	if category == "" {
		category = "Discussion"
	}
	avatar := in.AuthorAvatar
	if avatar == "" {
		avatar = defaultAvatarURL(in.AuthorName)
	}

	d := &models.Discussion{
		ID:           uuid.NewString(),
		AuthorID:     in.AuthorID,
		AuthorName:   in.AuthorName,
		AuthorAvatar: avatar,
		Title:        title,
		Content:      content,
		Category:     category,
		Tags:         in.Tags,
		Images:       in.Images,
		Upvoters:     models.UserIDSet{},
		Downvoters:   models.UserIDSet{},
	}
	if d.Tags == nil {
		d.Tags = models.StringList{}
	}
	if d.Images == nil {
		d.Images = models.StringList{}
	}

	if err := s.repo.CreateDiscussion(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DiscussionService) List(ctx context.Context, q DiscussionQuery) (*DiscussionPage, error) {
	q.normalize()

	discussions, total, err := s.repo.ListDiscussions(ctx, q)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / q.Limit
	if int(total)%q.Limit > 0 {
		totalPages++
	}

	return &DiscussionPage{
		Discussions:      discussions,
		TotalDiscussions: total,
		TotalPages:       totalPages,
		CurrentPage:      q.Page,
	}, nil
}

// Get fetches one discussion; detail reads bump the view counter.
func (s *DiscussionService) Get(ctx context.Context, id string, incrementViews bool) (*models.Discussion, error) {
	if !incrementViews {
		d, err := s.repo.GetDiscussion(ctx, id)
		if err != nil {
			return nil, notFoundOr(err, "discussion %s", id)
		}
		return d, nil
	}

	d, err := s.repo.MutateDiscussion(ctx, id, func(d *models.Discussion) error {
		d.Views++
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, "discussion %s", id)
	}
	return d, nil
}

// Vote toggles the user's up/down vote on a discussion.
func (s *DiscussionService) Vote(ctx context.Context, id, userID, voteType string) (*models.Discussion, error) {
	vt, err := parseVoteType(voteType, models.VoteUp, models.VoteDown)
	if err != nil {
		return nil, err
	}

	d, err := s.repo.MutateDiscussion(ctx, id, func(d *models.Discussion) error {
		d.ApplyVote(userID, vt)
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, "discussion %s", id)
	}
	return d, nil
}

// Delete removes a discussion and all of its replies. Author only.
func (s *DiscussionService) Delete(ctx context.Context, id, userID string) error {
	d, err := s.repo.GetDiscussion(ctx, id)
	if err != nil {
		return notFoundOr(err, "discussion %s", id)
	}
	if err := ownerOnly(d.AuthorID, userID); err != nil {
		return err
	}
	return s.repo.DeleteDiscussionCascade(ctx, id)
}

func (s *DiscussionService) AddReply(ctx context.Context, in CreateReplyInput) (*models.Reply, error) {
	content := utils.SanitizeString(in.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidArgument)
	}

	if _, err := s.repo.GetDiscussion(ctx, in.DiscussionID); err != nil {
		return nil, notFoundOr(err, "discussion %s", in.DiscussionID)
	}

	avatar := in.AuthorAvatar
	if avatar == "" {
		avatar = defaultAvatarURL(in.AuthorName)
	}

	r := &models.Reply{
		ID:            uuid.NewString(),
		DiscussionID:  in.DiscussionID,
		ParentReplyID: in.ParentReplyID,
		AuthorID:      in.AuthorID,
		AuthorName:    in.AuthorName,
		AuthorAvatar:  avatar,
		Content:       content,
		Images:        in.Images,
		Upvoters:      models.UserIDSet{},
		Downvoters:    models.UserIDSet{},
	}
	if r.Images == nil {
		r.Images = models.StringList{}
	}

	if err := s.repo.CreateReply(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Replies returns a discussion's replies, oldest first.
func (s *DiscussionService) Replies(ctx context.Context, discussionID string) ([]models.Reply, error) {
	if _, err := s.repo.GetDiscussion(ctx, discussionID); err != nil {
		return nil, notFoundOr(err, "discussion %s", discussionID)
	}
	return s.repo.ListReplies(ctx, discussionID)
}

// VoteReply toggles the user's up/down vote on a reply.
func (s *DiscussionService) VoteReply(ctx context.Context, replyID, userID, voteType string) (*models.Reply, error) {
	vt, err := parseVoteType(voteType, models.VoteUp, models.VoteDown)
	if err != nil {
		return nil, err
	}

	r, err := s.repo.MutateReply(ctx, replyID, func(r *models.Reply) error {
		r.ApplyVote(userID, vt)
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, "reply %s", replyID)
	}
	return r, nil
}

// DeleteReply removes a single reply. Author only.
func (s *DiscussionService) DeleteReply(ctx context.Context, replyID, userID string) error {
	r, err := s.repo.GetReply(ctx, replyID)
	if err != nil {
		return notFoundOr(err, "reply %s", replyID)
	}
	if err := ownerOnly(r.AuthorID, userID); err != nil {
		return err
	}
	return s.repo.DeleteReply(ctx, r)
}

func (q *DiscussionQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultDiscussionPageSize
	}
	if q.Limit > MaxDiscussionPageSize {
		q.Limit = MaxDiscussionPageSize
	}
	switch q.Filter {
	case FilterRecent, FilterTrending, FilterPopular:
	default:
		q.Filter = FilterTrending
	}
	q.Search = utils.SanitizeString(q.Search)
}

// parseVoteType checks the wire label against the two directions valid for the
// entity kind. Fails fast, before any persistence read.
func parseVoteType(raw string, a, b models.VoteType) (models.VoteType, error) {
	switch models.VoteType(raw) {
	case a, b:
		return models.VoteType(raw), nil
	default:
		return "", fmt.Errorf("%w: voteType must be %q or %q", ErrInvalidArgument, a, b)
	}
}

func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
	}
	return err
}

func defaultAvatarURL(name string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(name)
}
