package repository

import (
	"context"
	"strings"

	"github.com/phonedex/phonedex-backend/internal/models"
	"github.com/phonedex/phonedex-backend/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DiscussionRepository is the gorm-backed store for discussions and replies.
// Mutations run under a SELECT ... FOR UPDATE row lock so concurrent votes on
// the same entity serialize while different entities proceed independently.
type DiscussionRepository struct {
	db *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) *DiscussionRepository {
	return &DiscussionRepository{db: db}
}

func (r *DiscussionRepository) CreateDiscussion(ctx context.Context, d *models.Discussion) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DiscussionRepository) GetDiscussion(ctx context.Context, id string) (*models.Discussion, error) {
	var d models.Discussion
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DiscussionRepository) MutateDiscussion(ctx context.Context, id string, fn func(*models.Discussion) error) (*models.Discussion, error) {
	var out *models.Discussion
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d models.Discussion
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&d, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&d); err != nil {
			return err
		}
		if err := tx.Save(&d).Error; err != nil {
			return err
		}
		out = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteDiscussionCascade removes the discussion and all of its replies in one
// transaction, so no reply ever references a missing discussion.
func (r *DiscussionRepository) DeleteDiscussionCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("discussion_id = ?", id).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Discussion{}, "id = ?", id).Error
	})
}

func (r *DiscussionRepository) ListDiscussions(ctx context.Context, q services.DiscussionQuery) ([]models.Discussion, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Discussion{})

	if q.Search != "" {
		term := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags::text) LIKE ?",
			term, term, term,
		)
	}
	if len(q.Categories) > 0 {
		query = query.Where("category IN ?", q.Categories)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch q.Filter {
	case services.FilterRecent:
		query = query.Order("created_at DESC")
	case services.FilterPopular:
		query = query.Order("upvotes DESC").Order("reply_count DESC").Order("views DESC")
	default: // trending
		query = query.Order("created_at DESC").Order("upvotes DESC").Order("reply_count DESC")
	}

	var discussions []models.Discussion
	offset := (q.Page - 1) * q.Limit
	if err := query.Offset(offset).Limit(q.Limit).Find(&discussions).Error; err != nil {
		return nil, 0, err
	}
	return discussions, total, nil
}

// CreateReply inserts the reply and bumps the parent's reply count together.
func (r *DiscussionRepository) CreateReply(ctx context.Context, reply *models.Reply) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reply).Error; err != nil {
			return err
		}
		return tx.Model(&models.Discussion{}).
			Where("id = ?", reply.DiscussionID).
			UpdateColumn("reply_count", gorm.Expr("reply_count + ?", 1)).Error
	})
}

func (r *DiscussionRepository) GetReply(ctx context.Context, id string) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.WithContext(ctx).First(&reply, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *DiscussionRepository) MutateReply(ctx context.Context, id string, fn func(*models.Reply) error) (*models.Reply, error) {
	var out *models.Reply
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reply models.Reply
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reply, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&reply); err != nil {
			return err
		}
		if err := tx.Save(&reply).Error; err != nil {
			return err
		}
		out = &reply
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteReply removes the reply and decrements the parent's reply count together.
func (r *DiscussionRepository) DeleteReply(ctx context.Context, reply *models.Reply) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Reply{}, "id = ?", reply.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Discussion{}).
			Where("id = ?", reply.DiscussionID).
			UpdateColumn("reply_count", gorm.Expr("reply_count - ?", 1)).Error
	})
}

func (r *DiscussionRepository) ListReplies(ctx context.Context, discussionID string) ([]models.Reply, error) {
	var replies []models.Reply
	if err := r.db.WithContext(ctx).
		Where("discussion_id = ?", discussionID).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}
