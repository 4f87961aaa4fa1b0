package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/phonedex/phonedex-backend/internal/models"
	"gorm.io/gorm"
)

// In-memory repositories for exercising the engines without a database. A
// single mutex per store stands in for the row locks the gorm repositories
// take, which is enough to serialize per-entity mutation in tests.

type fakeDiscussionRepo struct {
	mu          sync.Mutex
	discussions map[string]*models.Discussion
	replies     map[string]*models.Reply
}

func newFakeDiscussionRepo() *fakeDiscussionRepo {
	return &fakeDiscussionRepo{
		discussions: make(map[string]*models.Discussion),
		replies:     make(map[string]*models.Reply),
	}
}

func cloneDiscussion(d *models.Discussion) *models.Discussion {
	c := *d
	c.Upvoters = models.NewUserIDSet()
	for id := range d.Upvoters {
		c.Upvoters.Add(id)
	}
	c.Downvoters = models.NewUserIDSet()
	for id := range d.Downvoters {
		c.Downvoters.Add(id)
	}
	return &c
}

func cloneReply(r *models.Reply) *models.Reply {
	c := *r
	c.Upvoters = models.NewUserIDSet()
	for id := range r.Upvoters {
		c.Upvoters.Add(id)
	}
	c.Downvoters = models.NewUserIDSet()
	for id := range r.Downvoters {
		c.Downvoters.Add(id)
	}
	return &c
}

func (f *fakeDiscussionRepo) CreateDiscussion(_ context.Context, d *models.Discussion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discussions[d.ID] = cloneDiscussion(d)
	return nil
}

func (f *fakeDiscussionRepo) GetDiscussion(_ context.Context, id string) (*models.Discussion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.discussions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneDiscussion(d), nil
}

func (f *fakeDiscussionRepo) MutateDiscussion(_ context.Context, id string, fn func(*models.Discussion) error) (*models.Discussion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.discussions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	return cloneDiscussion(d), nil
}

func (f *fakeDiscussionRepo) DeleteDiscussionCascade(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.discussions, id)
	for rid, r := range f.replies {
		if r.DiscussionID == id {
			delete(f.replies, rid)
		}
	}
	return nil
}

func (f *fakeDiscussionRepo) ListDiscussions(_ context.Context, q DiscussionQuery) ([]models.Discussion, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*models.Discussion
	for _, d := range f.discussions {
		if q.Search != "" {
			term := strings.ToLower(q.Search)
			hit := strings.Contains(strings.ToLower(d.Title), term) ||
				strings.Contains(strings.ToLower(d.Content), term)
			for _, tag := range d.Tags {
				if strings.Contains(strings.ToLower(tag), term) {
					hit = true
					break
				}
			}
			if !hit {
				continue
			}
		}
		if len(q.Categories) > 0 {
			found := false
			for _, cat := range q.Categories {
				if d.Category == cat {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		matched = append(matched, d)
	}

	// Same key order as the gorm repository's three modes.
	switch q.Filter {
	case FilterRecent:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	case FilterPopular:
		sort.SliceStable(matched, func(i, j int) bool {
			a, b := matched[i], matched[j]
			if a.Upvotes != b.Upvotes {
				return a.Upvotes > b.Upvotes
			}
			if a.ReplyCount != b.ReplyCount {
				return a.ReplyCount > b.ReplyCount
			}
			return a.Views > b.Views
		})
	default: // trending
		sort.SliceStable(matched, func(i, j int) bool {
			a, b := matched[i], matched[j]
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			if a.Upvotes != b.Upvotes {
				return a.Upvotes > b.Upvotes
			}
			return a.ReplyCount > b.ReplyCount
		})
	}

	total := int64(len(matched))
	start := (q.Page - 1) * q.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]models.Discussion, 0, end-start)
	for _, d := range matched[start:end] {
		out = append(out, *cloneDiscussion(d))
	}
	return out, total, nil
}

func (f *fakeDiscussionRepo) CreateReply(_ context.Context, r *models.Reply) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[r.ID] = cloneReply(r)
	if d, ok := f.discussions[r.DiscussionID]; ok {
		d.ReplyCount++
	}
	return nil
}

func (f *fakeDiscussionRepo) GetReply(_ context.Context, id string) (*models.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.replies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneReply(r), nil
}

func (f *fakeDiscussionRepo) MutateReply(_ context.Context, id string, fn func(*models.Reply) error) (*models.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.replies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if err := fn(r); err != nil {
		return nil, err
	}
	return cloneReply(r), nil
}

func (f *fakeDiscussionRepo) DeleteReply(_ context.Context, reply *models.Reply) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.replies, reply.ID)
	if d, ok := f.discussions[reply.DiscussionID]; ok {
		d.ReplyCount--
	}
	return nil
}

func (f *fakeDiscussionRepo) ListReplies(_ context.Context, discussionID string) ([]models.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reply
	for _, r := range f.replies {
		if r.DiscussionID == discussionID {
			out = append(out, *cloneReply(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeDiscussionRepo) countRepliesFor(discussionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.replies {
		if r.DiscussionID == discussionID {
			n++
		}
	}
	return n
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) MutateUser(_ context.Context, id string, fn func(*models.User) error) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if err := fn(u); err != nil {
		return nil, err
	}
	clone := *u
	return &clone, nil
}

type fakePhoneRepo struct {
	mu     sync.Mutex
	phones map[string]*models.Phone
}

func newFakePhoneRepo() *fakePhoneRepo {
	return &fakePhoneRepo{phones: make(map[string]*models.Phone)}
}

func clonePhone(p *models.Phone) *models.Phone {
	c := *p
	c.Reviews = make(models.ReviewList, len(p.Reviews))
	for i, r := range p.Reviews {
		cr := r
		cr.HelpfulVoters = models.NewUserIDSet()
		for id := range r.HelpfulVoters {
			cr.HelpfulVoters.Add(id)
		}
		cr.NotHelpfulVoters = models.NewUserIDSet()
		for id := range r.NotHelpfulVoters {
			cr.NotHelpfulVoters.Add(id)
		}
		c.Reviews[i] = cr
	}
	return &c
}

func (f *fakePhoneRepo) CreatePhone(_ context.Context, p *models.Phone) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phones[p.ID] = clonePhone(p)
	return nil
}

func (f *fakePhoneRepo) GetPhone(_ context.Context, id string) (*models.Phone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.phones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clonePhone(p), nil
}

func (f *fakePhoneRepo) MutatePhone(_ context.Context, id string, fn func(*models.Phone) error) (*models.Phone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.phones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	return clonePhone(p), nil
}

func (f *fakePhoneRepo) DeletePhone(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.phones, id)
	return nil
}

func (f *fakePhoneRepo) ListPhones(_ context.Context, filter PhoneFilter) ([]models.Phone, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*models.Phone
	for _, p := range f.phones {
		if filter.Brand != "" && !strings.EqualFold(p.Brand, filter.Brand) {
			continue
		}
		if filter.MinPrice > 0 && p.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && p.Price > filter.MaxPrice {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ReleaseDate.After(matched[j].ReleaseDate) })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]models.Phone, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, *clonePhone(p))
	}
	return out, total, nil
}

func (f *fakePhoneRepo) AllPhones(_ context.Context) ([]models.Phone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Phone, 0, len(f.phones))
	for _, p := range f.phones {
		out = append(out, *clonePhone(p))
	}
	return out, nil
}
