package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores a JSON array of strings in a jsonb column (tags, image URLs).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

type Discussion struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	AuthorID     string     `json:"authorId" gorm:"not null;index"`
	AuthorName   string     `json:"authorName" gorm:"not null"`
	AuthorAvatar string     `json:"authorAvatar"`
	Title        string     `json:"title" gorm:"not null"`
	Content      string     `json:"content" gorm:"type:text;not null"`
	Category     string     `json:"category" gorm:"default:Discussion;index"`
	Tags         StringList `json:"tags" gorm:"type:jsonb"`
	Images       StringList `json:"images" gorm:"type:jsonb"`
	Upvotes      int        `json:"upvotes" gorm:"default:0"`
	Downvotes    int        `json:"downvotes" gorm:"default:0"`
	Upvoters     UserIDSet  `json:"upvoters" gorm:"type:jsonb"`
	Downvoters   UserIDSet  `json:"downvoters" gorm:"type:jsonb"`
	ReplyCount   int        `json:"replyCount" gorm:"default:0"`
	Views        int        `json:"views" gorm:"default:0"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type Reply struct {
	ID            string     `json:"id" gorm:"primaryKey;size:36"`
	DiscussionID  string     `json:"discussionId" gorm:"not null;index;size:36"`
	ParentReplyID *string    `json:"parentReplyId" gorm:"index;size:36"`
	AuthorID      string     `json:"authorId" gorm:"not null;index"`
	AuthorName    string     `json:"authorName" gorm:"not null"`
	AuthorAvatar  string     `json:"authorAvatar"`
	Content       string     `json:"content" gorm:"type:text;not null"`
	Images        StringList `json:"images" gorm:"type:jsonb"`
	Upvotes       int        `json:"upvotes" gorm:"default:0"`
	Downvotes     int        `json:"downvotes" gorm:"default:0"`
	Upvoters      UserIDSet  `json:"upvoters" gorm:"type:jsonb"`
	Downvoters    UserIDSet  `json:"downvoters" gorm:"type:jsonb"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (d *Discussion) ensureVoterSets() {
	if d.Upvoters == nil {
		d.Upvoters = UserIDSet{}
	}
	if d.Downvoters == nil {
		d.Downvoters = UserIDSet{}
	}
}

// ApplyVote toggles the user's vote. The vote type must already be validated
// as "up" or "down".
func (d *Discussion) ApplyVote(userID string, voteType VoteType) {
	d.ensureVoterSets()
	if voteType == VoteUp {
		toggleVote(userID, &d.Upvotes, d.Upvoters, &d.Downvotes, d.Downvoters)
	} else {
		toggleVote(userID, &d.Downvotes, d.Downvoters, &d.Upvotes, d.Upvoters)
	}
}

func (r *Reply) ensureVoterSets() {
	if r.Upvoters == nil {
		r.Upvoters = UserIDSet{}
	}
	if r.Downvoters == nil {
		r.Downvoters = UserIDSet{}
	}
}

// ApplyVote toggles the user's vote. The vote type must already be validated
// as "up" or "down".
func (r *Reply) ApplyVote(userID string, voteType VoteType) {
	r.ensureVoterSets()
	if voteType == VoteUp {
		toggleVote(userID, &r.Upvotes, r.Upvoters, &r.Downvotes, r.Downvoters)
	} else {
		toggleVote(userID, &r.Downvotes, r.Downvoters, &r.Upvotes, r.Upvoters)
	}
}
