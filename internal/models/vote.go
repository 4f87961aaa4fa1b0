package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// VoteType is the wire label for a vote direction. Discussions and replies
// accept "up"/"down"; reviews accept "helpful"/"notHelpful".
type VoteType string

const (
	VoteUp         VoteType = "up"
	VoteDown       VoteType = "down"
	VoteHelpful    VoteType = "helpful"
	VoteNotHelpful VoteType = "notHelpful"
)

// UserIDSet tracks which users have cast a vote in one direction. Membership
// is the source of truth for the matching counter: the counter moves only when
// membership changes.
type UserIDSet map[string]struct{}

func NewUserIDSet(ids ...string) UserIDSet {
	s := make(UserIDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s UserIDSet) Has(userID string) bool {
	_, ok := s[userID]
	return ok
}

func (s UserIDSet) Add(userID string) {
	s[userID] = struct{}{}
}

func (s UserIDSet) Remove(userID string) {
	delete(s, userID)
}

func (s UserIDSet) Len() int {
	return len(s)
}

// MarshalJSON emits a sorted array so the column and API payloads are stable.
func (s UserIDSet) MarshalJSON() ([]byte, error) {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return json.Marshal(ids)
}

func (s *UserIDSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewUserIDSet(ids...)
	return nil
}

func (s UserIDSet) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *UserIDSet) Scan(value interface{}) error {
	if value == nil {
		*s = UserIDSet{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return s.UnmarshalJSON(v)
	case string:
		return s.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("unsupported type %T for UserIDSet", value)
	}
}

// toggleVote is the only mutation path for vote state. Voting the same
// direction again retracts the vote, voting the opposite direction switches
// it, and a fresh vote simply lands. Counters follow set membership, so
// count == len(set) holds on every exit.
func toggleVote(userID string, count *int, voters UserIDSet, oppositeCount *int, oppositeVoters UserIDSet) {
	if voters.Has(userID) {
		voters.Remove(userID)
		*count--
		return
	}
	if oppositeVoters.Has(userID) {
		oppositeVoters.Remove(userID)
		*oppositeCount--
	}
	voters.Add(userID)
	*count++
}
