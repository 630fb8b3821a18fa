package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	VoteUp   = 1
	VoteDown = -1
)

type PostVote struct {
	UserID uuid.UUID `json:"user"`
	Value  int       `json:"value"` // 1 = upvote, -1 = downvote
}

type PostComment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is group-scoped member content. Votes and comments are embedded and
// saved with the owning post document.
type Post struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID   uuid.UUID     `gorm:"type:uuid;not null;index;column:group_id" json:"group"`
	UserID    uuid.UUID     `gorm:"type:uuid;not null;index;column:user_id" json:"user"`
	Content   string        `gorm:"not null;column:content" json:"content"`
	Votes     []PostVote    `gorm:"serializer:json" json:"votes"`
	Comments  []PostComment `gorm:"serializer:json" json:"comments"`
	CreatedAt time.Time     `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time     `gorm:"not null" json:"updatedAt"`
}

func (Post) TableName() string {
	return "post"
}

// Tally returns (upvotes, downvotes, voteCount). The count is always derived
// from the voter list, never stored.
func (p *Post) Tally() (int, int, int) {
	var up, down int
	for _, v := range p.Votes {
		switch v.Value {
		case VoteUp:
			up++
		case VoteDown:
			down++
		}
	}
	return up, down, up - down
}

func (p *Post) VoteOf(userID uuid.UUID) (int, bool) {
	for _, v := range p.Votes {
		if v.UserID.String() == userID.String() {
			return v.Value, true
		}
	}
	return 0, false
}
