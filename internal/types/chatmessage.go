package types

import (
	"time"

	"github.com/google/uuid"
)

const ChatMessageMaxLen = 500

// ChatMessage is one line of group chat, kept so late joiners can load
// recent history.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index;column:group_id" json:"groupId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;column:user_id" json:"userId"`
	UserName  string    `gorm:"not null;column:user_name" json:"userName"`
	Content   string    `gorm:"not null;column:content" json:"content"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

func (ChatMessage) TableName() string {
	return "chat_message"
}
