package types

import (
	"time"

	"github.com/google/uuid"
)

// QuizHistoryEntry is one finished catalog quiz, appended on save and never
// edited afterwards.
type QuizHistoryEntry struct {
	QuizTopic      string `json:"quizTopic"`
	Subject        string `json:"subject"`
	QuizList       string `json:"quizList"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	XP             int    `json:"xp"`
	Date           string `json:"date"`
}

// MissionHistoryEntry records a completed group mission for the account.
type MissionHistoryEntry struct {
	MissionID   uuid.UUID `json:"missionId"`
	GroupID     uuid.UUID `json:"groupId"`
	Title       string    `json:"title"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

type User struct {
	ID              uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string                `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password        string                `gorm:"not null;column:password" json:"-"`
	FullName        string                `gorm:"not null;column:full_name" json:"fullName"`
	XP              int                   `gorm:"not null;default:0;column:xp" json:"xp"`
	Level           int                   `gorm:"not null;default:1;column:level" json:"level"`
	TotalXP         int                   `gorm:"not null;default:0;column:total_xp" json:"totalXp"`
	Admin           bool                  `gorm:"not null;default:false;column:admin" json:"admin"`
	QuizHistory     []QuizHistoryEntry    `gorm:"serializer:json" json:"quizHistory"`
	MissionHistory  []MissionHistoryEntry `gorm:"serializer:json" json:"missionHistory"`
	AvatarMediaKey  string                `gorm:"column:avatar_media_key" json:"avatar_media_key"`
	AvatarURL       string                `gorm:"column:avatar_url" json:"avatar_url"`
	CreatedAt       time.Time             `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time             `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
