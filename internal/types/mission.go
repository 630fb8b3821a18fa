package types

import (
	"time"

	"github.com/google/uuid"
)

type MissionType string

const (
	MissionTypeSystem MissionType = "system"
	MissionTypeCustom MissionType = "custom"
)

type MissionStatus string

const (
	MissionStatusActive    MissionStatus = "active"
	MissionStatusCompleted MissionStatus = "completed"
	MissionStatusPending   MissionStatus = "pending"
)

const (
	MissionMinDuration = 1
	MissionMaxDuration = 7
)

type MissionQuestion struct {
	Text          string   `json:"text"`
	Choices       []string `json:"choices"`
	CorrectAnswer int      `json:"correctAnswer"` // index into Choices, 0-3
	Explanation   string   `json:"explanation"`
}

type MissionAnswer struct {
	QuestionIndex  int       `json:"questionIndex"`
	SelectedAnswer int       `json:"selectedAnswer"`
	IsCorrect      bool      `json:"isCorrect"`
	AnsweredAt     time.Time `json:"answeredAt"`
}

// MissionParticipant tracks a single account's run through a mission.
// CurrentQuestion only ever advances and Completed never reverts.
type MissionParticipant struct {
	UserID          uuid.UUID       `json:"user"`
	JoinedAt        time.Time       `json:"joinedAt"`
	Completed       bool            `json:"completed"`
	Score           int             `json:"score"`
	Answers         []MissionAnswer `json:"answers"`
	CurrentQuestion int             `json:"currentQuestion"`
}

// Mission is a timed quiz challenge scoped to a group. System missions get
// their question bank generated once at creation and persisted with the row.
type Mission struct {
	ID           uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID      uuid.UUID            `gorm:"type:uuid;not null;index;column:group_id" json:"groupId"`
	CreatedBy    uuid.UUID            `gorm:"type:uuid;not null;column:created_by" json:"createdBy"`
	Title        string               `gorm:"not null;column:title" json:"title"`
	Description  string               `gorm:"column:description" json:"description"`
	Type         MissionType          `gorm:"not null;column:type" json:"type"`
	Questions    []MissionQuestion    `gorm:"serializer:json" json:"questions"`
	Points       int                  `gorm:"not null;default:100;column:points" json:"points"`
	Deadline     time.Time            `gorm:"column:deadline" json:"deadline"`
	Status       MissionStatus        `gorm:"not null;default:'active';index;column:status" json:"status"`
	Participants []MissionParticipant `gorm:"serializer:json" json:"participants"`
	Duration     int                  `gorm:"not null;column:duration" json:"duration"`
	CreatedAt    time.Time            `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time            `gorm:"not null" json:"updatedAt"`
}

func (Mission) TableName() string {
	return "mission"
}

func (m *Mission) Participant(userID uuid.UUID) *MissionParticipant {
	for i := range m.Participants {
		if m.Participants[i].UserID.String() == userID.String() {
			return &m.Participants[i]
		}
	}
	return nil
}

// PointsPerQuestion is the per-correct-answer award, floored.
func (m *Mission) PointsPerQuestion() int {
	if len(m.Questions) == 0 {
		return 0
	}
	return m.Points / len(m.Questions)
}
