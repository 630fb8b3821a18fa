package types

import (
	"github.com/google/uuid"
)

// The quiz catalog is a static tree browsed by slug: subjects link to
// topics, topics to quiz lists, lists to the pages holding the questions.

type SubjectLink struct {
	Name string `json:"name"`
	URL  string `json:"URL"`
}

type Subject struct {
	ID       uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string        `gorm:"not null;uniqueIndex;column:name" json:"name"`
	Subjects []SubjectLink `gorm:"serializer:json" json:"subjects"`
}

func (Subject) TableName() string {
	return "subject"
}

type QuizTopicLink struct {
	Name  string `json:"name"`
	URL   string `json:"URL"`
	Total int    `json:"total"`
	Done  int    `json:"done"`
}

type QuizTopic struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Subject    string          `gorm:"not null;index;column:subject" json:"subject"`
	Name       string          `gorm:"not null;column:name" json:"name"`
	QuizTopics []QuizTopicLink `gorm:"serializer:json" json:"quizTopics"`
}

func (QuizTopic) TableName() string {
	return "quiz_topic"
}

type QuizCard struct {
	CardTitle      string `json:"cardTitle"`
	CardDifficulty string `json:"cardDifficulty"`
	Difficulty     string `json:"Difficulty"`
	CardBackground string `json:"cardBackground"`
	URL            string `json:"URL"`
}

type QuizList struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	QuizTopic string     `gorm:"not null;index;column:quiz_topic" json:"quizTopic"`
	Name      string     `gorm:"not null;column:name" json:"name"`
	Quizzes   []QuizCard `gorm:"serializer:json" json:"quizlist"`
}

func (QuizList) TableName() string {
	return "quiz_list"
}

type QuizQuestion struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   int      `json:"answer"`
}

type QuizPageEntry struct {
	QuizList string         `json:"quizList"`
	Quiz     []QuizQuestion `json:"quiz"`
}

type QuizPage struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Topic     string          `gorm:"not null;index;column:topic" json:"topic"`
	Subject   string          `gorm:"not null;column:subject" json:"subject"`
	QuizTopic string          `gorm:"not null;column:quiz_topic" json:"quizTopic"`
	Pages     []QuizPageEntry `gorm:"serializer:json" json:"quizPage"`
}

func (QuizPage) TableName() string {
	return "quiz_page"
}

// Entry returns the page section for the named quiz list, or nil.
func (p *QuizPage) Entry(quizList string) *QuizPageEntry {
	for i := range p.Pages {
		if p.Pages[i].QuizList == quizList {
			return &p.Pages[i]
		}
	}
	return nil
}
