package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Primary keys are assigned in-process so the same models work against
// Postgres in production and sqlite in tests.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error        { assignID(&u.ID); return nil }
func (g *Group) BeforeCreate(*gorm.DB) error       { assignID(&g.ID); return nil }
func (p *Post) BeforeCreate(*gorm.DB) error        { assignID(&p.ID); return nil }
func (m *Mission) BeforeCreate(*gorm.DB) error     { assignID(&m.ID); return nil }
func (u *University) BeforeCreate(*gorm.DB) error  { assignID(&u.ID); return nil }
func (c *ChatMessage) BeforeCreate(*gorm.DB) error { assignID(&c.ID); return nil }
func (s *Subject) BeforeCreate(*gorm.DB) error     { assignID(&s.ID); return nil }
func (q *QuizTopic) BeforeCreate(*gorm.DB) error   { assignID(&q.ID); return nil }
func (q *QuizList) BeforeCreate(*gorm.DB) error    { assignID(&q.ID); return nil }
func (q *QuizPage) BeforeCreate(*gorm.DB) error    { assignID(&q.ID); return nil }
