package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type UniversityRole string

const (
	UniversityRoleAdmin   UniversityRole = "admin"
	UniversityRoleTeacher UniversityRole = "teacher"
	UniversityRoleStudent UniversityRole = "student"
)

func ValidUniversityRole(role UniversityRole) bool {
	switch role {
	case UniversityRoleAdmin, UniversityRoleTeacher, UniversityRoleStudent:
		return true
	default:
		return false
	}
}

type CoursePostType string

const (
	CoursePostAnnouncement CoursePostType = "announcement"
	CoursePostAssignment   CoursePostType = "assignment"
	CoursePostMaterial     CoursePostType = "material"
	CoursePostGeneral      CoursePostType = "general"
)

func ValidCoursePostType(t CoursePostType) bool {
	switch t {
	case CoursePostAnnouncement, CoursePostAssignment, CoursePostMaterial, CoursePostGeneral:
		return true
	default:
		return false
	}
}

type PostLike struct {
	UserID  uuid.UUID `json:"user"`
	LikedAt time.Time `json:"likedAt"`
}

type UniversityComment struct {
	Content    string    `json:"content"`
	AuthorID   uuid.UUID `json:"author"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type UniversityPost struct {
	ID         uuid.UUID           `json:"id"`
	Content    string              `json:"content"`
	AuthorID   uuid.UUID           `json:"author"`
	AuthorName string              `json:"authorName"`
	PostType   CoursePostType      `json:"postType,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
	Likes      []PostLike          `json:"likes"`
	Comments   []UniversityComment `json:"comments"`
}

func (p *UniversityPost) LikedBy(userID uuid.UUID) bool {
	for _, l := range p.Likes {
		if l.UserID.String() == userID.String() {
			return true
		}
	}
	return false
}

// ToggleLike likes the post or removes an existing like; returns whether the
// post is liked by the user afterwards.
func (p *UniversityPost) ToggleLike(userID uuid.UUID) bool {
	if p.LikedBy(userID) {
		kept := p.Likes[:0]
		for _, l := range p.Likes {
			if l.UserID.String() != userID.String() {
				kept = append(kept, l)
			}
		}
		p.Likes = kept
		return false
	}
	p.Likes = append(p.Likes, PostLike{UserID: userID, LikedAt: time.Now()})
	return true
}

type ClassroomStudentStatus string

const (
	ClassroomStudentActive    ClassroomStudentStatus = "active"
	ClassroomStudentInactive  ClassroomStudentStatus = "inactive"
	ClassroomStudentSuspended ClassroomStudentStatus = "suspended"
)

type ClassroomStudent struct {
	StudentID uuid.UUID              `json:"student"`
	JoinedAt  time.Time              `json:"joinedAt"`
	Status    ClassroomStudentStatus `json:"status"`
}

type ClassroomSchedule struct {
	Day      string `json:"day"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

type Classroom struct {
	Name     string             `json:"name"`
	Section  string             `json:"section"`
	Schedule ClassroomSchedule  `json:"schedule"`
	Students []ClassroomStudent `json:"students"`
	XP       int                `json:"xp"`
	Level    int                `json:"level"`
}

func ValidClassroomDay(day string) bool {
	switch day {
	case "", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday":
		return true
	}
	return false
}

// Enrolled reports whether the student appears on the roster, whatever
// their status.
func (cl *Classroom) Enrolled(studentID uuid.UUID) bool {
	for _, s := range cl.Students {
		if s.StudentID.String() == studentID.String() {
			return true
		}
	}
	return false
}

func (cl *Classroom) RemoveStudent(studentID uuid.UUID) bool {
	kept := cl.Students[:0]
	removed := false
	for _, s := range cl.Students {
		if s.StudentID.String() == studentID.String() {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	cl.Students = kept
	return removed
}

type Course struct {
	CourseCode  string           `json:"courseCode"`
	CourseName  string           `json:"courseName"`
	Description string           `json:"description"`
	Credits     int              `json:"credits"`
	Level       int              `json:"level"`
	TeacherID   uuid.UUID        `json:"teacher"`
	Posts       []UniversityPost `json:"posts"`
	Classrooms  []Classroom      `json:"classrooms"`
}

// Classroom finds a classroom by name, case-insensitively.
func (co *Course) Classroom(name string) *Classroom {
	for i := range co.Classrooms {
		if strings.EqualFold(co.Classrooms[i].Name, name) {
			return &co.Classrooms[i]
		}
	}
	return nil
}

type Faculty struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	ContactEmail string     `json:"contactEmail,omitempty"`
	DeanID       *uuid.UUID `json:"dean,omitempty"`
	Courses      []Course   `json:"courses"`
}

type StudentInfo struct {
	EnrollmentDate time.Time `json:"enrollmentDate"`
	CurrentLevel   int       `json:"currentLevel"`
}

type UniversityMember struct {
	UserID      uuid.UUID      `json:"user"`
	Role        UniversityRole `json:"role"`
	JoinedAt    time.Time      `json:"joinedAt"`
	XP          int            `json:"xp"`
	Level       int            `json:"level"`
	StudentInfo *StudentInfo   `json:"studentInfo,omitempty"`
}

type UniversitySettings struct {
	JoinCode                 string `json:"joinCode"`
	IsPublic                 bool   `json:"isPublic"`
	AllowStudentRegistration bool   `json:"allowStudentRegistration"`
	MaxMembers               int    `json:"maxMembers"`
}

type UniversityStatistics struct {
	TotalQuizzes       int `json:"totalQuizzes"`
	TotalAssignments   int `json:"totalAssignments"`
	AveragePerformance int `json:"averagePerformance"`
	EngagementRate     int `json:"engagementRate"`
}

// University is the largest aggregate: one document owning its posts,
// member list and the faculties→courses→classrooms hierarchy.
type University struct {
	ID           uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string               `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description  string               `gorm:"column:description" json:"description"`
	Location     string               `gorm:"not null;column:location" json:"location"`
	Website      string               `gorm:"column:website" json:"website"`
	LogoMediaKey string               `gorm:"column:logo_media_key" json:"logo_media_key"`
	LogoURL      string               `gorm:"column:logo_url" json:"logoUrl"`
	Posts        []UniversityPost     `gorm:"serializer:json" json:"posts"`
	Faculties    []Faculty            `gorm:"serializer:json" json:"faculties"`
	Members      []UniversityMember   `gorm:"serializer:json" json:"members"`
	TotalXP      int                  `gorm:"not null;default:0;column:total_xp" json:"totalXP"`
	AverageLevel int                  `gorm:"not null;default:1;column:average_level" json:"averageLevel"`
	Settings     UniversitySettings   `gorm:"serializer:json" json:"settings"`
	Statistics   UniversityStatistics `gorm:"serializer:json" json:"statistics"`
	CreatedAt    time.Time            `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time            `gorm:"not null" json:"updatedAt"`
}

func (University) TableName() string {
	return "university"
}

func (u *University) IsMember(userID uuid.UUID) bool {
	for _, m := range u.Members {
		if m.UserID.String() == userID.String() {
			return true
		}
	}
	return false
}

func (u *University) RoleOf(userID uuid.UUID) (UniversityRole, bool) {
	for _, m := range u.Members {
		if m.UserID.String() == userID.String() {
			return m.Role, true
		}
	}
	return "", false
}

func (u *University) Member(userID uuid.UUID) *UniversityMember {
	for i := range u.Members {
		if u.Members[i].UserID.String() == userID.String() {
			return &u.Members[i]
		}
	}
	return nil
}

func (u *University) AddMember(userID uuid.UUID, role UniversityRole, info *StudentInfo) bool {
	if u.IsMember(userID) {
		return false
	}
	u.Members = append(u.Members, UniversityMember{
		UserID:      userID,
		Role:        role,
		JoinedAt:    time.Now(),
		XP:          0,
		Level:       1,
		StudentInfo: info,
	})
	u.recalcAverageLevel()
	return true
}

func (u *University) RemoveMember(userID uuid.UUID) {
	kept := u.Members[:0]
	for _, m := range u.Members {
		if m.UserID.String() != userID.String() {
			kept = append(kept, m)
		}
	}
	u.Members = kept
	u.recalcAverageLevel()
}

// AddMemberXP grants xp to one member. Member levels use the flat
// 1000-per-level curve, distinct from the group and account policies.
func (u *University) AddMemberXP(userID uuid.UUID, amount int) bool {
	m := u.Member(userID)
	if m == nil {
		return false
	}
	m.XP += amount
	m.Level = m.XP/1000 + 1
	u.TotalXP += amount
	u.recalcAverageLevel()
	return true
}

func (u *University) Post(postID uuid.UUID) *UniversityPost {
	for i := range u.Posts {
		if u.Posts[i].ID.String() == postID.String() {
			return &u.Posts[i]
		}
	}
	return nil
}

func (u *University) Faculty(index int) *Faculty {
	if index < 0 || index >= len(u.Faculties) {
		return nil
	}
	return &u.Faculties[index]
}

func (u *University) Course(facultyIndex, courseIndex int) *Course {
	f := u.Faculty(facultyIndex)
	if f == nil {
		return nil
	}
	if courseIndex < 0 || courseIndex >= len(f.Courses) {
		return nil
	}
	return &f.Courses[courseIndex]
}

func (u *University) recalcAverageLevel() {
	if len(u.Members) == 0 {
		u.AverageLevel = 1
		return
	}
	total := 0
	for _, m := range u.Members {
		total += m.Level
	}
	// Round half up.
	u.AverageLevel = (total*2 + len(u.Members)) / (len(u.Members) * 2)
}
