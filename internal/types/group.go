package types

import (
	"time"

	"github.com/google/uuid"
)

type GroupRole string

const (
	GroupRoleAdmin       GroupRole = "Admin"
	GroupRoleStrategist  GroupRole = "Strategist"
	GroupRoleContributor GroupRole = "Contributor"
	GroupRoleChallenger  GroupRole = "Challenger"
	GroupRoleMember      GroupRole = "Member"
)

func ValidGroupRole(role GroupRole) bool {
	switch role {
	case GroupRoleAdmin, GroupRoleStrategist, GroupRoleContributor, GroupRoleChallenger, GroupRoleMember:
		return true
	default:
		return false
	}
}

type GroupMember struct {
	UserID   uuid.UUID `json:"user"`
	Role     GroupRole `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Group is a study community. The member list is embedded and owned by the
// group document; authorization derives from it alone.
type Group struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string        `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Specialization string        `gorm:"not null;column:specialization" json:"specialization"`
	Description    string        `gorm:"column:description" json:"description"`
	Level          int           `gorm:"not null;default:1;column:level" json:"level"`
	XP             int           `gorm:"not null;default:0;column:xp" json:"xp"`
	TotalXP        int           `gorm:"not null;default:0;column:total_xp" json:"totalXp"`
	RequiredXP     int           `gorm:"not null;default:3000;column:required_xp" json:"requiredXp"`
	Members        []GroupMember `gorm:"serializer:json" json:"members"`
	CreatedAt      time.Time     `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time     `gorm:"not null" json:"updatedAt"`
}

func (Group) TableName() string {
	return "group"
}

// IsMember compares stringified ids; ids arrive both as raw uuids and as
// parsed references depending on the call path.
func (g *Group) IsMember(userID uuid.UUID) bool {
	for _, m := range g.Members {
		if m.UserID.String() == userID.String() {
			return true
		}
	}
	return false
}

func (g *Group) RoleOf(userID uuid.UUID) (GroupRole, bool) {
	for _, m := range g.Members {
		if m.UserID.String() == userID.String() {
			return m.Role, true
		}
	}
	return "", false
}

// AddMember appends a member entry, rejecting duplicate accounts.
func (g *Group) AddMember(userID uuid.UUID, role GroupRole) bool {
	if g.IsMember(userID) {
		return false
	}
	g.Members = append(g.Members, GroupMember{UserID: userID, Role: role, JoinedAt: time.Now()})
	return true
}

func (g *Group) RemoveMember(userID uuid.UUID) {
	kept := g.Members[:0]
	for _, m := range g.Members {
		if m.UserID.String() != userID.String() {
			kept = append(kept, m)
		}
	}
	g.Members = kept
}
