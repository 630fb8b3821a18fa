package types

import (
	"testing"

	"github.com/google/uuid"
)

func TestUniversityMembership(t *testing.T) {
	u := &University{}
	admin := uuid.New()
	student := uuid.New()

	if !u.AddMember(admin, UniversityRoleAdmin, nil) {
		t.Fatal("expected first add to succeed")
	}
	if u.AddMember(admin, UniversityRoleStudent, nil) {
		t.Fatal("expected duplicate add to fail")
	}
	if !u.AddMember(student, UniversityRoleStudent, &StudentInfo{CurrentLevel: 1}) {
		t.Fatal("expected student add to succeed")
	}

	role, ok := u.RoleOf(admin)
	if !ok || role != UniversityRoleAdmin {
		t.Fatalf("role = %q (%v)", role, ok)
	}
	if m := u.Member(student); m == nil || m.StudentInfo == nil {
		t.Fatalf("student member = %+v", m)
	}

	u.RemoveMember(student)
	if u.IsMember(student) {
		t.Fatal("expected student removed")
	}
}

func TestAddMemberXP_LevelsAndAverage(t *testing.T) {
	u := &University{}
	a := uuid.New()
	b := uuid.New()
	u.AddMember(a, UniversityRoleAdmin, nil)
	u.AddMember(b, UniversityRoleStudent, nil)

	if !u.AddMemberXP(a, 2500) {
		t.Fatal("expected grant to land")
	}
	m := u.Member(a)
	if m.XP != 2500 || m.Level != 3 {
		t.Fatalf("member xp/level = %d/%d, want 2500/3", m.XP, m.Level)
	}
	if u.TotalXP != 2500 {
		t.Fatalf("total xp = %d, want 2500", u.TotalXP)
	}
	// Levels 3 and 1 average to 2.
	if u.AverageLevel != 2 {
		t.Fatalf("average level = %d, want 2", u.AverageLevel)
	}

	if u.AddMemberXP(uuid.New(), 100) {
		t.Fatal("expected grant to a stranger to fail")
	}
}

func TestUniversityPostToggleLike(t *testing.T) {
	p := &UniversityPost{ID: uuid.New()}
	user := uuid.New()

	if !p.ToggleLike(user) {
		t.Fatal("expected first toggle to like")
	}
	if !p.LikedBy(user) || len(p.Likes) != 1 {
		t.Fatalf("likes = %+v", p.Likes)
	}
	if p.ToggleLike(user) {
		t.Fatal("expected second toggle to unlike")
	}
	if p.LikedBy(user) || len(p.Likes) != 0 {
		t.Fatalf("likes = %+v", p.Likes)
	}
}

func TestGroupVoteTally(t *testing.T) {
	p := &Post{}
	p.Votes = []PostVote{
		{UserID: uuid.New(), Value: VoteUp},
		{UserID: uuid.New(), Value: VoteUp},
		{UserID: uuid.New(), Value: VoteDown},
	}
	up, down, count := p.Tally()
	if up != 2 || down != 1 || count != 1 {
		t.Fatalf("tally = %d/%d/%d, want 2/1/1", up, down, count)
	}
}
