package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/types"
)

func customMissionInput(questions, points int) CreateMissionInput {
	input := CreateMissionInput{
		Title:    "Weekly Grind",
		Type:     types.MissionTypeCustom,
		Duration: 3,
		Points:   points,
	}
	for i := 0; i < questions; i++ {
		input.Questions = append(input.Questions, types.MissionQuestion{
			Text:          "Pick the first option",
			Choices:       []string{"right", "wrong", "also wrong", "nope"},
			CorrectAnswer: 0,
		})
	}
	return input
}

func TestCreateMission_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	member := env.signup(t, "Grace Hopper", "grace@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")
	if _, err := env.group.JoinGroup(context.Background(), member.ID, group.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	_, err := env.mission.CreateMission(context.Background(), member.ID, group.ID, customMissionInput(2, 100))
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeAuthorization {
		t.Fatalf("expected forbidden for plain member, got %v", err)
	}
}

func TestCreateMission_Validation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")

	cases := []struct {
		name  string
		input CreateMissionInput
	}{
		{"missing title", CreateMissionInput{Type: types.MissionTypeCustom, Duration: 3, Questions: customMissionInput(1, 100).Questions}},
		{"bad type", CreateMissionInput{Title: "t", Type: "weird", Duration: 3}},
		{"duration too long", CreateMissionInput{Title: "t", Type: types.MissionTypeSystem, Duration: 8}},
		{"duration too short", CreateMissionInput{Title: "t", Type: types.MissionTypeSystem, Duration: 0}},
		{"custom without questions", CreateMissionInput{Title: "t", Type: types.MissionTypeCustom, Duration: 3}},
		{"answer out of range", CreateMissionInput{Title: "t", Type: types.MissionTypeCustom, Duration: 3, Questions: []types.MissionQuestion{{Text: "q", Choices: []string{"a", "b"}, CorrectAnswer: 5}}}},
	}
	for _, tc := range cases {
		_, err := env.mission.CreateMission(context.Background(), admin.ID, group.ID, tc.input)
		var apiErr *apierr.Error
		if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeValidation {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestCreateMission_SystemDrawsQuestionsPerDay(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")

	mission, err := env.mission.CreateMission(context.Background(), admin.ID, group.ID, CreateMissionInput{
		Title:    "Daily Drills",
		Type:     types.MissionTypeSystem,
		Duration: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(mission.Questions) != 2*systemQuestionsPerDay {
		t.Fatalf("question count = %d, want %d", len(mission.Questions), 2*systemQuestionsPerDay)
	}
	if mission.Points != 100 {
		t.Fatalf("points default = %d, want 100", mission.Points)
	}
	if mission.Status != types.MissionStatusActive {
		t.Fatalf("status = %q, want active", mission.Status)
	}
	if !mission.Deadline.After(time.Now().AddDate(0, 0, 1)) {
		t.Fatalf("deadline %s not ~2 days out", mission.Deadline)
	}
	seen := map[string]bool{}
	for _, q := range mission.Questions {
		if seen[q.Text] {
			t.Fatalf("duplicate drawn question: %q", q.Text)
		}
		seen[q.Text] = true
	}
}

func TestCreateMission_SystemMaxDurationFillsBank(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")

	mission, err := env.mission.CreateMission(context.Background(), admin.ID, group.ID, CreateMissionInput{
		Title:    "Week-Long Gauntlet",
		Type:     types.MissionTypeSystem,
		Duration: 7,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(mission.Questions) != 7*systemQuestionsPerDay {
		t.Fatalf("question count = %d, want %d", len(mission.Questions), 7*systemQuestionsPerDay)
	}
	seen := map[string]bool{}
	for _, q := range mission.Questions {
		if seen[q.Text] {
			t.Fatalf("duplicate drawn question: %q", q.Text)
		}
		seen[q.Text] = true
	}
}

func TestMissionRun_OrderedAnswersAndAwards(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	player := env.signup(t, "Grace Hopper", "grace@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")
	if _, err := env.group.JoinGroup(context.Background(), player.ID, group.ID); err != nil {
		t.Fatalf("join group: %v", err)
	}
	mission, err := env.mission.CreateMission(context.Background(), admin.ID, group.ID, customMissionInput(5, 250))
	if err != nil {
		t.Fatalf("create mission: %v", err)
	}

	// Answering before joining is rejected.
	_, err = env.mission.AnswerQuestion(context.Background(), player.ID, mission.ID, 0, 0)
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeAuthorization {
		t.Fatalf("expected forbidden before join, got %v", err)
	}

	if _, err = env.mission.JoinMission(context.Background(), player.ID, mission.ID); err != nil {
		t.Fatalf("join mission: %v", err)
	}
	_, err = env.mission.JoinMission(context.Background(), player.ID, mission.ID)
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeConflict {
		t.Fatalf("expected conflict on double join, got %v", err)
	}

	// Questions must come in order.
	_, err = env.mission.AnswerQuestion(context.Background(), player.ID, mission.ID, 2, 0)
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeValidation {
		t.Fatalf("expected validation on out-of-order answer, got %v", err)
	}

	groupBefore, _ := env.group.GetGroup(context.Background(), group.ID)
	var last *AnswerResult
	for i := 0; i < 5; i++ {
		last, err = env.mission.AnswerQuestion(context.Background(), player.ID, mission.ID, i, 0)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if !last.IsCorrect {
			t.Fatalf("answer %d graded wrong", i)
		}
	}
	if !last.Completed {
		t.Fatal("expected completion after the last question")
	}
	if last.Score != 250 {
		t.Fatalf("score = %d, want 250", last.Score)
	}
	if last.GroupXPAwarded != 125 {
		t.Fatalf("group award = %d, want 125", last.GroupXPAwarded)
	}
	if last.PersonalXPEarned != 250 {
		t.Fatalf("personal award = %d, want 250", last.PersonalXPEarned)
	}

	groupAfter, _ := env.group.GetGroup(context.Background(), group.ID)
	if groupAfter.XP != groupBefore.XP+125 {
		t.Fatalf("group xp = %d, want %d", groupAfter.XP, groupBefore.XP+125)
	}

	user, err := env.user.GetUserData(context.Background(), player.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.TotalXP != 250 {
		t.Fatalf("user total xp = %d, want 250", user.TotalXP)
	}
	if len(user.MissionHistory) != 1 || user.MissionHistory[0].MissionID != mission.ID {
		t.Fatalf("mission history = %+v", user.MissionHistory)
	}

	// A finished run cannot keep answering.
	_, err = env.mission.AnswerQuestion(context.Background(), player.ID, mission.ID, 5, 0)
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeValidation {
		t.Fatalf("expected validation after completion, got %v", err)
	}

	progress, err := env.mission.GetProgress(context.Background(), player.ID, mission.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if !progress.Joined || !progress.Completed || progress.Score != 250 || progress.CurrentQuestion != 5 {
		t.Fatalf("progress = %+v", progress)
	}
}

func TestMissionRun_WrongAnswerScoresNothing(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")
	mission, err := env.mission.CreateMission(context.Background(), admin.ID, group.ID, customMissionInput(2, 100))
	if err != nil {
		t.Fatalf("create mission: %v", err)
	}
	if _, err = env.mission.JoinMission(context.Background(), admin.ID, mission.ID); err != nil {
		t.Fatalf("join mission: %v", err)
	}

	res, err := env.mission.AnswerQuestion(context.Background(), admin.ID, mission.ID, 0, 1)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if res.IsCorrect || res.Score != 0 {
		t.Fatalf("wrong answer scored: %+v", res)
	}
	if res.CorrectAnswer != 0 {
		t.Fatalf("correct answer echo = %d, want 0", res.CorrectAnswer)
	}
	if res.CurrentQuestion != 1 {
		t.Fatalf("cursor = %d, want 1", res.CurrentQuestion)
	}
}

func TestDeleteMission_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	member := env.signup(t, "Grace Hopper", "grace@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")
	if _, err := env.group.JoinGroup(context.Background(), member.ID, group.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	mission, err := env.mission.CreateMission(context.Background(), admin.ID, group.ID, customMissionInput(1, 100))
	if err != nil {
		t.Fatalf("create mission: %v", err)
	}

	err = env.mission.DeleteMission(context.Background(), member.ID, mission.ID)
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeAuthorization {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := env.mission.DeleteMission(context.Background(), admin.ID, mission.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	_, err = env.mission.GetMission(context.Background(), admin.ID, mission.ID)
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestExpireOverdue(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")
	mission, err := env.mission.CreateMission(context.Background(), admin.ID, group.ID, customMissionInput(1, 100))
	if err != nil {
		t.Fatalf("create mission: %v", err)
	}

	// Drag the deadline into the past.
	mission.Deadline = time.Now().Add(-time.Hour)
	if err := env.missionRepoTest.Save(context.Background(), nil, mission); err != nil {
		t.Fatalf("save: %v", err)
	}

	n, err := env.mission.ExpireOverdue(context.Background())
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if n != 1 {
		t.Fatalf("expired count = %d, want 1", n)
	}
	got, err := env.mission.GetMission(context.Background(), admin.ID, mission.ID)
	if err != nil {
		t.Fatalf("get mission: %v", err)
	}
	if got.Status != types.MissionStatusCompleted {
		t.Fatalf("status = %q, want completed", got.Status)
	}

	// Expired missions reject joins.
	_, err = env.mission.JoinMission(context.Background(), admin.ID, mission.ID)
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeValidation {
		t.Fatalf("expected validation on expired join, got %v", err)
	}
}
