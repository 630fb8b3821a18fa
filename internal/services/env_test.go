package services

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizmize/backend/internal/db/dbtest"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/realtime"
	"github.com/quizmize/backend/internal/repos"
	"github.com/quizmize/backend/internal/types"
)

// fakeAvatarService skips font loading and rendering so auth and profile
// tests run without an AVATAR_FONT file.
type fakeAvatarService struct{}

func (fakeAvatarService) CreateUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error {
	user.AvatarMediaKey = fmt.Sprintf("user_avatar/%s/test.png", user.ID)
	user.AvatarURL = "/media/" + user.AvatarMediaKey
	return nil
}

func (fakeAvatarService) RenderInitialsAvatar(name string) (bytes.Buffer, error) {
	return bytes.Buffer{}, nil
}

type testEnv struct {
	db *gorm.DB

	userRepoTest    repos.UserRepo
	groupRepoTest   repos.GroupRepo
	postRepoTest    repos.PostRepo
	missionRepoTest repos.MissionRepo
	quizRepoTest    repos.QuizCatalogRepo

	auth       AuthService
	user       UserService
	group      GroupService
	post       PostService
	mission    MissionService
	university UniversityService
	chat       ChatService
	quiz       QuizCatalogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := dbtest.Open(t)
	log := logger.NewNop()
	hub := realtime.NewHub(log)
	notifier := realtime.NewNotifier(log, hub, nil)

	userRepo := repos.NewUserRepo(gdb, log)
	groupRepo := repos.NewGroupRepo(gdb, log)
	postRepo := repos.NewPostRepo(gdb, log)
	missionRepo := repos.NewMissionRepo(gdb, log)
	universityRepo := repos.NewUniversityRepo(gdb, log)
	chatRepo := repos.NewChatMessageRepo(gdb, log)
	quizRepo := repos.NewQuizCatalogRepo(gdb, log)

	groupService := NewGroupService(gdb, log, groupRepo, userRepo, notifier)

	return &testEnv{
		db:              gdb,
		userRepoTest:    userRepo,
		groupRepoTest:   groupRepo,
		postRepoTest:    postRepo,
		missionRepoTest: missionRepo,
		quizRepoTest:    quizRepo,
		auth:            NewAuthService(gdb, log, userRepo, fakeAvatarService{}, "test-secret"),
		user:            NewUserService(gdb, log, userRepo, fakeAvatarService{}),
		group:           groupService,
		post:            NewPostService(gdb, log, postRepo, groupRepo, userRepo, groupService, notifier),
		mission:         NewMissionService(gdb, log, missionRepo, groupRepo, userRepo, groupService, notifier),
		university:      NewUniversityService(gdb, log, universityRepo, userRepo),
		chat:            NewChatService(gdb, log, chatRepo, groupRepo, userRepo, notifier),
		quiz:            NewQuizCatalogService(gdb, log, quizRepo),
	}
}

func (e *testEnv) signup(t *testing.T, fullName, email string) *types.User {
	t.Helper()
	user, _, err := e.auth.SignupUser(context.Background(), fullName, email, "password123")
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return user
}

func (e *testEnv) newGroup(t *testing.T, adminID uuid.UUID, name string) *types.Group {
	t.Helper()
	group, err := e.group.CreateGroup(context.Background(), adminID, name, "biology", "")
	if err != nil {
		t.Fatalf("create group %s: %v", name, err)
	}
	return group
}
