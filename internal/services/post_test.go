package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/realtime"
	"github.com/quizmize/backend/internal/types"
)

func TestCreatePost_MemberOnlyAndXP(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	outsider := env.signup(t, "Alan Turing", "alan@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")

	post, err := env.post.CreatePost(context.Background(), admin.ID, group.ID, "First post")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.GroupID != group.ID || post.UserID != admin.ID {
		t.Fatalf("post owner/group mismatch: %+v", post)
	}

	detail, err := env.group.GetGroup(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if detail.XP != XPAwardPost {
		t.Fatalf("group xp = %d, want %d", detail.XP, XPAwardPost)
	}

	_, err = env.post.CreatePost(context.Background(), outsider.ID, group.ID, "Sneaky post")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeAuthorization {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// The rejected write must leave no trace.
	posts, err := env.post.ListGroupPosts(context.Background(), admin.ID, group.ID)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("post count = %d, want 1", len(posts))
	}
	after, err := env.group.GetGroup(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if after.XP != XPAwardPost {
		t.Fatalf("group xp moved on rejected post: %d", after.XP)
	}
}

func TestVotePost_ToggleSemantics(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	voter := env.signup(t, "Grace Hopper", "grace@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")
	if _, err := env.group.JoinGroup(context.Background(), voter.ID, group.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	post, err := env.post.CreatePost(context.Background(), admin.ID, group.ID, "Vote on me")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	baseline, err := env.group.GetGroup(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}

	// Upvote lands and pays the group.
	view, err := env.post.VotePost(context.Background(), voter.ID, post.ID, types.VoteUp)
	if err != nil {
		t.Fatalf("upvote: %v", err)
	}
	if view.Upvotes != 1 || view.VoteCount != 1 || view.UserVote != types.VoteUp {
		t.Fatalf("after upvote: up=%d count=%d mine=%d", view.Upvotes, view.VoteCount, view.UserVote)
	}
	afterUp, _ := env.group.GetGroup(context.Background(), group.ID)
	if afterUp.XP != baseline.XP+XPAwardUpvote {
		t.Fatalf("group xp = %d, want %d", afterUp.XP, baseline.XP+XPAwardUpvote)
	}

	// Same vote again removes it; the xp stays.
	view, err = env.post.VotePost(context.Background(), voter.ID, post.ID, types.VoteUp)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if view.Upvotes != 0 || view.VoteCount != 0 || view.UserVote != 0 {
		t.Fatalf("after toggle off: up=%d count=%d mine=%d", view.Upvotes, view.VoteCount, view.UserVote)
	}
	afterOff, _ := env.group.GetGroup(context.Background(), group.ID)
	if afterOff.XP != afterUp.XP {
		t.Fatalf("xp clawed back: %d -> %d", afterUp.XP, afterOff.XP)
	}

	// Downvote, then switch to upvote. Only the switch into upvote pays.
	if _, err = env.post.VotePost(context.Background(), voter.ID, post.ID, types.VoteDown); err != nil {
		t.Fatalf("downvote: %v", err)
	}
	afterDown, _ := env.group.GetGroup(context.Background(), group.ID)
	if afterDown.XP != afterOff.XP {
		t.Fatalf("downvote paid xp: %d -> %d", afterOff.XP, afterDown.XP)
	}
	view, err = env.post.VotePost(context.Background(), voter.ID, post.ID, types.VoteUp)
	if err != nil {
		t.Fatalf("switch vote: %v", err)
	}
	if view.Upvotes != 1 || view.Downvotes != 0 {
		t.Fatalf("after switch: up=%d down=%d", view.Upvotes, view.Downvotes)
	}
	afterSwitch, _ := env.group.GetGroup(context.Background(), group.ID)
	if afterSwitch.XP != afterDown.XP+XPAwardUpvote {
		t.Fatalf("group xp = %d, want %d", afterSwitch.XP, afterDown.XP+XPAwardUpvote)
	}
}

func TestVotePost_RejectsBadValue(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")
	post, err := env.post.CreatePost(context.Background(), admin.ID, group.ID, "Vote on me")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	_, err = env.post.VotePost(context.Background(), admin.ID, post.ID, 2)
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCommentPost(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")
	post, err := env.post.CreatePost(context.Background(), admin.ID, group.ID, "Discuss")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	view, err := env.post.CommentPost(context.Background(), admin.ID, post.ID, "Great point")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if len(view.CommentViews) != 1 || view.CommentViews[0].Text != "Great point" {
		t.Fatalf("comments = %+v", view.CommentViews)
	}
	if view.CommentViews[0].UserName != "Ada Lovelace" {
		t.Fatalf("commenter name = %q", view.CommentViews[0].UserName)
	}

	detail, _ := env.group.GetGroup(context.Background(), group.ID)
	if detail.XP != XPAwardPost+XPAwardComment {
		t.Fatalf("group xp = %d, want %d", detail.XP, XPAwardPost+XPAwardComment)
	}
}

func TestDeletePost_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	member := env.signup(t, "Grace Hopper", "grace@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")
	if _, err := env.group.JoinGroup(context.Background(), member.ID, group.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	post, err := env.post.CreatePost(context.Background(), member.ID, group.ID, "Mine")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	err = env.post.DeletePost(context.Background(), member.ID, post.ID)
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeAuthorization {
		t.Fatalf("expected forbidden for plain member, got %v", err)
	}

	if err := env.post.DeletePost(context.Background(), admin.ID, post.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	posts, err := env.post.ListGroupPosts(context.Background(), admin.ID, group.ID)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("post count = %d, want 0", len(posts))
	}
}

// droppedAwardGroups stands in for a group service whose award write keeps
// failing: AwardXP logs and drops the grant, so callers never see an error.
type droppedAwardGroups struct {
	GroupService
}

func (droppedAwardGroups) AwardXP(context.Context, uuid.UUID, int, string) {}

func TestCreatePost_PersistsWhenAwardFails(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signup(t, "Ada Lovelace", "ada@example.com")
	group := env.newGroup(t, admin.ID, "Night Owls")

	log := logger.NewNop()
	notifier := realtime.NewNotifier(log, realtime.NewHub(log), nil)
	posts := NewPostService(env.db, log, env.postRepoTest, env.groupRepoTest, env.userRepoTest, droppedAwardGroups{env.group}, notifier)

	post, err := posts.CreatePost(context.Background(), admin.ID, group.ID, "still standing")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	stored, err := env.postRepoTest.GetByID(context.Background(), nil, post.ID)
	if err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if stored.Content != "still standing" {
		t.Fatalf("content = %q", stored.Content)
	}

	// The dropped award leaves the group untouched but the post survives.
	g, err := env.groupRepoTest.GetByID(context.Background(), nil, group.ID)
	if err != nil {
		t.Fatalf("reload group: %v", err)
	}
	if g.XP != 0 || g.TotalXP != 0 {
		t.Fatalf("group xp = %d/%d, want 0/0", g.XP, g.TotalXP)
	}

	comment, err := posts.CommentPost(context.Background(), admin.ID, post.ID, "me too")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if len(comment.CommentViews) != 1 {
		t.Fatalf("comments = %d, want 1", len(comment.CommentViews))
	}
}
