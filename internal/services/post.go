package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/normalization"
	"github.com/quizmize/backend/internal/realtime"
	"github.com/quizmize/backend/internal/repos"
	"github.com/quizmize/backend/internal/types"
)

type CommentView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostView struct {
	*types.Post
	AuthorName   string        `json:"authorName"`
	AuthorAvatar string        `json:"authorAvatar"`
	Upvotes      int           `json:"upvotes"`
	Downvotes    int           `json:"downvotes"`
	VoteCount    int           `json:"voteCount"`
	UserVote     int           `json:"userVote"`
	CommentViews []CommentView `json:"commentDetails"`
}

type PostService interface {
	CreatePost(ctx context.Context, actorID, groupID uuid.UUID, content string) (*types.Post, error)
	ListGroupPosts(ctx context.Context, actorID, groupID uuid.UUID) ([]*PostView, error)
	VotePost(ctx context.Context, actorID, postID uuid.UUID, value int) (*PostView, error)
	CommentPost(ctx context.Context, actorID, postID uuid.UUID, text string) (*PostView, error)
	DeletePost(ctx context.Context, actorID, postID uuid.UUID) error
}

type postService struct {
	db           *gorm.DB
	log          *logger.Logger
	postRepo     repos.PostRepo
	groupRepo    repos.GroupRepo
	userRepo     repos.UserRepo
	groupService GroupService
	notifier     *realtime.Notifier
}

func NewPostService(db *gorm.DB, log *logger.Logger, postRepo repos.PostRepo, groupRepo repos.GroupRepo, userRepo repos.UserRepo, groupService GroupService, notifier *realtime.Notifier) PostService {
	serviceLog := log.With("service", "PostService")
	return &postService{
		db:           db,
		log:          serviceLog,
		postRepo:     postRepo,
		groupRepo:    groupRepo,
		userRepo:     userRepo,
		groupService: groupService,
		notifier:     notifier,
	}
}

func (ps *postService) CreatePost(ctx context.Context, actorID, groupID uuid.UUID, content string) (*types.Post, error) {
	content = normalization.TrimInputString(content)
	if content == "" {
		return nil, apierr.Validation("Post content is required")
	}

	var post *types.Post
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, gErr := ps.groupRepo.GetByID(ctx, tx, groupID)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("group")
			}
			return fmt.Errorf("Failed to load group: %w", gErr)
		}
		if !g.IsMember(actorID) {
			return apierr.Forbidden("Only group members can post")
		}

		p := &types.Post{
			GroupID: groupID,
			UserID:  actorID,
			Content: content,
		}
		if _, cErr := ps.postRepo.Create(ctx, tx, p); cErr != nil {
			return fmt.Errorf("Failed to create post: %w", cErr)
		}
		post = p
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}

	ps.notifier.Notify(ctx, realtime.EventNewPost, groupID, ps.view(ctx, post, actorID))
	ps.groupService.AwardXP(ctx, groupID, XPAwardPost, "new-post")

	ps.log.Info("post created", "post_id", post.ID, "group_id", groupID, "user_id", actorID)
	return post, nil
}

func (ps *postService) ListGroupPosts(ctx context.Context, actorID, groupID uuid.UUID) ([]*PostView, error) {
	group, err := ps.groupRepo.GetByID(ctx, nil, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("group")
		}
		return nil, apierr.Internal(fmt.Errorf("Failed to load group: %w", err))
	}
	if !group.IsMember(actorID) {
		return nil, apierr.Forbidden("Only group members can view posts")
	}

	posts, err := ps.postRepo.ListByGroup(ctx, nil, groupID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("Failed to list posts: %w", err))
	}

	views := make([]*PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, ps.view(ctx, p, actorID))
	}
	return views, nil
}

// VotePost applies the toggle semantics: voting the same value removes the
// vote, voting the opposite switches it. Only a transition into an upvote
// earns the group xp; removals are never clawed back.
func (ps *postService) VotePost(ctx context.Context, actorID, postID uuid.UUID, value int) (*PostView, error) {
	if value != types.VoteUp && value != types.VoteDown {
		return nil, apierr.Validation("Vote value must be 1 or -1")
	}

	var (
		post    *types.Post
		awarded bool
	)
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, pErr := ps.postRepo.GetByID(ctx, tx, postID)
		if pErr != nil {
			if errors.Is(pErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("post")
			}
			return fmt.Errorf("Failed to load post: %w", pErr)
		}
		g, gErr := ps.groupRepo.GetByID(ctx, tx, p.GroupID)
		if gErr != nil {
			return fmt.Errorf("Failed to load group: %w", gErr)
		}
		if !g.IsMember(actorID) {
			return apierr.Forbidden("Only group members can vote")
		}

		previous, had := p.VoteOf(actorID)
		switch {
		case had && previous == value:
			// Same vote again removes it.
			kept := p.Votes[:0]
			for _, v := range p.Votes {
				if v.UserID.String() != actorID.String() {
					kept = append(kept, v)
				}
			}
			p.Votes = kept
		case had:
			for i := range p.Votes {
				if p.Votes[i].UserID.String() == actorID.String() {
					p.Votes[i].Value = value
				}
			}
		default:
			p.Votes = append(p.Votes, types.PostVote{UserID: actorID, Value: value})
		}

		if sErr := ps.postRepo.Save(ctx, tx, p); sErr != nil {
			return fmt.Errorf("Failed to save post: %w", sErr)
		}

		awarded = value == types.VoteUp && !(had && previous == value) && previous != types.VoteUp
		post = p
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}

	view := ps.view(ctx, post, actorID)
	ps.notifier.Notify(ctx, realtime.EventVoteUpdate, post.GroupID, view)
	if awarded {
		ps.groupService.AwardXP(ctx, post.GroupID, XPAwardUpvote, "vote-update")
	}
	return view, nil
}

func (ps *postService) CommentPost(ctx context.Context, actorID, postID uuid.UUID, text string) (*PostView, error) {
	text = normalization.TrimInputString(text)
	if text == "" {
		return nil, apierr.Validation("Comment text is required")
	}

	var post *types.Post
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, pErr := ps.postRepo.GetByID(ctx, tx, postID)
		if pErr != nil {
			if errors.Is(pErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("post")
			}
			return fmt.Errorf("Failed to load post: %w", pErr)
		}
		g, gErr := ps.groupRepo.GetByID(ctx, tx, p.GroupID)
		if gErr != nil {
			return fmt.Errorf("Failed to load group: %w", gErr)
		}
		if !g.IsMember(actorID) {
			return apierr.Forbidden("Only group members can comment")
		}

		p.Comments = append(p.Comments, types.PostComment{
			ID:        uuid.New(),
			UserID:    actorID,
			Text:      text,
			CreatedAt: time.Now(),
		})
		if sErr := ps.postRepo.Save(ctx, tx, p); sErr != nil {
			return fmt.Errorf("Failed to save post: %w", sErr)
		}
		post = p
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}

	view := ps.view(ctx, post, actorID)
	ps.notifier.Notify(ctx, realtime.EventNewComment, post.GroupID, view)
	ps.groupService.AwardXP(ctx, post.GroupID, XPAwardComment, "new-comment")
	return view, nil
}

func (ps *postService) DeletePost(ctx context.Context, actorID, postID uuid.UUID) error {
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, pErr := ps.postRepo.GetByID(ctx, tx, postID)
		if pErr != nil {
			if errors.Is(pErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("post")
			}
			return fmt.Errorf("Failed to load post: %w", pErr)
		}
		g, gErr := ps.groupRepo.GetByID(ctx, tx, p.GroupID)
		if gErr != nil {
			return fmt.Errorf("Failed to load group: %w", gErr)
		}
		role, ok := g.RoleOf(actorID)
		if !ok || role != types.GroupRoleAdmin {
			return apierr.Forbidden("Only group admins can delete posts")
		}
		if dErr := ps.postRepo.Delete(ctx, tx, postID); dErr != nil {
			return fmt.Errorf("Failed to delete post: %w", dErr)
		}
		return nil
	})
	if err != nil {
		return apierr.From(err)
	}
	ps.log.Info("post deleted", "post_id", postID, "deleted_by", actorID)
	return nil
}

func (ps *postService) view(ctx context.Context, post *types.Post, viewerID uuid.UUID) *PostView {
	up, down, count := post.Tally()
	userVote, _ := post.VoteOf(viewerID)
	view := &PostView{
		Post:      post,
		Upvotes:   up,
		Downvotes: down,
		VoteCount: count,
		UserVote:  userVote,
	}
	if author, err := ps.userRepo.GetByID(ctx, nil, post.UserID); err == nil {
		view.AuthorName = author.FullName
		view.AuthorAvatar = author.AvatarURL
	}
	for _, c := range post.Comments {
		cv := CommentView{
			ID:        c.ID,
			UserID:    c.UserID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		}
		if commenter, err := ps.userRepo.GetByID(ctx, nil, c.UserID); err == nil {
			cv.UserName = commenter.FullName
		}
		view.CommentViews = append(view.CommentViews, cv)
	}
	return view
}
