package post

import (
	"log/slog"

	internal "github.com/gatherhub/community/internal"
	"github.com/gatherhub/community/internal/ability"
	postDatamodel "github.com/gatherhub/community/internal/core/datamodel/post"
)

// Repository defines the data access methods for the post registry.
// DeleteWithComments removes the post and its comments in one
// transaction, the storage-level cascade.
type Repository interface {
	Create(p *postDatamodel.Post) error
	GetByID(id int64) (*postDatamodel.Post, error)
	Update(p *postDatamodel.Post) error
	DeleteWithComments(id int64) error
	ListForGroup(groupID int64) ([]*postDatamodel.Post, error)
	ListRecent(limit int) ([]*postDatamodel.Post, error)
}

// MembershipChecker gates group content behind an accepted membership.
type MembershipChecker interface {
	CheckRequestStatus(groupID, userID int64) bool
}

// RecentFeedSize caps the cross-group article feed.
const RecentFeedSize = 20

type Service struct {
	repo       Repository
	membership MembershipChecker
	logger     *slog.Logger
}

func NewService(repo Repository, membership MembershipChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		membership: membership,
		logger:     logger,
	}
}

// CreatePost publishes an article in the group. The author must be an
// accepted member, admins excepted.
func (s *Service) CreatePost(actor ability.Subject, groupID int64, dto CreatePostDTO) (*Post, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	if !s.memberOrAdmin(actor, groupID) {
		return nil, "", internal.ErrNotGroupMember
	}

	if !ability.May(actor, ability.ActionCreate, ability.ResourcePost) {
		s.logger.Warn("post creation denied", "user_id", actor.ID, "group_id", groupID)
		return nil, "", internal.ErrNotResourceOwner
	}

	dm := &postDatamodel.Post{
		GroupID:     groupID,
		UserID:      actor.ID,
		Title:       dto.Title,
		Description: dto.Description,
		PostType:    dto.PostType,
	}

	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create post", "error", err, "group_id", groupID, "user_id", actor.ID)
		return nil, "", err
	}

	s.logger.Info("post created", "post_id", dm.ID, "group_id", groupID, "user_id", actor.ID)

	return FromDataModel(dm), NoticeCreated, nil
}

// GetPost returns one article. Visibility follows the owning group's
// membership gate.
func (s *Service) GetPost(actor ability.Subject, postID int64) (*Post, error) {
	dm, err := s.repo.GetByID(postID)
	if err != nil {
		return nil, internal.ErrPostNotFound
	}

	if !s.memberOrAdmin(actor, dm.GroupID) {
		return nil, internal.ErrNotGroupMember
	}

	return FromDataModel(dm), nil
}

// ListPostsForGroup returns the group's articles, newest first.
func (s *Service) ListPostsForGroup(actor ability.Subject, groupID int64) ([]*Post, error) {
	if !s.memberOrAdmin(actor, groupID) {
		return nil, internal.ErrNotGroupMember
	}

	dms, err := s.repo.ListForGroup(groupID)
	if err != nil {
		s.logger.Error("failed to list posts", "error", err, "group_id", groupID)
		return nil, err
	}

	return FromDataModelSlice(dms), nil
}

// ListRecent returns the latest articles across all groups.
func (s *Service) ListRecent() ([]*Post, error) {
	dms, err := s.repo.ListRecent(RecentFeedSize)
	if err != nil {
		s.logger.Error("failed to list recent posts", "error", err)
		return nil, err
	}
	return FromDataModelSlice(dms), nil
}

// UpdatePost edits an article. Only the author may edit, unless the
// actor is an admin.
func (s *Service) UpdatePost(actor ability.Subject, postID int64, dto UpdatePostDTO) (*Post, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm, err := s.repo.GetByID(postID)
	if err != nil {
		return nil, internal.ErrPostNotFound
	}

	if !ability.MayOwn(actor, ability.ActionUpdate, ability.ResourcePost, dm.UserID) {
		s.logger.Warn("post update denied", "post_id", postID, "user_id", actor.ID, "author_id", dm.UserID)
		return nil, internal.ErrNotResourceOwner
	}

	dm.Title = dto.Title
	dm.Description = dto.Description
	dm.PostType = dto.PostType

	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update post", "error", err, "post_id", postID)
		return nil, err
	}

	return FromDataModel(dm), nil
}

// DeletePost removes an article and its comments. Only the author may
// delete, unless the actor is an admin.
func (s *Service) DeletePost(actor ability.Subject, postID int64) error {
	dm, err := s.repo.GetByID(postID)
	if err != nil {
		return internal.ErrPostNotFound
	}

	if !ability.MayOwn(actor, ability.ActionDelete, ability.ResourcePost, dm.UserID) {
		s.logger.Warn("post delete denied", "post_id", postID, "user_id", actor.ID, "author_id", dm.UserID)
		return internal.ErrNotResourceOwner
	}

	if err := s.repo.DeleteWithComments(postID); err != nil {
		s.logger.Error("failed to delete post", "error", err, "post_id", postID)
		return err
	}

	s.logger.Info("post deleted", "post_id", postID, "user_id", actor.ID)
	return nil
}

func (s *Service) memberOrAdmin(actor ability.Subject, groupID int64) bool {
	if actor.Admin {
		return true
	}
	return s.membership.CheckRequestStatus(groupID, actor.ID)
}
