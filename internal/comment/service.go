package comment

import (
	"log/slog"

	internal "github.com/gatherhub/community/internal"
	"github.com/gatherhub/community/internal/ability"
	commentDatamodel "github.com/gatherhub/community/internal/core/datamodel/comment"
	postDatamodel "github.com/gatherhub/community/internal/core/datamodel/post"
)

// Repository defines the data access methods for the comment registry.
type Repository interface {
	Create(c *commentDatamodel.Comment) error
	GetByID(id int64) (*commentDatamodel.Comment, error)
	Delete(id int64) error
	ListForPost(postID int64) ([]*commentDatamodel.Comment, error)
}

// PostReader resolves the post a comment hangs off, to confirm it exists
// and to find the group the membership gate applies to.
type PostReader interface {
	GetByID(id int64) (*postDatamodel.Post, error)
}

// MembershipChecker gates group content behind an accepted membership.
type MembershipChecker interface {
	CheckRequestStatus(groupID, userID int64) bool
}

type Service struct {
	repo       Repository
	posts      PostReader
	membership MembershipChecker
	logger     *slog.Logger
}

func NewService(repo Repository, posts PostReader, membership MembershipChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		posts:      posts,
		membership: membership,
		logger:     logger,
	}
}

// CreateComment attaches a reply to the post. The commenter must be an
// accepted member of the post's group.
func (s *Service) CreateComment(actor ability.Subject, postID int64, dto CreateCommentDTO) (*Comment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, internal.ErrPostNotFound
	}

	if !s.memberOrAdmin(actor, p.GroupID) {
		return nil, internal.ErrNotGroupMember
	}

	if !ability.May(actor, ability.ActionCreate, ability.ResourceComment) {
		s.logger.Warn("comment creation denied", "user_id", actor.ID, "post_id", postID)
		return nil, internal.ErrNotResourceOwner
	}

	dm := &commentDatamodel.Comment{
		PostID:  postID,
		UserID:  actor.ID,
		Content: dto.Content,
	}

	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create comment", "error", err, "post_id", postID, "user_id", actor.ID)
		return nil, err
	}

	s.logger.Info("comment created", "comment_id", dm.ID, "post_id", postID, "user_id", actor.ID)

	return FromDataModel(dm), nil
}

// ListForPost returns a post's comments, oldest first.
func (s *Service) ListForPost(actor ability.Subject, postID int64) ([]*Comment, error) {
	p, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, internal.ErrPostNotFound
	}

	if !s.memberOrAdmin(actor, p.GroupID) {
		return nil, internal.ErrNotGroupMember
	}

	dms, err := s.repo.ListForPost(postID)
	if err != nil {
		s.logger.Error("failed to list comments", "error", err, "post_id", postID)
		return nil, err
	}

	return FromDataModelSlice(dms), nil
}

// DeleteComment removes a reply. Only its author may delete it, unless
// the actor is an admin.
func (s *Service) DeleteComment(actor ability.Subject, commentID int64) error {
	dm, err := s.repo.GetByID(commentID)
	if err != nil {
		return internal.ErrCommentNotFound
	}

	if !ability.MayOwn(actor, ability.ActionDelete, ability.ResourceComment, dm.UserID) {
		s.logger.Warn("comment delete denied", "comment_id", commentID, "user_id", actor.ID, "author_id", dm.UserID)
		return internal.ErrNotResourceOwner
	}

	if err := s.repo.Delete(commentID); err != nil {
		s.logger.Error("failed to delete comment", "error", err, "comment_id", commentID)
		return err
	}

	return nil
}

func (s *Service) memberOrAdmin(actor ability.Subject, groupID int64) bool {
	if actor.Admin {
		return true
	}
	return s.membership.CheckRequestStatus(groupID, actor.ID)
}
