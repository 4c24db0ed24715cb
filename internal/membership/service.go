package membership

import (
	"errors"
	"log/slog"

	internal "github.com/gatherhub/community/internal"
	"github.com/gatherhub/community/internal/ability"
	groupDatamodel "github.com/gatherhub/community/internal/core/datamodel/group"
	membershipDatamodel "github.com/gatherhub/community/internal/core/datamodel/membership"
	"github.com/gatherhub/community/internal/group"
)

// Repository defines the data access methods for the membership ledger.
type Repository interface {
	Create(m *membershipDatamodel.Membership) error
	GetByUserAndGroup(userID, groupID int64) (*membershipDatamodel.Membership, error)
	MarkAccepted(id int64) error
	ListForGroup(groupID int64) ([]*membershipDatamodel.Membership, error)
	CountPending(groupID int64) (int64, error)
	FirstForGroup(groupID int64) (*membershipDatamodel.Membership, error)
}

// GroupReader is the narrow view of the group registry the workflow needs.
type GroupReader interface {
	GetByID(groupID int64) (*groupDatamodel.Group, error)
}

// Service orchestrates join requests against the membership ledger.
// Authorization for who may accept requests is enforced at the transport
// boundary, not here.
type Service struct {
	repo   Repository
	groups GroupReader
	logger *slog.Logger
}

func NewService(repo Repository, groups GroupReader, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		groups: groups,
		logger: logger,
	}
}

// RequestJoin files a join request for actor on the group. Public groups
// accept immediately, any other group type leaves the request pending. A
// second request for the same (user, group) pair hits the uniqueness
// constraint and reports "already joined" instead of failing hard.
func (s *Service) RequestJoin(actor ability.Subject, groupID int64) (*Membership, string, error) {
	g, err := s.groups.GetByID(groupID)
	if err != nil {
		s.logger.Warn("join request for missing group", "group_id", groupID, "user_id", actor.ID)
		return nil, "", internal.ErrGroupNotFound
	}

	m := &membershipDatamodel.Membership{
		UserID:   actor.ID,
		GroupID:  groupID,
		Accepted: g.GroupType == group.TypePublic,
	}

	if err := s.repo.Create(m); err != nil {
		if errors.Is(err, internal.ErrAlreadyJoined) {
			s.logger.Info("duplicate join request",
				"group_id", groupID,
				"user_id", actor.ID)
			return nil, NoticeAlreadyJoined, internal.ErrAlreadyJoined
		}
		s.logger.Error("failed to create membership", "error", err, "group_id", groupID, "user_id", actor.ID)
		return nil, "", err
	}

	notice := NoticeRequestSent
	if m.Accepted {
		notice = NoticeJoined
	}

	s.logger.Info("join request recorded",
		"group_id", groupID,
		"user_id", actor.ID,
		"accepted", m.Accepted)

	return FromDataModel(m), notice, nil
}

// AcceptRequest flips an existing membership to accepted. Idempotent:
// accepting an already-accepted membership is a no-op success.
func (s *Service) AcceptRequest(groupID, targetUserID int64) (*Membership, error) {
	m, err := s.repo.GetByUserAndGroup(targetUserID, groupID)
	if err != nil {
		s.logger.Warn("accept for missing membership", "group_id", groupID, "target_user_id", targetUserID)
		return nil, internal.ErrMembershipNotFound
	}

	if m.Accepted {
		return FromDataModel(m), nil
	}

	if err := s.repo.MarkAccepted(m.ID); err != nil {
		s.logger.Error("failed to accept membership", "error", err, "membership_id", m.ID)
		return nil, err
	}
	m.Accepted = true

	s.logger.Info("membership accepted",
		"group_id", groupID,
		"target_user_id", targetUserID,
		"membership_id", m.ID)

	return FromDataModel(m), nil
}

// CheckRequestStatus reports whether the user has an accepted membership
// in the group. Missing membership counts as not accepted; the
// presentation layer uses this as the visibility gate for group content.
func (s *Service) CheckRequestStatus(groupID, userID int64) bool {
	m, err := s.repo.GetByUserAndGroup(userID, groupID)
	if err != nil {
		return false
	}
	return m.Accepted
}

// PendingRequestCount returns how many join requests are waiting on the
// group.
func (s *Service) PendingRequestCount(groupID int64) (int64, error) {
	return s.repo.CountPending(groupID)
}

// IsGroupAdmin reports whether the user holds the group's earliest
// membership, which is the creator's auto-accepted one.
func (s *Service) IsGroupAdmin(groupID, userID int64) (bool, error) {
	first, err := s.repo.FirstForGroup(groupID)
	if err != nil {
		return false, err
	}
	return first.UserID == userID, nil
}

// ListRequests returns every membership of the group, pending and
// accepted, for the owner's request review screen.
func (s *Service) ListRequests(groupID int64) ([]*Membership, error) {
	memberships, err := s.repo.ListForGroup(groupID)
	if err != nil {
		s.logger.Error("failed to list memberships", "error", err, "group_id", groupID)
		return nil, err
	}
	return FromDataModelSlice(memberships), nil
}
