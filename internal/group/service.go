package group

import (
	"context"
	"log/slog"

	internal "github.com/gatherhub/community/internal"
	"github.com/gatherhub/community/internal/ability"
	groupDatamodel "github.com/gatherhub/community/internal/core/datamodel/group"
	membershipDatamodel "github.com/gatherhub/community/internal/core/datamodel/membership"
	"github.com/gatherhub/community/internal/core/events"
)

// Repository defines the data access methods for the group registry. The
// creator's membership is written in the same transaction as the group,
// so a group never exists without its owner row.
type Repository interface {
	CreateWithOwner(g *groupDatamodel.Group, owner *membershipDatamodel.Membership) error
	GetByID(id int64) (*groupDatamodel.Group, error)
	Update(g *groupDatamodel.Group) error
	List(limit, offset int) ([]*groupDatamodel.Group, error)
	Count() (int64, error)
	AddPictures(pics []*groupDatamodel.GroupPicture) error
	ListPictures(groupID int64) ([]*groupDatamodel.GroupPicture, error)
}

// StatusChecker answers whether a user has an accepted membership in a
// group. Implemented by the membership service, wired at startup.
type StatusChecker interface {
	CheckRequestStatus(groupID, userID int64) bool
}

// EventPublisher is the slice of the event bus the service uses.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// PageSize is the fixed page length for group listings.
const PageSize = 10

type Service struct {
	repo      Repository
	status    StatusChecker
	publisher EventPublisher
	logger    *slog.Logger
}

func NewService(repo Repository, status StatusChecker, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		status:    status,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateGroup creates a group on behalf of actor and enrolls the actor as
// its first, already-accepted member. Only admins and premium users may
// create groups.
func (s *Service) CreateGroup(actor ability.Subject, dto CreateGroupDTO) (*Group, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	if !ability.May(actor, ability.ActionCreate, ability.ResourceGroup) {
		s.logger.Warn("group creation denied",
			"user_id", actor.ID,
			"plan", actor.Plan)
		return nil, "", internal.ErrPlanNotAllowed
	}

	dm := &groupDatamodel.Group{
		Title:     dto.Title,
		GroupType: dto.GroupType,
		CreatorID: actor.ID,
		ImageURL:  dto.ImageURL,
	}
	owner := &membershipDatamodel.Membership{
		UserID:   actor.ID,
		Accepted: true,
	}

	if err := s.repo.CreateWithOwner(dm, owner); err != nil {
		s.logger.Error("failed to create group", "error", err, "user_id", actor.ID)
		return nil, "", err
	}

	if len(dto.PictureURLs) > 0 {
		pics := make([]*groupDatamodel.GroupPicture, 0, len(dto.PictureURLs))
		for _, url := range dto.PictureURLs {
			pics = append(pics, &groupDatamodel.GroupPicture{GroupID: dm.ID, URL: url})
		}
		if err := s.repo.AddPictures(pics); err != nil {
			s.logger.Error("failed to attach group pictures", "error", err, "group_id", dm.ID)
		}
	}

	s.logger.Info("group created",
		"group_id", dm.ID,
		"title", dm.Title,
		"group_type", dm.GroupType,
		"creator_id", actor.ID)

	if s.publisher != nil {
		event := events.NewGroupCreatedEvent(dm.ID, actor.ID, dm.Title)
		if err := s.publisher.Publish(context.Background(), event); err != nil {
			s.logger.Error("failed to publish group created event", "error", err, "group_id", dm.ID)
		}
	}

	return FromDataModel(dm), NoticeCreated, nil
}

// GetGroup returns the group detail page data. Visibility requires an
// accepted membership, with no exception for admins: an admin who has not
// joined sees the same "not member" notice as anyone else.
func (s *Service) GetGroup(actor ability.Subject, groupID int64) (*Group, error) {
	dm, err := s.repo.GetByID(groupID)
	if err != nil {
		return nil, internal.ErrGroupNotFound
	}

	if !s.status.CheckRequestStatus(groupID, actor.ID) {
		s.logger.Info("group detail denied: not a member", "group_id", groupID, "user_id", actor.ID)
		return nil, internal.ErrNotGroupMember
	}

	g := FromDataModel(dm)

	pics, err := s.repo.ListPictures(groupID)
	if err != nil {
		s.logger.Error("failed to load group pictures", "error", err, "group_id", groupID)
	} else {
		for _, p := range pics {
			g.Pictures = append(g.Pictures, PictureFromDataModel(p))
		}
	}

	return g, nil
}

// UpdateGroup applies the edit form. Any member whose plan grants update
// on groups may edit; the basic plan keeps this even though it cannot
// create new groups.
func (s *Service) UpdateGroup(actor ability.Subject, groupID int64, dto UpdateGroupDTO) (*Group, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	if !ability.May(actor, ability.ActionUpdate, ability.ResourceGroup) {
		s.logger.Warn("group update denied", "user_id", actor.ID, "group_id", groupID, "plan", actor.Plan)
		return nil, "", internal.ErrPlanNotAllowed
	}

	dm, err := s.repo.GetByID(groupID)
	if err != nil {
		return nil, "", internal.ErrGroupNotFound
	}

	dm.Title = dto.Title
	dm.GroupType = dto.GroupType
	dm.ImageURL = dto.ImageURL

	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update group", "error", err, "group_id", groupID)
		return nil, "", err
	}

	if len(dto.PictureURLs) > 0 {
		pics := make([]*groupDatamodel.GroupPicture, 0, len(dto.PictureURLs))
		for _, url := range dto.PictureURLs {
			pics = append(pics, &groupDatamodel.GroupPicture{GroupID: dm.ID, URL: url})
		}
		if err := s.repo.AddPictures(pics); err != nil {
			s.logger.Error("failed to attach group pictures", "error", err, "group_id", dm.ID)
		}
	}

	s.logger.Info("group updated", "group_id", groupID, "user_id", actor.ID)

	return FromDataModel(dm), NoticeUpdated, nil
}

// GroupPage is one page of the group index.
type GroupPage struct {
	Groups     []*Group `json:"groups"`
	Page       int      `json:"page"`
	TotalCount int64    `json:"total_count"`
}

// ListGroups returns the paginated group index, oldest groups first.
// Pages are 1-based.
func (s *Service) ListGroups(page int) (*GroupPage, error) {
	if page < 1 {
		page = 1
	}

	dms, err := s.repo.List(PageSize, (page-1)*PageSize)
	if err != nil {
		s.logger.Error("failed to list groups", "error", err, "page", page)
		return nil, err
	}

	total, err := s.repo.Count()
	if err != nil {
		s.logger.Error("failed to count groups", "error", err)
		return nil, err
	}

	return &GroupPage{
		Groups:     FromDataModelSlice(dms),
		Page:       page,
		TotalCount: total,
	}, nil
}

// GetByID exposes the raw registry row for collaborating services.
func (s *Service) GetByID(groupID int64) (*groupDatamodel.Group, error) {
	return s.repo.GetByID(groupID)
}
