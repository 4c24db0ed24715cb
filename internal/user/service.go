package user

import (
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	internal "github.com/gatherhub/community/internal"
	"github.com/gatherhub/community/internal/ability"
	userDatamodel "github.com/gatherhub/community/internal/core/datamodel/user"
)

// Repository defines the data access methods for the identity store.
type Repository interface {
	Create(u *userDatamodel.User) error
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	UpdatePlan(id int64, plan string) error
	List() ([]*userDatamodel.User, error)
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a new member with no plan. Email addresses are unique.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to process credentials", err)
	}

	dm := &userDatamodel.User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: string(hash),
		Plan:         string(ability.PlanNone),
	}

	if err := s.repo.Create(dm); err != nil {
		if errors.Is(err, internal.ErrEmailTaken) {
			return nil, internal.ErrEmailTaken
		}
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", dm.ID, "email", dm.Email)

	return FromDataModel(dm), nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	dm, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(dm), nil
}

// ChangePlan assigns a subscription plan to a member. Admin only.
func (s *Service) ChangePlan(actor ability.Subject, targetUserID int64, dto ChangePlanDTO) (*User, error) {
	if !actor.Admin {
		s.logger.Warn("plan change denied", "user_id", actor.ID, "target_user_id", targetUserID)
		return nil, internal.ErrNotAdmin
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm, err := s.repo.GetByID(targetUserID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	if err := s.repo.UpdatePlan(targetUserID, dto.Plan); err != nil {
		s.logger.Error("failed to change plan", "error", err, "target_user_id", targetUserID)
		return nil, err
	}

	dm.Plan = dto.Plan

	s.logger.Info("plan changed", "target_user_id", targetUserID, "plan", dto.Plan, "admin_id", actor.ID)

	return FromDataModel(dm), nil
}

// ListUsers returns the member directory. Admin only.
func (s *Service) ListUsers(actor ability.Subject) ([]*User, error) {
	if !actor.Admin {
		return nil, internal.ErrNotAdmin
	}

	dms, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}

	return FromDataModelSlice(dms), nil
}
