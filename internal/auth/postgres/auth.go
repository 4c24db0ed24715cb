package postgres

import (
	"errors"

	"gorm.io/gorm"

	internal "github.com/gatherhub/community/internal"
	"github.com/gatherhub/community/internal/auth"
	userDatamodel "github.com/gatherhub/community/internal/core/datamodel/user"
)

// AuthRepository implements auth.UserRepository using GORM.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetPasswordForEmail(email string) (string, int64, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, internal.ErrUserNotFound
		}
		return "", 0, err
	}
	return u.PasswordHash, u.ID, nil
}

func (r *AuthRepository) GetUserByID(userID int64) (*auth.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &auth.User{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Plan:    u.Plan,
		IsAdmin: u.IsAdmin,
	}, nil
}
