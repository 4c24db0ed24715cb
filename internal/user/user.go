package user

import (
	"time"

	userDatamodel "github.com/gatherhub/community/internal/core/datamodel/user"
)

// User is the member profile as the API exposes it. The password hash
// never leaves the data layer.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func FromDataModel(dm *userDatamodel.User) *User {
	if dm == nil {
		return nil
	}
	return &User{
		ID:        dm.ID,
		Email:     dm.Email,
		Name:      dm.Name,
		Plan:      dm.Plan,
		IsAdmin:   dm.IsAdmin,
		CreatedAt: dm.CreatedAt,
	}
}

func FromDataModelSlice(dms []*userDatamodel.User) []*User {
	users := make([]*User, 0, len(dms))
	for _, dm := range dms {
		users = append(users, FromDataModel(dm))
	}
	return users
}
