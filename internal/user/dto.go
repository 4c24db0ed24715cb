package user

import (
	"github.com/gatherhub/community/internal/core/common/validation"
)

type RegisterDTO struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (d *RegisterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().MaxLength(255)
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("password", d.Password).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ChangePlanDTO struct {
	Plan string `json:"plan"`
}

func (d *ChangePlanDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("plan", d.Plan).Required().OneOf("basic", "premium", "Premium", "none")
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
