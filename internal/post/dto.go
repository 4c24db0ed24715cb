package post

import (
	"github.com/gatherhub/community/internal/core/common/validation"
)

type CreatePostDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PostType    string `json:"post_type"`
}

func (d *CreatePostDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(255)
	v.Field("description", d.Description).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdatePostDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PostType    string `json:"post_type"`
}

func (d *UpdatePostDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(255)
	v.Field("description", d.Description).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
