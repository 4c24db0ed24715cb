package group

import (
	"github.com/gatherhub/community/internal/core/common/validation"
)

type CreateGroupDTO struct {
	Title       string   `json:"title"`
	GroupType   string   `json:"group_type"`
	ImageURL    string   `json:"image_url"`
	PictureURLs []string `json:"picture_urls,omitempty"`
}

func (d *CreateGroupDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(255)
	v.Field("group_type", d.GroupType).Required().OneOf(TypePublic, TypePrivate)
	v.Field("image_url", d.ImageURL).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateGroupDTO struct {
	Title       string   `json:"title"`
	GroupType   string   `json:"group_type"`
	ImageURL    string   `json:"image_url"`
	PictureURLs []string `json:"picture_urls,omitempty"`
}

func (d *UpdateGroupDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(255)
	v.Field("group_type", d.GroupType).Required().OneOf(TypePublic, TypePrivate)
	v.Field("image_url", d.ImageURL).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
