package comment

import (
	"github.com/gatherhub/community/internal/core/common/validation"
)

type CreateCommentDTO struct {
	Content string `json:"content"`
}

func (d *CreateCommentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("content", d.Content).Required().MaxLength(2000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
