package postgres

import (
	"errors"

	"gorm.io/gorm"

	internal "github.com/gatherhub/community/internal"
	commentDatamodel "github.com/gatherhub/community/internal/core/datamodel/comment"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(c *commentDatamodel.Comment) error {
	return r.db.Create(c).Error
}

func (r *CommentRepository) GetByID(id int64) (*commentDatamodel.Comment, error) {
	var c commentDatamodel.Comment
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) Delete(id int64) error {
	return r.db.Delete(&commentDatamodel.Comment{}, "id = ?", id).Error
}

func (r *CommentRepository) ListForPost(postID int64) ([]*commentDatamodel.Comment, error) {
	var comments []*commentDatamodel.Comment
	err := r.db.
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
