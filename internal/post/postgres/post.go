package postgres

import (
	"errors"

	"gorm.io/gorm"

	internal "github.com/gatherhub/community/internal"
	commentDatamodel "github.com/gatherhub/community/internal/core/datamodel/comment"
	postDatamodel "github.com/gatherhub/community/internal/core/datamodel/post"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(p *postDatamodel.Post) error {
	return r.db.Create(p).Error
}

func (r *PostRepository) GetByID(id int64) (*postDatamodel.Post, error) {
	var p postDatamodel.Post
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Update(p *postDatamodel.Post) error {
	return r.db.Save(p).Error
}

// DeleteWithComments removes a post and its comments in one transaction.
func (r *PostRepository) DeleteWithComments(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&commentDatamodel.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&postDatamodel.Post{}, "id = ?", id).Error
	})
}

func (r *PostRepository) ListForGroup(groupID int64) ([]*postDatamodel.Post, error) {
	var posts []*postDatamodel.Post
	err := r.db.
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) ListRecent(limit int) ([]*postDatamodel.Post, error) {
	var posts []*postDatamodel.Post
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
