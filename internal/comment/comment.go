package comment

import (
	"time"

	commentDatamodel "github.com/gatherhub/community/internal/core/datamodel/comment"
)

// Comment is a reply attached to a post.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(dm *commentDatamodel.Comment) *Comment {
	if dm == nil {
		return nil
	}
	return &Comment{
		ID:        dm.ID,
		PostID:    dm.PostID,
		UserID:    dm.UserID,
		Content:   dm.Content,
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
}

func FromDataModelSlice(dms []*commentDatamodel.Comment) []*Comment {
	comments := make([]*Comment, 0, len(dms))
	for _, dm := range dms {
		comments = append(comments, FromDataModel(dm))
	}
	return comments
}
