package post

import (
	"time"

	postDatamodel "github.com/gatherhub/community/internal/core/datamodel/post"
)

const NoticeCreated = "Article was successfully created."

// Post is an article published inside a group.
type Post struct {
	ID          int64     `json:"id"`
	GroupID     int64     `json:"group_id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PostType    string    `json:"post_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromDataModel(dm *postDatamodel.Post) *Post {
	if dm == nil {
		return nil
	}
	return &Post{
		ID:          dm.ID,
		GroupID:     dm.GroupID,
		UserID:      dm.UserID,
		Title:       dm.Title,
		Description: dm.Description,
		PostType:    dm.PostType,
		CreatedAt:   dm.CreatedAt,
		UpdatedAt:   dm.UpdatedAt,
	}
}

func FromDataModelSlice(dms []*postDatamodel.Post) []*Post {
	posts := make([]*Post, 0, len(dms))
	for _, dm := range dms {
		posts = append(posts, FromDataModel(dm))
	}
	return posts
}
