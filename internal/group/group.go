package group

import (
	"fmt"
	"time"

	groupDatamodel "github.com/gatherhub/community/internal/core/datamodel/group"
)

// Group types understood by the join workflow. Public groups accept new
// members immediately, everything else leaves the request pending.
const (
	TypePublic  = "Public"
	TypePrivate = "Private"
)

const (
	NoticeCreated = "Group was successfully created."
	NoticeUpdated = "Group was successfully updated"
)

// Group is the community circle users gather in.
type Group struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	GroupType string    `json:"group_type"`
	CreatorID int64     `json:"creator_id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Pictures []Picture `json:"pictures,omitempty"`
}

// Picture is a gallery image attached to a group.
type Picture struct {
	ID      int64  `json:"id"`
	GroupID int64  `json:"group_id"`
	URL     string `json:"url"`
}

func FromDataModel(dm *groupDatamodel.Group) *Group {
	if dm == nil {
		return nil
	}
	return &Group{
		ID:        dm.ID,
		Title:     dm.Title,
		GroupType: dm.GroupType,
		CreatorID: dm.CreatorID,
		ImageURL:  dm.ImageURL,
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
}

func FromDataModelSlice(dms []*groupDatamodel.Group) []*Group {
	groups := make([]*Group, 0, len(dms))
	for _, dm := range dms {
		groups = append(groups, FromDataModel(dm))
	}
	return groups
}

func (g *Group) ToDataModel() *groupDatamodel.Group {
	return &groupDatamodel.Group{
		ID:        g.ID,
		Title:     g.Title,
		GroupType: g.GroupType,
		CreatorID: g.CreatorID,
		ImageURL:  g.ImageURL,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func PictureFromDataModel(dm *groupDatamodel.GroupPicture) Picture {
	return Picture{
		ID:      dm.ID,
		GroupID: dm.GroupID,
		URL:     dm.URL,
	}
}

// JoinURL builds the link a shared invite points at, the same path the
// join endpoint is mounted on.
func JoinURL(baseURL string, groupID int64) string {
	return fmt.Sprintf("%s/api/v1/groups/%d/join", baseURL, groupID)
}
