package membership

import (
	"time"

	membershipDatamodel "github.com/gatherhub/community/internal/core/datamodel/membership"
)

// Membership links one user to one group. Accepted=false means the join
// request is still pending. A membership never reverts from accepted back
// to pending.
type Membership struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	GroupID   int64     `json:"group_id"`
	Accepted  bool      `json:"accepted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Notices surfaced to the presentation layer alongside workflow outcomes.
const (
	NoticeRequestSent   = "request successfully sent"
	NoticeJoined        = "You have joined this group."
	NoticeAlreadyJoined = "You have already joined this group"
	NoticeAccepted      = "Request accepted"
)

func ToDataModel(m *Membership) *membershipDatamodel.Membership {
	return &membershipDatamodel.Membership{
		ID:        m.ID,
		UserID:    m.UserID,
		GroupID:   m.GroupID,
		Accepted:  m.Accepted,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromDataModel(m *membershipDatamodel.Membership) *Membership {
	return &Membership{
		ID:        m.ID,
		UserID:    m.UserID,
		GroupID:   m.GroupID,
		Accepted:  m.Accepted,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromDataModelSlice(memberships []*membershipDatamodel.Membership) []*Membership {
	result := make([]*Membership, len(memberships))
	for i, m := range memberships {
		result[i] = FromDataModel(m)
	}
	return result
}
