package postgres

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	internal "github.com/gatherhub/community/internal"
	membershipDatamodel "github.com/gatherhub/community/internal/core/datamodel/membership"
	"github.com/gatherhub/community/internal/membership"
)

// MembershipRepository implements membership.Repository using GORM.
type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) membership.Repository {
	return &MembershipRepository{db: db}
}

// Create inserts a membership row. The unique index on (user_id, group_id)
// serializes concurrent joins; a duplicate-key failure surfaces as
// ErrAlreadyJoined so the workflow can report "already joined" instead of
// treating it as fatal.
func (r *MembershipRepository) Create(m *membershipDatamodel.Membership) error {
	if err := r.db.Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return internal.ErrAlreadyJoined
		}
		return err
	}
	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func (r *MembershipRepository) GetByUserAndGroup(userID, groupID int64) (*membershipDatamodel.Membership, error) {
	var m membershipDatamodel.Membership
	err := r.db.Where("user_id = ? AND group_id = ?", userID, groupID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrMembershipNotFound
		}
		return nil, err
	}
	return &m, nil
}

// MarkAccepted only ever moves a membership to accepted, never back.
func (r *MembershipRepository) MarkAccepted(id int64) error {
	return r.db.Model(&membershipDatamodel.Membership{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"accepted":   true,
			"updated_at": time.Now(),
		}).Error
}

func (r *MembershipRepository) ListForGroup(groupID int64) ([]*membershipDatamodel.Membership, error) {
	var memberships []*membershipDatamodel.Membership
	err := r.db.Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&memberships).Error
	return memberships, err
}

func (r *MembershipRepository) CountPending(groupID int64) (int64, error) {
	var count int64
	err := r.db.Model(&membershipDatamodel.Membership{}).
		Where("group_id = ? AND accepted = ?", groupID, false).
		Count(&count).Error
	return count, err
}

// FirstForGroup returns the earliest membership, i.e. the creator's.
func (r *MembershipRepository) FirstForGroup(groupID int64) (*membershipDatamodel.Membership, error) {
	var m membershipDatamodel.Membership
	err := r.db.Where("group_id = ?", groupID).
		Order("created_at ASC, id ASC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrMembershipNotFound
		}
		return nil, err
	}
	return &m, nil
}
