package postgres

import (
	"errors"

	"gorm.io/gorm"

	internal "github.com/gatherhub/community/internal"
	groupDatamodel "github.com/gatherhub/community/internal/core/datamodel/group"
	membershipDatamodel "github.com/gatherhub/community/internal/core/datamodel/membership"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// CreateWithOwner inserts the group and its creator's accepted membership
// in one transaction, so a group can never exist without an owner row.
func (r *GroupRepository) CreateWithOwner(g *groupDatamodel.Group, owner *membershipDatamodel.Membership) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		owner.GroupID = g.ID
		return tx.Create(owner).Error
	})
}

func (r *GroupRepository) GetByID(id int64) (*groupDatamodel.Group, error) {
	var g groupDatamodel.Group
	if err := r.db.First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) Update(g *groupDatamodel.Group) error {
	return r.db.Save(g).Error
}

func (r *GroupRepository) List(limit, offset int) ([]*groupDatamodel.Group, error) {
	var groups []*groupDatamodel.Group
	err := r.db.
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *GroupRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&groupDatamodel.Group{}).Count(&count).Error
	return count, err
}

func (r *GroupRepository) AddPictures(pics []*groupDatamodel.GroupPicture) error {
	if len(pics) == 0 {
		return nil
	}
	return r.db.Create(pics).Error
}

func (r *GroupRepository) ListPictures(groupID int64) ([]*groupDatamodel.GroupPicture, error) {
	var pics []*groupDatamodel.GroupPicture
	err := r.db.
		Where("group_id = ?", groupID).
		Order("id ASC").
		Find(&pics).Error
	if err != nil {
		return nil, err
	}
	return pics, nil
}
