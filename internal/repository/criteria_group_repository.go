package repository

import (
	"competency_backend/internal/model"

	"gorm.io/gorm"
)

type CriteriaGroupRepository struct {
	DB *gorm.DB
}

func NewCriteriaGroupRepository(db *gorm.DB) *CriteriaGroupRepository {
	return &CriteriaGroupRepository{DB: db}
}

func (r *CriteriaGroupRepository) FindAll(parentID *uint) ([]model.CriteriaGroup, error) {
	var groups []model.CriteriaGroup
	q := r.DB.Preload("CompetencyTag").Order("ordering asc, id asc")
	if parentID != nil {
		q = q.Where("parent_id = ?", *parentID)
	}
	err := q.Find(&groups).Error
	return groups, err
}

func (r *CriteriaGroupRepository) FindByID(id uint) (*model.CriteriaGroup, error) {
	var group model.CriteriaGroup
	err := r.DB.Preload("CompetencyTag").First(&group, id).Error
	return &group, err
}

func (r *CriteriaGroupRepository) Create(group *model.CriteriaGroup) error {
	return r.DB.Create(group).Error
}

func (r *CriteriaGroupRepository) Update(group *model.CriteriaGroup) error {
	return r.DB.Save(group).Error
}

func (r *CriteriaGroupRepository) Delete(id uint) error {
	return r.DB.Delete(&model.CriteriaGroup{}, id).Error
}
