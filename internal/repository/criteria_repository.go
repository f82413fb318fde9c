package repository

import (
	"competency_backend/internal/model"

	"gorm.io/gorm"
)

type CriteriaRepository struct {
	DB *gorm.DB
}

func NewCriteriaRepository(db *gorm.DB) *CriteriaRepository {
	return &CriteriaRepository{DB: db}
}

func (r *CriteriaRepository) FindAll(groupID uint) ([]model.Criterion, error) {
	var criteria []model.Criterion
	q := r.DB.Preload("CompetencyTag").Order("id asc")
	if groupID != 0 {
		q = q.Where("group_id = ?", groupID)
	}
	err := q.Find(&criteria).Error
	return criteria, err
}

func (r *CriteriaRepository) FindByID(id uint) (*model.Criterion, error) {
	var criterion model.Criterion
	err := r.DB.Preload("Group").Preload("CompetencyTag").Preload("ObjectTag").First(&criterion, id).Error
	return &criterion, err
}

// FindForObjectTags 查给定标签关联在课程范围内适用的标准：
// 无课程限制（course_id 为空）或与事件课程完全一致
func (r *CriteriaRepository) FindForObjectTags(objectTagIDs []uint, courseID string) ([]model.Criterion, error) {
	var criteria []model.Criterion
	if len(objectTagIDs) == 0 {
		return criteria, nil
	}
	err := r.DB.Preload("Group").Preload("CompetencyTag").
		Where("object_tag_id IN ?", objectTagIDs).
		Where("course_id = '' OR course_id = ?", courseID).
		Find(&criteria).Error
	return criteria, err
}

func (r *CriteriaRepository) Create(criterion *model.Criterion) error {
	return r.DB.Create(criterion).Error
}

func (r *CriteriaRepository) Update(criterion *model.Criterion) error {
	return r.DB.Save(criterion).Error
}

func (r *CriteriaRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Criterion{}, id).Error
}
