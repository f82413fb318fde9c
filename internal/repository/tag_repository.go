package repository

import (
	"competency_backend/internal/model"

	"gorm.io/gorm"
)

type TagRepository struct {
	DB *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{DB: db}
}

func (r *TagRepository) FindAll() ([]model.Tag, error) {
	var tags []model.Tag
	err := r.DB.Order("taxonomy_name asc, value asc").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) FindByID(id uint) (*model.Tag, error) {
	var tag model.Tag
	err := r.DB.First(&tag, id).Error
	return &tag, err
}

func (r *TagRepository) FindByIDs(ids []uint) ([]model.Tag, error) {
	var tags []model.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *TagRepository) Create(tag *model.Tag) error {
	return r.DB.Create(tag).Error
}

func (r *TagRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Tag{}, id).Error
}

// FindObjectTags 按学习单元标识查其全部标签关联
func (r *TagRepository) FindObjectTags(objectID string) ([]model.ObjectTag, error) {
	var objectTags []model.ObjectTag
	err := r.DB.Preload("Tag").Where("object_id = ?", objectID).Find(&objectTags).Error
	return objectTags, err
}

func (r *TagRepository) FindAllObjectTags() ([]model.ObjectTag, error) {
	var objectTags []model.ObjectTag
	err := r.DB.Preload("Tag").Order("object_id asc").Find(&objectTags).Error
	return objectTags, err
}

func (r *TagRepository) FindObjectTagByID(id uint) (*model.ObjectTag, error) {
	var objectTag model.ObjectTag
	err := r.DB.Preload("Tag").First(&objectTag, id).Error
	return &objectTag, err
}

func (r *TagRepository) CreateObjectTag(objectTag *model.ObjectTag) error {
	return r.DB.Create(objectTag).Error
}

func (r *TagRepository) DeleteObjectTag(id uint) error {
	return r.DB.Delete(&model.ObjectTag{}, id).Error
}
