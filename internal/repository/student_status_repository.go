package repository

import (
	"competency_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type StudentStatusRepository struct {
	DB *gorm.DB
}

func NewStudentStatusRepository(db *gorm.DB) *StudentStatusRepository {
	return &StudentStatusRepository{DB: db}
}

// UpsertCriterionStatus (criterion, user) 维度的后写覆盖
func (r *StudentStatusRepository) UpsertCriterionStatus(criterionID, userID uint, status model.StudentStatus, ts time.Time) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.StudentCriterionStatus
		err := tx.Where("criterion_id = ? AND user_id = ?", criterionID, userID).First(&existing).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			entry := &model.StudentCriterionStatus{
				CriterionID: criterionID,
				UserID:      userID,
				Status:      status,
				Timestamp:   ts,
			}
			return tx.Create(entry).Error
		}
		existing.Status = status
		existing.Timestamp = ts
		return tx.Save(&existing).Error
	})
}

// UpsertCompetencyStatus (competency_tag, user) 维度的后写覆盖
func (r *StudentStatusRepository) UpsertCompetencyStatus(competencyTagID, userID uint, status model.StudentStatus, ts time.Time) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.StudentCompetencyStatus
		err := tx.Where("competency_tag_id = ? AND user_id = ?", competencyTagID, userID).First(&existing).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			entry := &model.StudentCompetencyStatus{
				CompetencyTagID: competencyTagID,
				UserID:          userID,
				Status:          status,
				Timestamp:       ts,
			}
			return tx.Create(entry).Error
		}
		existing.Status = status
		existing.Timestamp = ts
		return tx.Save(&existing).Error
	})
}

// StatusesForGroup 读某用户在组内全部直接子标准上的当前状态（汇聚前必须读全量，不只本次事件触达的）
func (r *StudentStatusRepository) StatusesForGroup(groupID, userID uint) ([]model.StudentStatus, error) {
	var statuses []model.StudentStatus
	err := r.DB.Model(&model.StudentCriterionStatus{}).
		Joins("JOIN assessment_criteria ON assessment_criteria.id = student_criterion_statuses.criterion_id").
		Where("assessment_criteria.group_id = ? AND student_criterion_statuses.user_id = ?", groupID, userID).
		Where("assessment_criteria.deleted_at IS NULL").
		Pluck("student_criterion_statuses.status", &statuses).Error
	return statuses, err
}

func (r *StudentStatusRepository) ListCriterionStatuses(criterionID, userID uint) ([]model.StudentCriterionStatus, error) {
	var entries []model.StudentCriterionStatus
	q := r.DB.Order("timestamp desc, id asc")
	if criterionID != 0 {
		q = q.Where("criterion_id = ?", criterionID)
	}
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Find(&entries).Error
	return entries, err
}

func (r *StudentStatusRepository) ListCompetencyStatuses(competencyTagID, userID uint) ([]model.StudentCompetencyStatus, error) {
	var entries []model.StudentCompetencyStatus
	q := r.DB.Preload("CompetencyTag").Order("timestamp desc, id asc")
	if competencyTagID != 0 {
		q = q.Where("competency_tag_id = ?", competencyTagID)
	}
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Find(&entries).Error
	return entries, err
}
