package model

import "time"

// StudentStatus 学生进度三值状态，强度从弱到强：
// not_attempted < attempted_not_demonstrated < demonstrated
type StudentStatus string

const (
	StatusNotAttempted             StudentStatus = "not_attempted"
	StatusAttemptedNotDemonstrated StudentStatus = "attempted_not_demonstrated"
	StatusDemonstrated             StudentStatus = "demonstrated"
)

// StudentCriterionStatus 学生在单条评估标准上的状态，(criterion, user) 唯一，后写覆盖
type StudentCriterionStatus struct {
	UUIDBase
	CriterionID uint          `gorm:"not null;uniqueIndex:idx_criterion_user" json:"criterionId"`
	Criterion   Criterion     `gorm:"foreignKey:CriterionID" json:"criterion,omitempty"`
	UserID      uint          `gorm:"not null;uniqueIndex:idx_criterion_user" json:"userId"`
	Status      StudentStatus `gorm:"size:32;not null" json:"status"`
	Timestamp   time.Time     `gorm:"not null" json:"timestamp"`
}

func (StudentCriterionStatus) TableName() string {
	return "student_criterion_statuses"
}

// StudentCompetencyStatus 学生在某能力标签上的汇聚状态，(competency_tag, user) 唯一，后写覆盖
type StudentCompetencyStatus struct {
	UUIDBase
	CompetencyTagID uint          `gorm:"not null;uniqueIndex:idx_competency_user" json:"competencyTagId"`
	CompetencyTag   Tag           `gorm:"foreignKey:CompetencyTagID" json:"competencyTag,omitempty"`
	UserID          uint          `gorm:"not null;uniqueIndex:idx_competency_user" json:"userId"`
	Status          StudentStatus `gorm:"size:32;not null" json:"status"`
	Timestamp       time.Time     `gorm:"not null" json:"timestamp"`
}

func (StudentCompetencyStatus) TableName() string {
	return "student_competency_statuses"
}
