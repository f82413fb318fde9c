package model

import "time"

// GradeEvent 外部成绩变更事件的信封（事件总线/Webhook 共用）
// swagger:model GradeEvent
type GradeEvent struct {
	UserID         uint       `json:"userId" binding:"required"`
	CourseID       string     `json:"courseId" binding:"required"`
	UsageKey       string     `json:"usageKey" binding:"required"`
	EarnedGraded   float64    `json:"earnedGraded"`
	PossibleGraded float64    `json:"possibleGraded"`
	FirstAttempted *time.Time `json:"firstAttempted"`
}

// Percent 计算得分百分比；possible<=0 或从未作答时无定义，返回 ok=false
func (e *GradeEvent) Percent() (float64, bool) {
	if e.PossibleGraded > 0 {
		return e.EarnedGraded / e.PossibleGraded * 100.0, true
	}
	return 0, false
}
