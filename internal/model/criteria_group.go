package model

type GroupLogicOperator string

const (
	LogicAnd GroupLogicOperator = "AND"
	LogicOr  GroupLogicOperator = "OR"
)

// CriteriaGroup 评估标准组：若干条标准按 AND/OR 汇聚成一个能力状态
// 允许嵌套（父组），但状态汇聚只针对直接子标准，不向祖先组传播
type CriteriaGroup struct {
	BaseModel
	Name            string             `gorm:"size:255;not null" json:"name"`
	CourseID        string             `gorm:"size:255;index" json:"courseId"`
	ParentID        *uint              `gorm:"index" json:"parentId"`
	CompetencyTagID uint               `gorm:"index;not null" json:"competencyTagId"`
	CompetencyTag   Tag                `gorm:"foreignKey:CompetencyTagID" json:"competencyTag,omitempty"`
	Ordering        uint               `gorm:"default:0" json:"ordering"`
	LogicOperator   GroupLogicOperator `gorm:"size:3;not null;default:'AND'" json:"logicOperator"`
}

func (CriteriaGroup) TableName() string {
	return "criteria_groups"
}

// NormalizedOperator 保证读到的运算符总是 AND/OR 之一（历史数据可能为空）
func (g *CriteriaGroup) NormalizedOperator() GroupLogicOperator {
	if g.LogicOperator == LogicOr {
		return LogicOr
	}
	return LogicAnd
}
