package model

import "encoding/json"

type RuleType string

const (
	RuleTypeGrade        RuleType = "Grade"
	RuleTypeMasteryLevel RuleType = "MasteryLevel"
)

type RetakeRule string

const (
	RetakeSimpleAverage   RetakeRule = "SimpleAverage"
	RetakeWeightedAverage RetakeRule = "WeightedAverage"
	RetakeDecayingAverage RetakeRule = "DecayingAverage"
	RetakeMostRecent      RetakeRule = "MostRecent"
	RetakeHighest         RetakeRule = "Highest"
)

// RuleOperator 规则比较运算符，封闭集合，未知运算符在求值时按 unknown 处理
type RuleOperator string

const (
	OpGt  RuleOperator = "gt"
	OpGte RuleOperator = "gte"
	OpLt  RuleOperator = "lt"
	OpLte RuleOperator = "lte"
	OpEq  RuleOperator = "eq"
)

// RuleScale 阈值刻度：percent 直接比较，fraction 先乘100
type RuleScale string

const (
	ScalePercent  RuleScale = "percent"
	ScaleFraction RuleScale = "fraction"
)

// GradeRulePayload 成绩规则载荷，存储为 criteria.rule 列中的JSON
// 例：{"op":"gte","value":80,"scale":"percent"}
type GradeRulePayload struct {
	Op    RuleOperator `json:"op"`
	Value *json.Number `json:"value"`
	Scale RuleScale    `json:"scale"`
}

// Criterion 单条评估标准：一个学习单元（object_tag）上的通过/不通过规则
type Criterion struct {
	BaseModel
	CourseID        string     `gorm:"size:255;index" json:"courseId"`
	GroupID         uint       `gorm:"index;not null" json:"groupId"`
	Group           CriteriaGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	ObjectTagID     uint       `gorm:"index;not null" json:"objectTagId"`
	ObjectTag       ObjectTag  `gorm:"foreignKey:ObjectTagID" json:"objectTag,omitempty"`
	CompetencyTagID uint       `gorm:"index;not null" json:"competencyTagId"`
	CompetencyTag   Tag        `gorm:"foreignKey:CompetencyTagID" json:"competencyTag,omitempty"`
	RuleType        RuleType   `gorm:"size:20;not null" json:"ruleType"`
	Rule            string     `gorm:"size:255;not null" json:"rule"`
	RetakeRule      RetakeRule `gorm:"size:20;not null" json:"retakeRule"`
}

func (Criterion) TableName() string {
	return "assessment_criteria"
}

// ParseGradeRule 解析 rule 列中的JSON载荷，格式错误由调用方按配置错误处理
func (c *Criterion) ParseGradeRule() (GradeRulePayload, error) {
	var payload GradeRulePayload
	err := json.Unmarshal([]byte(c.Rule), &payload)
	return payload, err
}
