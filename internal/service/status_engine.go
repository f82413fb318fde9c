package service

import (
	"competency_backend/internal/model"
	"competency_backend/pkg/logger"

	"go.uber.org/zap"
)

// RuleOutcome 规则求值结果三态：通过/未通过/无法判定
type RuleOutcome int

const (
	RuleUnknown RuleOutcome = iota
	RuleFailed
	RulePassed
)

// EvaluateGradeRule 对成绩百分比求值单条规则
// percent 为 nil（尚无有效成绩）、运算符/刻度不支持、阈值缺失或非数值时返回 RuleUnknown，
// 这些都是配置性问题，只记日志不报错
func EvaluateGradeRule(payload model.GradeRulePayload, percent *float64) RuleOutcome {
	if percent == nil {
		return RuleUnknown
	}

	switch payload.Op {
	case model.OpGt, model.OpGte, model.OpLt, model.OpLte, model.OpEq:
	default:
		logger.Log.Warn("unsupported grade rule op", zap.String("op", string(payload.Op)))
		return RuleUnknown
	}

	if payload.Value == nil {
		logger.Log.Warn("missing grade rule value")
		return RuleUnknown
	}
	expected, err := payload.Value.Float64()
	if err != nil {
		logger.Log.Warn("invalid grade rule value", zap.String("value", payload.Value.String()))
		return RuleUnknown
	}

	switch payload.Scale {
	case model.ScalePercent, "":
		// 百分比刻度直接比较
	case model.ScaleFraction:
		expected *= 100.0
	default:
		logger.Log.Warn("unsupported grade rule scale", zap.String("scale", string(payload.Scale)))
		return RuleUnknown
	}

	actual := *percent
	var passed bool
	switch payload.Op {
	case model.OpGt:
		passed = actual > expected
	case model.OpGte:
		passed = actual >= expected
	case model.OpLt:
		passed = actual < expected
	case model.OpLte:
		passed = actual <= expected
	case model.OpEq:
		passed = actual == expected
	}
	if passed {
		return RulePassed
	}
	return RuleFailed
}

// DeriveCriterionStatus 由成绩快照和规则推导单条标准的学生状态
// 从未作答优先于一切规则求值；求值 unknown 与未通过同样记为"已尝试未达成"
func DeriveCriterionStatus(event *model.GradeEvent, payload model.GradeRulePayload) model.StudentStatus {
	if event.FirstAttempted == nil {
		return model.StatusNotAttempted
	}
	var percent *float64
	if p, ok := event.Percent(); ok {
		percent = &p
	}
	if EvaluateGradeRule(payload, percent) == RulePassed {
		return model.StatusDemonstrated
	}
	return model.StatusAttemptedNotDemonstrated
}

// AggregateGroupStatus 将组内各标准状态按逻辑运算符汇聚为组状态
// 输入为空返回 not_attempted；结果与子状态顺序无关
func AggregateGroupStatus(statuses []model.StudentStatus, op model.GroupLogicOperator) model.StudentStatus {
	if len(statuses) == 0 {
		return model.StatusNotAttempted
	}

	if op == model.LogicOr {
		for _, s := range statuses {
			if s == model.StatusDemonstrated {
				return model.StatusDemonstrated
			}
		}
		for _, s := range statuses {
			if s == model.StatusAttemptedNotDemonstrated {
				return model.StatusAttemptedNotDemonstrated
			}
		}
		return model.StatusNotAttempted
	}

	// AND（默认）：全部达成才算达成
	all := true
	for _, s := range statuses {
		if s != model.StatusDemonstrated {
			all = false
			break
		}
	}
	if all {
		return model.StatusDemonstrated
	}
	for _, s := range statuses {
		if s == model.StatusAttemptedNotDemonstrated {
			return model.StatusAttemptedNotDemonstrated
		}
	}
	return model.StatusNotAttempted
}
