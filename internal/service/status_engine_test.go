package service

import (
	"competency_backend/internal/model"
	"competency_backend/pkg/logger"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func num(s string) *json.Number {
	n := json.Number(s)
	return &n
}

func pct(v float64) *float64 {
	return &v
}

func TestEvaluateGradeRule(t *testing.T) {
	tests := []struct {
		name    string
		payload model.GradeRulePayload
		percent *float64
		want    RuleOutcome
	}{
		{"gte passes at threshold", model.GradeRulePayload{Op: model.OpGte, Value: num("80"), Scale: model.ScalePercent}, pct(80), RulePassed},
		{"gte passes above threshold", model.GradeRulePayload{Op: model.OpGte, Value: num("80"), Scale: model.ScalePercent}, pct(85), RulePassed},
		{"gte fails below threshold", model.GradeRulePayload{Op: model.OpGte, Value: num("80"), Scale: model.ScalePercent}, pct(60), RuleFailed},
		{"gt fails at threshold", model.GradeRulePayload{Op: model.OpGt, Value: num("80"), Scale: model.ScalePercent}, pct(80), RuleFailed},
		{"lt passes below", model.GradeRulePayload{Op: model.OpLt, Value: num("50"), Scale: model.ScalePercent}, pct(40), RulePassed},
		{"lte passes at threshold", model.GradeRulePayload{Op: model.OpLte, Value: num("50"), Scale: model.ScalePercent}, pct(50), RulePassed},
		{"eq passes on exact match", model.GradeRulePayload{Op: model.OpEq, Value: num("100"), Scale: model.ScalePercent}, pct(100), RulePassed},
		{"eq fails otherwise", model.GradeRulePayload{Op: model.OpEq, Value: num("100"), Scale: model.ScalePercent}, pct(99), RuleFailed},
		{"empty scale treated as percent", model.GradeRulePayload{Op: model.OpGte, Value: num("80")}, pct(85), RulePassed},
		{"fraction scale multiplies threshold", model.GradeRulePayload{Op: model.OpGte, Value: num("0.8"), Scale: model.ScaleFraction}, pct(85), RulePassed},
		{"fraction scale fails below", model.GradeRulePayload{Op: model.OpGte, Value: num("0.8"), Scale: model.ScaleFraction}, pct(60), RuleFailed},
		{"nil percent is unknown", model.GradeRulePayload{Op: model.OpGte, Value: num("80"), Scale: model.ScalePercent}, nil, RuleUnknown},
		{"unsupported op is unknown", model.GradeRulePayload{Op: "between", Value: num("80"), Scale: model.ScalePercent}, pct(85), RuleUnknown},
		{"missing value is unknown", model.GradeRulePayload{Op: model.OpGte, Scale: model.ScalePercent}, pct(85), RuleUnknown},
		{"non numeric value is unknown", model.GradeRulePayload{Op: model.OpGte, Value: num("eighty"), Scale: model.ScalePercent}, pct(85), RuleUnknown},
		{"unsupported scale is unknown", model.GradeRulePayload{Op: model.OpGte, Value: num("80"), Scale: "points"}, pct(85), RuleUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateGradeRule(tt.payload, tt.percent))
		})
	}
}

func TestEvaluateGradeRuleFractionEquivalence(t *testing.T) {
	// 0.8 fraction 与 80 percent 对同一成绩必须给出相同结论
	fraction := model.GradeRulePayload{Op: model.OpGte, Value: num("0.8"), Scale: model.ScaleFraction}
	percent := model.GradeRulePayload{Op: model.OpGte, Value: num("80"), Scale: model.ScalePercent}

	for _, p := range []float64{0, 60, 79.9, 80, 85, 100} {
		assert.Equal(t, EvaluateGradeRule(percent, pct(p)), EvaluateGradeRule(fraction, pct(p)), "percent=%v", p)
	}
}

func gradeEvent(earned, possible float64, attempted bool) *model.GradeEvent {
	event := &model.GradeEvent{
		UserID:         1,
		CourseID:       "course-v1:Acme+CS101+2026",
		UsageKey:       "block-v1:Acme+CS101+2026+type@problem+block@p1",
		EarnedGraded:   earned,
		PossibleGraded: possible,
	}
	if attempted {
		ts := time.Now()
		event.FirstAttempted = &ts
	}
	return event
}

func TestDeriveCriterionStatus(t *testing.T) {
	rule := model.GradeRulePayload{Op: model.OpGte, Value: num("80"), Scale: model.ScalePercent}

	t.Run("never attempted wins over everything", func(t *testing.T) {
		event := gradeEvent(100, 100, false)
		assert.Equal(t, model.StatusNotAttempted, DeriveCriterionStatus(event, rule))
	})

	t.Run("passing grade is demonstrated", func(t *testing.T) {
		event := gradeEvent(85, 100, true)
		assert.Equal(t, model.StatusDemonstrated, DeriveCriterionStatus(event, rule))
	})

	t.Run("failing grade is attempted", func(t *testing.T) {
		event := gradeEvent(60, 100, true)
		assert.Equal(t, model.StatusAttemptedNotDemonstrated, DeriveCriterionStatus(event, rule))
	})

	t.Run("zero possible means undefined percent", func(t *testing.T) {
		event := gradeEvent(0, 0, true)
		assert.Equal(t, model.StatusAttemptedNotDemonstrated, DeriveCriterionStatus(event, rule))
	})

	t.Run("broken rule degrades to attempted", func(t *testing.T) {
		event := gradeEvent(85, 100, true)
		broken := model.GradeRulePayload{Op: "between", Value: num("80")}
		assert.Equal(t, model.StatusAttemptedNotDemonstrated, DeriveCriterionStatus(event, broken))
	})

	t.Run("idempotent for same snapshot", func(t *testing.T) {
		event := gradeEvent(85, 100, true)
		first := DeriveCriterionStatus(event, rule)
		assert.Equal(t, first, DeriveCriterionStatus(event, rule))
	})
}

func TestAggregateGroupStatus(t *testing.T) {
	d := model.StatusDemonstrated
	a := model.StatusAttemptedNotDemonstrated
	n := model.StatusNotAttempted

	tests := []struct {
		name     string
		statuses []model.StudentStatus
		op       model.GroupLogicOperator
		want     model.StudentStatus
	}{
		{"empty group", nil, model.LogicAnd, n},
		{"empty group or", nil, model.LogicOr, n},
		{"and all demonstrated", []model.StudentStatus{d, d, d}, model.LogicAnd, d},
		{"and one missing", []model.StudentStatus{d, d, a}, model.LogicAnd, a},
		{"and demonstrated with untouched", []model.StudentStatus{d, n}, model.LogicAnd, n},
		{"and all untouched", []model.StudentStatus{n, n}, model.LogicAnd, n},
		{"or single demonstrated", []model.StudentStatus{n, a, d}, model.LogicOr, d},
		{"or only attempts", []model.StudentStatus{n, a}, model.LogicOr, a},
		{"or all untouched", []model.StudentStatus{n, n}, model.LogicOr, n},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateGroupStatus(tt.statuses, tt.op))
		})
	}
}

func TestAggregateGroupStatusOrderIndependent(t *testing.T) {
	d := model.StatusDemonstrated
	a := model.StatusAttemptedNotDemonstrated
	n := model.StatusNotAttempted

	forward := []model.StudentStatus{d, a, n}
	reversed := []model.StudentStatus{n, a, d}

	assert.Equal(t, AggregateGroupStatus(forward, model.LogicAnd), AggregateGroupStatus(reversed, model.LogicAnd))
	assert.Equal(t, AggregateGroupStatus(forward, model.LogicOr), AggregateGroupStatus(reversed, model.LogicOr))
}
