package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGradeRule(t *testing.T) {
	c := Criterion{Rule: `{"op":"gte","value":80,"scale":"percent"}`}

	payload, err := c.ParseGradeRule()
	require.NoError(t, err)
	assert.Equal(t, OpGte, payload.Op)
	assert.Equal(t, ScalePercent, payload.Scale)
	require.NotNil(t, payload.Value)
	v, err := payload.Value.Float64()
	require.NoError(t, err)
	assert.Equal(t, 80.0, v)
}

func TestParseGradeRuleFractionValue(t *testing.T) {
	c := Criterion{Rule: `{"op":"gt","value":0.8,"scale":"fraction"}`}

	payload, err := c.ParseGradeRule()
	require.NoError(t, err)
	assert.Equal(t, OpGt, payload.Op)
	v, err := payload.Value.Float64()
	require.NoError(t, err)
	assert.Equal(t, 0.8, v)
}

func TestParseGradeRuleMalformed(t *testing.T) {
	c := Criterion{Rule: "definitely not json"}

	_, err := c.ParseGradeRule()
	assert.Error(t, err)
}

func TestParseGradeRuleMissingFields(t *testing.T) {
	c := Criterion{Rule: `{}`}

	payload, err := c.ParseGradeRule()
	require.NoError(t, err)
	assert.Empty(t, payload.Op)
	assert.Nil(t, payload.Value)
}

func TestNormalizedOperator(t *testing.T) {
	assert.Equal(t, LogicOr, (&CriteriaGroup{LogicOperator: LogicOr}).NormalizedOperator())
	assert.Equal(t, LogicAnd, (&CriteriaGroup{LogicOperator: LogicAnd}).NormalizedOperator())
	// 历史数据里运算符可能为空或非法，一律按 AND 处理
	assert.Equal(t, LogicAnd, (&CriteriaGroup{}).NormalizedOperator())
	assert.Equal(t, LogicAnd, (&CriteriaGroup{LogicOperator: "XOR"}).NormalizedOperator())
}

func TestGradeEventPercent(t *testing.T) {
	ts := time.Now()

	p, ok := (&GradeEvent{EarnedGraded: 85, PossibleGraded: 100, FirstAttempted: &ts}).Percent()
	require.True(t, ok)
	assert.Equal(t, 85.0, p)

	p, ok = (&GradeEvent{EarnedGraded: 3, PossibleGraded: 4}).Percent()
	require.True(t, ok)
	assert.Equal(t, 75.0, p)

	_, ok = (&GradeEvent{EarnedGraded: 5, PossibleGraded: 0}).Percent()
	assert.False(t, ok)
}
