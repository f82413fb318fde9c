package service

import (
	"competency_backend/internal/model"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	users map[uint]*model.User
}

func (f *fakeUserStore) FindByID(id uint) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeObjectTagStore struct {
	tags map[string][]model.ObjectTag
}

func (f *fakeObjectTagStore) FindObjectTags(objectID string) ([]model.ObjectTag, error) {
	return f.tags[objectID], nil
}

type fakeCriteriaStore struct {
	criteria []model.Criterion
}

func (f *fakeCriteriaStore) FindForObjectTags(objectTagIDs []uint, courseID string) ([]model.Criterion, error) {
	return f.criteria, nil
}

type statusWrite struct {
	kind   string
	id     uint
	userID uint
	status model.StudentStatus
}

type fakeStatusStore struct {
	criterionStatuses map[string]model.StudentStatus
	writes            []statusWrite
	failOnCriterion   bool
}

func statusKey(id, userID uint) string {
	return fmt.Sprintf("%d/%d", id, userID)
}

func (f *fakeStatusStore) UpsertCriterionStatus(criterionID, userID uint, status model.StudentStatus, ts time.Time) error {
	if f.failOnCriterion {
		return errors.New("database gone")
	}
	if f.criterionStatuses == nil {
		f.criterionStatuses = make(map[string]model.StudentStatus)
	}
	f.criterionStatuses[statusKey(criterionID, userID)] = status
	f.writes = append(f.writes, statusWrite{kind: "criterion", id: criterionID, userID: userID, status: status})
	return nil
}

func (f *fakeStatusStore) UpsertCompetencyStatus(competencyTagID, userID uint, status model.StudentStatus, ts time.Time) error {
	f.writes = append(f.writes, statusWrite{kind: "competency", id: competencyTagID, userID: userID, status: status})
	return nil
}

func (f *fakeStatusStore) StatusesForGroup(groupID, userID uint) ([]model.StudentStatus, error) {
	var statuses []model.StudentStatus
	for _, w := range f.writes {
		if w.kind == "criterion" && w.userID == userID {
			statuses = append(statuses, w.status)
		}
	}
	return statuses, nil
}

func testCriterion(id, groupID, competencyTagID uint, rule string) model.Criterion {
	c := model.Criterion{
		GroupID:         groupID,
		ObjectTagID:     1,
		CompetencyTagID: competencyTagID,
		RuleType:        model.RuleTypeGrade,
		Rule:            rule,
		RetakeRule:      model.RetakeHighest,
	}
	c.ID = id
	c.Group = model.CriteriaGroup{
		Name:            "Group",
		CompetencyTagID: competencyTagID,
		LogicOperator:   model.LogicAnd,
	}
	c.Group.ID = groupID
	return c
}

func newTestSubject(criteria ...model.Criterion) (*GradeEventService, *fakeStatusStore) {
	student := &model.User{Name: "Student", Email: "s@example.com"}
	student.ID = 1

	taggedUnit := model.ObjectTag{ObjectID: "p1", TagID: 1}
	taggedUnit.ID = 1

	statuses := &fakeStatusStore{}
	svc := NewGradeEventService(
		&fakeUserStore{users: map[uint]*model.User{1: student}},
		&fakeObjectTagStore{tags: map[string][]model.ObjectTag{
			"block-v1:Acme+CS101+2026+type@problem+block@p1": {taggedUnit},
		}},
		&fakeCriteriaStore{criteria: criteria},
		statuses,
	)
	return svc, statuses
}

func TestHandleGradeEventWritesStatuses(t *testing.T) {
	svc, statuses := newTestSubject(
		testCriterion(10, 100, 7, `{"op":"gte","value":80,"scale":"percent"}`),
	)

	event := gradeEvent(85, 100, true)
	require.NoError(t, svc.HandleGradeEvent(context.Background(), event))

	require.Len(t, statuses.writes, 2)
	assert.Equal(t, statusWrite{kind: "criterion", id: 10, userID: 1, status: model.StatusDemonstrated}, statuses.writes[0])
	assert.Equal(t, statusWrite{kind: "competency", id: 7, userID: 1, status: model.StatusDemonstrated}, statuses.writes[1])
}

func TestHandleGradeEventFailingGrade(t *testing.T) {
	svc, statuses := newTestSubject(
		testCriterion(10, 100, 7, `{"op":"gte","value":80,"scale":"percent"}`),
	)

	event := gradeEvent(60, 100, true)
	require.NoError(t, svc.HandleGradeEvent(context.Background(), event))

	require.Len(t, statuses.writes, 2)
	assert.Equal(t, model.StatusAttemptedNotDemonstrated, statuses.writes[0].status)
	assert.Equal(t, model.StatusAttemptedNotDemonstrated, statuses.writes[1].status)
}

func TestHandleGradeEventUnknownUserSkips(t *testing.T) {
	svc, statuses := newTestSubject(
		testCriterion(10, 100, 7, `{"op":"gte","value":80,"scale":"percent"}`),
	)

	event := gradeEvent(85, 100, true)
	event.UserID = 999
	require.NoError(t, svc.HandleGradeEvent(context.Background(), event))
	assert.Empty(t, statuses.writes)
}

func TestHandleGradeEventUntaggedUnitSkips(t *testing.T) {
	svc, statuses := newTestSubject(
		testCriterion(10, 100, 7, `{"op":"gte","value":80,"scale":"percent"}`),
	)

	event := gradeEvent(85, 100, true)
	event.UsageKey = "block-v1:Acme+CS101+2026+type@problem+block@untagged"
	require.NoError(t, svc.HandleGradeEvent(context.Background(), event))
	assert.Empty(t, statuses.writes)
}

func TestHandleGradeEventSkipsNonGradeCriteria(t *testing.T) {
	mastery := testCriterion(11, 100, 7, `{"level":3}`)
	mastery.RuleType = model.RuleTypeMasteryLevel

	svc, statuses := newTestSubject(
		mastery,
		testCriterion(10, 100, 7, `{"op":"gte","value":80,"scale":"percent"}`),
	)

	event := gradeEvent(85, 100, true)
	require.NoError(t, svc.HandleGradeEvent(context.Background(), event))

	// 只有 Grade 标准落库，组状态只基于它
	require.Len(t, statuses.writes, 2)
	assert.Equal(t, uint(10), statuses.writes[0].id)
}

func TestHandleGradeEventSkipsBrokenRulePayload(t *testing.T) {
	svc, statuses := newTestSubject(
		testCriterion(10, 100, 7, `not json at all`),
	)

	event := gradeEvent(85, 100, true)
	require.NoError(t, svc.HandleGradeEvent(context.Background(), event))
	assert.Empty(t, statuses.writes)
}

func TestHandleGradeEventPropagatesWriteFailure(t *testing.T) {
	svc, statuses := newTestSubject(
		testCriterion(10, 100, 7, `{"op":"gte","value":80,"scale":"percent"}`),
	)
	statuses.failOnCriterion = true

	event := gradeEvent(85, 100, true)
	assert.Error(t, svc.HandleGradeEvent(context.Background(), event))
}

func TestHandleGradeEventRedeliveryIsIdempotent(t *testing.T) {
	svc, statuses := newTestSubject(
		testCriterion(10, 100, 7, `{"op":"gte","value":80,"scale":"percent"}`),
	)

	event := gradeEvent(85, 100, true)
	require.NoError(t, svc.HandleGradeEvent(context.Background(), event))
	require.NoError(t, svc.HandleGradeEvent(context.Background(), event))

	assert.Equal(t, model.StatusDemonstrated, statuses.criterionStatuses[statusKey(10, 1)])
	// 重投只覆盖同一条记录，不会产生新的状态值
	for _, w := range statuses.writes {
		assert.Equal(t, model.StatusDemonstrated, w.status)
	}
}
