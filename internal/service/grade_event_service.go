package service

import (
	"competency_backend/internal/model"
	"competency_backend/pkg/logger"
	"competency_backend/pkg/monitoring"
	"competency_backend/pkg/tracing"
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 事件处理依赖的存储面，便于替换实现
type UserStore interface {
	FindByID(id uint) (*model.User, error)
}

type ObjectTagStore interface {
	FindObjectTags(objectID string) ([]model.ObjectTag, error)
}

type CriteriaStore interface {
	FindForObjectTags(objectTagIDs []uint, courseID string) ([]model.Criterion, error)
}

type StatusStore interface {
	UpsertCriterionStatus(criterionID, userID uint, status model.StudentStatus, ts time.Time) error
	UpsertCompetencyStatus(competencyTagID, userID uint, status model.StudentStatus, ts time.Time) error
	StatusesForGroup(groupID, userID uint) ([]model.StudentStatus, error)
}

type GradeEventService struct {
	Users    UserStore
	Tags     ObjectTagStore
	Criteria CriteriaStore
	Statuses StatusStore
}

func NewGradeEventService(users UserStore, tags ObjectTagStore, criteria CriteriaStore, statuses StatusStore) *GradeEventService {
	return &GradeEventService{
		Users:    users,
		Tags:     tags,
		Criteria: criteria,
		Statuses: statuses,
	}
}

// HandleGradeEvent 处理一次成绩变更事件：
// 解析适用标准 → 逐条推导状态并落库 → 对被触达的组重算汇聚状态
// 配置缺陷和缺依赖只记日志跳过；状态写入失败向上传播，由投递方决定重投
func (s *GradeEventService) HandleGradeEvent(ctx context.Context, event *model.GradeEvent) error {
	ctx, span := tracing.Tracer.Start(ctx, "grade_event.handle")
	defer span.End()

	percentField := zap.Skip()
	if p, ok := event.Percent(); ok {
		percentField = zap.Float64("percent", p)
	}
	logger.Log.Info("grade event received",
		zap.Uint("userId", event.UserID),
		zap.String("courseId", event.CourseID),
		zap.String("usageKey", event.UsageKey),
		zap.Float64("earned", event.EarnedGraded),
		zap.Float64("possible", event.PossibleGraded),
		percentField,
	)

	user, err := s.Users.FindByID(event.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.Log.Warn("user not found for grade event", zap.Uint("userId", event.UserID))
			monitoring.GradeEventCounter.WithLabelValues("skipped_no_user").Inc()
			return nil
		}
		return err
	}

	objectTags, err := s.Tags.FindObjectTags(event.UsageKey)
	if err != nil {
		return err
	}
	if len(objectTags) == 0 {
		logger.Log.Info("no object tags for usage key; skipping", zap.String("usageKey", event.UsageKey))
		monitoring.GradeEventCounter.WithLabelValues("skipped_no_tags").Inc()
		return nil
	}

	objectTagIDs := make([]uint, 0, len(objectTags))
	for _, ot := range objectTags {
		objectTagIDs = append(objectTagIDs, ot.ID)
	}

	criteria, err := s.Criteria.FindForObjectTags(objectTagIDs, event.CourseID)
	if err != nil {
		return err
	}
	if len(criteria) == 0 {
		logger.Log.Info("no assessment criteria for course; skipping", zap.String("courseId", event.CourseID))
		monitoring.GradeEventCounter.WithLabelValues("skipped_no_criteria").Inc()
		return nil
	}

	now := time.Now()
	touched := make(map[uint]model.CriteriaGroup)

	for _, criterion := range criteria {
		if criterion.RuleType != model.RuleTypeGrade {
			logger.Log.Info("skipping non-grade criterion",
				zap.Uint("criterionId", criterion.ID),
				zap.String("ruleType", string(criterion.RuleType)),
			)
			continue
		}
		payload, err := criterion.ParseGradeRule()
		if err != nil {
			logger.Log.Warn("invalid rule payload",
				zap.Uint("criterionId", criterion.ID),
				zap.Error(err),
			)
			continue
		}

		status := DeriveCriterionStatus(event, payload)
		logger.Log.Info("criterion status derived",
			zap.Uint("criterionId", criterion.ID),
			zap.String("rule", criterion.Rule),
			zap.String("status", string(status)),
		)

		if err := s.Statuses.UpsertCriterionStatus(criterion.ID, user.ID, status, now); err != nil {
			return err
		}
		monitoring.StatusWriteCounter.WithLabelValues("criterion").Inc()
		touched[criterion.GroupID] = criterion.Group
	}

	for groupID, group := range touched {
		statuses, err := s.Statuses.StatusesForGroup(groupID, user.ID)
		if err != nil {
			return err
		}
		groupStatus := AggregateGroupStatus(statuses, group.NormalizedOperator())
		logger.Log.Info("group status aggregated",
			zap.Uint("groupId", groupID),
			zap.String("logic", string(group.NormalizedOperator())),
			zap.String("status", string(groupStatus)),
		)
		if err := s.Statuses.UpsertCompetencyStatus(group.CompetencyTagID, user.ID, groupStatus, now); err != nil {
			return err
		}
		monitoring.StatusWriteCounter.WithLabelValues("competency").Inc()
	}

	monitoring.GradeEventCounter.WithLabelValues("processed").Inc()
	return nil
}
