package service

import (
	"competency_backend/internal/model"
	"competency_backend/pkg/logger"
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const gradeEventChannel = "grade_events"

// GradeEventSubscriber 订阅事件总线（Redis）上的成绩变更事件
// 单协程顺序消费，一条事件处理完成后才取下一条
type GradeEventSubscriber struct {
	Redis   *redis.Client
	Service *GradeEventService
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewGradeEventSubscriber(rdb *redis.Client, svc *GradeEventService) *GradeEventSubscriber {
	ctx, cancel := context.WithCancel(context.Background())
	return &GradeEventSubscriber{
		Redis:   rdb,
		Service: svc,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (s *GradeEventSubscriber) Run() {
	pubsub := s.Redis.Subscribe(s.ctx, gradeEventChannel)
	defer pubsub.Close()

	logger.Log.Info("grade event subscriber started", zap.String("channel", gradeEventChannel))

	ch := pubsub.Channel()
	for {
		select {
		case <-s.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event model.GradeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Log.Error("grade event unmarshal error", zap.Error(err))
				continue
			}
			if err := s.Service.HandleGradeEvent(s.ctx, &event); err != nil {
				// 持久化失败：事件总线层面无重投机制，记错误留给下次成绩变更自愈
				logger.Log.Error("grade event handling failed",
					zap.Uint("userId", event.UserID),
					zap.String("usageKey", event.UsageKey),
					zap.Error(err),
				)
			}
		}
	}
}

func (s *GradeEventSubscriber) Stop() {
	s.cancel()
}
