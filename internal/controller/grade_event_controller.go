package controller

import (
	"competency_backend/internal/model"
	"competency_backend/internal/service"
	"competency_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradeEventController struct {
	Service *service.GradeEventService
}

func NewGradeEventController(s *service.GradeEventService) *GradeEventController {
	return &GradeEventController{Service: s}
}

// HandleGradeEvent godoc
// @Summary 接收成绩变更事件
// @Description 外部系统通过 Webhook 推送单条成绩变更，触发标准与能力状态的重新计算
// @Tags 成绩事件
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.GradeEvent true "成绩事件"
// @Success 202 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/events/grade [post]
func (c *GradeEventController) HandleGradeEvent(ctx *gin.Context) {
	var event model.GradeEvent
	if err := ctx.ShouldBindJSON(&event); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.HandleGradeEvent(ctx.Request.Context(), &event); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Accepted(ctx, nil)
}
