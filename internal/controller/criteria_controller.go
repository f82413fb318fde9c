package controller

import (
	"competency_backend/internal/model"
	"competency_backend/internal/service"
	"competency_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CriteriaController struct {
	Service *service.CriteriaService
}

func NewCriteriaController(s *service.CriteriaService) *CriteriaController {
	return &CriteriaController{Service: s}
}

// CriterionRequest 创建/更新评估标准请求体
// swagger:model CriterionRequest
type CriterionRequest struct {
	CourseID        string `json:"courseId"`
	GroupID         uint   `json:"groupId" binding:"required"`
	ObjectTagID     uint   `json:"objectTagId" binding:"required"`
	CompetencyTagID uint   `json:"competencyTagId" binding:"required"`
	RuleType        string `json:"ruleType" binding:"required"`
	Rule            string `json:"rule" binding:"required"`
	RetakeRule      string `json:"retakeRule" binding:"required"`
}

// ListCriteria godoc
// @Summary 获取评估标准列表
// @Tags 评估标准
// @Produce json
// @Security ApiKeyAuth
// @Param group query int false "标准组ID"
// @Success 200 {object} util.Response{data=[]model.Criterion}
// @Router /api/criteria [get]
func (c *CriteriaController) ListCriteria(ctx *gin.Context) {
	var groupID uint
	if groupStr := ctx.Query("group"); groupStr != "" {
		id, err := strconv.Atoi(groupStr)
		if err != nil {
			util.BadRequest(ctx, "invalid group id")
			return
		}
		groupID = uint(id)
	}

	criteria, err := c.Service.ListCriteria(groupID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, criteria)
}

// GetCriterion godoc
// @Summary 获取单条评估标准
// @Tags 评估标准
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "标准ID"
// @Success 200 {object} util.Response{data=model.Criterion}
// @Failure 404 {object} util.Response
// @Router /api/criteria/{id} [get]
func (c *CriteriaController) GetCriterion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid criterion id")
		return
	}

	criterion, err := c.Service.GetCriterion(uint(id))
	if err != nil {
		respondCriteriaError(ctx, err)
		return
	}
	util.Success(ctx, criterion)
}

// CreateCriterion godoc
// @Summary 创建评估标准
// @Tags 评估标准
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CriterionRequest true "标准信息"
// @Success 201 {object} util.Response{data=model.Criterion}
// @Failure 400 {object} util.Response
// @Router /api/criteria [post]
func (c *CriteriaController) CreateCriterion(ctx *gin.Context) {
	var req CriterionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	criterion := &model.Criterion{
		CourseID:        req.CourseID,
		GroupID:         req.GroupID,
		ObjectTagID:     req.ObjectTagID,
		CompetencyTagID: req.CompetencyTagID,
		RuleType:        model.RuleType(req.RuleType),
		Rule:            req.Rule,
		RetakeRule:      model.RetakeRule(req.RetakeRule),
	}

	if err := c.Service.CreateCriterion(criterion); err != nil {
		respondCriteriaError(ctx, err)
		return
	}
	util.Created(ctx, criterion)
}

// UpdateCriterion godoc
// @Summary 更新评估标准
// @Tags 评估标准
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "标准ID"
// @Param body body CriterionRequest true "标准信息"
// @Success 200 {object} util.Response{data=model.Criterion}
// @Failure 404 {object} util.Response
// @Router /api/criteria/{id} [put]
func (c *CriteriaController) UpdateCriterion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid criterion id")
		return
	}

	var req CriterionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	criterion := &model.Criterion{
		CourseID:        req.CourseID,
		GroupID:         req.GroupID,
		ObjectTagID:     req.ObjectTagID,
		CompetencyTagID: req.CompetencyTagID,
		RuleType:        model.RuleType(req.RuleType),
		Rule:            req.Rule,
		RetakeRule:      model.RetakeRule(req.RetakeRule),
	}
	criterion.ID = uint(id)

	if err := c.Service.UpdateCriterion(criterion); err != nil {
		respondCriteriaError(ctx, err)
		return
	}
	util.Success(ctx, criterion)
}

// DeleteCriterion godoc
// @Summary 删除评估标准
// @Tags 评估标准
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "标准ID"
// @Success 204 "删除成功"
// @Failure 404 {object} util.Response
// @Router /api/criteria/{id} [delete]
func (c *CriteriaController) DeleteCriterion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid criterion id")
		return
	}

	if err := c.Service.DeleteCriterion(uint(id)); err != nil {
		respondCriteriaError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
