package controller

import (
	"competency_backend/internal/model"
	"competency_backend/internal/service"
	"competency_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CriteriaGroupController struct {
	Service *service.CriteriaService
}

func NewCriteriaGroupController(s *service.CriteriaService) *CriteriaGroupController {
	return &CriteriaGroupController{Service: s}
}

// CriteriaGroupRequest 创建/更新标准组请求体
// swagger:model CriteriaGroupRequest
type CriteriaGroupRequest struct {
	Name            string `json:"name" binding:"required"`
	CourseID        string `json:"courseId"`
	ParentID        *uint  `json:"parentId"`
	CompetencyTagID uint   `json:"competencyTagId" binding:"required"`
	Ordering        uint   `json:"ordering"`
	LogicOperator   string `json:"logicOperator"`
}

// ListGroups godoc
// @Summary 获取评估标准组列表
// @Tags 评估标准
// @Produce json
// @Security ApiKeyAuth
// @Param parent query int false "父组ID"
// @Success 200 {object} util.Response{data=[]model.CriteriaGroup}
// @Router /api/criteria-groups [get]
func (c *CriteriaGroupController) ListGroups(ctx *gin.Context) {
	var parentID *uint
	if parentStr := ctx.Query("parent"); parentStr != "" {
		id, err := strconv.Atoi(parentStr)
		if err != nil {
			util.BadRequest(ctx, "invalid parent id")
			return
		}
		p := uint(id)
		parentID = &p
	}

	groups, err := c.Service.ListGroups(parentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, groups)
}

// GetGroup godoc
// @Summary 获取单个评估标准组
// @Tags 评估标准
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "标准组ID"
// @Success 200 {object} util.Response{data=model.CriteriaGroup}
// @Failure 404 {object} util.Response
// @Router /api/criteria-groups/{id} [get]
func (c *CriteriaGroupController) GetGroup(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid group id")
		return
	}

	group, err := c.Service.GetGroup(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrGroupNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, group)
}

// CreateGroup godoc
// @Summary 创建评估标准组
// @Tags 评估标准
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CriteriaGroupRequest true "标准组信息"
// @Success 201 {object} util.Response{data=model.CriteriaGroup}
// @Failure 400 {object} util.Response
// @Router /api/criteria-groups [post]
func (c *CriteriaGroupController) CreateGroup(ctx *gin.Context) {
	var req CriteriaGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	group := &model.CriteriaGroup{
		Name:            req.Name,
		CourseID:        req.CourseID,
		ParentID:        req.ParentID,
		CompetencyTagID: req.CompetencyTagID,
		Ordering:        req.Ordering,
		LogicOperator:   model.GroupLogicOperator(req.LogicOperator),
	}

	if err := c.Service.CreateGroup(group); err != nil {
		respondCriteriaError(ctx, err)
		return
	}
	util.Created(ctx, group)
}

// UpdateGroup godoc
// @Summary 更新评估标准组
// @Tags 评估标准
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "标准组ID"
// @Param body body CriteriaGroupRequest true "标准组信息"
// @Success 200 {object} util.Response{data=model.CriteriaGroup}
// @Failure 404 {object} util.Response
// @Router /api/criteria-groups/{id} [put]
func (c *CriteriaGroupController) UpdateGroup(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid group id")
		return
	}

	var req CriteriaGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	group := &model.CriteriaGroup{
		Name:            req.Name,
		CourseID:        req.CourseID,
		ParentID:        req.ParentID,
		CompetencyTagID: req.CompetencyTagID,
		Ordering:        req.Ordering,
		LogicOperator:   model.GroupLogicOperator(req.LogicOperator),
	}
	group.ID = uint(id)

	if err := c.Service.UpdateGroup(group); err != nil {
		respondCriteriaError(ctx, err)
		return
	}
	util.Success(ctx, group)
}

// DeleteGroup godoc
// @Summary 删除评估标准组
// @Tags 评估标准
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "标准组ID"
// @Success 204 "删除成功"
// @Failure 404 {object} util.Response
// @Router /api/criteria-groups/{id} [delete]
func (c *CriteriaGroupController) DeleteGroup(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid group id")
		return
	}

	if err := c.Service.DeleteGroup(uint(id)); err != nil {
		respondCriteriaError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// 校验类错误转400/404，其余按内部错误处理
func respondCriteriaError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrGroupNotFound),
		errors.Is(err, util.ErrCriterionNotFound),
		errors.Is(err, util.ErrTagNotFound),
		errors.Is(err, util.ErrObjectTagNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrBlankName),
		errors.Is(err, util.ErrInvalidLogicOperator),
		errors.Is(err, util.ErrInvalidRuleType),
		errors.Is(err, util.ErrInvalidRetakeRule):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
