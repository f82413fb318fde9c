package controller

import (
	"competency_backend/internal/model"
	"competency_backend/internal/service"
	"competency_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TagController struct {
	Service *service.TaggingService
}

func NewTagController(s *service.TaggingService) *TagController {
	return &TagController{Service: s}
}

// TagRequest 创建标签请求体
type TagRequest struct {
	TaxonomyName string `json:"taxonomyName" binding:"required"`
	Value        string `json:"value" binding:"required"`
	ExternalID   string `json:"externalId"`
}

// ObjectTagRequest 给学习单元打标签请求体
type ObjectTagRequest struct {
	ObjectID string `json:"objectId" binding:"required"`
	TagID    uint   `json:"tagId" binding:"required"`
}

// ListTags godoc
// @Summary 获取标签列表
// @Tags 标签
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Tag}
// @Router /api/tags [get]
func (c *TagController) ListTags(ctx *gin.Context) {
	tags, err := c.Service.ListTags()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tags)
}

// GetTag godoc
// @Summary 获取单个标签
// @Tags 标签
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "标签ID"
// @Success 200 {object} util.Response{data=model.Tag}
// @Failure 404 {object} util.Response
// @Router /api/tags/{id} [get]
func (c *TagController) GetTag(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid tag id")
		return
	}

	tag, err := c.Service.GetTag(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrTagNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tag)
}

// CreateTag godoc
// @Summary 创建标签
// @Tags 标签
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body TagRequest true "标签信息"
// @Success 201 {object} util.Response{data=model.Tag}
// @Failure 400 {object} util.Response
// @Router /api/tags [post]
func (c *TagController) CreateTag(ctx *gin.Context) {
	var req TagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tag := &model.Tag{
		TaxonomyName: req.TaxonomyName,
		Value:        req.Value,
		ExternalID:   req.ExternalID,
	}
	if err := c.Service.CreateTag(tag); err != nil {
		if errors.Is(err, util.ErrBlankName) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, tag)
}

// DeleteTag godoc
// @Summary 删除标签
// @Tags 标签
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "标签ID"
// @Success 204 "删除成功"
// @Failure 404 {object} util.Response
// @Router /api/tags/{id} [delete]
func (c *TagController) DeleteTag(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid tag id")
		return
	}

	if err := c.Service.DeleteTag(uint(id)); err != nil {
		if errors.Is(err, util.ErrTagNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// ExportTags godoc
// @Summary 导出标签CSV
// @Tags 标签
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=map[string]string}
// @Router /api/tags/export [post]
func (c *TagController) ExportTags(ctx *gin.Context) {
	url, err := c.Service.ExportTagsCSV(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// ImportTags godoc
// @Summary 从CSV导入标签
// @Tags 标签
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "CSV文件"
// @Success 200 {object} util.Response{data=map[string]int}
// @Failure 400 {object} util.Response
// @Router /api/tags/import [post]
func (c *TagController) ImportTags(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing csv file")
		return
	}

	f, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer f.Close()

	imported, err := c.Service.ImportTagsCSV(f)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"imported": imported})
}

// ListObjectTags godoc
// @Summary 获取学习单元标签列表
// @Tags 标签
// @Produce json
// @Security ApiKeyAuth
// @Param object query string false "学习单元ID"
// @Success 200 {object} util.Response{data=[]model.ObjectTag}
// @Router /api/object-tags [get]
func (c *TagController) ListObjectTags(ctx *gin.Context) {
	objectTags, err := c.Service.ListObjectTags(ctx.Query("object"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, objectTags)
}

// CreateObjectTag godoc
// @Summary 给学习单元打标签
// @Tags 标签
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ObjectTagRequest true "打标信息"
// @Success 201 {object} util.Response{data=model.ObjectTag}
// @Failure 400 {object} util.Response
// @Router /api/object-tags [post]
func (c *TagController) CreateObjectTag(ctx *gin.Context) {
	var req ObjectTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	objectTag, err := c.Service.TagObject(req.ObjectID, req.TagID)
	if err != nil {
		if errors.Is(err, util.ErrTagNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, objectTag)
}

// DeleteObjectTag godoc
// @Summary 移除学习单元标签
// @Tags 标签
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "对象标签ID"
// @Success 204 "删除成功"
// @Failure 404 {object} util.Response
// @Router /api/object-tags/{id} [delete]
func (c *TagController) DeleteObjectTag(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid object tag id")
		return
	}

	if err := c.Service.UntagObject(uint(id)); err != nil {
		if errors.Is(err, util.ErrObjectTagNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
