package controller

import (
	"competency_backend/internal/model"
	"competency_backend/internal/service"
	"competency_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Service *service.CatalogService
}

func NewCatalogController(s *service.CatalogService) *CatalogController {
	return &CatalogController{Service: s}
}

// CatalogCourseRequest 创建课程请求体
type CatalogCourseRequest struct {
	Org         string `json:"org" binding:"required"`
	CourseCode  string `json:"courseCode" binding:"required"`
	DisplayName string `json:"displayName"`
	Language    string `json:"language"`
}

// CourseRunRequest 创建开课批次请求体
type CourseRunRequest struct {
	CatalogCourseID uint   `json:"catalogCourseId" binding:"required"`
	Run             string `json:"run" binding:"required"`
	DisplayName     string `json:"displayName"`
}

func respondCatalogError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrCourseExists), errors.Is(err, util.ErrRunExists):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrBlankCoursePart), errors.Is(err, util.ErrInvalidLanguageCode):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// ListCourses godoc
// @Summary 获取课程目录
// @Tags 课程目录
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.CatalogCourse}
// @Router /api/catalog/courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	courses, err := c.Service.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 获取单个课程
// @Tags 课程目录
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.CatalogCourse}
// @Failure 404 {object} util.Response
// @Router /api/catalog/courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	course, err := c.Service.GetCourse(uint(id))
	if err != nil {
		respondCatalogError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 课程目录
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CatalogCourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.CatalogCourse}
// @Failure 409 {object} util.Response
// @Router /api/catalog/courses [post]
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	var req CatalogCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.CatalogCourse{
		Org:         req.Org,
		CourseCode:  req.CourseCode,
		DisplayName: req.DisplayName,
		Language:    req.Language,
	}
	if err := c.Service.CreateCourse(course); err != nil {
		respondCatalogError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// ListRuns godoc
// @Summary 获取课程开课批次
// @Tags 课程目录
// @Produce json
// @Security ApiKeyAuth
// @Param course query int false "课程ID"
// @Success 200 {object} util.Response{data=[]model.CourseRun}
// @Router /api/catalog/runs [get]
func (c *CatalogController) ListRuns(ctx *gin.Context) {
	var courseID uint
	if raw := ctx.Query("course"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "invalid course id")
			return
		}
		courseID = uint(id)
	}

	runs, err := c.Service.ListRuns(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, runs)
}

// CreateRun godoc
// @Summary 创建开课批次
// @Tags 课程目录
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CourseRunRequest true "批次信息"
// @Success 201 {object} util.Response{data=model.CourseRun}
// @Failure 409 {object} util.Response
// @Router /api/catalog/runs [post]
func (c *CatalogController) CreateRun(ctx *gin.Context) {
	var req CourseRunRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	run := &model.CourseRun{
		CatalogCourseID: req.CatalogCourseID,
		Run:             req.Run,
		DisplayName:     req.DisplayName,
	}
	if err := c.Service.CreateRun(run); err != nil {
		respondCatalogError(ctx, err)
		return
	}
	util.Created(ctx, run)
}
