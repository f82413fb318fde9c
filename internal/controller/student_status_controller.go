package controller

import (
	"competency_backend/internal/repository"
	"competency_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StudentStatusController struct {
	Repo *repository.StudentStatusRepository
}

func NewStudentStatusController(repo *repository.StudentStatusRepository) *StudentStatusController {
	return &StudentStatusController{Repo: repo}
}

func queryUint(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, false
	}
	return uint(id), true
}

// ListCriterionStatuses godoc
// @Summary 查询学生标准达成状态
// @Tags 学生状态
// @Produce json
// @Security ApiKeyAuth
// @Param criterion query int false "标准ID"
// @Param user query int false "用户ID"
// @Success 200 {object} util.Response{data=[]model.StudentCriterionStatus}
// @Router /api/student-criteria-statuses [get]
func (c *StudentStatusController) ListCriterionStatuses(ctx *gin.Context) {
	criterionID, ok := queryUint(ctx, "criterion")
	if !ok {
		util.BadRequest(ctx, "invalid criterion id")
		return
	}
	userID, ok := queryUint(ctx, "user")
	if !ok {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	statuses, err := c.Repo.ListCriterionStatuses(criterionID, userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, statuses)
}

// ListCompetencyStatuses godoc
// @Summary 查询学生能力达成状态
// @Tags 学生状态
// @Produce json
// @Security ApiKeyAuth
// @Param tag query int false "能力标签ID"
// @Param user query int false "用户ID"
// @Success 200 {object} util.Response{data=[]model.StudentCompetencyStatus}
// @Router /api/student-competency-statuses [get]
func (c *StudentStatusController) ListCompetencyStatuses(ctx *gin.Context) {
	tagID, ok := queryUint(ctx, "tag")
	if !ok {
		util.BadRequest(ctx, "invalid tag id")
		return
	}
	userID, ok := queryUint(ctx, "user")
	if !ok {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	statuses, err := c.Repo.ListCompetencyStatuses(tagID, userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, statuses)
}
