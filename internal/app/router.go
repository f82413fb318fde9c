package app

import (
	"competency_backend/docs"
	"competency_backend/internal/config"
	"competency_backend/internal/middleware"
	"competency_backend/internal/model"

	"competency_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerReadRoutes(authGroup, c)
	}

	// 3. 教师/管理员相关接口
	a.registerAuthoringRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

// 已登录用户可访问的查询接口
func (a *App) registerReadRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// 标签
	rg.GET("/tags", c.tag.ListTags)
	rg.GET("/tags/:id", c.tag.GetTag)
	rg.GET("/object-tags", c.tag.ListObjectTags)

	// 课程目录
	rg.GET("/catalog/courses", c.catalog.ListCourses)
	rg.GET("/catalog/courses/:id", c.catalog.GetCourse)
	rg.GET("/catalog/runs", c.catalog.ListRuns)

	// 评估标准
	rg.GET("/criteria-groups", c.criteriaGroup.ListGroups)
	rg.GET("/criteria-groups/:id", c.criteriaGroup.GetGroup)
	rg.GET("/criteria", c.criteria.ListCriteria)
	rg.GET("/criteria/:id", c.criteria.GetCriterion)

	// 学生状态
	rg.GET("/student-criteria-statuses", c.studentStatus.ListCriterionStatuses)
	rg.GET("/student-competency-statuses", c.studentStatus.ListCompetencyStatuses)
}

// 教师和管理员的建模与事件接口
func (a *App) registerAuthoringRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	authoring := router.Group("/api")
	authoring.Use(
		middleware.AuthMiddleware(cfg),
		middleware.ActivityMiddleware(repos.user),
		middleware.RoleMiddleware(model.Teacher, model.Admin),
	)
	{
		// 标签
		authoring.POST("/tags", c.tag.CreateTag)
		authoring.DELETE("/tags/:id", c.tag.DeleteTag)
		authoring.POST("/tags/export", c.tag.ExportTags)
		authoring.POST("/tags/import", c.tag.ImportTags)
		authoring.POST("/object-tags", c.tag.CreateObjectTag)
		authoring.DELETE("/object-tags/:id", c.tag.DeleteObjectTag)

		// 课程目录
		authoring.POST("/catalog/courses", c.catalog.CreateCourse)
		authoring.POST("/catalog/runs", c.catalog.CreateRun)

		// 评估标准
		authoring.POST("/criteria-groups", c.criteriaGroup.CreateGroup)
		authoring.PUT("/criteria-groups/:id", c.criteriaGroup.UpdateGroup)
		authoring.DELETE("/criteria-groups/:id", c.criteriaGroup.DeleteGroup)
		authoring.POST("/criteria", c.criteria.CreateCriterion)
		authoring.PUT("/criteria/:id", c.criteria.UpdateCriterion)
		authoring.DELETE("/criteria/:id", c.criteria.DeleteCriterion)

		// 成绩事件 Webhook（事件总线之外的推送入口）
		authoring.POST("/events/grade", c.gradeEvent.HandleGradeEvent)
	}
}
