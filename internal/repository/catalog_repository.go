package repository

import (
	"competency_backend/internal/model"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) FindCourses() ([]model.CatalogCourse, error) {
	var courses []model.CatalogCourse
	err := r.DB.Order("created_at desc").Find(&courses).Error
	return courses, err
}

func (r *CatalogRepository) FindCourseByID(id uint) (*model.CatalogCourse, error) {
	var course model.CatalogCourse
	err := r.DB.First(&course, id).Error
	return &course, err
}

// FindCourseByOrgAndCode 不区分大小写匹配 org+course_code
func (r *CatalogRepository) FindCourseByOrgAndCode(org, code string) (*model.CatalogCourse, error) {
	var course model.CatalogCourse
	err := r.DB.Where("LOWER(org) = LOWER(?) AND LOWER(course_code) = LOWER(?)", org, code).
		First(&course).Error
	return &course, err
}

func (r *CatalogRepository) CreateCourse(course *model.CatalogCourse) error {
	return r.DB.Create(course).Error
}

func (r *CatalogRepository) FindRuns(catalogCourseID uint) ([]model.CourseRun, error) {
	var runs []model.CourseRun
	q := r.DB.Preload("CatalogCourse").Order("created_at desc")
	if catalogCourseID != 0 {
		q = q.Where("catalog_course_id = ?", catalogCourseID)
	}
	err := q.Find(&runs).Error
	return runs, err
}

func (r *CatalogRepository) FindRunByID(id uint) (*model.CourseRun, error) {
	var run model.CourseRun
	err := r.DB.Preload("CatalogCourse").First(&run, id).Error
	return &run, err
}

// FindRunByCourseID 不区分大小写匹配完整课程标识
func (r *CatalogRepository) FindRunByCourseID(courseID string) (*model.CourseRun, error) {
	var run model.CourseRun
	err := r.DB.Where("LOWER(course_id) = LOWER(?)", courseID).First(&run).Error
	return &run, err
}

func (r *CatalogRepository) CreateRun(run *model.CourseRun) error {
	return r.DB.Create(run).Error
}
