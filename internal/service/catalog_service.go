package service

import (
	"competency_backend/internal/model"
	"competency_backend/internal/repository"
	"competency_backend/internal/util"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// 语言码必须小写，区域码用 - 或 @ 分隔，如 en、en-us、ca@valencia
var languageCodePattern = regexp.MustCompile(`^[a-z][a-z]((-|@)[a-z]+)?$`)

type CatalogService struct {
	Repo *repository.CatalogRepository
}

func NewCatalogService(repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{Repo: repo}
}

func (s *CatalogService) ListCourses() ([]model.CatalogCourse, error) {
	return s.Repo.FindCourses()
}

func (s *CatalogService) GetCourse(id uint) (*model.CatalogCourse, error) {
	course, err := s.Repo.FindCourseByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// CreateCourse 创建目录课程：org+course_code 不区分大小写唯一
func (s *CatalogService) CreateCourse(course *model.CatalogCourse) error {
	if course.Org == "" || course.CourseCode == "" {
		return util.ErrBlankCoursePart
	}
	if course.Language == "" {
		course.Language = "en"
	}
	if !languageCodePattern.MatchString(course.Language) {
		return util.ErrInvalidLanguageCode
	}
	if course.DisplayName == "" {
		course.DisplayName = course.CourseCode
	}

	_, err := s.Repo.FindCourseByOrgAndCode(course.Org, course.CourseCode)
	if err == nil {
		return util.ErrCourseExists
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return s.Repo.CreateCourse(course)
}

func (s *CatalogService) ListRuns(catalogCourseID uint) ([]model.CourseRun, error) {
	return s.Repo.FindRuns(catalogCourseID)
}

// CreateRun 创建课程轮次：course_id 由 org/code/run 组装，不区分大小写唯一
func (s *CatalogService) CreateRun(run *model.CourseRun) error {
	if strings.TrimSpace(run.Run) == "" {
		return util.ErrBlankCoursePart
	}
	course, err := s.GetCourse(run.CatalogCourseID)
	if err != nil {
		return err
	}

	run.CourseID = fmt.Sprintf("course-v1:%s+%s+%s", course.Org, course.CourseCode, run.Run)
	if run.DisplayName == "" {
		run.DisplayName = course.DisplayName
	}

	_, err = s.Repo.FindRunByCourseID(run.CourseID)
	if err == nil {
		return util.ErrRunExists
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return s.Repo.CreateRun(run)
}
