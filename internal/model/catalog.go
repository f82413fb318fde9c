package model

// CatalogCourse 目录课程：同一门课的所有轮次（run）的集合
// org+course_code 需不区分大小写唯一，由 service 层校验，数据库加普通唯一索引兜底
type CatalogCourse struct {
	BaseModel
	Org         string `gorm:"size:255;not null;uniqueIndex:idx_catalog_org_code" json:"org"`
	CourseCode  string `gorm:"size:255;not null;uniqueIndex:idx_catalog_org_code" json:"courseCode"`
	DisplayName string `gorm:"size:255;not null" json:"displayName"`
	Language    string `gorm:"size:64;not null;default:'en'" json:"language"`
}

func (CatalogCourse) TableName() string {
	return "catalog_courses"
}

// CourseRun 某门目录课程的一个轮次，course_id 为完整课程标识（course-v1:Org+Code+Run）
type CourseRun struct {
	BaseModel
	CourseID        string        `gorm:"size:255;not null;uniqueIndex" json:"courseId"`
	CatalogCourseID uint          `gorm:"not null;uniqueIndex:idx_course_run" json:"catalogCourseId"`
	CatalogCourse   CatalogCourse `gorm:"foreignKey:CatalogCourseID" json:"catalogCourse,omitempty"`
	Run             string        `gorm:"size:128;not null;uniqueIndex:idx_course_run" json:"run"`
	DisplayName     string        `gorm:"size:255;not null" json:"displayName"`
}

func (CourseRun) TableName() string {
	return "course_runs"
}
