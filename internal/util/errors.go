package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrTagNotFound          = errors.New("tag not found")
	ErrObjectTagNotFound    = errors.New("object tag not found")
	ErrGroupNotFound        = errors.New("criteria group not found")
	ErrCriterionNotFound    = errors.New("assessment criterion not found")
	ErrInvalidLogicOperator = errors.New("logic operator must be AND or OR")
	ErrInvalidRuleType      = errors.New("unsupported rule type")
	ErrInvalidRetakeRule    = errors.New("unsupported retake rule")
	ErrBlankName            = errors.New("name must not be blank")
	ErrCourseExists         = errors.New("catalog course with this org and code already exists")
	ErrRunExists            = errors.New("course run already exists")
	ErrCourseNotFound       = errors.New("catalog course not found")
	ErrBlankCoursePart      = errors.New("org, course code and run must not be blank")
	ErrInvalidLanguageCode  = errors.New("language code must be lowercase, e.g. \"en\" or \"en-us\"")
)
