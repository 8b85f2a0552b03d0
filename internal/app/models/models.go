package models

// ResourceLevel is the academic year cohort a resource targets
type ResourceLevel string

const (
	Level100 ResourceLevel = "100L"
	Level200 ResourceLevel = "200L"
	Level300 ResourceLevel = "300L"
	Level400 ResourceLevel = "400L"
)

// ValidResourceLevel reports whether the given level is a known cohort
func ValidResourceLevel(level ResourceLevel) bool {
	switch level {
	case Level100, Level200, Level300, Level400:
		return true
	}
	return false
}

// ResourceType classifies downloadable resources
type ResourceType string

const (
	TypeCourseMaterial ResourceType = "course_material"
	TypeStudyMaterial  ResourceType = "study_material"
	TypePastQuestion   ResourceType = "past_question"
	TypeStudentProject ResourceType = "student_project"
)

// ValidResourceType reports whether the given type is a known resource type
func ValidResourceType(t ResourceType) bool {
	switch t {
	case TypeCourseMaterial, TypeStudyMaterial, TypePastQuestion, TypeStudentProject:
		return true
	}
	return false
}

// ArticleStatus is the publication state of a newspaper article
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusReview    ArticleStatus = "review"
	StatusPublished ArticleStatus = "published"
)

// ValidArticleStatus reports whether the given status is a known publication state
func ValidArticleStatus(status ArticleStatus) bool {
	switch status {
	case StatusDraft, StatusReview, StatusPublished:
		return true
	}
	return false
}
