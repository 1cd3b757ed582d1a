package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChapterProgress is a single completion flag inside a user's progress
// snapshot.
type ChapterProgress struct {
	ChapterID string `json:"chapterId"`
	Completed bool   `json:"completed"`
}

// SectionProgress groups chapter completion flags under the section they were
// copied from at enrollment time.
type SectionProgress struct {
	SectionID string            `json:"sectionId"`
	Chapters  []ChapterProgress `json:"chapters"`
}

// UserCourseProgress tracks one user's completion state for one course.
// Exactly one row exists per (user, course) pair. Sections is a structural
// snapshot of the course taken at enrollment, stored as a JSON document: it
// deliberately does not follow later course edits. Version guards concurrent
// read-modify-write updates of the same row.
type UserCourseProgress struct {
	ID                    uint                                  `gorm:"primaryKey" json:"-"`
	UserID                string                                `gorm:"uniqueIndex:idx_user_course" json:"userId"`
	CourseID              string                                `gorm:"uniqueIndex:idx_user_course" json:"courseId"`
	EnrollmentDate        time.Time                             `json:"enrollmentDate"`
	OverallProgress       int                                   `json:"overallProgress"` // 0-100
	Sections              datatypes.JSONType[[]SectionProgress] `json:"sections"`
	LastAccessedTimestamp time.Time                             `json:"lastAccessedTimestamp"`
	Version               int                                   `json:"-"`
	CreatedAt             time.Time                             `json:"createdAt"`
	UpdatedAt             time.Time                             `json:"updatedAt"`
}
