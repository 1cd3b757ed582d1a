package services

import (
	"testing"

	"lms/backend/models"
	"lms/backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	return db
}

// seedCourse inserts a course with sections s1 (chapters ch1, ch2) and
// s2 (chapter ch3).
func seedCourse(t *testing.T, db *gorm.DB, courseID string) models.Course {
	t.Helper()

	course := models.Course{
		ID:          courseID,
		TeacherID:   "teacher-1",
		TeacherName: "Ada Lovelace",
		Title:       "Intro to Programming",
		Category:    "Programming",
		Level:       models.LevelBeginner,
		Status:      models.StatusPublished,
		Price:       4900,
		Sections: []models.Section{
			{
				ID:       "s1",
				CourseID: courseID,
				Title:    "Getting Started",
				Position: 0,
				Chapters: []models.Chapter{
					{ID: "ch1", SectionID: "s1", Type: models.ChapterTypeText, Title: "Welcome", Content: "...", Position: 0},
					{ID: "ch2", SectionID: "s1", Type: models.ChapterTypeVideo, Title: "Setup", Content: "...", Position: 1},
				},
			},
			{
				ID:       "s2",
				CourseID: courseID,
				Title:    "Basics",
				Position: 1,
				Chapters: []models.Chapter{
					{ID: "ch3", SectionID: "s2", Type: models.ChapterTypeText, Title: "Variables", Content: "...", Position: 0},
				},
			},
		},
	}
	require.NoError(t, db.Create(&course).Error)

	return course
}
