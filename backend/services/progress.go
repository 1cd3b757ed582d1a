package services

import (
	"errors"
	"time"

	"lms/backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxProgressRetries bounds the compare-and-swap loop in Update. Two callers
// updating the same (user, course) row race on the version column; the loser
// re-reads and re-merges.
const maxProgressRetries = 3

type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

// Get returns the progress document for a (user, course) pair.
func (s *ProgressService) Get(userID, courseID string) (*models.UserCourseProgress, error) {
	var progress models.UserCourseProgress
	err := s.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// Update applies a partial sections payload to the stored progress for a
// (user, course) pair and recomputes the aggregate percentage. When no
// document exists yet, one is created with the payload as-is and a zero
// percentage. Merging is idempotent, so retrying the same payload is safe.
func (s *ProgressService) Update(userID, courseID string, partial []models.SectionProgress) (*models.UserCourseProgress, error) {
	if err := ValidateSections(partial); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxProgressRetries; attempt++ {
		var progress models.UserCourseProgress
		err := s.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			now := time.Now().UTC()
			progress = models.UserCourseProgress{
				UserID:                userID,
				CourseID:              courseID,
				EnrollmentDate:        now,
				OverallProgress:       0,
				Sections:              datatypes.NewJSONType(partial),
				LastAccessedTimestamp: now,
				Version:               1,
			}
			if createErr := s.DB.Create(&progress).Error; createErr != nil {
				if errors.Is(createErr, gorm.ErrDuplicatedKey) {
					// Lost a creation race; merge against the winner.
					continue
				}
				return nil, createErr
			}
			return &progress, nil
		}
		if err != nil {
			return nil, err
		}

		merged, err := MergeSections(progress.Sections.Data(), partial)
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		overall := CalculateOverallProgress(merged)
		res := s.DB.Model(&models.UserCourseProgress{}).
			Where("id = ? AND version = ?", progress.ID, progress.Version).
			Updates(map[string]interface{}{
				"sections":                datatypes.NewJSONType(merged),
				"overall_progress":        overall,
				"last_accessed_timestamp": now,
				"version":                 progress.Version + 1,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			progress.Sections = datatypes.NewJSONType(merged)
			progress.OverallProgress = overall
			progress.LastAccessedTimestamp = now
			progress.Version++
			return &progress, nil
		}
		// Version moved underneath us; reload and try again.
	}

	return nil, ErrProgressConflict
}

// ListEnrolledCourses returns the courses a user holds a progress document
// for, with their section/chapter trees loaded.
func (s *ProgressService) ListEnrolledCourses(userID string) ([]models.Course, error) {
	var courseIDs []string
	err := s.DB.Model(&models.UserCourseProgress{}).
		Where("user_id = ?", userID).
		Pluck("course_id", &courseIDs).Error
	if err != nil {
		return nil, err
	}
	if len(courseIDs) == 0 {
		return []models.Course{}, nil
	}

	var courses []models.Course
	err = s.DB.
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("sections.position") }).
		Preload("Sections.Chapters", func(db *gorm.DB) *gorm.DB { return db.Order("chapters.position") }).
		Where("id IN ?", courseIDs).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}
