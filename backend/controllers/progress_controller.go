package controllers

import (
	"errors"

	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/models"
	"lms/backend/services"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	Cfg      *config.Config
	Progress *services.ProgressService
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{
		Cfg:      cfg,
		Progress: services.NewProgressService(db),
	}
}

func (pc *ProgressController) GetUserEnrolledCourses(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if middleware.UserID(c) != userID {
		return utils.Forbidden(c, "Access denied")
	}

	courses, err := pc.Progress.ListEnrolledCourses(userID)
	if err != nil {
		return utils.InternalServerError(c, "Error retrieving enrolled courses")
	}
	if len(courses) == 0 {
		return utils.OK(c, "No enrolled courses found", []models.Course{})
	}

	return utils.OK(c, "Enrolled courses retrieved successfully", courses)
}

func (pc *ProgressController) GetUserCourseProgress(c *fiber.Ctx) error {
	userID := c.Params("userId")
	courseID := c.Params("courseId")
	if middleware.UserID(c) != userID {
		return utils.Forbidden(c, "Access denied")
	}

	progress, err := pc.Progress.Get(userID, courseID)
	if err != nil {
		if errors.Is(err, services.ErrProgressNotFound) {
			return utils.NotFound(c, "Course progress not found for this user")
		}
		return utils.InternalServerError(c, "Error retrieving user course progress")
	}

	return utils.OK(c, "Course progress retrieved successfully", progress)
}

// UpdateUserCourseProgress merges a partial sections payload into the stored
// progress document and returns the persisted result.
func (pc *ProgressController) UpdateUserCourseProgress(c *fiber.Ctx) error {
	userID := c.Params("userId")
	courseID := c.Params("courseId")
	if middleware.UserID(c) != userID {
		return utils.Forbidden(c, "Access denied")
	}

	var input struct {
		Sections []models.SectionProgress `json:"sections"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	progress, err := pc.Progress.Update(userID, courseID, input.Sections)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidProgress):
			return utils.UnprocessableEntity(c, err.Error())
		case errors.Is(err, services.ErrProgressConflict):
			return utils.Conflict(c, "Progress was modified concurrently, retry the update")
		default:
			return utils.InternalServerError(c, "Error updating user course progress")
		}
	}

	return utils.OK(c, "Progress updated successfully", progress)
}
