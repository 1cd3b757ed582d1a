package controllers

import (
	"errors"
	"strconv"

	"lms/backend/config"
	"lms/backend/middleware"
	"lms/backend/models"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCourseController(db *gorm.DB, cfg *config.Config) *CourseController {
	return &CourseController{DB: db, Cfg: cfg}
}

func courseQuery(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("sections.position") }).
		Preload("Sections.Chapters", func(db *gorm.DB) *gorm.DB { return db.Order("chapters.position") }).
		Preload("Sections.Chapters.Quizzes").
		Preload("Sections.Chapters.Quizzes.Options", func(db *gorm.DB) *gorm.DB { return db.Order("quiz_options.position") }).
		Preload("Sections.Chapters.Comments").
		Preload("Enrollments")
}

func (cc *CourseController) ListCourses(c *fiber.Ctx) error {
	category := c.Query("category")
	search := c.Query("search")

	query := courseQuery(cc.DB)
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		query = query.Where("lower(title) LIKE lower(?)", "%"+search+"%")
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Error retrieving courses")
	}

	return utils.OK(c, "Courses retrieved successfully", courses)
}

func (cc *CourseController) GetCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := courseQuery(cc.DB).First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Error retrieving course")
	}

	return utils.OK(c, "Course retrieved successfully", course)
}

// CreateCourse creates an empty draft skeleton owned by the calling teacher.
// Content is filled in through course updates afterwards.
func (cc *CourseController) CreateCourse(c *fiber.Ctx) error {
	var input struct {
		TeacherName string `json:"teacherName"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.TeacherName == "" {
		return utils.BadRequest(c, "Teacher name is required")
	}

	course := models.Course{
		ID:          uuid.NewString(),
		TeacherID:   middleware.UserID(c),
		TeacherName: input.TeacherName,
		Title:       "Untitled Course",
		Description: "",
		Category:    "Uncategorized",
		Image:       "",
		Price:       0,
		Level:       models.LevelBeginner,
		Status:      models.StatusDraft,
		Sections:    []models.Section{},
		Enrollments: []models.Enrollment{},
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Error creating course")
	}

	return utils.OK(c, "Course created successfully", course)
}

type quizOptionInput struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type quizInput struct {
	ID            string            `json:"id"`
	Question      string            `json:"question"`
	Options       []quizOptionInput `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
}

type chapterInput struct {
	ChapterID string      `json:"chapterId"`
	Type      string      `json:"type"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Video     string      `json:"video"`
	Quizzes   []quizInput `json:"quizzes"`
}

type sectionInput struct {
	SectionID          string         `json:"sectionId"`
	SectionTitle       string         `json:"sectionTitle"`
	SectionDescription string         `json:"sectionDescription"`
	Objectives         string         `json:"objectives"`
	Duration           int            `json:"duration"`
	Chapters           []chapterInput `json:"chapters"`
}

type updateCourseInput struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Category    *string        `json:"category"`
	Image       *string        `json:"image"`
	Price       *string        `json:"price"` // dollars, converted to cents
	Level       *string        `json:"level"`
	Status      *string        `json:"status"`
	Sections    []sectionInput `json:"sections"`
}

// UpdateCourse applies an owner-only wholesale update. Sections and chapters
// are replaced, not diffed; identifiers missing from the payload are
// generated here so the stored tree is always fully addressable.
func (cc *CourseController) UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	userID := middleware.UserID(c)

	var input updateCourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var course models.Course
	if err := cc.DB.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Error retrieving course")
	}

	if course.TeacherID != userID {
		return utils.Forbidden(c, "Not authorized to update this course")
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Image != nil {
		updates["image"] = *input.Image
	}
	if input.Level != nil {
		updates["level"] = *input.Level
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Price != nil {
		price, err := strconv.Atoi(*input.Price)
		if err != nil {
			return utils.BadRequest(c, "Price must be a valid number")
		}
		updates["price"] = int64(price) * 100
	}

	var sections []models.Section
	if input.Sections != nil {
		built, err := buildSections(courseID, input.Sections)
		if err != nil {
			return utils.UnprocessableEntity(c, err.Error())
		}
		sections = built
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&course).Updates(updates).Error; err != nil {
				return err
			}
		}
		if input.Sections != nil {
			if err := deleteCourseContent(tx, courseID); err != nil {
				return err
			}
			if len(sections) > 0 {
				if err := tx.Create(&sections).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return utils.InternalServerError(c, "Error updating course")
	}

	var updated models.Course
	if err := courseQuery(cc.DB).First(&updated, "id = ?", courseID).Error; err != nil {
		return utils.InternalServerError(c, "Error retrieving course")
	}

	return utils.OK(c, "Course updated successfully", updated)
}

func (cc *CourseController) DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	userID := middleware.UserID(c)

	var course models.Course
	if err := cc.DB.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Error retrieving course")
	}

	if course.TeacherID != userID {
		return utils.Forbidden(c, "Not authorized to delete this course")
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteCourseContent(tx, courseID); err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Error deleting course")
	}

	return utils.OK(c, "Course deleted successfully", course)
}

// buildSections turns the update payload into a section tree, filling in
// server-side UUIDs where the client left identifiers empty and validating
// quizzes (at least two options, correctAnswer must reference an option id).
func buildSections(courseID string, inputs []sectionInput) ([]models.Section, error) {
	sections := make([]models.Section, 0, len(inputs))
	for si, sIn := range inputs {
		sectionID := sIn.SectionID
		if sectionID == "" {
			sectionID = uuid.NewString()
		}

		chapters := make([]models.Chapter, 0, len(sIn.Chapters))
		for ci, chIn := range sIn.Chapters {
			chapterID := chIn.ChapterID
			if chapterID == "" {
				chapterID = uuid.NewString()
			}

			quizzes := make([]models.Quiz, 0, len(chIn.Quizzes))
			for _, qIn := range chIn.Quizzes {
				quiz, err := buildQuiz(chapterID, qIn)
				if err != nil {
					return nil, err
				}
				quizzes = append(quizzes, quiz)
			}

			chapters = append(chapters, models.Chapter{
				ID:        chapterID,
				SectionID: sectionID,
				Type:      chIn.Type,
				Title:     chIn.Title,
				Content:   chIn.Content,
				Video:     chIn.Video,
				Position:  ci,
				Quizzes:   quizzes,
			})
		}

		sections = append(sections, models.Section{
			ID:          sectionID,
			CourseID:    courseID,
			Title:       sIn.SectionTitle,
			Description: sIn.SectionDescription,
			Objectives:  sIn.Objectives,
			Duration:    sIn.Duration,
			Position:    si,
			Chapters:    chapters,
		})
	}
	return sections, nil
}

func buildQuiz(chapterID string, in quizInput) (models.Quiz, error) {
	quizID := in.ID
	if quizID == "" {
		quizID = uuid.NewString()
	}

	if len(in.Options) < 2 {
		return models.Quiz{}, fiber.NewError(fiber.StatusUnprocessableEntity,
			"Quiz \""+in.Question+"\" must have at least two options")
	}

	options := make([]models.QuizOption, 0, len(in.Options))
	valid := false
	for oi, oIn := range in.Options {
		optionID := oIn.ID
		if optionID == "" {
			optionID = uuid.NewString()
		}
		if optionID == in.CorrectAnswer {
			valid = true
		}
		options = append(options, models.QuizOption{
			ID:       optionID,
			QuizID:   quizID,
			Value:    oIn.Value,
			Position: oi,
		})
	}
	if !valid {
		return models.Quiz{}, fiber.NewError(fiber.StatusUnprocessableEntity,
			"Quiz \""+in.Question+"\" correctAnswer does not reference an option")
	}

	return models.Quiz{
		ID:            quizID,
		ChapterID:     chapterID,
		Question:      in.Question,
		Options:       options,
		CorrectAnswer: in.CorrectAnswer,
	}, nil
}

// deleteCourseContent removes a course's section tree bottom-up so the caller
// can replace it wholesale inside the same transaction.
func deleteCourseContent(tx *gorm.DB, courseID string) error {
	var sectionIDs []string
	if err := tx.Model(&models.Section{}).Where("course_id = ?", courseID).Pluck("id", &sectionIDs).Error; err != nil {
		return err
	}
	if len(sectionIDs) == 0 {
		return nil
	}

	var chapterIDs []string
	if err := tx.Model(&models.Chapter{}).Where("section_id IN ?", sectionIDs).Pluck("id", &chapterIDs).Error; err != nil {
		return err
	}
	if len(chapterIDs) > 0 {
		var quizIDs []string
		if err := tx.Model(&models.Quiz{}).Where("chapter_id IN ?", chapterIDs).Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if len(quizIDs) > 0 {
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&models.QuizOption{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&models.Quiz{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("section_id IN ?", sectionIDs).Delete(&models.Chapter{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("course_id = ?", courseID).Delete(&models.Section{}).Error
}
