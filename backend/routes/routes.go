package routes

import (
	"lms/backend/config"
	"lms/backend/controllers"
	"lms/backend/middleware"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, storage *utils.Storage) {
	app.Get("/status", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	authMiddleware := middleware.AuthMiddleware(cfg)
	teacherMiddleware := middleware.TeacherMiddleware()

	// Course routes: reads are public, mutations are teacher-only and
	// ownership-checked in the handlers.
	courseController := controllers.NewCourseController(db, cfg)
	courses := app.Group("/courses")
	courses.Get("/", courseController.ListCourses)
	courses.Get("/:courseId", courseController.GetCourse)
	courses.Post("/", authMiddleware, teacherMiddleware, courseController.CreateCourse)
	courses.Put("/:courseId", authMiddleware, teacherMiddleware, courseController.UpdateCourse)
	courses.Delete("/:courseId", authMiddleware, teacherMiddleware, courseController.DeleteCourse)

	// Transaction routes: purchase/enrollment workflow and payment intents.
	transactionController := controllers.NewTransactionController(db, cfg)
	transactions := app.Group("/transactions", authMiddleware)
	transactions.Get("/", transactionController.ListTransactions)
	transactions.Post("/", transactionController.CreateTransaction)
	transactions.Post("/stripe/payment-intent", transactionController.CreateStripePaymentIntent)

	// Progress routes: callers may only touch their own records.
	progressController := controllers.NewProgressController(db, cfg)
	progress := app.Group("/users/course-progress", authMiddleware)
	progress.Get("/:userId/enrolled-courses", progressController.GetUserEnrolledCourses)
	progress.Get("/:userId/courses/:courseId", progressController.GetUserCourseProgress)
	progress.Put("/:userId/courses/:courseId", progressController.UpdateUserCourseProgress)

	// File routes: presigned upload URLs for course assets.
	fileController := controllers.NewFileController(storage)
	files := app.Group("/files", authMiddleware)
	files.Post("/upload-url", fileController.GetUploadURL)
}
