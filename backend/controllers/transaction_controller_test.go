package controllers_test

import (
	"testing"

	"lms/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishCourse(t *testing.T, app *fiber.App, cfg *config.Config, teacherToken string) string {
	t.Helper()

	courseID := createDraftCourse(t, app, cfg, teacherToken)
	resp, _ := doJSON(t, app, "PUT", "/courses/"+courseID, teacherToken, fiber.Map{
		"title":    "Intro to Go",
		"price":    "49",
		"status":   "Published",
		"sections": sectionsPayload(),
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return courseID
}

func TestPurchaseAndProgressFlow(t *testing.T) {
	app, _, cfg := newTestApp(t)
	teacher := token(t, cfg, "teacher-1", "teacher")
	student := token(t, cfg, "u1", "student")

	courseID := publishCourse(t, app, cfg, teacher)

	// Purchase confirmed by the payment boundary.
	resp, result := doJSON(t, app, "POST", "/transactions", student, fiber.Map{
		"userId":          "u1",
		"courseId":        courseID,
		"transactionId":   "pi_flow",
		"paymentProvider": "stripe",
		"amount":          4900,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	purchase := data(t, result)
	progress := purchase["courseProgress"].(map[string]interface{})
	assert.Equal(t, float64(0), progress["overallProgress"])
	sections := progress["sections"].([]interface{})
	require.Len(t, sections, 2)

	// Redelivered confirmation is recognized, not recorded twice.
	resp, _ = doJSON(t, app, "POST", "/transactions", student, fiber.Map{
		"userId":          "u1",
		"courseId":        courseID,
		"transactionId":   "pi_flow",
		"paymentProvider": "stripe",
		"amount":          4900,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Complete the first chapter of the first section.
	firstSection := sections[0].(map[string]interface{})
	sectionID := firstSection["sectionId"].(string)
	chapterID := firstSection["chapters"].([]interface{})[0].(map[string]interface{})["chapterId"].(string)

	resp, result = doJSON(t, app, "PUT", "/users/course-progress/u1/courses/"+courseID, student, fiber.Map{
		"sections": []fiber.Map{
			{
				"sectionId": sectionID,
				"chapters":  []fiber.Map{{"chapterId": chapterID, "completed": true}},
			},
		},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(33), data(t, result)["overallProgress"], "1 of 3 chapters complete")

	// Read it back.
	resp, result = doJSON(t, app, "GET", "/users/course-progress/u1/courses/"+courseID, student, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(33), data(t, result)["overallProgress"])

	// Enrolled course listing.
	resp, result = doJSON(t, app, "GET", "/users/course-progress/u1/enrolled-courses", student, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	courses := result["data"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, courseID, courses[0].(map[string]interface{})["courseId"])

	// Transactions listing filtered by user.
	resp, result = doJSON(t, app, "GET", "/transactions?userId=u1", student, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	transactions := result["data"].([]interface{})
	require.Len(t, transactions, 1)
	assert.Equal(t, "pi_flow", transactions[0].(map[string]interface{})["transactionId"])
}

func TestPurchaseUnknownCourse(t *testing.T) {
	app, _, cfg := newTestApp(t)
	student := token(t, cfg, "u1", "student")

	resp, _ := doJSON(t, app, "POST", "/transactions", student, fiber.Map{
		"userId":          "u1",
		"courseId":        "missing",
		"transactionId":   "pi_404",
		"paymentProvider": "stripe",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPurchaseRequiresAuth(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/transactions", "", fiber.Map{
		"userId": "u1", "courseId": "c1", "transactionId": "pi_x",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
