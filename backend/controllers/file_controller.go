package controllers

import (
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FileController struct {
	Storage *utils.Storage
}

func NewFileController(storage *utils.Storage) *FileController {
	return &FileController{Storage: storage}
}

// GetUploadURL hands the client a presigned PUT URL for a video or image.
// The object key gets a UUID prefix so concurrent uploads of the same file
// name never collide. Only the resulting fileUrl string is stored on course
// chapters; the backend never sees the bytes.
func (fc *FileController) GetUploadURL(c *fiber.Ctx) error {
	if fc.Storage == nil {
		return utils.Fail(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
	}

	var input struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.FileName == "" || input.FileType == "" {
		return utils.BadRequest(c, "File name and type are required")
	}

	objectName := "videos/" + uuid.NewString() + "/" + input.FileName

	uploadURL, err := fc.Storage.PresignUpload(c.Context(), objectName)
	if err != nil {
		return utils.InternalServerError(c, "Error generating upload URL")
	}

	return utils.OK(c, "Upload URL generated successfully", fiber.Map{
		"uploadUrl": uploadURL,
		"fileUrl":   fc.Storage.PublicURL(objectName),
	})
}
