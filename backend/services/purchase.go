package services

import (
	"errors"
	"fmt"
	"time"

	"lms/backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PurchaseInput is what the payment confirmation boundary hands over once the
// external provider has confirmed a payment. The coordinator trusts it and
// does not re-verify payment status.
type PurchaseInput struct {
	UserID          string `json:"userId"`
	CourseID        string `json:"courseId"`
	TransactionID   string `json:"transactionId"`
	PaymentProvider string `json:"paymentProvider"`
	Amount          int64  `json:"amount"` // cents
}

type PurchaseResult struct {
	Transaction models.Transaction        `json:"transaction"`
	Progress    models.UserCourseProgress `json:"courseProgress"`
}

type PurchaseService struct {
	DB *gorm.DB
}

func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{DB: db}
}

// CreateTransaction runs the enrollment workflow as one atomic unit: record
// the purchase, seed an initial progress snapshot from the course's current
// shape, and add the user to the course's enrollments. Any failure rolls the
// whole set of writes back; redelivery of the same external transaction id is
// rejected via the unique index rather than recorded twice.
func (s *PurchaseService) CreateTransaction(input PurchaseInput) (*PurchaseResult, error) {
	if input.UserID == "" || input.CourseID == "" || input.TransactionID == "" {
		return nil, fmt.Errorf("%w: userId, courseId and transactionId are required", ErrInvalidPurchase)
	}

	var result PurchaseResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		err := tx.
			Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("sections.position") }).
			Preload("Sections.Chapters", func(db *gorm.DB) *gorm.DB { return db.Order("chapters.position") }).
			First(&course, "id = ?", input.CourseID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		now := time.Now().UTC()

		transaction := models.Transaction{
			UserID:          input.UserID,
			CourseID:        input.CourseID,
			TransactionID:   input.TransactionID,
			PaymentProvider: input.PaymentProvider,
			Amount:          input.Amount,
			DateTime:        now,
		}
		if err := tx.Create(&transaction).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateTransaction
			}
			return err
		}

		progress := models.UserCourseProgress{
			UserID:                input.UserID,
			CourseID:              input.CourseID,
			EnrollmentDate:        now,
			OverallProgress:       0,
			Sections:              datatypes.NewJSONType(InitialSnapshot(course.Sections)),
			LastAccessedTimestamp: now,
			Version:               1,
		}
		if err := tx.Create(&progress).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyEnrolled
			}
			return err
		}

		enrollment := models.Enrollment{
			CourseID: input.CourseID,
			UserID:   input.UserID,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyEnrolled
			}
			return err
		}

		result = PurchaseResult{Transaction: transaction, Progress: progress}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTransactions returns purchase records, optionally filtered by user.
func (s *PurchaseService) ListTransactions(userID string) ([]models.Transaction, error) {
	query := s.DB.Model(&models.Transaction{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var transactions []models.Transaction
	if err := query.Order("date_time DESC").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// InitialSnapshot copies a course's section/chapter shape into a fresh
// progress structure with every chapter marked incomplete. The copy is
// independent of the course rows: editing the course afterwards does not
// touch existing snapshots.
func InitialSnapshot(sections []models.Section) []models.SectionProgress {
	snapshot := make([]models.SectionProgress, 0, len(sections))
	for _, section := range sections {
		chapters := make([]models.ChapterProgress, 0, len(section.Chapters))
		for _, chapter := range section.Chapters {
			chapters = append(chapters, models.ChapterProgress{
				ChapterID: chapter.ID,
				Completed: false,
			})
		}
		snapshot = append(snapshot, models.SectionProgress{
			SectionID: section.ID,
			Chapters:  chapters,
		})
	}
	return snapshot
}
